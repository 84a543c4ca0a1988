package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"rekindle/host"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live TUI over a running console session",
	Long: `monitor runs the same session as run, with a terminal UI showing
the lifecycle state, the page on screen and a scrolling log of inbound
panel frames.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// The TUI owns the terminal; logs would tear it.
		log := newLogger("error")

		l, err := openLink(cfg)
		if err != nil {
			return err
		}
		defer l.Close()

		r, err := buildRig(cfg, l, log)
		if err != nil {
			return err
		}
		r.store.CheckAtBoot()
		if r.store.Valid() {
			r.console.PowerLossRecovery()
		}

		m := newMonitorModel()
		p := tea.NewProgram(m, tea.WithAltScreen())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var last host.Snapshot
		session := host.NewSession(host.SessionConfig{
			Link:    l,
			Console: r.console,
			TickMS:  cfg.TickMS,
			Logger:  log,
			OnRx: func(chunk []byte) {
				p.Send(rxMsg(hex.EncodeToString(chunk)))
			},
			OnTick: func(s host.Snapshot) {
				if s != last {
					last = s
					p.Send(snapMsg(s))
				}
			},
		})
		go func() {
			if err := session.Run(ctx); err != nil && err != context.Canceled {
				p.Send(sessionErrMsg{err})
			}
			p.Send(tea.Quit())
		}()

		_, err = p.Run()
		cancel()
		return err
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

type (
	rxMsg         string
	snapMsg       host.Snapshot
	sessionErrMsg struct{ err error }
)

const monitorLogMax = 200

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

type monitorModel struct {
	snap     host.Snapshot
	frames   []string
	viewport viewport.Model
	ready    bool
	err      error
}

func newMonitorModel() monitorModel {
	return monitorModel{}
}

func (m monitorModel) Init() tea.Cmd {
	return nil
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := 5
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - 2
		}
		m.viewport.SetContent(strings.Join(m.frames, "\n"))

	case rxMsg:
		line := time.Now().Format("15:04:05.000") + "  " + string(msg)
		m.frames = append(m.frames, line)
		if len(m.frames) > monitorLogMax {
			m.frames = m.frames[len(m.frames)-monitorLogMax:]
		}
		if m.ready {
			m.viewport.SetContent(strings.Join(m.frames, "\n"))
			m.viewport.GotoBottom()
		}

	case snapMsg:
		m.snap = host.Snapshot(msg)

	case sessionErrMsg:
		m.err = msg.err
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m monitorModel) View() string {
	header := titleStyle.Render("rekindle console monitor") + "\n" +
		labelStyle.Render("state: ") + valueStyle.Render(m.snap.State.String()) +
		labelStyle.Render("  pause: ") + valueStyle.Render(m.snap.Pause.String()) +
		labelStyle.Render("  page: ") + valueStyle.Render(fmt.Sprintf("%d", m.snap.Page))

	if m.err != nil {
		header += "\n" + errorStyle.Render("session error: "+m.err.Error())
	}

	body := "waiting for panel frames..."
	if m.ready {
		body = m.viewport.View()
	}

	return header + "\n" + borderStyle.Render(body) + "\n" +
		labelStyle.Render("q to quit")
}
