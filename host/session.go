package host

import (
	"context"
	"encoding/hex"
	"io"
	"time"

	"github.com/rs/zerolog"

	"rekindle/core"
	"rekindle/host/link"
	"rekindle/panel"
	"rekindle/recovery"
	"rekindle/ui"
)

// fifoCapacity sizes the inbound byte queue. The panel sends short
// frames; a burst that overruns this is dropped and logged.
const fifoCapacity = 512

// Snapshot is the console state published after each tick, for the
// monitor TUI.
type Snapshot struct {
	State ui.State
	Pause ui.PauseReason
	Page  uint16
}

// SessionConfig wires a session to the link and the console.
type SessionConfig struct {
	Link    link.Link
	Console *ui.Console

	// Detector, when set, is sampled every tick (bench setups feed it a
	// host-side power sensor).
	Detector *recovery.Detector

	TickMS int
	Logger zerolog.Logger

	// OnRx, when set, sees every inbound chunk (monitor frame log).
	OnRx func([]byte)
	// OnTick, when set, receives the post-tick console snapshot.
	OnTick func(Snapshot)
}

// Session pumps bytes between the link and the console: a reader
// goroutine fills a channel, the tick loop drains it into the frame FIFO,
// advances the cooperative clock and runs one console tick. Outbound
// frames go straight from the console to the link.
type Session struct {
	cfg  SessionConfig
	fifo *panel.FifoBuffer
}

// NewSession builds a session. The console must have been created with
// the same link as its output writer.
func NewSession(cfg SessionConfig) *Session {
	if cfg.TickMS <= 0 {
		cfg.TickMS = 10
	}
	return &Session{
		cfg:  cfg,
		fifo: panel.NewFifoBuffer(fifoCapacity),
	}
}

// Run pumps until the context ends or the link dies.
func (s *Session) Run(ctx context.Context) error {
	log := s.cfg.Logger

	readCh := make(chan []byte, 16)
	readErr := make(chan error, 1)
	go s.reader(readCh, readErr)

	ticker := time.NewTicker(time.Duration(s.cfg.TickMS) * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			if err == io.EOF || err == link.ErrClosed {
				log.Info().Msg("panel link closed")
				return nil
			}
			return err

		case chunk := <-readCh:
			if s.cfg.OnRx != nil {
				s.cfg.OnRx(chunk)
			}
			log.Trace().Str("rx", hex.EncodeToString(chunk)).Msg("panel bytes")
			if n := s.fifo.Write(chunk); n < len(chunk) {
				log.Warn().Int("dropped", len(chunk)-n).Msg("inbound fifo overrun")
			}

		case <-ticker.C:
			core.SetTime(core.TimerFromMS(uint32(time.Since(start).Milliseconds())))
			core.ProcessTimers()
			if s.cfg.Detector != nil {
				s.cfg.Detector.Tick()
			}
			s.cfg.Console.Tick(s.fifo)

			if s.cfg.OnTick != nil {
				s.cfg.OnTick(Snapshot{
					State: s.cfg.Console.Lifecycle().State(),
					Pause: s.cfg.Console.Lifecycle().Pause(),
					Page:  s.cfg.Console.CurrentPage(),
				})
			}
		}
	}
}

// reader moves link bytes onto the channel. A zero-byte read is a serial
// timeout, not an error.
func (s *Session) reader(ch chan<- []byte, errCh chan<- error) {
	buf := make([]byte, 256)
	for {
		n, err := s.cfg.Link.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- chunk
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}
