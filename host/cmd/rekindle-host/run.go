package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rekindle/host"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Bridge a panel to the machine profile",
	Long: `run connects the panel transport to the console and pumps frames
until interrupted. A valid recovery record on disk arms the resume offer
at the panel boot handshake.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg.LogLevel)

		l, err := openLink(cfg)
		if err != nil {
			return err
		}
		defer l.Close()

		r, err := buildRig(cfg, l, log)
		if err != nil {
			return err
		}

		// A stored job offers itself before the panel comes up.
		r.store.CheckAtBoot()
		if r.store.Valid() {
			r.console.PowerLossRecovery()
			log.Info().
				Str("file", r.store.Record().FilePathString()).
				Uint8("progress", r.store.Record().ProgressPercent).
				Msg("recovery record found")
		}

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info().Str("device", cfg.Device).Str("url", cfg.URL).
			Msg("console session starting")

		session := host.NewSession(host.SessionConfig{
			Link:    l,
			Console: r.console,
			TickMS:  cfg.TickMS,
			Logger:  log,
		})
		err = session.Run(ctx)
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
