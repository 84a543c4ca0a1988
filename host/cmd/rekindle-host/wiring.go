package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"rekindle/host"
	"rekindle/recovery"
	"rekindle/sim"
	"rekindle/ui"
)

// rig is one fully wired console stack: the simulated machine, the media
// listing from the profile, the recovery store and the console itself.
type rig struct {
	cfg     host.Config
	profile sim.Profile
	engine  *sim.Engine
	media   *sim.Media
	store   *recovery.Store
	console *ui.Console
	log     zerolog.Logger
}

// newLogger builds the host logger on the configured level.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// buildRig assembles the console stack with panelOut as the frame sink.
func buildRig(cfg host.Config, panelOut io.Writer, log zerolog.Logger) (*rig, error) {
	profile := sim.DefaultProfile()
	if cfg.Profile != "" {
		var err error
		profile, err = sim.LoadProfile(cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
	}

	settings, err := host.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}

	engine := sim.NewEngine(profile)
	media := sim.NewMedia(profile.Files)
	store := recovery.NewStore(engine, host.NewFileMedium(cfg.RecordFile),
		recovery.StoreConfig{
			SaveIntervalMS: profile.SaveIntervalMS,
			MinZChange:     float32(profile.MinZChange),
		})

	console := ui.NewConsole(ui.Config{
		Engine:   engine,
		Media:    media,
		Out:      panelOut,
		Store:    store,
		Settings: settings,
		OnSettingsChange: func(s ui.Settings) {
			if err := host.SaveSettings(cfg.SettingsFile, s); err != nil {
				log.Error().Err(err).Msg("persist settings")
			} else {
				log.Info().Bool("audio", s.Audio).Msg("settings saved")
			}
		},
	})
	engine.SetNotifier(console)

	return &rig{
		cfg:     cfg,
		profile: profile,
		engine:  engine,
		media:   media,
		store:   store,
		console: console,
		log:     log,
	}, nil
}
