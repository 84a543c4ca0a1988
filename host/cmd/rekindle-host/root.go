package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rekindle/host"
	"rekindle/host/link"
)

var (
	configPath string

	// Transport flags override the config file.
	flagDevice string
	flagBaud   int
	flagURL    string

	flagProfile  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "rekindle-host",
	Short: "DGUS panel console host",
	Long: `rekindle-host bridges a DGUS touch panel to a machine profile.

Connection modes:
  Serial:    --device /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/panel

Configuration comes from a YAML file (--config) with flags taking
precedence. The sim subcommand needs no panel at all.`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&flagDevice, "device", "d", "", "serial device of the panel bridge")
	pf.IntVarP(&flagBaud, "baud", "b", 0, "serial baud rate")
	pf.StringVarP(&flagURL, "url", "u", "", "websocket panel endpoint")
	pf.StringVarP(&flagProfile, "profile", "p", "", "JSON machine profile")
	pf.StringVar(&flagLogLevel, "log-level", "", "trace, debug, info, warn, error")
}

// loadConfig merges the config file with the flag overrides.
func loadConfig() (host.Config, error) {
	cfg := host.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = host.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
	}
	if flagDevice != "" {
		cfg.Device = flagDevice
		cfg.URL = ""
	}
	if flagURL != "" && flagDevice == "" {
		cfg.URL = flagURL
		cfg.Device = ""
	}
	if flagBaud != 0 {
		cfg.Baud = flagBaud
	}
	if flagProfile != "" {
		cfg.Profile = flagProfile
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// openLink picks the transport the config selects.
func openLink(cfg host.Config) (link.Link, error) {
	switch {
	case cfg.Device != "":
		sc := link.DefaultSerialConfig(cfg.Device)
		sc.Baud = cfg.Baud
		return link.OpenSerial(sc)
	case cfg.URL != "":
		return link.DialWebSocket(cfg.URL)
	default:
		return nil, fmt.Errorf("no panel transport: set --device or --url")
	}
}
