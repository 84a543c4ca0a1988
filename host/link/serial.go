package link

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// SerialConfig holds the native serial port parameters. DGUS panels run
// 115200 8N1 by default.
type SerialConfig struct {
	Device string // e.g. /dev/ttyUSB0, COM3
	Baud   int

	// ReadTimeoutMS bounds a single Read so the session loop keeps
	// ticking on a silent panel. 0 means blocking reads.
	ReadTimeoutMS int
}

// DefaultSerialConfig returns the usual DGUS panel settings.
func DefaultSerialConfig(device string) SerialConfig {
	return SerialConfig{
		Device:        device,
		Baud:          115200,
		ReadTimeoutMS: 50,
	}
}

// SerialLink wraps a tarm/serial port.
type SerialLink struct {
	port *serial.Port
}

// OpenSerial opens the panel serial port.
func OpenSerial(cfg SerialConfig) (*SerialLink, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}
	return &SerialLink{port: port}, nil
}

func (s *SerialLink) Read(p []byte) (int, error)  { return s.port.Read(p) }
func (s *SerialLink) Write(p []byte) (int, error) { return s.port.Write(p) }

func (s *SerialLink) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
