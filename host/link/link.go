// Package link provides the host-side byte transports to a DGUS panel:
// a native serial port and a websocket bridge for remote or simulated
// panels. Both satisfy Link.
package link

import (
	"errors"
	"io"
)

// Link is a bidirectional panel byte stream.
type Link interface {
	io.ReadWriteCloser
}

// ErrClosed is returned by reads on a link that has been closed or has
// failed permanently.
var ErrClosed = errors.New("link: connection closed")
