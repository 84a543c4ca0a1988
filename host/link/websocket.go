package link

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// WSLink carries panel bytes over a websocket as binary messages, for
// remote panels and browser-based panel simulators. Messages are
// buffered so Read keeps the usual stream semantics.
type WSLink struct {
	conn *websocket.Conn

	buf    []byte
	offset int
	closed bool
}

// DialWebSocket connects to a ws:// or wss:// panel endpoint.
func DialWebSocket(url string) (*WSLink, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &WSLink{conn: conn}, nil
}

func (w *WSLink) Read(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	if w.offset < len(w.buf) {
		n := copy(p, w.buf[w.offset:])
		w.offset += n
		return n, nil
	}

	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.closed = true
			return 0, err
		}
		// The panel protocol is binary; anything else is chatter.
		if messageType != websocket.BinaryMessage {
			continue
		}
		w.buf = data
		w.offset = copy(p, data)
		return w.offset, nil
	}
}

func (w *WSLink) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WSLink) Close() error {
	w.closed = true
	return w.conn.Close()
}
