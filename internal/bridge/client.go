package bridge

import (
	"fmt"
	"io"

	"github.com/gorilla/websocket"
)

// Client is the controller side of a bridge connection. It adapts the
// WebSocket message stream to io.ReadWriteCloser so protocol.Port can
// wrap it exactly like a serial port: each Write becomes one binary
// message (one frame), reads drain binary messages byte by byte.
type Client struct {
	conn *websocket.Conn
	rd   io.Reader // current inbound message, nil between messages
}

// Dial connects to a bridge at the given URL, e.g.
// ws://192.168.1.50:8457/control.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to bridge at %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Write sends p as a single binary message. The bridge validates it
// before putting it on the bus, so a refused frame surfaces as a close
// error on the next call.
func (c *Client) Write(p []byte) (int, error) {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read returns bytes from the camera, spanning message boundaries so
// io.ReadFull on a fixed-size response works regardless of how the
// bridge chunked it.
func (c *Client) Read(p []byte) (int, error) {
	for {
		if c.rd == nil {
			msgType, r, err := c.conn.NextReader()
			if err != nil {
				return 0, err
			}
			if msgType != websocket.BinaryMessage {
				continue
			}
			c.rd = r
		}

		n, err := c.rd.Read(p)
		if err == io.EOF {
			c.rd = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
