package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is a pointer input client for a Server.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Dial connects to a server endpoint such as ws://127.0.0.1:7878/pointer.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Send writes one pointer event.
func (c *Client) Send(ev Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(ev)
}

// Stream delivers server messages until the connection ends or ctx is
// cancelled, then closes the channel.
func (c *Client) Stream(ctx context.Context) <-chan Message {
	ch := make(chan Message, 16)

	go func() {
		<-ctx.Done()
		c.conn.Close()
	}()

	go func() {
		defer close(ch)
		for {
			var msg Message
			if err := c.conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}
