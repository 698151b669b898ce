package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Client drives a remote keypad over websocket. It is not safe for
// concurrent use.
type Client struct {
	conn *websocket.Conn

	// Initial is the state the server reported on connect.
	Initial Reply
}

// Dial connects to the keypad at url (ws:// or wss://) and reads its
// initial state.
func Dial(ctx context.Context, url string) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	c := &Client{conn: conn}
	if err := c.read(&c.Initial); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// Press sends key tokens ("5", "+", "±", "=") and returns the resulting state.
func (c *Client) Press(keys ...string) (Reply, error) {
	return c.Do(Request{Keys: keys})
}

// Send sends a compact key string such as "5+3=".
func (c *Client) Send(input string) (Reply, error) {
	return c.Do(Request{Input: input})
}

// Reset clears the remote calculator.
func (c *Client) Reset() (Reply, error) {
	return c.Do(Request{Reset: true})
}

// Do sends req and waits for the reply. A reply carrying an error is
// returned together with an error wrapping ErrRejected.
func (c *Client) Do(req Request) (Reply, error) {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(req); err != nil {
		return Reply{}, fmt.Errorf("failed to send request: %w", err)
	}

	var reply Reply
	if err := c.read(&reply); err != nil {
		return Reply{}, err
	}
	if reply.Error != "" {
		return reply, fmt.Errorf("%w: %s", ErrRejected, reply.Error)
	}
	return reply, nil
}

func (c *Client) read(reply *Reply) error {
	_ = c.conn.SetReadDeadline(time.Now().Add(writeWait))
	if err := c.conn.ReadJSON(reply); err != nil {
		return fmt.Errorf("failed to read reply: %w", err)
	}
	return nil
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return c.conn.Close()
}
