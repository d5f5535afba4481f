package websocket

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// ReadPump reads envelopes off the connection and hands them to handle. It
// owns connection teardown: on any read error the connection is pruned from
// the manager and closed.
func (c *Client) ReadPump(m *Manager, handle func(*Client, *WSMessage)) {
	defer func() {
		m.Remove(c)
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket: read error: %v", err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("WebSocket: malformed envelope from channel %q: %v", c.UserID, err)
			m.EmitToClient(c, EventMessageError, map[string]string{"error": "invalid message format"})
			continue
		}

		handle(c, &msg)
	}
}

// WritePump drains the send channel onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("WebSocket: write error: %v", err)
			return
		}
	}
}
