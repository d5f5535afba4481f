package websocket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is a single live WebSocket connection. After join_chat it belongs to
// exactly one channel, named by the user's own id. A user may hold any number
// of concurrent connections, all joined to the same channel.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	closed bool // guarded by the manager's mutex
}

// Manager is the process-wide channel registry: userID -> live connections.
// Membership is populated on join_chat and pruned when a connection drops.
// It is per-process state; cross-instance delivery goes through the optional
// fan-out publisher.
type Manager struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]bool
	publish  func(userID string, payload []byte)
}

func NewManager() *Manager {
	return &Manager{
		channels: make(map[string]map[*Client]bool),
	}
}

// SetPublisher installs a fan-out hook invoked for every push, so a pub/sub
// bridge can reach users connected to other instances.
func (m *Manager) SetPublisher(fn func(userID string, payload []byte)) {
	m.mu.Lock()
	m.publish = fn
	m.mu.Unlock()
}

// Join adds the connection to the user's channel. Repeat joins are no-ops;
// joining a different channel moves the connection.
func (m *Manager) Join(client *Client, userID string) {
	if client == nil || userID == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if client.UserID == userID && m.channels[userID][client] {
		return
	}

	if client.UserID != "" && client.UserID != userID {
		m.detachLocked(client)
	}

	client.UserID = userID
	if m.channels[userID] == nil {
		m.channels[userID] = make(map[*Client]bool)
	}
	m.channels[userID][client] = true
	log.Printf("WebSocket: connection joined channel %s (%d live)", userID, len(m.channels[userID]))
}

// Remove prunes a dropped connection and releases its send channel.
func (m *Manager) Remove(client *Client) {
	if client == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.detachLocked(client)
	m.closeSendLocked(client)
}

func (m *Manager) detachLocked(client *Client) {
	conns, ok := m.channels[client.UserID]
	if !ok {
		return
	}
	delete(conns, client)
	if len(conns) == 0 {
		delete(m.channels, client.UserID)
	}
}

func (m *Manager) closeSendLocked(client *Client) {
	if !client.closed {
		client.closed = true
		close(client.Send)
	}
}

// SendToUser delivers a named event to every live connection on the user's
// channel. A user with no connections is a silent no-op: live delivery is
// best-effort, durability is the notification record's job.
func (m *Manager) SendToUser(userID, event string, data interface{}) {
	payload, err := Envelope(event, data)
	if err != nil {
		log.Printf("WebSocket: failed to marshal %s event for %s: %v", event, userID, err)
		return
	}

	m.DeliverLocal(userID, payload)

	m.mu.RLock()
	publish := m.publish
	m.mu.RUnlock()
	if publish != nil {
		publish(userID, payload)
	}
}

// EmitToClient sends an event to a single connection, used for protocol
// errors before the connection has joined a channel.
func (m *Manager) EmitToClient(client *Client, event string, data interface{}) {
	payload, err := Envelope(event, data)
	if err != nil {
		log.Printf("WebSocket: failed to marshal %s event: %v", event, err)
		return
	}

	m.mu.RLock()
	var full bool
	if !client.closed {
		select {
		case client.Send <- payload:
		default:
			full = true
		}
	}
	m.mu.RUnlock()

	if full {
		m.dropSlowClient(client)
	}
}

// DeliverLocal writes an already-enveloped payload to the user's local
// connections only. The fan-out bridge uses it for events published by other
// instances.
func (m *Manager) DeliverLocal(userID string, payload []byte) {
	m.mu.RLock()
	var full []*Client
	for client := range m.channels[userID] {
		if client.closed {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			full = append(full, client)
		}
	}
	m.mu.RUnlock()

	for _, client := range full {
		log.Printf("WebSocket: send buffer full on channel %s, dropping connection", userID)
		m.dropSlowClient(client)
	}
}

func (m *Manager) dropSlowClient(client *Client) {
	m.mu.Lock()
	m.detachLocked(client)
	m.closeSendLocked(client)
	m.mu.Unlock()
}

// ConnectionCount reports the number of live connections on a channel.
func (m *Manager) ConnectionCount(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.channels[userID])
}
