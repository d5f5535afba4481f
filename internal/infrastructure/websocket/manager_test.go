package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(buffer int) *Client {
	return &Client{
		Send: make(chan []byte, buffer),
	}
}

func receiveEvent(t *testing.T, c *Client) WSMessage {
	t.Helper()

	select {
	case payload, ok := <-c.Send:
		if !ok {
			t.Fatal("send channel closed")
		}
		var msg WSMessage
		assert.NoError(t, json.Unmarshal(payload, &msg))
		return msg
	default:
		t.Fatal("no payload on send channel")
	}
	return WSMessage{}
}

func TestJoinAndSendToUser(t *testing.T) {
	m := NewManager()
	client := newTestClient(4)

	m.Join(client, "user-1")
	assert.Equal(t, 1, m.ConnectionCount("user-1"))

	m.SendToUser("user-1", EventNewNotification, map[string]string{"title": "hi"})

	msg := receiveEvent(t, client)
	assert.Equal(t, EventNewNotification, msg.Event)
	assert.Contains(t, string(msg.Data), "hi")
	assert.NotEmpty(t, msg.Timestamp)
}

func TestSendToUserReachesEveryConnection(t *testing.T) {
	m := NewManager()
	first := newTestClient(4)
	second := newTestClient(4)

	m.Join(first, "user-1")
	m.Join(second, "user-1")
	assert.Equal(t, 2, m.ConnectionCount("user-1"))

	m.SendToUser("user-1", EventPetUpdated, map[string]string{"id": "pet-1"})

	assert.Equal(t, EventPetUpdated, receiveEvent(t, first).Event)
	assert.Equal(t, EventPetUpdated, receiveEvent(t, second).Event)
}

func TestSendToUserWithoutConnectionsIsNoop(t *testing.T) {
	m := NewManager()

	m.SendToUser("nobody", EventNewNotification, map[string]string{"title": "hi"})

	assert.Equal(t, 0, m.ConnectionCount("nobody"))
}

func TestRepeatJoinIsIdempotent(t *testing.T) {
	m := NewManager()
	client := newTestClient(4)

	m.Join(client, "user-1")
	m.Join(client, "user-1")

	assert.Equal(t, 1, m.ConnectionCount("user-1"))
}

func TestJoinMovesConnectionBetweenChannels(t *testing.T) {
	m := NewManager()
	client := newTestClient(4)

	m.Join(client, "user-1")
	m.Join(client, "user-2")

	assert.Equal(t, 0, m.ConnectionCount("user-1"))
	assert.Equal(t, 1, m.ConnectionCount("user-2"))

	m.SendToUser("user-2", EventMessageSent, map[string]string{"id": "m1"})
	assert.Equal(t, EventMessageSent, receiveEvent(t, client).Event)
}

func TestRemoveClosesSendChannel(t *testing.T) {
	m := NewManager()
	client := newTestClient(4)

	m.Join(client, "user-1")
	m.Remove(client)

	assert.Equal(t, 0, m.ConnectionCount("user-1"))
	_, ok := <-client.Send
	assert.False(t, ok)

	// Removing twice must not panic on a closed channel.
	m.Remove(client)
}

func TestSlowConnectionIsDropped(t *testing.T) {
	m := NewManager()
	slow := newTestClient(1)
	healthy := newTestClient(4)

	m.Join(slow, "user-1")
	m.Join(healthy, "user-1")

	m.SendToUser("user-1", EventNewNotification, map[string]string{"n": "1"})
	m.SendToUser("user-1", EventNewNotification, map[string]string{"n": "2"})

	assert.Equal(t, 1, m.ConnectionCount("user-1"))
	assert.Equal(t, 2, len(healthy.Send))
}

func TestPublisherHookSeesEveryPush(t *testing.T) {
	m := NewManager()

	var gotUser string
	var gotPayload []byte
	m.SetPublisher(func(userID string, payload []byte) {
		gotUser = userID
		gotPayload = payload
	})

	m.SendToUser("user-9", EventReceiveMessage, map[string]string{"content": "hello"})

	assert.Equal(t, "user-9", gotUser)
	var msg WSMessage
	assert.NoError(t, json.Unmarshal(gotPayload, &msg))
	assert.Equal(t, EventReceiveMessage, msg.Event)
}

func TestDeliverLocalSkipsPublisher(t *testing.T) {
	m := NewManager()
	client := newTestClient(4)
	m.Join(client, "user-1")

	published := false
	m.SetPublisher(func(string, []byte) { published = true })

	payload, err := Envelope(EventNewNotification, map[string]string{"title": "hi"})
	assert.NoError(t, err)
	m.DeliverLocal("user-1", payload)

	assert.False(t, published)
	assert.Equal(t, EventNewNotification, receiveEvent(t, client).Event)
}

func TestEmitToClientTargetsSingleConnection(t *testing.T) {
	m := NewManager()
	first := newTestClient(4)
	second := newTestClient(4)
	m.Join(first, "user-1")
	m.Join(second, "user-1")

	m.EmitToClient(first, EventMessageError, map[string]string{"error": "boom"})

	assert.Equal(t, 1, len(first.Send))
	assert.Equal(t, 0, len(second.Send))
}
