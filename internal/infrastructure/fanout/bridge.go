// Package fanout bridges gateway pushes across server instances through a
// valkey pub/sub channel. The in-process channel registry only reaches users
// connected to this instance; with the bridge enabled, every push is also
// published so sibling instances can deliver it to their own connections.
package fanout

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	ws "paws/internal/infrastructure/websocket"
	"paws/pkg/logger"
)

const pushChannel = "paws:push"

type envelope struct {
	Instance string          `json:"instance"`
	UserID   string          `json:"userId"`
	Payload  json.RawMessage `json:"payload"`
}

type Bridge struct {
	client   valkey.Client
	manager  *ws.Manager
	instance string
}

// NewBridge connects to valkey and installs itself as the manager's publisher.
func NewBridge(addr string, manager *ws.Manager) (*Bridge, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}

	b := &Bridge{
		client:   client,
		manager:  manager,
		instance: uuid.New().String(),
	}
	manager.SetPublisher(b.publish)
	return b, nil
}

// Start subscribes to the push channel and delivers events published by other
// instances to local connections. Own publications are skipped: local
// delivery already happened before the publish.
func (b *Bridge) Start(ctx context.Context) {
	go func() {
		err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(pushChannel).Build(), func(msg valkey.PubSubMessage) {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Message), &env); err != nil {
				logger.Error("fanout: dropping malformed envelope: %v", err)
				return
			}
			if env.Instance == b.instance {
				return
			}
			b.manager.DeliverLocal(env.UserID, env.Payload)
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("fanout: subscription ended: %v", err)
		}
	}()
	logger.Info("fanout: bridge active (instance %s)", b.instance)
}

func (b *Bridge) publish(userID string, payload []byte) {
	raw, err := json.Marshal(envelope{
		Instance: b.instance,
		UserID:   userID,
		Payload:  payload,
	})
	if err != nil {
		return
	}

	ctx := context.Background()
	if err := b.client.Do(ctx, b.client.B().Publish().Channel(pushChannel).Message(string(raw)).Build()).Error(); err != nil {
		logger.Error("fanout: publish for user %s failed: %v", userID, err)
	}
}

func (b *Bridge) Close() {
	b.client.Close()
}
