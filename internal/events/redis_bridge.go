package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBridge relays locally published events to other instances over a
// Redis pub/sub channel and republishes their events locally.
type RedisBridge struct {
	client  *redis.Client
	channel string
	origin  string
	local   Dispatcher
	logger  *zap.Logger
}

// NewRedisBridge builds a bridge with a fresh instance id.
func NewRedisBridge(client *redis.Client, channel string, local Dispatcher, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		local:   local,
		logger:  logger,
	}
}

// Attach forwards every event type the service emits.
func (b *RedisBridge) Attach() {
	SubscribeMany(b.local, AllEventTypes, b.Forward)
}

// Forward publishes a locally raised event to the channel. Relayed events
// are ignored so they do not bounce between instances.
func (b *RedisBridge) Forward(ctx context.Context, event Event) error {
	if event.Origin != "" {
		return nil
	}
	payload, err := encode(event, b.origin)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.logger.Warn("event relay publish failed", zap.String("type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}

// Run consumes the channel until ctx is cancelled.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	b.logger.Info("event relay subscribed", zap.String("channel", b.channel), zap.String("origin", b.origin))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return errors.New("event relay channel closed")
			}
			event, err := decode(msg.Payload)
			if err != nil {
				b.logger.Warn("dropping malformed relayed event", zap.Error(err))
				continue
			}
			if event.Origin == b.origin {
				continue
			}
			if err := b.local.Publish(ctx, event); err != nil {
				b.logger.Warn("relayed event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
			}
		}
	}
}

func encode(event Event, origin string) ([]byte, error) {
	event.Origin = origin
	return json.Marshal(event)
}

func decode(raw string) (Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return Event{}, err
	}
	if event.Type == "" || event.Origin == "" {
		return Event{}, errors.New("event missing type or origin")
	}
	return event, nil
}
