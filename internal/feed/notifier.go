package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

var ErrUnknownNotifier = errors.New("unknown notifier type")

// Notifier carries "events of this owner changed" signals between writers
// and the hub.
type Notifier interface {
	Publish(ctx context.Context, ownerID string) error
	Listen(ctx context.Context, fn func(ownerID string)) error
}

type Config struct {
	Type    string
	Channel string
}

func NewNotifier(config Config, client *redis.Client) (Notifier, error) {
	switch config.Type {
	case "", "local":
		return NewLocal(), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis notifier without redis client: %w", ErrUnknownNotifier)
		}
		return NewRedis(client, config.Channel), nil
	default:
		return nil, fmt.Errorf("%q: %w", config.Type, ErrUnknownNotifier)
	}
}

// Local coalesces signals per owner in process. Publish never blocks: an
// owner already pending is not queued twice.
type Local struct {
	mu      sync.Mutex
	pending map[string]struct{}
	wake    chan struct{}
}

func NewLocal() *Local {
	return &Local{pending: make(map[string]struct{}), wake: make(chan struct{}, 1)}
}

func (l *Local) Publish(_ context.Context, ownerID string) error {
	l.mu.Lock()
	l.pending[ownerID] = struct{}{}
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

func (l *Local) Listen(ctx context.Context, fn func(ownerID string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
			l.mu.Lock()
			owners := l.pending
			l.pending = make(map[string]struct{})
			l.mu.Unlock()

			for owner := range owners {
				fn(owner)
			}
		}
	}
}

const DefaultChannel = "planify:events"

// Redis shares change signals between API instances over a pub/sub channel.
type Redis struct {
	client  *redis.Client
	channel string
}

func NewRedis(client *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{client: client, channel: channel}
}

func (r *Redis) Publish(ctx context.Context, ownerID string) error {
	return r.client.Publish(ctx, r.channel, ownerID).Err()
}

func (r *Redis) Listen(ctx context.Context, fn func(ownerID string)) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}
