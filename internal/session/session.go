// Package session holds at most one unsaved generated schedule per user.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kiruthikag2611/Planify/internal/timetable"
)

var (
	ErrNoSchedule         = errors.New("no pending schedule")
	ErrUnknownSessionType = errors.New("unknown session store type")
)

// Slot stores the raw generated payload, decoding happens on Load.
type Slot interface {
	Put(ctx context.Context, userID string, raw []byte) error
	Get(ctx context.Context, userID string) ([]byte, error)
	Clear(ctx context.Context, userID string) error
}

type Config struct {
	Type      string
	TTL       time.Duration
	KeyPrefix string
}

func New(config Config, client *redis.Client) (Slot, error) {
	switch config.Type {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis session store without redis client: %w", ErrUnknownSessionType)
		}
		return NewRedis(client, config.KeyPrefix, config.TTL), nil
	default:
		return nil, fmt.Errorf("%q: %w", config.Type, ErrUnknownSessionType)
	}
}

// Load decodes the pending schedule. Malformed content is cleared so the
// next visit starts over.
func Load(ctx context.Context, slot Slot, userID string) (timetable.Schedule, error) {
	raw, err := slot.Get(ctx, userID)
	if err != nil {
		return timetable.Schedule{}, err
	}
	s, err := timetable.DecodeSchedule(raw)
	if err != nil {
		if clearErr := slot.Clear(ctx, userID); clearErr != nil {
			return timetable.Schedule{}, fmt.Errorf("%w (clear failed: %v)", err, clearErr)
		}
		return timetable.Schedule{}, err
	}
	return s, nil
}

type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, userID string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[userID] = append([]byte(nil), raw...)
	return nil
}

func (m *Memory) Get(_ context.Context, userID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.slots[userID]
	if !ok || len(raw) == 0 {
		return nil, ErrNoSchedule
	}
	return append([]byte(nil), raw...), nil
}

func (m *Memory) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, userID)
	return nil
}

const (
	DefaultKeyPrefix = "planify:schedule:"
	DefaultTTL       = 24 * time.Hour
)

type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Put(ctx context.Context, userID string, raw []byte) error {
	return r.client.Set(ctx, r.prefix+userID, raw, r.ttl).Err()
}

func (r *Redis) Get(ctx context.Context, userID string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.prefix+userID).Bytes()
	if errors.Is(err, redis.Nil) || (err == nil && len(raw) == 0) {
		return nil, ErrNoSchedule
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending schedule: %w", err)
	}
	return raw, nil
}

func (r *Redis) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.prefix+userID).Err()
}
