package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/stretchr/testify/require"
)

const validPayload = `{"schedule":[{"title":"Math","day":"Monday","startTime":"09:00","endTime":"10:00","type":"Class"}],"summary":"ok"}`

func slots(t *testing.T) map[string]Slot {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return map[string]Slot{
		"memory": NewMemory(),
		"redis":  NewRedis(client, "", time.Minute),
	}
}

func TestSlot(t *testing.T) {
	ctx := context.Background()
	for name, slot := range slots(t) {
		slot := slot
		t.Run(name, func(t *testing.T) {
			_, err := Load(ctx, slot, "u1")
			require.ErrorIs(t, err, ErrNoSchedule)

			require.NoError(t, slot.Put(ctx, "u1", []byte(validPayload)))
			s, err := Load(ctx, slot, "u1")
			require.NoError(t, err)
			require.Len(t, s.Schedule, 1)
			require.Equal(t, timetable.Monday, s.Schedule[0].Day)

			_, err = Load(ctx, slot, "u2")
			require.ErrorIs(t, err, ErrNoSchedule)

			require.NoError(t, slot.Clear(ctx, "u1"))
			_, err = Load(ctx, slot, "u1")
			require.ErrorIs(t, err, ErrNoSchedule)
		})
	}
}

func TestLoadMalformedClearsSlot(t *testing.T) {
	ctx := context.Background()
	for name, slot := range slots(t) {
		slot := slot
		t.Run(name, func(t *testing.T) {
			require.NoError(t, slot.Put(ctx, "u1", []byte(`{"schedule":"nope"}`)))
			_, err := Load(ctx, slot, "u1")
			require.ErrorIs(t, err, timetable.ErrMalformedSchedule)

			_, err = slot.Get(ctx, "u1")
			require.ErrorIs(t, err, ErrNoSchedule)
		})
	}
}

func TestRedisTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	slot := NewRedis(client, "p:", time.Minute)

	require.NoError(t, slot.Put(context.Background(), "u1", []byte(validPayload)))
	require.Equal(t, time.Minute, mr.TTL("p:u1"))
	mr.FastForward(2 * time.Minute)

	_, err := slot.Get(context.Background(), "u1")
	require.ErrorIs(t, err, ErrNoSchedule)
}

func TestNew(t *testing.T) {
	s, err := New(Config{Type: "memory"}, nil)
	require.NoError(t, err)
	require.IsType(t, &Memory{}, s)

	_, err = New(Config{Type: "redis"}, nil)
	require.ErrorIs(t, err, ErrUnknownSessionType)
}
