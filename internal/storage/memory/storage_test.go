package memorystorage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/stretchr/testify/require"
)

func newEvent(owner, date, start string) storage.Event {
	return storage.Event{OwnerID: owner, Title: "test", Date: date, StartTime: start, EndTime: "23:00", Type: "Study"}
}

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("add event", func(t *testing.T) {
		s := New()
		e := newEvent("u1", "2024-01-03", "09:00")
		require.NoError(t, s.AddEvent(ctx, &e))
		require.NotEmpty(t, e.ID)
		require.Equal(t, storage.DefaultPriority, e.Priority)
		require.Equal(t, storage.DefaultReminderTime, e.ReminderTime)
		require.False(t, e.CreatedAt.IsZero())

		got, err := s.GetEvent(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, e, got)
	})

	t.Run("update event", func(t *testing.T) {
		s := New()
		e := newEvent("u1", "2024-01-03", "09:00")
		require.NoError(t, s.AddEvent(ctx, &e))

		e.Title = "updated"
		e.Date = "2024-01-04"
		require.NoError(t, s.UpdateEvent(ctx, e.ID, e))

		got, err := s.GetEvent(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, "updated", got.Title)
		require.Equal(t, "2024-01-04", got.Date)
		require.Equal(t, e.CreatedAt, got.CreatedAt)
	})

	t.Run("delete event", func(t *testing.T) {
		s := New()
		e := newEvent("u1", "2024-01-03", "09:00")
		require.NoError(t, s.AddEvent(ctx, &e))
		require.NoError(t, s.RemoveEvent(ctx, e.ID))

		_, err := s.GetEvent(ctx, e.ID)
		require.ErrorIs(t, err, storage.ErrNotFoundEvent)
	})

	t.Run("list", func(t *testing.T) {
		s := New()
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 60; i++ {
			e := newEvent("u1", start.AddDate(0, 0, i).Format("2006-01-02"), "10:00")
			require.NoError(t, s.AddEvent(ctx, &e))
		}
		other := newEvent("u2", "2024-01-01", "08:00")
		require.NoError(t, s.AddEvent(ctx, &other))

		list, err := s.ListEvents(ctx, storage.Filter{OwnerID: "u1", Date: "2024-01-01"})
		require.NoError(t, err)
		require.Len(t, list, 1)

		list, err = s.ListEvents(ctx, storage.Filter{OwnerID: "u1", From: "2024-01-01", To: "2024-01-07"})
		require.NoError(t, err)
		require.Len(t, list, 7)
		require.Equal(t, "2024-01-01", list[0].Date)
		require.Equal(t, "2024-01-07", list[6].Date)

		list, err = s.ListEvents(ctx, storage.Filter{OwnerID: "u1", From: "2024-02-01", To: "2024-02-29"})
		require.NoError(t, err)
		require.Len(t, list, 29)

		list, err = s.ListEvents(ctx, storage.Filter{OwnerID: "u2"})
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("remove before", func(t *testing.T) {
		s := New()
		for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
			e := newEvent("u1", d, "10:00")
			require.NoError(t, s.AddEvent(ctx, &e))
		}
		require.NoError(t, s.RemoveBefore(ctx, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
		list, err := s.ListEvents(ctx, storage.Filter{OwnerID: "u1"})
		require.NoError(t, err)
		require.Len(t, list, 2)
	})

	t.Run("profiles merge", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SaveProfile(ctx, storage.Profile{UserID: "u1", Email: "a@b.c"}))
		require.NoError(t, s.SaveProfile(ctx, storage.Profile{UserID: "u1", Answers: map[string]string{"role": "Student"}}))

		p, err := s.GetProfile(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "a@b.c", p.Email)
		require.Equal(t, "Student", p.Answers["role"])

		_, err = s.GetProfile(ctx, "nobody")
		require.ErrorIs(t, err, storage.ErrNotFoundProfile)
	})
}

func TestStorageNegativeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("add event with same id", func(t *testing.T) {
		s := New()
		e := newEvent("u1", "2024-01-03", "09:00")
		require.NoError(t, s.AddEvent(ctx, &e))
		require.ErrorIs(t, s.AddEvent(ctx, &e), storage.ErrDuplicateEventID)
	})

	t.Run("update not exist event", func(t *testing.T) {
		s := New()
		require.ErrorIs(t, s.UpdateEvent(ctx, "___not_exists___", newEvent("u1", "2024-01-03", "09:00")), storage.ErrNotFoundEvent)
	})

	t.Run("delete not exist event", func(t *testing.T) {
		require.ErrorIs(t, New().RemoveEvent(ctx, "___not_exists___"), storage.ErrNotFoundEvent)
	})

	t.Run("incorrect date", func(t *testing.T) {
		e := newEvent("u1", "2024-13-03", "09:00")
		require.ErrorIs(t, New().AddEvent(ctx, &e), storage.ErrIncorrectEventDate)
	})

	t.Run("missing owner", func(t *testing.T) {
		e := newEvent("", "2024-01-03", "09:00")
		require.ErrorIs(t, New().AddEvent(ctx, &e), storage.ErrIncorrectEvent)
	})
}

func TestStorageNotifier(t *testing.T) {
	ctx := context.Background()
	s := New()

	due := newEvent("u1", "2024-01-03", "09:00")
	due.NotificationEnabled = true
	due.ReminderTime = "30min"
	silent := newEvent("u1", "2024-01-03", "09:00")
	later := newEvent("u1", "2024-01-03", "18:00")
	later.NotificationEnabled = true
	for _, e := range []*storage.Event{&due, &silent, &later} {
		require.NoError(t, s.AddEvent(ctx, e))
	}

	from := time.Date(2024, 1, 3, 8, 25, 0, 0, time.UTC)
	events, err := s.GetEventsByNotifier(ctx, from, from.Add(10*time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, due.ID, events[0].ID)
}

func TestStorageConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	s := New()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := newEvent("u1", "2024-01-03", fmt.Sprintf("%02d:00", i%24))
			require.NoError(t, s.AddEvent(ctx, &e))
		}(i)
	}
	wg.Wait()

	list, err := s.ListEvents(ctx, storage.Filter{OwnerID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 50)
}
