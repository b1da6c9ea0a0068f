//go:build sql
// +build sql

package sqlstorage_test

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kiruthikag2611/Planify/internal/storage"
	sqlstorage "github.com/kiruthikag2611/Planify/internal/storage/sql"
	"github.com/stretchr/testify/require"
)

var (
	host     = "127.0.0.1"
	port     = 5532
	database = "testing"
	username = "postgres"
	password = "pas"
)

func TestMain(m *testing.M) {
	pgHost := os.Getenv("POSTGRES_HOST")
	pgPort := os.Getenv("POSTGRES_PORT")
	if pgHost != "" {
		host = pgHost
	}
	if pgPort != "" {
		port, _ = strconv.Atoi(pgPort)
	}

	_ = cleanupDB()
	code := m.Run()
	os.Exit(code)
}

func newEvent(date string) storage.Event {
	return storage.Event{
		OwnerID:     "testId",
		Title:       "test",
		Type:        "Study",
		Description: "description",
		Date:        date,
		StartTime:   "09:00",
		EndTime:     "10:00",
	}
}

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("add event", func(t *testing.T) {
		s := createStorage(t)
		e := newEvent("2300-01-01")
		require.NoError(t, s.AddEvent(ctx, &e))
		require.NotEmpty(t, e.ID)
		require.Equal(t, storage.DefaultPriority, e.Priority)

		events, err := s.ListEvents(ctx, storage.Filter{OwnerID: "testId", Date: "2300-01-01"})
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		compareEvents(t, e, events[0])
	})

	t.Run("update event", func(t *testing.T) {
		s := createStorage(t)
		e := newEvent("2300-01-01")
		require.NoError(t, s.AddEvent(ctx, &e))

		e.Title = "updated title"
		e.Date = "2300-01-02"
		e.StartTime = "11:21"
		e.NotificationEnabled = true
		e.ReminderTime = "1hour"
		require.NoError(t, s.UpdateEvent(ctx, e.ID, e))

		actual, err := s.GetEvent(ctx, e.ID)
		require.NoError(t, err)
		compareEvents(t, e, actual)
	})

	t.Run("delete event", func(t *testing.T) {
		s := createStorage(t)
		e := newEvent("2300-01-01")
		require.NoError(t, s.AddEvent(ctx, &e))
		require.NoError(t, s.RemoveEvent(ctx, e.ID))

		events, err := s.ListEvents(ctx, storage.Filter{OwnerID: "testId"})
		require.NoError(t, err)
		require.Equal(t, 0, len(events))
	})

	t.Run("list", func(t *testing.T) {
		s := createStorage(t)
		initDate := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 60; i++ {
			e := newEvent(initDate.AddDate(0, 0, i).Format("2006-01-02"))
			require.NoError(t, s.AddEvent(ctx, &e))
		}

		list, err := s.ListEvents(ctx, storage.Filter{OwnerID: "testId", Date: "2300-01-01"})
		require.NoError(t, err)
		require.Equal(t, 1, len(list))

		list, err = s.ListEvents(ctx, storage.Filter{OwnerID: "testId", From: "2300-01-01", To: "2300-01-07"})
		require.NoError(t, err)
		require.Equal(t, 7, len(list))

		list, err = s.ListEvents(ctx, storage.Filter{OwnerID: "testId", From: "2300-02-01", To: "2300-02-28"})
		require.NoError(t, err)
		require.Equal(t, 28, len(list))

		require.NoError(t, s.RemoveBefore(ctx, initDate.AddDate(0, 0, 30)))
		list, err = s.ListEvents(ctx, storage.Filter{OwnerID: "testId"})
		require.NoError(t, err)
		require.Equal(t, 30, len(list))
	})

	t.Run("notifier", func(t *testing.T) {
		s := createStorage(t)
		e := newEvent("2300-01-01")
		e.NotificationEnabled = true
		e.ReminderTime = "1day"
		require.NoError(t, s.AddEvent(ctx, &e))

		from := time.Date(2299, 12, 31, 8, 55, 0, 0, time.UTC)
		events, err := s.GetEventsByNotifier(ctx, from, from.Add(10*time.Minute))
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		require.Equal(t, e.ID, events[0].ID)
	})

	t.Run("profile", func(t *testing.T) {
		s := createStorage(t)
		require.NoError(t, s.SaveProfile(ctx, storage.Profile{UserID: "testId", Email: "a@b.c", LastLogin: time.Now()}))
		require.NoError(t, s.SaveProfile(ctx, storage.Profile{UserID: "testId", Answers: map[string]string{"subjects": "Math"}}))

		p, err := s.GetProfile(ctx, "testId")
		require.NoError(t, err)
		require.Equal(t, "a@b.c", p.Email)
		require.Equal(t, "Math", p.Answers["subjects"])
		require.False(t, p.LastLogin.IsZero())
	})
}

func TestStorageNegativeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("add event with same id", func(t *testing.T) {
		s := createStorage(t)
		e := newEvent("2300-01-01")
		require.NoError(t, s.AddEvent(ctx, &e))
		require.ErrorIs(t, s.AddEvent(ctx, &e), storage.ErrDuplicateEventID)
	})

	t.Run("update not exist event", func(t *testing.T) {
		s := createStorage(t)
		e := newEvent("2300-01-01")
		require.ErrorIs(t, s.UpdateEvent(ctx, "00000000-0000-0000-0000-000000000000", e), storage.ErrNotFoundEvent)
	})

	t.Run("delete not exist event", func(t *testing.T) {
		s := createStorage(t)
		require.ErrorIs(t, s.RemoveEvent(ctx, "00000000-0000-0000-0000-000000000000"), storage.ErrNotFoundEvent)
	})

	t.Run("get malformed id", func(t *testing.T) {
		s := createStorage(t)
		_, err := s.GetEvent(ctx, "___not_exists___")
		require.ErrorIs(t, err, storage.ErrNotFoundEvent)
	})

	t.Run("incorrect date", func(t *testing.T) {
		s := createStorage(t)
		e := newEvent("2300-02-30")
		require.ErrorIs(t, s.AddEvent(ctx, &e), storage.ErrIncorrectEventDate)
	})

	t.Run("missing profile", func(t *testing.T) {
		s := createStorage(t)
		_, err := s.GetProfile(ctx, "nobody")
		require.ErrorIs(t, err, storage.ErrNotFoundProfile)
	})
}

func cleanupDB() error {
	db, err := sqlx.Connect(
		"postgres",
		fmt.Sprintf("sslmode=disable host=%s port=%d dbname=%s user=%s password=%s", host, port, database, username, password),
	)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("TRUNCATE TABLE Events, Profiles")
	return err
}

func compareEvents(t *testing.T, expected storage.Event, actual storage.Event) {
	t.Helper()
	expected.CreatedAt = actual.CreatedAt
	expected.UpdatedAt = actual.UpdatedAt
	require.Equal(t, expected, actual)
}

func createStorage(t *testing.T) *sqlstorage.Storage {
	t.Helper()
	s := sqlstorage.New(sqlstorage.Config{
		Host: host, Port: port, Database: database, Username: username, Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	require.NoError(t, s.Connect(ctx))
	t.Cleanup(func() {
		s.Close(ctx)
		require.NoError(t, cleanupDB())
	})
	return s
}
