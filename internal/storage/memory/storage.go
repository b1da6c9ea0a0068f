package memorystorage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/util"
)

type Storage struct {
	mu       sync.RWMutex
	data     map[string]storage.Event
	profiles map[string]storage.Profile
	now      func() time.Time
}

func New() *Storage {
	return &Storage{
		data:     make(map[string]storage.Event),
		profiles: make(map[string]storage.Profile),
		now:      time.Now,
	}
}

func (s *Storage) Connect(_ context.Context) error {
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	return nil
}

func (s *Storage) AddEvent(_ context.Context, e *storage.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[e.ID]; ok {
		return fmt.Errorf("duplicate ID %q: %w", e.ID, storage.ErrDuplicateEventID)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.ApplyDefaults()
	e.CreatedAt = s.now().UTC()
	e.UpdatedAt = e.CreatedAt
	s.data[e.ID] = *e
	return nil
}

func (s *Storage) UpdateEvent(_ context.Context, id string, e storage.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.data[id]
	if !ok {
		return fmt.Errorf("failed to update event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	e.ID = id
	e.ApplyDefaults()
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = s.now().UTC()
	s.data[id] = e
	return nil
}

func (s *Storage) RemoveEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return fmt.Errorf("failed to remove event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	delete(s.data, id)
	return nil
}

func (s *Storage) GetEvent(_ context.Context, id string) (storage.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[id]
	if !ok {
		return storage.Event{}, fmt.Errorf("event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return e, nil
}

func (s *Storage) ListEvents(_ context.Context, f storage.Filter) ([]storage.Event, error) {
	return s.selectBy(f.Match), nil
}

func (s *Storage) GetEventsByNotifier(_ context.Context, from time.Time, to time.Time) ([]storage.Event, error) {
	events := s.selectBy(func(e storage.Event) bool { return e.NotificationEnabled })
	return storage.DueReminders(events, from, to), nil
}

// RemoveBefore drops every event dated strictly before date.
func (s *Storage) RemoveBefore(_ context.Context, date time.Time) error {
	bound := util.FormatDate(date)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.data {
		if e.Date < bound {
			delete(s.data, id)
		}
	}
	return nil
}

func (s *Storage) SaveProfile(_ context.Context, p storage.Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("profile without user id: %w", storage.ErrNotFoundProfile)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.profiles[p.UserID].Merge(p)
	merged.UserID = p.UserID
	merged.UpdatedAt = s.now().UTC()
	s.profiles[p.UserID] = merged
	return nil
}

func (s *Storage) GetProfile(_ context.Context, userID string) (storage.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return storage.Profile{}, fmt.Errorf("profile %q: %w", userID, storage.ErrNotFoundProfile)
	}
	return p, nil
}

func (s *Storage) selectBy(keep func(storage.Event) bool) []storage.Event {
	events := make([]storage.Event, 0)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.data {
		if keep(e) {
			events = append(events, e)
		}
	}
	storage.SortEvents(events)
	return events
}
