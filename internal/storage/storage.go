package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrDuplicateEventID   = errors.New("event with same ID exists")
	ErrNotFoundEvent      = errors.New("event not found")
	ErrNotFoundProfile    = errors.New("profile not found")
	ErrIncorrectStartDate = errors.New("date should be a first day of requested period")
	ErrIncorrectEvent     = errors.New("incorrect event")
	ErrIncorrectEventDate = errors.New("incorrect event date")
	ErrIncorrectEventTime = errors.New("incorrect event time")
	ErrPermissionDenied   = errors.New("missing or insufficient permissions")
)

// PermissionError reports a rejected read or write of a single document.
type PermissionError struct {
	Path      string
	Operation string
	Err       error
}

func EventPath(id string) string {
	return "calendarEvents/" + id
}

func (e *PermissionError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Operation, e.Path, ErrPermissionDenied)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PermissionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPermissionDenied}
	}
	return []error{ErrPermissionDenied, e.Err}
}

// Filter selects events of one owner. Date matches exactly, From and To bound
// the date inclusively. Empty fields do not filter.
type Filter struct {
	OwnerID string `json:"userId"`
	Date    string `json:"date,omitempty"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

func (f Filter) Match(e Event) bool {
	switch {
	case f.OwnerID != "" && e.OwnerID != f.OwnerID:
		return false
	case f.Date != "" && e.Date != f.Date:
		return false
	case f.From != "" && e.Date < f.From:
		return false
	case f.To != "" && e.Date > f.To:
		return false
	}
	return true
}

type Storage interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	AddEvent(ctx context.Context, e *Event) error
	UpdateEvent(ctx context.Context, id string, e Event) error
	RemoveEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context, f Filter) ([]Event, error)
	GetEventsByNotifier(ctx context.Context, from time.Time, to time.Time) ([]Event, error)
	RemoveBefore(ctx context.Context, date time.Time) error
	SaveProfile(ctx context.Context, p Profile) error
	GetProfile(ctx context.Context, userID string) (Profile, error)
}

// SortEvents orders events by date, start time and id.
func SortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
}
