package storage

import (
	"fmt"
	"time"

	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/util"
)

const (
	DefaultPriority        = "medium"
	DefaultDifficultyLevel = "moderate"
	DefaultReminderTime    = "10min"
)

var reminderOffsets = map[string]time.Duration{
	"5min":  5 * time.Minute,
	"10min": 10 * time.Minute,
	"15min": 15 * time.Minute,
	"30min": 30 * time.Minute,
	"1hour": time.Hour,
	"1day":  24 * time.Hour,
}

// Event is a calendar entry anchored to a concrete date. Times are kept as
// "HH:MM" strings exactly as they were produced.
type Event struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"userId"`
	Title               string    `json:"title"`
	Type                string    `json:"type"`
	Description         string    `json:"description"`
	Date                string    `json:"date"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	Priority            string    `json:"priority"`
	DifficultyLevel     string    `json:"difficultyLevel"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	ReminderTime        string    `json:"reminderTime"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromScheduled builds the record written when a generated event is saved.
func FromScheduled(ownerID string, date time.Time, e timetable.Event) Event {
	return Event{
		OwnerID:             ownerID,
		Title:               e.Title,
		Type:                e.Type,
		Description:         e.Description,
		Date:                util.FormatDate(date),
		StartTime:           e.StartTime,
		EndTime:             e.EndTime,
		Priority:            DefaultPriority,
		DifficultyLevel:     DefaultDifficultyLevel,
		NotificationEnabled: false,
		ReminderTime:        DefaultReminderTime,
	}
}

func (e Event) Validate() error {
	if e.OwnerID == "" {
		return fmt.Errorf("event has no owner: %w", ErrIncorrectEvent)
	}
	if _, err := util.ParseDate(e.Date, nil); err != nil {
		return fmt.Errorf("date %q: %w", e.Date, ErrIncorrectEventDate)
	}
	return nil
}

func (e *Event) ApplyDefaults() {
	if e.Priority == "" {
		e.Priority = DefaultPriority
	}
	if e.DifficultyLevel == "" {
		e.DifficultyLevel = DefaultDifficultyLevel
	}
	if e.ReminderTime == "" {
		e.ReminderTime = DefaultReminderTime
	}
}

// StartsAt returns the start instant of the event in loc.
func (e Event) StartsAt(loc *time.Location) (time.Time, error) {
	date, err := util.ParseDate(e.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", e.Date, ErrIncorrectEventDate)
	}
	clock, err := timetable.ParseClock(e.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%v: %w", err, ErrIncorrectEventTime)
	}
	return date.Add(time.Duration(clock.Minutes()) * time.Minute), nil
}

// RemindAt reports when a reminder for the event is due. The second value is
// false for events without notifications or with unusable fields.
func (e Event) RemindAt(loc *time.Location) (time.Time, bool) {
	if !e.NotificationEnabled {
		return time.Time{}, false
	}
	offset, ok := reminderOffsets[e.ReminderTime]
	if !ok {
		return time.Time{}, false
	}
	start, err := e.StartsAt(loc)
	if err != nil {
		return time.Time{}, false
	}
	return start.Add(-offset), true
}

func ValidReminderTime(s string) bool {
	_, ok := reminderOffsets[s]
	return ok
}

// DueReminders keeps the events whose reminder instant falls into (from:to],
// so consecutive windows sharing a bound never report a reminder twice.
func DueReminders(events []Event, from, to time.Time) []Event {
	due := make([]Event, 0)
	for _, e := range events {
		at, ok := e.RemindAt(from.Location())
		if !ok || !at.After(from) || at.After(to) {
			continue
		}
		due = append(due, e)
	}
	return due
}

type Profile struct {
	UserID      string            `json:"uid"`
	Email       string            `json:"email,omitempty"`
	DisplayName string            `json:"displayName,omitempty"`
	LastLogin   time.Time         `json:"lastLogin,omitempty"`
	Answers     map[string]string `json:"questionnaireAnswers,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Merge overlays the non-empty fields of other onto p.
func (p Profile) Merge(other Profile) Profile {
	if other.Email != "" {
		p.Email = other.Email
	}
	if other.DisplayName != "" {
		p.DisplayName = other.DisplayName
	}
	if !other.LastLogin.IsZero() {
		p.LastLogin = other.LastLogin
	}
	if len(other.Answers) > 0 {
		answers := make(map[string]string, len(p.Answers)+len(other.Answers))
		for k, v := range p.Answers {
			answers[k] = v
		}
		for k, v := range other.Answers {
			answers[k] = v
		}
		p.Answers = answers
	}
	return p
}
