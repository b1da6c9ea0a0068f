package timetable

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedSchedule = errors.New("malformed schedule data")

// Event is one entry of a generated, not yet saved, weekly schedule.
type Event struct {
	Title       string `json:"title"`
	Day         Day    `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type Schedule struct {
	Schedule []Event `json:"schedule"`
	Summary  string  `json:"summary"`
}

// DecodeSchedule accepts any JSON object whose "schedule" member is an array.
// Field contents are not checked here: bad times render degenerate, they do
// not make the schedule unreadable.
func DecodeSchedule(data []byte) (Schedule, error) {
	var shape struct {
		Schedule json.RawMessage `json:"schedule"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return Schedule{}, fmt.Errorf("%v: %w", err, ErrMalformedSchedule)
	}
	if len(shape.Schedule) == 0 || shape.Schedule[0] != '[' {
		return Schedule{}, fmt.Errorf("schedule is not a list: %w", ErrMalformedSchedule)
	}

	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return Schedule{}, fmt.Errorf("%v: %w", err, ErrMalformedSchedule)
	}
	return s, nil
}

// Normalize coerces unknown event types to a known category.
func (s *Schedule) Normalize() {
	for i := range s.Schedule {
		s.Schedule[i].Type = string(CategoryOf(s.Schedule[i].Type))
	}
}

func (s Schedule) ForDay(d Day) []Event {
	events := make([]Event, 0)
	for _, e := range s.Schedule {
		if e.Day == d {
			events = append(events, e)
		}
	}
	return events
}
