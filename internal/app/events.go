package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/validation"
)

// EventInput is a user edited event.
type EventInput struct {
	Title               string `json:"title" validate:"notblank"`
	Type                string `json:"type"`
	Description         string `json:"description"`
	Date                string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime           string `json:"startTime" validate:"required,clock"`
	EndTime             string `json:"endTime" validate:"required,clock"`
	Priority            string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DifficultyLevel     string `json:"difficultyLevel" validate:"omitempty,oneof=easy moderate hard"`
	NotificationEnabled bool   `json:"notificationEnabled"`
	ReminderTime        string `json:"reminderTime"`
}

const reminderMessage = "must be one of 5min, 10min, 15min, 30min, 1hour or 1day"

func (in EventInput) validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.ReminderTime != "" && !storage.ValidReminderTime(in.ReminderTime) {
		return &validation.Error{Fields: map[string]string{"reminderTime": reminderMessage}}
	}
	start, _ := timetable.ParseClock(in.StartTime)
	end, _ := timetable.ParseClock(in.EndTime)
	if end.Minutes() <= start.Minutes() {
		return fmt.Errorf("end %s is not after start %s: %w", in.EndTime, in.StartTime, storage.ErrIncorrectEventTime)
	}
	return nil
}

// event keeps a user supplied type as is; only a missing one becomes Task.
func (in EventInput) event(ownerID string) storage.Event {
	eventType := strings.TrimSpace(in.Type)
	if eventType == "" {
		eventType = string(timetable.DefaultCategory)
	}
	e := storage.Event{
		OwnerID:             ownerID,
		Title:               strings.TrimSpace(in.Title),
		Type:                eventType,
		Description:         in.Description,
		Date:                in.Date,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		Priority:            in.Priority,
		DifficultyLevel:     in.DifficultyLevel,
		NotificationEnabled: in.NotificationEnabled,
		ReminderTime:        in.ReminderTime,
	}
	e.ApplyDefaults()
	return e
}

func (a *App) CreateEvent(ctx context.Context, user auth.User, in EventInput) (storage.Event, error) {
	if err := in.validate(); err != nil {
		return storage.Event{}, err
	}
	e := in.event(user.ID)
	if err := a.Storage.AddEvent(ctx, &e); err != nil {
		return storage.Event{}, a.report(err)
	}
	a.Hub.Changed(ctx, user.ID)
	return e, nil
}

func (a *App) UpdateEvent(ctx context.Context, user auth.User, id string, in EventInput) (storage.Event, error) {
	if err := in.validate(); err != nil {
		return storage.Event{}, err
	}
	current, err := a.ownedEvent(ctx, user, id, "update")
	if err != nil {
		return storage.Event{}, err
	}
	e := in.event(user.ID)
	e.ID = id
	e.CreatedAt = current.CreatedAt
	if err := a.Storage.UpdateEvent(ctx, id, e); err != nil {
		return storage.Event{}, a.report(err)
	}
	a.Hub.Changed(ctx, user.ID)
	return a.Storage.GetEvent(ctx, id)
}

func (a *App) RemoveEvent(ctx context.Context, user auth.User, id string) error {
	if _, err := a.ownedEvent(ctx, user, id, "delete"); err != nil {
		return err
	}
	if err := a.Storage.RemoveEvent(ctx, id); err != nil {
		return a.report(err)
	}
	a.Hub.Changed(ctx, user.ID)
	return nil
}

func (a *App) GetEvent(ctx context.Context, user auth.User, id string) (storage.Event, error) {
	return a.ownedEvent(ctx, user, id, "get")
}

func (a *App) ListEvents(ctx context.Context, user auth.User, f storage.Filter) ([]storage.Event, error) {
	f.OwnerID = user.ID
	events, err := a.Storage.ListEvents(ctx, f)
	if err != nil {
		return nil, a.report(err)
	}
	return events, nil
}

// Subscribe keeps the user's events matching f live until ctx is done or the
// returned function is called.
func (a *App) Subscribe(
	ctx context.Context, user auth.User, f storage.Filter, onData func([]storage.Event), onError func(error),
) func() {
	f.OwnerID = user.ID
	return a.Hub.Subscribe(ctx, f, onData, func(err error) {
		a.report(err)
		onError(err)
	})
}

// ownedEvent reads the event id and rejects events of other users.
func (a *App) ownedEvent(ctx context.Context, user auth.User, id, op string) (storage.Event, error) {
	e, err := a.Storage.GetEvent(ctx, id)
	if err != nil {
		return storage.Event{}, a.report(err)
	}
	if e.OwnerID != user.ID {
		return storage.Event{}, a.report(&storage.PermissionError{Path: storage.EventPath(id), Operation: op})
	}
	return e, nil
}

// report passes permission failures to the error channel and returns err.
func (a *App) report(err error) error {
	var perr *storage.PermissionError
	if errors.As(err, &perr) {
		a.Emitter.Emit(err)
	}
	return err
}
