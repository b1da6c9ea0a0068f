package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/generator"
	"github.com/kiruthikag2611/Planify/internal/layout"
	"github.com/kiruthikag2611/Planify/internal/questionnaire"
	"github.com/kiruthikag2611/Planify/internal/session"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/util"
	"github.com/kiruthikag2611/Planify/internal/validation"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

// MaxSaveWeeks bounds how many weeks one save may repeat the schedule.
const MaxSaveWeeks = 52

type SaveOptions struct {
	// WeekOf is any day of the first target week; zero means the current week.
	WeekOf time.Time
	// Weeks repeats the anchored week, from 1 to MaxSaveWeeks; zero means 1.
	Weeks int
}

type SaveResult struct {
	Saved []storage.Event `json:"saved"`
}

func (a *App) SelectQuestionnaire(user auth.User, category, subCategory string) (questionnaire.State, error) {
	return a.Questionnaires.Update(user.ID, func(s *questionnaire.State) error {
		return s.Select(category, subCategory)
	})
}

func (a *App) AnswerQuestion(user auth.User, questionID, value string) (questionnaire.State, error) {
	return a.Questionnaires.Update(user.ID, func(s *questionnaire.State) error {
		return s.UpdateAnswer(questionID, value)
	})
}

func (a *App) Questionnaire(user auth.User) questionnaire.State {
	return a.Questionnaires.Get(user.ID)
}

func (a *App) ResetQuestionnaire(user auth.User) {
	a.Questionnaires.Reset(user.ID)
}

// CreateSchedule generates a schedule from answers, or from the user's
// questionnaire when answers is empty, and keeps it as the pending schedule.
func (a *App) CreateSchedule(ctx context.Context, user auth.User, answers map[string]string) (timetable.Schedule, error) {
	if len(answers) == 0 {
		var err error
		if answers, err = a.Questionnaires.Get(user.ID).FormattedAnswers(); err != nil {
			return timetable.Schedule{}, err
		}
	}
	req, err := generator.RequestFromAnswers(answers)
	if err != nil {
		return timetable.Schedule{}, err
	}

	s, err := a.Generator.Generate(ctx, req)
	if err != nil {
		return timetable.Schedule{}, err
	}
	s.Normalize()

	raw, err := json.Marshal(s)
	if err != nil {
		return timetable.Schedule{}, err
	}
	if err := a.Sessions.Put(ctx, user.ID, raw); err != nil {
		return timetable.Schedule{}, fmt.Errorf("failed to keep generated schedule: %w", err)
	}

	profile := storage.Profile{UserID: user.ID, Email: user.Email, DisplayName: user.DisplayName, Answers: answers}
	if err := a.Storage.SaveProfile(ctx, profile); err != nil {
		a.Emitter.Emit(fmt.Errorf("failed to save questionnaire answers of %s: %w", user.ID, err))
	}
	return s, nil
}

func (a *App) PendingSchedule(ctx context.Context, user auth.User) (timetable.Schedule, error) {
	return session.Load(ctx, a.Sessions, user.ID)
}

// PendingLayout lays the pending schedule out as a week grouped by weekday.
func (a *App) PendingLayout(ctx context.Context, user auth.User) (layout.Week, timetable.Schedule, error) {
	s, err := a.PendingSchedule(ctx, user)
	if err != nil {
		return layout.Week{}, timetable.Schedule{}, err
	}
	entries := make([]layout.Entry, 0, len(s.Schedule))
	for _, e := range s.Schedule {
		entries = append(entries, layout.Entry{
			Title:       e.Title,
			Day:         string(e.Day),
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			Type:        e.Type,
			Description: e.Description,
		})
	}
	return layout.WeekByDay(entries, a.opts.WeekLayout), s, nil
}

// SaveSchedule anchors the pending schedule to calendar dates and writes one
// record per event. The pending schedule is cleared only when every write
// succeeded; a failed batch reports a single ErrSaveFailed and keeps what was
// already written.
func (a *App) SaveSchedule(ctx context.Context, user auth.User, opts SaveOptions) (SaveResult, error) {
	if err := validation.Var("weeks", opts.Weeks, fmt.Sprintf("min=0,max=%d", MaxSaveWeeks)); err != nil {
		return SaveResult{}, err
	}
	s, err := a.PendingSchedule(ctx, user)
	if err != nil {
		return SaveResult{}, err
	}

	weekOf := opts.WeekOf
	if weekOf.IsZero() {
		weekOf = a.today()
	}
	records, err := anchorSchedule(user.ID, s, util.StartOfWeek(weekOf.In(a.opts.Location)), opts.Weeks)
	if errors.Is(err, timetable.ErrMalformedSchedule) {
		if clearErr := a.Sessions.Clear(ctx, user.ID); clearErr != nil {
			log.Warnf("failed to clear malformed schedule of %s: %v", user.ID, clearErr)
		}
		return SaveResult{}, err
	}
	if err != nil {
		return SaveResult{}, err
	}

	saved, err := a.writeAll(ctx, user.ID, records)
	if err != nil {
		return SaveResult{}, err
	}
	if err := a.Sessions.Clear(ctx, user.ID); err != nil {
		log.Warnf("failed to clear saved schedule of %s: %v", user.ID, err)
	}
	return SaveResult{Saved: saved}, nil
}

func anchorSchedule(ownerID string, s timetable.Schedule, monday time.Time, weeks int) ([]storage.Event, error) {
	if weeks < 1 {
		weeks = 1
	}
	records := make([]storage.Event, 0, len(s.Schedule)*weeks)
	for _, e := range s.Schedule {
		date, err := timetable.Anchor(monday, e.Day)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, timetable.ErrMalformedSchedule)
		}
		dates, err := occurrences(date, weeks)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			records = append(records, storage.FromScheduled(ownerID, d, e))
		}
	}
	return records, nil
}

func occurrences(first time.Time, weeks int) ([]time.Time, error) {
	if weeks == 1 {
		return []time.Time{first}, nil
	}
	r, err := rrule.NewRRule(rrule.ROption{Freq: rrule.WEEKLY, Count: weeks, Dtstart: first})
	if err != nil {
		return nil, fmt.Errorf("failed to repeat %s: %w", first.Format(util.DateLayout), err)
	}
	dates := r.All()
	if len(dates) != weeks {
		return nil, fmt.Errorf("repeated %s %d times, want %d", first.Format(util.DateLayout), len(dates), weeks)
	}
	return dates, nil
}

// writeAll issues every write concurrently and returns on the first failure
// without waiting for the rest. Writes are detached from ctx so that a
// returned failure does not cancel them.
func (a *App) writeAll(ctx context.Context, ownerID string, records []storage.Event) ([]storage.Event, error) {
	if len(records) == 0 {
		return []storage.Event{}, nil
	}
	writeCtx := context.WithoutCancel(ctx)
	results := make(chan error, len(records))
	saved := make([]storage.Event, len(records))

	var wg sync.WaitGroup
	wg.Add(len(records))
	for i := range records {
		go func(i int) {
			defer wg.Done()
			e := records[i]
			err := a.Storage.AddEvent(writeCtx, &e)
			var perr *storage.PermissionError
			if errors.As(err, &perr) {
				a.Emitter.Emit(err)
			}
			if err == nil {
				saved[i] = e
			}
			results <- err
		}(i)
	}
	go func() {
		wg.Wait()
		a.Hub.Changed(writeCtx, ownerID)
	}()

	for range records {
		if err := <-results; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
		}
	}
	return saved, nil
}
