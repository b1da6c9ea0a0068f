package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/ical"
	"github.com/kiruthikag2611/Planify/internal/layout"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/util"
)

type MonthDay struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	InMonth   bool   `json:"inMonth"`
	IsToday   bool   `json:"isToday"`
	HasEvents bool   `json:"hasEvents"`
	Count     int    `json:"count"`
}

type Month struct {
	Month string       `json:"month"`
	Weeks [][]MonthDay `json:"weeks"`
}

type ImportResult struct {
	Imported []storage.Event `json:"imported"`
	Skipped  int             `json:"skipped"`
}

func (a *App) GetEventsForDay(ctx context.Context, user auth.User, date time.Time) ([]storage.Event, error) {
	return a.ListEvents(ctx, user, storage.Filter{Date: util.FormatDate(date)})
}

func (a *App) GetEventsForWeek(ctx context.Context, user auth.User, startDate time.Time) ([]storage.Event, error) {
	if startDate.Weekday() != time.Monday {
		return nil, storage.ErrIncorrectStartDate
	}
	return a.ListEvents(ctx, user, storage.Filter{
		From: util.FormatDate(startDate),
		To:   util.FormatDate(startDate.AddDate(0, 0, 6)),
	})
}

func (a *App) GetEventsForMonth(ctx context.Context, user auth.User, startDate time.Time) ([]storage.Event, error) {
	if startDate.Day() != 1 {
		return nil, storage.ErrIncorrectStartDate
	}
	return a.ListEvents(ctx, user, storage.Filter{
		From: util.FormatDate(startDate),
		To:   util.FormatDate(startDate.AddDate(0, 1, -1)),
	})
}

func (a *App) DayLayout(ctx context.Context, user auth.User, date time.Time) (layout.Day, error) {
	events, err := a.GetEventsForDay(ctx, user, date)
	if err != nil {
		return layout.Day{}, err
	}
	return layout.LayoutDay(date, entriesOf(events), a.opts.DayLayout), nil
}

func (a *App) WeekLayout(ctx context.Context, user auth.User, monday time.Time) (layout.Week, error) {
	events, err := a.GetEventsForWeek(ctx, user, monday)
	if err != nil {
		return layout.Week{}, err
	}
	return layout.WeekByDate(monday, entriesOf(events), a.opts.WeekLayout), nil
}

// MonthOverview builds the grid of whole Sunday to Saturday weeks covering
// the month of date.
func (a *App) MonthOverview(ctx context.Context, user auth.User, date time.Time) (Month, error) {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)
	events, err := a.GetEventsForMonth(ctx, user, first)
	if err != nil {
		return Month{}, err
	}
	counts := make(map[string]int, len(events))
	for _, e := range events {
		counts[e.Date]++
	}

	today := util.FormatDate(a.today())
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	m := Month{Month: first.Format("2006-01"), Weeks: make([][]MonthDay, 0, 6)}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		week := make([]MonthDay, 0, 7)
		for i := 0; i < 7; i++ {
			day := d.AddDate(0, 0, i)
			key := util.FormatDate(day)
			week = append(week, MonthDay{
				Date:      key,
				Day:       day.Day(),
				InMonth:   day.Month() == first.Month(),
				IsToday:   key == today,
				HasEvents: counts[key] > 0,
				Count:     counts[key],
			})
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m, nil
}

func (a *App) ExportICS(ctx context.Context, user auth.User) (string, error) {
	events, err := a.ListEvents(ctx, user, storage.Filter{})
	if err != nil {
		return "", err
	}
	name := user.DisplayName
	if name == "" {
		name = "Planify"
	}
	cal, skipped := ical.Export(events, ical.Options{Name: name, Location: a.opts.Location, Now: a.now()})
	if skipped > 0 {
		a.Emitter.Emit(fmt.Errorf("%d events of %s were not exported", skipped, user.ID))
	}
	return cal, nil
}

// ImportICS writes the timed events of a VCALENDAR with the same batch
// semantics as SaveSchedule.
func (a *App) ImportICS(ctx context.Context, user auth.User, r io.Reader) (ImportResult, error) {
	events, skipped, err := ical.Import(r, user.ID, a.opts.Location)
	if err != nil {
		return ImportResult{}, err
	}
	saved, err := a.writeAll(ctx, user.ID, events)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Imported: saved, Skipped: skipped}, nil
}

func entriesOf(events []storage.Event) []layout.Entry {
	entries := make([]layout.Entry, 0, len(events))
	for _, e := range events {
		entries = append(entries, layout.Entry{
			ID:          e.ID,
			Title:       e.Title,
			Date:        e.Date,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			Type:        e.Type,
			Description: e.Description,
		})
	}
	return entries
}
