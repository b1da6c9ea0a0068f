// Package ical converts persisted events to and from iCalendar data.
package ical

import (
	"errors"
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/util"
	log "github.com/sirupsen/logrus"
)

const (
	ProductID    = "-//Planify//Timetable//EN"
	uidSuffix    = "@planify"
	fallbackSpan = 30 * time.Minute
)

var ErrInvalidCalendar = errors.New("invalid calendar data")

type Options struct {
	Name     string
	Location *time.Location
	Now      time.Time
}

// Export writes events as a VCALENDAR. Events whose date or start time
// cannot be read are skipped and counted.
func Export(events []storage.Event, opts Options) (string, int) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	cal := ics.NewCalendarFor("Planify")
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	skipped := 0
	for _, e := range events {
		start, err := e.StartsAt(loc)
		if err != nil {
			log.Debugf("skip event %s in export: %v", e.ID, err)
			skipped++
			continue
		}
		end := endOf(e, start, loc)

		vev := cal.AddEvent(e.ID + uidSuffix)
		vev.SetDtStampTime(opts.Now)
		if !e.CreatedAt.IsZero() {
			vev.SetCreatedTime(e.CreatedAt)
		}
		if !e.UpdatedAt.IsZero() {
			vev.SetModifiedAt(e.UpdatedAt)
		}
		vev.SetStartAt(start)
		vev.SetEndAt(end)
		vev.SetSummary(e.Title)
		if e.Description != "" {
			vev.SetDescription(e.Description)
		}
		vev.AddCategory(e.Type)

		if at, ok := e.RemindAt(loc); ok {
			alarm := vev.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", int(start.Sub(at).Minutes())))
			alarm.SetDescription(e.Title)
		}
	}
	return cal.Serialize(), skipped
}

func endOf(e storage.Event, start time.Time, loc *time.Location) time.Time {
	clock, err := timetable.ParseClock(e.EndTime)
	if err != nil {
		return start.Add(fallbackSpan)
	}
	day := util.TruncateToDay(start.In(loc))
	end := day.Add(time.Duration(clock.Minutes()) * time.Minute)
	if !end.After(start) {
		return start.Add(fallbackSpan)
	}
	return end
}

// Import reads timed VEVENTs as events of ownerID. All-day and unreadable
// entries are skipped and counted.
func Import(r io.Reader, ownerID string, loc *time.Location) ([]storage.Event, int, error) {
	if loc == nil {
		loc = time.UTC
	}
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
	}

	events := make([]storage.Event, 0)
	skipped := 0
	for _, vev := range cal.Events() {
		start, err := vev.GetStartAt()
		if err != nil || isAllDay(vev) {
			skipped++
			continue
		}
		start = start.In(loc)
		end, err := vev.GetEndAt()
		if err != nil {
			end = start.Add(fallbackSpan)
		}
		end = end.In(loc)

		e := storage.Event{
			OwnerID:     ownerID,
			Title:       propertyValue(vev, ics.ComponentPropertySummary),
			Type:        string(timetable.CategoryOf(propertyValue(vev, ics.ComponentPropertyCategories))),
			Description: propertyValue(vev, ics.ComponentPropertyDescription),
			Date:        util.FormatDate(start),
			StartTime:   start.Format("15:04"),
			EndTime:     end.Format("15:04"),
		}
		e.ApplyDefaults()
		events = append(events, e)
	}
	return events, skipped, nil
}

func isAllDay(vev *ics.VEvent) bool {
	p := vev.GetProperty(ics.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	v, ok := p.ICalParameters["VALUE"]
	return (ok && len(v) == 1 && v[0] == "DATE") || len(p.Value) == len("20060102")
}

func propertyValue(vev *ics.VEvent, prop ics.ComponentProperty) string {
	if p := vev.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}
