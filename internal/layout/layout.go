// Package layout turns timed events into pixel positions on a day or week
// grid. Everything here is a pure function of its arguments.
package layout

import (
	"fmt"
	"time"

	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/util"
)

const (
	MinHour          = 0
	MaxHour          = 23
	DefaultStartHour = 6
	DefaultEndHour   = 20

	slotsPerHour = 2
	slotMinutes  = 30
)

// Entry is anything that can be drawn: a week-relative event (Day set) or a
// date-anchored one (Date set).
type Entry struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Day         string `json:"day,omitempty"`
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type Options struct {
	// CellHeight is the height in pixels of one 30 minute slot.
	CellHeight   float64
	MinHeight    float64
	HeaderOffset float64
	// FullDay pins the range to 00:00-23:00 instead of deriving it.
	FullDay bool
}

func DefaultOptions() Options {
	return Options{CellHeight: 24, MinHeight: 32}
}

type Range struct {
	Start int `json:"startHour"`
	End   int `json:"endHour"`
}

func (r Range) Rows() int {
	return (r.End - r.Start + 1) * slotsPerHour
}

func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && r.End >= o.End
}

type Placement struct {
	Event  Entry   `json:"event"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

type Column struct {
	Day    string      `json:"day"`
	Date   string      `json:"date,omitempty"`
	Events []Placement `json:"events"`
}

type Grid struct {
	Range      Range    `json:"range"`
	CellHeight float64  `json:"cellHeight"`
	Height     float64  `json:"height"`
	Labels     []string `json:"labels"`
}

type Week struct {
	Grid
	Columns []Column `json:"columns"`
}

type Day struct {
	Grid
	Column
}

// DeriveRange returns the visible hour range for entries. It always covers
// DefaultStartHour..DefaultEndHour, grows by one hour of margin around
// outliers and never leaves MinHour..MaxHour. Unparsable times are ignored.
func DeriveRange(entries []Entry) Range {
	minHour, maxHour := MaxHour+1, MinHour-1
	for _, e := range entries {
		for _, s := range []string{e.StartTime, e.EndTime} {
			c, err := timetable.ParseClock(s)
			if err != nil {
				continue
			}
			if c.Hour < minHour {
				minHour = c.Hour
			}
			if c.Hour > maxHour {
				maxHour = c.Hour
			}
		}
	}
	if maxHour < minHour {
		return Range{Start: DefaultStartHour, End: DefaultEndHour}
	}
	return Range{
		Start: max(MinHour, min(DefaultStartHour, minHour-1)),
		End:   min(MaxHour, max(DefaultEndHour, maxHour+1)),
	}
}

func fullDay() Range {
	return Range{Start: MinHour, End: MaxHour}
}

// Place positions a single entry inside rng.
func Place(e Entry, rng Range, opts Options) Placement {
	start := clockOrMidnight(e.StartTime)
	end := clockOrMidnight(e.EndTime)

	offset := float64((start.Hour-rng.Start)*slotsPerHour) + float64(start.Minute)/slotMinutes
	duration := (end.Hours() - start.Hours()) * slotsPerHour

	return Placement{
		Event:  e,
		Top:    opts.HeaderOffset + offset*opts.CellHeight,
		Height: max(opts.MinHeight, duration*opts.CellHeight),
		Color:  ColorOf(e.Type),
	}
}

func clockOrMidnight(s string) timetable.Clock {
	c, err := timetable.ParseClock(s)
	if err != nil {
		return timetable.Clock{}
	}
	return c
}

// PlaceAll keeps input order; overlapping entries are placed independently.
func PlaceAll(entries []Entry, rng Range, opts Options) []Placement {
	placements := make([]Placement, 0, len(entries))
	for _, e := range entries {
		placements = append(placements, Place(e, rng, opts))
	}
	return placements
}

func newGrid(rng Range, opts Options) Grid {
	labels := make([]string, 0, rng.End-rng.Start+1)
	for h := rng.Start; h <= rng.End; h++ {
		labels = append(labels, fmt.Sprintf("%02d:00", h))
	}
	return Grid{
		Range:      rng,
		CellHeight: opts.CellHeight,
		Height:     opts.HeaderOffset + float64(rng.Rows())*opts.CellHeight,
		Labels:     labels,
	}
}

func rangeFor(entries []Entry, opts Options) Range {
	if opts.FullDay {
		return fullDay()
	}
	return DeriveRange(entries)
}

// LayoutDay lays out one day of already filtered entries.
func LayoutDay(date time.Time, entries []Entry, opts Options) Day {
	rng := rangeFor(entries, opts)
	return Day{
		Grid: newGrid(rng, opts),
		Column: Column{
			Day:    string(timetable.DayOf(date)),
			Date:   util.FormatDate(date),
			Events: PlaceAll(entries, rng, opts),
		},
	}
}

// WeekByDay lays out a week-relative schedule, one column per weekday label.
func WeekByDay(entries []Entry, opts Options) Week {
	rng := rangeFor(entries, opts)
	week := Week{Grid: newGrid(rng, opts), Columns: make([]Column, 0, len(timetable.Days))}
	for _, d := range timetable.Days {
		day := string(d)
		week.Columns = append(week.Columns, Column{
			Day:    day,
			Events: PlaceAll(filter(entries, func(e Entry) bool { return e.Day == day }), rng, opts),
		})
	}
	return week
}

// WeekByDate lays out date-anchored entries for the seven days starting at
// monday. Entries are matched by exact date.
func WeekByDate(monday time.Time, entries []Entry, opts Options) Week {
	rng := rangeFor(entries, opts)
	week := Week{Grid: newGrid(rng, opts), Columns: make([]Column, 0, len(timetable.Days))}
	for i, d := range timetable.Days {
		date := util.FormatDate(monday.AddDate(0, 0, i))
		week.Columns = append(week.Columns, Column{
			Day:    string(d),
			Date:   date,
			Events: PlaceAll(filter(entries, func(e Entry) bool { return e.Date == date }), rng, opts),
		})
	}
	return week
}

func filter(entries []Entry, keep func(Entry) bool) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
