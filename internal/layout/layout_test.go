package layout

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveRange(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    Range
	}{
		{name: "empty", want: Range{Start: 6, End: 20}},
		{
			name:    "inside default range",
			entries: []Entry{{StartTime: "09:00", EndTime: "10:30"}},
			want:    Range{Start: 6, End: 20},
		},
		{
			name:    "early event",
			entries: []Entry{{StartTime: "05:30", EndTime: "06:30"}},
			want:    Range{Start: 4, End: 20},
		},
		{
			name:    "late event",
			entries: []Entry{{StartTime: "21:00", EndTime: "22:00"}},
			want:    Range{Start: 6, End: 23},
		},
		{
			name:    "clamped",
			entries: []Entry{{StartTime: "00:15", EndTime: "23:45"}},
			want:    Range{Start: 0, End: 23},
		},
		{
			name:    "malformed times ignored",
			entries: []Entry{{StartTime: "25:00", EndTime: "oops"}, {StartTime: "03:00", EndTime: "04:00"}},
			want:    Range{Start: 2, End: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeriveRange(tt.entries))
		})
	}
}

func TestDeriveRangeCoversEveryEntry(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 30, 59} {
			e := Entry{StartTime: fmt.Sprintf("%02d:%02d", h, m), EndTime: fmt.Sprintf("%02d:00", min(h+1, 23))}
			rng := DeriveRange([]Entry{e})
			require.LessOrEqual(t, rng.Start, h)
			require.GreaterOrEqual(t, rng.End, min(h+1, 23))
			require.True(t, rng.Contains(Range{Start: 6, End: 20}))
		}
	}
}

func TestPlace(t *testing.T) {
	opts := DefaultOptions()
	rng := Range{Start: 6, End: 20}

	p := Place(Entry{StartTime: "09:30", EndTime: "11:00", Type: "Class"}, rng, opts)
	require.Equal(t, float64(7)*24, p.Top)
	require.Equal(t, float64(3)*24, p.Height)
	require.Equal(t, "blue", p.Color)

	t.Run("minimum height", func(t *testing.T) {
		p := Place(Entry{StartTime: "09:00", EndTime: "09:10"}, rng, opts)
		require.Equal(t, opts.MinHeight, p.Height)
	})

	t.Run("header offset", func(t *testing.T) {
		o := opts
		o.HeaderOffset = 48
		p := Place(Entry{StartTime: "06:00", EndTime: "07:00"}, rng, o)
		require.Equal(t, float64(48), p.Top)
	})

	t.Run("malformed reads as midnight", func(t *testing.T) {
		require.NotPanics(t, func() {
			p := Place(Entry{StartTime: "nine", EndTime: "ten"}, Range{Start: 0, End: 23}, opts)
			require.Equal(t, float64(0), p.Top)
			require.Equal(t, opts.MinHeight, p.Height)
		})
	})
}

func TestPlaceHeightMonotonic(t *testing.T) {
	opts := DefaultOptions()
	rng := Range{Start: 0, End: 23}
	prev := 0.0
	for minutes := 0; minutes <= 12*60; minutes += 5 {
		end := 8*60 + minutes
		p := Place(Entry{StartTime: "08:00", EndTime: fmt.Sprintf("%02d:%02d", end/60, end%60)}, rng, opts)
		require.GreaterOrEqual(t, p.Height, opts.MinHeight)
		require.GreaterOrEqual(t, p.Height, prev)
		prev = p.Height
	}
}

func TestWeekByDayNoLeakage(t *testing.T) {
	entries := []Entry{
		{Title: "Math", Day: "Monday", StartTime: "09:00", EndTime: "10:00", Type: "Class"},
		{Title: "Gym", Day: "Wednesday", StartTime: "18:00", EndTime: "19:00", Type: "Gym"},
		{Title: "Read", Day: "Monday", StartTime: "21:00", EndTime: "22:00", Type: "Study"},
		{Title: "Lost", Day: "Funday", StartTime: "10:00", EndTime: "11:00"},
	}
	opts := DefaultOptions()
	week := WeekByDay(entries, opts)
	require.Len(t, week.Columns, 7)
	require.Equal(t, Range{Start: 6, End: 23}, week.Range)

	for _, col := range week.Columns {
		var want []Entry
		for _, e := range entries {
			if e.Day == col.Day {
				want = append(want, e)
			}
		}
		require.Equal(t, PlaceAll(want, week.Range, opts), col.Events, col.Day)
	}
	require.Len(t, week.Columns[0].Events, 2)
	require.Empty(t, week.Columns[1].Events)
}

func TestWeekByDate(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ID: "1", Date: "2024-01-03", StartTime: "09:00", EndTime: "10:00"},
		{ID: "2", Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00"},
		{ID: "3", Date: "2024-01-07", StartTime: "12:00", EndTime: "13:00"},
	}
	week := WeekByDate(monday, entries, DefaultOptions())
	require.Equal(t, "2024-01-01", week.Columns[0].Date)
	require.Equal(t, "Wednesday", week.Columns[2].Day)
	require.Len(t, week.Columns[2].Events, 1)
	require.Equal(t, "1", week.Columns[2].Events[0].Event.ID)
	require.Equal(t, "3", week.Columns[6].Events[0].Event.ID)

	total := 0
	for _, c := range week.Columns {
		total += len(c.Events)
	}
	require.Equal(t, 2, total)
}

func TestLayoutDay(t *testing.T) {
	date := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	opts := Options{CellHeight: 30, MinHeight: 30, FullDay: true}
	day := LayoutDay(date, []Entry{{StartTime: "01:00", EndTime: "02:00"}}, opts)
	require.Equal(t, Range{Start: 0, End: 23}, day.Range)
	require.Equal(t, "Wednesday", day.Day)
	require.Equal(t, "2024-01-03", day.Date)
	require.Len(t, day.Labels, 24)
	require.Equal(t, float64(48*30), day.Height)
	require.Equal(t, float64(60), day.Events[0].Top)
}

func TestLayoutDeterministic(t *testing.T) {
	entries := []Entry{
		{Title: "A", Day: "Friday", StartTime: "07:00", EndTime: "08:15", Type: "Revision"},
		{Title: "B", Day: "Friday", StartTime: "07:30", EndTime: "09:00", Type: "Unknown"},
	}
	first, err := json.Marshal(WeekByDay(entries, DefaultOptions()))
	require.NoError(t, err)
	second, err := json.Marshal(WeekByDay(entries, DefaultOptions()))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestColorOf(t *testing.T) {
	require.Equal(t, "red", ColorOf("Exam"))
	require.Equal(t, CustomColor, ColorOf("Karaoke"))
	require.Equal(t, CustomColor, ColorOf(""))
}

