package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCategoryOf(t *testing.T) {
	for _, c := range Categories {
		require.Equal(t, c, CategoryOf(string(c)))
	}

	for _, s := range []string{"", "class", "Exam", "Study Time", "Custom", " Class"} {
		require.Equal(t, CategoryTask, CategoryOf(s), "value %q", s)
	}
}

func TestAnchor(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("wednesday", func(t *testing.T) {
		d, err := Anchor(monday, Wednesday)
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("whole week", func(t *testing.T) {
		for i, day := range Days {
			d, err := Anchor(monday, day)
			require.NoError(t, err)
			require.Equal(t, monday.AddDate(0, 0, i), d)
			require.Equal(t, day, DayOf(d))
		}
	})

	t.Run("unknown day", func(t *testing.T) {
		_, err := Anchor(monday, Day("Funday"))
		require.ErrorIs(t, err, ErrUnknownDay)
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in       string
		expected Clock
		err      bool
	}{
		{in: "00:00", expected: Clock{}},
		{in: "9:05", expected: Clock{Hour: 9, Minute: 5}},
		{in: "23:59", expected: Clock{Hour: 23, Minute: 59}},
		{in: "24:00", err: true},
		{in: "12:60", err: true},
		{in: "noon", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseClock(tt.in)
			if tt.err {
				require.ErrorIs(t, err, ErrIncorrectClock)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, c)
		})
	}
}

func TestDecodeSchedule(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := DecodeSchedule([]byte(`{"schedule":[{"title":"Math","day":"Monday","startTime":"09:00",` +
			`"endTime":"10:00","type":"Class"}],"summary":"ok"}`))
		require.NoError(t, err)
		require.Len(t, s.Schedule, 1)
		require.Equal(t, Monday, s.Schedule[0].Day)
		require.Equal(t, "ok", s.Summary)
	})

	t.Run("empty list", func(t *testing.T) {
		s, err := DecodeSchedule([]byte(`{"schedule":[]}`))
		require.NoError(t, err)
		require.Empty(t, s.Schedule)
	})

	for name, data := range map[string]string{
		"not json":       `{"schedule":`,
		"missing":        `{"summary":"x"}`,
		"null":           `{"schedule":null}`,
		"object":         `{"schedule":{"title":"x"}}`,
		"not an object":  `[1,2,3]`,
		"wrong elements": `{"schedule":[1,2]}`,
	} {
		data := data
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSchedule([]byte(data))
			require.ErrorIs(t, err, ErrMalformedSchedule)
		})
	}
}

func TestScheduleNormalize(t *testing.T) {
	s := Schedule{Schedule: []Event{{Type: "Lab"}, {Type: "Exam"}, {Type: ""}}}
	s.Normalize()
	require.Equal(t, "Lab", s.Schedule[0].Type)
	require.Equal(t, "Task", s.Schedule[1].Type)
	require.Equal(t, "Task", s.Schedule[2].Type)
}
