package timetable

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownDay = errors.New("unknown day of week")

type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days is the week in column order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseDay(s string) (Day, error) {
	for _, d := range Days {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownDay)
}

// Offset is the number of days from Monday: Monday is 0, Sunday is 6.
func (d Day) Offset() (int, error) {
	for i, day := range Days {
		if day == d {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", string(d), ErrUnknownDay)
}

func DayOf(t time.Time) Day {
	return Days[(int(t.Weekday())+6)%7]
}

// Anchor resolves a week-relative day to the calendar date in the week that
// starts at monday.
func Anchor(monday time.Time, d Day) (time.Time, error) {
	offset, err := d.Offset()
	if err != nil {
		return time.Time{}, err
	}
	return monday.AddDate(0, 0, offset), nil
}
