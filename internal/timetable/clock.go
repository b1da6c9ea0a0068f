package timetable

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrIncorrectClock = errors.New("invalid time format (HH:MM)")

var clockRegexp = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (Clock, error) {
	if !clockRegexp.MatchString(s) {
		return Clock{}, fmt.Errorf("%q: %w", s, ErrIncorrectClock)
	}
	parts := strings.SplitN(s, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return Clock{Hour: hour, Minute: minute}, nil
}

func ValidClock(s string) bool {
	return clockRegexp.MatchString(s)
}

// Hours returns the clock as fractional hours since midnight.
func (c Clock) Hours() float64 {
	return float64(c.Hour) + float64(c.Minute)/60
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
