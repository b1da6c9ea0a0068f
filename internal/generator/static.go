package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiruthikag2611/Planify/internal/timetable"
)

// Static returns a fixed week built from the request, without calling out.
// It backs local runs and tests.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

func (g *Static) Generate(_ context.Context, req Request) (timetable.Schedule, error) {
	if err := req.Validate(); err != nil {
		return timetable.Schedule{}, err
	}

	var subjects string
	mainType := timetable.CategoryStudy
	if req.Role == RoleStudent {
		subjects = req.Student.Subjects
	} else {
		subjects = req.Teacher.Subjects
		mainType = timetable.CategoryClass
	}
	names := splitList(subjects)

	s := timetable.Schedule{
		Summary: fmt.Sprintf("A balanced %s week covering %s with daily breaks and lighter weekends.",
			strings.ToLower(string(req.Role)), strings.Join(names, ", ")),
	}
	for i, day := range timetable.Days {
		s.Schedule = append(s.Schedule,
			timetable.Event{Title: "Breakfast", Day: day, StartTime: "07:30", EndTime: "08:00", Type: string(timetable.CategoryMeal)},
		)
		if i < 5 {
			first := names[i%len(names)]
			second := names[(i+1)%len(names)]
			s.Schedule = append(s.Schedule,
				timetable.Event{Title: first, Day: day, StartTime: "09:00", EndTime: "10:30", Type: string(mainType)},
				timetable.Event{Title: "Break", Day: day, StartTime: "10:30", EndTime: "10:45", Type: string(timetable.CategoryBreak)},
				timetable.Event{Title: second, Day: day, StartTime: "10:45", EndTime: "12:15", Type: string(mainType)},
				timetable.Event{Title: "Lunch", Day: day, StartTime: "12:30", EndTime: "13:15", Type: string(timetable.CategoryMeal)},
			)
		} else {
			s.Schedule = append(s.Schedule,
				timetable.Event{Title: "Revision", Day: day, StartTime: "10:00", EndTime: "11:00", Type: string(timetable.CategoryRevision)},
				timetable.Event{Title: "Free time", Day: day, StartTime: "15:00", EndTime: "17:00", Type: string(timetable.CategoryPersonal)},
			)
		}
		s.Schedule = append(s.Schedule,
			timetable.Event{Title: "Sleep", Day: day, StartTime: "22:30", EndTime: "23:59", Type: string(timetable.CategorySleep)},
		)
	}
	return s, nil
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == ';' })
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	if len(names) == 0 {
		names = append(names, "Study")
	}
	return names
}
