package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	events := []storage.Event{
		{
			ID: "e1", OwnerID: "u1", Title: "Math", Type: "Class", Description: "Algebra",
			Date: "2024-01-03", StartTime: "09:00", EndTime: "10:30",
			NotificationEnabled: true, ReminderTime: "15min",
		},
		{ID: "e2", OwnerID: "u1", Title: "Nap", Type: "Break", Date: "2024-01-03", StartTime: "13:00", EndTime: "12:00"},
		{ID: "e3", OwnerID: "u1", Title: "Broken", Date: "2024-01-03", StartTime: "noon", EndTime: "13:00"},
	}
	out, skipped := Export(events, Options{Name: "My week", Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.Equal(t, 1, skipped)

	require.Contains(t, out, "BEGIN:VCALENDAR")
	require.Contains(t, out, "X-WR-CALNAME:My week")
	require.Contains(t, out, "UID:e1@planify")
	require.Contains(t, out, "DTSTART:20240103T090000Z")
	require.Contains(t, out, "DTEND:20240103T103000Z")
	require.Contains(t, out, "CATEGORIES:Class")
	require.Contains(t, out, "TRIGGER:-PT15M")
	require.Contains(t, out, "DTEND:20240103T133000Z")
	require.NotContains(t, out, "Broken")
	require.Equal(t, 1, strings.Count(out, "BEGIN:VALARM"))
}

func TestImportRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	events := []storage.Event{
		{ID: "e1", OwnerID: "u1", Title: "Gym", Type: "Gym", Date: "2024-06-10", StartTime: "18:00", EndTime: "19:15"},
		{ID: "e2", OwnerID: "u1", Title: "Read", Type: "Hobby", Date: "2024-06-11", StartTime: "07:05", EndTime: "07:35"},
	}
	out, skipped := Export(events, Options{Location: loc, Now: time.Now()})
	require.Zero(t, skipped)

	imported, skipped, err := Import(strings.NewReader(out), "u2", loc)
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Len(t, imported, 2)

	require.Equal(t, "u2", imported[0].OwnerID)
	require.Equal(t, "Gym", imported[0].Title)
	require.Equal(t, "Gym", imported[0].Type)
	require.Equal(t, "2024-06-10", imported[0].Date)
	require.Equal(t, "18:00", imported[0].StartTime)
	require.Equal(t, "19:15", imported[0].EndTime)
	require.Equal(t, storage.DefaultPriority, imported[0].Priority)
	require.Equal(t, "Task", imported[1].Type)
}

func TestImportSkipsAllDay(t *testing.T) {
	data := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:1",
		"DTSTAMP:20240101T000000Z",
		"DTSTART;VALUE=DATE:20240105",
		"SUMMARY:Holiday",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2",
		"DTSTAMP:20240101T000000Z",
		"DTSTART:20240105T080000Z",
		"SUMMARY:Standup",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	events, skipped, err := Import(strings.NewReader(data), "u1", time.UTC)
	require.NoError(t, err)
	require.Equal(t, 1, skipped)
	require.Len(t, events, 1)
	require.Equal(t, "Standup", events[0].Title)
	require.Equal(t, "08:30", events[0].EndTime)
}
