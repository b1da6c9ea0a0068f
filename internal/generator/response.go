package generator

import (
	"encoding/json"
	"fmt"

	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/validation"
	"github.com/sashabaranov/go-openai/jsonschema"
)

type responseEvent struct {
	Title       string `json:"title"`
	Day         string `json:"day" validate:"weekday"`
	StartTime   string `json:"startTime" validate:"clock"`
	EndTime     string `json:"endTime" validate:"clock"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type response struct {
	Schedule []responseEvent `json:"schedule" validate:"required,dive"`
	Summary  string          `json:"summary"`
}

// ParseResponse checks a model answer against the schedule schema. Unknown
// event types are coerced, every other violation rejects the answer.
func ParseResponse(data []byte) (timetable.Schedule, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return timetable.Schedule{}, fmt.Errorf("invalid response: %w", err)
	}
	if err := validation.Struct(resp); err != nil {
		return timetable.Schedule{}, err
	}

	s := timetable.Schedule{Schedule: make([]timetable.Event, 0, len(resp.Schedule)), Summary: resp.Summary}
	for _, e := range resp.Schedule {
		s.Schedule = append(s.Schedule, timetable.Event{
			Title:       e.Title,
			Day:         timetable.Day(e.Day),
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			Type:        e.Type,
			Description: e.Description,
		})
	}
	s.Normalize()
	return s, nil
}

func scheduleSchema() *jsonschema.Definition {
	days := make([]string, 0, len(timetable.Days))
	for _, d := range timetable.Days {
		days = append(days, string(d))
	}
	clock := jsonschema.Definition{
		Type:        jsonschema.String,
		Description: "24-hour time in HH:MM format, e.g. 07:30",
	}

	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"schedule": {
				Type:        jsonschema.Array,
				Description: "An array of events for the generated personalized schedule.",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"title":       {Type: jsonschema.String},
						"day":         {Type: jsonschema.String, Enum: days},
						"startTime":   clock,
						"endTime":     clock,
						"type":        {Type: jsonschema.String, Enum: timetable.CategoryNames()},
						"description": {Type: jsonschema.String, Description: "A brief description of the event."},
					},
					Required: []string{"title", "day", "startTime", "endTime", "type"},
				},
			},
			"summary": {
				Type:        jsonschema.String,
				Description: "A short explanation of why the generated timetable is optimized for the user.",
			},
		},
		Required: []string{"schedule", "summary"},
	}
}
