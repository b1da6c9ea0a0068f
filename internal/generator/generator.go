// Package generator turns questionnaire answers into a weekly schedule by
// asking a language model for it.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/validation"
)

var (
	ErrGeneration       = errors.New("failed to generate schedule")
	ErrUnknownRole      = errors.New("invalid input data, role is missing")
	ErrUnknownGenerator = errors.New("unknown generator type")
)

type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
)

type StudentInput struct {
	ClassInfo        string `json:"classInfo" validate:"notblank"`
	Subjects         string `json:"subjects" validate:"notblank"`
	HoursPerSubject  string `json:"hoursPerSubject" validate:"notblank"`
	StudyTime        string `json:"studyTime" validate:"notblank"`
	Availability     string `json:"availability" validate:"notblank"`
	BreakPreferences string `json:"breakPreferences" validate:"notblank"`
	PrioritySubjects string `json:"prioritySubjects" validate:"notblank"`
	Deadlines        string `json:"deadlines" validate:"notblank"`
	Routines         string `json:"routines" validate:"notblank"`
}

type TeacherInput struct {
	Subjects         string `json:"subjects" validate:"notblank"`
	WeeklyClasses    string `json:"weeklyClasses" validate:"notblank"`
	ClassNames       string `json:"classNames" validate:"notblank"`
	Availability     string `json:"availability" validate:"notblank"`
	TeachingHours    string `json:"teachingHours" validate:"notblank"`
	RestrictedHours  string `json:"restrictedHours" validate:"notblank"`
	MaxClassesPerDay string `json:"maxClassesPerDay" validate:"notblank"`
	MinGap           string `json:"minGap" validate:"notblank"`
	SpecialSessions  string `json:"specialSessions" validate:"notblank"`
}

// Request is keyed by Role: exactly one of Student and Teacher is set.
type Request struct {
	Role    Role
	Student *StudentInput
	Teacher *TeacherInput
}

// RequestFromAnswers builds a request from formatted questionnaire answers,
// which carry the role under "role".
func RequestFromAnswers(answers map[string]string) (Request, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return Request{}, err
	}

	req := Request{Role: Role(answers["role"])}
	switch req.Role {
	case RoleStudent:
		req.Student = &StudentInput{}
		err = json.Unmarshal(raw, req.Student)
	case RoleTeacher:
		req.Teacher = &TeacherInput{}
		err = json.Unmarshal(raw, req.Teacher)
	default:
		return Request{}, fmt.Errorf("%q: %w", req.Role, ErrUnknownRole)
	}
	if err != nil {
		return Request{}, err
	}
	return req, req.Validate()
}

func (r Request) Validate() error {
	switch {
	case r.Role == RoleStudent && r.Student != nil:
		return validation.Struct(r.Student)
	case r.Role == RoleTeacher && r.Teacher != nil:
		return validation.Struct(r.Teacher)
	default:
		return fmt.Errorf("%q: %w", r.Role, ErrUnknownRole)
	}
}

type Generator interface {
	Generate(ctx context.Context, req Request) (timetable.Schedule, error)
}

type Config struct {
	Type        string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

func New(config Config) (Generator, error) {
	switch config.Type {
	case "openai":
		return NewOpenAI(config), nil
	case "", "static":
		return NewStatic(), nil
	default:
		return nil, fmt.Errorf("%q: %w", config.Type, ErrUnknownGenerator)
	}
}

func generationError(err error) error {
	return fmt.Errorf("%w: %v", ErrGeneration, err)
}
