package internalhttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kiruthikag2611/Planify/internal/app"
	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/generator"
	"github.com/kiruthikag2611/Planify/internal/ical"
	"github.com/kiruthikag2611/Planify/internal/questionnaire"
	"github.com/kiruthikag2611/Planify/internal/session"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/kiruthikag2611/Planify/internal/validation"
	log "github.com/sirupsen/logrus"
)

const (
	redirectCategory  = "/category"
	redirectDashboard = "/dashboard"

	errInternalServerError = "internal server error"
	errMalformedSchedule   = "Invalid schedule data. Please generate a new schedule."
	errNoSchedule          = "No schedule data found. Please generate a schedule first."
	errSaveFailed          = "Could not save all events to your calendar. Please try again."
	errGenerationPrefix    = "Failed to generate schedule: "
)

type errorResponse struct {
	Error    string            `json:"error"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}

// writeError maps domain errors to a status and a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status, resp := describeError(err)
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, resp)
}

func describeError(err error) (int, errorResponse) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorResponse{Error: validation.ErrInvalid.Error(), Fields: verr.Fields}
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: err.Error()}
	case errors.Is(err, storage.ErrPermissionDenied):
		return http.StatusForbidden, errorResponse{Error: err.Error()}
	case errors.Is(err, session.ErrNoSchedule):
		return http.StatusNotFound, errorResponse{Error: errNoSchedule, Redirect: redirectDashboard}
	case errors.Is(err, timetable.ErrMalformedSchedule):
		return http.StatusUnprocessableEntity, errorResponse{Error: errMalformedSchedule, Redirect: redirectCategory}
	case errors.Is(err, generator.ErrGeneration):
		return http.StatusBadGateway, errorResponse{
			Error:    errGenerationPrefix + strings.TrimPrefix(err.Error(), generator.ErrGeneration.Error()+": "),
			Redirect: redirectDashboard,
		}
	case errors.Is(err, app.ErrSaveFailed):
		return http.StatusBadGateway, errorResponse{Error: errSaveFailed}
	case errors.Is(err, storage.ErrNotFoundEvent), errors.Is(err, storage.ErrNotFoundProfile),
		errors.Is(err, questionnaire.ErrUnknownCategory):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, generator.ErrUnknownRole), errors.Is(err, questionnaire.ErrNoRole):
		return http.StatusBadRequest, errorResponse{Error: err.Error(), Redirect: redirectCategory}
	case errors.Is(err, questionnaire.ErrUnknownQuestion), errors.Is(err, questionnaire.ErrIncomplete),
		errors.Is(err, storage.ErrIncorrectStartDate), errors.Is(err, storage.ErrIncorrectEvent),
		errors.Is(err, storage.ErrIncorrectEventDate), errors.Is(err, storage.ErrIncorrectEventTime),
		errors.Is(err, ical.ErrInvalidCalendar), errors.Is(err, errBadRequest):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: errInternalServerError}
	}
}
