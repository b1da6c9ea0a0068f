package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	Day   string `json:"day" validate:"weekday"`
	Start string `json:"startTime" validate:"clock"`
}

type form struct {
	Name  string `json:"name" validate:"notblank"`
	Items []item `json:"items" validate:"dive"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(form{Name: "x", Items: []item{{Day: "Monday", Start: "09:00"}}}))

	err := Struct(form{Name: "  ", Items: []item{{Day: "Funday", Start: "9am"}}})
	require.ErrorIs(t, err, ErrInvalid)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, map[string]string{
		"name":               RequiredMessage,
		"items[0].day":       "must be a day of the week, Monday to Sunday",
		"items[0].startTime": "must be a time in HH:MM format",
	}, verr.Fields)
}

func TestVar(t *testing.T) {
	require.NoError(t, Var("answer", "yes", "notblank"))

	err := Var("answer", "", "required")
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, RequiredMessage, verr.Fields["answer"])
}
