// Package validation wraps a shared go-playground validator that reports
// fields by their JSON names with English messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/kiruthikag2611/Planify/internal/timetable"
)

const RequiredMessage = "This field is required."

var ErrInvalid = errors.New("validation failed")

var (
	Validate   *validator.Validate
	Translator ut.Translator

	notBlankTag = "notblank"
	clockTag    = "clock"
	weekdayTag  = "weekday"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(clockTag, clockValidation)
	_ = Validate.RegisterValidation(weekdayTag, weekdayValidation)

	for _, tag := range []string{"required", notBlankTag, clockTag, weekdayTag} {
		_ = Validate.RegisterTranslation(tag, Translator, func(ut.Translator) error { return nil }, translate)
	}
}

func translate(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", notBlankTag:
		return RequiredMessage
	case clockTag:
		return "must be a time in HH:MM format"
	case weekdayTag:
		return "must be a day of the week, Monday to Sunday"
	default:
		return fe.Error()
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func clockValidation(fl validator.FieldLevel) bool {
	return timetable.ValidClock(fl.Field().String())
}

func weekdayValidation(fl validator.FieldLevel) bool {
	_, err := timetable.ParseDay(fl.Field().String())
	return err == nil
}

// Error lists the failed fields with their messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Struct validates v and converts validator errors into *Error.
func Struct(v interface{}) error {
	err := Validate.Struct(v)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fe.Translate(Translator)
	}
	return &Error{Fields: fields}
}

// Var validates a single value against tag.
func Var(field string, v interface{}, tag string) error {
	err := Validate.Var(v, tag)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return &Error{Fields: map[string]string{field: verrs[0].Translate(Translator)}}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
