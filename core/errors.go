package core

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ErrSelectionRequired is returned when an operation needs a selected event (or session) and none was given.
var ErrSelectionRequired = errors.New("selection required")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldErrors converts validator errors into a ValidationError carrying one FieldError per field.
// Any other error is returned untouched.
func NewFieldErrors(err error, translator ut.Translator) error {
	vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		msg := vErr.Error()
		if translator != nil {
			msg = vErr.Translate(translator)
		}
		flds = append(flds, FieldError{Field: vErr.Field(), Error: msg})
	}
	return &ValidationError{Err: errors.New("invalid data"), Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// FieldMap returns the field errors keyed by field name.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, f := range err.Fields {
		m[f.Field] = f.Error
	}
	return m
}

// AuthError covers invalid credentials, disallowed roles and expired sessions.
type AuthError struct {
	Message string
}

func NewAuthError(msg string) error {
	return &AuthError{Message: msg}
}

func (err AuthError) Error() string {
	return err.Message
}

// NotFoundError is returned when a referenced resource cannot be resolved locally.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func (err NotFoundError) Error() string {
	if err.ID == "" {
		return err.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", err.Resource, err.ID)
}

// APIError is a non-2xx response from the backend, or a response whose shape could not be accepted.
type APIError struct {
	Status  int
	Message string
}

func NewAPIError(status int, msg string) error {
	return &APIError{Status: status, Message: msg}
}

func (err APIError) Error() string {
	if err.Status == 0 {
		return "api request failed: " + err.Message
	}
	s := fmt.Sprintf("api request failed: %d %s", err.Status, http.StatusText(err.Status))
	if err.Message != "" {
		s += " - " + err.Message
	}
	return s
}

func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

func IsAuth(err error) bool {
	_, ok := errors.Cause(err).(*AuthError)
	return ok
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// APIStatus returns the backend status carried by err, or 0.
func APIStatus(err error) int {
	if apiErr, ok := errors.Cause(err).(*APIError); ok {
		return apiErr.Status
	}
	return 0
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
