package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownSpecialization = errors.New("unknown specialization")
	ErrActionInFlight        = errors.New("action already in flight")
	ErrAssessmentNotLoaded   = errors.New("assessment questions not loaded")
	ErrInvalidResult         = errors.New("invalid assessment result")
	ErrInvalidTask           = errors.New("invalid completed task")
)

// TransitionError is returned when an event is not legal in the current
// state. The state is left unchanged.
type TransitionError struct {
	From  Kind
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q not allowed in state %q", e.Event, e.From)
}

// GuardError is returned when an event needs a user or a resolved
// specialization that the session does not have. The session has already
// moved to the state behind Redirect.
type GuardError struct {
	Redirect Route
	Reason   string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("redirect to %s: %s", e.Redirect, e.Reason)
}

// ValidationError lists the credential fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, tag := range e.Fields {
		parts = append(parts, f+" - "+tag)
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func newValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make(map[string]string, len(ves))
	for _, ve := range ves {
		fields[ve.Field()] = ve.Tag()
	}
	return &ValidationError{Fields: fields}
}
