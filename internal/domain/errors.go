package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrScenarioNotFound  = errors.New("scenario not found")
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrUnknownIndustry   = errors.New("unknown industry")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field that failed validation.
// It matches ErrInvalidParameters with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidParameters, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidParameters
}
