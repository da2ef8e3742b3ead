package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// common errors
	ErrUserLoginMissing = errors.New("user login is missing")
	ErrInvalidCursor    = errors.New("invalid timeline cursor")

	// status errors
	ErrStatusNotFound  = errors.New("status not found")
	ErrStatusForbidden = errors.New("status belongs to another user")
)

// Violation describes one broken field constraint
type Violation struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError carries every constraint violated by a single value
type ValidationError struct {
	Violations []Violation
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (e *ValidationError) Add(field, tag, message string) {
	e.Violations = append(e.Violations, Violation{
		Field:   field,
		Tag:     tag,
		Message: message,
	})
}

func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// Fields returns the violated field names, sorted
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	sort.Strings(fields)
	return fields
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, " | ")
}

// AsValidationError unwraps err looking for a ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
