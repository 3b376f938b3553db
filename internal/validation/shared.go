package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
)

// Error carries field-specific validation messages.
// It unwraps to apperrors.ErrValidation so callers can use errors.Is.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return apperrors.ErrValidation
}

// fieldErrors collects messages and converts to *Error when non-empty.
type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &Error{Fields: f}
}
