package errors

import (
	"net/http"
	"sort"
	"strings"
)

// ValidationError carries per-field messages for malformed input.
// It is rendered as a JSON object mapping field name to message.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError from a field -> message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

func (e *ValidationError) Message() string {
	return "Input validation failed"
}

func (e *ValidationError) Details() string {
	return e.Error()
}
