package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/diewo77/cleanbiz/validation"
)

// ErrNotFound signals an operation referencing an id absent from its
// collection. Lifecycle operations report it instead of silently no-opping.
var ErrNotFound = errors.New("not_found")

// ValidationError carries per-field violations back to the handler layer.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation_failed: " + strings.Join(fields, ", ")
}

func invalid(v validation.Violations) error { return &ValidationError{Violations: v} }
