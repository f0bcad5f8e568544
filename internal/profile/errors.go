// Package profile validates career profiles before any analysis work starts.
package profile

import (
	"fmt"
	"strings"
)

// FieldError is one violation on one profile field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidProfileError lists every violation found in a profile.
type InvalidProfileError struct {
	Fields []FieldError `json:"fields"`
}

func (e *InvalidProfileError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return fmt.Sprintf("invalid career profile: %s", strings.Join(parts, "; "))
}
