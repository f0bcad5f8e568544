package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		// Report JSON field names so errors line up with the request body
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate checks a decoded profile and reports every violation in one error.
func Validate(p *types.CareerProfile) error {
	if p == nil {
		return &InvalidProfileError{Fields: []FieldError{{Field: "(root)", Message: "profile is required"}}}
	}

	err := structValidator().Struct(p)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("profile validation failed: %w", err)
	}

	invalid := &InvalidProfileError{Fields: make([]FieldError, 0, len(validationErrs))}
	for _, fe := range validationErrs {
		invalid.Fields = append(invalid.Fields, FieldError{
			Field:   fieldName(fe),
			Message: describe(fe),
		})
	}
	return invalid
}

// ValidateJSON validates a raw profile document against the profile schema, decodes it
// and runs the struct rules. Schema violations and struct rule violations on other
// fields are reported together.
func ValidateJSON(raw []byte) (*types.CareerProfile, error) {
	var p types.CareerProfile
	if err := schemas.Validate(schemas.CareerProfile, raw); err != nil {
		var schemaErr *schemas.ValidationError
		if !errors.As(err, &schemaErr) {
			return nil, &InvalidProfileError{Fields: []FieldError{{Field: "(root)", Message: "malformed JSON"}}}
		}

		invalid := &InvalidProfileError{Fields: make([]FieldError, 0, len(schemaErr.Errors))}
		reported := make(map[string]bool, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			invalid.Fields = append(invalid.Fields, FieldError{Field: fe.Field, Message: fe.Message})
			reported[topLevelField(fe.Field)] = true
		}

		// Type mismatches leave their fields zero; the rest decode normally
		_ = json.Unmarshal(raw, &p)
		var structErr *InvalidProfileError
		if errors.As(Validate(&p), &structErr) {
			for _, fe := range structErr.Fields {
				if !reported[topLevelField(fe.Field)] {
					invalid.Fields = append(invalid.Fields, fe)
				}
			}
		}
		return nil, invalid
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &InvalidProfileError{Fields: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// topLevelField maps "skills.1" and "skills[1]" to "skills".
func topLevelField(field string) string {
	if idx := strings.IndexAny(field, ".["); idx >= 0 {
		return field[:idx]
	}
	return field
}

// fieldName strips the struct name from the namespace: "CareerProfile.skills[1]" -> "skills[1]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
