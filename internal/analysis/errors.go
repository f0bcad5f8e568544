package analysis

import (
	"fmt"

	"github.com/jonathan/career-analyzer/internal/types"
)

// ComponentAnalysisError tags a failure with the component that produced it
type ComponentAnalysisError struct {
	Component types.Component
	Cause     error
}

func (e *ComponentAnalysisError) Error() string {
	return fmt.Sprintf("%s analysis failed: %v", e.Component, e.Cause)
}

func (e *ComponentAnalysisError) Unwrap() error {
	return e.Cause
}

// Career path validation rules
const (
	RuleSentenceCount = "sentence_count"
	RuleMissingField  = "missing_field"
	RuleRoleCount     = "role_count"
	RuleDuplicate     = "duplicate"
	RuleTooSimilar    = "too_similar"
	RuleTitleMention  = "title_mention"
	RuleArrayLength   = "array_length"
)

// ValidationError names the first career path rule a model response violated
type ValidationError struct {
	Rule    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("career path validation failed (%s): %s", e.Rule, e.Message)
}
