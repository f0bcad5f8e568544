package courses

import "fmt"

// EnrichmentFailure records why recommendations fell back. It is logged and never
// returned to callers of Recommend.
type EnrichmentFailure struct {
	Stage string
	Cause error
}

func (e *EnrichmentFailure) Error() string {
	return fmt.Sprintf("course enrichment failed at %s: %v", e.Stage, e.Cause)
}

func (e *EnrichmentFailure) Unwrap() error {
	return e.Cause
}
