package llm

import "fmt"

// APICallError represents a transport or provider failure
type APICallError struct {
	Model   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call to %s failed: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("API call to %s failed: %s", e.Model, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// IncompleteResponseError means the model returned empty or truncated content
type IncompleteResponseError struct {
	Model string
	Cause error
}

func (e *IncompleteResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("incomplete response from %s: %v", e.Model, e.Cause)
	}
	return fmt.Sprintf("incomplete response from %s", e.Model)
}

func (e *IncompleteResponseError) Unwrap() error {
	return e.Cause
}

// MalformedJSONError means the model output could not be parsed as JSON
type MalformedJSONError struct {
	Content string
	Cause   error
}

func (e *MalformedJSONError) Error() string {
	content := e.Content
	if len(content) > 120 {
		content = content[:117] + "..."
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed JSON response: %v (content: %q)", e.Cause, content)
	}
	return fmt.Sprintf("malformed JSON response (content: %q)", content)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}
