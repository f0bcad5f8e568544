// Package server provides the HTTP API for career analyses.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-analyzer/internal/analysis"
	"github.com/jonathan/career-analyzer/internal/db"
	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/profile"
	"github.com/jonathan/career-analyzer/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr       *ErrValidation
		profileErr   *profile.InvalidProfileError
		componentErr *analysis.ComponentAnalysisError
		apiErr       *llm.APICallError
		incomplete   *llm.IncompleteResponseError
		malformed    *llm.MalformedJSONError
		schemaErr    *schemas.ValidationError
	)
	switch {
	case errors.As(err, &reqErr), errors.As(err, &profileErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrCreditLimitExceeded):
		return http.StatusPaymentRequired
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &componentErr), errors.As(err, &apiErr), errors.As(err, &incomplete),
		errors.As(err, &malformed), errors.As(err, &schemaErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []profile.FieldError `json:"fields,omitempty"`
}

func errorBody(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var profileErr *profile.InvalidProfileError
	if errors.As(err, &profileErr) {
		resp.Fields = profileErr.Fields
	}
	return resp
}
