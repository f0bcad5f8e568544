package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-analyzer/internal/analysis"
	"github.com/jonathan/career-analyzer/internal/db"
	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/profile"
	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "body", Message: "request body is required"}
	assert.Equal(t, "validation error: body - request body is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	componentErr := &analysis.ComponentAnalysisError{Component: types.ComponentCareerPath, Cause: errors.New("boom")}

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "request validation", err: &ErrValidation{Field: "body"}, expected: http.StatusBadRequest},
		{name: "invalid profile", err: &profile.InvalidProfileError{Fields: []profile.FieldError{{Field: "skills", Message: "is required"}}}, expected: http.StatusBadRequest},
		{name: "credit limit", err: db.ErrCreditLimitExceeded, expected: http.StatusPaymentRequired},
		{name: "wrapped credit limit", err: fmt.Errorf("save: %w", db.ErrCreditLimitExceeded), expected: http.StatusPaymentRequired},
		{name: "deadline", err: context.DeadlineExceeded, expected: http.StatusGatewayTimeout},
		{name: "component deadline", err: &analysis.ComponentAnalysisError{Component: types.ComponentLearningPath, Cause: context.DeadlineExceeded}, expected: http.StatusGatewayTimeout},
		{name: "component failure", err: componentErr, expected: http.StatusBadGateway},
		{name: "api call", err: fmt.Errorf("quick analysis failed: %w", &llm.APICallError{Model: "m", Message: "down"}), expected: http.StatusBadGateway},
		{name: "incomplete", err: &llm.IncompleteResponseError{Model: "m"}, expected: http.StatusBadGateway},
		{name: "schema mismatch", err: &schemas.ValidationError{Schema: "quickAnalysis"}, expected: http.StatusBadGateway},
		{name: "unknown", err: errors.New("disk on fire"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	invalid := &profile.InvalidProfileError{Fields: []profile.FieldError{
		{Field: "skills", Message: "is required"},
		{Field: "desiredRole", Message: "must not be blank"},
	}}

	body := errorBody(fmt.Errorf("request: %w", invalid))
	assert.Len(t, body.Fields, 2)
	assert.Contains(t, body.Error, "invalid career profile")

	body = errorBody(errors.New("plain"))
	assert.Equal(t, "plain", body.Error)
	assert.Nil(t, body.Fields)
}
