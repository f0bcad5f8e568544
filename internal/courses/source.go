// Package courses recommends learning resources for a career analysis. Recommendations
// are supplementary: every failure degrades to a fixed fallback set instead of failing
// the analysis.
package courses

import (
	"context"
	"fmt"

	"github.com/jonathan/career-analyzer/internal/prompts"
	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

// Course is one raw course entry returned by a CourseSource.
type Course struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Workload       string             `json:"workload,omitempty"`
	DomainTypes    []string           `json:"domainTypes,omitempty"`
	Certificates   []string           `json:"certificates,omitempty"`
	PhotoURL       string             `json:"photoUrl,omitempty"`
	RelevanceScore float64            `json:"relevanceScore"`
	PartnerInfo    *types.PartnerInfo `json:"partnerInfo,omitempty"`
	Price          string             `json:"price,omitempty"`
	Level          string             `json:"level,omitempty"`
	Duration       string             `json:"duration,omitempty"`
}

// Query describes one course search.
type Query struct {
	Terms       []string
	DesiredRole string
	Role        types.UserRole
	Count       int
}

// CourseSource produces raw course recommendations. Implementations may prompt a model
// or search a real catalog.
type CourseSource interface {
	SearchCourses(ctx context.Context, q Query) ([]Course, error)
}

// Completer is the subset of the completion client the LLM source needs.
type Completer interface {
	CompleteInto(ctx context.Context, systemPrompt, userPrompt string, role types.UserRole, schemaName string, out any) error
}

// LLMSource asks the language model for course recommendations.
type LLMSource struct {
	completer Completer
}

// NewLLMSource creates a course source backed by a completion client.
func NewLLMSource(completer Completer) *LLMSource {
	return &LLMSource{completer: completer}
}

type courseResponse struct {
	Courses []Course `json:"courses"`
}

// SearchCourses implements CourseSource.
func (s *LLMSource) SearchCourses(ctx context.Context, q Query) ([]Course, error) {
	prompt, err := prompts.GenerateCourseSearch(q.Terms, q.DesiredRole, q.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to build course prompt: %w", err)
	}

	var resp courseResponse
	if err := s.completer.CompleteInto(ctx, prompt.System, prompt.User, q.Role, schemas.CourseRecommendations, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}
