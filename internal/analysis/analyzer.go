// Package analysis runs the career analysis components and merges them into one result.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-analyzer/internal/courses"
	"github.com/jonathan/career-analyzer/internal/prompts"
	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

// Completer sends a prompt pair to the model and decodes the schema-checked result.
type Completer interface {
	CompleteInto(ctx context.Context, systemPrompt, userPrompt string, role types.UserRole, schemaName string, out any) error
}

// CourseRecommender produces learning resources for paid roles. It never fails.
type CourseRecommender interface {
	Recommend(ctx context.Context, req courses.Request) []types.LearningResource
}

// ComponentAnalyzer produces the result of one named component.
type ComponentAnalyzer interface {
	Analyze(ctx context.Context, component types.Component, profile *types.CareerProfile, role types.UserRole) (*ComponentResult, error)
}

// ComponentResult holds the output of one component. Exactly one result field is set,
// matching Component.
type ComponentResult struct {
	Component         types.Component
	SkillAnalysis     *types.SkillAnalysis
	CareerPath        *types.ValidatedCareerPath
	IndustryInsights  *types.IndustryInsights
	LearningPath      *types.LearningPath
	MarketAnalysis    *types.MarketAnalysis
	ProSkillGap       *types.ProSkillGapResult
	ProCareerStrategy *types.ProCareerStrategyResult
	ProMarketPosition *types.ProMarketPositionResult
}

var componentSchemas = map[types.Component]string{
	types.ComponentSkillAnalysis:     schemas.SkillAnalysis,
	types.ComponentCareerPath:        schemas.CareerPath,
	types.ComponentIndustryAnalysis:  schemas.IndustryAnalysis,
	types.ComponentLearningPath:      schemas.LearningPath,
	types.ComponentMarketAnalysis:    schemas.MarketAnalysis,
	types.ComponentProSkillGap:       schemas.ProSkillGap,
	types.ComponentProCareerStrategy: schemas.ProCareerStrategy,
	types.ComponentProMarketPosition: schemas.ProMarketPosition,
}

// Analyzer runs one component: prompt, completion, then component-specific validation
// or enrichment. It is safe for concurrent use.
type Analyzer struct {
	completer Completer
	courses   CourseRecommender
	validator *CareerPathValidator
	logger    *zap.Logger
}

// NewAnalyzer creates a component analyzer. A nil recommender keeps the model's own
// learning resources, a nil validator uses the defaults.
func NewAnalyzer(completer Completer, recommender CourseRecommender, validator *CareerPathValidator, logger *zap.Logger) *Analyzer {
	if validator == nil {
		validator = NewCareerPathValidator(nil, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		completer: completer,
		courses:   recommender,
		validator: validator,
		logger:    logger,
	}
}

// Analyze implements ComponentAnalyzer. Every failure is a *ComponentAnalysisError.
func (a *Analyzer) Analyze(ctx context.Context, component types.Component, profile *types.CareerProfile, role types.UserRole) (*ComponentResult, error) {
	start := time.Now()
	result, err := a.analyze(ctx, component, profile, role)
	if err != nil {
		a.logger.Debug("component failed",
			zap.String("component", string(component)),
			zap.String("role", string(role)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, &ComponentAnalysisError{Component: component, Cause: err}
	}
	a.logger.Debug("component finished",
		zap.String("component", string(component)),
		zap.String("role", string(role)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, component types.Component, profile *types.CareerProfile, role types.UserRole) (*ComponentResult, error) {
	prompt, err := prompts.Generate(component, profile, role)
	if err != nil {
		return nil, err
	}
	schemaName, ok := componentSchemas[component]
	if !ok {
		return nil, fmt.Errorf("%w: %q", prompts.ErrUnknownComponent, component)
	}
	complete := func(out any) error {
		return a.completer.CompleteInto(ctx, prompt.System, prompt.User, role, schemaName, out)
	}

	result := &ComponentResult{Component: component}
	switch component {
	case types.ComponentSkillAnalysis:
		var out types.SkillAnalysis
		if err := complete(&out); err != nil {
			return nil, err
		}
		result.SkillAnalysis = &out

	case types.ComponentCareerPath:
		var raw types.CareerPathResponse
		if err := complete(&raw); err != nil {
			return nil, err
		}
		validated, err := a.validator.Validate(&raw)
		if err != nil {
			return nil, err
		}
		result.CareerPath = validated

	case types.ComponentIndustryAnalysis:
		var out types.IndustryInsights
		if err := complete(&out); err != nil {
			return nil, err
		}
		result.IndustryInsights = &out

	case types.ComponentLearningPath:
		var out types.LearningPath
		if err := complete(&out); err != nil {
			return nil, err
		}
		a.attachResources(ctx, &out, profile, role)
		result.LearningPath = &out

	case types.ComponentMarketAnalysis:
		var out types.MarketAnalysis
		if err := complete(&out); err != nil {
			return nil, err
		}
		result.MarketAnalysis = &out

	case types.ComponentProSkillGap:
		var out types.ProSkillGapResult
		if err := complete(&out); err != nil {
			return nil, err
		}
		result.ProSkillGap = &out

	case types.ComponentProCareerStrategy:
		var out types.ProCareerStrategyResult
		if err := complete(&out); err != nil {
			return nil, err
		}
		result.ProCareerStrategy = &out

	case types.ComponentProMarketPosition:
		var out types.ProMarketPositionResult
		if err := complete(&out); err != nil {
			return nil, err
		}
		result.ProMarketPosition = &out
	}
	return result, nil
}

// attachResources replaces the model's learning resources with enriched course
// recommendations for paid roles. Free users keep the model's list, or the fallback set
// when it is empty.
func (a *Analyzer) attachResources(ctx context.Context, lp *types.LearningPath, profile *types.CareerProfile, role types.UserRole) {
	if !role.IsFree() && a.courses != nil {
		lp.LearningResources = a.courses.Recommend(ctx, courses.Request{
			SessionID:   SessionFrom(ctx),
			Skills:      profile.Skills,
			DesiredRole: profile.DesiredRole,
			Keywords:    learningKeywords(lp),
			Role:        role,
		})
		return
	}
	if len(lp.LearningResources) == 0 {
		lp.LearningResources = courses.FallbackResources(profile.DesiredRole)
		return
	}
	normalizeResources(lp.LearningResources)
}

func learningKeywords(lp *types.LearningPath) []string {
	keywords := append([]string(nil), lp.FocusAreas...)
	for _, m := range lp.Milestones {
		keywords = append(keywords, m.Skills...)
	}
	return keywords
}

// normalizeResources fills ids and priorities the model left out.
func normalizeResources(resources []types.LearningResource) {
	for i := range resources {
		r := &resources[i]
		if strings.TrimSpace(r.ID) == "" {
			r.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(r.Title+"|"+r.URL)).String()
		}
		if r.Priority == "" {
			r.Priority = types.PriorityMedium
		}
	}
}

type sessionKey struct{}

// WithSession tags a context with a session id used to scope cached recommendations.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFrom returns the session id stored by WithSession, or "".
func SessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
