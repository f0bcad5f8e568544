package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-analyzer/internal/profile"
	"github.com/jonathan/career-analyzer/internal/prompts"
	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

// ProgressEvent reports one finished component during an analysis
type ProgressEvent struct {
	Component types.Component `json:"component"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	ElapsedMS int64           `json:"elapsed_ms"`
}

// Progress statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ProgressCallback is called when a component finishes. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the input of one full analysis
type RunOptions struct {
	Profile    *types.CareerProfile
	Role       types.UserRole
	OnProgress ProgressCallback
}

// Service is the entry point for full and quick career analyses.
type Service struct {
	completer Completer
	analyzer  ComponentAnalyzer
	logger    *zap.Logger
}

// NewService creates an analysis service.
func NewService(completer Completer, analyzer ComponentAnalyzer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		completer: completer,
		analyzer:  analyzer,
		logger:    logger,
	}
}

// AnalyzeCareer runs every component the role is entitled to and merges the results.
// Either a complete analysis or an error is returned, never a partial analysis.
func (s *Service) AnalyzeCareer(ctx context.Context, p *types.CareerProfile, role types.UserRole) (*types.CareerAnalysis, error) {
	return s.Run(ctx, RunOptions{Profile: p, Role: role})
}

// Run is AnalyzeCareer with progress reporting.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*types.CareerAnalysis, error) {
	if err := profile.Validate(opts.Profile); err != nil {
		return nil, err
	}
	role, err := types.ParseUserRole(string(opts.Role))
	if err != nil {
		return nil, err
	}

	components := types.ComponentsFor(role)
	results := make([]*ComponentResult, len(components))
	progress := newProgressEmitter(opts.OnProgress, len(components))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i, component := range components {
		i, component := i, component
		g.Go(func() error {
			componentStart := time.Now()
			result, err := s.analyzer.Analyze(gctx, component, opts.Profile, role)
			if err != nil {
				var cae *ComponentAnalysisError
				if !errors.As(err, &cae) {
					err = &ComponentAnalysisError{Component: component, Cause: err}
				}
				// Siblings cancelled by the first failure are not reported
				if !errors.Is(err, context.Canceled) || gctx.Err() == nil {
					progress.emit(component, StatusFailed, err.Error(), time.Since(componentStart))
				}
				return err
			}
			results[i] = result
			progress.emit(component, StatusCompleted, fmt.Sprintf("%s ready", component), time.Since(componentStart))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("career analysis failed",
			zap.String("role", string(role)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	analysis, err := merge(results, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("career analysis complete",
		zap.String("role", string(role)),
		zap.Int("components", len(components)),
		zap.Duration("duration", time.Since(start)),
	)
	return analysis, nil
}

// QuickAnalyzeCareer runs the single-call preview analysis. Its output is only checked
// against the quick analysis schema; none of the career path rules apply.
func (s *Service) QuickAnalyzeCareer(ctx context.Context, p *types.CareerProfile) (*types.QuickAnalysis, error) {
	if err := profile.Validate(p); err != nil {
		return nil, err
	}
	prompt, err := prompts.GenerateQuick(p)
	if err != nil {
		return nil, err
	}

	var out types.QuickAnalysis
	if err := s.completer.CompleteInto(ctx, prompt.System, prompt.User, types.RoleFree, schemas.QuickAnalysis, &out); err != nil {
		return nil, fmt.Errorf("quick analysis failed: %w", err)
	}
	return &out, nil
}

// merge assembles the aggregate from per-component results.
func merge(results []*ComponentResult, role types.UserRole) (*types.CareerAnalysis, error) {
	var (
		skills   *types.SkillAnalysis
		path     *types.ValidatedCareerPath
		industry *types.IndustryInsights
		learning *types.LearningPath
		market   *types.MarketAnalysis
		gap      *types.ProSkillGapResult
		strategy *types.ProCareerStrategyResult
		position *types.ProMarketPositionResult
	)
	for _, r := range results {
		if r == nil {
			continue
		}
		switch r.Component {
		case types.ComponentSkillAnalysis:
			skills = r.SkillAnalysis
		case types.ComponentCareerPath:
			path = r.CareerPath
		case types.ComponentIndustryAnalysis:
			industry = r.IndustryInsights
		case types.ComponentLearningPath:
			learning = r.LearningPath
		case types.ComponentMarketAnalysis:
			market = r.MarketAnalysis
		case types.ComponentProSkillGap:
			gap = r.ProSkillGap
		case types.ComponentProCareerStrategy:
			strategy = r.ProCareerStrategy
		case types.ComponentProMarketPosition:
			position = r.ProMarketPosition
		}
	}

	missing := func(c types.Component) error {
		return &ComponentAnalysisError{Component: c, Cause: errors.New("no result produced")}
	}
	switch {
	case skills == nil:
		return nil, missing(types.ComponentSkillAnalysis)
	case path == nil:
		return nil, missing(types.ComponentCareerPath)
	case industry == nil:
		return nil, missing(types.ComponentIndustryAnalysis)
	case learning == nil:
		return nil, missing(types.ComponentLearningPath)
	case market == nil:
		return nil, missing(types.ComponentMarketAnalysis)
	}

	analysis := &types.CareerAnalysis{
		CareerPath:        path.Path,
		CurrentSkills:     skills.CurrentSkills,
		SkillGaps:         skills.SkillGaps,
		Recommendations:   path.Recommendations,
		PotentialRoles:    path.PotentialRoles,
		RoleDetails:       path.RoleDetails,
		LearningResources: learning.LearningResources,
		IndustryInsights:  *industry,
		MarketOverview:    market.MarketOverview,
		Timeline:          path.Timeline,
		Milestones:        learning.Milestones,
	}

	if role.HasProFeatures() {
		switch {
		case gap == nil:
			return nil, missing(types.ComponentProSkillGap)
		case strategy == nil:
			return nil, missing(types.ComponentProCareerStrategy)
		case position == nil:
			return nil, missing(types.ComponentProMarketPosition)
		}
		analysis.ProFeatures = &types.ProFeatures{
			SkillMatrix:    gap.SkillMatrix,
			CareerStrategy: strategy.CareerStrategy,
			MarketDynamics: position.MarketDynamics,
		}
	}
	return analysis, nil
}

// progressEmitter serializes callbacks from concurrent components.
type progressEmitter struct {
	mu        sync.Mutex
	callback  ProgressCallback
	completed int
	total     int
}

func newProgressEmitter(callback ProgressCallback, total int) *progressEmitter {
	return &progressEmitter{callback: callback, total: total}
}

func (p *progressEmitter) emit(component types.Component, status, message string, d time.Duration) {
	if p.callback == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if status == StatusCompleted {
		p.completed++
	}
	p.callback(ProgressEvent{
		Component: component,
		Status:    status,
		Message:   message,
		Completed: p.completed,
		Total:     p.total,
		ElapsedMS: d.Milliseconds(),
	})
}
