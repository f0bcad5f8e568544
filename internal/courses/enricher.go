package courses

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-analyzer/internal/types"
)

const (
	// DefaultCourseCount is how many courses are requested per search.
	DefaultCourseCount = 5
	// HighPriorityRelevance is the relevance score at which a course becomes high priority.
	HighPriorityRelevance = 0.7
	// DefaultCatalogURL is the base link for courses that carry no URL of their own.
	DefaultCatalogURL = "https://www.coursera.org/learn/"
)

// Request is the input of one recommendation.
type Request struct {
	SessionID   string
	Skills      []string
	DesiredRole string
	Keywords    []string
	Role        types.UserRole
}

// Enricher turns raw course recommendations into learning resources.
type Enricher struct {
	source     CourseSource
	cache      ResourceCache
	logger     *zap.Logger
	count      int
	catalogURL string
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithCache sets the recommendation cache.
func WithCache(cache ResourceCache) Option {
	return func(e *Enricher) {
		if cache != nil {
			e.cache = cache
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCatalogURL sets the base URL used to link courses by id.
func WithCatalogURL(base string) Option {
	return func(e *Enricher) {
		if base != "" {
			e.catalogURL = base
		}
	}
}

// NewEnricher creates an enricher over a course source.
func NewEnricher(source CourseSource, opts ...Option) *Enricher {
	e := &Enricher{
		source:     source,
		cache:      NopCache{},
		logger:     zap.NewNop(),
		count:      DefaultCourseCount,
		catalogURL: DefaultCatalogURL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend returns learning resources for the request. It never fails: on any error the
// fixed fallback set for the desired role is returned.
func (e *Enricher) Recommend(ctx context.Context, req Request) []types.LearningResource {
	terms := SearchTerms(req.Skills, req.DesiredRole, req.Keywords)
	key := CacheKey(req.SessionID, terms)

	cached, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("course cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok && len(cached) > 0 {
		e.logger.Debug("course cache hit", zap.String("key", key))
		return cached
	}

	resources, err := e.recommend(ctx, req, terms)
	if err != nil {
		e.logger.Warn("using fallback learning resources",
			zap.String("desired_role", req.DesiredRole),
			zap.Error(err),
		)
		return FallbackResources(req.DesiredRole)
	}

	if err := e.cache.Set(ctx, key, resources); err != nil {
		e.logger.Warn("course cache write failed", zap.String("key", key), zap.Error(err))
	}
	return resources
}

func (e *Enricher) recommend(ctx context.Context, req Request, terms []string) ([]types.LearningResource, error) {
	if e.source == nil {
		return nil, &EnrichmentFailure{Stage: "search", Cause: errors.New("no course source configured")}
	}
	if len(terms) == 0 {
		return nil, &EnrichmentFailure{Stage: "search", Cause: errors.New("no search terms")}
	}

	found, err := e.source.SearchCourses(ctx, Query{
		Terms:       terms,
		DesiredRole: req.DesiredRole,
		Role:        req.Role,
		Count:       e.count,
	})
	if err != nil {
		return nil, &EnrichmentFailure{Stage: "search", Cause: err}
	}
	if len(found) == 0 {
		return nil, &EnrichmentFailure{Stage: "search", Cause: errors.New("no courses returned")}
	}
	if len(found) != e.count {
		return nil, &EnrichmentFailure{Stage: "search", Cause: fmt.Errorf("expected %d courses, got %d", e.count, len(found))}
	}

	resources := make([]types.LearningResource, len(found))
	for i, course := range found {
		if err := ctx.Err(); err != nil {
			return nil, &EnrichmentFailure{Stage: "enrich", Cause: err}
		}
		resource, err := e.enrich(course, terms)
		if err != nil {
			return nil, &EnrichmentFailure{Stage: "enrich", Cause: fmt.Errorf("course %d: %w", i+1, err)}
		}
		resources[i] = resource
	}
	return resources, nil
}

// enrich maps one raw course into the learning resource shape.
func (e *Enricher) enrich(c Course, terms []string) (types.LearningResource, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return types.LearningResource{}, errors.New("course has no name")
	}

	id := strings.TrimSpace(c.ID)
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
	}

	priority := types.PriorityMedium
	if c.RelevanceScore >= HighPriorityRelevance {
		priority = types.PriorityHigh
	}

	duration := c.Duration
	if duration == "" {
		duration = c.Workload
	}

	skills := c.DomainTypes
	if len(skills) == 0 {
		skills = matchingTerms(name+" "+c.Description, terms)
	}

	resource := types.LearningResource{
		ID:            id,
		Title:         name,
		Type:          "course",
		URL:           e.catalogURL + url.PathEscape(id),
		Priority:      priority,
		Duration:      duration,
		Skills:        append([]string(nil), skills...),
		Description:   c.Description,
		PhotoURL:      c.PhotoURL,
		Certification: len(c.Certificates) > 0,
	}
	if c.PartnerInfo != nil {
		partner := *c.PartnerInfo
		resource.PartnerInfo = &partner
		resource.Provider = partner.Name
	}
	return resource, nil
}

// SearchTerms unions skills, the desired role and extra keywords in order, dropping blanks
// and case-insensitive duplicates.
func SearchTerms(skills []string, desiredRole string, keywords []string) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		key := strings.ToLower(term)
		if seen[key] {
			return
		}
		seen[key] = true
		terms = append(terms, term)
	}

	for _, s := range skills {
		add(s)
	}
	add(desiredRole)
	for _, k := range keywords {
		add(k)
	}
	return terms
}

func matchingTerms(text string, terms []string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			matched = append(matched, term)
		}
	}
	return matched
}
