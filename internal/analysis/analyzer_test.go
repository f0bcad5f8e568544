package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/courses"
	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/prompts"
	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

// recommenderFunc adapts a function to CourseRecommender
type recommenderFunc func(ctx context.Context, req courses.Request) []types.LearningResource

func (f recommenderFunc) Recommend(ctx context.Context, req courses.Request) []types.LearningResource {
	return f(ctx, req)
}

func TestAnalyzer_EveryComponentDecodes(t *testing.T) {
	a := NewAnalyzer(&fixtureCompleter{}, nil, nil, nil)

	for _, c := range types.ComponentsFor(types.RolePremium) {
		t.Run(string(c), func(t *testing.T) {
			result, err := a.Analyze(context.Background(), c, exampleProfile(), types.RolePremium)
			require.NoError(t, err)
			assert.Equal(t, c, result.Component)
		})
	}
}

func TestAnalyzer_CareerPathIsValidated(t *testing.T) {
	a := NewAnalyzer(&fixtureCompleter{}, nil, nil, nil)

	result, err := a.Analyze(context.Background(), types.ComponentCareerPath, exampleProfile(), types.RoleFree)
	require.NoError(t, err)
	require.NotNil(t, result.CareerPath)
	assert.Equal(t, []string{"Tech Lead", "Staff Frontend Developer"}, result.CareerPath.PotentialRoles)
}

func TestAnalyzer_CareerPathRuleViolation(t *testing.T) {
	completer := &fixtureCompleter{overrides: map[string]string{
		schemas.CareerPath: `{
			"path": "One. Two. Three.",
			"potentialRoles": {"roles": [
				{"title": "Tech Lead", "description": "A Tech Lead guides delivery.", "salary": "$1",
				 "requirements": ["a1 alpha", "b2 bravo", "c3 charlie"], "trends": ["d4 delta", "e5 echo"], "opportunities": ["f6 foxtrot", "g7 golf"]},
				{"title": "Architect", "description": "An Architect shapes systems.", "salary": "$2",
				 "requirements": ["h8 hotel", "i9 india", "j0 juliet"], "trends": ["k1 kilo", "l2 lima"], "opportunities": ["m3 mike", "n4 november"]}
			]},
			"recommendations": {"immediate": ["1", "2", "3", "4"], "shortTerm": ["1", "2", "3", "4"], "longTerm": ["1", "2", "3", "4"]},
			"timeline": {"shortTerm": ["x", "y"], "midTerm": ["1", "2", "3"], "longTerm": ["1", "2", "3"]}
		}`,
	}}
	a := NewAnalyzer(completer, nil, NewCareerPathValidator(SimilarityFunc(func(a, b string) float64 { return 0 }), 0), nil)

	_, err := a.Analyze(context.Background(), types.ComponentCareerPath, exampleProfile(), types.RolePro)
	require.Error(t, err)

	var cae *ComponentAnalysisError
	require.ErrorAs(t, err, &cae)
	assert.Equal(t, types.ComponentCareerPath, cae.Component)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "shortTerm timeline")
}

func TestAnalyzer_ErrorsAreTaggedWithComponent(t *testing.T) {
	malformed := &llm.MalformedJSONError{Content: "{", Cause: errors.New("unexpected end of JSON input")}
	completer := &fixtureCompleter{errs: map[string]error{schemas.MarketAnalysis: malformed}}
	a := NewAnalyzer(completer, nil, nil, nil)

	_, err := a.Analyze(context.Background(), types.ComponentMarketAnalysis, exampleProfile(), types.RoleFree)
	require.Error(t, err)

	var cae *ComponentAnalysisError
	require.ErrorAs(t, err, &cae)
	assert.Equal(t, types.ComponentMarketAnalysis, cae.Component)
	assert.Contains(t, err.Error(), "marketAnalysis analysis failed")

	var mje *llm.MalformedJSONError
	assert.ErrorAs(t, err, &mje)
}

func TestAnalyzer_SchemaMismatchFails(t *testing.T) {
	completer := &fixtureCompleter{overrides: map[string]string{
		schemas.IndustryAnalysis: `{"overview": "ok", "trends": ["one"], "growthAreas": [], "challenges": []}`,
	}}
	a := NewAnalyzer(completer, nil, nil, nil)

	_, err := a.Analyze(context.Background(), types.ComponentIndustryAnalysis, exampleProfile(), types.RoleFree)
	require.Error(t, err)

	var schemaErr *schemas.ValidationError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestAnalyzer_UnknownComponent(t *testing.T) {
	completer := &fixtureCompleter{}
	a := NewAnalyzer(completer, nil, nil, nil)

	_, err := a.Analyze(context.Background(), types.Component("astrology"), exampleProfile(), types.RoleFree)
	require.Error(t, err)
	assert.ErrorIs(t, err, prompts.ErrUnknownComponent)
	assert.Empty(t, completer.schemasCalled())
}

func TestAnalyzer_LearningPathEnrichedForPaidRoles(t *testing.T) {
	enriched := []types.LearningResource{{ID: "c1", Title: "System Design Course", Priority: types.PriorityHigh}}
	var got courses.Request
	rec := recommenderFunc(func(_ context.Context, req courses.Request) []types.LearningResource {
		got = req
		return enriched
	})
	a := NewAnalyzer(&fixtureCompleter{}, rec, nil, nil)

	ctx := WithSession(context.Background(), "session-42")
	result, err := a.Analyze(ctx, types.ComponentLearningPath, exampleProfile(), types.RolePro)
	require.NoError(t, err)

	assert.Equal(t, enriched, result.LearningPath.LearningResources)
	assert.Equal(t, "session-42", got.SessionID)
	assert.Equal(t, []string{"JavaScript", "React"}, got.Skills)
	assert.Equal(t, "Senior Software Engineer", got.DesiredRole)
	assert.Equal(t, types.RolePro, got.Role)
	// focus areas first, then milestone skills
	assert.Equal(t, []string{"System Design", "Leadership", "System Design", "Mentoring", "Leadership"}, got.Keywords)
}

func TestAnalyzer_FreeRoleKeepsModelResources(t *testing.T) {
	called := false
	rec := recommenderFunc(func(context.Context, courses.Request) []types.LearningResource {
		called = true
		return nil
	})
	a := NewAnalyzer(&fixtureCompleter{}, rec, nil, nil)

	result, err := a.Analyze(context.Background(), types.ComponentLearningPath, exampleProfile(), types.RoleFree)
	require.NoError(t, err)
	assert.False(t, called)

	require.Len(t, result.LearningPath.LearningResources, 1)
	r := result.LearningPath.LearningResources[0]
	assert.Equal(t, "Designing Data-Intensive Applications", r.Title)
	assert.NotEmpty(t, r.ID, "missing ids are filled in")
	assert.Equal(t, types.PriorityHigh, r.Priority)
}

func TestAnalyzer_FreeRoleEmptyResourcesUsesFallback(t *testing.T) {
	completer := &fixtureCompleter{overrides: map[string]string{
		schemas.LearningPath: `{
			"learningResources": [],
			"milestones": [
				{"title": "a", "description": "a", "timeframe": "1m"},
				{"title": "b", "description": "b", "timeframe": "2m"},
				{"title": "c", "description": "c", "timeframe": "3m"}
			],
			"focusAreas": []
		}`,
	}}
	a := NewAnalyzer(completer, nil, nil, nil)

	result, err := a.Analyze(context.Background(), types.ComponentLearningPath, exampleProfile(), types.RoleFree)
	require.NoError(t, err)
	assert.Equal(t, courses.FallbackResources("Senior Software Engineer"), result.LearningPath.LearningResources)
}

func TestSessionFrom_Empty(t *testing.T) {
	assert.Equal(t, "", SessionFrom(context.Background()))
}
