package analysis

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/types"
)

func loadCareerPath(t *testing.T) *types.CareerPathResponse {
	t.Helper()
	data, err := os.ReadFile("testdata/career_path.json")
	require.NoError(t, err)

	var resp types.CareerPathResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return &resp
}

func requireRule(t *testing.T, err error, rule string) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, rule, ve.Rule, "message: %s", ve.Message)
	return ve
}

func TestCareerPathValidator_ValidResponse(t *testing.T) {
	v := NewCareerPathValidator(nil, 0)

	result, err := v.Validate(loadCareerPath(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Tech Lead", "Staff Frontend Developer"}, result.PotentialRoles)
	require.Len(t, result.RoleDetails, 2)
	assert.Len(t, result.Timeline.ShortTerm, 3)
	assert.Len(t, result.Recommendations.Immediate, 4)
	assert.Contains(t, result.Path, "Senior Software Engineer")
}

func TestCareerPathValidator_PotentialRolesMatchRoleDetails(t *testing.T) {
	result, err := NewCareerPathValidator(nil, 0).Validate(loadCareerPath(t))
	require.NoError(t, err)

	titles := make([]string, len(result.RoleDetails))
	for i, role := range result.RoleDetails {
		titles[i] = role.Title
	}
	assert.Equal(t, titles, result.PotentialRoles)
}

func TestCareerPathValidator_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *types.CareerPathResponse)
		rule    string
		field   string
		message string
	}{
		{
			name:   "short path",
			mutate: func(r *types.CareerPathResponse) { r.Path = "Lead a team. Then grow." },
			rule:   RuleSentenceCount,
			field:  "path",
		},
		{
			name:   "path of only periods",
			mutate: func(r *types.CareerPathResponse) { r.Path = "... . ." },
			rule:   RuleSentenceCount,
			field:  "path",
		},
		{
			name:   "missing roles",
			mutate: func(r *types.CareerPathResponse) { r.PotentialRoles = nil },
			rule:   RuleRoleCount,
			field:  "potentialRoles.roles",
		},
		{
			name:   "single role",
			mutate: func(r *types.CareerPathResponse) { r.PotentialRoles.Roles = r.PotentialRoles.Roles[:1] },
			rule:   RuleRoleCount,
			field:  "potentialRoles.roles",
		},
		{
			name:   "blank salary",
			mutate: func(r *types.CareerPathResponse) { r.PotentialRoles.Roles[1].Salary = " " },
			rule:   RuleMissingField,
			field:  "potentialRoles.roles[1].salary",
		},
		{
			name:    "duplicate title",
			mutate:  func(r *types.CareerPathResponse) { r.PotentialRoles.Roles[1].Title = "Tech Lead" },
			rule:    RuleDuplicate,
			field:   "potentialRoles.roles.title",
			message: "duplicate title",
		},
		{
			name: "duplicate salary",
			mutate: func(r *types.CareerPathResponse) {
				r.PotentialRoles.Roles[1].Salary = r.PotentialRoles.Roles[0].Salary
			},
			rule:    RuleDuplicate,
			field:   "potentialRoles.roles.salary",
			message: "duplicate salary",
		},
		{
			name: "near identical descriptions",
			mutate: func(r *types.CareerPathResponse) {
				r.PotentialRoles.Roles[1].Description = "As a Staff Frontend Developer you coordinate a squad of four to six engineers and own delivery of their roadmap."
			},
			rule:  RuleTooSimilar,
			field: "potentialRoles.roles.description",
		},
		{
			name: "reworded requirement across roles",
			mutate: func(r *types.CareerPathResponse) {
				r.PotentialRoles.Roles[1].Requirements[0] = "Mentoring junior developers with code reviews"
			},
			rule:  RuleTooSimilar,
			field: "potentialRoles.roles.requirements",
		},
		{
			name: "repeated trend within one role",
			mutate: func(r *types.CareerPathResponse) {
				r.PotentialRoles.Roles[0].Trends[1] = r.PotentialRoles.Roles[0].Trends[0]
			},
			rule:  RuleTooSimilar,
			field: "potentialRoles.roles.trends",
		},
		{
			name: "description without title",
			mutate: func(r *types.CareerPathResponse) {
				r.PotentialRoles.Roles[0].Description = "You coordinate a squad of four to six engineers and own delivery of their roadmap."
			},
			rule:  RuleTitleMention,
			field: "potentialRoles.roles[0].description",
		},
		{
			name: "two requirements",
			mutate: func(r *types.CareerPathResponse) {
				r.PotentialRoles.Roles[0].Requirements = r.PotentialRoles.Roles[0].Requirements[:2]
			},
			rule:  RuleArrayLength,
			field: "potentialRoles.roles[0].requirements",
		},
		{
			name: "three opportunities",
			mutate: func(r *types.CareerPathResponse) {
				r.PotentialRoles.Roles[1].Opportunities = append(r.PotentialRoles.Roles[1].Opportunities, "Government digital services")
			},
			rule:  RuleArrayLength,
			field: "potentialRoles.roles[1].opportunities",
		},
		{
			name:    "short term timeline of two",
			mutate:  func(r *types.CareerPathResponse) { r.Timeline.ShortTerm = r.Timeline.ShortTerm[:2] },
			rule:    RuleArrayLength,
			field:   "timeline.shortTerm",
			message: "shortTerm timeline",
		},
		{
			name:   "missing timeline",
			mutate: func(r *types.CareerPathResponse) { r.Timeline = nil },
			rule:   RuleMissingField,
			field:  "timeline",
		},
		{
			name: "three immediate recommendations",
			mutate: func(r *types.CareerPathResponse) {
				r.Recommendations.Immediate = r.Recommendations.Immediate[:3]
			},
			rule:    RuleArrayLength,
			field:   "recommendations.immediate",
			message: "immediate recommendations",
		},
		{
			name:   "missing recommendations",
			mutate: func(r *types.CareerPathResponse) { r.Recommendations = nil },
			rule:   RuleMissingField,
			field:  "recommendations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := loadCareerPath(t)
			tt.mutate(resp)

			result, err := NewCareerPathValidator(nil, 0).Validate(resp)
			assert.Nil(t, result)
			ve := requireRule(t, err, tt.rule)
			assert.Equal(t, tt.field, ve.Field)
			if tt.message != "" {
				assert.Contains(t, ve.Error(), tt.message)
			}
		})
	}
}

func TestCareerPathValidator_NilResponse(t *testing.T) {
	_, err := NewCareerPathValidator(nil, 0).Validate(nil)
	requireRule(t, err, RuleMissingField)
}

func TestCareerPathValidator_FailsFastOnFirstRule(t *testing.T) {
	resp := loadCareerPath(t)
	resp.Path = "Too short."
	resp.Timeline.ShortTerm = nil
	resp.PotentialRoles.Roles[1].Title = "Tech Lead"

	_, err := NewCareerPathValidator(nil, 0).Validate(resp)
	requireRule(t, err, RuleSentenceCount)
}

func TestCareerPathValidator_PluggableSimilarity(t *testing.T) {
	t.Run("always similar rejects", func(t *testing.T) {
		v := NewCareerPathValidator(SimilarityFunc(func(a, b string) float64 { return 0.95 }), 0.7)
		_, err := v.Validate(loadCareerPath(t))
		requireRule(t, err, RuleTooSimilar)
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		v := NewCareerPathValidator(SimilarityFunc(func(a, b string) float64 { return 0.7 }), 0.7)
		_, err := v.Validate(loadCareerPath(t))
		assert.NoError(t, err)
	})

	t.Run("compares lower-cased text", func(t *testing.T) {
		var seen []string
		v := NewCareerPathValidator(SimilarityFunc(func(a, b string) float64 {
			seen = append(seen, a, b)
			return 0
		}), 0.7)
		_, err := v.Validate(loadCareerPath(t))
		require.NoError(t, err)
		assert.Contains(t, seen, "as a tech lead you coordinate a squad of four to six engineers and own delivery of their roadmap.")
	})
}

func TestSimilarityMetrics(t *testing.T) {
	for name, sim := range map[string]Similarity{
		"dice":         DiceSimilarity(),
		"jaro-winkler": JaroWinklerSimilarity(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 1.0, sim.Compare("tech lead", "tech lead"), 1e-9)
			assert.Less(t, sim.Compare("kubernetes", "food"), DefaultSimilarityThreshold)
		})
	}

	assert.NotNil(t, SimilarityByName("jaro-winkler"))
	assert.NotNil(t, SimilarityByName(""))
	assert.Nil(t, SimilarityByName("cosine"))
}
