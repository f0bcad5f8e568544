package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-analyzer/internal/types"
)

// Required cardinalities for a career path response
const (
	MinPathSentences     = 3
	MinRoles             = 2
	RequirementsPerRole  = 3
	TrendsPerRole        = 2
	OpportunitiesPerRole = 2
	TimelineItems        = 3
	RecommendationItems  = 4
)

// CareerPathValidator checks a raw careerPath response and flattens it into a
// ValidatedCareerPath. Validation stops at the first violated rule.
type CareerPathValidator struct {
	similarity Similarity
	threshold  float64
}

// NewCareerPathValidator creates a validator. A nil similarity uses Sorensen-Dice and a
// non-positive threshold uses DefaultSimilarityThreshold.
func NewCareerPathValidator(similarity Similarity, threshold float64) *CareerPathValidator {
	if similarity == nil {
		similarity = DiceSimilarity()
	}
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &CareerPathValidator{similarity: similarity, threshold: threshold}
}

// Validate applies every career path rule in order and returns the validated result.
func (v *CareerPathValidator) Validate(resp *types.CareerPathResponse) (*types.ValidatedCareerPath, error) {
	if resp == nil {
		return nil, &ValidationError{Rule: RuleMissingField, Field: "(root)", Message: "career path response is missing"}
	}

	if n := countSentences(resp.Path); n < MinPathSentences {
		return nil, &ValidationError{
			Rule:    RuleSentenceCount,
			Field:   "path",
			Message: fmt.Sprintf("career path narrative must have at least %d sentences, got %d", MinPathSentences, n),
		}
	}

	if resp.PotentialRoles == nil || len(resp.PotentialRoles.Roles) < MinRoles {
		got := 0
		if resp.PotentialRoles != nil {
			got = len(resp.PotentialRoles.Roles)
		}
		return nil, &ValidationError{
			Rule:    RuleRoleCount,
			Field:   "potentialRoles.roles",
			Message: fmt.Sprintf("at least %d potential roles are required, got %d", MinRoles, got),
		}
	}
	roles := resp.PotentialRoles.Roles

	if err := checkRoleFields(roles); err != nil {
		return nil, err
	}
	if err := checkExactDuplicates(roles); err != nil {
		return nil, err
	}
	if err := v.checkSimilarity(roles); err != nil {
		return nil, err
	}
	if err := checkTitleMentions(roles); err != nil {
		return nil, err
	}
	if err := checkRoleCardinality(roles); err != nil {
		return nil, err
	}

	if resp.Timeline == nil {
		return nil, &ValidationError{Rule: RuleMissingField, Field: "timeline", Message: "timeline is missing"}
	}
	for _, section := range []struct {
		name  string
		items []string
	}{
		{"shortTerm", resp.Timeline.ShortTerm},
		{"midTerm", resp.Timeline.MidTerm},
		{"longTerm", resp.Timeline.LongTerm},
	} {
		if err := exactLength("timeline."+section.name, section.name+" timeline", section.items, TimelineItems); err != nil {
			return nil, err
		}
	}

	if resp.Recommendations == nil {
		return nil, &ValidationError{Rule: RuleMissingField, Field: "recommendations", Message: "recommendations are missing"}
	}
	for _, section := range []struct {
		name  string
		items []string
	}{
		{"immediate", resp.Recommendations.Immediate},
		{"shortTerm", resp.Recommendations.ShortTerm},
		{"longTerm", resp.Recommendations.LongTerm},
	} {
		if err := exactLength("recommendations."+section.name, section.name+" recommendations", section.items, RecommendationItems); err != nil {
			return nil, err
		}
	}

	titles := make([]string, len(roles))
	details := make([]types.RoleDetail, len(roles))
	for i, role := range roles {
		titles[i] = role.Title
		details[i] = role
	}

	return &types.ValidatedCareerPath{
		Path:            resp.Path,
		PotentialRoles:  titles,
		RoleDetails:     details,
		Recommendations: *resp.Recommendations,
		Timeline:        *resp.Timeline,
	}, nil
}

// countSentences splits on "." and counts non-blank pieces.
func countSentences(text string) int {
	count := 0
	for _, piece := range strings.Split(text, ".") {
		if strings.TrimSpace(piece) != "" {
			count++
		}
	}
	return count
}

func checkRoleFields(roles []types.RoleDetail) error {
	for i, role := range roles {
		for _, field := range []struct {
			name  string
			value string
		}{
			{"title", role.Title},
			{"description", role.Description},
			{"salary", role.Salary},
		} {
			if strings.TrimSpace(field.value) == "" {
				return &ValidationError{
					Rule:    RuleMissingField,
					Field:   fmt.Sprintf("potentialRoles.roles[%d].%s", i, field.name),
					Message: fmt.Sprintf("role %d is missing its %s", i+1, field.name),
				}
			}
		}
	}
	return nil
}

func checkExactDuplicates(roles []types.RoleDetail) error {
	for i := 0; i < len(roles); i++ {
		for j := i + 1; j < len(roles); j++ {
			if roles[i].Title == roles[j].Title {
				return &ValidationError{
					Rule:    RuleDuplicate,
					Field:   "potentialRoles.roles.title",
					Message: fmt.Sprintf("duplicate title %q in roles %d and %d", roles[i].Title, i+1, j+1),
				}
			}
			if roles[i].Salary == roles[j].Salary {
				return &ValidationError{
					Rule:    RuleDuplicate,
					Field:   "potentialRoles.roles.salary",
					Message: fmt.Sprintf("duplicate salary %q in roles %d and %d", roles[i].Salary, i+1, j+1),
				}
			}
		}
	}
	return nil
}

func (v *CareerPathValidator) checkSimilarity(roles []types.RoleDetail) error {
	var descriptions, requirements, trends, opportunities []string
	for _, role := range roles {
		descriptions = append(descriptions, role.Description)
		requirements = append(requirements, role.Requirements...)
		trends = append(trends, role.Trends...)
		opportunities = append(opportunities, role.Opportunities...)
	}

	for _, group := range []struct {
		field string
		items []string
	}{
		{"description", descriptions},
		{"requirements", requirements},
		{"trends", trends},
		{"opportunities", opportunities},
	} {
		if err := v.checkGroup(group.field, group.items); err != nil {
			return err
		}
	}
	return nil
}

func (v *CareerPathValidator) checkGroup(field string, items []string) error {
	lowered := make([]string, len(items))
	for i, item := range items {
		lowered[i] = strings.ToLower(strings.TrimSpace(item))
	}
	for i := 0; i < len(lowered); i++ {
		for j := i + 1; j < len(lowered); j++ {
			score := v.similarity.Compare(lowered[i], lowered[j])
			if score > v.threshold {
				return &ValidationError{
					Rule:  RuleTooSimilar,
					Field: "potentialRoles.roles." + field,
					Message: fmt.Sprintf("%s entries are too similar (%.2f > %.2f): %q and %q",
						field, score, v.threshold, items[i], items[j]),
				}
			}
		}
	}
	return nil
}

func checkTitleMentions(roles []types.RoleDetail) error {
	for i, role := range roles {
		if !strings.Contains(strings.ToLower(role.Description), strings.ToLower(role.Title)) {
			return &ValidationError{
				Rule:    RuleTitleMention,
				Field:   fmt.Sprintf("potentialRoles.roles[%d].description", i),
				Message: fmt.Sprintf("description of %q does not mention the role title", role.Title),
			}
		}
	}
	return nil
}

func checkRoleCardinality(roles []types.RoleDetail) error {
	for i, role := range roles {
		prefix := fmt.Sprintf("potentialRoles.roles[%d].", i)
		if err := exactLength(prefix+"requirements", role.Title+" requirements", role.Requirements, RequirementsPerRole); err != nil {
			return err
		}
		if err := exactLength(prefix+"trends", role.Title+" trends", role.Trends, TrendsPerRole); err != nil {
			return err
		}
		if err := exactLength(prefix+"opportunities", role.Title+" opportunities", role.Opportunities, OpportunitiesPerRole); err != nil {
			return err
		}
	}
	return nil
}

func exactLength(field, label string, items []string, want int) error {
	if len(items) != want {
		return &ValidationError{
			Rule:    RuleArrayLength,
			Field:   field,
			Message: fmt.Sprintf("%s must contain exactly %d items, got %d", label, want, len(items)),
		}
	}
	return nil
}
