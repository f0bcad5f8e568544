package courses

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/career-analyzer/internal/types"
)

// FallbackResources returns the fixed two-item set used whenever recommendations cannot
// be produced. Titles and search links are templated with the desired role.
func FallbackResources(desiredRole string) []types.LearningResource {
	role := strings.TrimSpace(desiredRole)
	if role == "" {
		role = "Your Target Role"
	}
	query := url.QueryEscape(role)

	return []types.LearningResource{
		{
			ID:          "fallback-fundamentals",
			Title:       fmt.Sprintf("%s Fundamentals", role),
			Type:        "course",
			URL:         "https://www.coursera.org/search?query=" + query,
			Priority:    types.PriorityHigh,
			Duration:    "4-6 weeks",
			Skills:      []string{role},
			Provider:    "Coursera",
			Description: fmt.Sprintf("Core concepts and day-to-day practices expected of a %s.", role),
		},
		{
			ID:          "fallback-advanced",
			Title:       fmt.Sprintf("Advanced %s Practices", role),
			Type:        "course",
			URL:         "https://www.edx.org/search?q=" + query,
			Priority:    types.PriorityMedium,
			Duration:    "6-8 weeks",
			Skills:      []string{role},
			Provider:    "edX",
			Description: fmt.Sprintf("Deeper material for practitioners preparing to work as a %s.", role),
		},
	}
}
