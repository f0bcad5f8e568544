package prompts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/career-analyzer/internal/types"
)

const careerFile = "career.json"

// ErrUnknownComponent is returned when no template exists for a component.
var ErrUnknownComponent = errors.New("unknown analysis component")

// Prompt is a system/user instruction pair for one model call.
type Prompt struct {
	System string
	User   string
}

// Generate builds the prompt for one analysis component. It is a pure function of its
// inputs: the same component, profile and role always produce the same prompt.
func Generate(component types.Component, profile *types.CareerProfile, role types.UserRole) (Prompt, error) {
	if profile == nil {
		return Prompt{}, errors.New("profile is required")
	}
	if !knownComponent(component) {
		return Prompt{}, fmt.Errorf("%w: %q", ErrUnknownComponent, component)
	}

	system, err := Get(careerFile, "system")
	if err != nil {
		return Prompt{}, err
	}
	user, err := Get(careerFile, string(component))
	if err != nil {
		return Prompt{}, err
	}

	data := profileData(profile)
	depth, instruction := depthFor(role)
	data["Depth"] = depth
	data["DepthInstruction"] = instruction
	data["ExtendedContext"] = extendedContext(profile, role)

	return Prompt{
		System: Format(system, data),
		User:   Format(user, data),
	}, nil
}

// GenerateQuick builds the prompt for the lightweight quick analysis.
func GenerateQuick(profile *types.CareerProfile) (Prompt, error) {
	if profile == nil {
		return Prompt{}, errors.New("profile is required")
	}
	system, err := Get(careerFile, "quickAnalysis-system")
	if err != nil {
		return Prompt{}, err
	}
	user, err := Get(careerFile, "quickAnalysis")
	if err != nil {
		return Prompt{}, err
	}
	data := profileData(profile)
	return Prompt{
		System: Format(system, data),
		User:   Format(user, data),
	}, nil
}

// GenerateCourseSearch builds the prompt asking for count courses matching terms.
func GenerateCourseSearch(terms []string, desiredRole string, count int) (Prompt, error) {
	if len(terms) == 0 {
		return Prompt{}, errors.New("at least one search term is required")
	}
	if count <= 0 {
		return Prompt{}, fmt.Errorf("course count must be positive, got %d", count)
	}
	system, err := Get(careerFile, "courseRecommendations-system")
	if err != nil {
		return Prompt{}, err
	}
	user, err := Get(careerFile, "courseRecommendations")
	if err != nil {
		return Prompt{}, err
	}
	data := map[string]string{
		"DesiredRole": orNotSpecified(desiredRole),
		"SearchTerms": strings.Join(terms, ", "),
		"Count":       strconv.Itoa(count),
	}
	return Prompt{
		System: Format(system, data),
		User:   Format(user, data),
	}, nil
}

// CheckTemplates reports every template the generator needs that is missing from the
// embedded prompt file.
func CheckTemplates() error {
	return checkTemplates(careerFile)
}

func checkTemplates(filename string) error {
	available, err := List(filename)
	if err != nil {
		return err
	}
	required := []string{"system", "quickAnalysis-system", "quickAnalysis", "courseRecommendations-system", "courseRecommendations"}
	for _, c := range types.ComponentsFor(types.RolePro) {
		required = append(required, string(c))
	}
	if missing := missingKeys(available, required); len(missing) > 0 {
		return fmt.Errorf("prompt templates missing from %s: %s", filename, strings.Join(missing, ", "))
	}
	return nil
}

func missingKeys(available, required []string) []string {
	have := make(map[string]bool, len(available))
	for _, key := range available {
		have[key] = true
	}
	var missing []string
	for _, key := range required {
		if !have[key] {
			missing = append(missing, key)
		}
	}
	return missing
}

func knownComponent(c types.Component) bool {
	for _, known := range types.ComponentsFor(types.RolePro) {
		if c == known {
			return true
		}
	}
	return false
}

func profileData(p *types.CareerProfile) map[string]string {
	return map[string]string{
		"CurrentRole":        p.CurrentRole,
		"YearsExperience":    strconv.FormatFloat(p.YearsExperience, 'f', -1, 64),
		"Skills":             strings.Join(p.Skills, ", "),
		"Interests":          strings.Join(p.Interests, ", "),
		"DesiredRole":        p.DesiredRole,
		"Education":          orNotSpecified(p.Education),
		"IndustryPreference": orNotSpecified(p.IndustryPreference),
	}
}

func depthFor(role types.UserRole) (string, string) {
	switch role {
	case types.RolePro:
		return "detailed", "Give detailed, specific answers with concrete examples."
	case types.RolePremium, types.RoleAdmin:
		return "comprehensive", "Give comprehensive, expert-level answers with concrete examples, numbers and named resources."
	default:
		return "basic", "Keep every answer brief and general."
	}
}

// extendedContext renders the optional profile fields for paid roles.
func extendedContext(p *types.CareerProfile, role types.UserRole) string {
	if role.IsFree() {
		return ""
	}
	var lines []string
	if v := strings.TrimSpace(p.CareerGoals); v != "" {
		lines = append(lines, "- Career goals: "+v)
	}
	if v := strings.TrimSpace(p.WorkEnvironment); v != "" {
		lines = append(lines, "- Preferred work environment: "+v)
	}
	if v := strings.TrimSpace(p.CustomFocus); v != "" {
		lines = append(lines, "- Focus on: "+v)
	}
	return strings.Join(lines, "\n")
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
