// Package types provides type definitions for structured data used throughout the career-analyzer system.
package types

import (
	"fmt"
	"strings"
)

// UserRole is the subscription tier of the user requesting an analysis.
type UserRole string

// UserRole constants
const (
	RoleFree    UserRole = "free"
	RolePro     UserRole = "pro"
	RolePremium UserRole = "premium"
	RoleAdmin   UserRole = "admin"
)

// ParseUserRole parses a role string (case-insensitive).
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(strings.ToLower(strings.TrimSpace(s)))
	switch role {
	case RoleFree, RolePro, RolePremium, RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("unknown user role %q", s)
	}
}

// HasProFeatures reports whether the role is entitled to the pro analysis components.
// Admin accounts get the maximum token budget but not the pro components.
func (r UserRole) HasProFeatures() bool {
	return r == RolePro || r == RolePremium
}

// IsFree reports whether the role is the free tier.
func (r UserRole) IsFree() bool {
	return r == RoleFree
}

// CareerProfile is the user's self-described career situation. It is the immutable
// input of one analysis request.
type CareerProfile struct {
	CurrentRole        string   `json:"currentRole" validate:"required,notblank"`
	YearsExperience    float64  `json:"yearsExperience" validate:"gte=0"`
	Skills             []string `json:"skills" validate:"required,min=1,dive,notblank"`
	Interests          []string `json:"interests" validate:"required,min=1,dive,notblank"`
	DesiredRole        string   `json:"desiredRole" validate:"required,notblank"`
	Education          string   `json:"education"`
	IndustryPreference string   `json:"industryPreference"`

	// Extended fields, used for pro and premium prompts only
	CareerGoals     string `json:"careerGoals,omitempty"`
	WorkEnvironment string `json:"workEnvironment,omitempty"`
	CustomFocus     string `json:"customFocus,omitempty"`
}
