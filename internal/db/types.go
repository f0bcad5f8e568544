package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-analyzer/internal/types"
)

// Unlimited marks a role without an analysis limit.
const Unlimited = -1

// CreditLimits maps each role to the number of full analyses allowed per calendar month.
type CreditLimits map[types.UserRole]int

// DefaultCreditLimits returns the standard monthly limits.
func DefaultCreditLimits() CreditLimits {
	return CreditLimits{
		types.RoleFree:    3,
		types.RolePro:     20,
		types.RolePremium: 100,
		types.RoleAdmin:   Unlimited,
	}
}

// LimitFor returns the monthly limit for a role. Unknown roles get the free limit.
func (l CreditLimits) LimitFor(role types.UserRole) int {
	if limit, ok := l[role]; ok {
		return limit
	}
	return l[types.RoleFree]
}

// CreditStatus is a user's analysis usage in the current period
type CreditStatus struct {
	UserID      uuid.UUID      `json:"user_id"`
	Role        types.UserRole `json:"role"`
	Used        int            `json:"used"`
	Limit       int            `json:"limit"`
	Remaining   int            `json:"remaining"`
	Unlimited   bool           `json:"unlimited"`
	PeriodStart time.Time      `json:"period_start"`
}

// Exhausted reports whether no analyses remain.
func (s CreditStatus) Exhausted() bool {
	return !s.Unlimited && s.Remaining <= 0
}

// StoredAnalysis is a saved career analysis with its input profile
type StoredAnalysis struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Role      types.UserRole  `json:"role"`
	Profile   json.RawMessage `json:"profile"`
	Analysis  json.RawMessage `json:"analysis"`
	CreatedAt time.Time       `json:"created_at"`
}

// DecodeAnalysis unmarshals the stored analysis blob.
func (s *StoredAnalysis) DecodeAnalysis() (*types.CareerAnalysis, error) {
	var a types.CareerAnalysis
	if err := json.Unmarshal(s.Analysis, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DecodeProfile unmarshals the stored profile blob.
func (s *StoredAnalysis) DecodeProfile() (*types.CareerProfile, error) {
	var p types.CareerProfile
	if err := json.Unmarshal(s.Profile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
