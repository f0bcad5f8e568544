package types

// Priority constants for learning resources
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PartnerInfo describes the institution behind a course.
type PartnerInfo struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// LearningResource is a course or material recommended to the user.
type LearningResource struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Type          string       `json:"type"`
	URL           string       `json:"url"`
	Priority      string       `json:"priority"`
	Duration      string       `json:"duration"`
	Skills        []string     `json:"skills"`
	Provider      string       `json:"provider"`
	PartnerInfo   *PartnerInfo `json:"partnerInfo,omitempty"`
	Description   string       `json:"description"`
	PhotoURL      string       `json:"photoUrl"`
	Certification bool         `json:"certification"`
}

// ProFeatures holds the sections only pro and premium users receive.
type ProFeatures struct {
	SkillMatrix    SkillMatrix    `json:"skillMatrix"`
	CareerStrategy CareerStrategy `json:"careerStrategy"`
	MarketDynamics MarketDynamics `json:"marketDynamics"`
}

// CareerAnalysis is the merged output of one full analysis run.
// ProFeatures is nil, and absent from the JSON encoding, when the role is not entitled.
type CareerAnalysis struct {
	CareerPath        string             `json:"careerPath"`
	CurrentSkills     []SkillAssessment  `json:"currentSkills"`
	SkillGaps         []SkillGap         `json:"skillGaps"`
	Recommendations   Recommendations    `json:"recommendations"`
	PotentialRoles    []string           `json:"potentialRoles"`
	RoleDetails       []RoleDetail       `json:"roleDetails"`
	LearningResources []LearningResource `json:"learningResources"`
	IndustryInsights  IndustryInsights   `json:"industryInsights"`
	MarketOverview    MarketOverview     `json:"marketOverview"`
	Timeline          Timeline           `json:"timeline"`
	Milestones        []Milestone        `json:"milestones"`
	ProFeatures       *ProFeatures       `json:"proFeatures,omitempty"`
}

// QuickAnalysis is the single-call teaser analysis for previews.
type QuickAnalysis struct {
	Direction    string   `json:"direction"`
	Skills       []string `json:"skills"`
	GrowthScore  float64  `json:"growthScore"`
	RoleAnalysis string   `json:"roleAnalysis"`
}
