package types

// SkillAssessment describes one skill the user already has.
type SkillAssessment struct {
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// SkillGap describes one skill the user needs for the desired role.
type SkillGap struct {
	Name        string `json:"name"`
	Importance  string `json:"importance"`
	Description string `json:"description"`
}

// SkillAnalysis is the result of the skillAnalysis component.
type SkillAnalysis struct {
	CurrentSkills []SkillAssessment `json:"currentSkills"`
	SkillGaps     []SkillGap        `json:"skillGaps"`
}

// RoleDetail is one intermediate role on the way to the desired role.
type RoleDetail struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Salary        string   `json:"salary"`
	TimeToAchieve string   `json:"timeToAchieve,omitempty"`
	Requirements  []string `json:"requirements"`
	Trends        []string `json:"trends"`
	Opportunities []string `json:"opportunities"`
}

// PotentialRoles is the wire wrapper the model returns for role suggestions.
type PotentialRoles struct {
	Roles []RoleDetail `json:"roles"`
}

// Recommendations groups action items by horizon.
type Recommendations struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
}

// Timeline groups career steps by horizon.
type Timeline struct {
	ShortTerm []string `json:"shortTerm"`
	MidTerm   []string `json:"midTerm"`
	LongTerm  []string `json:"longTerm"`
}

// CareerPathResponse is the raw careerPath component output, before validation.
// Pointers distinguish a missing section from an empty one.
type CareerPathResponse struct {
	Path            string           `json:"path"`
	PotentialRoles  *PotentialRoles  `json:"potentialRoles"`
	Recommendations *Recommendations `json:"recommendations"`
	Timeline        *Timeline        `json:"timeline"`
}

// ValidatedCareerPath is a careerPath result that passed validation.
// PotentialRoles always equals the ordered titles of RoleDetails.
type ValidatedCareerPath struct {
	Path            string          `json:"path"`
	PotentialRoles  []string        `json:"potentialRoles"`
	RoleDetails     []RoleDetail    `json:"roleDetails"`
	Recommendations Recommendations `json:"recommendations"`
	Timeline        Timeline        `json:"timeline"`
}

// IndustryInsights is the result of the industryAnalysis component.
type IndustryInsights struct {
	Overview    string   `json:"overview"`
	Trends      []string `json:"trends"`
	GrowthAreas []string `json:"growthAreas"`
	Challenges  []string `json:"challenges"`
}

// Milestone is one checkpoint on the learning path.
type Milestone struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timeframe   string   `json:"timeframe"`
	Skills      []string `json:"skills"`
}

// LearningPath is the result of the learningPath component.
type LearningPath struct {
	LearningResources []LearningResource `json:"learningResources"`
	Milestones        []Milestone        `json:"milestones"`
	FocusAreas        []string           `json:"focusAreas"`
}

// SalaryRange is a compensation band.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// MarketOverview summarizes demand for the desired role.
type MarketOverview struct {
	DemandLevel      string      `json:"demandLevel"`
	CompetitionLevel string      `json:"competitionLevel"`
	SalaryRange      SalaryRange `json:"salaryRange"`
	TopLocations     []string    `json:"topLocations"`
	HiringTrends     []string    `json:"hiringTrends"`
}

// MarketAnalysis is the result of the marketAnalysis component.
type MarketAnalysis struct {
	MarketOverview MarketOverview `json:"marketOverview"`
}

// SkillMatrixEntry rates one skill against the target role.
type SkillMatrixEntry struct {
	Skill        string `json:"skill"`
	CurrentLevel int    `json:"currentLevel"`
	TargetLevel  int    `json:"targetLevel"`
	Priority     string `json:"priority"`
}

// SkillMatrix is the pro skill-gap breakdown.
type SkillMatrix struct {
	Technical          []SkillMatrixEntry `json:"technical"`
	Soft               []SkillMatrixEntry `json:"soft"`
	PrioritizedActions []string           `json:"prioritizedActions"`
}

// ProSkillGapResult is the result of the proSkillGap component.
type ProSkillGapResult struct {
	SkillMatrix SkillMatrix `json:"skillMatrix"`
}

// PlanPhase is one phase of a career plan.
type PlanPhase struct {
	Phase   string   `json:"phase"`
	Actions []string `json:"actions"`
}

// CareerStrategy is the pro positioning and networking plan.
type CareerStrategy struct {
	Positioning     string      `json:"positioning"`
	NetworkingPlan  []string    `json:"networkingPlan"`
	PersonalBrand   []string    `json:"personalBrand"`
	NegotiationTips []string    `json:"negotiationTips"`
	NinetyDayPlan   []PlanPhase `json:"ninetyDayPlan"`
}

// ProCareerStrategyResult is the result of the proCareerStrategy component.
type ProCareerStrategyResult struct {
	CareerStrategy CareerStrategy `json:"careerStrategy"`
}

// MarketDynamics is the pro competitive-position analysis.
type MarketDynamics struct {
	CompetitivePosition   string   `json:"competitivePosition"`
	Differentiators       []string `json:"differentiators"`
	EmergingOpportunities []string `json:"emergingOpportunities"`
	RiskFactors           []string `json:"riskFactors"`
	SalaryBenchmark       string   `json:"salaryBenchmark"`
}

// ProMarketPositionResult is the result of the proMarketPosition component.
type ProMarketPositionResult struct {
	MarketDynamics MarketDynamics `json:"marketDynamics"`
}

// Component names one independent sub-analysis produced by one model call.
type Component string

// Component constants
const (
	ComponentSkillAnalysis     Component = "skillAnalysis"
	ComponentCareerPath        Component = "careerPath"
	ComponentIndustryAnalysis  Component = "industryAnalysis"
	ComponentLearningPath      Component = "learningPath"
	ComponentMarketAnalysis    Component = "marketAnalysis"
	ComponentProSkillGap       Component = "proSkillGap"
	ComponentProCareerStrategy Component = "proCareerStrategy"
	ComponentProMarketPosition Component = "proMarketPosition"
)

// BaseComponents run for every role.
var BaseComponents = []Component{
	ComponentSkillAnalysis,
	ComponentCareerPath,
	ComponentIndustryAnalysis,
	ComponentLearningPath,
	ComponentMarketAnalysis,
}

// ProComponents run only for roles with pro features.
var ProComponents = []Component{
	ComponentProSkillGap,
	ComponentProCareerStrategy,
	ComponentProMarketPosition,
}

// ComponentsFor returns the component set a role is entitled to, in a stable order.
func ComponentsFor(role UserRole) []Component {
	components := make([]Component, 0, len(BaseComponents)+len(ProComponents))
	components = append(components, BaseComponents...)
	if role.HasProFeatures() {
		components = append(components, ProComponents...)
	}
	return components
}
