// Package llm provides model configuration, provider clients and the JSON completion client
// used by the analysis pipeline.
package llm

import "github.com/jonathan/career-analyzer/internal/types"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for cheap single-call previews
	TierLite ModelTier = "lite"
	// TierStandard is for the analysis components
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI Provider = "openai"
)

// DefaultTemperature favors varied phrasing; structure is enforced downstream.
const DefaultTemperature float32 = 0.7

// Config holds the model configuration for the application
type Config struct {
	Provider     Provider
	Models       map[ModelTier]string
	Temperature  float32
	TokenBudgets map[types.UserRole]int
}

// DefaultTokenBudgets returns the per-role maximum output sizes.
// Premium and admin share the maximum budget.
func DefaultTokenBudgets() map[types.UserRole]int {
	return map[types.UserRole]int{
		types.RoleFree:    1500,
		types.RolePro:     3000,
		types.RolePremium: 4096,
		types.RoleAdmin:   4096,
	}
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature:  DefaultTemperature,
		TokenBudgets: DefaultTokenBudgets(),
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o",
		},
		Temperature:  DefaultTemperature,
		TokenBudgets: DefaultTokenBudgets(),
	}
}

// ConfigForProvider returns the default configuration of a provider.
func ConfigForProvider(provider Provider) *Config {
	if provider == ProviderOpenAI {
		return DefaultOpenAIConfig()
	}
	return DefaultGeminiConfig()
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// MaxTokens returns the output budget for a role. Unknown roles get the free budget.
func (c *Config) MaxTokens(role types.UserRole) int {
	budgets := c.TokenBudgets
	if budgets == nil {
		budgets = DefaultTokenBudgets()
	}
	if budget, ok := budgets[role]; ok {
		return budget
	}
	return budgets[types.RoleFree]
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithTokenBudget returns a new Config with a specific output budget for a role
func (c *Config) WithTokenBudget(role types.UserRole, maxTokens int) *Config {
	newConfig := c.clone()
	newConfig.TokenBudgets[role] = maxTokens
	return newConfig
}

func (c *Config) clone() *Config {
	newConfig := &Config{
		Provider:     c.Provider,
		Models:       make(map[ModelTier]string, len(c.Models)),
		Temperature:  c.Temperature,
		TokenBudgets: make(map[types.UserRole]int, len(c.TokenBudgets)),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	for k, v := range c.TokenBudgets {
		newConfig.TokenBudgets[k] = v
	}
	return newConfig
}
