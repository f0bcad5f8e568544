// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/career-analyzer/internal/analysis"
	"github.com/jonathan/career-analyzer/internal/db"
	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/types"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Model
	Provider      string         `json:"provider,omitempty"`       // "gemini" or "openai"
	APIKey        string         `json:"api_key,omitempty"`        // Provider API key
	ModelLite     string         `json:"model_lite,omitempty"`     // Model for quick analyses
	ModelStandard string         `json:"model_standard,omitempty"` // Model for the analysis components
	Temperature   float32        `json:"temperature,omitempty"`    // Sampling temperature (0.0-2.0)
	TokenBudgets  map[string]int `json:"token_budgets,omitempty"`  // Max output tokens per role

	// Career path checks
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"` // Max allowed similarity between roles (0.0-1.0)
	SimilarityMetric    string  `json:"similarity_metric,omitempty"`    // "dice" or "jaro-winkler"

	// Storage
	DatabaseURL     string         `json:"database_url,omitempty"`      // PostgreSQL connection URL
	RedisURL        string         `json:"redis_url,omitempty"`         // Redis URL for the course cache
	CacheTTLMinutes int            `json:"cache_ttl_minutes,omitempty"` // Course cache lifetime
	CreditLimits    map[string]int `json:"credit_limits,omitempty"`     // Monthly analyses per role, -1 for unlimited

	// Course links
	CatalogURL string `json:"catalog_url,omitempty"` // Base URL courses are linked under by id

	// Server
	Port int `json:"port,omitempty"`

	Verbose bool `json:"verbose,omitempty"` // Debug logging
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider:            string(llm.ProviderGemini),
		Temperature:         llm.DefaultTemperature,
		SimilarityThreshold: analysis.DefaultSimilarityThreshold,
		SimilarityMetric:    "dice",
		CacheTTLMinutes:     30,
		Port:                8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the command.
func (c *Config) Validate() error {
	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGemini, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("config error: 'similarity_threshold' must be between 0 and 1")
	}
	if analysis.SimilarityByName(c.SimilarityMetric) == nil {
		return fmt.Errorf("config error: unknown similarity metric %q", c.SimilarityMetric)
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("config error: 'cache_ttl_minutes' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for name, budget := range c.TokenBudgets {
		if _, err := types.ParseUserRole(name); err != nil {
			return fmt.Errorf("config error: token_budgets: %w", err)
		}
		if budget <= 0 {
			return fmt.Errorf("config error: token budget for %q must be positive", name)
		}
	}
	if err := checkBudgetOrder(c.tokenBudgets()); err != nil {
		return err
	}
	for name, limit := range c.CreditLimits {
		if _, err := types.ParseUserRole(name); err != nil {
			return fmt.Errorf("config error: credit_limits: %w", err)
		}
		if limit < db.Unlimited {
			return fmt.Errorf("config error: credit limit for %q must be -1 or greater", name)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.SimilarityMetric == "" {
		result.SimilarityMetric = defaults.SimilarityMetric
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.CatalogURL == "" {
		result.CatalogURL = defaults.CatalogURL
	}

	// Numeric fields: use default if zero
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.SimilarityThreshold == 0 {
		result.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if result.CacheTTLMinutes == 0 {
		result.CacheTTLMinutes = defaults.CacheTTLMinutes
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Maps: per-role entries from the file win
	result.TokenBudgets = mergeRoleMap(defaults.TokenBudgets, c.TokenBudgets)
	result.CreditLimits = mergeRoleMap(defaults.CreditLimits, c.CreditLimits)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMConfig builds the model configuration.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigForProvider(llm.Provider(c.Provider))
	if c.ModelLite != "" {
		cfg = cfg.WithModel(llm.TierLite, c.ModelLite)
	}
	if c.ModelStandard != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.ModelStandard)
	}
	if c.Temperature > 0 {
		cfg.Temperature = c.Temperature
	}
	for role, budget := range c.tokenBudgets() {
		cfg = cfg.WithTokenBudget(role, budget)
	}
	return cfg
}

// tokenBudgets returns the default budgets with configured overrides applied.
func (c *Config) tokenBudgets() map[types.UserRole]int {
	budgets := llm.DefaultTokenBudgets()
	for name, budget := range c.TokenBudgets {
		if role, err := types.ParseUserRole(name); err == nil {
			budgets[role] = budget
		}
	}
	return budgets
}

// checkBudgetOrder requires free < pro < premium and admin equal to premium.
func checkBudgetOrder(budgets map[types.UserRole]int) error {
	free, pro := budgets[types.RoleFree], budgets[types.RolePro]
	premium, admin := budgets[types.RolePremium], budgets[types.RoleAdmin]
	if free >= pro || pro >= premium {
		return fmt.Errorf("config error: token budgets must increase free < pro < premium (got %d, %d, %d)", free, pro, premium)
	}
	if admin != premium {
		return fmt.Errorf("config error: admin token budget must equal premium (got %d, want %d)", admin, premium)
	}
	return nil
}

// Limits returns the monthly credit limits with configured overrides applied.
func (c *Config) Limits() db.CreditLimits {
	limits := db.DefaultCreditLimits()
	for name, limit := range c.CreditLimits {
		if role, err := types.ParseUserRole(name); err == nil {
			limits[role] = limit
		}
	}
	return limits
}

// Validator builds the career path validator from the similarity settings.
func (c *Config) Validator() *analysis.CareerPathValidator {
	return analysis.NewCareerPathValidator(analysis.SimilarityByName(c.SimilarityMetric), c.SimilarityThreshold)
}

// CacheTTL returns the course cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

func mergeRoleMap(defaults, overrides map[string]int) map[string]int {
	if len(defaults) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]int, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
