package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/career-analyzer/internal/llm"
)

// Environment variables read by ApplyEnv.
const (
	EnvProvider            = "LLM_PROVIDER"
	EnvGeminiAPIKey        = "GEMINI_API_KEY"
	EnvOpenAIAPIKey        = "OPENAI_API_KEY"
	EnvDatabaseURL         = "DATABASE_URL"
	EnvRedisURL            = "REDIS_URL"
	EnvPort                = "PORT"
	EnvSimilarityThreshold = "SIMILARITY_THRESHOLD"
	EnvSimilarityMetric    = "SIMILARITY_METRIC"
	EnvCatalogURL          = "COURSE_CATALOG_URL"
)

// ApplyEnv overrides fields with any environment variables that are set.
// The API key is read from the variable of the selected provider.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider = v
	}
	keyVar := EnvGeminiAPIKey
	if llm.Provider(c.Provider) == llm.ProviderOpenAI {
		keyVar = EnvOpenAIAPIKey
	}
	if v := os.Getenv(keyVar); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv(EnvCatalogURL); v != "" {
		c.CatalogURL = v
	}
	if v := os.Getenv(EnvSimilarityMetric); v != "" {
		c.SimilarityMetric = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvPort, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvSimilarityThreshold); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvSimilarityThreshold, err)
		}
		c.SimilarityThreshold = threshold
	}
	return nil
}
