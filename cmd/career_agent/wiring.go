package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/career-analyzer/internal/analysis"
	"github.com/jonathan/career-analyzer/internal/config"
	"github.com/jonathan/career-analyzer/internal/courses"
	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/profile"
	"github.com/jonathan/career-analyzer/internal/prompts"
	"github.com/jonathan/career-analyzer/internal/types"
)

// loadConfig builds the effective configuration: built-in defaults, then the optional
// config file, then environment variables. Flags are applied by the caller.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return zcfg.Build()
}

// readProfileFile loads and validates a career profile JSON file.
func readProfileFile(path string) (*types.CareerProfile, error) {
	if path == "" {
		return nil, fmt.Errorf("--profile is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return profile.ValidateJSON(data)
}

// services holds the wired analysis stack and the resources to release afterwards.
type services struct {
	analysis *analysis.Service
	closers  []io.Closer
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

// buildServices wires the model client, course enricher and analysis service.
// A configured but unreachable Redis degrades to running without a cache.
func buildServices(ctx context.Context, cfg config.Config, logger *zap.Logger) (*services, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set %s or %s)", config.EnvGeminiAPIKey, config.EnvOpenAIAPIKey)
	}

	if err := prompts.CheckTemplates(); err != nil {
		return nil, err
	}

	llmCfg := cfg.LLMConfig()
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	svc := &services{closers: []io.Closer{client}}
	completer := llm.NewCompleter(client, llmCfg, logger)

	var cache courses.ResourceCache = courses.NopCache{}
	if cfg.RedisURL != "" {
		redisCache, err := courses.DialRedis(ctx, cfg.RedisURL, cfg.CacheTTL())
		if err != nil {
			logger.Warn("course cache disabled", zap.Error(err))
		} else {
			cache = redisCache
			svc.closers = append(svc.closers, redisCache)
		}
	}

	enricher := courses.NewEnricher(
		courses.NewLLMSource(completer),
		courses.WithCache(cache),
		courses.WithCatalogURL(cfg.CatalogURL),
		courses.WithLogger(logger),
	)
	analyzer := analysis.NewAnalyzer(completer, enricher, cfg.Validator(), logger)
	svc.analysis = analysis.NewService(completer.WithTier(llm.TierLite), analyzer, logger)
	return svc, nil
}
