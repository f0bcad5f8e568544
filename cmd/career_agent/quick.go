package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/observability"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Run a quick single-call career preview",
	Long:  `Asks the lite model for a short preview: a summary, a few potential roles and the key skills to build.`,
	RunE:  runQuick,
}

var (
	quickConfigPath string
	quickProfile    string
	quickAPIKey     string
	quickJSON       bool
	quickTimeout    time.Duration
)

func init() {
	quickCmd.Flags().StringVar(&quickConfigPath, "config", "", "Path to config.json file")
	quickCmd.Flags().StringVarP(&quickProfile, "profile", "p", "", "Path to career profile JSON file")
	quickCmd.Flags().StringVar(&quickAPIKey, "api-key", "", "Provider API key (optional, defaults to GEMINI_API_KEY or OPENAI_API_KEY)")
	quickCmd.Flags().BoolVar(&quickJSON, "json", false, "Print the raw JSON instead of a summary")
	quickCmd.Flags().DurationVar(&quickTimeout, "timeout", time.Minute, "Maximum time for the request")

	_ = quickCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(quickCmd)
}

func runQuick(cmd *cobra.Command, _ []string) error {
	p, err := readProfileFile(quickProfile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(quickConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = quickAPIKey
	}
	// Previews never touch the course cache
	cfg.RedisURL = ""
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), quickTimeout)
	defer cancel()

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.analysis.QuickAnalyzeCareer(ctx, p)
	if err != nil {
		return err
	}
	if quickJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintQuickAnalysis(result)
	return nil
}
