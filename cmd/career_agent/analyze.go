package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-analyzer/internal/analysis"
	"github.com/jonathan/career-analyzer/internal/observability"
	"github.com/jonathan/career-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full career analysis for a profile",
	Long: `Runs every analysis component the role is entitled to in parallel and prints the merged career analysis.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeProfile    string
	analyzeRole       string
	analyzeOut        string
	analyzeAPIKey     string
	analyzeVerbose    bool
	analyzeTimeout    time.Duration
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", "", "Path to career profile JSON file")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", string(types.RoleFree), "Subscription role: free, pro, premium or admin")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the analysis JSON to this file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Provider API key (optional, defaults to GEMINI_API_KEY or OPENAI_API_KEY)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print progress and debug logs")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 3*time.Minute, "Maximum time for the whole analysis")

	_ = analyzeCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	role, err := types.ParseUserRole(analyzeRole)
	if err != nil {
		return err
	}
	p, err := readProfileFile(analyzeProfile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if analyzeVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()
	ctx = analysis.WithSession(ctx, uuid.NewString())

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	opts := analysis.RunOptions{Profile: p, Role: role}
	if cfg.Verbose {
		opts.OnProgress = printer.PrintProgress
	}

	start := time.Now()
	result, err := svc.analysis.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Info("analysis complete",
		zap.String("role", string(role)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if analyzeOut == "" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	if err := writeJSONFile(analyzeOut, result); err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintCareerAnalysis(result)
	fmt.Fprintf(cmd.OutOrStdout(), "Analysis written to %s\n", analyzeOut)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
