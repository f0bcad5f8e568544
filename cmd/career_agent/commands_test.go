package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/career-analyzer/internal/config"
	"github.com/jonathan/career-analyzer/internal/profile"
	"github.com/jonathan/career-analyzer/internal/server"
	"github.com/jonathan/career-analyzer/internal/types"
)

const validProfile = `{
  "currentRole": "Software Developer",
  "yearsExperience": 3,
  "skills": ["JavaScript", "React"],
  "interests": ["AI"],
  "desiredRole": "Senior Software Engineer",
  "education": "BS Computer Science",
  "industryPreference": "Technology"
}`

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateProfileCommand(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		contains []string
	}{
		{
			name:     "valid profile",
			content:  validProfile,
			contains: []string{"is valid", "Software Developer -> Senior Software Engineer", "2 skills"},
		},
		{
			name:     "missing skills",
			content:  `{"currentRole": "Developer", "yearsExperience": 1, "interests": ["AI"], "desiredRole": "Lead", "education": "", "industryPreference": ""}`,
			wantErr:  true,
			contains: []string{"is invalid", "skills"},
		},
		{
			name:     "malformed JSON",
			content:  `{"currentRole": `,
			wantErr:  true,
			contains: []string{"is invalid", "malformed JSON"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "profile.json", tt.content)
			out, err := executeCommand(t, "validate-profile", "--profile", path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestValidateProfileCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "validate-profile", "--profile", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read profile")
}

func TestReadProfileFile(t *testing.T) {
	_, err := readProfileFile("")
	assert.EqualError(t, err, "--profile is required")

	p, err := readProfileFile(writeFile(t, "profile.json", validProfile))
	require.NoError(t, err)
	assert.Equal(t, "Senior Software Engineer", p.DesiredRole)
	assert.Equal(t, []string{"JavaScript", "React"}, p.Skills)

	_, err = readProfileFile(writeFile(t, "blank.json", `{"currentRole": " ", "yearsExperience": 2, "skills": ["Go"], "interests": ["AI"], "desiredRole": "Lead", "education": "", "industryPreference": ""}`))
	var invalid *profile.InvalidProfileError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []profile.FieldError{{Field: "currentRole", Message: "must not be blank"}}, invalid.Fields)
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		config.EnvProvider, config.EnvGeminiAPIKey, config.EnvOpenAIAPIKey,
		config.EnvDatabaseURL, config.EnvRedisURL, config.EnvPort,
		config.EnvSimilarityThreshold, config.EnvSimilarityMetric, config.EnvCatalogURL,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := writeFile(t, "config.json", `{"provider": "openai", "similarity_threshold": 0.5, "port": 9000}`)
	t.Setenv(config.EnvOpenAIAPIKey, "sk-test")
	t.Setenv(config.EnvPort, "9100")

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.InDelta(t, 0.5, cfg.SimilarityThreshold, 1e-9)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "dice", cfg.SimilarityMetric)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearConfigEnv(t)

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	t.Setenv(config.EnvPort, "not-a-port")
	_, err = loadConfig("")
	assert.Error(t, err)
}

func TestBuildServices_RequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	_, err := buildServices(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestAnalyzeCommand_InvalidRole(t *testing.T) {
	path := writeFile(t, "profile.json", validProfile)
	_, err := executeCommand(t, "analyze", "--profile", path, "--role", "gold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gold")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-test-secret-that-is-long-enough")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	userID := uuid.New()

	out, err := executeCommand(t, "token", "--user-id", userID.String(), "--role", "pro")
	require.NoError(t, err)

	jwtCfg, err := config.NewJWTConfig()
	require.NoError(t, err)
	claims, err := server.NewJWTService(jwtCfg).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, string(types.RolePro), claims.Role)
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	analysis := &types.CareerAnalysis{CareerPath: "Grow.", PotentialRoles: []string{"Lead", "Staff"}}

	require.NoError(t, writeJSONFile(path, analysis))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"potentialRoles"`)

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, analysis))
	assert.JSONEq(t, string(data), buf.String())
}
