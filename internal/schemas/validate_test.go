package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSchemas = []string{
	CareerProfile,
	SkillAnalysis,
	CareerPath,
	IndustryAnalysis,
	LearningPath,
	MarketAnalysis,
	ProSkillGap,
	ProCareerStrategy,
	ProMarketPosition,
	QuickAnalysis,
	CourseRecommendations,
}

func TestAllDefinitions_CompileAndParse(t *testing.T) {
	for _, name := range allSchemas {
		t.Run(name, func(t *testing.T) {
			definition, err := Definition(name)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal([]byte(definition), &v), "schema should be valid JSON")

			_, err = load(name)
			assert.NoError(t, err, "schema should compile")
		})
	}
}

func TestDefinition_Unknown(t *testing.T) {
	_, err := Definition("does_not_exist")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_CareerProfile_Valid(t *testing.T) {
	doc := `{
		"currentRole": "Software Developer",
		"yearsExperience": 3,
		"skills": ["JavaScript", "React"],
		"interests": ["AI"],
		"desiredRole": "Senior Software Engineer",
		"education": "BS CS",
		"industryPreference": "Technology"
	}`

	assert.NoError(t, Validate(CareerProfile, []byte(doc)))
}

func TestValidate_CareerProfile_ReportsEveryViolation(t *testing.T) {
	doc := `{
		"yearsExperience": "three",
		"skills": [],
		"interests": ["AI"],
		"desiredRole": "Senior Software Engineer",
		"education": "BS CS",
		"industryPreference": "Technology"
	}`

	err := Validate(CareerProfile, []byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := make(map[string]bool)
	for _, fe := range validationErr.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["currentRole"], "missing currentRole should be reported: %v", validationErr.Errors)
	assert.True(t, fields["yearsExperience"], "wrong type should be reported: %v", validationErr.Errors)
	assert.True(t, fields["skills"], "empty skills should be reported: %v", validationErr.Errors)
}

func TestValidate_QuickAnalysis_SkillCount(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name:    "exactly four skills",
			doc:     `{"direction": "Move toward platform work", "skills": ["Go", "Kubernetes", "SQL", "Mentoring"], "growthScore": 72, "roleAnalysis": "Strong fit"}`,
			wantErr: false,
		},
		{
			name:    "three skills",
			doc:     `{"direction": "Move toward platform work", "skills": ["Go", "Kubernetes", "SQL"], "growthScore": 72, "roleAnalysis": "Strong fit"}`,
			wantErr: true,
		},
		{
			name:    "score out of range",
			doc:     `{"direction": "Move toward platform work", "skills": ["Go", "Kubernetes", "SQL", "Mentoring"], "growthScore": 140, "roleAnalysis": "Strong fit"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(QuickAnalysis, []byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_CareerPath_IsTypeOnly(t *testing.T) {
	// Cardinality is left to the career path validator.
	doc := `{"path": "One sentence.", "potentialRoles": {"roles": []}, "timeline": {"shortTerm": ["a"]}}`
	assert.NoError(t, Validate(CareerPath, []byte(doc)))

	wrongType := `{"path": 42}`
	assert.Error(t, Validate(CareerPath, []byte(wrongType)))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(QuickAnalysis, []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_MissingPropertyNamesField(t *testing.T) {
	err := Validate(CareerProfile, []byte(`{"currentRole": "Developer"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "desiredRole")
	assert.Contains(t, fields, "skills")
	assert.NotContains(t, fields, "currentRole")
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{
		Schema: SkillAnalysis,
		Errors: []FieldError{
			{Field: "skillGaps", Message: "Array must have at least 3 items"},
		},
	}
	assert.Contains(t, err.Error(), "skill_analysis validation failed")
	assert.Contains(t, err.Error(), "1. skillGaps: Array must have at least 3 items")
}
