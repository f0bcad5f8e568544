package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/types"
)

func TestMain(m *testing.M) {
	// opencensus starts a worker goroutine in its package init (pulled in via the Gemini client).
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// fixtureCompleter serves testdata/<schema>.json through the real schema decoder
type fixtureCompleter struct {
	mu        sync.Mutex
	overrides map[string]string
	errs      map[string]error
	calls     []completerCall
}

type completerCall struct {
	Schema string
	Role   types.UserRole
	User   string
}

func (f *fixtureCompleter) CompleteInto(_ context.Context, _, userPrompt string, role types.UserRole, schemaName string, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, completerCall{Schema: schemaName, Role: role, User: userPrompt})
	override, hasOverride := f.overrides[schemaName]
	err := f.errs[schemaName]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	raw := []byte(override)
	if !hasOverride {
		data, readErr := os.ReadFile(filepath.Join("testdata", schemaName+".json"))
		if readErr != nil {
			return fmt.Errorf("missing fixture for %s: %w", schemaName, readErr)
		}
		raw = data
	}
	return llm.Decode(raw, schemaName, out)
}

func (f *fixtureCompleter) schemasCalled() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, c := range f.calls {
		counts[c.Schema]++
	}
	return counts
}

// analyzerFunc adapts a function to ComponentAnalyzer
type analyzerFunc func(ctx context.Context, component types.Component, p *types.CareerProfile, role types.UserRole) (*ComponentResult, error)

func (f analyzerFunc) Analyze(ctx context.Context, component types.Component, p *types.CareerProfile, role types.UserRole) (*ComponentResult, error) {
	return f(ctx, component, p, role)
}

// exampleProfile is the reference free-tier scenario profile.
func exampleProfile() *types.CareerProfile {
	return &types.CareerProfile{
		CurrentRole:        "Software Developer",
		YearsExperience:    3,
		Skills:             []string{"JavaScript", "React"},
		Interests:          []string{"AI"},
		DesiredRole:        "Senior Software Engineer",
		Education:          "BS CS",
		IndustryPreference: "Technology",
	}
}
