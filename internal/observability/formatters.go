// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-analyzer/internal/analysis"
	"github.com/jonathan/career-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes a bulleted list capped at limit items.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > count {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-count)
	}
	sb.WriteString("\n")
}

// PrintProgress outputs one line per finished component.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event analysis.ProgressEvent) {
	mark := "✓"
	if event.Status == analysis.StatusFailed {
		mark = "✗"
	}
	fmt.Fprintf(p.out, "[%d/%d] %s %-18s %5dms", event.Completed, event.Total, mark, event.Component, event.ElapsedMS)
	if event.Status == analysis.StatusFailed {
		fmt.Fprintf(p.out, "  %s", event.Message)
	}
	fmt.Fprintln(p.out)
}

// PrintQuickAnalysis outputs a human-readable summary of a quick analysis.
func (p *Printer) PrintQuickAnalysis(quick *types.QuickAnalysis) {
	if quick == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Growth score: %.0f/100\n", quick.GrowthScore)
	fmt.Fprintf(&sb, "Direction:    %s\n\n", quick.Direction)
	writeList(&sb, "Skills to develop", quick.Skills, maxItemsToShow)
	if quick.RoleAnalysis != "" {
		sb.WriteString(quick.RoleAnalysis + "\n")
	}

	p.printBox("QUICK CAREER ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareerAnalysis outputs a human-readable summary of a full analysis.
func (p *Printer) PrintCareerAnalysis(a *types.CareerAnalysis) {
	if a == nil {
		return
	}

	p.printCareerPath(a)
	p.printSkills(a)
	p.printLearning(a)
	p.printMarket(a)
	if a.ProFeatures != nil {
		p.printProFeatures(a.ProFeatures)
	}
}

func (p *Printer) printCareerPath(a *types.CareerAnalysis) {
	var sb strings.Builder
	sb.WriteString(a.CareerPath + "\n\n")

	for i, role := range a.RoleDetails {
		fmt.Fprintf(&sb, "#%d  %s", i+1, role.Title)
		if role.Salary != "" {
			fmt.Fprintf(&sb, " (%s)", role.Salary)
		}
		sb.WriteString("\n")
		if role.TimeToAchieve != "" {
			fmt.Fprintf(&sb, "    In: %s\n", role.TimeToAchieve)
		}
	}
	sb.WriteString("\n")

	writeList(&sb, "Do now", a.Recommendations.Immediate, maxItemsToShow)
	writeList(&sb, "Short term", a.Timeline.ShortTerm, 3)
	writeList(&sb, "Mid term", a.Timeline.MidTerm, 3)
	writeList(&sb, "Long term", a.Timeline.LongTerm, 3)

	p.printBox("CAREER PATH", strings.TrimSpace(sb.String()))
}

func (p *Printer) printSkills(a *types.CareerAnalysis) {
	if len(a.CurrentSkills) == 0 && len(a.SkillGaps) == 0 {
		return
	}

	current := make([]string, 0, len(a.CurrentSkills))
	for _, s := range a.CurrentSkills {
		current = append(current, fmt.Sprintf("%s (%s)", s.Name, s.Level))
	}
	gaps := make([]string, 0, len(a.SkillGaps))
	for _, g := range a.SkillGaps {
		gaps = append(gaps, fmt.Sprintf("%s [%s]", g.Name, g.Importance))
	}

	var sb strings.Builder
	writeList(&sb, "Current skills", current, maxItemsToShow)
	writeList(&sb, "Skill gaps", gaps, maxItemsToShow)

	p.printBox("SKILLS", strings.TrimSpace(sb.String()))
}

func (p *Printer) printLearning(a *types.CareerAnalysis) {
	if len(a.LearningResources) == 0 && len(a.Milestones) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range a.LearningResources {
		if i == maxItemsToShow {
			fmt.Fprintf(&sb, "... and %d more\n", len(a.LearningResources)-maxItemsToShow)
			break
		}
		fmt.Fprintf(&sb, "• %s [%s]\n", r.Title, r.Priority)
		if r.Provider != "" || r.Duration != "" {
			fmt.Fprintf(&sb, "    %s %s\n", r.Provider, r.Duration)
		}
	}
	if len(a.Milestones) > 0 {
		sb.WriteString("\nMilestones:\n")
		for _, m := range a.Milestones {
			fmt.Fprintf(&sb, "  %s: %s\n", m.Timeframe, m.Title)
		}
	}

	p.printBox("LEARNING PATH", strings.TrimSpace(sb.String()))
}

func (p *Printer) printMarket(a *types.CareerAnalysis) {
	m := a.MarketOverview
	var sb strings.Builder
	fmt.Fprintf(&sb, "Demand:      %s\n", m.DemandLevel)
	fmt.Fprintf(&sb, "Competition: %s\n", m.CompetitionLevel)
	if m.SalaryRange.Max > 0 {
		fmt.Fprintf(&sb, "Salary:      %.0f - %.0f %s\n", m.SalaryRange.Min, m.SalaryRange.Max, m.SalaryRange.Currency)
	}
	sb.WriteString("\n")
	writeList(&sb, "Top locations", m.TopLocations, 3)
	writeList(&sb, "Industry trends", a.IndustryInsights.Trends, 3)

	p.printBox("MARKET", strings.TrimSpace(sb.String()))
}

func (p *Printer) printProFeatures(pro *types.ProFeatures) {
	var sb strings.Builder

	entries := append(append([]types.SkillMatrixEntry{}, pro.SkillMatrix.Technical...), pro.SkillMatrix.Soft...)
	if len(entries) > 0 {
		sb.WriteString("Skill matrix:\n")
		for _, e := range entries[:min(len(entries), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  %-24s %d → %d  %s\n", truncate(e.Skill, 24), e.CurrentLevel, e.TargetLevel, e.Priority)
		}
		sb.WriteString("\n")
	}

	if pro.CareerStrategy.Positioning != "" {
		fmt.Fprintf(&sb, "Positioning: %s\n\n", pro.CareerStrategy.Positioning)
	}
	for _, phase := range pro.CareerStrategy.NinetyDayPlan {
		fmt.Fprintf(&sb, "%s: %d actions\n", phase.Phase, len(phase.Actions))
	}
	if pro.MarketDynamics.CompetitivePosition != "" {
		fmt.Fprintf(&sb, "\nPosition: %s\n", pro.MarketDynamics.CompetitivePosition)
	}
	writeList(&sb, "\nDifferentiators", pro.MarketDynamics.Differentiators, 3)

	p.printBox("PRO INSIGHTS", strings.TrimSpace(sb.String()))
}
