// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/jobfit/internal/types"
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to n runes, marking the cut with "..."
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintAssessment outputs the fit score, per-area matches and the decision.
func (p *Printer) PrintAssessment(a *types.FitAssessment) {
	if a == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Fit:       %d (%s)\n", a.FitScore, a.FitLevel)
	fmt.Fprintf(&sb, "Interest:  %d/10 -> %s\n", a.InterestLevel, a.Decision)
	fmt.Fprintf(&sb, "Stage:     %s", a.StageRecommendation.Stage)
	if !a.StageRecommendation.Confident {
		sb.WriteString(" (low confidence)")
	}
	sb.WriteString("\n\n")

	if len(a.CompetencyMatches) > 0 {
		sb.WriteString("Competencies:\n")
		for _, m := range a.CompetencyMatches {
			fmt.Fprintf(&sb, "  %-22s %5.1f  (w %.2f)\n", clip(m.Name, 22), m.MatchScore, m.Weight)
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Gaps", a.Gaps, 3)
	writeList(&sb, "Next steps", a.ActionItems, 3)

	p.printBox("FIT ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSelection outputs the allocation and the chosen bullets.
func (p *Printer) PrintSelection(r *types.SelectionResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Selected %d of %d requested", len(r.Items), r.Requested)
	if r.Shortfall > 0 {
		fmt.Fprintf(&sb, " (short %d)", r.Shortfall)
	}
	sb.WriteString("\n\n")

	areas := make([]string, 0, len(r.Allocation))
	for area := range r.Allocation {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	for _, area := range areas {
		fmt.Fprintf(&sb, "  %-26s %d/%d\n", clip(area, 26), r.Filled[area], r.Allocation[area])
	}

	if len(r.Items) > 0 {
		sb.WriteString("\n")
		count := min(len(r.Items), maxItemsToShow)
		for i := 0; i < count; i++ {
			it := r.Items[i]
			marker := "•"
			if it.Backfilled {
				marker = "+"
			}
			fmt.Fprintf(&sb, "%s %s\n", marker, it.Item.Text)
		}
		if len(r.Items) > maxItemsToShow {
			fmt.Fprintf(&sb, "... and %d more bullets\n", len(r.Items)-maxItemsToShow)
		}
	}

	p.printBox("BULLET SELECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerification outputs each check with a status marker.
func (p *Printer) PrintVerification(r *types.VerificationReport) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s (%.1f)\n\n", r.DocumentType, r.OverallStatus, r.Score)
	for _, c := range r.Checks {
		fmt.Fprintf(&sb, "%s %-18s %s\n", statusMarker(c.Status), clip(c.Name, 18), c.Message)
	}
	if r.AutoRetryRecommended {
		sb.WriteString("\nRegenerate: structural checks failed\n")
	}

	p.printBox("VERIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSpin outputs the spun text and the replacements made.
func (p *Printer) PrintSpin(r *types.SpinResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Target:   %s (%s)\n", r.TargetStage, r.Source)
	if r.FallbackReason != "" {
		fmt.Fprintf(&sb, "Fallback: %s\n", r.FallbackReason)
	}
	fmt.Fprintf(&sb, "Metrics preserved: %t  similarity %.2f\n\n", r.MetricsPreserved, r.Similarity)
	fmt.Fprintf(&sb, "Before: %s\n", r.Original)
	fmt.Fprintf(&sb, "After:  %s\n", r.Spun)

	if len(r.Changes) > 0 {
		sb.WriteString("\n")
		count := min(len(r.Changes), maxItemsToShow)
		for _, c := range r.Changes[:count] {
			fmt.Fprintf(&sb, "  %s -> %s\n", c.Original, c.Replaced)
		}
		if len(r.Changes) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(r.Changes)-maxItemsToShow)
		}
	}

	p.printBox("STAGE SPIN", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	count := min(len(items), limit)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

func statusMarker(s types.CheckStatus) string {
	switch s {
	case types.StatusPassed:
		return "✓"
	case types.StatusWarning:
		return "!"
	default:
		return "✗"
	}
}
