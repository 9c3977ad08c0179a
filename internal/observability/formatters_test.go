package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/jobfit/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAssessment(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAssessment(&types.FitAssessment{
		FitScore:      72,
		FitLevel:      types.FitStrong,
		InterestLevel: 8,
		Decision:      types.DecisionPresent,
		CompetencyMatches: []types.CompetencyMatch{
			{Name: "Technical Leadership", MatchScore: 80, Weight: 0.5},
		},
		StageRecommendation: types.StageRecommendation{Stage: types.StageGrowth},
		Gaps:                []string{"a", "b", "c", "d"},
	})
	out := buf.String()

	assert.Contains(t, out, "FIT ASSESSMENT")
	assert.Contains(t, out, "72 (strong)")
	assert.Contains(t, out, "Technical Leadership")
	assert.Contains(t, out, "low confidence")
	assert.Contains(t, out, "... and 1 more")
}

func TestPrinter_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAssessment(nil)
	p.PrintSelection(nil)
	p.PrintVerification(nil)
	p.PrintSpin(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	items := make([]types.SelectedItem, 7)
	for i := range items {
		items[i] = types.SelectedItem{Item: types.LibraryItem{ID: "x", Text: "Led platform work"}, Area: "delivery"}
	}
	items[6].Backfilled = true

	NewPrinter(&buf).PrintSelection(&types.SelectionResult{
		Requested:  10,
		Items:      items,
		Allocation: map[string]int{"delivery": 10},
		Filled:     map[string]int{"delivery": 7},
		Shortfall:  3,
	})
	out := buf.String()

	assert.Contains(t, out, "Selected 7 of 10 requested (short 3)")
	assert.Contains(t, out, "7/10")
	assert.Contains(t, out, "... and 2 more bullets")
}

func TestPrintVerification(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVerification(&types.VerificationReport{
		DocumentType:  "resume",
		OverallStatus: types.StatusFailed,
		Score:         50,
		Checks: []types.CheckResult{
			{Name: "sections", Status: types.StatusPassed, Message: "all present"},
			{Name: "contact", Status: types.StatusFailed, Message: "missing email"},
		},
		AutoRetryRecommended: true,
	})
	out := buf.String()

	assert.Contains(t, out, "resume: failed (50.0)")
	assert.Contains(t, out, "✓ sections")
	assert.Contains(t, out, "✗ contact")
	assert.Contains(t, out, "Regenerate")
}

func TestPrintSpin_LongLinesClipped(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSpin(&types.SpinResult{
		Original:    strings.Repeat("word ", 40),
		Spun:        "Scaled teams",
		TargetStage: types.StageGrowth,
		Source:      types.SpinRuleBased,
		Changes:     []types.Replacement{{Original: "led", Replaced: "scaled"}},
	})

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "led -> scaled")
}
