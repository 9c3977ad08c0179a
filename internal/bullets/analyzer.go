package bullets

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
)

// Score weights
const (
	scoreStructure    = 30
	scoreAnyMetric    = 25
	scoreResultMetric = 20
	scoreLength       = 10
	scoreIdealBonus   = 5
	scoreStrongVerb   = 5
	scoreNoGeneric    = 5

	// MinValidScore is the lowest quality score a valid statement can have
	MinValidScore = 70

	idealTolerance = 5
	nearEdge       = 10
	briefPart      = 10
)

// MetricDetection lists the metric substrings found in a text
type MetricDetection struct {
	HasMetric bool     `json:"has_metric"`
	Metrics   []string `json:"metrics"`
	Types     []string `json:"types"`
}

// Analyzer validates statements against the six-part contract
type Analyzer struct {
	tax *taxonomy.Taxonomy
}

// NewAnalyzer creates an analyzer over the given taxonomy
func NewAnalyzer(tax *taxonomy.Taxonomy) *Analyzer {
	return &Analyzer{tax: tax}
}

// DetectMetrics scans text for percentages, currency, grouped numbers,
// K/M/B scaled numbers and ratios/multipliers.
func (a *Analyzer) DetectMetrics(text string) MetricDetection {
	var d MetricDetection
	for _, p := range a.tax.MetricPatterns {
		found := p.Regexp().FindAllString(text, -1)
		if len(found) == 0 {
			continue
		}
		d.Metrics = append(d.Metrics, found...)
		d.Types = append(d.Types, p.Name)
	}
	d.HasMetric = len(d.Metrics) > 0
	return d
}

// IsWeakAction reports whether the action starts with a weak verb phrase
func (a *Analyzer) IsWeakAction(action string) bool {
	return a.leadingWeakPhrase(action) != ""
}

func (a *Analyzer) leadingWeakPhrase(action string) string {
	lower := strings.ToLower(strings.TrimSpace(action))
	for _, weak := range a.tax.WeakVerbs {
		if lower == weak || strings.HasPrefix(lower, weak+" ") {
			return weak
		}
	}
	return ""
}

// GenericPhrases returns the stoplisted phrases present in text
func (a *Analyzer) GenericPhrases(text string) []string {
	var found []string
	for _, phrase := range a.tax.GenericPhrases {
		if a.tax.ContainsKeyword(text, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}

// Analyze validates a statement. It never mutates the input and always
// returns the same result for the same statement.
func (a *Analyzer) Analyze(s types.SixPartStatement) types.ValidationResult {
	band := a.tax.Bullets
	text := Assemble(s)
	count := CharCount(text)

	r := types.ValidationResult{
		AssembledText:  text,
		CharacterCount: count,
	}

	// 1. Structure
	r.MissingParts = s.MissingParts()
	r.StructureComplete = len(r.MissingParts) == 0
	if !r.StructureComplete {
		r.Errors = append(r.Errors, fmt.Sprintf("Missing required parts: %s", strings.Join(r.MissingParts, ", ")))
	}

	// 2. Length band
	switch {
	case count < band.Min:
		r.Errors = append(r.Errors, fmt.Sprintf("Statement too short (%d chars). Must be at least %d characters.", count, band.Min))
		r.Suggestions = append(r.Suggestions, "Add more detail to context, method, or impact")
	case count > band.Max:
		r.Errors = append(r.Errors, fmt.Sprintf("Statement too long (%d chars). Must be at most %d characters.", count, band.Max))
		r.Suggestions = append(r.Suggestions, "Trim less important details or use more concise language")
	default:
		r.LengthInBand = true
		if count < band.Min+nearEdge {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Statement is close to minimum length (%d chars)", count))
		}
		if count > band.Max-nearEdge {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Statement is close to maximum length (%d chars)", count))
		}
	}

	// 3. Metrics, whole text and result part
	metrics := a.DetectMetrics(text)
	r.HasMetric = metrics.HasMetric
	r.Metrics = metrics.Metrics
	if !r.HasMetric {
		r.Errors = append(r.Errors, "Statement must contain a metric (percentage, currency, count, K/M/B figure or ratio)")
		r.Suggestions = append(r.Suggestions, "Quantify impact: 'reduced time by 40%', 'grew revenue by $500K', 'served 10K+ users'")
	}
	if strings.TrimSpace(s.Result) != "" {
		r.ResultHasMetric = a.DetectMetrics(s.Result).HasMetric
		if !r.ResultHasMetric {
			r.Errors = append(r.Errors, "Result part must contain a specific metric")
			r.Suggestions = append(r.Suggestions, "Add a quantified result: 'reducing X by Y%', 'increasing Z to N'")
		}
	}

	// 4. Leading verb
	if strings.TrimSpace(s.Action) != "" {
		if weak := a.leadingWeakPhrase(s.Action); weak != "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Weak action verb: '%s'. Use a stronger, more specific verb.", s.Action))
			r.Suggestions = append(r.Suggestions, fmt.Sprintf("Try: %s", a.SuggestStrongVerb(s.Action)))
		} else {
			r.StrongVerb = true
		}
	}

	// 5. Generic language
	if generic := a.GenericPhrases(text); len(generic) > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Generic language detected: %s", strings.Join(generic, ", ")))
		r.Suggestions = append(r.Suggestions, "Replace generic phrases with specific, quantified achievements")
	} else {
		r.NoGenericLanguage = true
	}

	if m := strings.TrimSpace(s.Method); m != "" && CharCount(m) < briefPart {
		r.Warnings = append(r.Warnings, "Method part is very brief. Add more detail about how it was done.")
	}
	if im := strings.TrimSpace(s.Impact); im != "" && CharCount(im) < briefPart {
		r.Warnings = append(r.Warnings, "Impact part is very brief. Describe the business effect.")
	}

	r.QualityScore = a.score(r)
	r.IsValid = r.StructureComplete && r.LengthInBand && r.HasMetric && r.QualityScore >= MinValidScore
	return r
}

func (a *Analyzer) score(r types.ValidationResult) int {
	score := 0
	if r.StructureComplete {
		score += scoreStructure
	}
	if r.HasMetric {
		score += scoreAnyMetric
	}
	if r.ResultHasMetric {
		score += scoreResultMetric
	}
	if r.LengthInBand {
		score += scoreLength
		if abs(r.CharacterCount-a.tax.Bullets.Ideal) <= idealTolerance {
			score += scoreIdealBonus
		}
	}
	if r.StrongVerb {
		score += scoreStrongVerb
	}
	if r.NoGenericLanguage {
		score += scoreNoGeneric
	}
	return min(score, 100)
}

// SuggestStrongVerb maps a weak action to a stronger verb, defaulting to "Led"
func (a *Analyzer) SuggestStrongVerb(action string) string {
	lower := strings.ToLower(action)
	for _, swap := range a.tax.SortedVerbSwaps() {
		if strings.Contains(lower, swap.Weak) {
			return swap.Strong
		}
	}
	return "Led"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
