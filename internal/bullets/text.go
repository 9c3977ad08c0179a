package bullets

import (
	"fmt"
	"math"
	"strings"
)

// TextAnalysis scores a free-form bullet against the six-part framework
// using plain-text signals instead of explicit parts.
type TextAnalysis struct {
	Text           string   `json:"text"`
	CharacterCount int      `json:"character_count"`
	HasAction      bool     `json:"has_action"`
	HasContext     bool     `json:"has_context"`
	HasMethod      bool     `json:"has_method"`
	HasResult      bool     `json:"has_result"`
	HasImpact      bool     `json:"has_impact"`
	HasOutcome     bool     `json:"has_outcome"`
	Score          float64  `json:"score"`
	Suggestions    []string `json:"suggestions,omitempty"`
}

// AnalyzeText detects framework parts in an already assembled bullet.
// Score: 70 × (parts present / 6) + up to 20 for length + 10 for a metric.
func (a *Analyzer) AnalyzeText(text string) TextAnalysis {
	text = strings.TrimSpace(text)
	r := TextAnalysis{Text: text, CharacterCount: CharCount(text)}

	r.HasAction = a.startsWithStrongVerb(text)
	r.HasContext = a.hasSignal("context", text)
	r.HasMethod = a.hasSignal("method", text)
	r.HasResult = a.DetectMetrics(text).HasMetric
	r.HasImpact = a.hasSignal("impact", text)
	r.HasOutcome = a.hasSignal("outcome", text)

	present := 0
	for _, ok := range []bool{r.HasAction, r.HasContext, r.HasMethod, r.HasResult, r.HasImpact, r.HasOutcome} {
		if ok {
			present++
		}
	}

	band := a.tax.Bullets
	lengthScore := 20.0
	switch {
	case r.CharacterCount < band.Min:
		lengthScore = math.Max(0, 20-float64(band.Min-r.CharacterCount)*0.5)
	case r.CharacterCount > band.Max:
		lengthScore = math.Max(0, 20-float64(r.CharacterCount-band.Max)*0.5)
	}
	metricScore := 0.0
	if r.HasResult {
		metricScore = 10
	}
	score := float64(present)/6*70 + lengthScore + metricScore
	r.Score = math.Round(math.Min(100, score)*10) / 10

	if !r.HasAction {
		r.Suggestions = append(r.Suggestions, "Start with a strong action verb like 'Led', 'Developed', 'Optimized', or 'Implemented'")
	}
	if !r.HasContext {
		r.Suggestions = append(r.Suggestions, "Add context about scope (e.g., 'cross-functional team', 'enterprise-wide')")
	}
	if !r.HasMethod {
		r.Suggestions = append(r.Suggestions, "Specify the method/approach (e.g., 'using Agile methodology', 'leveraging data analytics')")
	}
	if !r.HasResult {
		r.Suggestions = append(r.Suggestions, "Add quantifiable results (e.g., 'reducing costs by 40%', 'increasing efficiency by 2x')")
	}
	if !r.HasImpact {
		r.Suggestions = append(r.Suggestions, "Clarify the impact scope (e.g., 'for 500+ users', 'across 10 departments')")
	}
	if !r.HasOutcome {
		r.Suggestions = append(r.Suggestions, "Connect to business value (e.g., 'improving customer satisfaction', 'driving revenue growth')")
	}
	if r.CharacterCount < band.Min || r.CharacterCount > band.Max {
		r.Suggestions = append(r.Suggestions, fmt.Sprintf("Adjust bullet to %d-%d characters (currently %d)", band.Min, band.Max, r.CharacterCount))
	}
	return r
}

func (a *Analyzer) startsWithStrongVerb(text string) bool {
	fields := strings.Fields(strings.TrimLeft(text, "•-* "))
	if len(fields) == 0 {
		return false
	}
	first := strings.Trim(fields[0], ",.:;")
	for _, v := range a.tax.StrongVerbs {
		if strings.EqualFold(v, first) {
			return true
		}
	}
	_, ok := a.tax.VerbAlternatives[first]
	return ok
}

func (a *Analyzer) hasSignal(part, text string) bool {
	for _, re := range a.tax.SignalPatterns(part) {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
