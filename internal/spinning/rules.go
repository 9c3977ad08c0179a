// Package spinning rewrites statements toward the language of a target company stage.
//
// The rule-based strategy is a deterministic term replacer and always succeeds.
// The model-augmented strategy wraps it with an optional language-model rewrite
// and falls back to the rule-based result on any failure.
package spinning

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
)

var metricPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?[%$]?`)

// Strategy rewrites text toward a target stage. The only error it returns is
// an *types.InputError for empty text or an unknown stage.
type Strategy interface {
	Spin(ctx context.Context, text string, target types.Stage) (types.SpinResult, error)
}

// RuleBased applies the taxonomy's term transformations
type RuleBased struct {
	tax *taxonomy.Taxonomy
}

// NewRuleBased creates the deterministic strategy
func NewRuleBased(tax *taxonomy.Taxonomy) *RuleBased {
	return &RuleBased{tax: tax}
}

// Spin replaces each transformation term (whole words, case-insensitive)
// in table order. A replacement is capitalized when the matched term was.
// Metrics are extracted before and after so callers can verify none changed.
func (r *RuleBased) Spin(_ context.Context, text string, target types.Stage) (types.SpinResult, error) {
	if err := checkInput(text, target); err != nil {
		return types.SpinResult{}, err
	}

	spun := text
	changes := []types.Replacement{}
	for _, tr := range r.tax.Transformations {
		re := r.tax.KeywordPattern(tr.From)
		spun = re.ReplaceAllStringFunc(spun, func(match string) string {
			replaced := tr.To
			if first, _ := utf8.DecodeRuneInString(match); unicode.IsUpper(first) {
				replaced = capitalize(replaced)
			}
			changes = append(changes, types.Replacement{Original: match, Replaced: replaced})
			return replaced
		})
	}

	before := ExtractMetrics(text)
	after := ExtractMetrics(spun)
	return types.SpinResult{
		Original:         text,
		Spun:             spun,
		TargetStage:      target,
		Changes:          changes,
		MetricsBefore:    before,
		MetricsAfter:     after,
		MetricsPreserved: sameMetrics(before, after),
		Similarity:       Similarity(text, spun),
		Explanation:      r.explain(target, len(changes)),
		Source:           types.SpinRuleBased,
	}, nil
}

// Examples returns before/after samples for a stage
func (r *RuleBased) Examples(stage types.Stage) []taxonomy.Example {
	return append([]taxonomy.Example(nil), r.tax.Stage(stage).Examples...)
}

func (r *RuleBased) explain(stage types.Stage, changes int) string {
	if changes == 0 {
		return fmt.Sprintf("No changes needed - text already matches %s language", stage)
	}
	return fmt.Sprintf("%s. Made %d adaptations to match target industry language.", r.tax.Stage(stage).Explanation, changes)
}

// ExtractMetrics returns every numeric/metric substring in order of appearance
func ExtractMetrics(text string) []string {
	found := metricPattern.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}

// MetricTokens extracts metrics with their units and scale intact: every
// taxonomy metric pattern plus bare numbers, with overlapping matches merged
// into one token ("$1.2M", "5x", "40%").
func MetricTokens(tax *taxonomy.Taxonomy, text string) []string {
	patterns := []*regexp.Regexp{metricPattern}
	for _, p := range tax.MetricPatterns {
		if re := p.Regexp(); re != nil {
			patterns = append(patterns, re)
		}
	}

	var spans [][]int
	for _, re := range patterns {
		spans = append(spans, re.FindAllStringIndex(text, -1)...)
	}
	if len(spans) == 0 {
		return []string{}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i][0] != spans[j][0] {
			return spans[i][0] < spans[j][0]
		}
		return spans[i][1] > spans[j][1]
	})

	tokens := make([]string, 0, len(spans))
	start, end := spans[0][0], spans[0][1]
	for _, sp := range spans[1:] {
		if sp[0] < end {
			if sp[1] > end {
				end = sp[1]
			}
			continue
		}
		tokens = append(tokens, text[start:end])
		start, end = sp[0], sp[1]
	}
	return append(tokens, text[start:end])
}

// Similarity is the Jaccard index of the lowercase whitespace-separated word
// sets of a and b. Two empty texts are identical.
func Similarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// sameMetrics compares two metric lists as multisets
func sameMetrics(before, after []string) bool {
	return containsAll(after, before) && len(before) == len(after)
}

// containsAll reports whether every metric in want (with multiplicity) appears
// in have. Case is ignored so "5X" matches "5x".
func containsAll(have, want []string) bool {
	counts := make(map[string]int, len(have))
	for _, m := range have {
		counts[strings.ToLower(m)]++
	}
	for _, m := range want {
		key := strings.ToLower(m)
		if counts[key] == 0 {
			return false
		}
		counts[key]--
	}
	return true
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func checkInput(text string, target types.Stage) error {
	if strings.TrimSpace(text) == "" {
		return &types.InputError{Field: "text", Message: "text to spin is required"}
	}
	for _, s := range types.Stages {
		if s == target {
			return nil
		}
	}
	return &types.InputError{Field: "target_stage", Message: fmt.Sprintf("unknown stage %q", target)}
}
