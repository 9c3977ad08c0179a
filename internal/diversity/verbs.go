package diversity

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jonathan/jobfit/internal/taxonomy"
)

// Picker chooses an index in [0, n). It is injected so tests can pin the fallback choice.
type Picker func(n int) int

// Duplicate is a reused leading verb
type Duplicate struct {
	Verb        string `json:"verb"`
	FirstUse    int    `json:"first_use"`
	DuplicateAt int    `json:"duplicate_at"`
	Alternative string `json:"alternative"`
}

// VerbReport is the leading-verb uniqueness result for a statement set
type VerbReport struct {
	Total       int            `json:"total"`
	UniqueVerbs int            `json:"unique_verbs"`
	AllUnique   bool           `json:"all_unique"`
	Duplicates  []Duplicate    `json:"duplicates"`
	Suggestions []string       `json:"suggestions,omitempty"`
	VerbUsage   map[string]int `json:"verb_usage"`
}

// VerbChecker flags leading verbs reused across statements
type VerbChecker struct {
	tax  *taxonomy.Taxonomy
	pick Picker
}

// NewVerbChecker creates a checker that falls back to a random strong verb
// when a duplicate has no synonym entry.
func NewVerbChecker(tax *taxonomy.Taxonomy) *VerbChecker {
	return NewVerbCheckerWithPicker(tax, rand.IntN)
}

// NewVerbCheckerWithPicker creates a checker with a custom fallback picker
func NewVerbCheckerWithPicker(tax *taxonomy.Taxonomy, pick Picker) *VerbChecker {
	if pick == nil {
		pick = rand.IntN
	}
	return &VerbChecker{tax: tax, pick: pick}
}

// LeadingVerb returns the first word of a statement with bullet markers and
// trailing punctuation removed. Matching is case-sensitive.
func LeadingVerb(statement string) string {
	cleaned := strings.TrimSpace(statement)
	cleaned = strings.TrimLeft(cleaned, "•")
	cleaned = strings.TrimLeft(cleaned, "-")
	cleaned = strings.TrimLeft(cleaned, "*")
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,;:")
}

// Check records the first use of each leading verb and flags every later reuse
func (c *VerbChecker) Check(statements []string) VerbReport {
	r := VerbReport{
		Total:     len(statements),
		VerbUsage: make(map[string]int),
	}

	for i, s := range statements {
		verb := LeadingVerb(s)
		if verb == "" {
			continue
		}
		if first, seen := r.VerbUsage[verb]; seen {
			r.Duplicates = append(r.Duplicates, Duplicate{
				Verb:        verb,
				FirstUse:    first,
				DuplicateAt: i + 1,
				Alternative: c.Alternative(verb),
			})
			continue
		}
		r.VerbUsage[verb] = i + 1
		r.UniqueVerbs++
	}

	r.AllUnique = len(r.Duplicates) == 0
	if !r.AllUnique {
		r.Suggestions = append(r.Suggestions, fmt.Sprintf("Found %d duplicate verb(s)", len(r.Duplicates)))
		for _, d := range r.Duplicates {
			r.Suggestions = append(r.Suggestions, fmt.Sprintf("Statement %d: Replace '%s' with '%s'", d.DuplicateAt, d.Verb, d.Alternative))
		}
	}
	return r
}

// Alternative proposes a replacement for verb: the first synonym when one is
// mapped, otherwise a strong verb other than verb chosen by the picker.
func (c *VerbChecker) Alternative(verb string) string {
	if alts := c.tax.Alternatives(verb); len(alts) > 0 {
		return alts[0]
	}
	candidates := make([]string, 0, len(c.tax.StrongVerbs))
	for _, v := range c.tax.StrongVerbs {
		if v != verb {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[c.pick(len(candidates))]
}
