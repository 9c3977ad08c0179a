// Package competency turns free job-description text into a weighted competency profile.
package competency

import (
	"sort"

	"github.com/jonathan/jobfit/internal/taxonomy"
)

// AreaWeight is a single entry of a weight vector
type AreaWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Profile is the result of scanning a text against the taxonomy
type Profile struct {
	// Weights holds the normalized weight per matched area (sums to 1).
	// When nothing matched, every area is present with an equal share.
	Weights map[string]float64 `json:"weights"`
	// Mentions is the raw keyword occurrence count per area (all areas present)
	Mentions map[string]int `json:"mentions"`
	// Keywords lists the distinct keywords found per area, in taxonomy order
	Keywords map[string][]string `json:"keywords"`
	// Uniform is true when no keyword matched and the weights fell back to an equal split
	Uniform bool `json:"uniform"`

	order []string
}

// Weighted reports whether the area carries weight in this profile
func (p Profile) Weighted(area string) bool {
	_, ok := p.Weights[area]
	return ok
}

// Ordered returns the weighted areas sorted by weight descending.
// Ties keep taxonomy order.
func (p Profile) Ordered() []AreaWeight {
	out := make([]AreaWeight, 0, len(p.Weights))
	for _, name := range p.order {
		if w, ok := p.Weights[name]; ok {
			out = append(out, AreaWeight{Name: name, Weight: w})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}

// Top returns the highest-weight area (taxonomy order breaks ties)
func (p Profile) Top() string {
	ordered := p.Ordered()
	if len(ordered) == 0 {
		return ""
	}
	return ordered[0].Name
}

// Matcher scans text against an injected taxonomy
type Matcher struct {
	tax *taxonomy.Taxonomy
}

// NewMatcher creates a matcher over the given taxonomy
func NewMatcher(tax *taxonomy.Taxonomy) *Matcher {
	return &Matcher{tax: tax}
}

// Taxonomy returns the tables the matcher reads from
func (m *Matcher) Taxonomy() *taxonomy.Taxonomy {
	return m.tax
}

// Match counts keyword mentions per area and normalizes
// base_weight × (mentions / |keywords|) over the areas that matched.
// Areas with zero mentions are dropped. If nothing matched, the
// weights are split evenly across every area.
func (m *Matcher) Match(text string) Profile {
	areas := m.tax.Areas
	p := Profile{
		Weights:  make(map[string]float64),
		Mentions: make(map[string]int, len(areas)),
		Keywords: make(map[string][]string, len(areas)),
		order:    m.tax.AreaNames(),
	}

	raw := make(map[string]float64, len(areas))
	total := 0.0
	for _, area := range areas {
		mentions := 0
		for _, kw := range area.Keywords {
			n := m.tax.CountKeyword(text, kw)
			if n > 0 {
				mentions += n
				p.Keywords[area.Name] = append(p.Keywords[area.Name], kw)
			}
		}
		p.Mentions[area.Name] = mentions
		if mentions == 0 {
			continue
		}
		r := area.BaseWeight * float64(mentions) / float64(len(area.Keywords))
		raw[area.Name] = r
		total += r
	}

	if total <= 0 {
		p.Uniform = true
		share := 1.0 / float64(len(areas))
		for _, area := range areas {
			p.Weights[area.Name] = share
		}
		return p
	}

	for name, r := range raw {
		p.Weights[name] = r / total
	}
	return p
}
