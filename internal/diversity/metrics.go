// Package diversity runs cross-item checks over a set of statements:
// metric-type diversity and leading-verb uniqueness.
package diversity

import (
	"fmt"
	"math"

	"github.com/jonathan/jobfit/internal/taxonomy"
)

const maxPerType = 2

// ClassifiedStatement records the metric type assigned to one statement
type ClassifiedStatement struct {
	Index      int    `json:"index"`
	MetricType string `json:"metric_type"`
	Snippet    string `json:"snippet"`
}

// MetricReport is the metric-type distribution across a statement set
type MetricReport struct {
	Distribution    map[string]int        `json:"distribution"`
	DiversityScore  float64               `json:"diversity_score"`
	Total           int                   `json:"total"`
	Classified      []ClassifiedStatement `json:"classified"`
	Missing         []string              `json:"missing"`
	Warnings        []string              `json:"warnings"`
	Recommendations []string              `json:"recommendations"`
	AllTypesPresent bool                  `json:"all_types_present"`
}

// MetricDiversifier classifies statements by their primary metric type
type MetricDiversifier struct {
	tax *taxonomy.Taxonomy
}

// NewMetricDiversifier creates a diversifier over the given taxonomy
func NewMetricDiversifier(tax *taxonomy.Taxonomy) *MetricDiversifier {
	return &MetricDiversifier{tax: tax}
}

// Classify returns the first metric type (in taxonomy order) whose pattern matches, or ""
func (d *MetricDiversifier) Classify(text string) string {
	for _, p := range d.tax.MetricTypes {
		if p.Regexp().MatchString(text) {
			return p.Name
		}
	}
	return ""
}

// Check classifies every statement and reports over-used and missing types.
// Diversity score = distinct types present / number of types × 100.
func (d *MetricDiversifier) Check(statements []string) MetricReport {
	r := MetricReport{
		Distribution: make(map[string]int),
		Total:        len(statements),
	}

	for i, s := range statements {
		mt := d.Classify(s)
		if mt == "" {
			continue
		}
		r.Distribution[mt]++
		r.Classified = append(r.Classified, ClassifiedStatement{Index: i + 1, MetricType: mt, Snippet: snippet(s, 60)})
	}

	for _, p := range d.tax.MetricTypes {
		count, ok := r.Distribution[p.Name]
		if !ok {
			r.Missing = append(r.Missing, p.Name)
			continue
		}
		if count > maxPerType {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s metrics appear %d times (recommended max: %d)", p.Name, count, maxPerType))
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Consider varying some %s metrics to other types", p.Name))
		}
	}
	for _, m := range r.Missing {
		r.Recommendations = append(r.Recommendations, fmt.Sprintf("Consider adding %s metrics for better diversity", m))
	}

	if n := len(d.tax.MetricTypes); n > 0 {
		r.DiversityScore = math.Round(float64(len(r.Distribution))/float64(n)*1000) / 10
	}
	r.AllTypesPresent = len(r.Missing) == 0
	return r
}

func snippet(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
