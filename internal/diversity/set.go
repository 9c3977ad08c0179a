package diversity

import (
	"math"

	"github.com/jonathan/jobfit/internal/bullets"
)

// Thresholds for ready_for_submission
const (
	readyFramework = 75
	readyDiversity = 60
)

// SetReport combines per-statement framework scoring with the cross-item checks
type SetReport struct {
	OverallScore       float64                `json:"overall_score"`
	FrameworkScore     float64                `json:"framework_score"`
	UniquenessScore    float64                `json:"uniqueness_score"`
	Statements         []bullets.TextAnalysis `json:"statements"`
	Metrics            MetricReport           `json:"metric_diversity"`
	Verbs              VerbReport             `json:"verb_uniqueness"`
	Recommendations    []string               `json:"recommendations"`
	ReadyForSubmission bool                   `json:"ready_for_submission"`
}

// SetAnalyzer scores a whole set of free-form statements
type SetAnalyzer struct {
	analyzer *bullets.Analyzer
	metrics  *MetricDiversifier
	verbs    *VerbChecker
}

// NewSetAnalyzer wires the three checks together
func NewSetAnalyzer(analyzer *bullets.Analyzer, metrics *MetricDiversifier, verbs *VerbChecker) *SetAnalyzer {
	return &SetAnalyzer{analyzer: analyzer, metrics: metrics, verbs: verbs}
}

// Analyze computes overall = 0.5 × framework + 0.25 × diversity + 0.25 × uniqueness
func (s *SetAnalyzer) Analyze(statements []string) SetReport {
	r := SetReport{
		Metrics: s.metrics.Check(statements),
		Verbs:   s.verbs.Check(statements),
	}

	total := 0.0
	for _, st := range statements {
		a := s.analyzer.AnalyzeText(st)
		r.Statements = append(r.Statements, a)
		total += a.Score
	}
	if len(statements) > 0 {
		r.FrameworkScore = round1(total / float64(len(statements)))
	}

	switch {
	case r.Verbs.AllUnique:
		r.UniquenessScore = 100
	case r.Verbs.Total > 0:
		r.UniquenessScore = round1(float64(r.Verbs.UniqueVerbs) / float64(r.Verbs.Total) * 100)
	}

	r.OverallScore = round1(r.FrameworkScore*0.5 + r.Metrics.DiversityScore*0.25 + r.UniquenessScore*0.25)
	r.Recommendations = append(r.Recommendations, r.Metrics.Recommendations...)
	r.Recommendations = append(r.Recommendations, r.Verbs.Suggestions...)
	r.ReadyForSubmission = r.FrameworkScore >= readyFramework &&
		r.Metrics.DiversityScore >= readyDiversity &&
		r.Verbs.AllUnique
	return r
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
