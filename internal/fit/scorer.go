// Package fit scores a candidate profile against a job posting.
package fit

import (
	"math"
	"strings"

	"github.com/jonathan/jobfit/internal/competency"
	"github.com/jonathan/jobfit/internal/selection"
	"github.com/jonathan/jobfit/internal/stage"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
)

// Thresholds for fit levels, strengths and gaps
const (
	excellentThreshold = 85
	strongThreshold    = 70
	moderateThreshold  = 50

	strengthThreshold = 70.0
	gapThreshold      = 50.0

	proceedFit      = 85
	proceedInterest = 8
	presentFit      = 75
	presentInterest = 7

	maxInterest = 10
	minInterest = 1
)

// SummaryGuidance is the fixed advice for the resume summary block
const SummaryGuidance = "Create a 3-line summary (360-380 characters total). Frontload JD keywords. Avoid metrics in summary."

// Scorer assesses candidates against job postings
type Scorer struct {
	matcher    *competency.Matcher
	classifier *stage.Classifier
}

// NewScorer creates a scorer from a matcher and a stage classifier
func NewScorer(matcher *competency.Matcher, classifier *stage.Classifier) *Scorer {
	return &Scorer{matcher: matcher, classifier: classifier}
}

// Assess scores the candidate in req against its job text
func (s *Scorer) Assess(req types.AssessRequest) (*types.FitAssessment, error) {
	if strings.TrimSpace(req.JobText) == "" {
		return nil, &types.InputError{Field: "job_text", Message: "job description is required"}
	}

	tax := s.matcher.Taxonomy()
	profile := s.matcher.Match(req.JobText)
	candidateText := req.Candidate.Text()

	a := &types.FitAssessment{
		CompetencyMatches: s.matchAreas(profile, candidateText),
		Strengths:         []string{},
		Gaps:              []string{},
	}

	total := 0.0
	for _, m := range a.CompetencyMatches {
		total += m.Weight * m.MatchScore
		if !profile.Weighted(m.Name) {
			continue
		}
		switch {
		case m.MatchScore >= strengthThreshold:
			a.Strengths = append(a.Strengths, DisplayName(m.Name))
		case m.MatchScore < gapThreshold:
			a.Gaps = append(a.Gaps, DisplayName(m.Name))
		}
	}
	// truncation keeps 84.9 out of the excellent band
	a.FitScore = min(100, int(total+1e-9))
	a.FitLevel = Level(a.FitScore)

	cl := s.classifier.Classify(req.JobText)
	a.StageRecommendation = s.classifier.Recommendation(cl)
	a.InterestLevel = interestLevel(tax, req.JobText)
	a.Decision = Decide(a.FitScore, a.InterestLevel)

	a.SkillsIntelligence = skillsIntelligence(tax, req.JobText)
	a.ActionItems = actionItems(a.CompetencyMatches, profile, a.Gaps)
	a.ActionItems = append(a.ActionItems, a.SkillsIntelligence.Recommendations...)
	a.ResumeDistribution = selection.Allocate(profile, selection.DefaultCount)
	a.KeyRequirements = competency.ExtractKeyRequirements(req.JobText)
	a.SummaryGuidance = SummaryGuidance
	return a, nil
}

// matchAreas scores every area in taxonomy order. Areas the posting does not
// weight get zero weight and a perfect match so they never penalize the candidate.
// When the profile fell back to uniform weights, every keyword of an area counts as required.
func (s *Scorer) matchAreas(profile competency.Profile, candidateText string) []types.CompetencyMatch {
	tax := s.matcher.Taxonomy()
	matches := make([]types.CompetencyMatch, 0, len(tax.Areas))

	for _, area := range tax.Areas {
		m := types.CompetencyMatch{
			Name:            area.Name,
			MatchedKeywords: []string{},
			MissingKeywords: []string{},
		}
		if !profile.Weighted(area.Name) {
			m.MatchScore = 100
			matches = append(matches, m)
			continue
		}

		m.Weight = profile.Weights[area.Name]
		required := profile.Keywords[area.Name]
		if profile.Uniform {
			required = area.Keywords
		}
		for _, kw := range required {
			if tax.ContainsKeyword(candidateText, kw) {
				m.MatchedKeywords = append(m.MatchedKeywords, kw)
			} else {
				m.MissingKeywords = append(m.MissingKeywords, kw)
			}
		}
		m.MatchScore = 100
		if len(required) > 0 {
			m.MatchScore = math.Min(100, math.Round(float64(len(m.MatchedKeywords))/float64(len(required))*1000)/10)
		}
		matches = append(matches, m)
	}
	return matches
}

// Level classifies a fit score
func Level(score int) types.FitLevel {
	switch {
	case score >= excellentThreshold:
		return types.FitExcellent
	case score >= strongThreshold:
		return types.FitStrong
	case score >= moderateThreshold:
		return types.FitModerate
	default:
		return types.FitWeak
	}
}

// Decide picks the next step. Proceed is checked first, so a candidate who
// clears both the proceed and present thresholds proceeds.
func Decide(fitScore, interest int) types.Decision {
	if fitScore >= proceedFit && interest >= proceedInterest {
		return types.DecisionProceed
	}
	if fitScore >= presentFit || interest >= presentInterest {
		return types.DecisionPresent
	}
	return types.DecisionArchive
}

func interestLevel(tax *taxonomy.Taxonomy, jobText string) int {
	level := tax.Interest.Baseline
	for _, signal := range tax.Interest.Signals {
		if tax.ContainsKeyword(jobText, signal) {
			level++
		}
	}
	return max(minInterest, min(maxInterest, level))
}

// DisplayName turns an area name like "product_strategy" into "Product Strategy"
func DisplayName(area string) string {
	words := strings.Split(area, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
