// Package stage classifies the hiring organization's stage from vocabulary signals.
package stage

import (
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
)

// Classification is the detected stage with the evidence behind it.
// Confident is false when no vocabulary matched and the default stage was used.
type Classification struct {
	Stage     types.Stage              `json:"stage"`
	Confident bool                     `json:"confident"`
	Scores    map[types.Stage]int      `json:"scores"`
	Signals   map[types.Stage][]string `json:"signals,omitempty"`
}

// Classifier scores text against the per-stage vocabulary
type Classifier struct {
	tax *taxonomy.Taxonomy
}

// NewClassifier creates a classifier over the given taxonomy
func NewClassifier(tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{tax: tax}
}

// Classify returns the stage with the highest cumulative score. Each vocabulary
// hit adds 1 and each override phrase adds the taxonomy's override bonus.
// Ties are broken by the taxonomy's stage priority (growth first by default).
func (c *Classifier) Classify(text string) Classification {
	result := Classification{
		Scores:  make(map[types.Stage]int, len(types.Stages)),
		Signals: make(map[types.Stage][]string),
	}

	for _, s := range types.Stages {
		profile := c.tax.Stage(s)
		score := 0
		for _, term := range profile.Vocabulary {
			if c.tax.ContainsKeyword(text, term) {
				score++
				result.Signals[s] = append(result.Signals[s], term)
			}
		}
		for _, term := range profile.Overrides {
			if c.tax.ContainsKeyword(text, term) {
				score += c.tax.OverrideBonus
			}
		}
		result.Scores[s] = score
	}

	best := c.tax.StagePriority[0]
	for _, s := range c.tax.StagePriority[1:] {
		if result.Scores[s] > result.Scores[best] {
			best = s
		}
	}
	result.Stage = best
	result.Confident = result.Scores[best] > 0
	return result
}

// Recommendation builds the writing guidance for a classification
func (c *Classifier) Recommendation(cl Classification) types.StageRecommendation {
	profile := c.tax.Stage(cl.Stage)
	return types.StageRecommendation{
		Stage:       cl.Stage,
		Confident:   cl.Confident,
		Scores:      cl.Scores,
		Guidance:    profile.Guidance,
		ActionVerbs: append([]string(nil), profile.ActionVerbs...),
		Keywords:    append([]string(nil), profile.Keywords...),
	}
}
