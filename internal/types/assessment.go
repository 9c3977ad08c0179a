// Package types provides type definitions for structured data used throughout the jobfit engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// FitLevel is the coarse classification of a fit score
type FitLevel string

// Fit levels, from best to worst
const (
	FitExcellent FitLevel = "excellent"
	FitStrong    FitLevel = "strong"
	FitModerate  FitLevel = "moderate"
	FitWeak      FitLevel = "weak"
)

// Decision is the recommended next step for a job posting
type Decision string

// Decisions
const (
	DecisionProceed Decision = "proceed"
	DecisionPresent Decision = "present"
	DecisionArchive Decision = "archive"
)

// CompetencyMatch describes how a candidate covers one competency area
type CompetencyMatch struct {
	Name            string   `json:"name"`
	Weight          float64  `json:"weight"`
	MatchScore      float64  `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// StageRecommendation carries the detected stage and how to write for it
type StageRecommendation struct {
	Stage       Stage         `json:"stage"`
	Confident   bool          `json:"confident"`
	Scores      map[Stage]int `json:"scores"`
	Guidance    string        `json:"guidance"`
	ActionVerbs []string      `json:"action_verbs"`
	Keywords    []string      `json:"keywords,omitempty"`
}

// SkillsIntelligence summarizes tool and domain signals found in a posting
type SkillsIntelligence struct {
	Tier1Skills     []string          `json:"tier_1_skills"`
	ToolSwaps       map[string]string `json:"tool_swaps"`
	Domains         []string          `json:"domains"`
	Recommendations []string          `json:"recommendations,omitempty"`
}

// FitAssessment is the result of scoring a candidate against a job posting
type FitAssessment struct {
	FitScore            int                 `json:"fit_score"`
	FitLevel            FitLevel            `json:"fit_level"`
	CompetencyMatches   []CompetencyMatch   `json:"competency_matches"`
	Strengths           []string            `json:"strengths"`
	Gaps                []string            `json:"gaps"`
	StageRecommendation StageRecommendation `json:"stage_recommendation"`
	InterestLevel       int                 `json:"interest_level"`
	Decision            Decision            `json:"decision"`
	ActionItems         []string            `json:"action_items,omitempty"`
	ResumeDistribution  map[string]int      `json:"resume_distribution,omitempty"`
	SkillsIntelligence  SkillsIntelligence  `json:"skills_intelligence"`
	KeyRequirements     []string            `json:"key_requirements,omitempty"`
	SummaryGuidance     string              `json:"summary_guidance,omitempty"`
}

// ExperienceEntry is a single role in a candidate profile or resume
type ExperienceEntry struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// CandidateProfile is the extracted view of a candidate used for fit scoring
type CandidateProfile struct {
	Name       string            `json:"name,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
}

// Text flattens skills and experience into a single blob for keyword scanning
func (p CandidateProfile) Text() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(p.Skills, " "))
	for _, exp := range p.Experience {
		sb.WriteString(" ")
		sb.WriteString(exp.Title)
		sb.WriteString(" ")
		sb.WriteString(exp.Description)
		for _, b := range exp.Bullets {
			sb.WriteString(" ")
			sb.WriteString(b)
		}
	}
	return strings.TrimSpace(sb.String())
}

// AssessRequest is the input for a fit assessment
type AssessRequest struct {
	JobText   string           `json:"job_text" validate:"required"`
	Candidate CandidateProfile `json:"candidate"`
}

// Validate validates the AssessRequest using the validator.
func (r *AssessRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SpinRequest is the input for a spinning call
type SpinRequest struct {
	Text        string `json:"text" validate:"required"`
	TargetStage string `json:"target_stage" validate:"required,oneof=early growth enterprise"`
	UseModel    bool   `json:"use_model,omitempty"`
}

// Validate validates the SpinRequest using the validator.
func (r *SpinRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SpinSource identifies which strategy produced a SpinResult
type SpinSource string

// Spin sources
const (
	SpinRuleBased      SpinSource = "rule_based"
	SpinModelAugmented SpinSource = "model_augmented"
)

// Replacement records one term substitution performed while spinning
type Replacement struct {
	Original string `json:"original"`
	Replaced string `json:"replaced"`
}

// SpinResult is the outcome of rewriting text toward a target stage
type SpinResult struct {
	Original         string        `json:"original"`
	Spun             string        `json:"spun"`
	TargetStage      Stage         `json:"target_stage"`
	Changes          []Replacement `json:"changes"`
	MetricsBefore    []string      `json:"metrics_before"`
	MetricsAfter     []string      `json:"metrics_after"`
	MetricsPreserved bool          `json:"metrics_preserved"`
	Similarity       float64       `json:"similarity"`
	Explanation      string        `json:"explanation"`
	Source           SpinSource    `json:"source"`
	FallbackReason   string        `json:"fallback_reason,omitempty"`
}
