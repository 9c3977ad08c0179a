// Package types provides type definitions for structured data used throughout the jobfit engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// Stage classifies the hiring organization's maturity
type Stage string

const (
	// StageEarly is a seed/startup organization
	StageEarly Stage = "early"
	// StageGrowth is a scaling organization (Series A-C)
	StageGrowth Stage = "growth"
	// StageEnterprise is a large established organization
	StageEnterprise Stage = "enterprise"
)

// Stages lists all stages in their canonical order
var Stages = []Stage{StageEarly, StageGrowth, StageEnterprise}

// ParseStage converts a user-supplied string into a Stage.
// It accepts the canonical values plus the "_stage" suffixed forms.
func ParseStage(s string) (Stage, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.TrimSuffix(normalized, "_stage")
	switch Stage(normalized) {
	case StageEarly, StageGrowth, StageEnterprise:
		return Stage(normalized), nil
	}
	return "", &InputError{Field: "stage", Message: fmt.Sprintf("unknown stage %q (expected early, growth or enterprise)", s)}
}

// Part names of a six-part statement, in assembly order
const (
	PartAction  = "action"
	PartContext = "context"
	PartMethod  = "method"
	PartResult  = "result"
	PartImpact  = "impact"
	PartOutcome = "outcome"
)

// PartNames lists the six statement parts in assembly order
var PartNames = []string{PartAction, PartContext, PartMethod, PartResult, PartImpact, PartOutcome}

// SixPartStatement is an achievement statement ("bullet") built from six named parts
type SixPartStatement struct {
	Action       string   `json:"action" yaml:"action"`
	Context      string   `json:"context" yaml:"context"`
	Method       string   `json:"method" yaml:"method"`
	Result       string   `json:"result" yaml:"result"`
	Impact       string   `json:"impact" yaml:"impact"`
	Outcome      string   `json:"outcome" yaml:"outcome"`
	Competency   string   `json:"competency,omitempty" yaml:"competency,omitempty"`
	CompanyStage Stage    `json:"company_stage,omitempty" yaml:"company_stage,omitempty"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Part returns the value of the named part
func (s SixPartStatement) Part(name string) string {
	switch name {
	case PartAction:
		return s.Action
	case PartContext:
		return s.Context
	case PartMethod:
		return s.Method
	case PartResult:
		return s.Result
	case PartImpact:
		return s.Impact
	case PartOutcome:
		return s.Outcome
	}
	return ""
}

// MissingParts returns the names of parts that are empty after trimming
func (s SixPartStatement) MissingParts() []string {
	var missing []string
	for _, name := range PartNames {
		if strings.TrimSpace(s.Part(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Clone returns a deep copy of the statement
func (s SixPartStatement) Clone() SixPartStatement {
	c := s
	if s.Tags != nil {
		c.Tags = append([]string(nil), s.Tags...)
	}
	return c
}

// LibraryItem wraps a statement stored in the bullet library
type LibraryItem struct {
	ID           string           `json:"id"`
	Statement    SixPartStatement `json:"statement"`
	Text         string           `json:"text"`
	QualityScore int              `json:"quality_score"`
	UsageCount   int              `json:"usage_count"`
	LastUsed     *time.Time       `json:"last_used,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ValidationResult is the outcome of analyzing one six-part statement
type ValidationResult struct {
	IsValid           bool     `json:"is_valid"`
	QualityScore      int      `json:"quality_score"`
	AssembledText     string   `json:"assembled_text"`
	CharacterCount    int      `json:"character_count"`
	StructureComplete bool     `json:"structure_complete"`
	MissingParts      []string `json:"missing_parts,omitempty"`
	LengthInBand      bool     `json:"length_in_band"`
	HasMetric         bool     `json:"has_metric"`
	ResultHasMetric   bool     `json:"result_has_metric"`
	StrongVerb        bool     `json:"strong_verb"`
	NoGenericLanguage bool     `json:"no_generic_language"`
	Metrics           []string `json:"metrics,omitempty"`
	Errors            []string `json:"errors,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
	Suggestions       []string `json:"suggestions,omitempty"`
}
