// Package types provides type definitions for structured data used throughout the jobfit engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// CheckStatus is the outcome of a single verification check
type CheckStatus string

// Check statuses
const (
	StatusPassed  CheckStatus = "passed"
	StatusWarning CheckStatus = "warning"
	StatusFailed  CheckStatus = "failed"
)

// DocumentType names the document a verification gate runs against
type DocumentType string

// Document types
const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover_letter"
	DocumentOutreach    DocumentType = "outreach"
)

// CheckResult is one named check inside a VerificationReport
type CheckResult struct {
	Name    string         `json:"name"`
	Status  CheckStatus    `json:"status"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// VerificationReport aggregates the checks run against one document
type VerificationReport struct {
	DocumentType         string        `json:"document_type"`
	OverallStatus        CheckStatus   `json:"overall_status"`
	Score                float64       `json:"score"`
	Checks               []CheckResult `json:"checks"`
	Suggestions          []string      `json:"suggestions"`
	AutoRetryRecommended bool          `json:"auto_retry_recommended"`
}

// EducationEntry is a single education record on a resume
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ResumeDocument is the structured resume payload verified by the resume gate
type ResumeDocument struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone,omitempty"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
}

// JobContext identifies the posting a letter or message is written for
type JobContext struct {
	Company string `json:"company,omitempty"`
	Title   string `json:"title,omitempty"`
}

// LetterDocument is a cover letter or outreach message payload
type LetterDocument struct {
	Text string      `json:"text"`
	Tier string      `json:"tier,omitempty"`
	Job  *JobContext `json:"job,omitempty"`
}

// VerifyRequest is the input for a verification call.
// Resume is used for resume documents, Letter for cover letters and outreach.
type VerifyRequest struct {
	DocumentType DocumentType    `json:"document_type" validate:"required,oneof=resume cover_letter outreach"`
	Resume       *ResumeDocument `json:"resume,omitempty" validate:"required_if=DocumentType resume"`
	Letter       *LetterDocument `json:"letter,omitempty" validate:"required_unless=DocumentType resume"`
}

// Validate validates the VerifyRequest using the validator.
func (r *VerifyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
