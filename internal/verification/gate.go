// Package verification aggregates document checks into a pass/warn/fail
// report for resumes, cover letters and outreach messages.
package verification

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/jobfit/internal/diversity"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
)

// PassThreshold is the minimum score for a report without failed checks to pass
const PassThreshold = 80.0

// Gate runs the verification checks. It holds only immutable tables and is
// safe for concurrent use.
type Gate struct {
	tax     *taxonomy.Taxonomy
	metrics *diversity.MetricDiversifier
	verbs   *diversity.VerbChecker
	target  int
}

// NewGate creates a gate expecting targetBullets bullets per resume.
// A non-positive target uses the default of 13.
func NewGate(tax *taxonomy.Taxonomy, targetBullets int) *Gate {
	if targetBullets <= 0 {
		targetBullets = DefaultTargetBullets
	}
	return &Gate{
		tax:     tax,
		metrics: diversity.NewMetricDiversifier(tax),
		verbs:   diversity.NewVerbChecker(tax),
		target:  targetBullets,
	}
}

// Verify dispatches on the request's document type
func (g *Gate) Verify(req types.VerifyRequest) (*types.VerificationReport, error) {
	if err := req.Validate(); err != nil {
		return nil, types.FromValidation(err)
	}

	switch req.DocumentType {
	case types.DocumentResume:
		return g.VerifyResume(*req.Resume), nil
	case types.DocumentCoverLetter:
		return g.VerifyCoverLetter(*req.Letter)
	case types.DocumentOutreach:
		return g.VerifyOutreach(*req.Letter)
	}
	return nil, &types.InputError{Field: "document_type", Message: fmt.Sprintf("unsupported document type %q", req.DocumentType)}
}

// aggregate scores checks as passed/total×100. Any failed check fails the
// report and recommends an automatic retry.
func aggregate(documentType string, checks []types.CheckResult) *types.VerificationReport {
	r := &types.VerificationReport{
		DocumentType: documentType,
		Checks:       checks,
		Suggestions:  []string{},
	}

	passed, failed := 0, false
	for _, c := range checks {
		switch c.Status {
		case types.StatusPassed:
			passed++
		case types.StatusFailed:
			failed = true
		}
		if c.Status != types.StatusPassed {
			r.Suggestions = append(r.Suggestions, fmt.Sprintf("Fix %s: %s", c.Name, c.Message))
		}
	}
	if len(checks) > 0 {
		r.Score = math.Round(float64(passed)/float64(len(checks))*1000) / 10
	}

	switch {
	case failed:
		r.OverallStatus = types.StatusFailed
	case r.Score >= PassThreshold:
		r.OverallStatus = types.StatusPassed
	default:
		r.OverallStatus = types.StatusWarning
	}
	r.AutoRetryRecommended = failed
	return r
}

func check(name string, status types.CheckStatus, format string, args ...any) types.CheckResult {
	return types.CheckResult{Name: name, Status: status, Message: fmt.Sprintf(format, args...)}
}

func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
