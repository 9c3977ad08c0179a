package verification

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobfit/internal/types"
)

// Cover letter shape
const (
	MinLetterLines      = 8
	MaxLetterLines      = 12
	MinLetterWords      = 150
	MaxLetterWords      = 200
	LetterParagraphs    = 4
	defaultOutreachTier = "default"
)

// Band is an inclusive character range
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// OutreachBands are the character targets per outreach tier
var OutreachBands = map[string]Band{
	"tier_1":            {600, 800},
	"tier_2":            {400, 600},
	"tier_3":            {300, 500},
	defaultOutreachTier: {400, 800},
}

var (
	letterCTAs   = []string{"would you be open", "could we", "happy to chat", "let me know", "i'd welcome", "i would welcome", "open to a quick", "quick call"}
	outreachCTAs = []string{"would you be open", "could we", "happy to chat", "let me know", "would appreciate", "guidance"}
)

// VerifyCoverLetter checks length, paragraph structure, personalization and
// the call to action. Letter checks only warn.
func (g *Gate) VerifyCoverLetter(doc types.LetterDocument) (*types.VerificationReport, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, &types.InputError{Field: "text", Message: "cover letter text is required"}
	}
	text := doc.Text

	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	words := strings.Fields(text)
	paragraphs := nonEmpty(strings.Split(text, "\n\n"))

	var checks []types.CheckResult
	checks = append(checks, inRange("lines", len(lines), MinLetterLines, MaxLetterLines, "lines"))
	checks = append(checks, inRange("words", len(words), MinLetterWords, MaxLetterWords, "words"))
	if len(paragraphs) == LetterParagraphs {
		checks = append(checks, check("paragraphs", types.StatusPassed, "%d paragraphs", LetterParagraphs))
	} else {
		checks = append(checks, check("paragraphs", types.StatusWarning, "%d paragraphs (target %d)", len(paragraphs), LetterParagraphs))
	}

	if doc.Job != nil {
		lower := strings.ToLower(text)
		company := strings.ToLower(strings.TrimSpace(doc.Job.Company))
		if company != "" && strings.Contains(lower, company) {
			checks = append(checks, check("personalization", types.StatusPassed, "Mentions company"))
		} else {
			checks = append(checks, check("personalization", types.StatusWarning, "Add company mention"))
		}

		title := strings.ToLower(strings.TrimSpace(doc.Job.Title))
		hook := ""
		if len(paragraphs) > 0 {
			hook = strings.ToLower(paragraphs[0])
		}
		if title != "" && strings.Contains(hook, title) {
			checks = append(checks, check("hook", types.StatusPassed, "Role mentioned in hook"))
		} else {
			checks = append(checks, check("hook", types.StatusWarning, "Add role mention in opening"))
		}
	}

	if containsAny(text, letterCTAs) {
		checks = append(checks, check("cta", types.StatusPassed, "Has call-to-action"))
	} else {
		checks = append(checks, check("cta", types.StatusWarning, "Add a call-to-action"))
	}

	return aggregate(string(types.DocumentCoverLetter), checks), nil
}

// VerifyOutreach checks an outreach message is concise for its tier,
// customized to the company and ends with an ask.
func (g *Gate) VerifyOutreach(doc types.LetterDocument) (*types.VerificationReport, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, &types.InputError{Field: "text", Message: "outreach message text is required"}
	}

	tier := strings.TrimSpace(doc.Tier)
	if tier == "" {
		tier = defaultOutreachTier
	}
	band, ok := OutreachBands[tier]
	if !ok {
		// unknown tiers are reported as the default so document_type stays a closed set
		tier = defaultOutreachTier
		band = OutreachBands[tier]
	}

	var checks []types.CheckResult
	n := len([]rune(doc.Text))
	status := types.StatusPassed
	if n < band.Min || n > band.Max {
		status = types.StatusWarning
	}
	checks = append(checks, check("concise", status, "%d chars (target %d-%d)", n, band.Min, band.Max))

	if doc.Job != nil {
		company := strings.ToLower(strings.TrimSpace(doc.Job.Company))
		if company != "" && strings.Contains(strings.ToLower(doc.Text), company) {
			checks = append(checks, check("customized", types.StatusPassed, "Mentions company"))
		} else {
			checks = append(checks, check("customized", types.StatusWarning, "Missing company personalization"))
		}
	}

	if containsAny(doc.Text, outreachCTAs) {
		checks = append(checks, check("compelling", types.StatusPassed, "Clear call-to-action found"))
	} else {
		checks = append(checks, check("compelling", types.StatusWarning, "Add more compelling ask/CTA"))
	}

	return aggregate(fmt.Sprintf("outreach_%s", tier), checks), nil
}

func inRange(name string, n, lo, hi int, unit string) types.CheckResult {
	if n >= lo && n <= hi {
		return check(name, types.StatusPassed, "%d %s", n, unit)
	}
	return check(name, types.StatusWarning, "%d %s (target %d-%d)", n, unit, lo, hi)
}
