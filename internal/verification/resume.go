package verification

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/jobfit/internal/bullets"
	"github.com/jonathan/jobfit/internal/types"
)

// Resume shape constraints
const (
	DefaultTargetBullets = 13
	MinBulletsPerRole    = 2
	MaxBulletsPerRole    = 5
	MinSummaryChars      = 360
	MaxSummaryChars      = 380
	MinSkills            = 5
)

var summaryMetric = regexp.MustCompile(`(?i)\d+%|\$[\d,]+|\b\d+\s*[kmb]\b`)

// VerifyResume runs the resume gate. Missing contact fields or required
// sections fail the report; everything else warns.
func (g *Gate) VerifyResume(doc types.ResumeDocument) *types.VerificationReport {
	roles := make([][]string, len(doc.Experience))
	var all []string
	for i, job := range doc.Experience {
		roles[i] = roleBullets(job)
		all = append(all, roles[i]...)
	}

	checks := []types.CheckResult{
		g.checkSections(doc),
		checkContact(doc),
		checkSummaryLength(doc.Summary),
		checkSummaryMetrics(doc.Summary),
	}
	checks = append(checks, g.checkBullets(roles)...)
	checks = append(checks,
		g.checkBulletCounts(roles),
		g.checkMetricDiversity(all),
		g.checkActionVerbs(all),
		g.checkSkills(doc.Skills),
		checkBulletSymbols(doc.Experience),
	)
	return aggregate(string(types.DocumentResume), checks)
}

func (g *Gate) checkSections(doc types.ResumeDocument) types.CheckResult {
	var missing []string
	if strings.TrimSpace(doc.Summary) == "" {
		missing = append(missing, "summary")
	}
	if len(doc.Experience) == 0 {
		missing = append(missing, "experience")
	}
	if len(doc.Education) == 0 {
		missing = append(missing, "education")
	}
	if len(nonEmpty(doc.Skills)) == 0 {
		missing = append(missing, "skills")
	}

	switch {
	case len(missing) == 0:
		return check("sections", types.StatusPassed, "All required sections present")
	case len(missing) == 1 && missing[0] == "summary":
		return check("sections", types.StatusWarning, "Summary missing")
	}
	return check("sections", types.StatusFailed, "Missing: %s", strings.Join(missing, ", "))
}

func checkContact(doc types.ResumeDocument) types.CheckResult {
	var missing []string
	if strings.TrimSpace(doc.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(doc.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return check("contact", types.StatusFailed, "Missing: %s", strings.Join(missing, ", "))
	}
	return check("contact", types.StatusPassed, "Contact info complete")
}

func checkSummaryLength(summary string) types.CheckResult {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return check("summary_length", types.StatusWarning, "Summary missing")
	}
	n := bullets.CharCount(summary)
	if n >= MinSummaryChars && n <= MaxSummaryChars {
		return check("summary_length", types.StatusPassed, "%d chars", n)
	}
	return check("summary_length", types.StatusWarning, "%d chars (target %d-%d)", n, MinSummaryChars, MaxSummaryChars)
}

func checkSummaryMetrics(summary string) types.CheckResult {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return check("summary_metrics", types.StatusWarning, "Summary missing")
	}
	if summaryMetric.MatchString(summary) {
		return check("summary_metrics", types.StatusWarning, "Remove metrics from summary (save for bullets)")
	}
	return check("summary_metrics", types.StatusPassed, "No metrics in summary")
}

// checkBullets emits one bullets_i check per role with the length band from
// the taxonomy.
func (g *Gate) checkBullets(roles [][]string) []types.CheckResult {
	if len(roles) == 0 {
		return []types.CheckResult{check("bullets", types.StatusWarning, "No experience")}
	}

	band := g.tax.Bullets
	out := make([]types.CheckResult, 0, len(roles))
	for i, bs := range roles {
		name := fmt.Sprintf("bullets_%d", i)
		if len(bs) == 0 {
			out = append(out, check(name, types.StatusWarning, "0 bullets (target %d-%d)", MinBulletsPerRole, MaxBulletsPerRole))
			continue
		}

		var lengths []string
		for j, b := range bs {
			if n := bullets.CharCount(b); n < band.Min || n > band.Max {
				lengths = append(lengths, fmt.Sprintf("Bullet %d: %d chars", j+1, n))
			}
		}
		if len(lengths) == 0 {
			out = append(out, check(name, types.StatusPassed, "%d bullets", len(bs)))
			continue
		}
		c := check(name, types.StatusWarning, "%d bullets, %d issues", len(bs), len(lengths))
		c.Details = map[string]any{"issues": lengths}
		out = append(out, c)
	}
	return out
}

func (g *Gate) checkBulletCounts(roles [][]string) types.CheckResult {
	var issues []string
	total := 0
	for i, bs := range roles {
		total += len(bs)
		if len(bs) < MinBulletsPerRole || len(bs) > MaxBulletsPerRole {
			issues = append(issues, fmt.Sprintf("Role %d: %d bullets (target %d-%d)", i+1, len(bs), MinBulletsPerRole, MaxBulletsPerRole))
		}
	}
	if total != g.target {
		issues = append(issues, fmt.Sprintf("Total bullets: %d (target %d)", total, g.target))
	}
	if len(issues) > 0 {
		return check("bullet_counts", types.StatusWarning, "%s", strings.Join(issues, "; "))
	}
	return check("bullet_counts", types.StatusPassed, "Bullet counts in range")
}

func (g *Gate) checkMetricDiversity(all []string) types.CheckResult {
	if len(all) == 0 {
		return check("metric_diversity", types.StatusWarning, "No bullets to analyze")
	}
	report := g.metrics.Check(all)
	switch {
	case len(report.Warnings) > 0:
		return check("metric_diversity", types.StatusWarning, "%s", strings.Join(report.Warnings, "; "))
	case !report.AllTypesPresent:
		return check("metric_diversity", types.StatusWarning, "Add more metric types for diversity")
	}
	return check("metric_diversity", types.StatusPassed, "Metric diversity looks good")
}

func (g *Gate) checkActionVerbs(all []string) types.CheckResult {
	if len(all) == 0 {
		return check("action_verbs", types.StatusWarning, "No bullets to analyze")
	}
	report := g.verbs.Check(all)
	if !report.AllUnique {
		c := check("action_verbs", types.StatusWarning, "Duplicate action verbs found")
		c.Details = map[string]any{"suggestions": report.Suggestions}
		return c
	}
	return check("action_verbs", types.StatusPassed, "Action verbs are unique")
}

func (g *Gate) checkSkills(skills []string) types.CheckResult {
	skills = nonEmpty(skills)
	if len(skills) == 0 {
		return check("skills", types.StatusFailed, "No skills listed")
	}

	var soft []string
	for _, s := range skills {
		for _, known := range g.tax.SoftSkills {
			if strings.EqualFold(s, known) {
				soft = append(soft, s)
				break
			}
		}
	}
	if len(soft) > 0 {
		return check("skills", types.StatusWarning, "Remove soft skills: %s. Hard skills only.", strings.Join(soft, ", "))
	}
	if len(skills) < MinSkills {
		return check("skills", types.StatusWarning, "Only %d skills", len(skills))
	}
	return check("skills", types.StatusPassed, "%d skills", len(skills))
}

func checkBulletSymbols(experience []types.ExperienceEntry) types.CheckResult {
	for _, job := range experience {
		desc := strings.TrimSpace(job.Description)
		dashed := strings.HasPrefix(desc, "-") || strings.Contains(desc, "\n-")
		for _, b := range job.Bullets {
			if strings.HasPrefix(strings.TrimSpace(b), "-") {
				dashed = true
			}
		}
		if dashed {
			return check("bullet_symbols", types.StatusWarning, "Use '•' instead of '-' for bullets")
		}
	}
	return check("bullet_symbols", types.StatusPassed, "Correct bullet symbols used")
}

// roleBullets prefers the explicit bullet list and falls back to the
// description split into lines.
func roleBullets(job types.ExperienceEntry) []string {
	if bs := nonEmpty(job.Bullets); len(bs) > 0 {
		return bs
	}
	return nonEmpty(strings.Split(job.Description, "\n"))
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
