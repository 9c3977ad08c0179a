package fit

import (
	"testing"

	"github.com/jonathan/jobfit/internal/competency"
	"github.com/jonathan/jobfit/internal/stage"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScorer() *Scorer {
	tax := taxonomy.MustDefault()
	return NewScorer(competency.NewMatcher(tax), stage.NewClassifier(tax))
}

func assess(t *testing.T, job string, skills ...string) *types.FitAssessment {
	t.Helper()
	a, err := newScorer().Assess(types.AssessRequest{
		JobText:   job,
		Candidate: types.CandidateProfile{Skills: skills},
	})
	require.NoError(t, err)
	return a
}

func findMatch(t *testing.T, a *types.FitAssessment, name string) types.CompetencyMatch {
	t.Helper()
	for _, m := range a.CompetencyMatches {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("no match for %s", name)
	return types.CompetencyMatch{}
}

func TestAssess_FullCoverage(t *testing.T) {
	a := assess(t, "We need Python and SQL", "Python", "SQL")

	assert.Equal(t, 100, a.FitScore)
	assert.Equal(t, types.FitExcellent, a.FitLevel)
	assert.Equal(t, []string{"Technical Skills"}, a.Strengths)
	assert.Empty(t, a.Gaps)
	assert.Equal(t, 7, a.InterestLevel)
	assert.Equal(t, types.DecisionPresent, a.Decision)
	assert.Equal(t, map[string]int{"technical_skills": 13}, a.ResumeDistribution)
	assert.Equal(t, []string{"Leverage: Lead with technical skills experience"}, a.ActionItems)
	assert.Equal(t, SummaryGuidance, a.SummaryGuidance)

	tech := findMatch(t, a, "technical_skills")
	assert.Equal(t, 1.0, tech.Weight)
	assert.Equal(t, []string{"python", "sql"}, tech.MatchedKeywords)
}

func TestAssess_UnmentionedAreasDoNotPenalize(t *testing.T) {
	a := assess(t, "We need Python and SQL", "Python", "SQL")

	lead := findMatch(t, a, "leadership")
	assert.Equal(t, 0.0, lead.Weight)
	assert.Equal(t, 100.0, lead.MatchScore)
	assert.NotContains(t, a.Strengths, "Leadership")
}

func TestAssess_Gap(t *testing.T) {
	a := assess(t, "We need Python and SQL", "Excel")

	assert.Equal(t, 0, a.FitScore)
	assert.Equal(t, types.FitWeak, a.FitLevel)
	assert.Equal(t, []string{"Technical Skills"}, a.Gaps)
	assert.Contains(t, a.ActionItems, "Critical: Add more Technical Skills experience to resume")
	assert.Equal(t, []string{"python", "sql"}, findMatch(t, a, "technical_skills").MissingKeywords)
}

func TestAssess_PartialCoverage(t *testing.T) {
	a := assess(t, "We need Python and SQL", "Python")

	assert.Equal(t, 50, a.FitScore)
	assert.Equal(t, types.FitModerate, a.FitLevel)
	assert.Empty(t, a.Strengths)
	assert.Empty(t, a.Gaps)
	assert.Equal(t, []string{"Improve: Consider highlighting experience with: sql"}, a.ActionItems)
}

func TestAssess_InterestSignalsProceed(t *testing.T) {
	a := assess(t, "Remote role. Python and SQL. Leadership matters.", "Python", "SQL")

	assert.Equal(t, 9, a.InterestLevel)
	assert.Equal(t, types.DecisionProceed, a.Decision)
}

func TestAssess_UniformFallbackRequiresFullKeywordSets(t *testing.T) {
	a := assess(t, "nothing relevant here", "Python")

	tech := findMatch(t, a, "technical_skills")
	assert.InDelta(t, 0.2, tech.Weight, 1e-9)
	assert.Equal(t, 5.9, tech.MatchScore)
	assert.Len(t, tech.MissingKeywords, 16)
	assert.Equal(t, types.FitWeak, a.FitLevel)
	assert.Len(t, a.Gaps, 5)
}

func TestAssess_SkillsIntelligence(t *testing.T) {
	a := assess(t, "We use Looker, SQL and PyTorch daily.")

	si := a.SkillsIntelligence
	assert.Equal(t, []string{"sql"}, si.Tier1Skills)
	assert.Equal(t, map[string]string{"tableau": "looker"}, si.ToolSwaps)
	assert.Equal(t, []string{"ai_heavy"}, si.Domains)
	assert.Contains(t, a.ActionItems, "Use looker instead of tableau")
	assert.Contains(t, a.ActionItems, "Add AI HEAVY category to skills")
}

func TestAssess_StageRecommendation(t *testing.T) {
	a := assess(t, "Join a Fortune 500 enterprise team", "Python")

	assert.Equal(t, types.StageEnterprise, a.StageRecommendation.Stage)
	assert.True(t, a.StageRecommendation.Confident)
	assert.NotEmpty(t, a.StageRecommendation.Guidance)
}

func TestAssess_KeyRequirements(t *testing.T) {
	job := "About us\n\nRequired:\n- 5+ years building data pipelines\n- Strong SQL and Python skills\n\nBenefits"
	a := assess(t, job)
	assert.Equal(t, []string{"5+ years building data pipelines", "Strong SQL and Python skills"}, a.KeyRequirements)
}

func TestAssess_EmptyJobText(t *testing.T) {
	_, err := newScorer().Assess(types.AssessRequest{JobText: " \n "})
	require.Error(t, err)
	assert.True(t, types.IsInputError(err))
}

func TestLevel(t *testing.T) {
	tests := []struct {
		score int
		want  types.FitLevel
	}{
		{100, types.FitExcellent},
		{85, types.FitExcellent},
		{84, types.FitStrong},
		{70, types.FitStrong},
		{69, types.FitModerate},
		{50, types.FitModerate},
		{49, types.FitWeak},
		{0, types.FitWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.score), "score %d", tt.score)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		fit      int
		interest int
		want     types.Decision
	}{
		{"both proceed thresholds", 85, 8, types.DecisionProceed},
		{"high fit, modest interest", 90, 7, types.DecisionPresent},
		{"present by fit", 75, 1, types.DecisionPresent},
		{"present by interest", 10, 7, types.DecisionPresent},
		{"archive", 74, 6, types.DecisionArchive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.fit, tt.interest))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Product Strategy", DisplayName("product_strategy"))
	assert.Equal(t, "Execution", DisplayName("execution"))
}
