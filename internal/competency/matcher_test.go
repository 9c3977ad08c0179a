package competency

import (
	"math"
	"testing"

	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumWeights(w map[string]float64) float64 {
	s := 0.0
	for _, v := range w {
		s += v
	}
	return s
}

func TestMatch_WeightsSumToOne(t *testing.T) {
	m := NewMatcher(taxonomy.MustDefault())

	texts := []string{
		"",
		"Nothing relevant here at all.",
		"Python and SQL",
		"Lead a cross-functional team to ship the product roadmap using agile.",
		"We need someone to communicate with stakeholders, present findings and deliver on-time.",
		"PYTHON python Python java docker kubernetes aws cloud api database",
		"Mentor engineers, negotiate contracts, prioritize growth, launch features, write documentation.",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			p := m.Match(text)
			require.NotEmpty(t, p.Weights)
			assert.InDelta(t, 1.0, sumWeights(p.Weights), 1e-6)
			for _, w := range p.Weights {
				assert.GreaterOrEqual(t, w, 0.0)
				assert.LessOrEqual(t, w, 1.0)
			}
		})
	}
}

func TestMatch_PythonAndSQLOnlyTechnical(t *testing.T) {
	m := NewMatcher(taxonomy.MustDefault())
	p := m.Match("Requirements: Python and SQL")

	require.Len(t, p.Weights, 1)
	assert.InDelta(t, 1.0, p.Weights["technical_skills"], 1e-9)
	assert.False(t, p.Uniform)
	assert.Equal(t, 2, p.Mentions["technical_skills"])
	assert.Equal(t, []string{"python", "sql"}, p.Keywords["technical_skills"])
	assert.Equal(t, 0, p.Mentions["leadership"])
	assert.False(t, p.Weighted("leadership"))
}

func TestMatch_UniformFallback(t *testing.T) {
	tax := taxonomy.MustDefault()
	m := NewMatcher(tax)
	p := m.Match("We are hiring a chef to cook pasta.")

	assert.True(t, p.Uniform)
	require.Len(t, p.Weights, len(tax.Areas))
	for _, name := range tax.AreaNames() {
		assert.InDelta(t, 1.0/float64(len(tax.Areas)), p.Weights[name], 1e-9)
	}
	// ties keep taxonomy order
	assert.Equal(t, "technical_skills", p.Top())
}

func TestMatch_Normalization(t *testing.T) {
	tax := taxonomy.MustDefault()
	m := NewMatcher(tax)
	// technical: python (1 mention of 17 kw) -> 0.25 * 1/17
	// leadership: mentor, team (2 mentions of 10 kw) -> 0.20 * 2/10
	p := m.Match("Python engineer who will mentor the team")

	tech := 0.25 * 1.0 / 17.0
	lead := 0.20 * 2.0 / 10.0
	total := tech + lead
	assert.InDelta(t, tech/total, p.Weights["technical_skills"], 1e-9)
	assert.InDelta(t, lead/total, p.Weights["leadership"], 1e-9)
	assert.Equal(t, "leadership", p.Top())

	ordered := p.Ordered()
	require.Len(t, ordered, 2)
	assert.Equal(t, "leadership", ordered[0].Name)
	assert.Equal(t, "technical_skills", ordered[1].Name)
}

func TestMatch_Deterministic(t *testing.T) {
	m := NewMatcher(taxonomy.MustDefault())
	text := "Lead product strategy, ship on-time, present to stakeholders, Python and AWS"
	first := m.Match(text)
	for i := 0; i < 5; i++ {
		again := m.Match(text)
		assert.Equal(t, first.Weights, again.Weights)
		assert.Equal(t, first.Mentions, again.Mentions)
	}
}

func TestMatch_ZeroBaseWeightFallsBackToUniform(t *testing.T) {
	doc := `
areas:
  - name: only
    base_weight: 0
    keywords: [python]
  - name: other
    base_weight: 0
    keywords: [sql]
stage_priority: [growth, early, enterprise]
stages: {early: {}, growth: {}, enterprise: {}}
bullets: {min_chars: 240, max_chars: 260, ideal_chars: 250}
metric_patterns:
  - {name: percentage, pattern: '\d+%'}
`
	tax, err := taxonomy.Parse([]byte(doc))
	require.NoError(t, err)

	p := NewMatcher(tax).Match("python")
	assert.True(t, p.Uniform)
	assert.InDelta(t, 0.5, p.Weights["only"], 1e-9)
	assert.False(t, math.IsNaN(p.Weights["other"]))
}

func TestProfile_TopEmpty(t *testing.T) {
	assert.Equal(t, "", Profile{}.Top())
}
