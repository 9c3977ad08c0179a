package stage

import (
	"testing"

	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(taxonomy.MustDefault())

	tests := []struct {
		name      string
		text      string
		want      types.Stage
		confident bool
	}{
		{
			name:      "seed startup",
			text:      "We are a seed-funded startup with a small team building our MVP.",
			want:      types.StageEarly,
			confident: true,
		},
		{
			name:      "series b scaling",
			text:      "Series B company in hypergrowth, scaling our platform.",
			want:      types.StageGrowth,
			confident: true,
		},
		{
			name:      "fortune 500",
			text:      "Join a Fortune 500 global enterprise.",
			want:      types.StageEnterprise,
			confident: true,
		},
		{
			name:      "no signal defaults to growth",
			text:      "We make software.",
			want:      types.StageGrowth,
			confident: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			assert.Equal(t, tt.want, got.Stage)
			assert.Equal(t, tt.confident, got.Confident)
			require.Len(t, got.Scores, 3)
		})
	}
}

func TestClassify_OverrideBonus(t *testing.T) {
	c := NewClassifier(taxonomy.MustDefault())
	got := c.Classify("Backed by angel investors")
	// "angel" is both vocabulary (+1) and an override (+3)
	assert.Equal(t, 4, got.Scores[types.StageEarly])
	assert.Equal(t, []string{"angel"}, got.Signals[types.StageEarly])
}

func TestClassify_TieBreakPriority(t *testing.T) {
	c := NewClassifier(taxonomy.MustDefault())

	// one vocabulary hit each for early and enterprise -> early outranks enterprise
	got := c.Classify("A scrappy but established company")
	assert.Equal(t, 1, got.Scores[types.StageEarly])
	assert.Equal(t, 1, got.Scores[types.StageEnterprise])
	assert.Equal(t, types.StageEarly, got.Stage)

	// one hit each for all three -> growth wins
	got = c.Classify("A scrappy, established company that is expanding")
	assert.Equal(t, 1, got.Scores[types.StageGrowth])
	assert.Equal(t, types.StageGrowth, got.Stage)
}

func TestRecommendation(t *testing.T) {
	c := NewClassifier(taxonomy.MustDefault())
	rec := c.Recommendation(c.Classify("Pre-seed startup"))

	assert.Equal(t, types.StageEarly, rec.Stage)
	assert.True(t, rec.Confident)
	assert.Contains(t, rec.Guidance, "Highlight speed of execution")
	assert.Contains(t, rec.ActionVerbs, "shipped")
	assert.Contains(t, rec.Keywords, "MVP")
}
