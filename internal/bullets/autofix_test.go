package bullets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoFix_TrimsOutcomeFirst(t *testing.T) {
	a := newAnalyzer()
	s := validStatement()
	s.Outcome = "for Fortune 500 clients in three regions and two lines of business"
	original := s.Clone()

	p := a.AutoFix(s)

	assert.Equal(t, original, s, "input must not be modified")
	assert.Equal(t, "for Fortune 500 clie...", p.Statement.Outcome)
	assert.Equal(t, s.Impact, p.Statement.Impact)
	assert.Equal(t, []string{"Trimmed outcome to fit character limit"}, p.Changes)
	assert.Equal(t, 292, p.Before)
	assert.Equal(t, 249, p.After)
	assert.True(t, a.Analyze(p.Statement).LengthInBand)
}

func TestAutoFix_TrimsImpactWhenStillLong(t *testing.T) {
	a := newAnalyzer()
	s := validStatement()
	s.Impact = "saving $1.2M annually across 12 finance teams and 4 regional shared service centers"
	s.Outcome = "for Fortune 500 clients in three regions and two lines of business"

	p := a.AutoFix(s)

	assert.Equal(t, []string{
		"Trimmed outcome to fit character limit",
		"Trimmed impact to fit character limit",
	}, p.Changes)
	assert.Equal(t, "saving $1.2M annuall...", p.Statement.Impact)
	assert.Equal(t, 330, p.Before)
	assert.Equal(t, 227, p.After)
}

func TestAutoFix_SuggestsVerbWithoutReplacing(t *testing.T) {
	a := newAnalyzer()
	s := validStatement()
	s.Action = "Helped"

	p := a.AutoFix(s)

	assert.Equal(t, "Helped", p.Statement.Action)
	assert.Equal(t, []string{"Suggestion: Replace 'Helped' with 'Enabled'"}, p.Changes)
}

func TestAutoFix_NoChangesForValidStatement(t *testing.T) {
	p := newAnalyzer().AutoFix(validStatement())
	assert.Empty(t, p.Changes)
	assert.Equal(t, validStatement(), p.Statement)
	assert.Equal(t, p.Before, p.After)
}

func TestAutoFix_ShortPartsAreNotTrimmed(t *testing.T) {
	a := newAnalyzer()
	s := validStatement()
	s.Context = s.Context + " and the entire downstream ledger and reporting stack for every region"
	s.Outcome = "for clients"
	s.Impact = "saving $1.2M"

	p := a.AutoFix(s)
	assert.Empty(t, p.Changes)
	assert.Greater(t, p.After, 260)
}
