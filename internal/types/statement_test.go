// Package types provides type definitions for structured data used throughout the jobfit engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		input   string
		want    Stage
		wantErr bool
	}{
		{"early", StageEarly, false},
		{"Growth", StageGrowth, false},
		{" enterprise ", StageEnterprise, false},
		{"early_stage", StageEarly, false},
		{"growth_stage", StageGrowth, false},
		{"public", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStage(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInputError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSixPartStatement_MissingParts(t *testing.T) {
	s := SixPartStatement{
		Action:  "Led",
		Context: "  ",
		Method:  "via X",
		Result:  "cut cost 40%",
		Outcome: "for Q4",
	}
	assert.Equal(t, []string{PartContext, PartImpact}, s.MissingParts())

	full := SixPartStatement{Action: "a", Context: "b", Method: "c", Result: "d", Impact: "e", Outcome: "f"}
	assert.Empty(t, full.MissingParts())
	assert.Equal(t, "d", full.Part(PartResult))
	assert.Equal(t, "", full.Part("unknown"))
}

func TestSixPartStatement_CloneIsDeep(t *testing.T) {
	s := SixPartStatement{Action: "Led", Tags: []string{"go"}}
	c := s.Clone()
	c.Tags[0] = "rust"
	c.Action = "Built"
	assert.Equal(t, "go", s.Tags[0])
	assert.Equal(t, "Led", s.Action)
}

func TestSixPartStatement_JSONMarshaling(t *testing.T) {
	s := SixPartStatement{
		Action:       "Led",
		Context:      "a team",
		Method:       "via X",
		Result:       "cut cost 40%",
		Impact:       "saved $1",
		Outcome:      "for Q4",
		CompanyStage: StageGrowth,
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"company_stage":"growth"`)
	assert.NotContains(t, string(data), `"competency"`)
	assert.NotContains(t, string(data), `"tags"`)
}

func TestCandidateProfile_Text(t *testing.T) {
	p := CandidateProfile{
		Skills: []string{"Python", "SQL"},
		Experience: []ExperienceEntry{
			{Title: "Engineer", Description: "Built APIs", Bullets: []string{"Led migration"}},
		},
	}
	text := p.Text()
	assert.Contains(t, text, "Python SQL")
	assert.Contains(t, text, "Engineer")
	assert.Contains(t, text, "Built APIs")
	assert.Contains(t, text, "Led migration")
	assert.Equal(t, "", CandidateProfile{}.Text())
}

func TestRequests_Validate(t *testing.T) {
	t.Run("assess requires job text", func(t *testing.T) {
		r := &AssessRequest{}
		assert.Error(t, r.Validate())
		r.JobText = "Python"
		assert.NoError(t, r.Validate())
	})

	t.Run("select rejects negative count", func(t *testing.T) {
		r := &SelectRequest{JobText: "Python", Count: -1}
		assert.Error(t, r.Validate())
		r.Count = 0
		assert.NoError(t, r.Validate())
	})

	t.Run("spin requires known stage", func(t *testing.T) {
		r := &SpinRequest{Text: "hello", TargetStage: "public"}
		assert.Error(t, r.Validate())
		r.TargetStage = "enterprise"
		assert.NoError(t, r.Validate())
	})

	t.Run("verify resume requires payload", func(t *testing.T) {
		r := &VerifyRequest{DocumentType: DocumentResume}
		assert.Error(t, r.Validate())
		r.Resume = &ResumeDocument{}
		assert.NoError(t, r.Validate())
	})

	t.Run("verify letter requires payload", func(t *testing.T) {
		r := &VerifyRequest{DocumentType: DocumentCoverLetter}
		assert.Error(t, r.Validate())
		r.Letter = &LetterDocument{Text: "Hi"}
		assert.NoError(t, r.Validate())
	})
}

func TestSelectionResult_IDs(t *testing.T) {
	r := SelectionResult{Items: []SelectedItem{{Item: LibraryItem{ID: "a"}}, {Item: LibraryItem{ID: "b"}}}}
	assert.Equal(t, []string{"a", "b"}, r.IDs())
}
