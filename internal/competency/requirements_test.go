package competency

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeyRequirements(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "required section with bullets",
			text: "About us\n\nRequired:\n• 5+ years of product management\n• Experience with SQL dashboards\n• Go\n\nNice to have: stuff",
			want: []string{"5+ years of product management", "Experience with SQL dashboards"},
		},
		{
			name: "minimum qualifications",
			text: "Minimum qualifications: Bachelor's degree in Computer Science\n\nBenefits",
			want: []string{"Bachelor's degree in Computer Science"},
		},
		{
			name: "you must",
			text: "You must be comfortable presenting to executives",
			want: []string{"be comfortable presenting to executives"},
		},
		{
			name: "no sections",
			text: "We are a friendly team.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeyRequirements(tt.text))
		})
	}
}

func TestExtractKeyRequirements_CapsAtTen(t *testing.T) {
	var lines []string
	for i := 0; i < 15; i++ {
		lines = append(lines, fmt.Sprintf("- requirement number %02d here", i))
	}
	text := "Required:\n" + strings.Join(lines, "\n")

	got := ExtractKeyRequirements(text)
	assert.Len(t, got, 10)
	assert.Equal(t, "requirement number 00 here", got[0])
}

func TestExtractKeyRequirements_DropsOverlongItems(t *testing.T) {
	text := "Must have: " + strings.Repeat("x", 250)
	assert.Empty(t, ExtractKeyRequirements(text))
}
