// Package bullets validates six-part achievement statements and proposes fixes.
package bullets

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobfit/internal/types"
)

var (
	multiSpace   = regexp.MustCompile(`\s+`)
	spaceBeforeC = regexp.MustCompile(`\s+,`)
)

// Assemble joins the six parts into the statement text:
// "{action} {context}, {method}, {result}, {impact} {outcome}".
// Method, result and impact (and their commas) are skipped when empty.
// Whitespace is collapsed and spaces before commas removed.
func Assemble(s types.SixPartStatement) string {
	var sb strings.Builder
	sb.WriteString(s.Action)
	sb.WriteString(" ")
	sb.WriteString(s.Context)
	for _, part := range []string{s.Method, s.Result, s.Impact} {
		if part != "" {
			sb.WriteString(", ")
			sb.WriteString(part)
		}
	}
	if s.Outcome != "" {
		sb.WriteString(" ")
		sb.WriteString(s.Outcome)
	}

	text := multiSpace.ReplaceAllString(sb.String(), " ")
	text = strings.TrimSpace(text)
	return spaceBeforeC.ReplaceAllString(text, ",")
}

// CharCount returns the character (rune) length of text
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}
