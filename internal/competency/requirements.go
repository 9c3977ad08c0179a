package competency

import (
	"regexp"
	"strings"
)

const maxKeyRequirements = 10

var requirementSections = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:required|must have|essential)[\s:]+(.+?)(?:\n\n|\z)`),
	regexp.MustCompile(`(?is)(?:minimum qualifications?)[\s:]+(.+?)(?:\n\n|\z)`),
	regexp.MustCompile(`(?is)(?:you|candidate) must[\s:]+(.+?)(?:\n\n|\z)`),
}

var requirementSplit = regexp.MustCompile(`[•\-\*\n]+`)

// ExtractKeyRequirements pulls must-have items from "required", "minimum
// qualifications" and "you must" sections of a posting. Items shorter than 11
// or longer than 199 characters are dropped; at most 10 are returned.
func ExtractKeyRequirements(text string) []string {
	var out []string
	for _, re := range requirementSections {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, item := range requirementSplit.Split(m[1], -1) {
				cleaned := strings.TrimSpace(item)
				if len(cleaned) > 10 && len(cleaned) < 200 {
					out = append(out, cleaned)
				}
			}
		}
	}
	if len(out) > maxKeyRequirements {
		out = out[:maxKeyRequirements]
	}
	return out
}
