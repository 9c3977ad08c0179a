package fit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/jobfit/internal/competency"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
)

const (
	maxCriticalItems = 2
	maxImproveItems  = 2
	maxHintKeywords  = 3
)

// actionItems lists critical gaps first, then improvement hints for areas
// scoring 50-69, then a hint to lead with the first strong area.
func actionItems(matches []types.CompetencyMatch, profile competency.Profile, gaps []string) []string {
	var items []string
	for _, gap := range gaps[:min(len(gaps), maxCriticalItems)] {
		items = append(items, fmt.Sprintf("Critical: Add more %s experience to resume", gap))
	}

	improve := 0
	for _, m := range matches {
		if improve >= maxImproveItems {
			break
		}
		if !profile.Weighted(m.Name) || m.MatchScore < gapThreshold || m.MatchScore >= strengthThreshold {
			continue
		}
		if len(m.MissingKeywords) == 0 {
			continue
		}
		hint := m.MissingKeywords[:min(len(m.MissingKeywords), maxHintKeywords)]
		items = append(items, "Improve: Consider highlighting experience with: "+strings.Join(hint, ", "))
		improve++
	}

	for _, m := range matches {
		if profile.Weighted(m.Name) && m.MatchScore >= strengthThreshold {
			items = append(items, fmt.Sprintf("Leverage: Lead with %s experience", strings.ReplaceAll(m.Name, "_", " ")))
			break
		}
	}
	return items
}

// skillsIntelligence finds tier-1 skills named in the posting, the tier-2 tool
// the posting prefers for each tool family, and heavy domains.
func skillsIntelligence(tax *taxonomy.Taxonomy, jobText string) types.SkillsIntelligence {
	si := types.SkillsIntelligence{
		Tier1Skills: []string{},
		ToolSwaps:   make(map[string]string),
		Domains:     []string{},
	}

	for _, skill := range tax.Skills.Tier1 {
		if tax.ContainsKeyword(jobText, skill) {
			si.Tier1Skills = append(si.Tier1Skills, skill)
		}
	}

	for _, primary := range sortedKeys(tax.Skills.Tier2) {
		if tax.ContainsKeyword(jobText, primary) {
			si.ToolSwaps[primary] = primary
			continue
		}
		for _, alt := range tax.Skills.Tier2[primary] {
			if tax.ContainsKeyword(jobText, alt) {
				si.ToolSwaps[primary] = alt
				si.Recommendations = append(si.Recommendations, fmt.Sprintf("Use %s instead of %s", alt, primary))
				break
			}
		}
	}

	for _, domain := range sortedKeys(tax.Skills.Domains) {
		for _, kw := range tax.Skills.Domains[domain] {
			if tax.ContainsKeyword(jobText, kw) {
				si.Domains = append(si.Domains, domain)
				si.Recommendations = append(si.Recommendations,
					fmt.Sprintf("Add %s category to skills", strings.ToUpper(strings.ReplaceAll(domain, "_", " "))))
				break
			}
		}
	}
	return si
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
