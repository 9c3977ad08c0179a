package selection

import (
	"math"
	"strings"

	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/jonathan/jobfit/internal/types"
)

const (
	// Scoring weights for an item's fit to one area
	weightKeywordOverlap = 0.6
	weightQuality        = 0.4

	competencyBonus = 10.0
	tagHitValue     = 0.5
	usagePenalty    = 2.0
)

// ScoreComponents holds the individual scoring factors for one item against one area
type ScoreComponents struct {
	KeywordScore    float64 `json:"keyword_score"`
	QualityScore    float64 `json:"quality_score"`
	CompetencyBonus float64 `json:"competency_bonus"`
	UsagePenalty    float64 `json:"usage_penalty"`
}

// ScoredItem is a library item scored against one area
type ScoredItem struct {
	Item       types.LibraryItem
	Area       string
	Score      float64
	Relevant   bool
	Components ScoreComponents
}

// ScoreItem computes
// 0.6 × keyword overlap + 0.4 × quality (+10 when the item declares the area)
// minus 2 × usage_count when penalizeUsage is set.
//
// Keyword overlap is (area keywords found in the text + 0.5 × matching tags) / |keywords| × 100,
// capped at 100. An item is relevant to the area when it overlaps at all or declares the area.
func ScoreItem(tax *taxonomy.Taxonomy, item types.LibraryItem, area taxonomy.Area, penalizeUsage bool) ScoredItem {
	c := ScoreComponents{
		KeywordScore: keywordOverlap(tax, item, area),
		QualityScore: float64(item.QualityScore),
	}
	declared := sameArea(item.Statement.Competency, area.Name)
	if declared {
		c.CompetencyBonus = competencyBonus
	}
	if penalizeUsage {
		c.UsagePenalty = usagePenalty * float64(item.UsageCount)
	}

	return ScoredItem{
		Item:       item,
		Area:       area.Name,
		Score:      weightKeywordOverlap*c.KeywordScore + weightQuality*c.QualityScore + c.CompetencyBonus - c.UsagePenalty,
		Relevant:   c.KeywordScore > 0 || declared,
		Components: c,
	}
}

func keywordOverlap(tax *taxonomy.Taxonomy, item types.LibraryItem, area taxonomy.Area) float64 {
	if len(area.Keywords) == 0 {
		return 0
	}
	text := item.Text
	if text == "" {
		text = strings.Join([]string{
			item.Statement.Action, item.Statement.Context, item.Statement.Method,
			item.Statement.Result, item.Statement.Impact, item.Statement.Outcome,
		}, " ")
	}

	hits := 0.0
	for _, kw := range area.Keywords {
		if tax.ContainsKeyword(text, kw) {
			hits++
		}
	}
	for _, tag := range item.Statement.Tags {
		if sameArea(tag, area.Name) || containsFold(area.Keywords, tag) {
			hits += tagHitValue
		}
	}
	return math.Min(100, hits/float64(len(area.Keywords))*100)
}

// sameArea compares a declared competency with an area name, ignoring case
// and treating spaces and underscores alike ("Product Strategy" == "product_strategy").
func sameArea(declared, area string) bool {
	if declared == "" {
		return false
	}
	norm := strings.ReplaceAll(strings.TrimSpace(declared), " ", "_")
	return strings.EqualFold(norm, area)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
