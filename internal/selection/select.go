package selection

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/jobfit/internal/competency"
	"github.com/jonathan/jobfit/internal/types"
)

// Selector picks statements from a pool for a job posting. It never mutates the pool.
type Selector struct {
	matcher *competency.Matcher
}

// NewSelector creates a selector that weights areas with the given matcher
func NewSelector(matcher *competency.Matcher) *Selector {
	return &Selector{matcher: matcher}
}

// Select allocates req.Count statements (DefaultCount when zero) across the
// areas the job text weights, fills each area with its best relevant items and
// backfills from the remaining pool when an area runs short.
//
// The result never holds more than the requested count and never repeats an id.
// A pool that cannot supply the count is reported through Shortfall, not an error.
func (s *Selector) Select(pool []types.LibraryItem, req types.SelectRequest) (*types.SelectionResult, error) {
	if strings.TrimSpace(req.JobText) == "" {
		return nil, &types.InputError{Field: "job_text", Message: "job description is required"}
	}
	if req.Count < 0 {
		return nil, &types.InputError{Field: "count", Message: fmt.Sprintf("must be non-negative, got %d", req.Count)}
	}
	n := req.Count
	if n == 0 {
		n = DefaultCount
	}

	tax := s.matcher.Taxonomy()
	profile := s.matcher.Match(req.JobText)
	result := &types.SelectionResult{
		Requested:  n,
		Weights:    profile.Weights,
		Allocation: Allocate(profile, n),
		Filled:     make(map[string]int),
	}

	selected := make(map[string]bool, n)
	for _, aw := range profile.Ordered() {
		want := result.Allocation[aw.Name]
		if want == 0 {
			continue
		}
		area, _ := tax.Area(aw.Name)

		candidates := make([]ScoredItem, 0, len(pool))
		for _, item := range pool {
			if selected[item.ID] {
				continue
			}
			scored := ScoreItem(tax, item, area, req.PreferUnused)
			if scored.Relevant {
				candidates = append(candidates, scored)
			}
		}
		sortScored(candidates)

		for _, c := range candidates {
			if result.Filled[aw.Name] >= want {
				break
			}
			if selected[c.Item.ID] {
				continue
			}
			selected[c.Item.ID] = true
			result.Filled[aw.Name]++
			result.Items = append(result.Items, types.SelectedItem{Item: c.Item, Area: aw.Name, Score: round1(c.Score)})
		}
		if result.Filled[aw.Name] < want {
			result.Underfilled = true
		}
	}

	if len(result.Items) < n {
		s.backfill(pool, profile, req.PreferUnused, selected, n, result)
	}

	result.Shortfall = n - len(result.Items)
	result.Recommendations = recommendations(profile, result, len(pool))
	return result, nil
}

// backfill tops up the selection with the best remaining items, each scored
// against the weighted area it fits best.
func (s *Selector) backfill(pool []types.LibraryItem, profile competency.Profile, penalize bool, selected map[string]bool, n int, result *types.SelectionResult) {
	tax := s.matcher.Taxonomy()
	ordered := profile.Ordered()

	var remaining []ScoredItem
	for _, item := range pool {
		if selected[item.ID] {
			continue
		}
		var best ScoredItem
		for i, aw := range ordered {
			area, _ := tax.Area(aw.Name)
			scored := ScoreItem(tax, item, area, penalize)
			if i == 0 || scored.Score > best.Score {
				best = scored
			}
		}
		remaining = append(remaining, best)
	}
	sortScored(remaining)

	for _, c := range remaining {
		if len(result.Items) >= n {
			return
		}
		if selected[c.Item.ID] {
			continue
		}
		selected[c.Item.ID] = true
		result.Items = append(result.Items, types.SelectedItem{Item: c.Item, Area: c.Area, Score: round1(c.Score), Backfilled: true})
	}
}

// sortScored orders by score, then quality, then id so that equal pools select identically
func sortScored(items []ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].Item.QualityScore != items[j].Item.QualityScore {
			return items[i].Item.QualityScore > items[j].Item.QualityScore
		}
		return items[i].Item.ID < items[j].Item.ID
	})
}

func recommendations(profile competency.Profile, r *types.SelectionResult, poolSize int) []string {
	var recs []string
	if r.Shortfall > 0 {
		recs = append(recs, fmt.Sprintf("Library has %d usable items; add %d more to reach %d", poolSize, r.Shortfall, r.Requested))
	}
	for _, aw := range profile.Ordered() {
		want := r.Allocation[aw.Name]
		if got := r.Filled[aw.Name]; got < want {
			recs = append(recs, fmt.Sprintf("Add more %s bullets (filled %d of %d)", strings.ReplaceAll(aw.Name, "_", " "), got, want))
		}
	}
	return recs
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
