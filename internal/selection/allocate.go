// Package selection allocates a fixed number of library statements across the
// competency areas of a job posting.
package selection

import (
	"math"

	"github.com/jonathan/jobfit/internal/competency"
)

// DefaultCount is the number of statements a resume targets when no count is given
const DefaultCount = 13

// allocEpsilon absorbs float error so that e.g. 0.3 × 10 floors to 3
const allocEpsilon = 1e-9

// Allocate splits n statements across the weighted areas of a profile.
// Each area gets floor(weight × n); the whole remainder goes to the
// highest-weight area (taxonomy order breaks ties). Areas that would get
// zero statements are omitted.
func Allocate(p competency.Profile, n int) map[string]int {
	alloc := make(map[string]int)
	if n <= 0 {
		return alloc
	}
	ordered := p.Ordered()
	if len(ordered) == 0 {
		return alloc
	}

	assigned := 0
	for _, aw := range ordered {
		count := int(math.Floor(aw.Weight*float64(n) + allocEpsilon))
		if count > 0 {
			alloc[aw.Name] = count
			assigned += count
		}
	}
	if remainder := n - assigned; remainder > 0 {
		alloc[ordered[0].Name] += remainder
	}
	return alloc
}
