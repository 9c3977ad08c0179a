package bullets

import (
	"fmt"

	"github.com/jonathan/jobfit/internal/types"
)

const trimKeep = 20

// Proposal is a suggested replacement statement plus the changes that produced it.
// The statement passed to AutoFix is never modified.
type Proposal struct {
	Statement types.SixPartStatement `json:"statement"`
	Changes   []string               `json:"changes"`
	Before    int                    `json:"before_chars"`
	After     int                    `json:"after_chars"`
}

// AutoFix proposes a shortened statement when over length (trimming the
// outcome first, then the impact) and a stronger leading verb when the
// action starts with a weak one.
func (a *Analyzer) AutoFix(s types.SixPartStatement) Proposal {
	fixed := s.Clone()
	p := Proposal{Before: CharCount(Assemble(s))}

	if CharCount(Assemble(fixed)) > a.tax.Bullets.Max {
		if trimmed, ok := trimPart(fixed.Outcome); ok {
			fixed.Outcome = trimmed
			p.Changes = append(p.Changes, "Trimmed outcome to fit character limit")
		}
		if CharCount(Assemble(fixed)) > a.tax.Bullets.Max {
			if trimmed, ok := trimPart(fixed.Impact); ok {
				fixed.Impact = trimmed
				p.Changes = append(p.Changes, "Trimmed impact to fit character limit")
			}
		}
	}

	if a.IsWeakAction(fixed.Action) {
		p.Changes = append(p.Changes, fmt.Sprintf("Suggestion: Replace '%s' with '%s'", fixed.Action, a.SuggestStrongVerb(fixed.Action)))
	}

	p.Statement = fixed
	p.After = CharCount(Assemble(fixed))
	return p
}

func trimPart(part string) (string, bool) {
	runes := []rune(part)
	if len(runes) <= trimKeep {
		return part, false
	}
	return string(runes[:trimKeep]) + "...", true
}
