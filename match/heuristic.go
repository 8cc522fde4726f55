package match

import (
	"sort"

	"github.com/HearthWarrio/intentium/intent"
)

// Heuristic is a named, ordered, role-scoped rule that can influence
// selection without rewriting the selector. Heuristics participate in three
// optional stages: restriction (narrow the candidate set), preference
// (propose a subset to try earlier) and score adjustment.
//
// Contract: Restrict and Prefer must never return elements absent from their
// input; the selector intersects results against the working set as a guard.
// Keep adjustments small — the base scorer does the heavy lifting.
type Heuristic interface {
	// ID is a stable identifier used for dedup and diagnostics.
	ID() string
	// Order defines application sequence; lower runs earlier.
	Order() int
	// Supports reports whether the heuristic applies to the role.
	Supports(role intent.Role) bool
	// Restrict narrows candidates when the heuristic is confident. An empty
	// or non-narrowing result is treated as a no-op by the selector.
	Restrict(role intent.Role, candidates []*Element) []*Element
	// Prefer returns a subset to try earlier without excluding the rest.
	Prefer(role intent.Role, candidates []*Element) []*Element
	// Adjust returns a signed delta added to the base score.
	Adjust(role intent.Role, candidate *Element) float64
}

// NopHeuristic is an embeddable base with no-op stage implementations.
// Embedders implement ID and override the stages they need.
type NopHeuristic struct{}

func (NopHeuristic) Order() int                                { return 0 }
func (NopHeuristic) Supports(intent.Role) bool                 { return true }
func (NopHeuristic) Prefer(intent.Role, []*Element) []*Element { return nil }
func (NopHeuristic) Adjust(intent.Role, *Element) float64      { return 0 }

func (NopHeuristic) Restrict(_ intent.Role, candidates []*Element) []*Element {
	return candidates
}

// Normalize prepares a heuristic list for use: drops nils, sorts by
// (Order, ID) and dedupes by ID keeping the first occurrence. The result is
// a fresh slice; inputs are not mutated.
func Normalize(heuristics []Heuristic) []Heuristic {
	if len(heuristics) == 0 {
		return nil
	}

	cleaned := make([]Heuristic, 0, len(heuristics))
	for _, h := range heuristics {
		if h != nil {
			cleaned = append(cleaned, h)
		}
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		if cleaned[i].Order() != cleaned[j].Order() {
			return cleaned[i].Order() < cleaned[j].Order()
		}
		return cleaned[i].ID() < cleaned[j].ID()
	})

	seen := make(map[string]bool, len(cleaned))
	out := cleaned[:0]
	for _, h := range cleaned {
		if seen[h.ID()] {
			continue
		}
		seen[h.ID()] = true
		out = append(out, h)
	}
	return out
}
