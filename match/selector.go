package match

import (
	"math"
	"strings"

	"github.com/HearthWarrio/intentium/intent"
)

const (
	hintPrefix = "[hint:"
	hintSuffix = "]"
)

// Selector elects exactly one element for a role from a snapshot. With no
// heuristics configured it picks the best candidate by base score and fails
// on ambiguity; heuristics add restriction, preference and score adjustment
// without changing that contract.
//
// Selection runs a fixed tier funnel, first success wins:
//
//	preferred∩restricted → restricted → preferred → all candidates
//
// Inside each tier, candidates whose test attribute value matches the role
// are tried before candidates that merely have a test attribute, before the
// unfiltered tier. A tier fails (falls through) when its best composite
// score is zero or below; an exact tie at the best score is fatal.
type Selector struct {
	scorer     Scorer
	heuristics []Heuristic
}

// NewSelector creates a selector around the given base scorer. A nil scorer
// defaults to DefaultScorer. Heuristics are normalized once here.
func NewSelector(scorer Scorer, heuristics ...Heuristic) *Selector {
	if scorer == nil {
		scorer = DefaultScorer{}
	}
	return &Selector{
		scorer:     scorer,
		heuristics: Normalize(heuristics),
	}
}

// SetHeuristics replaces the configured pipeline. The list is normalized;
// the previous pipeline stays untouched until replacement completes.
func (s *Selector) SetHeuristics(heuristics []Heuristic) {
	s.heuristics = Normalize(heuristics)
}

// Heuristics returns the pipeline in effective application order.
func (s *Selector) Heuristics() []Heuristic {
	out := make([]Heuristic, len(s.heuristics))
	copy(out, s.heuristics)
	return out
}

// Select elects the best candidate for the role or fails explicitly with
// ErrNoCandidates, ErrNoSuitableMatch or ErrAmbiguousMatch. Identical
// (snapshot, heuristics, role) inputs always produce the identical result.
func (s *Selector) Select(role intent.Role, snap *Snapshot) (Match, error) {
	if snap.Empty() {
		return Match{}, ErrNoCandidates
	}
	candidates := snap.Candidates()

	restricted := s.applyRestrictions(role, candidates)
	preferred := s.buildPreferred(role, candidates)
	preferredRestricted := intersectPreserveOrder(preferred, restricted)

	for _, tier := range [][]*Element{preferredRestricted, restricted, preferred, candidates} {
		m, ok, err := s.selectWithTestTiers(role, tier)
		if err != nil {
			return Match{}, err
		}
		if ok {
			return m, nil
		}
	}

	return Match{}, &ErrNoSuitableMatch{Role: role}
}

// Match is the result of electing an element for a role.
type Match struct {
	Role    intent.Role
	Element *Element
	Score   float64
}

// applyRestrictions runs restriction heuristics sequentially. Each step is
// accepted only when it yields a smaller non-empty subset of the working set
// (fail-open narrowing); results are intersected against the working set so
// a heuristic can never smuggle in outside candidates.
func (s *Selector) applyRestrictions(role intent.Role, candidates []*Element) []*Element {
	current := candidates
	for _, h := range s.heuristics {
		if !h.Supports(role) {
			continue
		}
		restricted := intersectPreserveOrder(current, h.Restrict(role, current))
		if len(restricted) > 0 && len(restricted) < len(current) {
			current = restricted
		}
	}
	return current
}

// buildPreferred unions the built-in structural preference with every
// supporting heuristic's preference subset, deduped in snapshot order.
func (s *Selector) buildPreferred(role intent.Role, candidates []*Element) []*Element {
	out := structuralPreference(role, candidates)

	for _, h := range s.heuristics {
		if !h.Supports(role) {
			continue
		}
		preferred := h.Prefer(role, candidates)
		if len(preferred) == 0 {
			continue
		}
		out = append(out, intersectPreserveOrder(candidates, preferred)...)
	}

	return dedupePreserveOrder(out)
}

// selectWithTestTiers applies the two-level test-attribute sub-tiering
// inside one tier: value-matches-role, any-test-value, unfiltered.
func (s *Selector) selectWithTestTiers(role intent.Role, candidates []*Element) (Match, bool, error) {
	if len(candidates) == 0 {
		return Match{}, false, nil
	}

	var tierMatch, tierAny []*Element
	for _, c := range candidates {
		testValue := lower(c.TestValue)
		if testValue == "" {
			continue
		}
		tierAny = append(tierAny, c)
		if testValueMatchesRole(role, testValue) {
			tierMatch = append(tierMatch, c)
		}
	}

	for _, sub := range [][]*Element{tierMatch, tierAny, candidates} {
		m, ok, err := s.bestOf(role, sub)
		if err != nil || ok {
			return m, ok, err
		}
	}
	return Match{}, false, nil
}

// bestOf computes composite scores and elects the single best candidate.
// The ambiguity check compares only the top two scores and is local to this
// (sub-)tier.
func (s *Selector) bestOf(role intent.Role, candidates []*Element) (Match, bool, error) {
	if len(candidates) == 0 {
		return Match{}, false, nil
	}

	bestScore := math.Inf(-1)
	secondScore := math.Inf(-1)
	var best, second *Element

	for _, c := range candidates {
		score := s.compositeScore(role, c)
		if score > bestScore {
			secondScore, second = bestScore, best
			bestScore, best = score, c
		} else if score > secondScore {
			secondScore, second = score, c
		}
	}

	if best == nil || bestScore <= 0 {
		return Match{}, false, nil
	}
	if second != nil && bestScore == secondScore {
		return Match{}, false, &ErrAmbiguousMatch{
			Role:       role,
			Score:      bestScore,
			Best:       best,
			SecondBest: second,
		}
	}

	return Match{Role: role, Element: best, Score: bestScore}, true, nil
}

// compositeScore is base score plus the sum of supporting heuristics'
// adjustments.
func (s *Selector) compositeScore(role intent.Role, c *Element) float64 {
	score := s.scorer.Score(role, c)
	for _, h := range s.heuristics {
		if h.Supports(role) {
			score += h.Adjust(role, c)
		}
	}
	return score
}

// structuralPreference is the built-in prefer stage: candidates whose tag
// and type structurally fit the role, plus hint-carrying elements for field
// roles (ARIA textbox/combobox, contenteditable).
func structuralPreference(role intent.Role, candidates []*Element) []*Element {
	var preferred []*Element
	for _, c := range candidates {
		if c == nil {
			continue
		}
		tag := lower(c.Tag)
		typ := lower(c.Type)

		switch role {
		case intent.RolePasswordField:
			if tag == "input" && typ == "password" {
				preferred = append(preferred, c)
			}

		case intent.RoleLoginButton:
			if tag == "button" || (tag == "input" && containsAny(typ, []string{"submit", "button"})) {
				preferred = append(preferred, c)
			}

		case intent.RoleLoginField:
			if tag == "textarea" {
				preferred = append(preferred, c)
				continue
			}
			if tag == "input" && (typ == "" || containsAny(typ, []string{"text", "email", "tel", "number", "search"})) {
				preferred = append(preferred, c)
				continue
			}
			joined := lower(joinNonEmpty(c.ID, c.Name, c.Label, c.AriaLabel, c.Placeholder, c.Title, c.Surrounding))
			if strings.Contains(joined, hintPrefix+"role=textbox"+hintSuffix) ||
				strings.Contains(joined, hintPrefix+"role=combobox"+hintSuffix) ||
				strings.Contains(joined, hintPrefix+"contenteditable=true"+hintSuffix) {
				preferred = append(preferred, c)
			}
		}
	}
	return preferred
}

// testValueMatchesRole reports whether a test attribute value semantically
// matches the role (drives the first test sub-tier).
func testValueMatchesRole(role intent.Role, testValueLower string) bool {
	switch role {
	case intent.RoleLoginField:
		return containsAny(testValueLower, loginFieldTierKeywords)
	case intent.RolePasswordField:
		return containsAny(testValueLower, passwordKeywords)
	case intent.RoleLoginButton:
		return containsAny(testValueLower, loginButtonTestKeywords)
	default:
		return false
	}
}

func intersectPreserveOrder(baseOrder, subset []*Element) []*Element {
	if len(baseOrder) == 0 || len(subset) == 0 {
		return nil
	}
	in := make(map[*Element]bool, len(subset))
	for _, e := range subset {
		if e != nil {
			in[e] = true
		}
	}
	var out []*Element
	for _, e := range baseOrder {
		if in[e] {
			out = append(out, e)
		}
	}
	return out
}

func dedupePreserveOrder(in []*Element) []*Element {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[*Element]bool, len(in))
	var out []*Element
	for _, e := range in {
		if e == nil || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
