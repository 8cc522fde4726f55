package match

import (
	"strings"

	"github.com/HearthWarrio/intentium/intent"
)

// Attr names a descriptor field an AttrContains heuristic can match on.
type Attr int

const (
	AttrTag Attr = iota
	AttrType
	AttrID
	AttrName
	AttrClasses
	AttrTestName
	AttrTestValue
	AttrLabel
	AttrPlaceholder
	AttrAriaLabel
	AttrTitle
	AttrSurrounding
	AttrFormKey
)

// AttrContains matches candidate attributes by case-insensitive substring.
// Typical uses: project-specific test id patterns, component-library hooks
// in classes/id/name, UI conventions like "signin" in surrounding blocks.
type AttrContains struct {
	// Name is the heuristic ID (diagnostics + dedup).
	Name string
	// Rank is the application order; lower runs earlier.
	Rank int
	// Role scopes the heuristic to one role.
	Role intent.Role
	// Attrs are the fields searched. Defaults to the test attribute value.
	Attrs []Attr
	// Needles are the substrings looked for (matched case-insensitively).
	Needles []string
	// RestrictMatches narrows the candidate set to matches.
	RestrictMatches bool
	// PreferMatches proposes matches as a preferred subset.
	PreferMatches bool
	// Boost is added to the score of every matching candidate.
	Boost float64
}

func (h *AttrContains) ID() string { return h.Name }
func (h *AttrContains) Order() int { return h.Rank }

func (h *AttrContains) Supports(role intent.Role) bool { return h.Role == role }

func (h *AttrContains) Restrict(_ intent.Role, candidates []*Element) []*Element {
	if !h.RestrictMatches {
		return candidates
	}
	return h.matchesOnly(candidates)
}

func (h *AttrContains) Prefer(_ intent.Role, candidates []*Element) []*Element {
	if !h.PreferMatches {
		return nil
	}
	return h.matchesOnly(candidates)
}

func (h *AttrContains) Adjust(_ intent.Role, candidate *Element) float64 {
	if h.Boost == 0 || !h.matches(candidate) {
		return 0
	}
	return h.Boost
}

func (h *AttrContains) matchesOnly(candidates []*Element) []*Element {
	var out []*Element
	for _, c := range candidates {
		if h.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (h *AttrContains) matches(c *Element) bool {
	if c == nil || len(h.Needles) == 0 {
		return false
	}

	attrs := h.Attrs
	if len(attrs) == 0 {
		attrs = []Attr{AttrTestValue}
	}

	for _, a := range attrs {
		value := lower(h.read(a, c))
		if value == "" {
			continue
		}
		for _, needle := range h.Needles {
			n := lower(needle)
			if n != "" && strings.Contains(value, n) {
				return true
			}
		}
	}
	return false
}

func (h *AttrContains) read(a Attr, c *Element) string {
	switch a {
	case AttrTag:
		return c.Tag
	case AttrType:
		return c.Type
	case AttrID:
		return c.ID
	case AttrName:
		return c.Name
	case AttrClasses:
		return c.Classes
	case AttrTestName:
		return c.TestAttr
	case AttrTestValue:
		return c.TestValue
	case AttrLabel:
		return c.Label
	case AttrPlaceholder:
		return c.Placeholder
	case AttrAriaLabel:
		return c.AriaLabel
	case AttrTitle:
		return c.Title
	case AttrSurrounding:
		return c.Surrounding
	case AttrFormKey:
		return c.FormKey
	default:
		return ""
	}
}
