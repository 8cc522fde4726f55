// Package match elects exactly one DOM element for a semantic role. It
// combines a base scorer, a pluggable heuristic pipeline and a tiered
// selection funnel with explicit ambiguity detection: ties are fatal, never
// broken silently.
package match

import "strings"

// Element is an immutable attribute snapshot of one DOM node, produced by a
// candidate source (driver, htmlsource). Two elements may be attribute-equal
// yet denote different live nodes; the snapshot therefore keys handles by
// *Element identity, never by value.
type Element struct {
	// Tag is the lowercase tag name ("input", "button").
	Tag string
	// Type is the input subtype ("text", "password", "submit").
	Type string
	// ID is the id attribute.
	ID string
	// Name is the name attribute.
	Name string
	// Classes is the raw class attribute value.
	Classes string

	// TestAttr/TestValue hold the first matching test/qa attribute
	// (data-testid, data-qa, ...). Both empty when absent.
	TestAttr  string
	TestValue string

	// Label is the text of the associated <label> (for= or ancestor).
	Label string
	// Placeholder is the placeholder attribute.
	Placeholder string
	// AriaLabel is the aria-label attribute.
	AriaLabel string
	// Title is the title attribute.
	Title string
	// Surrounding is normalized text around the element. Sources append
	// structured hint tokens ("[hint:role=textbox]") for ARIA roles,
	// contenteditable and popup state.
	Surrounding string

	// FormKey identifies the nearest form-like ancestor: "id:<v>",
	// "name:<v>", "action:<v>", "form", or empty when there is none.
	FormKey string
}

// ClassTokens splits the class attribute into individual tokens.
func (e *Element) ClassTokens() []string {
	if e == nil || strings.TrimSpace(e.Classes) == "" {
		return nil
	}
	return strings.Fields(e.Classes)
}

// HasClassToken reports whether token is one of the element's class tokens
// (exact match, not substring).
func (e *Element) HasClassToken(token string) bool {
	if token == "" {
		return false
	}
	for _, t := range e.ClassTokens() {
		if t == token {
			return true
		}
	}
	return false
}
