// Package session carries resolution results across calls: logging of
// resolved locators, the last-resolution cache and the locator consistency
// check that re-executes both grammars against the live page.
package session

import (
	"github.com/HearthWarrio/intentium/intent"
	"github.com/HearthWarrio/intentium/match"
)

// Resolved is one successful intent resolution: the elected element, its
// live handle and the locators synthesized for it.
type Resolved struct {
	URL     string
	Phrase  string
	Role    intent.Role
	Element *match.Element
	Node    match.Handle
	XPath   string
	CSS     string
	Score   float64
}
