package session

import (
	"fmt"

	"github.com/HearthWarrio/intentium/intent"
)

// ErrConsistencyCheckFailed means the synthesized locators did not resolve
// back to the element originally elected for the intent. It names which
// grammar diverged so the failing locator can be inspected directly.
type ErrConsistencyCheckFailed struct {
	Phrase       string
	Role         intent.Role
	XPathMatched bool
	CSSMatched   bool
	XPath        string
	CSS          string
	Cause        error
}

func (e *ErrConsistencyCheckFailed) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session: consistency check failed for intent %q, role %s: %v",
			e.Phrase, e.Role, e.Cause)
	}
	return fmt.Sprintf("session: consistency check failed for intent %q, role %s: "+
		"xpath matches original=%t, css matches original=%t (xpath=%q, css=%q)",
		e.Phrase, e.Role, e.XPathMatched, e.CSSMatched, e.XPath, e.CSS)
}

func (e *ErrConsistencyCheckFailed) Unwrap() error { return e.Cause }
