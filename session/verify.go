package session

import (
	"context"
	"errors"

	"github.com/HearthWarrio/intentium/locator"
	"github.com/HearthWarrio/intentium/match"
)

// Executor runs synthesized locators against the live candidate source and
// compares the nodes they return. Query methods must return an error when
// the locator matches nothing.
type Executor interface {
	QueryXPath(ctx context.Context, q string) (match.Handle, error)
	QueryCSS(ctx context.Context, q string) (match.Handle, error)
	Same(a, b match.Handle) (bool, error)
}

// Verifier re-executes both locator grammars of a resolution and confirms
// they land on the originally elected node. Generic bare-tag fallbacks
// carry no identity and are exempt.
type Verifier struct {
	exec Executor
}

func NewVerifier(exec Executor) *Verifier {
	return &Verifier{exec: exec}
}

// Verify returns nil when both locators resolve to the original node, and
// *ErrConsistencyCheckFailed otherwise.
func (v *Verifier) Verify(ctx context.Context, res *Resolved) error {
	if res == nil {
		return errors.New("session: nothing to verify")
	}
	if res.XPath == "" || res.CSS == "" {
		return &ErrConsistencyCheckFailed{
			Phrase: res.Phrase,
			Role:   res.Role,
			Cause:  errors.New("missing locator"),
		}
	}

	tag := ""
	if res.Element != nil {
		tag = res.Element.Tag
	}
	if locator.IsBareXPath(res.XPath, tag) || locator.IsBareCSS(res.CSS, tag) {
		return nil
	}

	byXPath, err := v.exec.QueryXPath(ctx, res.XPath)
	if err != nil {
		return v.failed(res, err)
	}
	byCSS, err := v.exec.QueryCSS(ctx, res.CSS)
	if err != nil {
		return v.failed(res, err)
	}

	xpathOK, err := v.exec.Same(res.Node, byXPath)
	if err != nil {
		return v.failed(res, err)
	}
	cssOK, err := v.exec.Same(res.Node, byCSS)
	if err != nil {
		return v.failed(res, err)
	}

	if !xpathOK || !cssOK {
		return &ErrConsistencyCheckFailed{
			Phrase:       res.Phrase,
			Role:         res.Role,
			XPathMatched: xpathOK,
			CSSMatched:   cssOK,
			XPath:        res.XPath,
			CSS:          res.CSS,
		}
	}
	return nil
}

func (v *Verifier) failed(res *Resolved, cause error) error {
	return &ErrConsistencyCheckFailed{
		Phrase: res.Phrase,
		Role:   res.Role,
		XPath:  res.XPath,
		CSS:    res.CSS,
		Cause:  cause,
	}
}
