package driver

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/HearthWarrio/intentium/match"
	"github.com/HearthWarrio/intentium/session"
)

// Surface is the live page the driver works against. The production
// implementation wraps a Rod page; tests substitute fakes.
type Surface interface {
	session.Executor

	// URL returns the current page URL, used to key the resolution cache
	// and to invalidate chain snapshots.
	URL(ctx context.Context) (string, error)

	// Collect yields one candidate per element, in document order.
	Collect(ctx context.Context) ([]match.Candidate, error)

	// Click left-clicks the node behind a handle produced by Collect.
	Click(ctx context.Context, node match.Handle) error

	// Type replaces the node's current text with text.
	Type(ctx context.Context, node match.Handle, text string) error
}

// RodSurface implements Surface over a Rod page. Handles are *rod.Element
// values; node identity is established through CDP backend node IDs, which
// are stable per DOM node regardless of how the node was queried.
type RodSurface struct {
	page   *rod.Page
	mapper *Mapper
}

// NewRodSurface wraps page. See NewMapper for whitelist semantics.
func NewRodSurface(page *rod.Page, testAttributes []string) *RodSurface {
	return &RodSurface{page: page, mapper: NewMapper(page, testAttributes)}
}

func (s *RodSurface) URL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("driver: page info: %w", err)
	}
	return info.URL, nil
}

func (s *RodSurface) Collect(ctx context.Context) ([]match.Candidate, error) {
	return s.mapper.Collect(ctx)
}

func (s *RodSurface) Click(ctx context.Context, node match.Handle) error {
	el, err := asElement(node)
	if err != nil {
		return err
	}
	if err := el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("driver: click: %w", err)
	}
	return nil
}

func (s *RodSurface) Type(ctx context.Context, node match.Handle, text string) error {
	el, err := asElement(node)
	if err != nil {
		return err
	}
	el = el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("driver: select text: %w", err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("driver: input: %w", err)
	}
	return nil
}

func (s *RodSurface) QueryXPath(ctx context.Context, q string) (match.Handle, error) {
	el, err := s.page.Context(ctx).ElementX(q)
	if err != nil {
		return nil, fmt.Errorf("driver: query xpath %q: %w", q, err)
	}
	return el, nil
}

func (s *RodSurface) QueryCSS(ctx context.Context, q string) (match.Handle, error) {
	el, err := s.page.Context(ctx).Element(q)
	if err != nil {
		return nil, fmt.Errorf("driver: query css %q: %w", q, err)
	}
	return el, nil
}

func (s *RodSurface) Same(a, b match.Handle) (bool, error) {
	ea, err := asElement(a)
	if err != nil {
		return false, err
	}
	eb, err := asElement(b)
	if err != nil {
		return false, err
	}
	ida, err := backendNodeID(ea)
	if err != nil {
		return false, err
	}
	idb, err := backendNodeID(eb)
	if err != nil {
		return false, err
	}
	return ida == idb, nil
}

func asElement(node match.Handle) (*rod.Element, error) {
	el, ok := node.(*rod.Element)
	if !ok || el == nil {
		return nil, &ErrInternalInconsistency{
			Reason: fmt.Sprintf("handle %T is not a live element", node),
		}
	}
	return el, nil
}

func backendNodeID(el *rod.Element) (proto.DOMBackendNodeID, error) {
	node, err := el.Describe(0, false)
	if err != nil {
		return 0, fmt.Errorf("driver: describe node: %w", err)
	}
	return node.BackendNodeID, nil
}
