// Package htmlsource adapts a parsed static HTML document into the
// candidate source used by the matching engine. It mirrors what the live
// browser mapper extracts — attributes, associated label text, surrounding
// text with structured hints and the enclosing form key — so the same
// scoring and locator synthesis work against fixture pages in tests.
package htmlsource

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/HearthWarrio/intentium/match"
)

// DefaultTestAttributes is the default whitelist of test/qa attributes.
// The order matters: the first present attribute wins.
var DefaultTestAttributes = []string{
	"data-testid",
	"data-test-id",
	"data-test",
	"data-qa",
	"data-cy",
	"data-automation-id",
	"data-automation",
}

// Option customises a Source.
type Option func(*Source)

// WithTestAttributes replaces the test-attribute whitelist. An empty list
// disables test-attribute detection.
func WithTestAttributes(names ...string) Option {
	return func(s *Source) { s.testAttributes = names }
}

// Source walks a parsed HTML document and yields one candidate per element
// node, in document order.
type Source struct {
	root           *html.Node
	testAttributes []string
}

// New wraps an already parsed document.
func New(root *html.Node, opts ...Option) *Source {
	s := &Source{root: root, testAttributes: DefaultTestAttributes}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Parse reads and parses an HTML document from r.
func Parse(r io.Reader, opts ...Option) (*Source, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmlsource: parse: %w", err)
	}
	return New(root, opts...), nil
}

// Collect maps every element node to a descriptor paired with its node
// handle. The returned order is document order, which keeps downstream
// ordinal locators stable.
func (s *Source) Collect() ([]match.Candidate, error) {
	if s == nil || s.root == nil {
		return nil, nil
	}

	labelsByID := collectLabelTexts(s.root)

	var out []match.Candidate
	walkElements(s.root, func(n *html.Node) {
		out = append(out, match.Candidate{
			Info: s.describe(n, labelsByID),
			Node: n,
		})
	})
	return out, nil
}

func (s *Source) describe(n *html.Node, labelsByID map[string]string) *match.Element {
	e := &match.Element{
		Tag:         strings.ToLower(n.Data),
		Type:        attr(n, "type"),
		ID:          attr(n, "id"),
		Name:        attr(n, "name"),
		Classes:     attr(n, "class"),
		Placeholder: attr(n, "placeholder"),
		AriaLabel:   attr(n, "aria-label"),
		Title:       attr(n, "title"),
		Label:       resolveLabel(n, labelsByID),
		Surrounding: resolveSurrounding(n),
		FormKey:     resolveFormKey(n),
	}
	for _, name := range s.testAttributes {
		if name == "" {
			continue
		}
		if v := attr(n, name); v != "" {
			e.TestAttr = name
			e.TestValue = v
			break
		}
	}
	return e
}

// walkElements visits element nodes in document order.
func walkElements(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, visit)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// collectLabelTexts indexes label text by the id each label points at.
// The first non-blank label per id wins.
func collectLabelTexts(root *html.Node) map[string]string {
	out := map[string]string{}
	walkElements(root, func(n *html.Node) {
		if n.Data != "label" {
			return
		}
		forID := attr(n, "for")
		if forID == "" {
			return
		}
		if _, seen := out[forID]; seen {
			return
		}
		if t := textContent(n); t != "" {
			out[forID] = t
		}
	})
	return out
}

func resolveLabel(n *html.Node, labelsByID map[string]string) string {
	if id := attr(n, "id"); id != "" {
		if t := labelsByID[id]; t != "" {
			return t
		}
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "label" {
			if t := textContent(p); t != "" {
				return t
			}
		}
	}
	return ""
}

// resolveSurrounding joins the visible text of the parent and the adjacent
// element siblings, then appends structured hints for ARIA roles and
// editability so selectors can recognize widgets that plain tag names do
// not describe.
func resolveSurrounding(n *html.Node) string {
	parts := []string{}
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		parts = append(parts, textContent(n.Parent))
	}
	if prev := elementSibling(n.PrevSibling, func(m *html.Node) *html.Node { return m.PrevSibling }); prev != nil {
		parts = append(parts, textContent(prev))
	}
	if next := elementSibling(n.NextSibling, func(m *html.Node) *html.Node { return m.NextSibling }); next != nil {
		parts = append(parts, textContent(next))
	}

	base := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")

	hints := buildHints(n)
	switch {
	case hints == "":
		return base
	case base == "":
		return hints
	}
	return base + " " + hints
}

func buildHints(n *html.Node) string {
	var sb strings.Builder
	if role := attr(n, "role"); role != "" {
		sb.WriteString("[hint:role=" + strings.ToLower(role) + "]")
	}
	if ce := attr(n, "contenteditable"); ce != "" && !strings.EqualFold(ce, "false") {
		sb.WriteString("[hint:contenteditable=true]")
	}
	if v := attr(n, "aria-haspopup"); v != "" {
		sb.WriteString("[hint:aria-haspopup=" + strings.ToLower(v) + "]")
	}
	if v := attr(n, "aria-expanded"); v != "" {
		sb.WriteString("[hint:aria-expanded=" + strings.ToLower(v) + "]")
	}
	if v := attr(n, "aria-controls"); v != "" {
		sb.WriteString("[hint:aria-controls=" + v + "]")
	}
	return sb.String()
}

func elementSibling(start *html.Node, next func(*html.Node) *html.Node) *html.Node {
	for m := start; m != nil; m = next(m) {
		if m.Type == html.ElementNode {
			return m
		}
	}
	return nil
}

// resolveFormKey identifies the nearest enclosing form: "id:…" and
// "name:…" keys are addressable in locators, "action:…" and the bare
// "form" marker only bound uniqueness scopes.
func resolveFormKey(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode || p.Data != "form" {
			continue
		}
		if id := attr(p, "id"); id != "" {
			return "id:" + id
		}
		if name := attr(p, "name"); name != "" {
			return "name:" + name
		}
		if action := attr(p, "action"); action != "" {
			return "action:" + action
		}
		return "form"
	}
	return ""
}

// textContent returns the whitespace-normalized text below n, skipping
// script and style subtrees the way innerText does.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.ElementNode && (m.Data == "script" || m.Data == "style") {
			return
		}
		if m.Type == html.TextNode {
			sb.WriteString(m.Data)
			sb.WriteString(" ")
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
