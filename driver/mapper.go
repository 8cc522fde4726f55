package driver

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/HearthWarrio/intentium/match"
)

// collectScript extracts one descriptor per element, in the same
// querySelectorAll order Rod uses for Elements("*"), so the two lists can
// be zipped by index.
const collectScript = `(testAttrs) => {
	const txt = (n) => (n && n.innerText) ? n.innerText : '';
	const norm = (s) => (s || '').replace(/\s+/g, ' ').trim();
	const attr = (el, name) => {
		const v = el.getAttribute(name);
		return v ? v.trim() : '';
	};
	const hints = (el) => {
		let h = '';
		const role = attr(el, 'role');
		if (role) h += '[hint:role=' + role.toLowerCase() + ']';
		const ce = attr(el, 'contenteditable');
		if (ce && ce.toLowerCase() !== 'false') h += '[hint:contenteditable=true]';
		const pop = attr(el, 'aria-haspopup');
		if (pop) h += '[hint:aria-haspopup=' + pop.toLowerCase() + ']';
		const exp = attr(el, 'aria-expanded');
		if (exp) h += '[hint:aria-expanded=' + exp.toLowerCase() + ']';
		const ctl = attr(el, 'aria-controls');
		if (ctl) h += '[hint:aria-controls=' + ctl + ']';
		return h;
	};

	const out = [];
	for (const el of document.querySelectorAll('*')) {
		let testName = '', testValue = '';
		for (const name of testAttrs) {
			const v = attr(el, name);
			if (v) { testName = name; testValue = v; break; }
		}

		let label = '';
		const id = attr(el, 'id');
		if (id) {
			const l = document.querySelector('label[for=' + CSS.escape(id) + ']');
			if (l) label = norm(txt(l));
		}
		if (!label) {
			const pl = el.closest('label');
			if (pl) label = norm(txt(pl));
		}

		let surrounding = norm(
			txt(el.parentElement) + ' ' +
			txt(el.previousElementSibling) + ' ' +
			txt(el.nextElementSibling));
		const h = hints(el);
		if (h) surrounding = surrounding ? surrounding + ' ' + h : h;

		let formKey = '';
		const form = el.closest('form');
		if (form) {
			const fid = attr(form, 'id');
			const fname = attr(form, 'name');
			const faction = attr(form, 'action');
			if (fid) formKey = 'id:' + fid;
			else if (fname) formKey = 'name:' + fname;
			else if (faction) formKey = 'action:' + faction;
			else formKey = 'form';
		}

		out.push({
			tag: el.tagName.toLowerCase(),
			type: attr(el, 'type'),
			id: id,
			name: attr(el, 'name'),
			classes: attr(el, 'class'),
			placeholder: attr(el, 'placeholder'),
			aria: attr(el, 'aria-label'),
			title: attr(el, 'title'),
			label: label,
			surrounding: surrounding,
			formKey: formKey,
			testName: testName,
			testValue: testValue,
		});
	}
	return out;
}`

// Mapper collects candidate descriptors from a live Rod page. Descriptors
// are extracted in a single page evaluation and zipped by index with the
// corresponding live element handles.
type Mapper struct {
	page           *rod.Page
	testAttributes []string
}

// NewMapper builds a mapper for page. A nil whitelist uses the default
// test-attribute set; an empty one disables test-attribute detection.
func NewMapper(page *rod.Page, testAttributes []string) *Mapper {
	if testAttributes == nil {
		testAttributes = DefaultTestAttributes
	}
	return &Mapper{page: page, testAttributes: testAttributes}
}

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

// Collect returns one candidate per element on the page, in document order.
func (m *Mapper) Collect(ctx context.Context) ([]match.Candidate, error) {
	page := m.page.Context(ctx)

	res, err := page.Eval(collectScript, m.testAttributes)
	if err != nil {
		return nil, fmt.Errorf("driver: extract descriptors: %w", err)
	}

	elements, err := page.Elements("*")
	if err != nil {
		return nil, fmt.Errorf("driver: collect elements: %w", err)
	}

	rows := res.Value.Arr()
	if len(rows) != len(elements) {
		return nil, &ErrInternalInconsistency{
			Reason: fmt.Sprintf("descriptor count %d does not match element count %d",
				len(rows), len(elements)),
		}
	}

	out := make([]match.Candidate, 0, len(rows))
	for i, row := range rows {
		info := &match.Element{
			Tag:         row.Get("tag").Str(),
			Type:        row.Get("type").Str(),
			ID:          row.Get("id").Str(),
			Name:        row.Get("name").Str(),
			Classes:     row.Get("classes").Str(),
			Placeholder: row.Get("placeholder").Str(),
			AriaLabel:   row.Get("aria").Str(),
			Title:       row.Get("title").Str(),
			Label:       row.Get("label").Str(),
			Surrounding: row.Get("surrounding").Str(),
			FormKey:     row.Get("formKey").Str(),
			TestAttr:    row.Get("testName").Str(),
			TestValue:   row.Get("testValue").Str(),
		}
		out = append(out, match.Candidate{Info: info, Node: elements[i]})
	}
	return out, nil
}
