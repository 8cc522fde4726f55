// Package locator synthesizes stable XPath and CSS locators for elements
// elected by the matching engine. Both grammars prefer semantically
// meaningful anchors (id, test attributes, name, aria-label, placeholder,
// title) and fall back through class tokens, label adjacency, ordinals and
// finally a bare tag. Generated ("hashed") class names are skipped unless
// explicitly allowed as a last resort.
package locator

import (
	"strconv"
	"strings"

	"github.com/HearthWarrio/intentium/match"
)

// Builder derives locators from an element descriptor and the snapshot it
// was elected from. Uniqueness of every anchor is checked against the
// snapshot, scoped to the element's enclosing form when one is known.
//
// The zero value is ready to use and never anchors on hashed class tokens.
type Builder struct {
	// AllowHashedClasses permits a unique hashed class token as a strict
	// last resort, after ordinals and just before the bare-tag fallback.
	AllowHashedClasses bool
}

// XPath builds a best-effort stable XPath for e.
//
// Anchor order: id, test attribute, name/aria-label/placeholder/title,
// the same attributes combined with type, a unique non-hashed class token,
// label adjacency, ordinal within context, a unique hashed class token
// (only when allowed), bare //tag.
func (b Builder) XPath(e *match.Element, snap *match.Snapshot) string {
	tag := safeTag(e)
	form := parseFormScope(e.FormKey)

	if strings.TrimSpace(e.ID) != "" {
		return "//*[@id=" + XPathLiteral(e.ID) + "]"
	}

	if e.TestAttr != "" && e.TestValue != "" &&
		uniqueInContext(snap, tag, e.FormKey,
			anchor{getTestAttr, e.TestAttr},
			anchor{getTestValue, e.TestValue}) {
		return form.xpath("//" + tag + "[@" + e.TestAttr + "=" + XPathLiteral(e.TestValue) + "]")
	}

	if uniqueInContext(snap, tag, e.FormKey, anchor{getName, e.Name}) {
		return form.xpath("//" + tag + "[@name=" + XPathLiteral(e.Name) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getAriaLabel, e.AriaLabel}) {
		return form.xpath("//" + tag + "[@aria-label=" + XPathLiteral(e.AriaLabel) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getPlaceholder, e.Placeholder}) {
		return form.xpath("//" + tag + "[@placeholder=" + XPathLiteral(e.Placeholder) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getTitle, e.Title}) {
		return form.xpath("//" + tag + "[@title=" + XPathLiteral(e.Title) + "]")
	}

	if uniqueInContext(snap, tag, e.FormKey, anchor{getName, e.Name}, anchor{getType, e.Type}) {
		return form.xpath("//" + tag +
			"[@name=" + XPathLiteral(e.Name) + " and @type=" + XPathLiteral(e.Type) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getAriaLabel, e.AriaLabel}, anchor{getType, e.Type}) {
		return form.xpath("//" + tag +
			"[@aria-label=" + XPathLiteral(e.AriaLabel) + " and @type=" + XPathLiteral(e.Type) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getPlaceholder, e.Placeholder}, anchor{getType, e.Type}) {
		return form.xpath("//" + tag +
			"[@placeholder=" + XPathLiteral(e.Placeholder) + " and @type=" + XPathLiteral(e.Type) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getTitle, e.Title}, anchor{getType, e.Type}) {
		return form.xpath("//" + tag +
			"[@title=" + XPathLiteral(e.Title) + " and @type=" + XPathLiteral(e.Type) + "]")
	}

	if token := pickUniqueClassToken(snap, tag, e.FormKey, e.Classes, false); token != "" {
		return form.xpath("//" + tag + "[" + classPredicate(token) + "]")
	}

	if label := normalizeText(e.Label); label != "" {
		return form.xpath("//label[normalize-space(.)=" + XPathLiteral(label) + "]/following::" + tag + "[1]")
	}

	base := "//" + tag
	if strings.TrimSpace(e.Type) != "" && tag == "input" {
		base += "[@type=" + XPathLiteral(e.Type) + "]"
	}
	if ordinal := ordinalInContext(snap, e, tag, e.FormKey, e.Type); ordinal > 0 {
		return "(" + form.xpath(base) + ")[" + strconv.Itoa(ordinal) + "]"
	}

	if b.AllowHashedClasses {
		if token := pickUniqueClassToken(snap, tag, e.FormKey, e.Classes, true); token != "" {
			return form.xpath("//" + tag + "[" + classPredicate(token) + "]")
		}
	}

	return form.xpath("//" + tag)
}

// CSS builds a best-effort stable CSS selector for e.
//
// Anchor order mirrors XPath, except that CSS has no label-adjacency or
// ordinal step and instead tries type uniqueness before the hashed-class
// last resort and the bare tag fallback.
func (b Builder) CSS(e *match.Element, snap *match.Snapshot) string {
	tag := safeTag(e)
	form := parseFormScope(e.FormKey)

	if strings.TrimSpace(e.ID) != "" {
		return "#" + CSSEscapeIdentifier(e.ID)
	}

	if e.TestAttr != "" && e.TestValue != "" &&
		uniqueInContext(snap, tag, e.FormKey,
			anchor{getTestAttr, e.TestAttr},
			anchor{getTestValue, e.TestValue}) {
		return form.css(tag + "[" + e.TestAttr + "=" + CSSAttrLiteral(e.TestValue) + "]")
	}

	if uniqueInContext(snap, tag, e.FormKey, anchor{getName, e.Name}) {
		return form.css(tag + "[name=" + CSSAttrLiteral(e.Name) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getAriaLabel, e.AriaLabel}) {
		return form.css(tag + "[aria-label=" + CSSAttrLiteral(e.AriaLabel) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getPlaceholder, e.Placeholder}) {
		return form.css(tag + "[placeholder=" + CSSAttrLiteral(e.Placeholder) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getTitle, e.Title}) {
		return form.css(tag + "[title=" + CSSAttrLiteral(e.Title) + "]")
	}

	if uniqueInContext(snap, tag, e.FormKey, anchor{getName, e.Name}, anchor{getType, e.Type}) {
		return form.css(tag + "[name=" + CSSAttrLiteral(e.Name) + "][type=" + CSSAttrLiteral(e.Type) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getAriaLabel, e.AriaLabel}, anchor{getType, e.Type}) {
		return form.css(tag + "[aria-label=" + CSSAttrLiteral(e.AriaLabel) + "][type=" + CSSAttrLiteral(e.Type) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getPlaceholder, e.Placeholder}, anchor{getType, e.Type}) {
		return form.css(tag + "[placeholder=" + CSSAttrLiteral(e.Placeholder) + "][type=" + CSSAttrLiteral(e.Type) + "]")
	}
	if uniqueInContext(snap, tag, e.FormKey, anchor{getTitle, e.Title}, anchor{getType, e.Type}) {
		return form.css(tag + "[title=" + CSSAttrLiteral(e.Title) + "][type=" + CSSAttrLiteral(e.Type) + "]")
	}

	if token := pickUniqueClassToken(snap, tag, e.FormKey, e.Classes, false); token != "" {
		return form.css(tag + "." + CSSEscapeIdentifier(token))
	}

	if strings.TrimSpace(e.Type) != "" &&
		uniqueInContext(snap, tag, e.FormKey, anchor{getType, e.Type}) {
		return form.css(tag + "[type=" + CSSAttrLiteral(e.Type) + "]")
	}

	if b.AllowHashedClasses {
		if token := pickUniqueClassToken(snap, tag, e.FormKey, e.Classes, true); token != "" {
			return form.css(tag + "." + CSSEscapeIdentifier(token))
		}
	}

	return form.css(tag)
}

// IsBareXPath reports whether q is the generic //tag fallback for tag.
// Generic locators carry no identity and are exempt from consistency checks.
func IsBareXPath(q, tag string) bool {
	return q == "//"+strings.ToLower(strings.TrimSpace(tag))
}

// IsBareCSS reports whether q is the generic bare-tag selector for tag.
func IsBareCSS(q, tag string) bool {
	return q == strings.ToLower(strings.TrimSpace(tag))
}

func classPredicate(token string) string {
	return "contains(concat(' ', normalize-space(@class), ' '), " +
		XPathLiteral(" "+token+" ") + ")"
}

func safeTag(e *match.Element) string {
	if e != nil {
		if tag := strings.ToLower(strings.TrimSpace(e.Tag)); tag != "" {
			return tag
		}
	}
	return "div"
}

// formScope is the addressable part of a form key. Keys like "action:…" or
// the bare "form" marker still scope uniqueness checks (via the raw form
// key) but produce no selector prefix because the form cannot be addressed
// by id or name.
type formScope struct {
	kind  string // "id", "name", or empty
	value string
}

func parseFormScope(formKey string) formScope {
	if v, ok := strings.CutPrefix(formKey, "id:"); ok && v != "" {
		return formScope{kind: "id", value: v}
	}
	if v, ok := strings.CutPrefix(formKey, "name:"); ok && v != "" {
		return formScope{kind: "name", value: v}
	}
	return formScope{}
}

func (f formScope) xpath(xp string) string {
	switch f.kind {
	case "id":
		return "//form[@id=" + XPathLiteral(f.value) + "]" + ensureDoubleSlash(xp)
	case "name":
		return "//form[@name=" + XPathLiteral(f.value) + "]" + ensureDoubleSlash(xp)
	}
	return xp
}

func (f formScope) css(sel string) string {
	switch f.kind {
	case "id":
		return "form#" + CSSEscapeIdentifier(f.value) + " " + sel
	case "name":
		return "form[name=" + CSSAttrLiteral(f.value) + "] " + sel
	}
	return sel
}

func ensureDoubleSlash(xp string) string {
	switch {
	case xp == "":
		return ""
	case strings.HasPrefix(xp, "//"):
		return xp
	case strings.HasPrefix(xp, "/"):
		return "/" + xp
	}
	return "//" + xp
}

// anchor pairs an attribute getter with the value the target carries.
type anchor struct {
	get  func(*match.Element) string
	want string
}

func getName(e *match.Element) string        { return e.Name }
func getAriaLabel(e *match.Element) string   { return e.AriaLabel }
func getPlaceholder(e *match.Element) string { return e.Placeholder }
func getTitle(e *match.Element) string       { return e.Title }
func getType(e *match.Element) string        { return e.Type }
func getTestAttr(e *match.Element) string    { return e.TestAttr }
func getTestValue(e *match.Element) string   { return e.TestValue }

// uniqueInContext reports whether exactly one candidate in the snapshot
// shares the tag, the form key and every anchored attribute value. Blank
// anchor values never anchor.
func uniqueInContext(snap *match.Snapshot, tag, formKey string, anchors ...anchor) bool {
	if snap == nil || len(anchors) == 0 {
		return false
	}
	for _, a := range anchors {
		if strings.TrimSpace(a.want) == "" {
			return false
		}
	}
	count := 0
	for _, d := range snap.Candidates() {
		if !inContext(d, tag, formKey) {
			continue
		}
		matched := true
		for _, a := range anchors {
			if a.get(d) != a.want {
				matched = false
				break
			}
		}
		if matched {
			count++
			if count > 1 {
				return false
			}
		}
	}
	return count == 1
}

// ordinalInContext returns the 1-based position of target among candidates
// with the same tag and form key (and type, for inputs with a type), or -1
// when the target is not found.
func ordinalInContext(snap *match.Snapshot, target *match.Element, tag, formKey, typ string) int {
	if snap == nil || target == nil {
		return -1
	}
	byType := strings.TrimSpace(typ) != "" && tag == "input"
	ordinal := 0
	for _, d := range snap.Candidates() {
		if !inContext(d, tag, formKey) {
			continue
		}
		if byType && d.Type != typ {
			continue
		}
		ordinal++
		if d == target {
			return ordinal
		}
	}
	return -1
}

// pickUniqueClassToken returns the first class token of the element that is
// unique within the context. Non-hashed tokens are always considered first;
// hashed tokens only when the caller allows the last resort.
func pickUniqueClassToken(snap *match.Snapshot, tag, formKey, classes string, allowHashed bool) string {
	if snap == nil || strings.TrimSpace(classes) == "" {
		return ""
	}
	tokens := strings.Fields(classes)

	for _, token := range tokens {
		if IsLikelyHashedClassToken(token) {
			continue
		}
		if uniqueClassTokenInContext(snap, tag, formKey, token) {
			return token
		}
	}

	if !allowHashed {
		return ""
	}
	for _, token := range tokens {
		if !IsLikelyHashedClassToken(token) {
			continue
		}
		if uniqueClassTokenInContext(snap, tag, formKey, token) {
			return token
		}
	}
	return ""
}

func uniqueClassTokenInContext(snap *match.Snapshot, tag, formKey, token string) bool {
	count := 0
	for _, d := range snap.Candidates() {
		if !inContext(d, tag, formKey) {
			continue
		}
		if d.HasClassToken(token) {
			count++
			if count > 1 {
				return false
			}
		}
	}
	return count == 1
}

func inContext(d *match.Element, tag, formKey string) bool {
	return d != nil && strings.EqualFold(d.Tag, tag) && formMatches(formKey, d.FormKey)
}

// formMatches treats a blank expected key as "outside any form": it matches
// only candidates that are themselves outside a form.
func formMatches(expected, actual string) bool {
	if strings.TrimSpace(expected) == "" {
		return strings.TrimSpace(actual) == ""
	}
	return expected == actual
}
