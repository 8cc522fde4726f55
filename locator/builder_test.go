package locator

import (
	"testing"

	"github.com/HearthWarrio/intentium/match"
)

func snapshotOf(elements ...*match.Element) *match.Snapshot {
	pairs := make([]match.Candidate, len(elements))
	for i, e := range elements {
		pairs[i] = match.Candidate{Info: e, Node: i}
	}
	return match.NewSnapshot(pairs)
}

func TestBuilder_IDShortCircuitsBothGrammars(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "password", ID: "pwd1", Name: "password"}
	other := &match.Element{Tag: "input", Type: "text", Name: "login"}
	snap := snapshotOf(target, other)

	var b Builder
	if got := b.XPath(target, snap); got != "//*[@id='pwd1']" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "#pwd1" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_TestAttributeAnchor(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "text", TestAttr: "data-testid", TestValue: "login-input"}
	other := &match.Element{Tag: "input", Type: "text"}
	snap := snapshotOf(target, other)

	var b Builder
	if got := b.XPath(target, snap); got != "//input[@data-testid='login-input']" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "input[data-testid='login-input']" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_NameAnchor(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "text", Name: "login"}
	other := &match.Element{Tag: "input", Type: "password", Name: "password"}
	snap := snapshotOf(target, other)

	var b Builder
	if got := b.XPath(target, snap); got != "//input[@name='login']" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "input[name='login']" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_NameCollisionFallsToNameAndType(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "text", Name: "login"}
	shadow := &match.Element{Tag: "input", Type: "hidden", Name: "login"}
	snap := snapshotOf(target, shadow)

	var b Builder
	if got := b.XPath(target, snap); got != "//input[@name='login' and @type='text']" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "input[name='login'][type='text']" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_FormScopePrefixesAndScopesUniqueness(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "text", Name: "login", FormKey: "id:signin"}
	twin := &match.Element{Tag: "input", Type: "text", Name: "login", FormKey: "id:signup"}
	snap := snapshotOf(target, twin)

	var b Builder
	if got := b.XPath(target, snap); got != "//form[@id='signin']//input[@name='login']" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "form#signin input[name='login']" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_FormNamePrefix(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "text", Name: "login", FormKey: "name:auth"}
	twin := &match.Element{Tag: "input", Type: "text", Name: "login"}
	snap := snapshotOf(target, twin)

	var b Builder
	if got := b.XPath(target, snap); got != "//form[@name='auth']//input[@name='login']" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "form[name='auth'] input[name='login']" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_ActionFormKeyScopesWithoutPrefix(t *testing.T) {
	// A form addressable only by action still bounds the uniqueness scope,
	// but produces no prefix because the form has no id or name.
	target := &match.Element{Tag: "input", Type: "text", Name: "login", FormKey: "action:/login"}
	outside := &match.Element{Tag: "input", Type: "text", Name: "login"}
	snap := snapshotOf(target, outside)

	var b Builder
	if got := b.XPath(target, snap); got != "//input[@name='login']" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "input[name='login']" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_NonHashedClassToken(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "text", Classes: "css-a1b2c3 login-box"}
	other := &match.Element{Tag: "input", Type: "text"}
	snap := snapshotOf(target, other)

	var b Builder
	wantXPath := "//input[contains(concat(' ', normalize-space(@class), ' '), ' login-box ')]"
	if got := b.XPath(target, snap); got != wantXPath {
		t.Errorf("XPath = %q", got)
	}
	if got := b.CSS(target, snap); got != "input.login-box" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_LabelAdjacencyXPathOnly(t *testing.T) {
	target := &match.Element{Tag: "input", Label: "  Login   name "}
	twin := &match.Element{Tag: "input"}
	snap := snapshotOf(target, twin)

	var b Builder
	if got := b.XPath(target, snap); got != "//label[normalize-space(.)='Login name']/following::input[1]" {
		t.Errorf("XPath = %q", got)
	}
	// CSS has no label step and nothing else to anchor on.
	if got := b.CSS(target, snap); got != "input" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_OrdinalFallback(t *testing.T) {
	// Hashed-only classes shared by both twins anchor nothing; the XPath
	// grammar falls back to the 1-based ordinal within the typed context.
	first := &match.Element{Tag: "input", Type: "text", Classes: "css-x1y2z3"}
	second := &match.Element{Tag: "input", Type: "text", Classes: "css-x1y2z3"}
	divider := &match.Element{Tag: "hr"}
	snap := snapshotOf(first, divider, second)

	var b Builder
	if got := b.XPath(second, snap); got != "(//input[@type='text'])[2]" {
		t.Errorf("XPath = %q", got)
	}
	if got := b.XPath(first, snap); got != "(//input[@type='text'])[1]" {
		t.Errorf("XPath = %q", got)
	}
}

func TestBuilder_OrdinalScopedToForm(t *testing.T) {
	outside := &match.Element{Tag: "input", Type: "text"}
	target := &match.Element{Tag: "input", Type: "text", FormKey: "id:signin"}
	snap := snapshotOf(outside, target)

	var b Builder
	if got := b.XPath(target, snap); got != "(//form[@id='signin']//input[@type='text'])[1]" {
		t.Errorf("XPath = %q", got)
	}
}

func TestBuilder_HashedClassLastResortCSS(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "text", Classes: "css-a1b2c3"}
	other := &match.Element{Tag: "input", Type: "text", Classes: "css-d4e5f6"}
	snap := snapshotOf(target, other)

	var b Builder
	if got := b.CSS(target, snap); got != "input" {
		t.Errorf("hashed tokens must be skipped by default, CSS = %q", got)
	}

	b.AllowHashedClasses = true
	if got := b.CSS(target, snap); got != "input.css-a1b2c3" {
		t.Errorf("CSS with hashed allowed = %q", got)
	}
}

func TestBuilder_TypeUniquenessCSSOnly(t *testing.T) {
	target := &match.Element{Tag: "input", Type: "password"}
	other := &match.Element{Tag: "input", Type: "text"}
	another := &match.Element{Tag: "input", Type: "text"}
	snap := snapshotOf(target, other, another)

	var b Builder
	if got := b.CSS(target, snap); got != "input[type='password']" {
		t.Errorf("CSS = %q", got)
	}
}

func TestBuilder_BareTagFallback(t *testing.T) {
	target := &match.Element{Tag: "section"}
	twin := &match.Element{Tag: "section"}
	snap := snapshotOf(target, twin)

	var b Builder
	xp := b.XPath(target, snap)
	css := b.CSS(target, snap)
	// Two anonymous twins: the ordinal step still disambiguates in XPath.
	if xp != "(//section)[1]" {
		t.Errorf("XPath = %q", xp)
	}
	if css != "section" {
		t.Errorf("CSS = %q", css)
	}
	if !IsBareCSS(css, "section") {
		t.Error("IsBareCSS should recognize the fallback")
	}
	if IsBareXPath(xp, "section") {
		t.Error("an ordinal locator is not generic")
	}
	if !IsBareXPath("//section", "section") {
		t.Error("IsBareXPath should recognize //section")
	}
}

func TestBuilder_BlankValuesNeverAnchor(t *testing.T) {
	// Both candidates have blank names; the blank value must not count as a
	// "unique" shared attribute.
	target := &match.Element{Tag: "input", Type: "text"}
	twin := &match.Element{Tag: "input", Type: "text"}
	snap := snapshotOf(target, twin)

	var b Builder
	if got := b.XPath(target, snap); got != "(//input[@type='text'])[1]" {
		t.Errorf("XPath = %q", got)
	}
}

func TestBuilder_EmptyTagFallsBackToDiv(t *testing.T) {
	target := &match.Element{}
	snap := snapshotOf(target)

	var b Builder
	if got := b.XPath(target, snap); got != "(//div)[1]" {
		t.Errorf("XPath = %q", got)
	}
}
