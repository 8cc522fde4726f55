package match

import "testing"

func TestSnapshot_IdentityKeyedHandles(t *testing.T) {
	// Attribute-equal descriptors must map to distinct handles.
	a := &Element{Tag: "input", Type: "text", Label: "Login"}
	b := &Element{Tag: "input", Type: "text", Label: "Login"}

	snap := NewSnapshot([]Candidate{
		{Info: a, Node: "node-a"},
		{Info: b, Node: "node-b"},
	})

	ha, ok := snap.HandleFor(a)
	if !ok || ha != "node-a" {
		t.Errorf("HandleFor(a) = %v, %v", ha, ok)
	}
	hb, ok := snap.HandleFor(b)
	if !ok || hb != "node-b" {
		t.Errorf("HandleFor(b) = %v, %v", hb, ok)
	}

	// A value-equal copy is a different identity and must not resolve.
	copied := *a
	if _, ok := snap.HandleFor(&copied); ok {
		t.Error("value-equal copy must not resolve to a handle")
	}
}

func TestSnapshot_OrderPreserved(t *testing.T) {
	first := &Element{Tag: "input"}
	second := &Element{Tag: "button"}
	third := &Element{Tag: "a"}

	snap := NewSnapshot([]Candidate{
		{Info: first}, {Info: second}, {Info: third},
	})

	got := snap.Candidates()
	if len(got) != 3 || got[0] != first || got[1] != second || got[2] != third {
		t.Errorf("candidate order not preserved: %v", got)
	}
}

func TestSnapshot_Empty(t *testing.T) {
	snap := NewSnapshot(nil)
	if !snap.Empty() || snap.Len() != 0 {
		t.Error("nil-pair snapshot should be empty")
	}

	var nilSnap *Snapshot
	if !nilSnap.Empty() {
		t.Error("nil snapshot should report empty")
	}
}

func TestSnapshot_DropsNilDescriptors(t *testing.T) {
	e := &Element{Tag: "input"}
	snap := NewSnapshot([]Candidate{{Info: nil, Node: 1}, {Info: e, Node: 2}})
	if snap.Len() != 1 {
		t.Errorf("Len = %d, want 1", snap.Len())
	}
}

func TestElement_ClassTokens(t *testing.T) {
	e := &Element{Classes: "  btn btn-primary   css-1q2w3e "}
	tokens := e.ClassTokens()
	if len(tokens) != 3 {
		t.Fatalf("tokens = %v", tokens)
	}
	if !e.HasClassToken("btn-primary") {
		t.Error("HasClassToken(btn-primary) = false")
	}
	if e.HasClassToken("btn-prim") {
		t.Error("HasClassToken must match whole tokens, not substrings")
	}
}
