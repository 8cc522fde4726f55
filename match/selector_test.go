package match

import (
	"errors"
	"testing"

	"github.com/HearthWarrio/intentium/intent"
)

func snapshotOf(elements ...*Element) *Snapshot {
	pairs := make([]Candidate, len(elements))
	for i, e := range elements {
		pairs[i] = Candidate{Info: e, Node: i}
	}
	return NewSnapshot(pairs)
}

func TestSelect_ElectsLoginField(t *testing.T) {
	login := &Element{Tag: "input", Type: "text", Name: "login"}
	search := &Element{Tag: "input", Type: "text", Name: "search"}
	password := &Element{Tag: "input", Type: "password", Name: "password"}

	sel := NewSelector(nil)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(login, search, password))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != login {
		t.Errorf("elected %+v, want the login input", m.Element)
	}
	if m.Score <= 0 {
		t.Errorf("score %v, want positive", m.Score)
	}
}

func TestSelect_AmbiguousTwins(t *testing.T) {
	a := &Element{Tag: "input", Type: "text", Label: "Login"}
	b := &Element{Tag: "input", Type: "text", Label: "Login"}

	sel := NewSelector(nil)
	_, err := sel.Select(intent.RoleLoginField, snapshotOf(a, b))

	var ambiguous *ErrAmbiguousMatch
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected ErrAmbiguousMatch, got %v", err)
	}
	if ambiguous.Role != intent.RoleLoginField {
		t.Errorf("error role = %v", ambiguous.Role)
	}
}

func TestSelect_EmptySnapshot(t *testing.T) {
	sel := NewSelector(nil)
	if _, err := sel.Select(intent.RoleLoginField, snapshotOf()); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestSelect_NoSuitableMatch(t *testing.T) {
	sel := NewSelector(nil)
	snap := snapshotOf(&Element{Tag: "footer"}, &Element{Tag: "nav"})

	_, err := sel.Select(intent.RoleLoginField, snap)
	var nomatch *ErrNoSuitableMatch
	if !errors.As(err, &nomatch) {
		t.Fatalf("expected ErrNoSuitableMatch, got %v", err)
	}
}

func TestSelect_TestAttributeTierWinsOverScore(t *testing.T) {
	// The plain input has stronger wording, but the tagged one sits in an
	// earlier sub-tier and wins as long as it scores positive.
	wordy := &Element{Tag: "input", Type: "text", Name: "login", Placeholder: "login email username"}
	tagged := &Element{Tag: "input", Type: "text", TestAttr: "data-testid", TestValue: "login-input"}

	sel := NewSelector(nil)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(wordy, tagged))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != tagged {
		t.Errorf("elected %+v, want the data-testid candidate", m.Element)
	}
}

func TestSelect_TierFallthroughOnNonPositiveBest(t *testing.T) {
	// The restriction narrows to a candidate that hard-fails the scorer; the
	// restricted tier yields no positive score and evaluation must fall
	// through to a later tier instead of raising.
	hidden := &Element{Tag: "input", Type: "hidden", Name: "login"}
	login := &Element{Tag: "input", Type: "text", Name: "login"}

	h := &AttrContains{
		Name:            "hidden-only",
		Role:            intent.RoleLoginField,
		Attrs:           []Attr{AttrType},
		Needles:         []string{"hidden"},
		RestrictMatches: true,
	}

	sel := NewSelector(nil, h)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(hidden, login))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != login {
		t.Errorf("elected %+v, want the visible login input", m.Element)
	}
}

func TestSelect_AmbiguityIsTierLocal(t *testing.T) {
	// Two equal-scoring elements in a tier that never succeeds must not
	// raise: the tie check is local to the tier being evaluated.
	navA := &Element{Tag: "nav", TestAttr: "data-qa", TestValue: "password-hint-a"}
	navB := &Element{Tag: "nav", TestAttr: "data-qa", TestValue: "password-hint-b"}
	pwd := &Element{Tag: "input", Type: "password", Name: "password"}

	sel := NewSelector(nil)
	m, err := sel.Select(intent.RolePasswordField, snapshotOf(navA, navB, pwd))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != pwd {
		t.Errorf("elected %+v, want the password input", m.Element)
	}
}

func TestSelect_RestrictionNarrows(t *testing.T) {
	first := &Element{Tag: "input", Type: "text", Name: "login", FormKey: "id:signup"}
	second := &Element{Tag: "input", Type: "text", Name: "login", FormKey: "id:signin"}

	h := &AttrContains{
		Name:            "signin-form-only",
		Role:            intent.RoleLoginField,
		Attrs:           []Attr{AttrFormKey},
		Needles:         []string{"signin"},
		RestrictMatches: true,
	}

	sel := NewSelector(nil, h)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(first, second))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != second {
		t.Errorf("restriction should leave only the signin-form input, elected %+v", m.Element)
	}
}

func TestSelect_RestrictionFailOpen(t *testing.T) {
	login := &Element{Tag: "input", Type: "text", Name: "login"}

	// Restriction that matches nothing must be ignored, not fail resolution.
	h := &AttrContains{
		Name:            "never-matches",
		Role:            intent.RoleLoginField,
		Attrs:           []Attr{AttrID},
		Needles:         []string{"no-such-id"},
		RestrictMatches: true,
	}

	sel := NewSelector(nil, h)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(login))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != login {
		t.Errorf("elected %+v, want the login input", m.Element)
	}
}

func TestSelect_PreferBreaksWouldBeTie(t *testing.T) {
	// Attribute-equal twins normally tie; preferring one by form key puts it
	// alone in the preferred tier.
	a := &Element{Tag: "input", Type: "text", Label: "Login", FormKey: "id:main"}
	b := &Element{Tag: "input", Type: "text", Label: "Login", FormKey: "id:modal"}

	h := &AttrContains{
		Name:          "prefer-main-form",
		Role:          intent.RoleLoginField,
		Attrs:         []Attr{AttrFormKey},
		Needles:       []string{"main"},
		PreferMatches: true,
	}

	sel := NewSelector(nil, h)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(a, b))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != a {
		t.Errorf("elected %+v, want the main-form input", m.Element)
	}
}

func TestSelect_ScoreAdjustment(t *testing.T) {
	a := &Element{Tag: "input", Type: "text", Label: "Login", ID: "first"}
	b := &Element{Tag: "input", Type: "text", Label: "Login", ID: "second"}

	h := &AttrContains{
		Name:    "boost-second",
		Role:    intent.RoleLoginField,
		Attrs:   []Attr{AttrID},
		Needles: []string{"second"},
		Boost:   0.5,
	}

	sel := NewSelector(nil, h)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(a, b))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != b {
		t.Errorf("boost should elect the second input, got %+v", m.Element)
	}
}

func TestSelect_HintPreference(t *testing.T) {
	div := &Element{Tag: "div", Surrounding: "Login [hint:role=textbox]"}
	span := &Element{Tag: "span", Surrounding: "Login"}

	sel := NewSelector(nil)
	m, err := sel.Select(intent.RoleLoginField, snapshotOf(span, div))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.Element != div {
		t.Errorf("elected %+v, want the hinted div", m.Element)
	}
}

func TestSelect_Deterministic(t *testing.T) {
	login := &Element{Tag: "input", Type: "text", Name: "login"}
	email := &Element{Tag: "input", Type: "email", Name: "email", Label: "Email"}
	snap := snapshotOf(login, email)

	sel := NewSelector(nil)
	first, err := sel.Select(intent.RoleLoginField, snap)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	for i := 0; i < 10; i++ {
		m, err := sel.Select(intent.RoleLoginField, snap)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if m.Element != first.Element || m.Score != first.Score {
			t.Fatalf("resolution changed between runs: %+v vs %+v", m, first)
		}
	}
}
