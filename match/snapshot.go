package match

// Handle is an opaque reference to a live node, owned by the candidate
// source (*rod.Element for the driver, *html.Node for htmlsource). The match
// engine never inspects it.
type Handle any

// Candidate pairs a descriptor with its live-node handle.
type Candidate struct {
	Info *Element
	Node Handle
}

// Source supplies candidates for one page state. Collect may be called
// repeatedly; an empty result is valid and surfaces downstream as
// ErrNoCandidates, never as a crash.
type Source interface {
	Collect() ([]Candidate, error)
}

// Snapshot is an ordered candidate collection for one page state plus an
// identity-keyed lookup from descriptor to live handle. Ordering is stable
// for the snapshot's lifetime. A snapshot belongs to one execution context
// and must not be shared across concurrent callers.
type Snapshot struct {
	candidates []*Element
	handles    map[*Element]Handle
}

// NewSnapshot builds a snapshot from source candidates, preserving order.
// Pairs with a nil descriptor are dropped.
func NewSnapshot(pairs []Candidate) *Snapshot {
	s := &Snapshot{handles: make(map[*Element]Handle, len(pairs))}
	for _, p := range pairs {
		if p.Info == nil {
			continue
		}
		s.candidates = append(s.candidates, p.Info)
		s.handles[p.Info] = p.Node
	}
	return s
}

// Candidates returns the ordered descriptor list. Callers must not mutate it.
func (s *Snapshot) Candidates() []*Element {
	if s == nil {
		return nil
	}
	return s.candidates
}

// Len returns the number of candidates.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.candidates)
}

// Empty reports whether the snapshot holds no candidates.
func (s *Snapshot) Empty() bool { return s.Len() == 0 }

// HandleFor returns the live handle for the given descriptor identity.
// Lookup is by pointer: an attribute-equal copy of a snapshot descriptor
// will not match.
func (s *Snapshot) HandleFor(e *Element) (Handle, bool) {
	if s == nil || e == nil {
		return nil, false
	}
	h, ok := s.handles[e]
	return h, ok
}
