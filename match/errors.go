package match

import (
	"errors"
	"fmt"

	"github.com/HearthWarrio/intentium/intent"
)

// ErrNoCandidates is returned when selection runs against an empty snapshot.
var ErrNoCandidates = errors.New("match: no candidates in snapshot")

// ErrNoSuitableMatch is returned when every tier's best composite score is
// zero or below. Retrying over the same snapshot cannot change the outcome;
// callers recover by collecting a fresh snapshot after a context change.
type ErrNoSuitableMatch struct {
	Role intent.Role
}

func (e *ErrNoSuitableMatch) Error() string {
	return fmt.Sprintf("match: no suitable candidate for role %s (all scores <= 0)", e.Role)
}

// ErrAmbiguousMatch is returned when the two best candidates inside a
// succeeding tier share the exact same score. The tie is never broken
// arbitrarily.
type ErrAmbiguousMatch struct {
	Role       intent.Role
	Score      float64
	Best       *Element
	SecondBest *Element
}

func (e *ErrAmbiguousMatch) Error() string {
	return fmt.Sprintf(
		"match: ambiguous result for role %s: top two candidates share score %v (best: tag=%s id=%q name=%q, second: tag=%s id=%q name=%q)",
		e.Role, e.Score,
		tagOf(e.Best), idOf(e.Best), nameOf(e.Best),
		tagOf(e.SecondBest), idOf(e.SecondBest), nameOf(e.SecondBest),
	)
}

func tagOf(e *Element) string {
	if e == nil {
		return ""
	}
	return e.Tag
}

func idOf(e *Element) string {
	if e == nil {
		return ""
	}
	return e.ID
}

func nameOf(e *Element) string {
	if e == nil {
		return ""
	}
	return e.Name
}
