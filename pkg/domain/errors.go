package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoParse is returned when the parser produced no parse at all.
var ErrNoParse = errors.New("unable to parse the utterance")

// ErrNoMatchingObject is returned when a referring expression resolves to
// zero identifiers in the current world.
var ErrNoMatchingObject = errors.New("no object matches the description")

// ErrNoInterpretation is returned when every candidate pair violates a
// physical law, or the quantifier combination is illegal.
var ErrNoInterpretation = errors.New("no valid interpretation")

// ErrWorldNotFound is returned when a world ID cannot be found in the store.
var ErrWorldNotFound = errors.New("world not found")

// Candidate identifies one possible referent of an ambiguous "the".
type Candidate struct {
	ID string
	Object
	// Stack is the 1-based column of the candidate, or 0 when it is held.
	Stack int
}

// AmbiguityError reports a "the"-quantified expression that resolved to
// more than one candidate. Its message enumerates the candidates so the
// user can clarify.
type AmbiguityError struct {
	Candidates []Candidate
}

func (e *AmbiguityError) Error() string {
	parts := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		where := "in the arm"
		if c.Stack > 0 {
			where = fmt.Sprintf("stack %d", c.Stack)
		}
		parts[i] = fmt.Sprintf("the %s (%s)", c.Describe(), where)
	}
	return "ambiguous reference, did you mean " + strings.Join(parts, " or ") + "?"
}

// NewAmbiguityError builds an AmbiguityError for the given identifiers,
// resolving attributes and stack positions against the world.
func NewAmbiguityError(w *WorldState, ids []string) *AmbiguityError {
	e := &AmbiguityError{}
	for _, id := range ids {
		obj, _ := w.Object(id)
		c := Candidate{ID: id, Object: obj}
		if col, _, ok := w.Position(id); ok {
			c.Stack = col + 1
		}
		e.Candidates = append(e.Candidates, c)
	}
	return e
}
