package planner

import (
	"github.com/aretw0/shrdlite/pkg/domain"
)

// Goal evaluates a DNF formula against world states.
type Goal struct {
	Formula domain.DNF
}

// Satisfied reports whether some conjunction of the formula holds in w.
func (g Goal) Satisfied(w *domain.WorldState) bool {
	for _, conj := range g.Formula {
		all := true
		for _, lit := range conj {
			if !LiteralHolds(lit, w) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// LiteralHolds evaluates one literal in w. A binary relation involving
// the held object does not hold yet: the arm must place the object down
// before the relation is observable.
func LiteralHolds(lit domain.Literal, w *domain.WorldState) bool {
	holds := literalHolds(lit, w)
	if lit.Negative {
		return !holds
	}
	return holds
}

func literalHolds(lit domain.Literal, w *domain.WorldState) bool {
	if lit.Relation == domain.RelHolding {
		return w.Holding == lit.Args[0]
	}

	a, b := lit.Args[0], lit.Args[1]
	if w.Holding != "" && (w.Holding == a || w.Holding == b) {
		return false
	}

	switch lit.Relation {
	case domain.RelOntop, domain.RelInside:
		if b == domain.FloorID {
			_, row, ok := w.Position(a)
			return ok && row == 0
		}
		ca, ra, oka := w.Position(a)
		cb, rb, okb := w.Position(b)
		return oka && okb && ca == cb && ra == rb+1

	case domain.RelAbove:
		ca, ra, oka := w.Position(a)
		cb, rb, okb := w.Position(b)
		return oka && okb && ca == cb && ra > rb

	case domain.RelUnder:
		ca, ra, oka := w.Position(a)
		cb, rb, okb := w.Position(b)
		return oka && okb && ca == cb && ra < rb

	case domain.RelLeftOf:
		ca, _, oka := w.Position(a)
		cb, _, okb := w.Position(b)
		return oka && okb && ca < cb

	case domain.RelRightOf:
		ca, _, oka := w.Position(a)
		cb, _, okb := w.Position(b)
		return oka && okb && ca > cb

	case domain.RelBeside:
		ca, _, oka := w.Position(a)
		cb, _, okb := w.Position(b)
		return oka && okb && (ca == cb+1 || cb == ca+1)
	}

	return false
}
