package planner

import (
	"github.com/aretw0/shrdlite/pkg/domain"
)

// Heuristic estimates the remaining actions to satisfy a DNF formula.
// Per conjunction it sums, per literal, the number of objects blocking
// the move; the estimate is the minimum over conjunctions, since any one
// of them suffices. Every counted blocker costs at least a pick and a
// drop to remove while the heuristic charges one, so the bound is
// admissible.
type Heuristic struct {
	Formula domain.DNF
}

// Estimate returns the lower bound for w.
func (h Heuristic) Estimate(w *domain.WorldState) float64 {
	best := -1
	for _, conj := range h.Formula {
		cost := 0
		for _, lit := range conj {
			cost += literalCost(lit, w)
		}
		if best < 0 || cost < best {
			best = cost
		}
	}
	if best < 0 {
		return 0
	}
	return float64(best)
}

func literalCost(lit domain.Literal, w *domain.WorldState) int {
	// Negated literals get no estimate.
	if lit.Negative {
		return 0
	}
	if LiteralHolds(lit, w) {
		return 0
	}

	switch lit.Relation {
	case domain.RelHolding:
		return blockersAbove(w, lit.Args[0])

	case domain.RelOntop, domain.RelInside:
		a, b := lit.Args[0], lit.Args[1]
		cost := blockersAbove(w, a)
		if b == domain.FloorID {
			cost += shortestStack(w)
		} else {
			cost += blockersAbove(w, b)
		}
		return cost

	case domain.RelAbove:
		return blockersAbove(w, lit.Args[0])

	case domain.RelUnder:
		return blockersAbove(w, lit.Args[1])

	case domain.RelLeftOf, domain.RelRightOf, domain.RelBeside:
		a := blockersAbove(w, lit.Args[0])
		b := blockersAbove(w, lit.Args[1])
		if a < b {
			return a
		}
		return b
	}
	return 0
}

// blockersAbove counts the objects stacked on top of id. A held object,
// the floor, and anything unplaced count zero.
func blockersAbove(w *domain.WorldState, id string) int {
	if id == domain.FloorID || id == w.Holding {
		return 0
	}
	col, row, ok := w.Position(id)
	if !ok {
		return 0
	}
	return len(w.Stacks[col]) - row - 1
}

// shortestStack is the height of the lowest stack: the cheapest way to
// expose a floor cell.
func shortestStack(w *domain.WorldState) int {
	best := -1
	for _, s := range w.Stacks {
		if best < 0 || len(s) < best {
			best = len(s)
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
