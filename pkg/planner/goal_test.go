package planner

import (
	"testing"

	"github.com/aretw0/shrdlite/pkg/domain"
)

func lit(rel domain.Relation, args ...string) domain.Literal {
	return domain.Literal{Relation: rel, Args: args}
}

func TestLiteralHolds(t *testing.T) {
	w := testWorld()

	cases := []struct {
		name string
		lit  domain.Literal
		want bool
	}{
		{"ontop floor true", lit(domain.RelOntop, "e", domain.FloorID), true},
		{"ontop floor false", lit(domain.RelOntop, "m", domain.FloorID), false},
		{"inside box", lit(domain.RelInside, "g", "l"), true},
		{"ontop direct", lit(domain.RelOntop, "m", "g"), true},
		{"ontop not direct", lit(domain.RelOntop, "m", "l"), false},
		{"above anywhere in stack", lit(domain.RelAbove, "m", "l"), true},
		{"above wrong order", lit(domain.RelAbove, "l", "m"), false},
		{"under", lit(domain.RelUnder, "l", "m"), true},
		{"leftof", lit(domain.RelLeftOf, "e", "f"), true},
		{"rightof", lit(domain.RelRightOf, "f", "e"), true},
		{"beside adjacent", lit(domain.RelBeside, "e", "g"), true},
		{"beside distant", lit(domain.RelBeside, "e", "f"), false},
		{"holding false", lit(domain.RelHolding, "e"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LiteralHolds(tc.lit, w); got != tc.want {
				t.Errorf("LiteralHolds(%s) = %v, want %v", tc.lit, got, tc.want)
			}
		})
	}
}

func TestLiteralHolds_HeldObject(t *testing.T) {
	w := testWorld()
	w.Stacks[4] = nil
	w.Holding = "f"

	if !LiteralHolds(lit(domain.RelHolding, "f"), w) {
		t.Error("holding(f) should hold")
	}
	// A binary relation involving the held object is not observable yet.
	if LiteralHolds(lit(domain.RelRightOf, "f", "e"), w) {
		t.Error("rightof(f,e) must not hold while f is in the arm")
	}
}

func TestLiteralHolds_Negative(t *testing.T) {
	w := testWorld()
	neg := domain.Literal{Negative: true, Relation: domain.RelHolding, Args: []string{"e"}}
	if !LiteralHolds(neg, w) {
		t.Error("-holding(e) should hold when the arm is empty")
	}
}

func TestGoal_Satisfied(t *testing.T) {
	w := testWorld()

	sat := Goal{Formula: domain.DNF{
		{lit(domain.RelHolding, "e")},                                 // false
		{lit(domain.RelOntop, "e", domain.FloorID), lit(domain.RelInside, "g", "l")}, // true
	}}
	if !sat.Satisfied(w) {
		t.Error("second disjunct holds, goal should be satisfied")
	}

	unsat := Goal{Formula: domain.DNF{
		{lit(domain.RelOntop, "e", domain.FloorID), lit(domain.RelHolding, "f")},
	}}
	if unsat.Satisfied(w) {
		t.Error("conjunction with a false literal should not satisfy")
	}
}

func TestHeuristic_Estimate(t *testing.T) {
	w := testWorld()

	cases := []struct {
		name    string
		formula domain.DNF
		want    float64
	}{
		{"satisfied costs nothing", domain.DNF{{lit(domain.RelOntop, "e", domain.FloorID)}}, 0},
		{"blockers above target", domain.DNF{{lit(domain.RelHolding, "l")}}, 2},
		{"min over disjuncts", domain.DNF{
			{lit(domain.RelHolding, "l")},
			{lit(domain.RelHolding, "m")},
		}, 0},
		{"ontop floor uses shortest stack", domain.DNF{{lit(domain.RelOntop, "m", domain.FloorID)}}, 0},
		{"under charges the upper object", domain.DNF{{lit(domain.RelUnder, "f", "l")}}, 2},
		{"beside takes the cheaper side", domain.DNF{{lit(domain.RelBeside, "f", "l")}}, 0},
		{"conjunction sums", domain.DNF{{
			lit(domain.RelHolding, "l"),
			lit(domain.RelHolding, "g"),
		}}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Heuristic{Formula: tc.formula}
			if got := h.Estimate(w); got != tc.want {
				t.Errorf("Estimate = %v, want %v", got, tc.want)
			}
		})
	}
}
