package interpreter_test

import (
	"testing"

	"github.com/aretw0/shrdlite/internal/testutils"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ent(q domain.Quantifier, d domain.ObjectDesc) *domain.Entity {
	return &domain.Entity{Quantifier: q, Object: d}
}

func take(q domain.Quantifier, d domain.ObjectDesc) domain.Command {
	return domain.Command{Verb: domain.VerbTake, Entity: ent(q, d)}
}

func move(sq domain.Quantifier, src domain.ObjectDesc, rel domain.Relation, dq domain.Quantifier, dst domain.ObjectDesc) domain.Command {
	return domain.Command{
		Verb:     domain.VerbMove,
		Entity:   ent(sq, src),
		Location: &domain.Location{Relation: rel, Entity: ent(dq, dst)},
	}
}

func assertDisjuncts(t *testing.T, formula domain.DNF, want ...string) {
	t.Helper()
	got := testutils.DisjunctSet(formula)
	require.Len(t, got, len(want), "disjunct count mismatch: %s", formula)
	for _, w := range want {
		assert.Contains(t, got, w)
	}
}

func TestInterpret_TakeBlueObject(t *testing.T) {
	w := testutils.SmallWorld(t)

	formula, err := interpreter.Interpret(take(domain.QuantAny, domain.ObjectDesc{Color: "blue"}), w)
	require.NoError(t, err)
	assertDisjuncts(t, formula, "holding(g)", "holding(m)")
}

func TestInterpret_BallInBox(t *testing.T) {
	w := testutils.SmallWorld(t)

	formula, err := interpreter.Interpret(
		move(domain.QuantAny, domain.ObjectDesc{Form: domain.FormBall},
			domain.RelInside,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormBox}), w)
	require.NoError(t, err)
	assertDisjuncts(t, formula,
		"inside(e,k)", "inside(e,l)", "inside(f,k)", "inside(f,l)", "inside(f,m)")
}

func TestInterpret_BallOnTable(t *testing.T) {
	w := testutils.SmallWorld(t)

	_, err := interpreter.Interpret(
		move(domain.QuantAny, domain.ObjectDesc{Form: domain.FormBall},
			domain.RelOntop,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormTable}), w)
	assert.ErrorIs(t, err, domain.ErrNoInterpretation)
}

func TestInterpret_BigBallInSmallBox(t *testing.T) {
	w := testutils.SmallWorld(t)

	_, err := interpreter.Interpret(
		move(domain.QuantAny, domain.ObjectDesc{Form: domain.FormBall, Size: domain.SizeLarge},
			domain.RelInside,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormBox, Size: domain.SizeSmall}), w)
	assert.ErrorIs(t, err, domain.ErrNoInterpretation)
}

func TestInterpret_AllBallsOnFloor(t *testing.T) {
	w := testutils.SmallWorld(t)

	formula, err := interpreter.Interpret(
		move(domain.QuantAll, domain.ObjectDesc{Form: domain.FormBall},
			domain.RelOntop,
			domain.QuantThe, domain.ObjectDesc{Form: domain.FormFloor}), w)
	require.NoError(t, err)
	assertDisjuncts(t, formula, "ontop(e,floor) & ontop(f,floor)")
}

func TestInterpret_BallInEveryLargeBox(t *testing.T) {
	w := testutils.SmallWorld(t)

	formula, err := interpreter.Interpret(
		move(domain.QuantAny, domain.ObjectDesc{Form: domain.FormBall},
			domain.RelInside,
			domain.QuantAll, domain.ObjectDesc{Form: domain.FormBox, Size: domain.SizeLarge}), w)
	require.NoError(t, err)
	assertDisjuncts(t, formula,
		"inside(e,k) & inside(f,k)",
		"inside(e,l) & inside(f,k)",
		"inside(e,k) & inside(f,l)",
		"inside(e,l) & inside(f,l)")
}

func TestInterpret_TheBallIsAmbiguous(t *testing.T) {
	w := testutils.SmallWorld(t)

	_, err := interpreter.Interpret(take(domain.QuantThe, domain.ObjectDesc{Form: domain.FormBall}), w)
	var ambiguous *domain.AmbiguityError
	require.ErrorAs(t, err, &ambiguous)
	require.Len(t, ambiguous.Candidates, 2)

	assert.Equal(t, "e", ambiguous.Candidates[0].ID)
	assert.Equal(t, 1, ambiguous.Candidates[0].Stack)
	assert.Equal(t, "f", ambiguous.Candidates[1].ID)
	assert.Equal(t, 5, ambiguous.Candidates[1].Stack)

	msg := ambiguous.Error()
	assert.Contains(t, msg, "large white ball")
	assert.Contains(t, msg, "stack 1")
	assert.Contains(t, msg, "small black ball")
	assert.Contains(t, msg, "stack 5")
}

func TestInterpret_NoMatchingObject(t *testing.T) {
	w := testutils.SmallWorld(t)

	_, err := interpreter.Interpret(take(domain.QuantAny, domain.ObjectDesc{Form: domain.FormPyramid}), w)
	assert.ErrorIs(t, err, domain.ErrNoMatchingObject)
}

func TestInterpret_AllInsideAllIsIllegal(t *testing.T) {
	w := testutils.SmallWorld(t)

	_, err := interpreter.Interpret(
		move(domain.QuantAll, domain.ObjectDesc{Form: domain.FormBall},
			domain.RelInside,
			domain.QuantAll, domain.ObjectDesc{Form: domain.FormBox}), w)
	assert.ErrorIs(t, err, domain.ErrNoInterpretation)
}

func TestInterpret_TakeHeldObject(t *testing.T) {
	w := testutils.SmallWorld(t)
	w.Stacks[4] = nil
	w.Holding = "f"

	formula, err := interpreter.Interpret(take(domain.QuantAny, domain.ObjectDesc{Form: domain.FormBall, Color: "black"}), w)
	require.NoError(t, err)
	assertDisjuncts(t, formula, "holding(f)")
}

func TestInterpret_PutHeldObject(t *testing.T) {
	w := testutils.SmallWorld(t)
	w.Stacks[4] = nil
	w.Holding = "f"

	formula, err := interpreter.Interpret(domain.Command{
		Verb: domain.VerbPut,
		Location: &domain.Location{
			Relation: domain.RelInside,
			Entity:   ent(domain.QuantAny, domain.ObjectDesc{Form: domain.FormBox}),
		},
	}, w)
	require.NoError(t, err)
	assertDisjuncts(t, formula, "inside(f,k)", "inside(f,l)", "inside(f,m)")
}

func TestInterpret_PutWithEmptyArm(t *testing.T) {
	w := testutils.SmallWorld(t)

	_, err := interpreter.Interpret(domain.Command{
		Verb: domain.VerbPut,
		Location: &domain.Location{
			Relation: domain.RelOntop,
			Entity:   ent(domain.QuantThe, domain.ObjectDesc{Form: domain.FormFloor}),
		},
	}, w)
	assert.ErrorIs(t, err, domain.ErrNoMatchingObject)
}

func TestInterpret_MoveAllWithSingleCandidateBehavesExistentially(t *testing.T) {
	w := testutils.SmallWorld(t)

	// Only one white ball exists, so "all white balls" degenerates to
	// per-pair disjuncts.
	formula, err := interpreter.Interpret(
		move(domain.QuantAll, domain.ObjectDesc{Form: domain.FormBall, Color: "white"},
			domain.RelInside,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormBox}), w)
	require.NoError(t, err)
	assertDisjuncts(t, formula, "inside(e,k)", "inside(e,l)")
}

func TestInterpret_EveryBallLeftOfSome(t *testing.T) {
	w := testutils.SmallWorld(t)

	// "put all balls left of a box": universal source with an existential
	// destination groups by source and enumerates destination choices.
	formula, err := interpreter.Interpret(
		move(domain.QuantAll, domain.ObjectDesc{Form: domain.FormBall},
			domain.RelLeftOf,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormBox}), w)
	require.NoError(t, err)

	// Each disjunct pairs e with one box and f with one box.
	for _, conj := range formula {
		require.Len(t, conj, 2)
		assert.Equal(t, "e", conj[0].Args[0])
		assert.Equal(t, "f", conj[1].Args[0])
	}
	assert.Len(t, formula, 9)
}

func TestInterpretAll_Policy(t *testing.T) {
	w := testutils.SmallWorld(t)

	good := domain.ParseResult{Input: "take a blue object", Command: take(domain.QuantAny, domain.ObjectDesc{Color: "blue"})}
	bad := domain.ParseResult{Input: "take a pyramid", Command: take(domain.QuantAny, domain.ObjectDesc{Form: domain.FormPyramid})}
	vague := domain.ParseResult{Input: "take the ball", Command: take(domain.QuantThe, domain.ObjectDesc{Form: domain.FormBall})}

	t.Run("failures suppressed when one parse succeeds", func(t *testing.T) {
		out, err := interpreter.InterpretAll([]domain.ParseResult{bad, good}, w)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, good.Input, out[0].Parse.Input)
	})

	t.Run("first error when all parses fail", func(t *testing.T) {
		worse := domain.ParseResult{Input: "x", Command: move(
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormBall},
			domain.RelOntop,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormTable})}
		_, err := interpreter.InterpretAll([]domain.ParseResult{bad, worse}, w)
		assert.ErrorIs(t, err, domain.ErrNoMatchingObject)
	})

	t.Run("ambiguity beats successful parses", func(t *testing.T) {
		_, err := interpreter.InterpretAll([]domain.ParseResult{good, vague}, w)
		var ambiguous *domain.AmbiguityError
		assert.ErrorAs(t, err, &ambiguous)
	})

	t.Run("no parses", func(t *testing.T) {
		_, err := interpreter.InterpretAll(nil, w)
		assert.ErrorIs(t, err, domain.ErrNoParse)
	})
}

func TestInterpret_DisjunctsAreDeduplicated(t *testing.T) {
	w := testutils.SmallWorld(t)

	formula, err := interpreter.Interpret(
		move(domain.QuantAny, domain.ObjectDesc{Form: domain.FormAny, Color: "blue"},
			domain.RelLeftOf,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormBall, Color: "black"}), w)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, c := range formula {
		seen[c.String()]++
	}
	for s, n := range seen {
		assert.Equal(t, 1, n, "duplicate disjunct %s", s)
	}
}

func TestInterpret_InvariantLiteralsPassPhysics(t *testing.T) {
	w := testutils.SmallWorld(t)

	formula, err := interpreter.Interpret(
		move(domain.QuantAny, domain.ObjectDesc{Form: domain.FormAny},
			domain.RelInside,
			domain.QuantAny, domain.ObjectDesc{Form: domain.FormBox}), w)
	require.NoError(t, err)

	for _, conj := range formula {
		for _, lit := range conj {
			if len(lit.Args) != 2 {
				continue
			}
			assert.True(t, w.IsValidIn(lit.Args[0], lit.Args[1], lit.Relation),
				"literal %s violates physics", lit)
			_, known := w.Object(lit.Args[1])
			assert.True(t, known, "unknown identifier in %s", lit)
		}
	}
}
