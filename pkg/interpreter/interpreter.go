package interpreter

import (
	"errors"
	"fmt"

	"github.com/aretw0/shrdlite/pkg/domain"
)

// Interpretation pairs one parse with the goal formula it lowered to.
type Interpretation struct {
	Parse   domain.ParseResult
	Formula domain.DNF
}

// InterpretAll lowers every parse against the world. Per-parse errors are
// suppressed as long as at least one parse succeeds; when all fail, the
// first error is returned. Ambiguity is the exception: it is surfaced even
// when other parses succeeded, because the user benefits from the
// clarification question.
func InterpretAll(parses []domain.ParseResult, w *domain.WorldState) ([]Interpretation, error) {
	if len(parses) == 0 {
		return nil, domain.ErrNoParse
	}

	var out []Interpretation
	var firstErr error
	var ambiguous *domain.AmbiguityError

	for _, p := range parses {
		formula, err := Interpret(p.Command, w)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			var ae *domain.AmbiguityError
			if errors.As(err, &ae) && ambiguous == nil {
				ambiguous = ae
			}
			continue
		}
		out = append(out, Interpretation{Parse: p, Formula: formula})
	}

	if ambiguous != nil {
		return nil, ambiguous
	}
	if len(out) == 0 {
		return nil, firstErr
	}
	return out, nil
}

// Interpret lowers a single command into a deduplicated DNF goal formula.
func Interpret(cmd domain.Command, w *domain.WorldState) (domain.DNF, error) {
	switch cmd.Verb {
	case domain.VerbTake:
		if cmd.Entity == nil {
			return nil, fmt.Errorf("%w: take without an entity", domain.ErrNoInterpretation)
		}
		return interpretTake(cmd, w)
	case domain.VerbPut:
		if cmd.Location == nil || cmd.Location.Entity == nil {
			return nil, fmt.Errorf("%w: put without a location", domain.ErrNoInterpretation)
		}
		if w.Holding == "" {
			return nil, fmt.Errorf("%w: the arm is not holding anything", domain.ErrNoMatchingObject)
		}
		return buildGoals(domain.QuantThe, []string{w.Holding}, cmd.Location, w)
	case domain.VerbMove:
		if cmd.Entity == nil || cmd.Location == nil || cmd.Location.Entity == nil {
			return nil, fmt.Errorf("%w: move needs an entity and a location", domain.ErrNoInterpretation)
		}
		sources, err := resolveSet(cmd.Entity.Object, w)
		if err != nil {
			return nil, err
		}
		return buildGoals(cmd.Entity.Quantifier, sources, cmd.Location, w)
	default:
		return nil, fmt.Errorf("%w: unknown verb %q", domain.ErrNoInterpretation, cmd.Verb)
	}
}

func interpretTake(cmd domain.Command, w *domain.WorldState) (domain.DNF, error) {
	ids, err := resolveSet(cmd.Entity.Object, w)
	if err != nil {
		return nil, err
	}

	if cmd.Entity.Quantifier == domain.QuantThe && len(ids) > 1 {
		return nil, domain.NewAmbiguityError(w, ids)
	}

	var formula domain.DNF
	for _, id := range ids {
		if id == domain.FloorID {
			continue
		}
		formula = append(formula, domain.Conjunction{
			{Relation: domain.RelHolding, Args: []string{id}},
		})
	}
	if len(formula) == 0 {
		return nil, fmt.Errorf("%w: nothing here can be taken", domain.ErrNoInterpretation)
	}
	return formula.Dedupe(), nil
}

type pair struct {
	src, dst string
}

func (p pair) literal(rel domain.Relation) domain.Literal {
	return domain.Literal{Relation: rel, Args: []string{p.src, p.dst}}
}

// buildGoals combines the resolved source set with the location's resolved
// destination set. The quantifier pair dictates the disjunct structure.
func buildGoals(sq domain.Quantifier, sources []string, loc *domain.Location, w *domain.WorldState) (domain.DNF, error) {
	dests, err := resolveSet(loc.Entity.Object, w)
	if err != nil {
		return nil, err
	}
	dq := loc.Entity.Quantifier
	rel := loc.Relation
	onOrIn := rel == domain.RelOntop || rel == domain.RelInside

	// Candidate pairs surviving the physical laws, in source-major order.
	// An object never stands in a relation to itself.
	var pairs []pair
	for _, s := range sources {
		for _, d := range dests {
			if s != d && w.IsValidIn(s, d, rel) {
				pairs = append(pairs, pair{s, d})
			}
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no legal way to place it", domain.ErrNoInterpretation)
	}

	var formula domain.DNF

	switch {
	// "all … in/on all …" has no consistent reading.
	case sq == domain.QuantAll && dq == domain.QuantAll && onOrIn:
		return nil, fmt.Errorf("%w: everything cannot go onto everything", domain.ErrNoInterpretation)

	// Each source commits to its own destination; disjuncts enumerate the
	// ways of choosing one destination per source.
	case (sq == domain.QuantAny && dq == domain.QuantAll && len(dests) > 1 && onOrIn) ||
		(sq == domain.QuantAll && dq == domain.QuantAny && len(sources) > 1):
		formula = cartesianBySource(sources, pairs, rel)

	// "any … <rel> all …" for the non-containment relations: split the
	// pair list into one near-equal slice per source; each slice is one
	// reading.
	case sq == domain.QuantAny && dq == domain.QuantAll && !onOrIn:
		formula = sliceBySource(len(sources), pairs, rel)

	case (sq == domain.QuantThe && dq == domain.QuantAll) ||
		(sq == domain.QuantAll && dq == domain.QuantThe):
		if onOrIn && !allFloor(pairs) {
			return nil, fmt.Errorf("%w: a single object cannot hold them all", domain.ErrNoInterpretation)
		}
		if ids := theSide(sq, dq, pairs); len(ids) > 1 {
			return nil, domain.NewAmbiguityError(w, ids)
		}
		formula = domain.DNF{conjunctionOf(pairs, rel)}

	case (sq == domain.QuantAll && len(sources) > 1) || dq == domain.QuantAll:
		formula = domain.DNF{conjunctionOf(pairs, rel)}

	default:
		for _, p := range pairs {
			formula = append(formula, domain.Conjunction{p.literal(rel)})
		}
		if len(formula) > 1 {
			if sq == domain.QuantThe {
				if ids := distinctSources(pairs); len(ids) > 1 {
					return nil, domain.NewAmbiguityError(w, ids)
				}
			}
			if dq == domain.QuantThe {
				if ids := distinctDests(pairs); len(ids) > 1 {
					return nil, domain.NewAmbiguityError(w, ids)
				}
			}
		}
	}

	formula = formula.Dedupe()
	if len(formula) == 0 {
		return nil, fmt.Errorf("%w: no legal way to place it", domain.ErrNoInterpretation)
	}
	return formula, nil
}

// cartesianBySource groups the pairs by source and emits the cartesian
// product of the groups: every conjunction picks exactly one pair per
// source.
func cartesianBySource(sources []string, pairs []pair, rel domain.Relation) domain.DNF {
	groups := make([][]pair, 0, len(sources))
	for _, s := range sources {
		var g []pair
		for _, p := range pairs {
			if p.src == s {
				g = append(g, p)
			}
		}
		if len(g) == 0 {
			// A source with no legal destination makes the whole
			// universal reading unsatisfiable.
			return nil
		}
		groups = append(groups, g)
	}

	formula := domain.DNF{{}}
	for _, g := range groups {
		var next domain.DNF
		for _, conj := range formula {
			for _, p := range g {
				extended := append(append(domain.Conjunction{}, conj...), p.literal(rel))
				next = append(next, extended)
			}
		}
		formula = next
	}
	return formula
}

// sliceBySource splits the flat pair list into n near-equal consecutive
// slices, each forming one conjunction.
func sliceBySource(n int, pairs []pair, rel domain.Relation) domain.DNF {
	if n <= 0 {
		return nil
	}
	base, rem := len(pairs)/n, len(pairs)%n
	var formula domain.DNF
	i := 0
	for s := 0; s < n; s++ {
		size := base
		if s < rem {
			size++
		}
		if size == 0 {
			continue
		}
		formula = append(formula, conjunctionOf(pairs[i:i+size], rel))
		i += size
	}
	return formula
}

func conjunctionOf(pairs []pair, rel domain.Relation) domain.Conjunction {
	conj := make(domain.Conjunction, len(pairs))
	for i, p := range pairs {
		conj[i] = p.literal(rel)
	}
	return conj
}

func allFloor(pairs []pair) bool {
	for _, p := range pairs {
		if p.dst != domain.FloorID {
			return false
		}
	}
	return true
}

func theSide(sq, dq domain.Quantifier, pairs []pair) []string {
	if sq == domain.QuantThe {
		return distinctSources(pairs)
	}
	if dq == domain.QuantThe {
		return distinctDests(pairs)
	}
	return nil
}

func distinctSources(pairs []pair) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range pairs {
		if !seen[p.src] {
			seen[p.src] = true
			out = append(out, p.src)
		}
	}
	return out
}

func distinctDests(pairs []pair) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range pairs {
		if !seen[p.dst] {
			seen[p.dst] = true
			out = append(out, p.dst)
		}
	}
	return out
}

func describeErr(d domain.ObjectDesc) error {
	return fmt.Errorf("%w: %s", domain.ErrNoMatchingObject, d.Attributes().Describe())
}
