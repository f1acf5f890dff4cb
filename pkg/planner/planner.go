package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/shrdlite/internal/logging"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/interpreter"
	"github.com/aretw0/shrdlite/pkg/search"
)

// AlreadyTrue is the utterance emitted when the goal holds in the start
// state and the plan is empty.
const AlreadyTrue = "That is already true!"

// DefaultTimeout bounds a single A* run unless overridden.
const DefaultTimeout = 10 * time.Second

// Result pairs one interpretation with the plan that achieves it.
type Result struct {
	Interpretation interpreter.Interpretation
	// Plan is a sequence of primitive actions ("l", "r", "p", "d") or
	// human-readable utterances.
	Plan []string
	// Cost is the number of primitive actions.
	Cost float64
	// Expanded is the number of search nodes expanded, for metrics.
	Expanded int
}

// Planner runs the A* search for each interpretation of a command.
type Planner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the Planner.
type Option func(*Planner)

// WithTimeout sets the wall-clock budget per search.
func WithTimeout(d time.Duration) Option {
	return func(p *Planner) { p.timeout = d }
}

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New creates a Planner.
func New(opts ...Option) *Planner {
	p := &Planner{
		timeout: DefaultTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan searches a plan for every interpretation. Per-interpretation
// failures are suppressed as long as at least one plan is found; when all
// fail, the first error is returned.
func (p *Planner) Plan(ctx context.Context, interps []interpreter.Interpretation, w *domain.WorldState) ([]Result, error) {
	if len(interps) == 0 {
		return nil, domain.ErrNoInterpretation
	}

	var out []Result
	var firstErr error
	for _, interp := range interps {
		res, err := p.planOne(ctx, interp, w)
		if err != nil {
			p.logger.Debug("planning failed", "goal", interp.Formula.String(), "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		p.logger.Debug("plan found",
			"goal", interp.Formula.String(),
			"cost", res.Cost,
			"expanded", res.Expanded)
		out = append(out, res)
	}
	if len(out) == 0 {
		return nil, firstErr
	}
	return out, nil
}

func (p *Planner) planOne(ctx context.Context, interp interpreter.Interpretation, w *domain.WorldState) (Result, error) {
	goal := Goal{Formula: interp.Formula}
	heuristic := Heuristic{Formula: interp.Formula}
	graph := StateGraph{}

	res, err := search.AStar[StateNode](ctx, graph, StateNode{World: w.Clone()},
		func(n StateNode) bool { return goal.Satisfied(n.World) },
		func(n StateNode) float64 { return heuristic.Estimate(n.World) },
		p.timeout)
	if err != nil {
		return Result{}, err
	}

	plan, err := actionsFor(graph, res.Path)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Interpretation: interp,
		Plan:           plan,
		Cost:           res.Cost,
		Expanded:       res.Expanded,
	}, nil
}

// actionsFor recovers the action labels of a state path by probing each
// primitive action against a clone of the predecessor.
func actionsFor(g StateGraph, path []StateNode) ([]string, error) {
	if len(path) <= 1 {
		return []string{AlreadyTrue}, nil
	}

	plan := make([]string, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		wantID := g.NodeID(path[i])
		found := false
		for _, a := range Actions {
			next, ok := g.Apply(path[i-1], a)
			if ok && g.NodeID(next) == wantID {
				plan = append(plan, a)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no primitive action connects %s to %s", g.NodeID(path[i-1]), wantID)
		}
	}
	return plan, nil
}

// Replay applies a plan to a world through the state graph transitions,
// skipping utterances, and returns the resulting state. It fails when a
// primitive action is illegal at the point it appears.
func Replay(w *domain.WorldState, plan []string) (*domain.WorldState, error) {
	g := StateGraph{}
	node := StateNode{World: w.Clone()}
	for i, step := range plan {
		switch step {
		case ActionLeft, ActionRight, ActionPick, ActionDrop:
			next, ok := g.Apply(node, step)
			if !ok {
				return nil, fmt.Errorf("step %d: action %q is illegal in state %s", i, step, g.NodeID(node))
			}
			node = next
		default:
			// Utterances carry no world effect.
		}
	}
	return node.World, nil
}

// IsTimeout reports whether err is the search timeout.
func IsTimeout(err error) bool { return errors.Is(err, search.ErrTimeout) }

// IsNoPath reports whether err is search exhaustion.
func IsNoPath(err error) bool { return errors.Is(err, search.ErrNoPath) }
