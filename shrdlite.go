package shrdlite

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/shrdlite/internal/logging"
	"github.com/aretw0/shrdlite/pkg/adapters/parsejson"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/interpreter"
	"github.com/aretw0/shrdlite/pkg/observability"
	"github.com/aretw0/shrdlite/pkg/planner"
	"github.com/aretw0/shrdlite/pkg/ports"
	"github.com/aretw0/shrdlite/pkg/search"
)

// Version is the library version, reported by the CLI and the servers.
const Version = "0.2.0"

// Engine is the high-level entry point for the Shrdlite library. It wires
// a parser, the interpreter, and the planner into one pipeline.
type Engine struct {
	parser  ports.Parser
	logger  *slog.Logger
	metrics *observability.Metrics
	timeout time.Duration
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithParser injects the parser adapter. The default accepts pre-parsed
// JSON command trees.
func WithParser(p ports.Parser) Option {
	return func(e *Engine) { e.parser = p }
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics enables metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTimeout bounds the planner search per interpretation.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// New initializes a Shrdlite Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		parser:  parsejson.New(),
		logger:  logging.NewNop(),
		timeout: planner.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse runs the parser adapter on one utterance.
func (e *Engine) Parse(ctx context.Context, utterance string) ([]domain.ParseResult, error) {
	return e.parser.Parse(ctx, utterance)
}

// Interpret lowers parses into goal formulas against the world.
func (e *Engine) Interpret(parses []domain.ParseResult, w *domain.WorldState) ([]interpreter.Interpretation, error) {
	return interpreter.InterpretAll(parses, w)
}

// Plan interprets the parses and searches a plan for each surviving
// interpretation.
func (e *Engine) Plan(ctx context.Context, parses []domain.ParseResult, w *domain.WorldState) ([]planner.Result, error) {
	interps, err := interpreter.InterpretAll(parses, w)
	if err != nil {
		e.observeFailure(err)
		return nil, err
	}
	e.logger.Debug("interpreted", "readings", len(interps))

	p := planner.New(planner.WithTimeout(e.timeout), planner.WithLogger(e.logger))

	started := time.Now()
	results, err := p.Plan(ctx, interps, w)
	elapsed := time.Since(started)

	if err != nil {
		e.observeFailure(err)
		return nil, err
	}
	e.observeSuccess(results, elapsed)
	return results, nil
}

// Execute runs the full pipeline: parse, interpret, plan.
func (e *Engine) Execute(ctx context.Context, w *domain.WorldState, utterance string) ([]planner.Result, error) {
	parses, err := e.parser.Parse(ctx, utterance)
	if err != nil {
		e.observeFailure(domain.ErrNoParse)
		return nil, err
	}
	e.logger.Debug("parsed", "parses", len(parses))
	return e.Plan(ctx, parses, w)
}

func (e *Engine) observeSuccess(results []planner.Result, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	outcome := observability.OutcomePlanned
	expanded := 0
	actions := 0
	for _, r := range results {
		expanded += r.Expanded
		if len(r.Plan) == 1 && r.Plan[0] == planner.AlreadyTrue {
			outcome = observability.OutcomeAlreadyTrue
		} else if actions == 0 || len(r.Plan) < actions {
			actions = len(r.Plan)
		}
	}
	e.metrics.CommandsTotal.WithLabelValues(outcome).Inc()
	e.metrics.SearchSeconds.Observe(elapsed.Seconds())
	e.metrics.NodesExpanded.Observe(float64(expanded))
	e.metrics.PlanActions.Observe(float64(actions))
}

func (e *Engine) observeFailure(err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.CommandsTotal.WithLabelValues(outcomeFor(err)).Inc()
}

func outcomeFor(err error) string {
	var ambiguous *domain.AmbiguityError
	switch {
	case errors.As(err, &ambiguous):
		return observability.OutcomeAmbiguous
	case errors.Is(err, domain.ErrNoParse):
		return observability.OutcomeNoParse
	case errors.Is(err, domain.ErrNoMatchingObject):
		return observability.OutcomeNoMatch
	case errors.Is(err, domain.ErrNoInterpretation):
		return observability.OutcomeNoReading
	case errors.Is(err, search.ErrTimeout):
		return observability.OutcomeTimeout
	case errors.Is(err, search.ErrNoPath):
		return observability.OutcomeNoPath
	}
	return "error"
}
