// Package http exposes the Shrdlite pipeline over a JSON HTTP API.
//
// Worlds are stored through the session layer; commands arrive as parse
// trees and come back as plans. Requests are validated against the
// embedded OpenAPI document before they reach a handler.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/shrdlite/internal/worlds"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/planner"
	"github.com/aretw0/shrdlite/pkg/search"
	"github.com/aretw0/shrdlite/pkg/session"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Engine defines the interface for the Shrdlite pipeline core.
type Engine interface {
	Parse(ctx context.Context, utterance string) ([]domain.ParseResult, error)
	Plan(ctx context.Context, parses []domain.ParseResult, w *domain.WorldState) ([]planner.Result, error)
}

// Server wires the engine and the world session layer into HTTP handlers.
type Server struct {
	engine   Engine
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures the handler.
type Option func(*config)

type config struct {
	registry *prometheus.Registry
	logger   *slog.Logger
}

// WithMetricsRegistry exposes the registry on GET /metrics.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, sessions *session.Manager, opts ...Option) (http.Handler, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	server := &Server{engine: engine, sessions: sessions, logger: cfg.logger}

	validate, err := validationMiddleware()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare request validation: %w", err)
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if cfg.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/worlds", server.listWorlds)
		r.Post("/worlds", server.createWorld)
		r.Get("/worlds/{id}", server.getWorld)
		r.Delete("/worlds/{id}", server.deleteWorld)
		r.Post("/worlds/{id}/command", server.command)
	})

	return enableCORS(r), nil
}

// validationMiddleware checks requests against the embedded OpenAPI
// document. Routes the document does not know pass through untouched.
func validationMiddleware() (func(http.Handler) http.Handler, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type createWorldRequest struct {
	ID      string             `json:"id,omitempty"`
	Builtin string             `json:"builtin,omitempty"`
	World   *domain.WorldState `json:"world,omitempty"`
}

func (s *Server) createWorld(w http.ResponseWriter, r *http.Request) {
	var body createWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var state *domain.WorldState
	switch {
	case body.Builtin != "":
		def, err := worlds.Builtin(body.Builtin)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		state = def.World()
	case body.World != nil:
		if err := body.World.Validate(); err != nil {
			http.Error(w, fmt.Sprintf("invalid world: %v", err), http.StatusBadRequest)
			return
		}
		state = body.World
	default:
		http.Error(w, "either builtin or world is required", http.StatusBadRequest)
		return
	}

	id := body.ID
	if id == "" {
		id = uuid.NewString()
	}

	err := s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
		return s.sessions.Store().Save(ctx, id, state)
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to store world: %v", err), http.StatusInternalServerError)
		return
	}

	s.logger.Info("world created", "world_id", id, "stacks", len(state.Stacks))
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "world": state})
}

func (s *Server) listWorlds(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.Store().List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"worlds": ids})
}

func (s *Server) getWorld(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Store().Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) deleteWorld(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
		return s.sessions.Store().Delete(ctx, id)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type commandRequest struct {
	Parses json.RawMessage `json:"parses"`
	Apply  bool            `json:"apply,omitempty"`
}

type commandResult struct {
	Input string   `json:"input,omitempty"`
	Goal  string   `json:"goal"`
	Plan  []string `json:"plan"`
}

func (s *Server) command(w http.ResponseWriter, r *http.Request) {
	worldID := chi.URLParam(r, "id")

	var body commandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// The session layer runs the whole command as a unit under the
	// world's gate: load, plan, optionally apply.
	results, final, err := s.sessions.Execute(r.Context(), worldID, body.Apply,
		func(ctx context.Context, state *domain.WorldState) ([]planner.Result, error) {
			parses, err := s.engine.Parse(ctx, string(body.Parses))
			if err != nil {
				return nil, err
			}
			return s.engine.Plan(ctx, parses, state)
		})
	if err != nil {
		s.logger.Warn("command failed", "world_id", worldID, "err", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var response struct {
		Results []commandResult    `json:"results"`
		World   *domain.WorldState `json:"world"`
	}
	response.World = final
	for _, res := range results {
		response.Results = append(response.Results, commandResult{
			Input: res.Interpretation.Parse.Input,
			Goal:  res.Interpretation.Formula.String(),
			Plan:  res.Plan,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func statusFor(err error) int {
	var ambiguous *domain.AmbiguityError
	switch {
	case errors.Is(err, domain.ErrWorldNotFound):
		return http.StatusNotFound
	case errors.As(err, &ambiguous),
		errors.Is(err, domain.ErrNoParse),
		errors.Is(err, domain.ErrNoMatchingObject),
		errors.Is(err, domain.ErrNoInterpretation),
		errors.Is(err, search.ErrNoPath):
		return http.StatusUnprocessableEntity
	case errors.Is(err, search.ErrTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Shrdlite API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
