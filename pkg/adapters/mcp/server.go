// Package mcp exposes the Shrdlite pipeline as an MCP server, so agent
// hosts can interpret and plan blocks-world commands as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/shrdlite"
	"github.com/aretw0/shrdlite/internal/worlds"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/planner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PlanResult is one interpretation with its plan.
type PlanResult struct {
	Goal string   `json:"goal" jsonschema_description:"The goal formula in DNF"`
	Plan []string `json:"plan" jsonschema_description:"Primitive actions l/r/p/d and utterances"`
}

// PlanResponse is the structured output of the plan tool.
type PlanResponse struct {
	Results []PlanResult       `json:"results" jsonschema_description:"One entry per surviving interpretation"`
	World   *domain.WorldState `json:"world,omitempty" jsonschema_description:"The world after applying the first plan"`
}

// InterpretResponse is the structured output of the interpret tool.
type InterpretResponse struct {
	Goals []string `json:"goals" jsonschema_description:"Goal formulas, one per reading"`
}

// Server wraps the Shrdlite Engine and exposes it as an MCP Server.
type Server struct {
	engine    *shrdlite.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *shrdlite.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("shrdlite-mcp", strings.TrimSpace(shrdlite.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: interpret
	interpretTool := mcp.NewTool("interpret",
		mcp.WithDescription("Interpret parsed blocks-world commands against a world, returning goal formulas in DNF."),
		mcp.WithString("world", mcp.Required(), mcp.Description("The world state as JSON, or the name of a builtin world (small, medium, tower)")),
		mcp.WithString("parses", mcp.Required(), mcp.Description("Parse trees as JSON (object or array)")),
		mcp.WithOutputSchema[InterpretResponse](),
	)
	s.mcpServer.AddTool(interpretTool, mcp.NewStructuredToolHandler(s.handleInterpret))

	// TOOL: plan
	planTool := mcp.NewTool("plan",
		mcp.WithDescription("Interpret parsed commands and search a plan of primitive arm actions for each reading."),
		mcp.WithString("world", mcp.Required(), mcp.Description("The world state as JSON, or the name of a builtin world")),
		mcp.WithString("parses", mcp.Required(), mcp.Description("Parse trees as JSON (object or array)")),
		mcp.WithOutputSchema[PlanResponse](),
	)
	s.mcpServer.AddTool(planTool, mcp.NewStructuredToolHandler(s.handlePlan))
}

func (s *Server) handleInterpret(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (InterpretResponse, error) {
	w, parses, err := s.decodeArgs(ctx, args)
	if err != nil {
		return InterpretResponse{}, err
	}

	interps, err := s.engine.Interpret(parses, w)
	if err != nil {
		return InterpretResponse{}, fmt.Errorf("interpretation failed: %w", err)
	}

	resp := InterpretResponse{}
	for _, interp := range interps {
		resp.Goals = append(resp.Goals, interp.Formula.String())
	}
	return resp, nil
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PlanResponse, error) {
	w, parses, err := s.decodeArgs(ctx, args)
	if err != nil {
		return PlanResponse{}, err
	}

	results, err := s.engine.Plan(ctx, parses, w)
	if err != nil {
		return PlanResponse{}, fmt.Errorf("planning failed: %w", err)
	}

	resp := PlanResponse{}
	for _, res := range results {
		resp.Results = append(resp.Results, PlanResult{
			Goal: res.Interpretation.Formula.String(),
			Plan: res.Plan,
		})
	}
	if len(results) > 0 {
		final, err := planner.Replay(w, results[0].Plan)
		if err == nil {
			resp.World = final
		}
	}
	return resp, nil
}

func (s *Server) decodeArgs(ctx context.Context, args map[string]interface{}) (*domain.WorldState, []domain.ParseResult, error) {
	worldArg, _ := args["world"].(string)
	parsesArg, _ := args["parses"].(string)

	w, err := decodeWorld(worldArg)
	if err != nil {
		return nil, nil, err
	}

	parses, err := s.engine.Parse(ctx, parsesArg)
	if err != nil {
		return nil, nil, fmt.Errorf("parses rejected: %w", err)
	}
	return w, parses, nil
}

func decodeWorld(arg string) (*domain.WorldState, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return nil, fmt.Errorf("world is required")
	}

	if !strings.HasPrefix(trimmed, "{") {
		def, err := worlds.Builtin(trimmed)
		if err != nil {
			return nil, err
		}
		return def.World(), nil
	}

	var w domain.WorldState
	if err := json.Unmarshal([]byte(trimmed), &w); err != nil {
		return nil, fmt.Errorf("invalid world JSON: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent world: %w", err)
	}
	return &w, nil
}

func (s *Server) registerResources() {
	// EXPOSE: shrdlite://worlds
	s.mcpServer.AddResource(mcp.NewResource("shrdlite://worlds", "Builtin Worlds",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		catalog := map[string]*domain.WorldState{}
		for _, name := range worlds.BuiltinNames() {
			def, err := worlds.Builtin(name)
			if err != nil {
				return nil, fmt.Errorf("failed to load builtin world %q: %w", name, err)
			}
			catalog[name] = def.World()
		}
		jsonBytes, _ := json.Marshal(catalog)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "shrdlite://worlds",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
