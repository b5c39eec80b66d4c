package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
)

const (
	machinesURI = "automata://machines"
	machineURI  = "automata://machines/{name}"
)

// SimulateResponse is the structured result of the simulate tool.
type SimulateResponse struct {
	Result  *domain.Result `json:"result" jsonschema_description:"The full run record with trace and verdict"`
	Summary string         `json:"summary" jsonschema_description:"The console rendering of the run"`
}

// ValidateResponse is the structured result of the validate_machine tool.
type ValidateResponse struct {
	Valid bool   `json:"valid" jsonschema_description:"True when every structural check passed"`
	Kind  string `json:"kind" jsonschema_description:"The machine kind"`
	Check string `json:"check,omitempty" jsonschema_description:"The failing check, if any"`
	Error string `json:"error,omitempty" jsonschema_description:"The failure message, if any"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	ports.Simulator
	Parse(data []byte, filename string) (*domain.Table, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of the machines the engine can load."),
	), s.handleListMachines)

	// TOOL: validate_machine
	s.mcpServer.AddTool(mcp.NewTool("validate_machine",
		mcp.WithDescription("Run the structural checks on a stored machine (name) or an inline description (source)."),
		mcp.WithString("name", mcp.Description("Name of a stored machine")),
		mcp.WithString("source", mcp.Description("Inline machine description (text, YAML or JSON)")),
		mcp.WithString("filename", mcp.Description("Optional filename hint for the inline description, e.g. m.pda")),
		mcp.WithOutputSchema[ValidateResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: simulate
	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run a machine on an input string and return the trace and verdict."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Space-separated input symbols (empty string for the empty input)")),
		mcp.WithString("name", mcp.Description("Name of a stored machine")),
		mcp.WithString("source", mcp.Description("Inline machine description (text, YAML or JSON)")),
		mcp.WithString("filename", mcp.Description("Optional filename hint for the inline description")),
		mcp.WithOutputSchema[SimulateResponse](),
	), mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render a stored machine as a Mermaid flowchart, optionally highlighting the path of an input."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of a stored machine")),
		mcp.WithString("input", mcp.Description("Space-separated input whose run is overlaid on the graph")),
	), s.handleGetGraph)
}

func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.ListMachines(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	name, _ := args["name"].(string)

	table, err := s.engine.LoadMachine(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	var overlay *graph.GraphOverlay
	if input, ok := args["input"].(string); ok {
		res, err := s.engine.Run(ctx, table, runner.Tokenize(input))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", err)), nil
		}
		overlay = graph.OverlayFromResult(res)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(table, overlay)), nil
}

// Handler methods for structured tools

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	table, err := s.resolve(ctx, args)
	if err != nil {
		return ValidateResponse{}, err
	}

	resp := ValidateResponse{Valid: true, Kind: string(table.Kind())}
	if err := s.engine.Validate(ctx, table); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			resp.Check = verr.Check
		}
	}
	return resp, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	input, _ := args["input"].(string)
	clean, err := runner.SanitizeInput(input)
	if err != nil {
		s.logger.Warn("MCP simulate: input rejected", "err", err, "size", len(input))
		return SimulateResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	table, err := s.resolve(ctx, args)
	if err != nil {
		return SimulateResponse{}, err
	}

	res, err := s.engine.Run(ctx, table, runner.Tokenize(clean))
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}
	return SimulateResponse{Result: res, Summary: report.Text(res)}, nil
}

// resolve loads the table named by args["name"] or parses args["source"].
func (s *Server) resolve(ctx context.Context, args map[string]interface{}) (*domain.Table, error) {
	if source, ok := args["source"].(string); ok && source != "" {
		filename, _ := args["filename"].(string)
		table, err := s.engine.Parse([]byte(source), filename)
		if err != nil {
			return nil, fmt.Errorf("parse failed: %w", err)
		}
		return table, nil
	}

	name, _ := args["name"].(string)
	if name == "" {
		return nil, errors.New("either name or source is required")
	}
	table, err := s.engine.LoadMachine(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	return table, nil
}

func (s *Server) registerResources() {
	// EXPOSE: automata://machines
	s.mcpServer.AddResource(mcp.NewResource(machinesURI, "Machine Catalogue",
		mcp.WithResourceDescription("Names of every machine the engine can load"),
		mcp.WithMIMEType("application/json"),
	), s.readMachines)

	// EXPOSE: automata://machines/{name}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(machineURI, "Machine Description",
		mcp.WithTemplateDescription("One machine as structured JSON"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readMachine)
}

func (s *Server) readMachines(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.engine.ListMachines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	jsonBytes, _ := json.Marshal(names)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      machinesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readMachine(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	name := strings.TrimPrefix(uri, strings.TrimSuffix(machineURI, "{name}"))

	table, err := s.engine.LoadMachine(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load machine: %w", err)
	}
	jsonBytes, err := json.Marshal(dto.FromDescription(table.Description()))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
