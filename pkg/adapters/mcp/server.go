package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	LayoutURI = "meridian://layout"
	GraphURI  = "meridian://graph"
)

// MoveArgs names one directional edge of an area.
type MoveArgs struct {
	Area      string `json:"area" jsonschema_description:"Area name"`
	Direction string `json:"direction" jsonschema_description:"N, S, E or W (long names accepted)"`
}

// SequenceArgs names a liminal sequence.
type SequenceArgs struct {
	Key string `json:"key"`
}

// AreaList is the list_areas result. Tool results must be objects.
type AreaList struct {
	Areas []domain.Area `json:"areas"`
}

// Server wraps the Meridian engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Navigator
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Navigator, version string, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("meridian-mcp", version),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "mcp")
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down
// when ctx is done.
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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
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
	// TOOL: next_area
	s.mcpServer.AddTool(mcp.NewTool("next_area",
		mcp.WithDescription("Resolve a move from an area. Returns an adjacent area, a liminal crossing, or a random-exploration fallback with its reason. Never fails for unknown areas."),
		mcp.WithString("area", mcp.Required(), mcp.Description("Current area name")),
		mcp.WithString("direction", mcp.Required(), mcp.Description("N, S, E or W")),
		mcp.WithOutputSchema[domain.NavigationResult](),
	), mcp.NewStructuredToolHandler(s.handleNextArea))

	// TOOL: resolve_edge
	s.mcpServer.AddTool(mcp.NewTool("resolve_edge",
		mcp.WithDescription("Classify one edge of an area as adjacent, liminal or unknown without gameplay semantics."),
		mcp.WithString("area", mcp.Required(), mcp.Description("Area name")),
		mcp.WithString("direction", mcp.Required(), mcp.Description("N, S, E or W")),
		mcp.WithOutputSchema[domain.EdgeResolution](),
	), mcp.NewStructuredToolHandler(s.handleResolveEdge))

	// TOOL: list_areas
	s.mcpServer.AddTool(mcp.NewTool("list_areas",
		mcp.WithDescription("List every area with its region, zone, climate and biome."),
		mcp.WithOutputSchema[AreaList](),
	), mcp.NewStructuredToolHandler(s.handleListAreas))

	// TOOL: get_sequence
	s.mcpServer.AddTool(mcp.NewTool("get_sequence",
		mcp.WithDescription("Get a liminal sequence by key, derived reverses included."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Sequence key")),
		mcp.WithOutputSchema[domain.LiminalSequence](),
	), mcp.NewStructuredToolHandler(s.handleGetSequence))

	// TOOL: get_layout
	s.mcpServer.AddTool(mcp.NewTool("get_layout",
		mcp.WithDescription("Get the hex-grid layout built from the world's seeds."),
		mcp.WithOutputSchema[domain.Layout](),
	), mcp.NewStructuredToolHandler(s.handleGetLayout))

	// TOOL: blend_climate
	s.mcpServer.AddTool(mcp.NewTool("blend_climate",
		mcp.WithDescription("Run a climate transition pass over a generated tile map. With an area, its climate, biome and neighbors are used unless overridden."),
		mcp.WithString("area", mcp.Description("Area whose climate and neighbors to use")),
		mcp.WithString("climate", mcp.Description("Map climate: COLD, TEMPERATE, TROPICAL or ARID")),
		mcp.WithNumber("width", mcp.Description("Map width in tiles (default 32)")),
		mcp.WithNumber("height", mcp.Description("Map height in tiles (default 32)")),
		mcp.WithString("fill", mcp.Description("Biome filling the generated map")),
		mcp.WithObject("neighbors", mcp.Description("Direction to neighbor climate, e.g. {\"S\": \"TEMPERATE\"}")),
		mcp.WithOutputSchema[domain.BlendResult](),
	), mcp.NewStructuredToolHandler(s.handleBlendClimate))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the adjacency graph as a Mermaid flowchart."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(s.engine.Mermaid()), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleNextArea(ctx context.Context, request mcp.CallToolRequest, args MoveArgs) (domain.NavigationResult, error) {
	dir, err := domain.ParseDirection(args.Direction)
	if err != nil {
		return domain.NavigationResult{}, err
	}
	return s.engine.Next(args.Area, dir), nil
}

func (s *Server) handleResolveEdge(ctx context.Context, request mcp.CallToolRequest, args MoveArgs) (domain.EdgeResolution, error) {
	dir, err := domain.ParseDirection(args.Direction)
	if err != nil {
		return domain.EdgeResolution{}, err
	}
	return s.engine.Edge(args.Area, dir), nil
}

func (s *Server) handleListAreas(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (AreaList, error) {
	return AreaList{Areas: s.engine.Areas()}, nil
}

func (s *Server) handleGetSequence(ctx context.Context, request mcp.CallToolRequest, args SequenceArgs) (domain.LiminalSequence, error) {
	seq, ok := s.engine.Sequence(args.Key)
	if !ok {
		return domain.LiminalSequence{}, fmt.Errorf("%w: %q", domain.ErrSequenceNotFound, args.Key)
	}
	return seq, nil
}

func (s *Server) handleGetLayout(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (domain.Layout, error) {
	l, err := s.engine.Layout(ctx)
	if err != nil {
		return domain.Layout{}, fmt.Errorf("layout failed: %w", err)
	}
	return *l, nil
}

func (s *Server) handleBlendClimate(ctx context.Context, request mcp.CallToolRequest, args domain.BlendRequest) (domain.BlendResult, error) {
	res, err := s.engine.Blend(args)
	if err != nil {
		return domain.BlendResult{}, err
	}
	return *res, nil
}

func (s *Server) registerResources() {
	// EXPOSE: meridian://layout
	s.mcpServer.AddResource(mcp.NewResource(LayoutURI, "Current Hex Layout",
		mcp.WithMIMEType("application/json"),
	), s.readLayout)

	// EXPOSE: meridian://graph
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Adjacency Graph (Mermaid)",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "text/vnd.mermaid",
				Text:     s.engine.Mermaid(),
			},
		}, nil
	})
}

func (s *Server) readLayout(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	l, err := s.engine.Layout(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build layout: %w", err)
	}
	jsonBytes, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      LayoutURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
