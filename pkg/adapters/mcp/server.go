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

	"github.com/neurocontainers/recipekit"
	"github.com/neurocontainers/recipekit/internal/presentation/graph"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/recipe"
	"github.com/neurocontainers/recipekit/pkg/registry"
)

const directivesURI = "recipekit://directives"

// DirectiveSummary is one entry of the directive catalog.
type DirectiveSummary struct {
	Namespace   registry.Namespace `json:"namespace" jsonschema_description:"Registry namespace: primitive, group or template"`
	Key         string             `json:"key" jsonschema_description:"Registry key"`
	Label       string             `json:"label"`
	Description string             `json:"description,omitempty"`
	Keywords    []string           `json:"keywords,omitempty"`
}

// ListResponse is the result of list_directives.
type ListResponse struct {
	Directives []DirectiveSummary `json:"directives" jsonschema_description:"Matching directives in catalog order"`
}

// ExpandResponse is the result of expand_group.
type ExpandResponse struct {
	Valid  bool              `json:"valid" jsonschema_description:"False when the arguments failed validation"`
	Errors map[string]string `json:"errors,omitempty" jsonschema_description:"Validation message per argument"`
	Filled map[string]any    `json:"filled,omitempty" jsonschema_description:"Arguments with defaults applied"`
	Group  map[string]any    `json:"group,omitempty" jsonschema_description:"The expanded group directive in recipe form"`
}

// LintResponse is the result of lint_recipe.
type LintResponse struct {
	Valid    bool            `json:"valid"`
	Problems recipe.Problems `json:"problems" jsonschema_description:"Issues found, each naming the offending field"`
}

// Kit defines the directive operations exposed over MCP.
type Kit interface {
	Search(term string) []registry.Definition
	Directive(ns registry.Namespace, key string) (registry.Definition, error)
	Expand(key string, args map[string]any) (expand.Expansion, error)
	Lint(r *recipe.Recipe) recipe.Problems
	Refresh(r *recipe.Recipe) (*recipe.Recipe, []error)
}

// Server wraps a Kit and exposes it as an MCP Server.
type Server struct {
	kit       Kit
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(kit Kit, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		kit:       kit,
		logger:    logger,
		mcpServer: server.NewMCPServer("recipekit-mcp", strings.TrimSpace(recipekit.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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
	// TOOL: list_directives
	listTool := mcp.NewTool("list_directives",
		mcp.WithDescription("List the directives available to container recipes, optionally filtered by a search term."),
		mcp.WithString("search", mcp.Description("Case-insensitive term matched against key, label and keywords")),
		mcp.WithString("namespace", mcp.Description("Restrict to one namespace: primitive, group or template")),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))

	// TOOL: describe_directive
	s.mcpServer.AddTool(mcp.NewTool("describe_directive",
		mcp.WithDescription("Get the markdown help of a directive."),
		mcp.WithString("namespace", mcp.Required(), mcp.Description("primitive, group or template")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Registry key")),
	), s.handleDescribe)

	// TOOL: expand_group
	expandTool := mcp.NewTool("expand_group",
		mcp.WithDescription("Expand a custom group from its arguments into recipe directives."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Custom group key, e.g. shellScript")),
		mcp.WithString("args", mcp.Description("JSON object of arguments")),
		mcp.WithOutputSchema[ExpandResponse](),
	)
	s.mcpServer.AddTool(expandTool, mcp.NewStructuredToolHandler(s.handleExpand))

	// TOOL: lint_recipe
	lintTool := mcp.NewTool("lint_recipe",
		mcp.WithDescription("Validate a recipe and its directives."),
		mcp.WithString("recipe", mcp.Required(), mcp.Description("Recipe document")),
		mcp.WithString("format", mcp.Description("yaml (default) or json")),
		mcp.WithOutputSchema[LintResponse](),
	)
	s.mcpServer.AddTool(lintTool, mcp.NewStructuredToolHandler(s.handleLint))

	// TOOL: graph_recipe
	s.mcpServer.AddTool(mcp.NewTool("graph_recipe",
		mcp.WithDescription("Render the directive tree of a recipe as a Mermaid flowchart."),
		mcp.WithString("recipe", mcp.Required(), mcp.Description("Recipe document")),
		mcp.WithString("format", mcp.Description("yaml (default) or json")),
	), s.handleGraph)

	// TOOL: refresh_recipe
	s.mcpServer.AddTool(mcp.NewTool("refresh_recipe",
		mcp.WithDescription("Re-expand every custom group of a recipe from its stored parameters."),
		mcp.WithString("recipe", mcp.Required(), mcp.Description("Recipe document")),
		mcp.WithString("format", mcp.Description("yaml (default) or json")),
	), s.handleRefresh)
}

// Handler methods for structured tools

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	search, _ := args["search"].(string)
	ns, _ := args["namespace"].(string)

	resp := ListResponse{Directives: []DirectiveSummary{}}
	for _, def := range s.kit.Search(search) {
		if ns != "" && string(def.Namespace()) != ns {
			continue
		}
		resp.Directives = append(resp.Directives, summarize(def))
	}
	return resp, nil
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	key, _ := args["key"].(string)

	var groupArgs map[string]any
	if raw, ok := args["args"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &groupArgs); err != nil {
			return ExpandResponse{}, fmt.Errorf("args must be a JSON object: %w", err)
		}
	}

	exp, err := s.kit.Expand(key, groupArgs)
	if err != nil {
		return ExpandResponse{}, err
	}
	resp := ExpandResponse{Valid: exp.Valid, Errors: exp.Errors, Filled: exp.Filled}
	if exp.Group != nil {
		resp.Group = domain.Encode(exp.Group)
	}
	return resp, nil
}

func (s *Server) handleLint(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LintResponse, error) {
	r, err := parseRecipe(args)
	if err != nil {
		return LintResponse{}, err
	}
	problems := s.kit.Lint(r)
	if problems == nil {
		problems = recipe.Problems{}
	}
	return LintResponse{Valid: len(problems) == 0, Problems: problems}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ns, err := registry.ParseNamespace(request.GetString("namespace", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	def, err := s.kit.Directive(ns, request.GetString("key", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(def.HelpContent(registry.ThemeLight)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := parseRecipe(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := graph.GenerateMermaid(r, &graph.GraphOverlay{Problems: s.kit.Lint(r)})
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleRefresh(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	r, err := parseRecipe(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, errs := s.kit.Refresh(r)
	if len(errs) > 0 {
		return mcp.NewToolResultError(errors.Join(errs...).Error()), nil
	}
	data, err := recipe.Marshal(out, formatOf(args))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: recipekit://directives
	s.mcpServer.AddResource(mcp.NewResource(directivesURI, "Directive Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, _ := s.handleList(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
		jsonBytes, err := json.Marshal(list.Directives)
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      directivesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func summarize(def registry.Definition) DirectiveSummary {
	m := def.Meta()
	return DirectiveSummary{
		Namespace:   def.Namespace(),
		Key:         m.Key,
		Label:       m.Label,
		Description: m.Description,
		Keywords:    m.Keywords,
	}
}

func formatOf(args map[string]any) recipe.Format {
	if f, _ := args["format"].(string); f == string(recipe.FormatJSON) {
		return recipe.FormatJSON
	}
	return recipe.FormatYAML
}

func parseRecipe(args map[string]any) (*recipe.Recipe, error) {
	text, _ := args["recipe"].(string)
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("recipe is required")
	}
	return recipe.Unmarshal([]byte(text), formatOf(args))
}
