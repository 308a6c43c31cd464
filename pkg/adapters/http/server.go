package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neurocontainers/recipekit"
	"github.com/neurocontainers/recipekit/internal/presentation/graph"
	"github.com/neurocontainers/recipekit/pkg/dispatch"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/recipe"
	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

const maxBodySize = 1 << 20

// Kit defines the directive operations served over HTTP.
type Kit interface {
	Search(term string) []registry.Definition
	Directive(ns registry.Namespace, key string) (registry.Definition, error)
	Expand(key string, args map[string]any) (expand.Expansion, error)
	Resolve(d domain.Directive) dispatch.Route
	Change(d domain.Directive, params map[string]any) (domain.Directive, expand.Expansion, error)
	Lint(r *recipe.Recipe) recipe.Problems
	Refresh(r *recipe.Recipe) (*recipe.Recipe, []error)
}

var _ Kit = (*recipekit.Kit)(nil)

// Server serves a Kit.
type Server struct {
	Kit     Kit
	Streams *StreamManager

	metrics    http.Handler
	corsOrigin string
	logger     *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts a metrics handler on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams serves expansion events from sm on GET /events.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithCORSOrigin sets the allowed CORS origin (default "*").
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the kit.
func NewHandler(kit Kit, opts ...Option) http.Handler {
	s := &Server{Kit: kit, corsOrigin: "*", logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/directives", s.ListDirectives)
	r.Get("/directives/{namespace}/{key}", s.GetDirective)
	r.Post("/expand/{key}", s.Expand)
	r.Post("/dispatch", s.Dispatch)
	r.Post("/change", s.Change)
	r.Post("/recipes/validate", s.ValidateRecipe)
	r.Post("/recipes/refresh", s.RefreshRecipe)
	r.Post("/recipes/graph", s.GraphRecipe)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	if s.Streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}

	return enableCORS(s.corsOrigin, r)
}

func enableCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DirectiveSummary is a definition as listed by the picker.
type DirectiveSummary struct {
	Namespace registry.Namespace `json:"namespace"`
	registry.Metadata
}

// DirectiveDetail is a definition with its arguments and help content.
type DirectiveDetail struct {
	DirectiveSummary
	Arguments schema.Arguments            `json:"arguments,omitempty"`
	Methods   map[string]schema.Arguments `json:"methods,omitempty"`
	Default   map[string]any              `json:"default,omitempty"`
	Help      string                      `json:"help"`
}

// ExpandRequest is the body of POST /expand/{key}.
type ExpandRequest struct {
	Args map[string]any `json:"args"`
}

// ExpansionResponse reports an expansion with the group in wire form.
type ExpansionResponse struct {
	expand.Expansion
	Group map[string]any `json:"group,omitempty"`
}

// DirectiveRequest carries a directive in wire form, with optional parameters.
type DirectiveRequest struct {
	Directive map[string]any `json:"directive"`
	Params    map[string]any `json:"params,omitempty"`
}

// ChangeResponse is the result of POST /change.
type ChangeResponse struct {
	Directive map[string]any    `json:"directive"`
	Expansion ExpansionResponse `json:"expansion"`
}

// ValidateResponse is the result of POST /recipes/validate.
type ValidateResponse struct {
	Valid    bool            `json:"valid"`
	Problems recipe.Problems `json:"problems"`
}

// RefreshResponse is the result of POST /recipes/refresh.
type RefreshResponse struct {
	Recipe *recipe.Recipe `json:"recipe"`
	Errors []string       `json:"errors,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "recipekit-http",
		"version": strings.TrimSpace(recipekit.Version),
	})
}

// ListDirectives handles the GET /directives request.
func (s *Server) ListDirectives(w http.ResponseWriter, r *http.Request) {
	defs := s.Kit.Search(r.URL.Query().Get("search"))
	ns := r.URL.Query().Get("namespace")

	out := make([]DirectiveSummary, 0, len(defs))
	for _, def := range defs {
		if ns != "" && string(def.Namespace()) != ns {
			continue
		}
		out = append(out, summarize(def))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetDirective handles the GET /directives/{namespace}/{key} request.
func (s *Server) GetDirective(w http.ResponseWriter, r *http.Request) {
	ns, err := registry.ParseNamespace(chi.URLParam(r, "namespace"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	def, err := s.Kit.Directive(ns, chi.URLParam(r, "key"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	theme := registry.ThemeLight
	if r.URL.Query().Get("theme") == string(registry.ThemeDark) {
		theme = registry.ThemeDark
	}

	detail := DirectiveDetail{DirectiveSummary: summarize(def), Help: def.HelpContent(theme)}
	switch d := def.(type) {
	case *registry.GroupEditor:
		detail.Arguments = d.Arguments
	case *registry.Template:
		detail.Methods = map[string]schema.Arguments{}
		if d.Binaries != nil {
			detail.Methods[registry.MethodBinaries] = d.Binaries.Arguments
		}
		if d.Source != nil {
			detail.Methods[registry.MethodSource] = d.Source.Arguments
		}
	}
	if def.Meta().Default != nil {
		detail.Default = domain.Encode(def.Meta().Default)
	}
	s.writeJSON(w, http.StatusOK, detail)
}

// Expand handles the POST /expand/{key} request. Invalid arguments are reported with
// 422 and the per-argument errors.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	var body ExpandRequest
	if !s.decode(w, r, &body) {
		return
	}

	exp, err := s.Kit.Expand(chi.URLParam(r, "key"), body.Args)
	if err != nil {
		s.fail(w, "Expand", err)
		return
	}

	status := http.StatusOK
	if !exp.Valid {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, expansionResponse(exp))
}

// Dispatch handles the POST /dispatch request.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	var body DirectiveRequest
	if !s.decode(w, r, &body) {
		return
	}
	d, err := domain.Decode(body.Directive)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid directive: %v", err), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Kit.Resolve(d))
}

// Change handles the POST /change request.
func (s *Server) Change(w http.ResponseWriter, r *http.Request) {
	var body DirectiveRequest
	if !s.decode(w, r, &body) {
		return
	}
	d, err := domain.Decode(body.Directive)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid directive: %v", err), http.StatusBadRequest)
		return
	}

	out, exp, err := s.Kit.Change(d, body.Params)
	if err != nil {
		s.fail(w, "Change", err)
		return
	}
	status := http.StatusOK
	if !exp.Valid {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, ChangeResponse{Directive: domain.Encode(out), Expansion: expansionResponse(exp)})
}

// ValidateRecipe handles the POST /recipes/validate request.
func (s *Server) ValidateRecipe(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.readRecipe(w, r)
	if !ok {
		return
	}
	problems := s.Kit.Lint(rec)
	if problems == nil {
		problems = recipe.Problems{}
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: len(problems) == 0, Problems: problems})
}

// RefreshRecipe handles the POST /recipes/refresh request.
func (s *Server) RefreshRecipe(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.readRecipe(w, r)
	if !ok {
		return
	}
	out, errs := s.Kit.Refresh(rec)
	resp := RefreshResponse{Recipe: out}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, err.Error())
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GraphRecipe handles the POST /recipes/graph request. It returns Mermaid text with
// lint problems highlighted.
func (s *Server) GraphRecipe(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.readRecipe(w, r)
	if !ok {
		return
	}
	out := graph.GenerateMermaid(rec, &graph.GraphOverlay{Problems: s.Kit.Lint(rec)})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, out)
}

// -- Helpers --

func summarize(def registry.Definition) DirectiveSummary {
	return DirectiveSummary{Namespace: def.Namespace(), Metadata: def.Meta()}
}

func expansionResponse(exp expand.Expansion) ExpansionResponse {
	resp := ExpansionResponse{Expansion: exp}
	if exp.Group != nil {
		resp.Group = domain.Encode(exp.Group)
	}
	return resp
}

// readRecipe decodes the request body as a recipe. JSON is picked by the format query
// parameter or the content type; YAML otherwise.
func (s *Server) readRecipe(w http.ResponseWriter, r *http.Request) (*recipe.Recipe, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Recipe: Invalid request body", "error", err)
		return nil, false
	}

	format := recipe.FormatYAML
	if r.URL.Query().Get("format") == string(recipe.FormatJSON) ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		format = recipe.FormatJSON
	}

	rec, err := recipe.Unmarshal(data, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return rec, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownCustomGroup), errors.Is(err, domain.ErrUnknownRegistryKey):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, dispatch.ErrNotCustom):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
