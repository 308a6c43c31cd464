package recipekit

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/neurocontainers/recipekit/pkg/catalog"
	"github.com/neurocontainers/recipekit/pkg/dispatch"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/recipe"
	"github.com/neurocontainers/recipekit/pkg/registry"
)

// Kit is the high-level entry point for the library.
// It wires the built-in catalog, the expansion engine and the dispatcher together.
type Kit struct {
	registry   *registry.Registry
	engine     *expand.Engine
	dispatcher *dispatch.Dispatcher

	extra  []registry.Definition
	strict bool
	hooks  domain.ExpansionHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Kit.
type Option func(*Kit)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kit) {
		k.logger = logger
	}
}

// WithHooks registers expansion hooks. Repeated calls chain the hooks in order.
func WithHooks(hooks domain.ExpansionHooks) Option {
	return func(k *Kit) {
		k.hooks = k.hooks.Merge(hooks)
	}
}

// WithDefinitions registers definitions after the built-in catalog.
// A definition with a built-in key replaces it unless WithStrictKeys is set.
func WithDefinitions(defs ...registry.Definition) Option {
	return func(k *Kit) {
		k.extra = append(k.extra, defs...)
	}
}

// WithStrictKeys rejects duplicate keys within a namespace.
func WithStrictKeys() Option {
	return func(k *Kit) {
		k.strict = true
	}
}

// New builds a Kit over the built-in catalog.
func New(opts ...Option) (*Kit, error) {
	k := &Kit{}
	for _, opt := range opts {
		opt(k)
	}

	if k.logger == nil {
		k.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	regOpts := []registry.Option{registry.WithLogger(k.logger)}
	if k.strict {
		regOpts = append(regOpts, registry.WithStrictKeys())
	}
	reg, err := catalog.NewRegistry(k.extra, regOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	k.registry = reg
	k.engine = expand.New(reg, expand.WithLogger(k.logger), expand.WithHooks(k.hooks))
	k.dispatcher = dispatch.New(reg, k.engine)
	return k, nil
}

// Registry exposes the directive registry.
func (k *Kit) Registry() *registry.Registry { return k.registry }

// Engine exposes the expansion engine.
func (k *Kit) Engine() *expand.Engine { return k.engine }

// Dispatcher exposes the component dispatcher.
func (k *Kit) Dispatcher() *dispatch.Dispatcher { return k.dispatcher }

// Directives returns every registered definition in registration order.
func (k *Kit) Directives() []registry.Definition { return k.registry.All() }

// Search filters definitions by key, label or keyword.
func (k *Kit) Search(term string) []registry.Definition { return k.registry.Search(term) }

// Directive looks up a definition by namespace and key.
func (k *Kit) Directive(ns registry.Namespace, key string) (registry.Definition, error) {
	return k.registry.Require(ns, key)
}

// Expand expands the custom group registered under key.
func (k *Kit) Expand(key string, args map[string]any) (expand.Expansion, error) {
	return k.engine.Expand(key, args)
}

// Apply merges new parameters into an existing group.
func (k *Kit) Apply(current *domain.GroupDirective, params map[string]any) (*domain.GroupDirective, expand.Expansion, error) {
	return k.engine.Apply(current, params)
}

// Resolve picks the editor component of a directive.
func (k *Kit) Resolve(d domain.Directive) dispatch.Route {
	return k.dispatcher.Resolve(d)
}

// Change forwards a parameter change to a custom group.
func (k *Kit) Change(d domain.Directive, params map[string]any) (domain.Directive, expand.Expansion, error) {
	return k.dispatcher.Change(d, params)
}

// Lint validates the recipe metadata and its directive tree.
func (k *Kit) Lint(r *recipe.Recipe) recipe.Problems {
	return recipe.Check(r, k.dispatcher, k.engine)
}

// Refresh returns a copy of r whose custom groups are re-expanded from their stored
// parameters. r is not modified.
func (k *Kit) Refresh(r *recipe.Recipe) (*recipe.Recipe, []error) {
	out := *r
	ds, errs := k.engine.Refresh(r.Build.Directives)
	out.Build.Directives = ds
	return &out, errs
}
