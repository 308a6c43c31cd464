// Package dispatch decides which editor component handles a directive.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/registry"
)

// ErrNotCustom is returned when a parameter change targets a directive that is not
// handled by a custom group editor.
var ErrNotCustom = errors.New("directive is not a custom group")

// Route is the editor assignment of one directive.
type Route struct {
	Path      domain.Path        `json:"path,omitempty"`
	Component registry.Component `json:"component"`
	Kind      domain.Kind        `json:"kind"`
	// Editor is set for custom groups routed to their registered editor.
	Editor      *registry.GroupEditor `json:"-"`
	Custom      bool                  `json:"custom"`
	UnknownKeys []string              `json:"unknownKeys,omitempty"`
	Message     string                `json:"message,omitempty"`
}

// Dispatcher routes directives to editor components.
type Dispatcher struct {
	registry *registry.Registry
	engine   *expand.Engine
}

// New creates a dispatcher.
func New(reg *registry.Registry, engine *expand.Engine) *Dispatcher {
	return &Dispatcher{registry: reg, engine: engine}
}

// Resolve picks the component for d. A group tagged with a registered custom editor goes
// to that editor; every other group goes to the generic group editor. Unknown directives
// route to the fallback component with a message naming their keys.
func (dp *Dispatcher) Resolve(d domain.Directive) Route {
	switch v := d.(type) {
	case *domain.GroupDirective:
		if v.IsCustom() {
			if def, ok := dp.registry.GroupEditor(v.Custom); ok && def.Metadata.Component != registry.ComponentGenericGroup {
				return Route{Component: def.Metadata.Component, Kind: domain.KindGroup, Editor: def, Custom: true}
			}
		}
		return Route{Component: registry.ComponentGenericGroup, Kind: domain.KindGroup}
	case *domain.UnknownDirective:
		return unknownRoute(v.Keys)
	case nil:
		return unknownRoute(nil)
	default:
		return Route{Component: registry.ComponentFor(d.Kind()), Kind: d.Kind()}
	}
}

func unknownRoute(keys []string) Route {
	return Route{
		Component:   registry.ComponentUnknown,
		Kind:        domain.KindUnknown,
		UnknownKeys: keys,
		Message:     "Unknown Directive: " + strings.Join(keys, ", "),
	}
}

// ResolveAll routes every directive of ds with its position. Plain groups are descended
// into; custom groups are edited as a whole, so their children are not listed.
func (dp *Dispatcher) ResolveAll(ds domain.Directives) []Route {
	var routes []Route
	domain.Walk(ds, func(path domain.Path, d domain.Directive) bool {
		r := dp.Resolve(d)
		r.Path = path
		routes = append(routes, r)
		return r.Kind == domain.KindGroup && !r.Custom
	})
	return routes
}

// Change applies new parameters to a directive routed to a custom editor, following
// the merge rule of expand.Engine.Apply. Any other directive is returned unchanged
// together with ErrNotCustom.
func (dp *Dispatcher) Change(d domain.Directive, params map[string]any) (domain.Directive, expand.Expansion, error) {
	r := dp.Resolve(d)
	if !r.Custom {
		return d, expand.Expansion{}, fmt.Errorf("%w: %s", ErrNotCustom, r.Component)
	}
	g, exp, err := dp.engine.Apply(d.(*domain.GroupDirective), params)
	return g, exp, err
}
