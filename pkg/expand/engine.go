package expand

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neurocontainers/recipekit/internal/logging"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

// Expansion is the outcome of expanding a custom group.
type Expansion struct {
	Key string `json:"key"`
	// Valid is false when the arguments failed validation. Group is nil in that case.
	Valid  bool                   `json:"valid"`
	Group  *domain.GroupDirective `json:"-"`
	Filled map[string]any         `json:"filled,omitempty"`
	Errors map[string]string      `json:"errors,omitempty"`

	result schema.Result
}

// Err returns the validation failures as an error, or nil.
func (e Expansion) Err() error {
	return e.result.Err()
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks adds expansion hooks. Repeated calls chain the hooks in order.
func WithHooks(hooks domain.ExpansionHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// Engine expands custom groups against a registry. It holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	registry *registry.Registry
	logger   *slog.Logger
	hooks    domain.ExpansionHooks
}

// New creates an engine over reg.
func New(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand validates raw against the editor registered under key and, when valid, runs
// its update function. The returned group is tagged with key and carries the filled
// arguments as its custom parameters.
//
// Invalid arguments are not an error: the expansion comes back with Valid false and
// the per-argument messages, and the update function is not called.
func (e *Engine) Expand(key string, raw map[string]any) (Expansion, error) {
	def, ok := e.registry.GroupEditor(key)
	if !ok {
		_, err := e.registry.Require(registry.NamespaceGroup, key)
		return Expansion{Key: key}, fmt.Errorf("%w: %w", domain.ErrUnknownCustomGroup, err)
	}

	res := schema.Validate(def.Arguments, raw)
	exp := Expansion{Key: key, Valid: res.Valid, Filled: res.Filled, Errors: res.Errors, result: res}
	if !res.Valid {
		e.logger.Debug("Custom group arguments rejected", "key", key, "errors", res.Errors)
		e.fire(e.hooks.OnInvalid, &domain.ExpansionEvent{Type: domain.EventInvalid, Key: key, Errors: res.Errors})
		return exp, nil
	}

	out := def.Update(copyArgs(res.Filled))
	switch out.Custom {
	case "":
		out.Custom = key
	case key:
	default:
		return Expansion{Key: key}, fmt.Errorf("%w: editor %q produced %q", domain.ErrCustomTagMismatch, key, out.Custom)
	}

	group := domain.Clone(&domain.GroupDirective{
		Group:        out.Group,
		Custom:       key,
		CustomParams: params(res.Filled),
	}).(*domain.GroupDirective)
	if group.Group == nil {
		group.Group = domain.Directives{}
	}
	exp.Group = group

	e.logger.Debug("Custom group expanded", "key", key, "children", len(group.Group))
	e.fire(e.hooks.OnExpand, &domain.ExpansionEvent{Type: domain.EventExpand, Key: key, Children: len(group.Group)})
	return exp, nil
}

// Apply merges a parameter change into a custom group.
//
//   - Empty params demote the group: the children stay, the custom tag and parameters go.
//   - A group without a custom tag is returned unchanged. Demotion is terminal.
//   - Invalid params leave the group unchanged; the expansion carries the errors.
//   - Otherwise the result is a freshly expanded group.
func (e *Engine) Apply(current *domain.GroupDirective, params map[string]any) (*domain.GroupDirective, Expansion, error) {
	if current == nil {
		return nil, Expansion{}, errors.New("apply: nil group")
	}
	if len(params) == 0 {
		return e.Demote(current), Expansion{Key: current.Custom, Valid: true}, nil
	}
	if !current.IsCustom() {
		return current, Expansion{Valid: true}, nil
	}

	exp, err := e.Expand(current.Custom, params)
	if err != nil {
		return current, exp, err
	}
	if !exp.Valid {
		return current, exp, nil
	}
	return exp.Group, exp, nil
}

// Demote converts a custom group into a plain group holding a copy of its children.
// Demoting a plain group returns an equal copy.
func (e *Engine) Demote(g *domain.GroupDirective) *domain.GroupDirective {
	out := &domain.GroupDirective{Group: domain.CloneAll(g.Group)}
	if out.Group == nil {
		out.Group = domain.Directives{}
	}
	if g.IsCustom() {
		e.logger.Debug("Custom group demoted", "key", g.Custom)
		e.fire(e.hooks.OnDemote, &domain.ExpansionEvent{Type: domain.EventDemote, Key: g.Custom, Children: len(out.Group)})
	}
	return out
}

// Verify re-expands a custom group from its stored parameters and reports ErrGroupDrift
// when the children no longer match. Plain groups always verify, and so does a custom
// group with neither parameters nor children, which has not been expanded yet.
func (e *Engine) Verify(g *domain.GroupDirective) error {
	if !g.IsCustom() {
		return nil
	}
	if len(g.CustomParams) == 0 && len(g.Group) == 0 {
		return nil
	}
	exp, err := e.Expand(g.Custom, g.CustomParams)
	if err != nil {
		return err
	}
	if !exp.Valid {
		return fmt.Errorf("custom group %q: stored parameters: %w", g.Custom, exp.Err())
	}
	if !domain.EqualAll(exp.Group.Group, g.Group) {
		return fmt.Errorf("%w: %s", domain.ErrGroupDrift, g.Custom)
	}
	return nil
}

// Refresh re-expands every custom group of ds from its stored parameters. Groups that
// cannot be expanded are kept as they are and reported. ds is not modified.
func (e *Engine) Refresh(ds domain.Directives) (domain.Directives, []error) {
	var errs []error
	out := e.refresh(nil, ds, &errs)
	return out, errs
}

func (e *Engine) refresh(prefix domain.Path, ds domain.Directives, errs *[]error) domain.Directives {
	if ds == nil {
		return nil
	}
	out := make(domain.Directives, len(ds))
	for i, d := range ds {
		path := append(append(domain.Path{}, prefix...), i)
		g, ok := d.(*domain.GroupDirective)
		if !ok {
			out[i] = domain.Clone(d)
			continue
		}
		if !g.IsCustom() {
			out[i] = &domain.GroupDirective{Group: e.refresh(path, g.Group, errs)}
			continue
		}

		exp, err := e.Expand(g.Custom, g.CustomParams)
		switch {
		case err != nil:
			*errs = append(*errs, fmt.Errorf("directive %s: %w", path, err))
		case !exp.Valid:
			*errs = append(*errs, fmt.Errorf("directive %s: custom group %q: %w", path, g.Custom, exp.Err()))
		default:
			out[i] = exp.Group
			continue
		}
		out[i] = domain.Clone(g)
	}
	return out
}

func (e *Engine) fire(hook func(*domain.ExpansionEvent), ev *domain.ExpansionEvent) {
	if hook == nil {
		return
	}
	ev.Timestamp = time.Now()
	hook(ev)
}

func copyArgs(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// params drops arguments that resolved to nil; they read back as missing.
func params(filled map[string]any) map[string]any {
	out := make(map[string]any, len(filled))
	for k, v := range filled {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
