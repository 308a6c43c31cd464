package registry

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/neurocontainers/recipekit/internal/logging"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

type entryRef struct {
	ns  Namespace
	key string
}

// Option configures a Builder.
type Option func(*Builder)

// WithStrictKeys makes re-registering a key an error instead of an overwrite.
func WithStrictKeys() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// WithLogger sets the logger used to report overwritten keys.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder collects definitions during process bootstrap.
// Registration order is kept; re-registering a key overwrites the definition in place
// (last write wins) unless the builder is strict.
type Builder struct {
	mu     sync.Mutex
	strict bool
	logger *slog.Logger

	order      []entryRef
	groups     map[string]*GroupEditor
	templates  map[string]*Template
	primitives map[string]*Primitive
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:     logging.NewNop(),
		groups:     make(map[string]*GroupEditor),
		templates:  make(map[string]*Template),
		primitives: make(map[string]*Primitive),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RegisterGroupEditor adds a custom group editor. The definition is checked and
// completed (component handle, default value) in one step.
func (b *Builder) RegisterGroupEditor(def GroupEditor) error {
	if err := def.check(); err != nil {
		return err
	}
	key := def.Metadata.Key
	if def.Metadata.Component == "" {
		def.Metadata.Component = CustomComponent(key)
	}
	if def.Metadata.Default == nil {
		def.Metadata.Default = defaultGroup(&def)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, exists := b.groups[key]
	if err := b.admit(NamespaceGroup, key, exists); err != nil {
		return err
	}
	b.groups[key] = &def
	return nil
}

// defaultGroup expands the editor with its schema defaults. When the defaults do not
// validate, the default is an empty group that has not been expanded yet.
func defaultGroup(def *GroupEditor) *domain.GroupDirective {
	key := def.Metadata.Key
	res := schema.Validate(def.Arguments, nil)
	if !res.Valid {
		return &domain.GroupDirective{Group: domain.Directives{}, Custom: key}
	}

	out := def.Update(res.Filled)
	params := make(map[string]any, len(res.Filled))
	for k, v := range res.Filled {
		if v != nil {
			params[k] = v
		}
	}
	g := &domain.GroupDirective{Group: out.Group, Custom: key, CustomParams: params}
	if g.Group == nil {
		g.Group = domain.Directives{}
	}
	return g
}

// RegisterTemplate adds a template definition.
func (b *Builder) RegisterTemplate(def Template) error {
	if err := def.check(); err != nil {
		return err
	}
	key := def.Metadata.Key
	if def.Metadata.Component == "" {
		def.Metadata.Component = ComponentTemplate
	}
	if def.Metadata.Default == nil {
		def.Metadata.Default = &domain.TemplateDirective{Name: def.Name}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, exists := b.templates[key]
	if err := b.admit(NamespaceTemplate, key, exists); err != nil {
		return err
	}
	b.templates[key] = &def
	return nil
}

// RegisterPrimitive adds the picker entry of a primitive directive kind.
func (b *Builder) RegisterPrimitive(def Primitive) error {
	if err := def.check(); err != nil {
		return err
	}
	key := def.Metadata.Key
	if def.Metadata.Component == "" {
		def.Metadata.Component = ComponentFor(def.Kind)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, exists := b.primitives[key]
	if err := b.admit(NamespacePrimitive, key, exists); err != nil {
		return err
	}
	b.primitives[key] = &def
	return nil
}

// Register adds any supported definition.
func (b *Builder) Register(def Definition) error {
	switch d := def.(type) {
	case *GroupEditor:
		return b.RegisterGroupEditor(*d)
	case *Template:
		return b.RegisterTemplate(*d)
	case *Primitive:
		return b.RegisterPrimitive(*d)
	default:
		return fmt.Errorf("unsupported definition type %T", def)
	}
}

// admit records the key position. Must be called with mu held.
func (b *Builder) admit(ns Namespace, key string, exists bool) error {
	if !exists {
		b.order = append(b.order, entryRef{ns: ns, key: key})
		return nil
	}
	if b.strict {
		return fmt.Errorf("%w: %s/%s", domain.ErrDuplicateKey, ns, key)
	}
	b.logger.Warn("Registry key overwritten", "namespace", ns, "key", key)
	return nil
}

// Build freezes the collected definitions. The builder can keep being used; later
// registrations do not affect registries already built.
func (b *Builder) Build() *Registry {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := &Registry{
		order:      append([]entryRef(nil), b.order...),
		groups:     make(map[string]*GroupEditor, len(b.groups)),
		templates:  make(map[string]*Template, len(b.templates)),
		primitives: make(map[string]*Primitive, len(b.primitives)),
	}
	for k, v := range b.groups {
		r.groups[k] = v
	}
	for k, v := range b.templates {
		r.templates[k] = v
	}
	for k, v := range b.primitives {
		r.primitives[k] = v
	}
	return r
}

// New folds a list of definitions into a registry.
func New(defs []Definition, opts ...Option) (*Registry, error) {
	b := NewBuilder(opts...)
	for _, def := range defs {
		if err := b.Register(def); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Registry is the immutable directive table. It is safe for concurrent reads.
type Registry struct {
	order      []entryRef
	groups     map[string]*GroupEditor
	templates  map[string]*Template
	primitives map[string]*Primitive
}

// GroupEditor looks up a custom group editor.
func (r *Registry) GroupEditor(key string) (*GroupEditor, bool) {
	g, ok := r.groups[key]
	return g, ok
}

// Template looks up a template.
func (r *Registry) Template(key string) (*Template, bool) {
	t, ok := r.templates[key]
	return t, ok
}

// Primitive looks up the picker entry of a primitive directive.
func (r *Registry) Primitive(key string) (*Primitive, bool) {
	p, ok := r.primitives[key]
	return p, ok
}

// Lookup finds a definition by namespace and key. A miss is reported through ok, never
// a panic.
func (r *Registry) Lookup(ns Namespace, key string) (Definition, bool) {
	switch ns {
	case NamespaceGroup:
		if g, ok := r.groups[key]; ok {
			return g, true
		}
	case NamespaceTemplate:
		if t, ok := r.templates[key]; ok {
			return t, true
		}
	case NamespacePrimitive:
		if p, ok := r.primitives[key]; ok {
			return p, true
		}
	}
	return nil, false
}

// Require is Lookup with an error naming the missing key.
func (r *Registry) Require(ns Namespace, key string) (Definition, error) {
	def, ok := r.Lookup(ns, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrUnknownRegistryKey, ns, key)
	}
	return def, nil
}

// All returns every definition in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, ref := range r.order {
		if def, ok := r.Lookup(ref.ns, ref.key); ok {
			out = append(out, def)
		}
	}
	return out
}

// Search returns the definitions whose key, label or keywords contain term, in
// registration order. Matching is case-insensitive; an empty term matches everything.
func (r *Registry) Search(term string) []Definition {
	term = strings.ToLower(strings.TrimSpace(term))
	all := r.All()
	if term == "" {
		return all
	}
	var out []Definition
	for _, def := range all {
		m := def.Meta()
		if strings.Contains(strings.ToLower(m.Key), term) || strings.Contains(strings.ToLower(m.Label), term) {
			out = append(out, def)
			continue
		}
		for _, kw := range m.Keywords {
			if strings.Contains(strings.ToLower(kw), term) {
				out = append(out, def)
				break
			}
		}
	}
	return out
}

// View is a read-only snapshot of the registry tables.
type View struct {
	GroupEditors map[string]*GroupEditor
	Templates    map[string]*Template
	Primitives   map[string]*Primitive
}

// View returns copies of the three tables for introspection.
func (r *Registry) View() View {
	v := View{
		GroupEditors: make(map[string]*GroupEditor, len(r.groups)),
		Templates:    make(map[string]*Template, len(r.templates)),
		Primitives:   make(map[string]*Primitive, len(r.primitives)),
	}
	for k, g := range r.groups {
		v.GroupEditors[k] = g
	}
	for k, t := range r.templates {
		v.Templates[k] = t
	}
	for k, p := range r.primitives {
		v.Primitives[k] = p
	}
	return v
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.order) }
