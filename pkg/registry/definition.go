package registry

import (
	"fmt"

	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

// Namespace separates the key spaces of the registry. The same key may exist in
// several namespaces without colliding.
type Namespace string

const (
	NamespacePrimitive Namespace = "primitive"
	NamespaceGroup     Namespace = "group"
	NamespaceTemplate  Namespace = "template"
)

// ParseNamespace converts a namespace name.
func ParseNamespace(s string) (Namespace, error) {
	switch ns := Namespace(s); ns {
	case NamespacePrimitive, NamespaceGroup, NamespaceTemplate:
		return ns, nil
	default:
		return "", fmt.Errorf("unknown namespace: %s", s)
	}
}

// Theme selects the palette of help content.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette is a light/dark pair of presentation classes. The core passes it through.
type Palette struct {
	Light string `json:"light" yaml:"light"`
	Dark  string `json:"dark" yaml:"dark"`
}

// Metadata is the presentation-facing description shared by every definition.
type Metadata struct {
	Key         string           `json:"key" yaml:"key"`
	Label       string           `json:"label" yaml:"label"`
	Description string           `json:"description" yaml:"description"`
	Icon        string           `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color       Palette          `json:"color" yaml:"color"`
	IconColor   Palette          `json:"iconColor" yaml:"iconColor"`
	Keywords    []string         `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Default     domain.Directive `json:"-" yaml:"-"`
	Component   Component        `json:"component" yaml:"component"`
}

// HelpFunc returns markdown help content for the given theme.
type HelpFunc func(Theme) string

// UpdateFunc expands a filled argument map into a group. It must be pure.
type UpdateFunc func(args map[string]any) domain.GroupDirective

// Definition is anything the registry holds.
type Definition interface {
	Meta() Metadata
	Namespace() Namespace
	HelpContent(Theme) string
}

// GroupEditor is a custom group editor: a macro from a small argument set to a
// directive sequence.
type GroupEditor struct {
	Metadata  Metadata
	Help      HelpFunc
	Arguments schema.Arguments
	Update    UpdateFunc
}

func (g *GroupEditor) Meta() Metadata       { return g.Metadata }
func (g *GroupEditor) Namespace() Namespace { return NamespaceGroup }

func (g *GroupEditor) HelpContent(t Theme) string {
	if g.Help == nil {
		return ""
	}
	return g.Help(t)
}

func (g *GroupEditor) check() error {
	if g.Metadata.Key == "" {
		return fmt.Errorf("group editor: empty key")
	}
	if g.Update == nil {
		return fmt.Errorf("group editor %q: update function is nil", g.Metadata.Key)
	}
	if err := g.Arguments.Check(); err != nil {
		return fmt.Errorf("group editor %q: %w", g.Metadata.Key, err)
	}
	return nil
}

// TemplateMethod is one installation method of a template with its arguments.
type TemplateMethod struct {
	Arguments schema.Arguments `json:"arguments" yaml:"arguments"`
}

// Template describes an external tool installed through a generated template directive.
type Template struct {
	Metadata    Metadata
	Name        string
	URL         string
	Description string
	Help        HelpFunc
	Binaries    *TemplateMethod
	Source      *TemplateMethod
}

// Template installation methods.
const (
	MethodBinaries = "binaries"
	MethodSource   = "source"
)

func (t *Template) Meta() Metadata       { return t.Metadata }
func (t *Template) Namespace() Namespace { return NamespaceTemplate }

func (t *Template) HelpContent(th Theme) string {
	if t.Help != nil {
		return t.Help(th)
	}
	return fmt.Sprintf("# %s\n\n%s\n\nHomepage: %s\n", t.Metadata.Label, t.Description, t.URL)
}

// Method returns the arguments of an installation method.
func (t *Template) Method(name string) (*TemplateMethod, bool) {
	switch name {
	case MethodBinaries:
		return t.Binaries, t.Binaries != nil
	case MethodSource:
		return t.Source, t.Source != nil
	default:
		return nil, false
	}
}

// Instantiate validates args against a method and produces the template directive.
// An invalid argument set yields a nil directive and the failed result; the error is
// reserved for an unknown method.
func (t *Template) Instantiate(method string, args map[string]any) (*domain.TemplateDirective, schema.Result, error) {
	m, ok := t.Method(method)
	if !ok {
		return nil, schema.Result{}, fmt.Errorf("template %q has no %q method", t.Name, method)
	}
	res := schema.Validate(m.Arguments, args)
	if !res.Valid {
		return nil, res, nil
	}
	params := map[string]any{"method": method}
	for k, v := range res.Filled {
		if v != nil {
			params[k] = v
		}
	}
	return &domain.TemplateDirective{Name: t.Name, Params: params}, res, nil
}

func (t *Template) check() error {
	if t.Metadata.Key == "" {
		return fmt.Errorf("template: empty key")
	}
	if t.Name == "" {
		return fmt.Errorf("template %q: empty name", t.Metadata.Key)
	}
	for _, m := range []*TemplateMethod{t.Binaries, t.Source} {
		if m == nil {
			continue
		}
		if err := m.Arguments.Check(); err != nil {
			return fmt.Errorf("template %q: %w", t.Metadata.Key, err)
		}
	}
	return nil
}

// Primitive describes the editor of a primitive directive kind for pickers.
type Primitive struct {
	Metadata Metadata
	Kind     domain.Kind
	Help     HelpFunc
}

func (p *Primitive) Meta() Metadata       { return p.Metadata }
func (p *Primitive) Namespace() Namespace { return NamespacePrimitive }

func (p *Primitive) HelpContent(t Theme) string {
	if p.Help == nil {
		return ""
	}
	return p.Help(t)
}

func (p *Primitive) check() error {
	if !domain.IsKind(string(p.Kind)) {
		return fmt.Errorf("primitive %q: unknown kind %q", p.Metadata.Key, p.Kind)
	}
	if p.Metadata.Key == "" {
		return fmt.Errorf("primitive %q: empty key", p.Kind)
	}
	return nil
}
