package recipe

import (
	"fmt"

	"github.com/neurocontainers/recipekit/pkg/domain"
)

// Architecture is a target CPU architecture of a container.
type Architecture string

const (
	ArchX86_64  Architecture = "x86_64"
	ArchAarch64 Architecture = "aarch64"
)

// Architectures returns the supported architectures.
func Architectures() []Architecture {
	return []Architecture{ArchX86_64, ArchAarch64}
}

// DefaultBuildKind is the only build kind the directive engine targets.
const DefaultBuildKind = "neurodocker"

// CopyrightInfo is one license entry of a recipe.
type CopyrightInfo struct {
	License string `json:"license,omitempty" yaml:"license,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Build holds the build section of a recipe.
type Build struct {
	Kind       string            `json:"kind" yaml:"kind"`
	BaseImage  string            `json:"base-image" yaml:"base-image"`
	PkgManager string            `json:"pkg-manager" yaml:"pkg-manager"`
	Directives domain.Directives `json:"directives" yaml:"directives"`
}

// Recipe is a container build recipe document.
type Recipe struct {
	Name             string            `json:"name" yaml:"name"`
	Version          string            `json:"version" yaml:"version"`
	Architectures    []Architecture    `json:"architectures" yaml:"architectures"`
	Categories       []string          `json:"categories,omitempty" yaml:"categories,omitempty"`
	Readme           string            `json:"readme,omitempty" yaml:"readme,omitempty"`
	ReadmeURL        string            `json:"readme_url,omitempty" yaml:"readme_url,omitempty"`
	StructuredReadme *StructuredReadme `json:"structured_readme,omitempty" yaml:"structured_readme,omitempty"`
	Copyright        []CopyrightInfo   `json:"copyright,omitempty" yaml:"copyright,omitempty"`
	Build            Build             `json:"build" yaml:"build"`
}

// New creates an empty recipe targeting x86_64 with the default build kind.
func New(name, version string) *Recipe {
	return &Recipe{
		Name:          name,
		Version:       version,
		Architectures: []Architecture{ArchX86_64},
		Build: Build{
			Kind:       DefaultBuildKind,
			Directives: domain.Directives{},
		},
	}
}

// SetReadme makes inline text the documentation and clears the URL and structured forms.
func (r *Recipe) SetReadme(readme string) {
	r.Readme = readme
	r.ReadmeURL = ""
	r.StructuredReadme = nil
}

// SetReadmeURL makes a URL the documentation and clears the inline and structured forms.
func (r *Recipe) SetReadmeURL(url string) {
	r.ReadmeURL = url
	r.Readme = ""
	r.StructuredReadme = nil
}

// SetStructuredReadme stores structured documentation, clears the URL and regenerates
// the plain readme from it.
func (r *Recipe) SetStructuredReadme(s StructuredReadme) {
	r.StructuredReadme = &s
	r.ReadmeURL = ""
	r.Readme = s.Text(r.Name, r.Version)
}

// Directive returns the directive at path, descending into groups.
func (r *Recipe) Directive(path domain.Path) (domain.Directive, error) {
	ds := r.Build.Directives
	for depth, i := range path {
		if i < 0 || i >= len(ds) {
			return nil, fmt.Errorf("directive %s: index out of range", path[:depth+1])
		}
		if depth == len(path)-1 {
			return ds[i], nil
		}
		g, ok := ds[i].(*domain.GroupDirective)
		if !ok {
			return nil, fmt.Errorf("directive %s: not a group", path[:depth+1])
		}
		ds = g.Group
	}
	return nil, fmt.Errorf("empty directive path")
}

// ReplaceAt swaps the directive at path for d.
func (r *Recipe) ReplaceAt(path domain.Path, d domain.Directive) error {
	if len(path) == 0 {
		return fmt.Errorf("empty directive path")
	}
	parent, err := r.sequence(path[:len(path)-1])
	if err != nil {
		return err
	}
	i := path[len(path)-1]
	if i < 0 || i >= len(*parent) {
		return fmt.Errorf("directive %s: index out of range", path)
	}
	(*parent)[i] = d
	return nil
}

// ReplaceDirective swaps the top-level directive at i for d.
func (r *Recipe) ReplaceDirective(i int, d domain.Directive) error {
	return r.ReplaceAt(domain.Path{i}, d)
}

// InsertDirective inserts d before the top-level directive at i. i may equal the number
// of directives to append.
func (r *Recipe) InsertDirective(i int, d domain.Directive) error {
	ds := r.Build.Directives
	if i < 0 || i > len(ds) {
		return fmt.Errorf("directive %d: index out of range", i)
	}
	ds = append(ds, nil)
	copy(ds[i+1:], ds[i:])
	ds[i] = d
	r.Build.Directives = ds
	return nil
}

// RemoveDirective deletes the top-level directive at i.
func (r *Recipe) RemoveDirective(i int) error {
	ds := r.Build.Directives
	if i < 0 || i >= len(ds) {
		return fmt.Errorf("directive %d: index out of range", i)
	}
	r.Build.Directives = append(ds[:i:i], ds[i+1:]...)
	return nil
}

func (r *Recipe) sequence(path domain.Path) (*domain.Directives, error) {
	ds := &r.Build.Directives
	for depth, i := range path {
		if i < 0 || i >= len(*ds) {
			return nil, fmt.Errorf("directive %s: index out of range", path[:depth+1])
		}
		g, ok := (*ds)[i].(*domain.GroupDirective)
		if !ok {
			return nil, fmt.Errorf("directive %s: not a group", path[:depth+1])
		}
		ds = &g.Group
	}
	return ds, nil
}
