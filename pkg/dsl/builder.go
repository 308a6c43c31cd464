package dsl

import (
	"errors"
	"fmt"

	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/recipe"
)

// Builder manages the recipe construction.
type Builder struct {
	recipe *recipe.Recipe
	engine *expand.Engine
	target *domain.Directives
	errs   []error
}

// New creates a new recipe builder.
func New(name, version string) *Builder {
	r := recipe.New(name, version)
	return &Builder{
		recipe: r,
		target: &r.Build.Directives,
	}
}

// Engine sets the engine used by Custom.
func (b *Builder) Engine(e *expand.Engine) *Builder {
	b.engine = e
	return b
}

// Arch replaces the target architectures.
func (b *Builder) Arch(archs ...recipe.Architecture) *Builder {
	b.recipe.Architectures = archs
	return b
}

// Category adds categories.
func (b *Builder) Category(categories ...string) *Builder {
	b.recipe.Categories = append(b.recipe.Categories, categories...)
	return b
}

// Readme sets inline documentation.
func (b *Builder) Readme(text string) *Builder {
	b.recipe.SetReadme(text)
	return b
}

// ReadmeURL sets the documentation URL.
func (b *Builder) ReadmeURL(url string) *Builder {
	b.recipe.SetReadmeURL(url)
	return b
}

// StructuredReadme sets structured documentation and regenerates the plain readme.
func (b *Builder) StructuredReadme(s recipe.StructuredReadme) *Builder {
	b.recipe.SetStructuredReadme(s)
	return b
}

// License adds a copyright entry.
func (b *Builder) License(license, url string) *Builder {
	b.recipe.Copyright = append(b.recipe.Copyright, recipe.CopyrightInfo{License: license, URL: url})
	return b
}

// BaseImage sets the base image of the build.
func (b *Builder) BaseImage(image string) *Builder {
	b.recipe.Build.BaseImage = image
	return b
}

// PkgManager sets the package manager of the base image.
func (b *Builder) PkgManager(pm string) *Builder {
	b.recipe.Build.PkgManager = pm
	return b
}

// Add appends an arbitrary directive.
func (b *Builder) Add(d domain.Directive) *Builder {
	*b.target = append(*b.target, d)
	return b
}

// Install adds an install directive.
func (b *Builder) Install(pkgs ...string) *Builder {
	return b.Add(&domain.InstallDirective{Packages: pkgs})
}

// Run adds a run directive.
func (b *Builder) Run(commands ...string) *Builder {
	return b.Add(&domain.RunDirective{Commands: commands})
}

// Env adds an environment directive with a single variable.
func (b *Builder) Env(name, value string) *Builder {
	return b.Add(&domain.EnvironmentDirective{Environment: map[string]string{name: value}})
}

// Variables adds a variables directive.
func (b *Builder) Variables(vars map[string]any) *Builder {
	return b.Add(&domain.VariablesDirective{Variables: vars})
}

// Workdir adds a workdir directive.
func (b *Builder) Workdir(dir string) *Builder {
	return b.Add(&domain.WorkdirDirective{Workdir: dir})
}

// User adds a user directive.
func (b *Builder) User(user string) *Builder {
	return b.Add(&domain.UserDirective{User: user})
}

// Copy adds a copy directive. The last path is the destination.
func (b *Builder) Copy(paths ...string) *Builder {
	return b.Add(&domain.CopyDirective{Paths: paths})
}

// File adds a file directive with inline contents.
func (b *Builder) File(name, contents string) *Builder {
	f := domain.FileInfo{Name: name}
	f.SetContents(contents)
	return b.Add(&domain.FileDirective{File: f})
}

// FileURL adds a file directive fetched from a URL.
func (b *Builder) FileURL(name, url string) *Builder {
	f := domain.FileInfo{Name: name}
	f.SetURL(url)
	return b.Add(&domain.FileDirective{File: f})
}

// Template adds a template directive.
func (b *Builder) Template(name string, params map[string]any) *Builder {
	return b.Add(&domain.TemplateDirective{Name: name, Params: params})
}

// Deploy adds a deploy directive exposing binaries.
func (b *Builder) Deploy(bins ...string) *Builder {
	return b.Add(&domain.DeployDirective{Bins: bins})
}

// DeployPath adds a deploy directive exposing directories.
func (b *Builder) DeployPath(paths ...string) *Builder {
	return b.Add(&domain.DeployDirective{Path: paths})
}

// Test adds a test directive running script.
func (b *Builder) Test(name, script string) *Builder {
	return b.Add(&domain.TestDirective{Test: domain.TestInfo{Name: name, Script: script}})
}

// Include adds an include directive.
func (b *Builder) Include(path string) *Builder {
	return b.Add(&domain.IncludeDirective{Include: path})
}

// Group adds a plain group whose children are added by fn.
func (b *Builder) Group(fn func(g *Builder)) *Builder {
	g := &domain.GroupDirective{Group: domain.Directives{}}
	outer := b.target
	b.target = &g.Group
	fn(b)
	b.target = outer
	return b.Add(g)
}

// Custom expands a registered custom group and adds it. Failures are reported by Build.
func (b *Builder) Custom(key string, args map[string]any) *Builder {
	if b.engine == nil {
		b.errs = append(b.errs, fmt.Errorf("custom group %q: no engine configured", key))
		return b
	}
	exp, err := b.engine.Expand(key, args)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if !exp.Valid {
		b.errs = append(b.errs, fmt.Errorf("custom group %q: %w", key, exp.Err()))
		return b
	}
	return b.Add(exp.Group)
}

// Build validates the recipe and returns it.
func (b *Builder) Build() (*recipe.Recipe, error) {
	errs := append([]error(nil), b.errs...)
	if err := recipe.Validate(b.recipe).Err(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build recipe: %w", errors.Join(errs...))
	}
	return b.recipe, nil
}
