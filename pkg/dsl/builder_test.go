package dsl

import (
	"errors"
	"testing"

	"github.com/neurocontainers/recipekit/pkg/catalog"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/recipe"
)

func newEngine(t *testing.T) *expand.Engine {
	t.Helper()
	reg, err := catalog.NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}
	return expand.New(reg)
}

func TestBuilder_SimpleRecipe(t *testing.T) {
	r, err := New("jq", "1.7.1").
		Arch(recipe.ArchX86_64, recipe.ArchAarch64).
		Category("programming").
		Readme("jq is a JSON processor.").
		License("MIT", "https://github.com/jqlang/jq/blob/master/COPYING").
		BaseImage("ubuntu:22.04").
		PkgManager("apt").
		Install("curl").
		Template("jq", map[string]any{"method": "binaries", "version": "1.7.1"}).
		Deploy("jq").
		Test("version", "jq --version").
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if r.Build.Kind != recipe.DefaultBuildKind {
		t.Errorf("Expected build kind %q, got %q", recipe.DefaultBuildKind, r.Build.Kind)
	}
	if len(r.Architectures) != 2 {
		t.Errorf("Expected 2 architectures, got %v", r.Architectures)
	}
	if len(r.Build.Directives) != 4 {
		t.Fatalf("Expected 4 directives, got %d", len(r.Build.Directives))
	}

	kinds := []domain.Kind{domain.KindInstall, domain.KindTemplate, domain.KindDeploy, domain.KindTest}
	for i, want := range kinds {
		if got := r.Build.Directives[i].Kind(); got != want {
			t.Errorf("Directive %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestBuilder_Groups(t *testing.T) {
	r, err := New("tools", "1.0").
		Category("workflows").
		ReadmeURL("https://example.org").
		Workdir("/opt").
		Group(func(g *Builder) {
			g.Env("FOO", "bar").
				Run("echo $FOO").
				Group(func(inner *Builder) {
					inner.User("root")
				})
		}).
		User("jovyan").
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	ds := r.Build.Directives
	if len(ds) != 3 {
		t.Fatalf("Expected 3 top-level directives, got %d", len(ds))
	}
	g, ok := ds[1].(*domain.GroupDirective)
	if !ok {
		t.Fatalf("Expected group at 1, got %T", ds[1])
	}
	if len(g.Group) != 3 {
		t.Fatalf("Expected 3 children, got %d", len(g.Group))
	}
	inner := g.Group[2].(*domain.GroupDirective)
	if inner.Group[0].(*domain.UserDirective).User != "root" {
		t.Errorf("Expected nested user directive")
	}
	if ds[2].(*domain.UserDirective).User != "jovyan" {
		t.Errorf("Expected directives after a group to go to the top level")
	}
}

func TestBuilder_Custom(t *testing.T) {
	r, err := New("hello", "1.0").
		Engine(newEngine(t)).
		Category("programming").
		Readme("Says hello.").
		Custom(catalog.ShellScriptKey, map[string]any{"name": "hello", "content": "echo hello"}).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	g, ok := r.Build.Directives[0].(*domain.GroupDirective)
	if !ok || g.Custom != catalog.ShellScriptKey {
		t.Fatalf("Expected shellScript group, got %#v", r.Build.Directives[0])
	}
	if g.CustomParams["name"] != "hello" {
		t.Errorf("Expected customParams to carry the arguments, got %v", g.CustomParams)
	}
}

func TestBuilder_Errors(t *testing.T) {
	_, err := New("hello", "1.0").
		Category("programming").
		Readme("x").
		Custom(catalog.ShellScriptKey, nil).
		Build()
	if err == nil {
		t.Error("Expected error without engine")
	}

	_, err = New("hello", "1.0").
		Engine(newEngine(t)).
		Category("programming").
		Readme("x").
		Custom(catalog.ShellScriptKey, map[string]any{"name": 42}).
		Custom("missing", map[string]any{"a": 1}).
		Build()
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnknownCustomGroup) {
		t.Errorf("Expected unknown custom group error, got %v", err)
	}

	_, err = New("Bad-Name", "").Build()
	if err == nil {
		t.Error("Expected metadata validation to fail")
	}
}
