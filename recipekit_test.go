package recipekit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocontainers/recipekit/pkg/catalog"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/recipe"
	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

func greeter() *registry.GroupEditor {
	return &registry.GroupEditor{
		Metadata:  registry.Metadata{Key: "greeter", Label: "Greeter", Keywords: []string{"hello"}},
		Arguments: schema.Arguments{{Name: "who", Type: schema.ArgText, Required: true}},
		Update: func(args map[string]any) domain.GroupDirective {
			return domain.GroupDirective{Group: domain.Directives{
				&domain.RunDirective{Commands: []string{"echo hello " + args["who"].(string)}},
			}}
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	kit, err := New()
	require.NoError(t, err)

	assert.Equal(t, len(catalog.Default()), kit.Registry().Len())
	assert.Len(t, kit.Directives(), kit.Registry().Len())

	def, err := kit.Directive(registry.NamespaceGroup, catalog.ShellScriptKey)
	require.NoError(t, err)
	assert.Equal(t, "Shell Script", def.Meta().Label)

	_, err = kit.Directive(registry.NamespaceTemplate, "nope")
	assert.True(t, errors.Is(err, domain.ErrUnknownRegistryKey))
}

func TestNew_Definitions(t *testing.T) {
	var expanded []string
	kit, err := New(
		WithDefinitions(greeter()),
		WithHooks(domain.ExpansionHooks{OnExpand: func(e *domain.ExpansionEvent) {
			expanded = append(expanded, e.Key)
		}}),
	)
	require.NoError(t, err)

	found := kit.Search("HELLO")
	require.NotEmpty(t, found)
	assert.Equal(t, "greeter", found[len(found)-1].Meta().Key)

	exp, err := kit.Expand("greeter", map[string]any{"who": "world"})
	require.NoError(t, err)
	require.True(t, exp.Valid)
	assert.Equal(t, "greeter", exp.Group.Custom)
	assert.Equal(t, []string{"greeter"}, expanded)

	route := kit.Resolve(exp.Group)
	assert.True(t, route.Custom)
	assert.Equal(t, registry.CustomComponent("greeter"), route.Component)

	changed, _, err := kit.Change(exp.Group, map[string]any{"who": "there"})
	require.NoError(t, err)
	run := changed.(*domain.GroupDirective).Group[0].(*domain.RunDirective)
	assert.Equal(t, []string{"echo hello there"}, run.Commands)

	demoted, _, err := kit.Apply(exp.Group, nil)
	require.NoError(t, err)
	assert.False(t, demoted.IsCustom())
}

func TestNew_StrictKeys(t *testing.T) {
	_, err := New(WithStrictKeys(), WithDefinitions(catalog.ShellScript()))
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey))

	kit, err := New(WithDefinitions(catalog.ShellScript()))
	require.NoError(t, err)
	assert.Equal(t, len(catalog.Default()), kit.Registry().Len())
}

func TestKit_LintAndRefresh(t *testing.T) {
	kit, err := New()
	require.NoError(t, err)

	exp, err := kit.Expand(catalog.ShellScriptKey, map[string]any{"name": "hello"})
	require.NoError(t, err)

	stale := domain.Clone(exp.Group).(*domain.GroupDirective)
	stale.Group = stale.Group[:2]

	r := recipe.New("hello", "1.0")
	r.Categories = []string{"programming"}
	r.SetReadme("Says hello.")
	r.Build.Directives = domain.Directives{stale}

	problems := kit.Lint(r)
	require.Len(t, problems, 1)
	assert.Equal(t, "build.directives.0", problems[0].Field)

	refreshed, errs := kit.Refresh(r)
	assert.Empty(t, errs)
	assert.Empty(t, kit.Lint(refreshed))
	assert.Len(t, r.Build.Directives[0].(*domain.GroupDirective).Group, 2, "the input recipe is left alone")
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
}
