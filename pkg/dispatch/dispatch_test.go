package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocontainers/recipekit/pkg/catalog"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/registry"
)

func newDispatcher(t *testing.T, extra ...registry.Definition) *Dispatcher {
	t.Helper()
	reg, err := catalog.NewRegistry(extra)
	require.NoError(t, err)
	return New(reg, expand.New(reg))
}

func shellScriptGroup() *domain.GroupDirective {
	return &domain.GroupDirective{
		Group:  domain.Directives{&domain.RunDirective{Commands: []string{"echo"}}},
		Custom: catalog.ShellScriptKey,
		CustomParams: map[string]any{
			"name": "hello", "path": "/opt/bin", "content": "echo hello",
			"executable": true, "addToPath": false, "makeDeployBin": false,
		},
	}
}

func TestResolve(t *testing.T) {
	dp := newDispatcher(t)

	tests := []struct {
		name      string
		directive domain.Directive
		component registry.Component
		custom    bool
	}{
		{"custom group", shellScriptGroup(), registry.CustomComponent(catalog.ShellScriptKey), true},
		{"plain group", &domain.GroupDirective{}, registry.ComponentGenericGroup, false},
		{"unregistered custom", &domain.GroupDirective{Custom: "fslSetup"}, registry.ComponentGenericGroup, false},
		{"run", &domain.RunDirective{}, registry.ComponentRunCommand, false},
		{"workdir", &domain.WorkdirDirective{}, registry.ComponentWorkingDirectory, false},
		{"template", &domain.TemplateDirective{Name: "jq"}, registry.ComponentTemplate, false},
		{"file", &domain.FileDirective{}, registry.ComponentFile, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dp.Resolve(tt.directive)
			assert.Equal(t, tt.component, r.Component)
			assert.Equal(t, tt.custom, r.Custom)
			assert.Equal(t, tt.directive.Kind(), r.Kind)
			if tt.custom {
				require.NotNil(t, r.Editor)
				assert.Equal(t, catalog.ShellScriptKey, r.Editor.Metadata.Key)
			}
		})
	}
}

func TestResolve_GenericComponentOverride(t *testing.T) {
	editor := catalog.ShellScript()
	editor.Metadata.Component = registry.ComponentGenericGroup
	dp := newDispatcher(t, editor)

	r := dp.Resolve(shellScriptGroup())
	assert.Equal(t, registry.ComponentGenericGroup, r.Component)
	assert.False(t, r.Custom)
}

func TestResolve_Unknown(t *testing.T) {
	dp := newDispatcher(t)

	d, err := domain.Decode(map[string]any{"foo": 1, "bar": 2})
	require.NoError(t, err)

	r := dp.Resolve(d)
	assert.Equal(t, registry.ComponentUnknown, r.Component)
	assert.Equal(t, []string{"bar", "foo"}, r.UnknownKeys)
	assert.Equal(t, "Unknown Directive: bar, foo", r.Message)

	assert.NotPanics(t, func() { dp.Resolve(nil) })
}

func TestResolveAll(t *testing.T) {
	dp := newDispatcher(t)

	routes := dp.ResolveAll(domain.Directives{
		&domain.InstallDirective{Packages: []string{"git"}},
		&domain.GroupDirective{Group: domain.Directives{
			&domain.RunDirective{},
			shellScriptGroup(),
		}},
	})

	require.Len(t, routes, 4, "children of custom groups are not listed")
	assert.Equal(t, "0", routes[0].Path.String())
	assert.Equal(t, "1.0", routes[2].Path.String())
	assert.Equal(t, "1.1", routes[3].Path.String())
	assert.True(t, routes[3].Custom)
}

func TestChange(t *testing.T) {
	dp := newDispatcher(t)
	g := shellScriptGroup()

	params := map[string]any{"name": "hello", "path": "/opt/bin", "content": "echo hello", "addToPath": false, "makeDeployBin": false}
	out, exp, err := dp.Change(g, params)
	require.NoError(t, err)
	require.True(t, exp.Valid)
	next := out.(*domain.GroupDirective)
	assert.Len(t, next.Group, 2)
	assert.Equal(t, catalog.ShellScriptKey, next.Custom)

	demoted, _, err := dp.Change(g, nil)
	require.NoError(t, err)
	assert.False(t, demoted.(*domain.GroupDirective).IsCustom())

	run := &domain.RunDirective{Commands: []string{"ls"}}
	same, _, err := dp.Change(run, params)
	assert.True(t, errors.Is(err, ErrNotCustom))
	assert.Same(t, run, same)
}
