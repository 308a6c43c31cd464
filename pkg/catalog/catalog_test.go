package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

func shellScriptArgs(executable bool) map[string]any {
	return map[string]any{
		"name":          "myscript",
		"path":          "/usr/local/bin",
		"content":       "#!/bin/bash\necho hi",
		"executable":    executable,
		"addToPath":     true,
		"makeDeployBin": true,
	}
}

func TestShellScript_Expansion(t *testing.T) {
	g := ShellScript().Update(shellScriptArgs(true))

	assert.Equal(t, ShellScriptKey, g.Custom)
	require.Len(t, g.Group, 4)

	file, ok := g.Group[0].(*domain.FileDirective)
	require.True(t, ok)
	assert.Equal(t, "myscript", file.File.Name)
	assert.Equal(t, domain.FileSourceContent, file.File.Source())
	assert.Equal(t, "#!/bin/bash\necho hi", file.File.Value())
	assert.True(t, file.File.Exclusive())

	run, ok := g.Group[1].(*domain.RunDirective)
	require.True(t, ok)
	assert.Equal(t, []string{
		`cp {{ get_file("myscript") }} /usr/local/bin/myscript`,
		"chmod +x /usr/local/bin/myscript",
	}, run.Commands)

	env, ok := g.Group[2].(*domain.EnvironmentDirective)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"PATH": "$PATH:/usr/local/bin"}, env.Environment)

	deploy, ok := g.Group[3].(*domain.DeployDirective)
	require.True(t, ok)
	assert.Equal(t, []string{"myscript"}, deploy.Bins)
}

func TestShellScript_NotExecutable(t *testing.T) {
	g := ShellScript().Update(shellScriptArgs(false))

	run := g.Group[1].(*domain.RunDirective)
	assert.Equal(t, []string{`cp {{ get_file("myscript") }} /usr/local/bin/myscript`}, run.Commands)
}

func TestShellScript_OptionalDirectives(t *testing.T) {
	args := shellScriptArgs(true)
	args["addToPath"] = false
	args["makeDeployBin"] = false

	g := ShellScript().Update(args)
	require.Len(t, g.Group, 2)
	assert.Equal(t, domain.KindFile, g.Group[0].Kind())
	assert.Equal(t, domain.KindRun, g.Group[1].Kind())
}

func TestShellScript_Deterministic(t *testing.T) {
	a := ShellScript().Update(shellScriptArgs(true))
	b := ShellScript().Update(shellScriptArgs(true))
	assert.True(t, domain.EqualAll(a.Group, b.Group))
}

func TestShellScript_DefaultsAreValid(t *testing.T) {
	res := schema.Validate(ShellScript().Arguments, nil)
	require.True(t, res.Valid, res.Errors)
	assert.Equal(t, "myscript", res.Filled["name"])
	assert.Equal(t, true, res.Filled["executable"])
}

func TestShellScript_UnvalidatedArgumentsPanic(t *testing.T) {
	assert.Panics(t, func() { expandShellScript(map[string]any{"name": 42}) })
}

func TestShellScript_Help(t *testing.T) {
	light := ShellScript().HelpContent(registry.ThemeLight)
	dark := ShellScript().HelpContent(registry.ThemeDark)
	assert.Contains(t, light, "# Shell Script Group")
	assert.NotEqual(t, light, dark)
}

func TestJQ_Instantiate(t *testing.T) {
	d, res, err := JQ().Instantiate(registry.MethodBinaries, map[string]any{"version": "1.7.1"})
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Equal(t, map[string]any{"method": "binaries", "version": "1.7.1"}, d.Params)

	_, res, err = JQ().Instantiate(registry.MethodSource, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "required", res.Errors["version"])
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	assert.Equal(t, len(domain.Kinds())+len(Templates())+len(GroupEditors()), r.Len())

	for _, k := range domain.Kinds() {
		p, ok := r.Primitive(string(k))
		require.True(t, ok, "primitive %s", k)
		assert.Equal(t, k, p.Metadata.Default.Kind())
		assert.Equal(t, registry.ComponentFor(k), p.Metadata.Component)
	}

	g, ok := r.GroupEditor(ShellScriptKey)
	require.True(t, ok)
	assert.Equal(t, registry.CustomComponent(ShellScriptKey), g.Metadata.Component)

	_, ok = r.Template("jq")
	assert.True(t, ok)
}

func TestNewRegistry_ExtraOverridesBuiltin(t *testing.T) {
	override := ShellScript()
	override.Metadata.Label = "Script"

	r, err := NewRegistry([]registry.Definition{override})
	require.NoError(t, err)

	g, _ := r.GroupEditor(ShellScriptKey)
	assert.Equal(t, "Script", g.Metadata.Label)

	_, err = NewRegistry([]registry.Definition{override}, registry.WithStrictKeys())
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}
