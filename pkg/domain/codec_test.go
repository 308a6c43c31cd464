package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleYAML = `
- install: git curl
- environment:
    FOO: bar
    LEVEL: 3
- workdir: /opt
- run:
    - make
    - make install
- template:
    name: jq
    version: 1.7.1
- group:
    - file:
        name: myscript
        contents: "echo hi"
    - deploy:
        bins: [myscript]
  custom: shellScript
  customParams:
    name: myscript
- copy: a.txt /opt/a.txt
- test:
    name: smoke
    script: jq --version
- include: macros/openrecon/neurodocker.yaml
- user: neuro
`

func TestDirectives_YAML(t *testing.T) {
	var ds Directives
	require.NoError(t, yaml.Unmarshal([]byte(sampleYAML), &ds))
	require.Len(t, ds, 10)

	install, ok := ds[0].(*InstallDirective)
	require.True(t, ok)
	assert.Equal(t, []string{"git", "curl"}, install.Packages)

	env := ds[1].(*EnvironmentDirective)
	assert.Equal(t, "3", env.Environment["LEVEL"], "numeric env values are stringified")

	run := ds[3].(*RunDirective)
	assert.Equal(t, []string{"make", "make install"}, run.Commands)

	tmpl := ds[4].(*TemplateDirective)
	assert.Equal(t, "jq", tmpl.Name)
	assert.Equal(t, "1.7.1", tmpl.Params["version"])

	group := ds[5].(*GroupDirective)
	assert.Equal(t, "shellScript", group.Custom)
	assert.Equal(t, "myscript", group.CustomParams["name"])
	require.Len(t, group.Group, 2)
	file := group.Group[0].(*FileDirective)
	assert.Equal(t, FileSourceContent, file.File.Source())
	assert.Equal(t, "echo hi", file.File.Value())

	assert.Equal(t, []string{"a.txt", "/opt/a.txt"}, ds[6].(*CopyDirective).Paths)
	assert.Equal(t, "smoke", ds[7].(*TestDirective).Test.Name)
	assert.Equal(t, KindInclude, ds[8].Kind())
	assert.Equal(t, "neuro", ds[9].(*UserDirective).User)

	out, err := yaml.Marshal(ds)
	require.NoError(t, err)

	var again Directives
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.True(t, EqualAll(ds, again))
}

func TestDirectives_JSON(t *testing.T) {
	input := `[{"run":["echo hi"]},{"group":[{"user":"root"}]}]`

	var ds Directives
	require.NoError(t, json.Unmarshal([]byte(input), &ds))
	require.Len(t, ds, 2)

	out, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDecode_Unknown(t *testing.T) {
	t.Run("No recognised key", func(t *testing.T) {
		d, err := Decode(map[string]any{"bogus": 1, "other": "x"})
		require.NoError(t, err)

		unknown, ok := d.(*UnknownDirective)
		require.True(t, ok)
		assert.Equal(t, []string{"bogus", "other"}, unknown.Keys)
		assert.Equal(t, KindUnknown, unknown.Kind())
		assert.True(t, errors.Is(unknown.Err(), ErrMalformedDirective))
		assert.EqualError(t, unknown.Err(), "malformed directive: bogus, other")
	})

	t.Run("Two recognised keys", func(t *testing.T) {
		d, err := Decode(map[string]any{"run": []any{"ls"}, "user": "root"})
		require.NoError(t, err)
		assert.IsType(t, &UnknownDirective{}, d)
	})

	t.Run("Empty value", func(t *testing.T) {
		d, err := Decode(map[string]any{})
		require.NoError(t, err)
		assert.EqualError(t, d.(*UnknownDirective).Err(), "malformed directive: no keys")
	})
}

func TestDecode_WrongPayload(t *testing.T) {
	_, err := Decode(map[string]any{"workdir": []any{"a"}})
	assert.ErrorContains(t, err, "decode workdir directive")

	_, err = Decode(map[string]any{"file": map[string]any{"name": "a", "contents": "x", "url": "http://x"}})
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestEncode_GroupWithoutCustomDropsParams(t *testing.T) {
	g := &GroupDirective{
		Group:        Directives{&UserDirective{User: "root"}},
		CustomParams: map[string]any{"stale": true},
	}
	out := Encode(g)
	assert.NotContains(t, out, KeyCustom)
	assert.NotContains(t, out, KeyCustomParams)
}

func TestDecode_CustomParamsIgnoredWithoutCustom(t *testing.T) {
	d, err := Decode(map[string]any{
		"group":        []any{},
		"customParams": map[string]any{"name": "x"},
	})
	require.NoError(t, err)
	g := d.(*GroupDirective)
	assert.False(t, g.IsCustom())
	assert.Nil(t, g.CustomParams)
}
