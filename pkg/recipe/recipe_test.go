package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocontainers/recipekit/pkg/catalog"
	"github.com/neurocontainers/recipekit/pkg/dispatch"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/registry"
)

const sampleYAML = `name: jq
version: 1.7.1
architectures:
  - x86_64
categories:
  - programming
readme: jq is a JSON processor.
copyright:
  - license: MIT
    url: https://github.com/jqlang/jq/blob/master/COPYING
build:
  kind: neurodocker
  base-image: ubuntu:22.04
  pkg-manager: apt
  directives:
    - install: curl ca-certificates
    - template:
        name: jq
        method: binaries
        version: 1.7.1
    - group:
        - run:
            - echo hello
      custom: nope
    - deploy:
        bins:
          - jq
`

func validRecipe() *Recipe {
	r := New("jq", "1.7.1")
	r.Categories = []string{"programming"}
	r.SetReadme("jq is a JSON processor.")
	return r
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Recipe)
		field  string
		want   string
	}{
		{"valid", func(r *Recipe) {}, "", ""},
		{"empty name", func(r *Recipe) { r.Name = "" }, "name", "required"},
		{"short name", func(r *Recipe) { r.Name = "j" }, "name", "at least 2"},
		{"long name", func(r *Recipe) { r.Name = strings.Repeat("a", 64) }, "name", "cannot exceed 63"},
		{"hyphen", func(r *Recipe) { r.Name = "my-tool" }, "name", "lowercase"},
		{"upper", func(r *Recipe) { r.Name = "JQ" }, "name", "lowercase"},
		{"version", func(r *Recipe) { r.Version = " " }, "version", "required"},
		{"no arch", func(r *Recipe) { r.Architectures = nil }, "architectures", "At least one"},
		{"bad arch", func(r *Recipe) { r.Architectures = []Architecture{"riscv"} }, "architectures", "Unsupported"},
		{"no category", func(r *Recipe) { r.Categories = nil }, "categories", "At least one"},
		{"bad category", func(r *Recipe) { r.Categories = []string{"cooking"} }, "categories", "Unknown"},
		{"no docs", func(r *Recipe) { r.SetReadme("") }, "readme", "Documentation is required"},
		{"bad url", func(r *Recipe) { r.SetReadmeURL("ftp://example.org") }, "readme_url", "HTTP/HTTPS"},
		{"url", func(r *Recipe) { r.SetReadmeURL("https://jqlang.github.io/jq/") }, "", ""},
		{"empty structured", func(r *Recipe) {
			r.SetReadme("")
			r.StructuredReadme = &StructuredReadme{}
		}, "readme", "Documentation is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.modify(r)
			ps := Validate(r)
			if tt.field == "" {
				assert.Empty(t, ps)
				assert.NoError(t, ps.Err())
				return
			}
			require.Len(t, ps, 1, ps)
			assert.Equal(t, tt.field, ps[0].Field)
			assert.Contains(t, ps[0].Message, tt.want)
			assert.Error(t, ps.Err())
		})
	}
}

func TestReadmeExclusivity(t *testing.T) {
	r := validRecipe()

	r.SetReadmeURL("https://example.org/docs")
	assert.Empty(t, r.Readme)
	assert.Nil(t, r.StructuredReadme)

	r.SetStructuredReadme(StructuredReadme{Description: "A JSON processor", Example: "jq . file.json"})
	assert.Empty(t, r.ReadmeURL)
	require.NotNil(t, r.StructuredReadme)
	assert.Contains(t, r.Readme, "## jq/1.7.1 ##")
	assert.Contains(t, r.Readme, "jq . file.json")
	assert.NotContains(t, r.Readme, "Citation")

	r.SetReadme("plain")
	assert.Nil(t, r.StructuredReadme)
	assert.Equal(t, "plain", r.Readme)
}

func TestDirectiveEdits(t *testing.T) {
	r := validRecipe()
	run := func(cmd string) domain.Directive { return &domain.RunDirective{Commands: []string{cmd}} }

	require.NoError(t, r.InsertDirective(0, run("b")))
	require.NoError(t, r.InsertDirective(0, run("a")))
	require.NoError(t, r.InsertDirective(2, &domain.GroupDirective{Group: domain.Directives{run("c")}}))
	assert.Error(t, r.InsertDirective(5, run("x")))

	require.NoError(t, r.ReplaceAt(domain.Path{2, 0}, run("C")))
	d, err := r.Directive(domain.Path{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, d.(*domain.RunDirective).Commands)

	_, err = r.Directive(domain.Path{0, 0})
	assert.ErrorContains(t, err, "not a group")
	assert.Error(t, r.ReplaceDirective(9, run("x")))

	before := r.Build.Directives
	require.NoError(t, r.RemoveDirective(0))
	assert.Len(t, r.Build.Directives, 2)
	assert.Equal(t, []string{"a"}, before[0].(*domain.RunDirective).Commands, "removal does not rewrite the previous slice")
	assert.Error(t, r.RemoveDirective(2))
}

func TestCodec_YAMLRoundTrip(t *testing.T) {
	r, err := Unmarshal([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "jq", r.Name)
	assert.Equal(t, "ubuntu:22.04", r.Build.BaseImage)
	assert.Equal(t, "apt", r.Build.PkgManager)
	require.Len(t, r.Build.Directives, 4)
	assert.Equal(t, []string{"curl", "ca-certificates"}, r.Build.Directives[0].(*domain.InstallDirective).Packages)

	out, err := Marshal(r, FormatYAML)
	require.NoError(t, err)
	again, err := Unmarshal(out, FormatYAML)
	require.NoError(t, err)
	assert.True(t, domain.EqualAll(r.Build.Directives, again.Build.Directives))
	assert.Equal(t, r.Copyright, again.Copyright)

	js, err := Marshal(r, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"base-image": "ubuntu:22.04"`)
	fromJSON, err := Unmarshal(js, FormatJSON)
	require.NoError(t, err)
	assert.True(t, domain.EqualAll(r.Build.Directives, fromJSON.Build.Directives))
}

func TestCodec_Errors(t *testing.T) {
	_, err := Unmarshal([]byte("build:\n  directives:\n    - install: {a: 1}\n"), FormatYAML)
	assert.ErrorContains(t, err, "directive 0")

	_, err = Unmarshal([]byte("{}"), "toml")
	assert.Error(t, err)

	r, err := Unmarshal([]byte("name: x\n"), FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, r.Build.Directives)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("recipes/jq/build.YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("build.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = FormatFromPath("build.toml")
	assert.Error(t, err)
}

func TestLint(t *testing.T) {
	reg, err := catalog.NewRegistry(nil)
	require.NoError(t, err)
	eng := expand.New(reg)
	dp := dispatch.New(reg, eng)

	r, err := Unmarshal([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	exp, err := eng.Expand(catalog.ShellScriptKey, map[string]any{"name": "hello"})
	require.NoError(t, err)
	require.NoError(t, r.InsertDirective(0, exp.Group))

	drifted := domain.Clone(exp.Group).(*domain.GroupDirective)
	drifted.Group = drifted.Group[:1]
	unknown, err := domain.Decode(map[string]any{"bogus": true})
	require.NoError(t, err)
	f := domain.FileInfo{Name: "x", Contents: domain.StringPtr("a"), URL: domain.StringPtr("https://x")}

	r.Build.Directives = append(r.Build.Directives,
		drifted,
		&domain.GroupDirective{Group: domain.Directives{unknown, &domain.FileDirective{File: f}}},
	)

	ps := Lint(r, dp, eng)
	var fields []string
	for _, p := range ps {
		fields = append(fields, p.Field)
	}
	assert.Equal(t, []string{
		"build.directives.5",
		"build.directives.6.0",
		"build.directives.6.1",
	}, fields)
	assert.Contains(t, ps[0].Message, "drifted")
	assert.Equal(t, "Unknown Directive: bogus", ps[1].Message)

	all := Check(r, dp, eng)
	assert.Len(t, all, len(ps))
}

func TestLint_UnregisteredCustomKey(t *testing.T) {
	reg, err := catalog.NewRegistry(nil)
	require.NoError(t, err)
	eng := expand.New(reg)
	dp := dispatch.New(reg, eng)

	unknown, err := domain.Decode(map[string]any{"frobnicate": 1})
	require.NoError(t, err)

	r := validRecipe()
	r.Build.Directives = domain.Directives{
		&domain.GroupDirective{
			Custom:       "notRegistered",
			CustomParams: map[string]any{"a": 1},
			Group: domain.Directives{
				&domain.RunDirective{Commands: []string{"echo hi"}},
				unknown,
			},
		},
	}

	ps := Lint(r, dp, eng)
	require.Len(t, ps, 1, "the group is checked like a plain group")
	assert.Equal(t, "build.directives.0.1", ps[0].Field)
	assert.Equal(t, "Unknown Directive: frobnicate", ps[0].Message)
}

func TestLint_GroupEditorDefaults(t *testing.T) {
	reg, err := catalog.NewRegistry(nil)
	require.NoError(t, err)
	eng := expand.New(reg)
	dp := dispatch.New(reg, eng)

	for _, def := range reg.All() {
		editor, ok := def.(*registry.GroupEditor)
		if !ok {
			continue
		}
		t.Run(editor.Metadata.Key, func(t *testing.T) {
			r := validRecipe()
			r.Build.Directives = domain.Directives{domain.Clone(editor.Metadata.Default)}
			assert.Empty(t, Lint(r, dp, eng))
		})
	}
}
