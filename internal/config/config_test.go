package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level: debug
strict_keys: true
server:
  addr: ":9090"
templates:
  - key: fsl
    label: FSL
    url: https://fsl.fmrib.ox.ac.uk
    binaries:
      - name: version
        type: text
        required: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep their default")
	assert.True(t, cfg.StrictKeys)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	defs, err := cfg.Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	tpl := defs[0].(*registry.Template)
	assert.Equal(t, "fsl", tpl.Name)
	require.NotNil(t, tpl.Binaries)
	assert.Nil(t, tpl.Source)
	assert.Equal(t, schema.ArgText, tpl.Binaries.Arguments[0].Type)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipekit.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark", "templates": [{"label": "no key"}]}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)

	_, err = cfg.Definitions()
	assert.ErrorContains(t, err, "key is required")
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
