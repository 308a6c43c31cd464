package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurocontainers/recipekit"
)

// ValidRecipe is a minimal recipe that passes validation.
const ValidRecipe = `name: hello
version: "1.0"
architectures: [x86_64]
categories: [programming]
readme: Says hello.
build:
  kind: neurodocker
  directives:
    - install: curl
`

// NewKit builds a Kit over the built-in catalog.
// It fails the test immediately on error.
func NewKit(t *testing.T, opts ...recipekit.Option) *recipekit.Kit {
	t.Helper()

	kit, err := recipekit.New(opts...)
	require.NoError(t, err, "Failed to build kit")
	return kit
}

// WriteFile writes content to name inside dir and returns the absolute path.
// An empty dir means a fresh temporary directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if dir == "" {
		dir = t.TempDir()
	}
	path, err := filepath.Abs(filepath.Join(dir, name))
	require.NoError(t, err, "Failed to get absolute path")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	return path
}
