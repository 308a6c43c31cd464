package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neurocontainers/recipekit/pkg/recipe"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

// ReadRecipe reads a recipe file. "-" reads YAML from stdin.
func ReadRecipe(path string, stdin io.Reader) (*recipe.Recipe, recipe.Format, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		r, err := recipe.Unmarshal(data, recipe.FormatYAML)
		return r, recipe.FormatYAML, err
	}

	format, err := recipe.FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read recipe: %w", err)
	}
	r, err := recipe.Unmarshal(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return r, format, nil
}

// WriteRecipe encodes r to path, replacing the file atomically.
func WriteRecipe(path string, r *recipe.Recipe, format recipe.Format) error {
	data, err := recipe.Marshal(r, format)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".recipekit-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ParsePairs splits key=value pairs. "a=" is an empty value.
func ParsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", p)
		}
		out[key] = value
	}
	return out, nil
}

// CoerceArgs converts command line values to the types the schema declares. Lists are
// comma separated (an empty list reads as missing), and a literal \n in a multiline
// text is a newline. Names outside the schema are kept as text.
func CoerceArgs(args schema.Arguments, pairs map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for name, raw := range pairs {
		a, ok := args.Lookup(name)
		if !ok {
			out[name] = raw
			continue
		}
		switch a.Type {
		case schema.ArgBoolean:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("argument %s: expected boolean, got %q", name, raw)
			}
			out[name] = b
		case schema.ArgNumber:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %s: expected number, got %q", name, raw)
			}
			out[name] = n
		case schema.ArgList:
			var items []any
			for _, item := range strings.Split(raw, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			if len(items) == 0 {
				// An empty list is missing, so the declared default applies.
				out[name] = nil
				continue
			}
			out[name] = items
		default:
			if a.Multiline {
				raw = strings.ReplaceAll(raw, `\n`, "\n")
			}
			out[name] = raw
		}
	}
	return out, nil
}

// LoadArgsFile reads an argument map from a YAML or JSON file.
func LoadArgsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments: %w", err)
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
