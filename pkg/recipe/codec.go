package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neurocontainers/recipekit/pkg/domain"
)

// Format is a recipe serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported recipe format: %s", path)
	}
}

// Unmarshal decodes a recipe. A directive with an unrecognised shape decodes to
// *domain.UnknownDirective; one whose payload has the wrong shape is an error.
func Unmarshal(data []byte, format Format) (*Recipe, error) {
	var r Recipe
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &r)
	case FormatJSON:
		err = json.Unmarshal(data, &r)
	default:
		return nil, fmt.Errorf("unsupported recipe format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	if r.Build.Directives == nil {
		r.Build.Directives = domain.Directives{}
	}
	return &r, nil
}

// Marshal encodes a recipe. YAML is indented by two spaces.
func Marshal(r *Recipe, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, fmt.Errorf("failed to encode recipe: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode recipe: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported recipe format: %s", format)
	}
}
