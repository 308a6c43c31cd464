// Package config loads the recipekit settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "recipekit.yaml"

// Config is the settings file.
type Config struct {
	LogLevel   string           `yaml:"log_level" json:"log_level"`
	LogFormat  string           `yaml:"log_format" json:"log_format"`
	Theme      string           `yaml:"theme" json:"theme"`
	StrictKeys bool             `yaml:"strict_keys" json:"strict_keys"`
	Server     ServerConfig     `yaml:"server" json:"server"`
	Templates  []TemplateConfig `yaml:"templates" json:"templates"`
}

// ServerConfig configures the HTTP and MCP servers.
type ServerConfig struct {
	Addr       string `yaml:"addr" json:"addr"`
	CORSOrigin string `yaml:"cors_origin" json:"cors_origin"`
}

// TemplateConfig declares an extra template.
type TemplateConfig struct {
	Key         string           `yaml:"key" json:"key"`
	Label       string           `yaml:"label" json:"label"`
	Name        string           `yaml:"name" json:"name"`
	URL         string           `yaml:"url" json:"url"`
	Description string           `yaml:"description" json:"description"`
	Keywords    []string         `yaml:"keywords" json:"keywords"`
	Binaries    schema.Arguments `yaml:"binaries" json:"binaries"`
	Source      schema.Arguments `yaml:"source" json:"source"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Theme:     "auto",
		Server:    ServerConfig{Addr: ":8080", CORSOrigin: "*"},
	}
}

// Load reads a settings file (YAML or JSON, chosen by extension) over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Definitions converts the declared templates into registry definitions.
func (c Config) Definitions() ([]registry.Definition, error) {
	defs := make([]registry.Definition, 0, len(c.Templates))
	for i, tc := range c.Templates {
		if tc.Key == "" {
			return nil, fmt.Errorf("templates[%d]: key is required", i)
		}
		t := &registry.Template{
			Metadata: registry.Metadata{
				Key:         tc.Key,
				Label:       tc.Label,
				Description: tc.Description,
				Keywords:    tc.Keywords,
			},
			Name:        tc.Name,
			URL:         tc.URL,
			Description: tc.Description,
		}
		if t.Name == "" {
			t.Name = tc.Key
		}
		if t.Metadata.Label == "" {
			t.Metadata.Label = tc.Key
		}
		if tc.Binaries != nil {
			t.Binaries = &registry.TemplateMethod{Arguments: tc.Binaries}
		}
		if tc.Source != nil {
			t.Source = &registry.TemplateMethod{Arguments: tc.Source}
		}
		defs = append(defs, t)
	}
	return defs, nil
}
