package cli

import (
	"fmt"
	"log/slog"

	"github.com/neurocontainers/recipekit"
	"github.com/neurocontainers/recipekit/internal/config"
	"github.com/neurocontainers/recipekit/pkg/domain"
)

// KitOptions are the global command line settings.
type KitOptions struct {
	ConfigPath string
	// LogLevel and LogFormat override the config file when set.
	LogLevel  string
	LogFormat string
	Hooks     []domain.ExpansionHooks
}

// Env is what a command runs with.
type Env struct {
	Kit    *recipekit.Kit
	Config config.Config
	Logger *slog.Logger
}

// NewEnv loads the config file and builds the logger and the kit.
func NewEnv(opts KitOptions) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}

	logger, err := CreateLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	defs, err := cfg.Definitions()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	kitOpts := []recipekit.Option{
		recipekit.WithLogger(logger),
		recipekit.WithDefinitions(defs...),
		recipekit.WithHooks(createDebugHooks(logger)),
	}
	for _, h := range opts.Hooks {
		kitOpts = append(kitOpts, recipekit.WithHooks(h))
	}
	if cfg.StrictKeys {
		kitOpts = append(kitOpts, recipekit.WithStrictKeys())
	}

	kit, err := recipekit.New(kitOpts...)
	if err != nil {
		return nil, err
	}
	return &Env{Kit: kit, Config: cfg, Logger: logger}, nil
}
