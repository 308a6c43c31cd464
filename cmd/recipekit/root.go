package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit/internal/cli"
	"github.com/neurocontainers/recipekit/internal/config"
	"github.com/neurocontainers/recipekit/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "recipekit",
	Short: "recipekit manages the build directives of container recipes",
	Long: `recipekit lists, expands and checks the directives of neuroimaging container
recipes. Custom groups are expanded from a few parameters into directives and can be
refreshed or checked for drift later.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Settings file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

func newEnv(cmd *cobra.Command, hooks ...domain.ExpansionHooks) (*cli.Env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return cli.NewEnv(cli.KitOptions{
		ConfigPath: cfgPath,
		LogLevel:   level,
		LogFormat:  format,
		Hooks:      hooks,
	})
}
