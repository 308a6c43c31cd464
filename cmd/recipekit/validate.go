package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit"
	"github.com/neurocontainers/recipekit/internal/cli"
	"github.com/neurocontainers/recipekit/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <recipe>",
	Short: "Check a recipe",
	Long: `Validates the recipe metadata and every directive, and reports custom groups that
no longer match their parameters. Use "-" to read YAML from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		path := args[0]
		watch, _ := cmd.Flags().GetBool("watch")

		if watch {
			if path == "-" {
				return errors.New("cannot watch stdin")
			}
			if tui.IsTerminal(os.Stdout) {
				tui.PrintBanner(cmd.OutOrStdout(), recipekit.Version)
			}
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			return cli.RunWatch(ctx, cmd.OutOrStdout(), env.Kit, path, env.Logger)
		}

		ok, err := cli.CheckRecipe(cmd.OutOrStdout(), env.Kit, path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("watch", "w", false, "Validate again whenever the file changes")
}
