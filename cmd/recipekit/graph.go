package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit/internal/cli"
	"github.com/neurocontainers/recipekit/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <recipe>",
	Short: "Print the directive tree of a recipe as a Mermaid diagram",
	Long: `Prints a Mermaid flowchart of the recipe. Directives with problems are highlighted
unless --no-lint is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		noLint, _ := cmd.Flags().GetBool("no-lint")

		r, _, err := cli.ReadRecipe(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if !noLint {
			overlay = &graph.GraphOverlay{Problems: env.Kit.Lint(r)}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(r, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("no-lint", false, "Do not highlight problems")
}
