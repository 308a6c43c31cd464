package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit/internal/cli"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <recipe>",
	Short: "Re-expand the custom groups of a recipe",
	Long: `Expands every custom group again from its stored parameters, so that recipes
pick up changes to the group editors. Groups that can no longer be expanded are kept
as they are and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		path := args[0]
		write, _ := cmd.Flags().GetBool("write")

		r, format, err := cli.ReadRecipe(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		refreshed, errs := env.Kit.Refresh(r)
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
		}
		if err := emitRecipe(cmd, path, refreshed, format, write); err != nil {
			return err
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d groups could not be refreshed", len(errs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().Bool("write", false, "Write the result back to the file")
}
