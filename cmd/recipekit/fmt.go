package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit/internal/cli"
	"github.com/neurocontainers/recipekit/pkg/recipe"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <recipe>",
	Short: "Rewrite a recipe in canonical form",
	Long: `Decodes and re-encodes a recipe so that directives and fields come out in canonical
order. Prints to stdout unless --write is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		write, _ := cmd.Flags().GetBool("write")
		to, _ := cmd.Flags().GetString("to")

		r, format, err := cli.ReadRecipe(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if to != "" {
			if write {
				return fmt.Errorf("--to cannot be combined with --write")
			}
			format = recipe.Format(to)
		}
		return emitRecipe(cmd, path, r, format, write)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().Bool("write", false, "Write the result back to the file")
	fmtCmd.Flags().String("to", "", "Output format: yaml or json (default: same as input)")
}

func emitRecipe(cmd *cobra.Command, path string, r *recipe.Recipe, format recipe.Format, write bool) error {
	if write {
		if path == "-" {
			return fmt.Errorf("cannot write back to stdin")
		}
		return cli.WriteRecipe(path, r, format)
	}
	data, err := recipe.Marshal(r, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
