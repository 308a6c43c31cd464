package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of recipekit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "recipekit version %s\n", strings.TrimSpace(recipekit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
