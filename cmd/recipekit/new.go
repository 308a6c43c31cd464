package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit/internal/cli"
	"github.com/neurocontainers/recipekit/pkg/catalog"
	"github.com/neurocontainers/recipekit/pkg/dsl"
	"github.com/neurocontainers/recipekit/pkg/recipe"
)

var newCmd = &cobra.Command{
	Use:   "new <name> <version>",
	Short: "Create a recipe skeleton",
	Long: `Writes a minimal recipe with the given metadata and a shell script that prints the
tool version. Refuses to overwrite an existing file.`,
	Example: `  recipekit new dcm2niix 1.0.20240202 --category "data organisation" --readme "Converts DICOM to NIfTI."`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		name, version := args[0], args[1]
		categories, _ := cmd.Flags().GetStringSlice("category")
		readme, _ := cmd.Flags().GetString("readme")
		base, _ := cmd.Flags().GetString("base-image")
		pm, _ := cmd.Flags().GetString("pkg-manager")
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = "build.yaml"
		}

		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists", output)
		}
		format, err := recipe.FormatFromPath(output)
		if err != nil {
			return err
		}

		r, err := dsl.New(name, version).
			Engine(env.Kit.Engine()).
			Arch(recipe.ArchX86_64).
			Category(categories...).
			Readme(readme).
			BaseImage(base).
			PkgManager(pm).
			Custom(catalog.ShellScriptKey, map[string]any{
				"name":    name + "-version",
				"content": "#!/bin/sh\necho " + name + " " + version,
			}).
			Build()
		if err != nil {
			return err
		}
		if err := cli.WriteRecipe(output, r, format); err != nil {
			return err
		}
		cli.PrintSystemMessage(cmd.OutOrStdout(), "Created %s", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringSlice("category", nil, "Recipe category (repeatable)")
	newCmd.Flags().String("readme", "", "Readme text")
	newCmd.Flags().String("base-image", "ubuntu:24.04", "Base image")
	newCmd.Flags().String("pkg-manager", "apt", "Package manager: apt or yum")
	newCmd.Flags().StringP("output", "o", "", "Output file (default build.yaml)")
	_ = newCmd.MarkFlagRequired("category")
	_ = newCmd.MarkFlagRequired("readme")
}
