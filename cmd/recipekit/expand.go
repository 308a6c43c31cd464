package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/neurocontainers/recipekit/internal/cli"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

var expandCmd = &cobra.Command{
	Use:   "expand <key>",
	Short: "Expand a custom group from its arguments",
	Long: `Expands the custom group registered under <key> and prints it as a directive list
that can be pasted into a recipe.

Arguments come from --args-file and from repeated --arg name=value flags, the flags
taking precedence. Flag values are converted to the declared argument types.`,
	Example: `  recipekit expand shellScript --arg name=hello --arg content='echo hello\nexit 0'
  recipekit expand shellScript --args-file args.yaml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		key := args[0]
		pairs, _ := cmd.Flags().GetStringArray("arg")
		argsFile, _ := cmd.Flags().GetString("args-file")
		format, _ := cmd.Flags().GetString("format")

		values := map[string]any{}
		if argsFile != "" {
			if values, err = cli.LoadArgsFile(argsFile); err != nil {
				return err
			}
		}

		parsed, err := cli.ParsePairs(pairs)
		if err != nil {
			return err
		}
		var declared schema.Arguments
		if def, ok := env.Kit.Registry().GroupEditor(key); ok {
			declared = def.Arguments
		}
		coerced, err := cli.CoerceArgs(declared, parsed)
		if err != nil {
			return err
		}
		for k, v := range coerced {
			values[k] = v
		}

		exp, err := env.Kit.Expand(key, values)
		if err != nil {
			return err
		}
		if !exp.Valid {
			names := make([]string, 0, len(exp.Errors))
			for name := range exp.Errors {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s: %s\n", name, exp.Errors[name])
			}
			return fmt.Errorf("invalid arguments for %s", key)
		}

		doc := []any{domain.Encode(exp.Group)}
		out := cmd.OutOrStdout()
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		case "yaml", "":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(doc)
		default:
			return fmt.Errorf("unknown format %q: use yaml or json", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().StringArrayP("arg", "a", nil, "Argument as name=value (repeatable)")
	expandCmd.Flags().String("args-file", "", "YAML or JSON file with the arguments")
	expandCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
}
