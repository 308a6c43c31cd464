package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neurocontainers/recipekit/internal/presentation/tui"
	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

var directivesCmd = &cobra.Command{
	Use:   "directives",
	Short: "List the available directives",
	Long:  `Lists the primitives, templates and custom groups of the registry, in catalog order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		ns, _ := cmd.Flags().GetString("namespace")
		asJSON, _ := cmd.Flags().GetBool("json")

		var defs []registry.Definition
		for _, def := range env.Kit.Search(search) {
			if ns == "" || string(def.Namespace()) == ns {
				defs = append(defs, def)
			}
		}

		out := cmd.OutOrStdout()
		if asJSON {
			type entry struct {
				Namespace registry.Namespace `json:"namespace"`
				registry.Metadata
			}
			list := make([]entry, 0, len(defs))
			for _, def := range defs {
				list = append(list, entry{Namespace: def.Namespace(), Metadata: def.Meta()})
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAMESPACE\tKEY\tLABEL\tDESCRIPTION")
		for _, def := range defs {
			m := def.Meta()
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Namespace(), m.Key, m.Label, m.Description)
		}
		return tw.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show the help of a directive",
	Long: `Renders the help and arguments of a directive. Without --namespace the key is
looked up among custom groups, then templates, then primitives.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		ns, _ := cmd.Flags().GetString("namespace")
		themeName, _ := cmd.Flags().GetString("theme")
		if themeName == "" {
			themeName = env.Config.Theme
		}

		def, err := lookup(env.Kit.Registry(), ns, args[0])
		if err != nil {
			return err
		}

		theme := tui.ResolveTheme(themeName)
		render := tui.NewRenderer(theme, tui.Width(os.Stdout), !tui.IsTerminal(os.Stdout))
		text, err := render(def.HelpContent(theme) + argumentsMarkdown(def))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(directivesCmd)
	directivesCmd.AddCommand(showCmd)

	directivesCmd.Flags().StringP("search", "s", "", "Filter by key, label or keyword")
	directivesCmd.Flags().StringP("namespace", "n", "", "Filter by namespace: primitive, group or template")
	directivesCmd.Flags().Bool("json", false, "Print as JSON")

	showCmd.Flags().StringP("namespace", "n", "", "Namespace of the key")
	showCmd.Flags().String("theme", "", "Help theme: light, dark or auto (default from config)")
}

func lookup(reg *registry.Registry, ns, key string) (registry.Definition, error) {
	if ns != "" {
		parsed, err := registry.ParseNamespace(ns)
		if err != nil {
			return nil, err
		}
		return reg.Require(parsed, key)
	}
	for _, candidate := range []registry.Namespace{registry.NamespaceGroup, registry.NamespaceTemplate, registry.NamespacePrimitive} {
		if def, ok := reg.Lookup(candidate, key); ok {
			return def, nil
		}
	}
	return reg.Require(registry.NamespaceGroup, key)
}

func argumentsMarkdown(def registry.Definition) string {
	var sb strings.Builder
	table := func(title string, args schema.Arguments) {
		if len(args) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n## %s\n\n| Name | Type | Required | Default | Description |\n|---|---|---|---|---|\n", title)
		for _, a := range args {
			dflt := ""
			if a.Default != nil {
				dflt = strings.ReplaceAll(fmt.Sprint(a.Default), "\n", "\\n")
			}
			req := ""
			if a.Required {
				req = "yes"
			}
			typ := string(a.Type)
			if len(a.Options) > 0 {
				typ += " (" + strings.Join(a.Options, ", ") + ")"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", a.Name, typ, req, dflt, a.Description)
		}
	}

	switch d := def.(type) {
	case *registry.GroupEditor:
		table("Arguments", d.Arguments)
	case *registry.Template:
		if d.Binaries != nil {
			table("Binaries", d.Binaries.Arguments)
		}
		if d.Source != nil {
			table("Source", d.Source.Arguments)
		}
	}
	return sb.String()
}
