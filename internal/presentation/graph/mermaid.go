package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/recipe"
)

const (
	maxLabel     = 48
	problemField = "build.directives."
)

// GraphOverlay contains lint results to highlight on the graph.
type GraphOverlay struct {
	Problems recipe.Problems
}

// GenerateMermaid produces a Mermaid flowchart of a recipe's directive tree.
// It applies semantic styling:
// - Recipe: ((Circle))
// - Custom group: [[Subroutine]], children folded
// - Plain group: subgraph
// - Unknown directive: {{Hexagon}}
// - Default: [Rectangle]
// Directives flagged by the overlay are styled as problems.
func GenerateMermaid(r *recipe.Recipe, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    recipe((\"%s\"))\n", escape(r.Name+"/"+r.Version)))

	var custom, unknown []string
	first := writeSequence(&sb, nil, r.Build.Directives, "    ", &custom, &unknown)
	if first != "" {
		sb.WriteString(fmt.Sprintf("    recipe --> %s\n", first))
	}

	if len(custom) > 0 || len(unknown) > 0 {
		sb.WriteString("\n    classDef custom fill:#f0f7e7,stroke:#4f7b38,color:#000;\n")
		sb.WriteString("    classDef unknown fill:#fff3e0,stroke:#e65100,color:#000;\n")
		for _, id := range custom {
			sb.WriteString(fmt.Sprintf("    class %s custom;\n", id))
		}
		for _, id := range unknown {
			sb.WriteString(fmt.Sprintf("    class %s unknown;\n", id))
		}
	}

	if overlay != nil && len(overlay.Problems) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef problem fill:#ffebee,stroke:#c62828,stroke-width:3px,color:#000;\n")
		seen := make(map[string]bool)
		for _, p := range overlay.Problems {
			if !strings.HasPrefix(p.Field, problemField) {
				continue
			}
			id := nodeID(strings.TrimPrefix(p.Field, problemField))
			if !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s problem;\n", id))
			}
		}
	}

	return sb.String()
}

// writeSequence writes ds chained in order and returns the id of the first directive.
func writeSequence(sb *strings.Builder, prefix domain.Path, ds domain.Directives, indent string, custom, unknown *[]string) string {
	var first, prev string
	for i, d := range ds {
		path := append(append(domain.Path{}, prefix...), i)
		id := nodeID(path.String())

		switch v := d.(type) {
		case *domain.GroupDirective:
			if v.IsCustom() {
				sb.WriteString(fmt.Sprintf("%s%s[[\"%s\"]]\n", indent, id, escape(label(d))))
				*custom = append(*custom, id)
				break
			}
			sb.WriteString(fmt.Sprintf("%ssubgraph %s[\"group\"]\n", indent, id))
			writeSequence(sb, path, v.Group, indent+"    ", custom, unknown)
			sb.WriteString(indent + "end\n")
		case *domain.UnknownDirective:
			sb.WriteString(fmt.Sprintf("%s%s{{\"%s\"}}\n", indent, id, escape(label(d))))
			*unknown = append(*unknown, id)
		default:
			sb.WriteString(fmt.Sprintf("%s%s[\"%s\"]\n", indent, id, escape(label(d))))
		}

		if prev != "" {
			sb.WriteString(fmt.Sprintf("%s%s --> %s\n", indent, prev, id))
		} else {
			first = id
		}
		prev = id
	}
	return first
}

// label summarises a directive on one line.
func label(d domain.Directive) string {
	var s string
	switch v := d.(type) {
	case *domain.GroupDirective:
		s = fmt.Sprintf("%s (%d directives)", v.Custom, len(v.Group))
	case *domain.EnvironmentDirective:
		s = "environment: " + strings.Join(sortedKeys(v.Environment), ", ")
	case *domain.InstallDirective:
		s = "install: " + strings.Join(v.Packages, " ")
	case *domain.WorkdirDirective:
		s = "workdir: " + v.Workdir
	case *domain.RunDirective:
		s = "run"
		if len(v.Commands) > 0 {
			s += ": " + v.Commands[0]
		}
		if len(v.Commands) > 1 {
			s += fmt.Sprintf(" (+%d)", len(v.Commands)-1)
		}
	case *domain.VariablesDirective:
		keys := make([]string, 0, len(v.Variables))
		for k := range v.Variables {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s = "variables: " + strings.Join(keys, ", ")
	case *domain.TemplateDirective:
		s = "template: " + v.Name
	case *domain.DeployDirective:
		s = "deploy: " + strings.Join(append(append([]string{}, v.Bins...), v.Path...), " ")
	case *domain.UserDirective:
		s = "user: " + v.User
	case *domain.CopyDirective:
		s = "copy: " + strings.Join(v.Paths, " ")
	case *domain.FileDirective:
		s = "file: " + v.File.Name
	case *domain.TestDirective:
		s = "test: " + v.Test.Name
	case *domain.IncludeDirective:
		s = "include: " + v.Include
	case *domain.UnknownDirective:
		s = "unknown: " + strings.Join(v.Keys, ", ")
	default:
		s = "?"
	}
	if r := []rune(s); len(r) > maxLabel {
		s = string(r[:maxLabel-3]) + "..."
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nodeID(path string) string {
	return "d_" + sanitizeMermaidID(path)
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " ")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
