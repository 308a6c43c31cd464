package graph_test

import (
	"strings"
	"testing"

	"github.com/neurocontainers/recipekit/internal/presentation/graph"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/recipe"
)

func newRecipe(ds ...domain.Directive) *recipe.Recipe {
	r := recipe.New("jq", "1.7.1")
	r.Build.Directives = ds
	return r
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		recipe   *recipe.Recipe
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name:     "Recipe Root",
			recipe:   newRecipe(&domain.InstallDirective{Packages: []string{"curl", "git"}}),
			contains: []string{`recipe(("jq/1.7.1"))`, `d_0["install: curl git"]`, "recipe --> d_0"},
		},
		{
			name: "Sequence",
			recipe: newRecipe(
				&domain.WorkdirDirective{Workdir: "/opt"},
				&domain.RunDirective{Commands: []string{"make", "make install"}},
			),
			contains: []string{"d_0 --> d_1", `d_1["run: make (+1)"]`},
		},
		{
			name: "Plain Group",
			recipe: newRecipe(&domain.GroupDirective{Group: domain.Directives{
				&domain.UserDirective{User: "root"},
				&domain.IncludeDirective{Include: "macros/base.yaml"},
			}}),
			contains: []string{`subgraph d_0["group"]`, `d_0_0["user: root"]`, "d_0_0 --> d_0_1", "end"},
		},
		{
			name: "Custom Group",
			recipe: newRecipe(&domain.GroupDirective{
				Custom: "shellScript",
				Group:  domain.Directives{&domain.UserDirective{User: "root"}},
			}),
			contains: []string{`d_0[["shellScript (1 directives)"]]`, "class d_0 custom;"},
			excludes: []string{"d_0_0"},
		},
		{
			name:     "Unknown Directive",
			recipe:   newRecipe(&domain.UnknownDirective{Keys: []string{"bogus"}}),
			contains: []string{`d_0{{"unknown: bogus"}}`, "class d_0 unknown;"},
		},
		{
			name:     "Label Escaping",
			recipe:   newRecipe(&domain.RunDirective{Commands: []string{`echo "hi"`}}),
			contains: []string{`d_0["run: echo 'hi'"]`},
		},
		{
			name:   "Problem Overlay",
			recipe: newRecipe(&domain.TestDirective{Test: domain.TestInfo{Name: "smoke"}}),
			overlay: &graph.GraphOverlay{Problems: recipe.Problems{
				{Field: "name", Message: "ignored"},
				{Field: "build.directives.0", Message: "bad"},
				{Field: "build.directives.0", Message: "worse"},
			}},
			contains: []string{"classDef problem", "class d_0 problem;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.recipe, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnwanted substring: %v", got, unwanted)
				}
			}
			if strings.Count(got, "class d_0 problem;") > 1 {
				t.Errorf("Expected deduplicated overlay classes")
			}
		})
	}
}

func TestGenerateMermaid_Empty(t *testing.T) {
	got := graph.GenerateMermaid(newRecipe(), nil)
	if strings.Contains(got, "-->") {
		t.Errorf("Expected no edges for an empty recipe, got:\n%s", got)
	}
}
