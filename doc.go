/*
Package recipekit manages the build directives of neuroimaging container recipes.

A recipe describes how to build a container: its metadata and an ordered tree of
directives (install, run, environment, file, template, ...). Groups nest directives,
and a custom group is a group produced by a registered editor from a small set of
parameters. The parameters are stored on the group so that it can be re-expanded
or checked for drift later.

# Concept

The library is split into a few packages:

  - domain: the directive types and their wire codec.
  - schema: argument declarations and validation.
  - registry: the immutable table of primitives, templates and group editors.
  - expand: the engine that turns parameters into custom groups.
  - dispatch: picks the editor component of a directive.
  - recipe: the recipe document, its codec and validation.

The Kit type wires them together over the built-in catalog.

# Usage

	kit, err := recipekit.New()
	if err != nil {
		log.Fatal(err)
	}

	exp, err := kit.Expand("shellScript", map[string]any{
		"name":    "hello",
		"content": "echo hello",
	})
	if err != nil {
		log.Fatal(err)
	}
	if !exp.Valid {
		log.Fatal(exp.Err())
	}

	r := recipe.New("hello", "1.0")
	r.Build.Directives = append(r.Build.Directives, exp.Group)
	for _, p := range kit.Lint(r) {
		log.Println(p)
	}

Recipes are read and written with recipe.Unmarshal and recipe.Marshal, in YAML or JSON.
*/
package recipekit
