/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing recipes.

It allows developers to define container recipes using a type-safe, fluent builder pattern
instead of writing YAML by hand. This is particularly useful for generated recipes, unit
testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/neurocontainers/recipekit/pkg/dsl"
	)

	func main() {
		r, err := dsl.New("mytool", "1.0.0").
			Engine(engine).
			Category("programming").
			Readme("My tool.").
			BaseImage("ubuntu:22.04").
			PkgManager("apt").
			Install("curl", "git").
			Custom("shellScript", map[string]any{"name": "mytool"}).
			Build()
		// ... marshal r with recipe.Marshal
	}
*/
package dsl
