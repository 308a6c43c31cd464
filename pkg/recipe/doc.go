// Package recipe models a container build recipe document: metadata, documentation,
// licensing and the build section holding the directive tree.
//
// Recipes load from and save to YAML or JSON. Validate checks the metadata the way the
// recipe editor does; Lint checks the directive tree against a registry.
package recipe
