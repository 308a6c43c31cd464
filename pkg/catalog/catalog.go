// Package catalog holds the built-in directive definitions: the primitive directive
// editors, the NeuroDocker templates and the custom group editors.
package catalog

import (
	"github.com/neurocontainers/recipekit/pkg/registry"
)

var (
	grayColor  = registry.Palette{Light: "bg-gray-50 border-gray-200 hover:bg-gray-100", Dark: "bg-gray-900 border-gray-700 hover:bg-gray-800"}
	grayIcon   = registry.Palette{Light: "text-gray-600", Dark: "text-gray-400"}
	greenColor = registry.Palette{Light: "bg-[#f0f7e7] border-[#e6f1d6] hover:bg-[#e6f1d6]", Dark: "bg-[#1e2a16] border-[#2d4222] hover:bg-[#2d4222]"}
	greenIcon  = registry.Palette{Light: "text-[#4f7b38]", Dark: "text-[#91c84a]"}
)

// Default returns every built-in definition in presentation order: primitives first,
// then templates, then custom group editors.
func Default() []registry.Definition {
	var defs []registry.Definition
	for _, p := range Primitives() {
		defs = append(defs, p)
	}
	for _, t := range Templates() {
		defs = append(defs, t)
	}
	for _, g := range GroupEditors() {
		defs = append(defs, g)
	}
	return defs
}

// Templates returns the built-in templates.
func Templates() []*registry.Template {
	return []*registry.Template{JQ(), Miniconda(), Dcm2niix()}
}

// GroupEditors returns the built-in custom group editors.
func GroupEditors() []*registry.GroupEditor {
	return []*registry.GroupEditor{ShellScript()}
}

// NewRegistry builds a registry holding the built-in definitions followed by extra.
func NewRegistry(extra []registry.Definition, opts ...registry.Option) (*registry.Registry, error) {
	return registry.New(append(Default(), extra...), opts...)
}

func tip(theme registry.Theme, text string) string {
	if theme == registry.ThemeDark {
		return "> 💡 **Tip:** " + text + "\n"
	}
	return "> **Tip:** " + text + "\n"
}
