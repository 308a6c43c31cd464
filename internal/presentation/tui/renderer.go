package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/neurocontainers/recipekit/pkg/registry"
)

const defaultWidth = 80

// ResolveTheme maps a configured theme (light, dark or auto) to a help theme.
// auto follows the terminal background.
func ResolveTheme(name string) registry.Theme {
	switch strings.ToLower(name) {
	case string(registry.ThemeLight):
		return registry.ThemeLight
	case string(registry.ThemeDark):
		return registry.ThemeDark
	}
	if termenv.HasDarkBackground() {
		return registry.ThemeDark
	}
	return registry.ThemeLight
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or a default when it has none.
func Width(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// NewRenderer returns a function that renders markdown using glamour in the given theme.
// When plain is set the markdown is returned as is, for pipes and files.
func NewRenderer(theme registry.Theme, width int, plain bool) func(string) (string, error) {
	if plain {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(string(theme)),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
