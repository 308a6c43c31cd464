package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the recipekit banner with its version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"               _            _    _ _   ", "#91c84a"},
		{"  _ _ ___ __(_)_ __  ___| |__(_) |_ ", "#7fb83f"},
		{" | '_/ -_) _| | '_ \\/ -_) / /| |  _|", "#6aa336"},
		{" |_| \\___\\__|_| .__/\\___|_\\_\\|_|\\__|", "#4f7b38"},
		{"              |_|                    ", "#3d602b"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
