package cli

import (
	"fmt"
	"io"

	"github.com/neurocontainers/recipekit"
)

// CheckRecipe lints the recipe at path and prints its problems to w. It reports whether
// the recipe is clean. A recipe that cannot be read is an error.
func CheckRecipe(w io.Writer, kit *recipekit.Kit, path string, stdin io.Reader) (bool, error) {
	r, _, err := ReadRecipe(path, stdin)
	if err != nil {
		return false, err
	}

	problems := kit.Lint(r)
	if len(problems) == 0 {
		fmt.Fprintf(w, "%s is valid! ✅\n", path)
		return true, nil
	}

	fmt.Fprintf(w, "%s: %d problems\n", path, len(problems))
	for _, p := range problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	return false, nil
}
