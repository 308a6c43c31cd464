package recipe

import (
	"errors"

	"github.com/neurocontainers/recipekit/pkg/dispatch"
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/expand"
	"github.com/neurocontainers/recipekit/pkg/registry"
)

// Lint checks the build directives: unknown directives, files with more than one source
// and custom groups that no longer match their parameters. Children of custom groups
// are only checked through their group. A group whose custom key is not registered is
// edited as a plain group, so it is checked like one.
func Lint(r *Recipe, dp *dispatch.Dispatcher, eng *expand.Engine) Problems {
	var ps Problems
	domain.Walk(r.Build.Directives, func(path domain.Path, d domain.Directive) bool {
		field := "build.directives." + path.String()

		route := dp.Resolve(d)
		if route.Component == registry.ComponentUnknown {
			ps.add(field, route.Message)
			return false
		}

		switch v := d.(type) {
		case *domain.FileDirective:
			if !v.File.Exclusive() {
				ps.add(field, "contents, url and filename are mutually exclusive")
			}
		case *domain.GroupDirective:
			if !v.IsCustom() {
				return true
			}
			err := eng.Verify(v)
			if errors.Is(err, domain.ErrUnknownCustomGroup) {
				return true
			}
			if err != nil {
				ps.add(field, err.Error())
			}
			return false
		}
		return true
	})
	return ps
}

// Check runs Validate and Lint together.
func Check(r *Recipe, dp *dispatch.Dispatcher, eng *expand.Engine) Problems {
	return append(Validate(r), Lint(r, dp, eng)...)
}
