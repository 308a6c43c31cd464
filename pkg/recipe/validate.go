package recipe

import (
	"fmt"
	"regexp"
	"strings"
)

// Categories is the fixed set of recipe categories.
var Categories = []string{
	"bids apps",
	"data organisation",
	"diffusion imaging",
	"electrophysiology",
	"functional imaging",
	"hippocampus",
	"image reconstruction",
	"image registration",
	"image segmentation",
	"machine learning",
	"molecular biology",
	"phase processing",
	"programming",
	"quality control",
	"quantitative imaging",
	"rodent-specific",
	"shape analysis",
	"spectroscopy",
	"spine",
	"statistics",
	"structural imaging",
	"visualization",
	"workflows",
}

var (
	namePattern = regexp.MustCompile(`^[a-z0-9]+$`)
	urlPattern  = regexp.MustCompile(`^https?://.+`)
)

// Problem is one issue found in a recipe.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return p.Field + ": " + p.Message
}

// Problems is an ordered list of recipe issues.
type Problems []Problem

// Err returns the problems as a single error, or nil.
func (ps Problems) Err() error {
	if len(ps) == 0 {
		return nil
	}
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = p.String()
	}
	return fmt.Errorf("found %d problems:\n- %s", len(ps), strings.Join(lines, "\n- "))
}

func (ps *Problems) add(field, msg string) {
	*ps = append(*ps, Problem{Field: field, Message: msg})
}

// Validate checks the recipe metadata: name, version, architectures, categories and
// documentation. Directives are checked by Lint.
func Validate(r *Recipe) Problems {
	var ps Problems

	if msg := validateName(r.Name); msg != "" {
		ps.add("name", msg)
	}
	if strings.TrimSpace(r.Version) == "" {
		ps.add("version", "Version is required")
	}

	if len(r.Architectures) == 0 {
		ps.add("architectures", "At least one architecture must be selected")
	}
	for _, a := range r.Architectures {
		if a != ArchX86_64 && a != ArchAarch64 {
			ps.add("architectures", fmt.Sprintf("Unsupported architecture %q", a))
		}
	}

	if len(r.Categories) == 0 {
		ps.add("categories", "At least one category must be selected")
	}
	for _, c := range r.Categories {
		if !isCategory(c) {
			ps.add("categories", fmt.Sprintf("Unknown category %q", c))
		}
	}

	if field, msg := validateDocumentation(r); msg != "" {
		ps.add(field, msg)
	}
	return ps
}

func validateName(name string) string {
	switch {
	case strings.TrimSpace(name) == "":
		return "Container name is required"
	case len(name) < 2:
		return "Container name must be at least 2 characters"
	case len(name) > 63:
		return "Container name cannot exceed 63 characters"
	case !namePattern.MatchString(name):
		return "Container name must be lowercase and can only contain letters and numbers"
	}
	return ""
}

func validateDocumentation(r *Recipe) (string, string) {
	hasReadme := strings.TrimSpace(r.Readme) != ""
	hasURL := strings.TrimSpace(r.ReadmeURL) != ""
	hasStructured := r.StructuredReadme != nil && !r.StructuredReadme.IsEmpty()

	if !hasReadme && !hasURL && !hasStructured {
		return "readme", "Documentation is required (either content, structured, or URL)"
	}
	if hasURL && !urlPattern.MatchString(r.ReadmeURL) {
		return "readme_url", "Documentation URL must be a valid HTTP/HTTPS URL"
	}
	return "", ""
}

func isCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
