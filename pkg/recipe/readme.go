package recipe

import (
	"strings"
)

// StructuredReadme is documentation entered field by field.
type StructuredReadme struct {
	Description   string `json:"description" yaml:"description"`
	Example       string `json:"example" yaml:"example"`
	Documentation string `json:"documentation" yaml:"documentation"`
	Citation      string `json:"citation" yaml:"citation"`
}

// IsEmpty reports whether every field is blank.
func (s StructuredReadme) IsEmpty() bool {
	return strings.TrimSpace(s.Description) == "" &&
		strings.TrimSpace(s.Example) == "" &&
		strings.TrimSpace(s.Documentation) == "" &&
		strings.TrimSpace(s.Citation) == ""
}

// Text renders the plain readme shipped with the container. Blank sections are left out.
func (s StructuredReadme) Text(name, version string) string {
	var b strings.Builder
	b.WriteString("----------------------------------\n")
	b.WriteString("## " + name + "/" + version + " ##\n")

	if d := strings.TrimSpace(s.Description); d != "" {
		b.WriteString(d + "\n")
	}
	if ex := strings.TrimSpace(s.Example); ex != "" {
		b.WriteString("\nExample:\n```\n" + ex + "\n```\n")
	}
	if doc := strings.TrimSpace(s.Documentation); doc != "" {
		b.WriteString("\nMore documentation can be found here: " + doc + "\n")
	}
	if c := strings.TrimSpace(s.Citation); c != "" {
		b.WriteString("\nCitation:\n```\n" + c + "\n```\n")
	}

	b.WriteString("\nTo run container outside of this environment: ml " + name + "/" + version + "\n")
	b.WriteString("----------------------------------\n")
	return b.String()
}
