package domain

// Kind is the discriminating key of a directive.
type Kind string

// Directive kinds, in the order the editor presents them.
const (
	KindGroup       Kind = "group"
	KindEnvironment Kind = "environment"
	KindInstall     Kind = "install"
	KindWorkdir     Kind = "workdir"
	KindRun         Kind = "run"
	KindVariables   Kind = "variables"
	KindTemplate    Kind = "template"
	KindDeploy      Kind = "deploy"
	KindUser        Kind = "user"
	KindCopy        Kind = "copy"
	KindFile        Kind = "file"
	KindTest        Kind = "test"
	KindInclude     Kind = "include"

	// KindUnknown is reported by UnknownDirective. It is never a valid wire key.
	KindUnknown Kind = ""
)

var kinds = []Kind{
	KindGroup, KindEnvironment, KindInstall, KindWorkdir, KindRun, KindVariables,
	KindTemplate, KindDeploy, KindUser, KindCopy, KindFile, KindTest, KindInclude,
}

// Kinds returns the recognised directive keys.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// IsKind reports whether key is one of the recognised directive keys.
func IsKind(key string) bool {
	for _, k := range kinds {
		if string(k) == key {
			return true
		}
	}
	return false
}

// Directive is a single build step. The set of implementations is closed.
type Directive interface {
	Kind() Kind
	directive()
}

// Directives is an ordered directive sequence.
type Directives []Directive

// GroupDirective wraps an ordered list of child directives.
// Custom names the custom group editor whose expansion produced Group; CustomParams holds
// the arguments of that expansion and is meaningless when Custom is empty.
type GroupDirective struct {
	Group        Directives
	Custom       string
	CustomParams map[string]any
}

// IsCustom reports whether the group is still associated with a custom editor.
func (g *GroupDirective) IsCustom() bool { return g != nil && g.Custom != "" }

// EnvironmentDirective sets environment variables in the image.
type EnvironmentDirective struct {
	Environment map[string]string
}

// InstallDirective installs packages with the base image's package manager.
type InstallDirective struct {
	Packages []string
}

// WorkdirDirective changes the working directory.
type WorkdirDirective struct {
	Workdir string
}

// RunDirective runs shell commands, one layer per directive.
type RunDirective struct {
	Commands []string
}

// VariablesDirective defines template variables usable by later directives.
type VariablesDirective struct {
	Variables map[string]any
}

// TemplateDirective installs an external tool through a registered template.
type TemplateDirective struct {
	Name   string
	Params map[string]any
}

// DeployDirective exposes binaries or paths outside the container.
type DeployDirective struct {
	Bins []string `mapstructure:"bins"`
	Path []string `mapstructure:"path"`
}

// UserDirective switches the build user.
type UserDirective struct {
	User string
}

// CopyDirective copies files from the build context.
type CopyDirective struct {
	Paths []string
}

// FileDirective declares a file made available to later directives.
type FileDirective struct {
	File FileInfo
}

// TestDirective attaches a test to the recipe.
type TestDirective struct {
	Test TestInfo
}

// TestInfo describes a recipe test. Builtin names a predefined test instead of a script.
type TestInfo struct {
	Name    string `mapstructure:"name"`
	Script  string `mapstructure:"script"`
	Builtin string `mapstructure:"builtin"`
}

// IncludeDirective includes a shared recipe fragment.
type IncludeDirective struct {
	Include string
}

// UnknownDirective is a value that carries no recognised key, or more than one.
type UnknownDirective struct {
	Keys []string
	Raw  map[string]any
}

func (*GroupDirective) Kind() Kind       { return KindGroup }
func (*EnvironmentDirective) Kind() Kind { return KindEnvironment }
func (*InstallDirective) Kind() Kind     { return KindInstall }
func (*WorkdirDirective) Kind() Kind     { return KindWorkdir }
func (*RunDirective) Kind() Kind         { return KindRun }
func (*VariablesDirective) Kind() Kind   { return KindVariables }
func (*TemplateDirective) Kind() Kind    { return KindTemplate }
func (*DeployDirective) Kind() Kind      { return KindDeploy }
func (*UserDirective) Kind() Kind        { return KindUser }
func (*CopyDirective) Kind() Kind        { return KindCopy }
func (*FileDirective) Kind() Kind        { return KindFile }
func (*TestDirective) Kind() Kind        { return KindTest }
func (*IncludeDirective) Kind() Kind     { return KindInclude }
func (*UnknownDirective) Kind() Kind     { return KindUnknown }

func (*GroupDirective) directive()       {}
func (*EnvironmentDirective) directive() {}
func (*InstallDirective) directive()     {}
func (*WorkdirDirective) directive()     {}
func (*RunDirective) directive()         {}
func (*VariablesDirective) directive()   {}
func (*TemplateDirective) directive()    {}
func (*DeployDirective) directive()      {}
func (*UserDirective) directive()        {}
func (*CopyDirective) directive()        {}
func (*FileDirective) directive()        {}
func (*TestDirective) directive()        {}
func (*IncludeDirective) directive()     {}
func (*UnknownDirective) directive()     {}

// Err returns the malformed-directive error describing u.
func (u *UnknownDirective) Err() error {
	return &MalformedDirectiveError{Keys: u.Keys}
}
