package catalog

import (
	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/registry"
)

type primitiveSpec struct {
	kind        domain.Kind
	label       string
	description string
	icon        string
	keywords    []string
	def         func() domain.Directive
	help        string
}

var primitiveSpecs = []primitiveSpec{
	{
		kind: domain.KindGroup, label: "Group", icon: "FolderIcon",
		description: "Group related directives together",
		keywords:    []string{"group", "folder", "organize"},
		def:         func() domain.Directive { return &domain.GroupDirective{Group: domain.Directives{}} },
		help:        "Groups keep related directives together. Groups may nest.",
	},
	{
		kind: domain.KindEnvironment, label: "Environment", icon: "GlobeAltIcon",
		description: "Set environment variables",
		keywords:    []string{"env", "environment", "variable", "path"},
		def: func() domain.Directive {
			return &domain.EnvironmentDirective{Environment: map[string]string{}}
		},
		help: "Sets environment variables in the image. Reference existing values with `$NAME`.",
	},
	{
		kind: domain.KindInstall, label: "Install Packages", icon: "CubeIcon",
		description: "Install system packages",
		keywords:    []string{"install", "package", "apt", "yum"},
		def:         func() domain.Directive { return &domain.InstallDirective{Packages: []string{}} },
		help:        "Installs packages with the package manager of the base image.",
	},
	{
		kind: domain.KindWorkdir, label: "Working Directory", icon: "FolderOpenIcon",
		description: "Change the working directory",
		keywords:    []string{"workdir", "cd", "directory"},
		def:         func() domain.Directive { return &domain.WorkdirDirective{} },
		help:        "Changes the directory later directives run in.",
	},
	{
		kind: domain.KindRun, label: "Run Commands", icon: "CommandLineIcon",
		description: "Run shell commands",
		keywords:    []string{"run", "command", "shell", "execute"},
		def:         func() domain.Directive { return &domain.RunDirective{Commands: []string{}} },
		help:        "Runs shell commands. Each run directive becomes one image layer.",
	},
	{
		kind: domain.KindVariables, label: "Variables", icon: "VariableIcon",
		description: "Define template variables",
		keywords:    []string{"variables", "vars", "template"},
		def:         func() domain.Directive { return &domain.VariablesDirective{Variables: map[string]any{}} },
		help:        "Defines variables usable as `{{ context.name }}` in later directives.",
	},
	{
		kind: domain.KindTemplate, label: "Template", icon: "DocumentDuplicateIcon",
		description: "Install a tool from a NeuroDocker template",
		keywords:    []string{"template", "neurodocker", "tool"},
		def:         func() domain.Directive { return &domain.TemplateDirective{} },
		help:        "Installs an external tool through a NeuroDocker template.",
	},
	{
		kind: domain.KindDeploy, label: "Deploy", icon: "RocketLaunchIcon",
		description: "Expose binaries or paths outside the container",
		keywords:    []string{"deploy", "bins", "path", "expose"},
		def:         func() domain.Directive { return &domain.DeployDirective{} },
		help:        "Registers binaries or directories that are exposed outside the container.",
	},
	{
		kind: domain.KindUser, label: "User", icon: "UserIcon",
		description: "Switch the build user",
		keywords:    []string{"user", "root", "permissions"},
		def:         func() domain.Directive { return &domain.UserDirective{User: "root"} },
		help:        "Switches the user later directives run as.",
	},
	{
		kind: domain.KindCopy, label: "Copy", icon: "DocumentArrowDownIcon",
		description: "Copy files from the build context",
		keywords:    []string{"copy", "cp", "file"},
		def:         func() domain.Directive { return &domain.CopyDirective{Paths: []string{}} },
		help:        "Copies files from the build context. The last path is the destination.",
	},
	{
		kind: domain.KindFile, label: "File", icon: "DocumentTextIcon",
		description: "Declare a file from inline content, a URL or the build context",
		keywords:    []string{"file", "content", "url"},
		def: func() domain.Directive {
			f := domain.FileInfo{}
			f.SetContents("")
			return &domain.FileDirective{File: f}
		},
		help: "Declares a file. Its source is exactly one of inline content, a filename or a URL.",
	},
	{
		kind: domain.KindTest, label: "Test", icon: "BeakerIcon",
		description: "Add a test script",
		keywords:    []string{"test", "check", "verify"},
		def:         func() domain.Directive { return &domain.TestDirective{} },
		help:        "Attaches a test that runs against the built container.",
	},
	{
		kind: domain.KindInclude, label: "Include", icon: "LinkIcon",
		description: "Include a shared recipe fragment",
		keywords:    []string{"include", "macro", "import"},
		def:         func() domain.Directive { return &domain.IncludeDirective{} },
		help:        "Includes a shared recipe fragment by path.",
	},
}

// Primitives returns the picker entries of the primitive directive kinds.
func Primitives() []*registry.Primitive {
	out := make([]*registry.Primitive, 0, len(primitiveSpecs))
	for _, s := range primitiveSpecs {
		s := s
		out = append(out, &registry.Primitive{
			Kind: s.kind,
			Metadata: registry.Metadata{
				Key:         string(s.kind),
				Label:       s.label,
				Description: s.description,
				Icon:        s.icon,
				Color:       greenColor,
				IconColor:   greenIcon,
				Keywords:    s.keywords,
				Default:     s.def(),
			},
			Help: func(registry.Theme) string {
				return "# " + s.label + " Directive\n\n" + s.help + "\n"
			},
		})
	}
	return out
}
