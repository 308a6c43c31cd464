package catalog

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/neurocontainers/recipekit/pkg/domain"
	"github.com/neurocontainers/recipekit/pkg/registry"
	"github.com/neurocontainers/recipekit/pkg/schema"
)

// ShellScriptKey is the custom group key of the Shell Script editor.
const ShellScriptKey = "shellScript"

// ShellScriptArgs are the decoded arguments of the Shell Script editor.
type ShellScriptArgs struct {
	Name          string `mapstructure:"name"`
	Path          string `mapstructure:"path"`
	Content       string `mapstructure:"content"`
	Executable    bool   `mapstructure:"executable"`
	AddToPath     bool   `mapstructure:"addToPath"`
	MakeDeployBin bool   `mapstructure:"makeDeployBin"`
}

// ShellScript creates a script file in the image, optionally executable, on PATH and
// registered as a deploy binary.
func ShellScript() *registry.GroupEditor {
	return &registry.GroupEditor{
		Metadata: registry.Metadata{
			Key:         ShellScriptKey,
			Label:       "Shell Script",
			Description: "Create a shell script",
			Icon:        "FolderIcon",
			Color:       grayColor,
			IconColor:   grayIcon,
			Keywords:    []string{"shell", "script", "bash", "sh", "executable"},
		},
		Help: shellScriptHelp,
		Arguments: schema.Arguments{
			{
				Name:        "name",
				Type:        schema.ArgText,
				Required:    true,
				Default:     "myscript",
				Description: "Name of the shell script file.",
			},
			{
				Name:        "path",
				Type:        schema.ArgText,
				Required:    true,
				Default:     "/usr/local/bin",
				Description: "Path where the shell script will be created. Must be an absolute path.",
			},
			{
				Name:        "content",
				Type:        schema.ArgText,
				Required:    true,
				Default:     "#!/bin/bash\n\necho 'Hello, World!'",
				Description: "Content of the shell script. This should be a valid shell script.",
				Multiline:   true,
			},
			{
				Name:        "executable",
				Type:        schema.ArgBoolean,
				Default:     true,
				Description: "Make the script executable. If true, the script will be given execute permissions.",
			},
			{
				Name:        "addToPath",
				Type:        schema.ArgBoolean,
				Default:     true,
				Description: "Add the script's directory to the PATH environment variable.",
			},
			{
				Name:        "makeDeployBin",
				Type:        schema.ArgBoolean,
				Default:     true,
				Description: "Register the script as a deploy binary, making it available outside the container.",
			},
		},
		Update: expandShellScript,
	}
}

func expandShellScript(raw map[string]any) domain.GroupDirective {
	var args ShellScriptArgs
	// Arguments are validated before expansion, so every value already has its declared
	// type and a nil optional value decodes to its zero value.
	if err := mapstructure.Decode(raw, &args); err != nil {
		panic(fmt.Sprintf("shellScript: validated arguments failed to decode: %v", err))
	}

	target := fmt.Sprintf("%s/%s", args.Path, args.Name)

	file := domain.FileInfo{Name: args.Name}
	file.SetContents(args.Content)

	group := domain.Directives{
		&domain.FileDirective{File: file},
		&domain.RunDirective{Commands: nonEmpty(
			fmt.Sprintf(`cp {{ get_file("%s") }} %s`, args.Name, target),
			when(args.Executable, "chmod +x "+target),
		)},
	}
	if args.AddToPath {
		group = append(group, &domain.EnvironmentDirective{
			Environment: map[string]string{"PATH": "$PATH:" + args.Path},
		})
	}
	if args.MakeDeployBin {
		group = append(group, &domain.DeployDirective{Bins: []string{args.Name}})
	}

	return domain.GroupDirective{Group: group, Custom: ShellScriptKey}
}

func when(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}

func nonEmpty(ss ...string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func shellScriptHelp(theme registry.Theme) string {
	return `# Shell Script Group

Creates an executable shell script and configures it for deployment. This group
automatically handles script creation, permission setting, PATH configuration and
deployment binary registration.

**What this creates:**

- A file directive with your script content
- A run directive to copy and set permissions
- Optional environment directive to add to PATH
- Optional deploy directive for binary registration

**Use cases:**

- Custom wrapper scripts for neuroimaging tools
- Environment setup scripts
- Data processing pipelines
- Container initialization scripts

` + tip(theme, "Use the advanced mode to manually edit individual directives if needed.")
}
