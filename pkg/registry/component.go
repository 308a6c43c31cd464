package registry

import "github.com/neurocontainers/recipekit/pkg/domain"

// Component is an opaque handle to the editor capability that renders a directive.
// The core only compares handles; what they render is the presentation layer's business.
type Component string

const (
	ComponentGenericGroup     Component = "GenericGroup"
	ComponentEnvironment      Component = "Environment"
	ComponentInstall          Component = "Install"
	ComponentWorkingDirectory Component = "WorkingDirectory"
	ComponentRunCommand       Component = "RunCommand"
	ComponentVariable         Component = "Variable"
	ComponentTemplate         Component = "Template"
	ComponentDeploy           Component = "Deploy"
	ComponentUser             Component = "User"
	ComponentCopy             Component = "Copy"
	ComponentFile             Component = "File"
	ComponentTest             Component = "Test"
	ComponentInclude          Component = "Include"
	ComponentUnknown          Component = "UnknownDirective"
)

var kindComponents = map[domain.Kind]Component{
	domain.KindGroup:       ComponentGenericGroup,
	domain.KindEnvironment: ComponentEnvironment,
	domain.KindInstall:     ComponentInstall,
	domain.KindWorkdir:     ComponentWorkingDirectory,
	domain.KindRun:         ComponentRunCommand,
	domain.KindVariables:   ComponentVariable,
	domain.KindTemplate:    ComponentTemplate,
	domain.KindDeploy:      ComponentDeploy,
	domain.KindUser:        ComponentUser,
	domain.KindCopy:        ComponentCopy,
	domain.KindFile:        ComponentFile,
	domain.KindTest:        ComponentTest,
	domain.KindInclude:     ComponentInclude,
}

// ComponentFor returns the dedicated editor of a primitive directive kind, or
// ComponentUnknown.
func ComponentFor(kind domain.Kind) Component {
	if c, ok := kindComponents[kind]; ok {
		return c
	}
	return ComponentUnknown
}

// CustomComponent is the default handle of a custom group editor.
func CustomComponent(key string) Component {
	return Component("CustomGroup:" + key)
}
