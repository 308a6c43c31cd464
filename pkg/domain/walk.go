package domain

import (
	"reflect"
	"strconv"
)

// Path locates a directive inside a nested directive tree, outermost index first.
type Path []int

func (p Path) String() string {
	s := ""
	for i, idx := range p {
		if i > 0 {
			s += "."
		}
		s += strconv.Itoa(idx)
	}
	return s
}

// WalkFunc is called for every directive in a tree. Returning false skips the children of
// a group.
type WalkFunc func(path Path, d Directive) bool

// Walk visits ds depth-first in document order.
func Walk(ds Directives, fn WalkFunc) {
	walk(nil, ds, fn)
}

func walk(prefix Path, ds Directives, fn WalkFunc) {
	for i, d := range ds {
		path := append(append(Path(nil), prefix...), i)
		descend := fn(path, d)
		if g, ok := d.(*GroupDirective); ok && descend {
			walk(path, g.Group, fn)
		}
	}
}

// Equal reports whether two directives are structurally equal in their wire form.
func Equal(a, b Directive) bool {
	return reflect.DeepEqual(Encode(a), Encode(b))
}

// EqualAll reports whether two sequences are structurally equal.
func EqualAll(a, b Directives) bool {
	return reflect.DeepEqual(EncodeAll(a), EncodeAll(b))
}

// Clone returns a deep copy of d.
func Clone(d Directive) Directive {
	switch v := d.(type) {
	case *GroupDirective:
		return &GroupDirective{
			Group:        CloneAll(v.Group),
			Custom:       v.Custom,
			CustomParams: cloneMap(v.CustomParams),
		}
	case *EnvironmentDirective:
		var env map[string]string
		if v.Environment != nil {
			env = make(map[string]string, len(v.Environment))
			for k, val := range v.Environment {
				env[k] = val
			}
		}
		return &EnvironmentDirective{Environment: env}
	case *InstallDirective:
		return &InstallDirective{Packages: cloneStrings(v.Packages)}
	case *WorkdirDirective:
		return &WorkdirDirective{Workdir: v.Workdir}
	case *RunDirective:
		return &RunDirective{Commands: cloneStrings(v.Commands)}
	case *VariablesDirective:
		return &VariablesDirective{Variables: cloneMap(v.Variables)}
	case *TemplateDirective:
		return &TemplateDirective{Name: v.Name, Params: cloneMap(v.Params)}
	case *DeployDirective:
		return &DeployDirective{Bins: cloneStrings(v.Bins), Path: cloneStrings(v.Path)}
	case *UserDirective:
		return &UserDirective{User: v.User}
	case *CopyDirective:
		return &CopyDirective{Paths: cloneStrings(v.Paths)}
	case *FileDirective:
		f := v.File
		f.Contents = clonePtr(v.File.Contents)
		f.URL = clonePtr(v.File.URL)
		f.Filename = clonePtr(v.File.Filename)
		return &FileDirective{File: f}
	case *TestDirective:
		return &TestDirective{Test: v.Test}
	case *IncludeDirective:
		return &IncludeDirective{Include: v.Include}
	case *UnknownDirective:
		return &UnknownDirective{Keys: cloneStrings(v.Keys), Raw: cloneMap(v.Raw)}
	default:
		return d
	}
}

// CloneAll deep-copies a sequence.
func CloneAll(ds Directives) Directives {
	if ds == nil {
		return nil
	}
	out := make(Directives, len(ds))
	for i, d := range ds {
		out[i] = Clone(d)
	}
	return out
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return cloneStrings(t)
	default:
		return v
	}
}
