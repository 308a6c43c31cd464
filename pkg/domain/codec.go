package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Wire keys of the group directive besides "group" itself.
const (
	KeyCustom       = "custom"
	KeyCustomParams = "customParams"
)

// Decode converts a generic map (as produced by JSON or YAML decoding) into a Directive.
// Values with no recognised key, or with more than one, decode to *UnknownDirective with a
// nil error: a malformed directive is surfaced by the caller, not treated as fatal.
// An error is returned only when the recognised key carries a payload of the wrong shape.
func Decode(raw map[string]any) (Directive, error) {
	var found []Kind
	for _, k := range kinds {
		if _, ok := raw[string(k)]; ok {
			found = append(found, k)
		}
	}
	if len(found) != 1 {
		return &UnknownDirective{Keys: sortedKeys(raw), Raw: raw}, nil
	}

	kind := found[0]
	payload := raw[string(kind)]

	var (
		d   Directive
		err error
	)
	switch kind {
	case KindGroup:
		d, err = decodeGroup(raw)
	case KindEnvironment:
		env := &EnvironmentDirective{}
		err = decodeInto(payload, &env.Environment, true)
		d = env
	case KindInstall:
		in := &InstallDirective{}
		in.Packages, err = decodeWords(payload)
		d = in
	case KindWorkdir:
		w := &WorkdirDirective{}
		err = decodeInto(payload, &w.Workdir, false)
		d = w
	case KindRun:
		r := &RunDirective{}
		if s, ok := payload.(string); ok {
			r.Commands = []string{s}
		} else {
			err = decodeInto(payload, &r.Commands, false)
		}
		d = r
	case KindVariables:
		v := &VariablesDirective{}
		err = decodeInto(payload, &v.Variables, false)
		d = v
	case KindTemplate:
		d, err = decodeTemplate(payload)
	case KindDeploy:
		dep := &DeployDirective{}
		err = decodeInto(payload, dep, false)
		d = dep
	case KindUser:
		u := &UserDirective{}
		err = decodeInto(payload, &u.User, false)
		d = u
	case KindCopy:
		c := &CopyDirective{}
		c.Paths, err = decodeWords(payload)
		d = c
	case KindFile:
		f := &FileDirective{}
		err = decodeInto(payload, &f.File, false)
		if err == nil && !f.File.Exclusive() {
			err = fmt.Errorf("contents, url and filename are mutually exclusive")
		}
		d = f
	case KindTest:
		t := &TestDirective{}
		err = decodeInto(payload, &t.Test, false)
		d = t
	case KindInclude:
		i := &IncludeDirective{}
		err = decodeInto(payload, &i.Include, false)
		d = i
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s directive: %w", kind, err)
	}
	return d, nil
}

// DecodeAll decodes a sequence of generic values.
func DecodeAll(raw []any) (Directives, error) {
	out := make(Directives, 0, len(raw))
	for i, item := range raw {
		m, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("directive %d: expected object, got %T", i, item)
		}
		d, err := Decode(m)
		if err != nil {
			return nil, fmt.Errorf("directive %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeGroup(raw map[string]any) (Directive, error) {
	g := &GroupDirective{}
	children, ok := raw[string(KindGroup)].([]any)
	if !ok && raw[string(KindGroup)] != nil {
		if typed, isTyped := raw[string(KindGroup)].([]map[string]any); isTyped {
			children = make([]any, len(typed))
			for i := range typed {
				children[i] = typed[i]
			}
		} else {
			return nil, fmt.Errorf("expected list, got %T", raw[string(KindGroup)])
		}
	}
	var err error
	if g.Group, err = DecodeAll(children); err != nil {
		return nil, err
	}
	if c, ok := raw[KeyCustom]; ok && c != nil {
		if err := decodeInto(c, &g.Custom, false); err != nil {
			return nil, fmt.Errorf("custom: %w", err)
		}
	}
	if g.Custom != "" {
		if p, ok := asMap(raw[KeyCustomParams]); ok {
			g.CustomParams = p
		}
	}
	return g, nil
}

func decodeTemplate(payload any) (Directive, error) {
	m, ok := asMap(payload)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", payload)
	}
	t := &TemplateDirective{Params: map[string]any{}}
	for k, v := range m {
		if k == "name" {
			if err := decodeInto(v, &t.Name, false); err != nil {
				return nil, fmt.Errorf("name: %w", err)
			}
			continue
		}
		t.Params[k] = v
	}
	if len(t.Params) == 0 {
		t.Params = nil
	}
	return t, nil
}

// decodeWords accepts either a list of strings or a single space-separated string.
func decodeWords(payload any) ([]string, error) {
	if s, ok := payload.(string); ok {
		return strings.Fields(s), nil
	}
	var out []string
	if err := decodeInto(payload, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeInto(input any, out any, weak bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: weak,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Encode converts a Directive into its wire form.
func Encode(d Directive) map[string]any {
	switch v := d.(type) {
	case *GroupDirective:
		out := map[string]any{string(KindGroup): EncodeAll(v.Group)}
		if v.Custom != "" {
			out[KeyCustom] = v.Custom
			if len(v.CustomParams) > 0 {
				out[KeyCustomParams] = cloneMap(v.CustomParams)
			}
		}
		return out
	case *EnvironmentDirective:
		env := make(map[string]any, len(v.Environment))
		for k, val := range v.Environment {
			env[k] = val
		}
		return map[string]any{string(KindEnvironment): env}
	case *InstallDirective:
		return map[string]any{string(KindInstall): stringsToAny(v.Packages)}
	case *WorkdirDirective:
		return map[string]any{string(KindWorkdir): v.Workdir}
	case *RunDirective:
		return map[string]any{string(KindRun): stringsToAny(v.Commands)}
	case *VariablesDirective:
		return map[string]any{string(KindVariables): cloneMap(v.Variables)}
	case *TemplateDirective:
		t := cloneMap(v.Params)
		if t == nil {
			t = map[string]any{}
		}
		t["name"] = v.Name
		return map[string]any{string(KindTemplate): t}
	case *DeployDirective:
		dep := map[string]any{}
		if len(v.Bins) > 0 {
			dep["bins"] = stringsToAny(v.Bins)
		}
		if len(v.Path) > 0 {
			dep["path"] = stringsToAny(v.Path)
		}
		return map[string]any{string(KindDeploy): dep}
	case *UserDirective:
		return map[string]any{string(KindUser): v.User}
	case *CopyDirective:
		return map[string]any{string(KindCopy): stringsToAny(v.Paths)}
	case *FileDirective:
		f := map[string]any{"name": v.File.Name}
		switch {
		case v.File.Contents != nil:
			f["contents"] = *v.File.Contents
		case v.File.URL != nil:
			f["url"] = *v.File.URL
		case v.File.Filename != nil:
			f["filename"] = *v.File.Filename
		}
		if v.File.Executable {
			f["executable"] = true
		}
		return map[string]any{string(KindFile): f}
	case *TestDirective:
		t := map[string]any{"name": v.Test.Name}
		if v.Test.Script != "" {
			t["script"] = v.Test.Script
		}
		if v.Test.Builtin != "" {
			t["builtin"] = v.Test.Builtin
		}
		return map[string]any{string(KindTest): t}
	case *IncludeDirective:
		return map[string]any{string(KindInclude): v.Include}
	case *UnknownDirective:
		return cloneMap(v.Raw)
	default:
		return nil
	}
}

// EncodeAll encodes a directive sequence. The result is never nil.
func EncodeAll(ds Directives) []any {
	out := make([]any, 0, len(ds))
	for _, d := range ds {
		out = append(out, Encode(d))
	}
	return out
}

func (ds Directives) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeAll(ds))
}

func (ds *Directives) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := DecodeAll(raw)
	if err != nil {
		return err
	}
	*ds = decoded
	return nil
}

func (ds Directives) MarshalYAML() (any, error) {
	return EncodeAll(ds), nil
}

func (ds *Directives) UnmarshalYAML(value *yaml.Node) error {
	var raw []any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	decoded, err := DecodeAll(raw)
	if err != nil {
		return err
	}
	*ds = decoded
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
