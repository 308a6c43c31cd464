package schema

import (
	"fmt"
	"reflect"
)

// Argument declares one typed, possibly required argument of a macro or template.
type Argument struct {
	Name        string       `json:"name" yaml:"name" mapstructure:"name"`
	Type        ArgumentType `json:"type" yaml:"type" mapstructure:"type"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Default     any          `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" mapstructure:"defaultValue"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
	Multiline   bool         `json:"multiline,omitempty" yaml:"multiline,omitempty" mapstructure:"multiline"`
}

// Arguments is an ordered argument schema. Order is presentation and evaluation order;
// names are unique.
type Arguments []Argument

// Lookup returns the argument with the given name.
func (as Arguments) Lookup(name string) (Argument, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// Names returns the argument names in schema order.
func (as Arguments) Names() []string {
	names := make([]string, len(as))
	for i, a := range as {
		names[i] = a.Name
	}
	return names
}

// Check verifies the schema itself: names are non-empty and unique, types are known,
// dropdowns declare options and defaults conform to their type.
func (as Arguments) Check() error {
	var errs []error
	seen := make(map[string]bool, len(as))
	for i, a := range as {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("argument %d: name is empty", i))
			continue
		}
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("argument %q: duplicate name", a.Name))
			continue
		}
		seen[a.Name] = true

		typ, err := typeFor(a)
		if err != nil {
			errs = append(errs, fmt.Errorf("argument %q: %w", a.Name, err))
			continue
		}
		if a.Type == ArgDropdown && len(a.Options) == 0 {
			errs = append(errs, fmt.Errorf("argument %q: dropdown without options", a.Name))
			continue
		}
		if a.Default != nil {
			if err := typ.Validate(a.Default); err != nil {
				errs = append(errs, fmt.Errorf("argument %q: default: %w", a.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Result is the outcome of validating a candidate argument map.
type Result struct {
	// Valid is true when Errors is empty.
	Valid bool `json:"valid"`
	// Filled holds every schema argument with defaults applied. Absent arguments without a
	// default are present with a nil value.
	Filled map[string]any `json:"filled"`
	// Errors maps argument names to a human-readable message.
	Errors map[string]string `json:"errors,omitempty"`

	errs []error
}

// Err returns the failures as an *AggregateError in schema order, or nil.
func (r Result) Err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: r.errs}
}

// Validate resolves values against the schema. A missing (or nil) value takes the
// argument's default. A required argument whose resolved value is empty (nil, or "" for
// text, or an empty list) fails with "required"; any other non-nil value must match the
// declared type exactly. values is never modified, and names outside the schema are
// dropped from Filled.
func Validate(args Arguments, values map[string]any) Result {
	res := Result{
		Filled: make(map[string]any, len(args)),
		Errors: map[string]string{},
	}

	for _, a := range args {
		v, ok := values[a.Name]
		if !ok || v == nil {
			v = a.Default
		}
		res.Filled[a.Name] = v

		if isEmpty(a.Type, v) {
			if a.Required {
				res.fail(&ValidationError{Key: a.Name, Reason: "required"})
			}
			continue
		}

		typ, err := typeFor(a)
		if err != nil {
			res.fail(&ValidationError{Key: a.Name, Reason: err.Error(), Value: v})
			continue
		}
		if err := typ.Validate(v); err != nil {
			res.fail(&ValidationError{Key: a.Name, Reason: err.Error(), Value: v})
		}
	}

	res.Valid = len(res.errs) == 0
	if res.Valid {
		res.Errors = nil
	}
	return res
}

func (r *Result) fail(err *ValidationError) {
	r.errs = append(r.errs, err)
	r.Errors[err.Key] = err.Reason
}

func isEmpty(t ArgumentType, v any) bool {
	if v == nil {
		return true
	}
	switch t {
	case ArgText, ArgDropdown:
		s, ok := v.(string)
		return ok && s == ""
	case ArgList:
		rv := reflect.ValueOf(v)
		return (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0
	default:
		return false
	}
}
