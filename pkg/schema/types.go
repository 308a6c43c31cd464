package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Type defines the contract for argument value validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "text", "boolean").
	Name() string
	// Validate checks if a non-nil value conforms to this type. Values are never coerced.
	Validate(value any) error
}

// TextType validates string values.
type TextType struct{}

func (t *TextType) Name() string { return string(ArgText) }

func (t *TextType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected text, got %T", value)
	}
	return nil
}

// NumberType validates numeric values, integer or floating point.
type NumberType struct{}

func (t *NumberType) Name() string { return string(ArgNumber) }

func (t *NumberType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// BoolType validates boolean values. The strings "true" and "false" are rejected.
type BoolType struct{}

func (t *BoolType) Name() string { return string(ArgBoolean) }

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected list, got %T", value)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// OneOfType validates that a text value is one of a fixed set of options.
type OneOfType struct {
	options []string
}

func (t *OneOfType) Name() string { return string(ArgDropdown) }

func (t *OneOfType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected one of [%s], got %T", strings.Join(t.options, ", "), value)
	}
	for _, o := range t.options {
		if o == s {
			return nil
		}
	}
	return fmt.Errorf("%q is not one of [%s]", s, strings.Join(t.options, ", "))
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// Text creates a text type validator.
func Text() Type { return &TextType{} }

// Number creates a numeric type validator.
func Number() Type { return &NumberType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Slice creates a list type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// OneOf creates a dropdown validator over the given options.
func OneOf(options ...string) Type {
	return &OneOfType{options: options}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
