package schema

import (
	"fmt"
)

// ArgumentType is the declared type of a macro or template argument.
type ArgumentType string

const (
	ArgText     ArgumentType = "text"
	ArgBoolean  ArgumentType = "boolean"
	ArgDropdown ArgumentType = "dropdown"
	ArgNumber   ArgumentType = "number"
	ArgList     ArgumentType = "list"
)

// ParseArgumentType converts a type name to an ArgumentType.
func ParseArgumentType(name string) (ArgumentType, error) {
	switch t := ArgumentType(name); t {
	case ArgText, ArgBoolean, ArgDropdown, ArgNumber, ArgList:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported argument type: %s", name)
	}
}

// MarshalText serializes the type by name.
func (t ArgumentType) MarshalText() ([]byte, error) {
	if _, err := ParseArgumentType(string(t)); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText deserializes the type from its name, rejecting unknown names.
func (t *ArgumentType) UnmarshalText(data []byte) error {
	if t == nil {
		return fmt.Errorf("schema: UnmarshalText on nil pointer")
	}
	parsed, err := ParseArgumentType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// typeFor builds the validator of an argument.
func typeFor(a Argument) (Type, error) {
	switch a.Type {
	case ArgText:
		return Text(), nil
	case ArgBoolean:
		return Bool(), nil
	case ArgNumber:
		return Number(), nil
	case ArgList:
		return Slice(Text()), nil
	case ArgDropdown:
		return OneOf(a.Options...), nil
	default:
		return nil, fmt.Errorf("unsupported argument type: %q", a.Type)
	}
}
