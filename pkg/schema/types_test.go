package schema

import (
	"fmt"
	"testing"
)

func TestTextType(t *testing.T) {
	typ := Text()

	if typ.Name() != "text" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "text")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"hello", false},
		{"", false},
		{42, true},
		{3.14, true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestNumberType(t *testing.T) {
	typ := Number()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{3.14, false},
		{float32(3.14), false},
		{42, false},
		{int64(42), false},
		{"42", true},
		{true, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	if typ.Name() != "boolean" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "boolean")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{true, false},
		{false, false},
		{"true", true},
		{1, true},
		{0, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestSliceType(t *testing.T) {
	typ := Slice(Text())

	if typ.Name() != "[text]" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "[text]")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{[]string{"a", "b"}, false},
		{[]any{"a", "b"}, false},
		{[]any{"a", 2}, true},
		{"a b", true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestOneOfType(t *testing.T) {
	typ := OneOf("1.7.1", "1.7", "1.6")

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"1.7.1", false},
		{"1.6", false},
		{"1.5", true},
		{1.6, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestCustomType(t *testing.T) {
	absPath := Custom("abs_path", func(v any) error {
		s, ok := v.(string)
		if !ok || len(s) == 0 || s[0] != '/' {
			return fmt.Errorf("must be an absolute path")
		}
		return nil
	})

	if absPath.Name() != "abs_path" {
		t.Errorf("Name() = %q, want abs_path", absPath.Name())
	}
	if err := absPath.Validate("/usr/local/bin"); err != nil {
		t.Errorf("Validate(/usr/local/bin) error = %v", err)
	}
	if err := absPath.Validate("bin"); err == nil {
		t.Error("Validate(bin) should fail")
	}
}

func TestParseArgumentType(t *testing.T) {
	for _, name := range []string{"text", "boolean", "dropdown", "number", "list"} {
		if _, err := ParseArgumentType(name); err != nil {
			t.Errorf("ParseArgumentType(%q) error = %v", name, err)
		}
	}
	if _, err := ParseArgumentType("string"); err == nil {
		t.Error("ParseArgumentType(string) should fail")
	}

	var at ArgumentType
	if err := at.UnmarshalText([]byte("dropdown")); err != nil || at != ArgDropdown {
		t.Errorf("UnmarshalText(dropdown) = %q, %v", at, err)
	}
	if err := at.UnmarshalText([]byte("color")); err == nil {
		t.Error("UnmarshalText(color) should fail")
	}
}
