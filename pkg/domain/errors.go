package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedDirective is returned when a value carries none (or more than one) of the
// recognised directive keys.
var ErrMalformedDirective = errors.New("malformed directive")

// ErrUnknownRegistryKey is returned when a registry lookup misses.
var ErrUnknownRegistryKey = errors.New("unknown registry key")

// ErrUnknownCustomGroup is returned when a group names a custom editor that is not registered.
var ErrUnknownCustomGroup = errors.New("unknown custom group")

// ErrValidation is wrapped by argument validation failures.
var ErrValidation = errors.New("validation failed")

// ErrCustomTagMismatch is returned when a macro expansion tags its result with a different key.
var ErrCustomTagMismatch = errors.New("custom tag mismatch")

// ErrDuplicateKey is returned by strict registries when a key is registered twice.
var ErrDuplicateKey = errors.New("duplicate registry key")

// ErrGroupDrift is returned when a custom group's children no longer match its parameters.
var ErrGroupDrift = errors.New("custom group drifted from its parameters")

// MalformedDirectiveError names the keys found on a value that is not a valid directive.
type MalformedDirectiveError struct {
	Keys []string
}

func (e *MalformedDirectiveError) Error() string {
	if len(e.Keys) == 0 {
		return "malformed directive: no keys"
	}
	return fmt.Sprintf("malformed directive: %s", strings.Join(e.Keys, ", "))
}

func (e *MalformedDirectiveError) Unwrap() error {
	return ErrMalformedDirective
}
