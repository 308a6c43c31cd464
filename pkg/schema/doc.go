// Package schema validates the arguments of custom group editors and templates.
//
// An argument schema is an ordered list of typed arguments (text, boolean, dropdown,
// number, list). Validate resolves a candidate value map against it: defaults fill gaps,
// required arguments must be non-empty and every value must match its declared type
// exactly. Nothing is coerced, so a boolean argument given "true" is an error rather than
// a silently misconfigured build step.
//
// Basic usage:
//
//	args := schema.Arguments{
//	    {Name: "name", Type: schema.ArgText, Required: true, Default: "myscript"},
//	    {Name: "executable", Type: schema.ArgBoolean, Default: true},
//	    {Name: "version", Type: schema.ArgDropdown, Options: []string{"1.7.1", "1.6"}},
//	}
//
//	res := schema.Validate(args, map[string]any{"name": "hello"})
//	if !res.Valid {
//	    // res.Errors maps argument names to messages; res.Err() aggregates them.
//	}
//	// res.Filled holds every argument, defaults applied.
//
// Validation failures are data: Validate never panics and never returns a bare error.
package schema
