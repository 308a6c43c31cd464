// Package expand turns custom group arguments into directive groups.
//
// A custom group is a group directive tagged with the key of a registered editor and
// carrying the arguments it was built from. The engine validates arguments against the
// editor's schema, runs the editor's update function and tags the result, so that the
// group can be re-expanded later from its own parameters.
//
// Changing the parameters of a custom group follows a small merge rule (see Engine.Apply):
// a valid change rebuilds the children, an invalid change leaves the group untouched and
// an empty change demotes it into a plain group for manual editing.
package expand
