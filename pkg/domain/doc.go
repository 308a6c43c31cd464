/*
Package domain contains the directive algebra of a container build recipe.

A recipe is an ordered sequence of directives. Each directive is exactly one of a closed
set of variants, discriminated on the wire by the single key it carries (group, environment,
install, workdir, run, variables, template, deploy, user, copy, file, test, include).
In Go the set is a sealed interface with one concrete type per variant, so every consumer
can switch over it exhaustively and keep a default arm for UnknownDirective.

This package is pure: no I/O, no registry, no logging.

# Key Entities

  - Directive: the sealed sum type. Kind() reports the discriminating key.
  - GroupDirective: an ordered list of child directives, optionally tagged with the
    custom group editor (macro) that produced it and the parameters it was produced from.
  - FileInfo: a named file whose source is exactly one of inline contents, a URL or a
    filename in the build context.
  - UnknownDirective: what decoding yields for a value with no (or several) recognised keys.
*/
package domain
