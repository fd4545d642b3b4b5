// Package style turns the sparse attributes stored on a component into a
// renderer-ready [Presentation].
//
// [Resolve] is total: it never fails and never validates values. Shorthands
// are composed (padding, margin, border), opacity is parsed into a number and
// everything else is passed through verbatim. Editor affordances such as the
// pointer cursor are not part of the document; they are layered on as
// [Hints].
//
// The package also owns the option lists for the style panel ([Presets]) and
// the slider conversion for opacity ([OpacityFromPercent]).
package style
