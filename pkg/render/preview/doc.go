// Package preview builds the render-ready view of a screen.
//
// A [Tree] mirrors the component forest one node per component. Each node
// carries its resolved [style.Presentation], whether it is the current
// selection, and the text an external renderer should paint when the
// component has no content of its own. Renderers consume the tree as JSON
// and never have to re-derive styles or placeholders.
//
//	tree := preview.Build(s, state.SelectedID, style.EditorHints)
//	data, err := json.Marshal(tree)
//
// The selected node gets the editor's dashed selection outline. Pass the
// zero [style.Hints] and an empty selection to get a plain, non-interactive
// rendering.
package preview
