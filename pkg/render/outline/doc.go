// Package outline renders a screen's component tree as a diagram.
//
// # Usage
//
// Convert a screen to DOT, then render to SVG:
//
//	dot := outline.ToDOT(s, outline.Options{SelectedID: "header"})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//
// The screen itself is the root node. Every component is a rounded box
// labelled "type: label", filled with its background color when that color
// is a hex value, and linked to its parent. The selected component is drawn
// with the same dashed indigo outline the editor canvas uses. Nodes are
// numbered in pre-order, so documents with duplicate ids still render one
// box per component.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external Graphviz installation is needed.
package outline
