// Package render groups the views derived from a screen document.
//
// # Overview
//
// Nothing under render modifies a document. Each subpackage turns a
// [screen.Screen] plus the current selection into something a client can
// display:
//
//   - Canvas previews (in [preview] subpackage)
//   - Component tree diagrams (in [outline] subpackage)
//
// # Preview
//
// The [preview] subpackage mirrors the component forest as a tree of nodes
// carrying the resolved presentation, the placeholder text shown for empty
// components and the selection outline. The browser canvas renders it
// directly.
//
//	tree := preview.Build(s, selectedID, style.EditorHints)
//
// # Outline
//
// The [outline] subpackage draws the forest as a Graphviz diagram. Nodes are
// filled with the component's background color and the selection is
// outlined.
//
//	dot := outline.ToDOT(s, outline.Options{SelectedID: "cta"})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// [screen.Screen]: github.com/matzehuels/bloom/pkg/screen
// [preview]: github.com/matzehuels/bloom/pkg/render/preview
// [outline]: github.com/matzehuels/bloom/pkg/render/outline
package render
