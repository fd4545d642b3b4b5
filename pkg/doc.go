// Package pkg provides the core libraries for Bloom, a style editor for
// mobile screen documents.
//
// # Overview
//
// A screen document is a forest of typed components (containers, cards,
// headings, text, buttons, inputs, images), each carrying a flat set of CSS
// style attributes. Bloom imports such a document, lets a user select
// components and merge style changes into them, shows the resolved result
// and exports the edited document. The pkg directory is organized into four
// main areas:
//
//  1. [screen] and [style] - The document model and style resolution
//  2. [editor] - Editing operations over a session store
//  3. [render] - Derived views (canvas preview, Graphviz outline)
//  4. [session] and [cache] - Persistence of sessions and derived artifacts
//
// # Architecture
//
// The typical data flow:
//
//	JSON document (file, URL, sample)
//	         ↓
//	    [io] package (decode, encode, export file names)
//	         ↓
//	    [editor] package (import, select, apply style, export)
//	         ↓
//	    [session] package (memory, file, Redis, MongoDB or SQLite)
//	         ↓
//	    [render] packages (preview tree, outline SVG)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bloom/pkg/editor"
//	    "github.com/matzehuels/bloom/pkg/screen"
//	    "github.com/matzehuels/bloom/pkg/session"
//	)
//
//	ed := editor.New(session.NewMemoryStore(), editor.Options{})
//	scope := session.NewID()
//
//	// 1. Import a document
//	ed.Import(ctx, scope, data)
//
//	// 2. Select a component and restyle it
//	ed.Select(ctx, scope, "cta")
//	ed.ApplyStyle(ctx, scope, "", screen.StyleUpdate{"backgroundColor": "#4f46e5"})
//
//	// 3. Export the result
//	out, _ := ed.Export(ctx, scope)
//
// # Main Packages
//
// [screen] - Document types, the style key table, tree helpers (find, walk,
// merge) and opt-in strict validation.
//
// [style] - Resolution of raw attributes into a renderer-ready presentation
// (box shorthands, composed border, numeric opacity), editor hints and the
// preset option lists of the style panel.
//
// [io] - JSON import and export of documents.
//
// [editor] - The editing state machine. Every operation loads the scope's
// state from a session store, applies the change and saves it back.
//
// [render/preview] and [render/outline] - Read-only views of a document.
//
// [session] - Session types and the memory and file stores. Redis, MongoDB
// and SQLite stores live in subpackages.
//
// [cache] - Key/value cache for previews and outlines (null, memory, file,
// Redis).
//
// [samples] - Embedded example documents.
//
// [httputil] - Remote document download with retry.
//
// [observability] - Hooks for editor, cache and HTTP events.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/editor/...             # Specific package
//
// [screen]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/screen
// [style]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/style
// [io]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/io
// [editor]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/editor
// [render]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/render
// [render/preview]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/render/preview
// [render/outline]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/render/outline
// [session]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/session
// [cache]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/cache
// [samples]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/samples
// [httputil]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/bloom/pkg/errors
package pkg
