// Package editor is the controller behind every bloom surface.
//
// The CLI, the HTTP API and the TUI all edit documents through an [Editor].
// Each call loads the scope's [State] from a [session.Store], applies one
// operation to it, and writes it back before returning. Nothing is held in
// memory between calls, so any number of editors may share a store.
//
// # Operations
//
//   - [Editor.Import]: parse a document and make it the scope's document
//   - [Editor.Select]: change the selected component
//   - [Editor.ApplyStyle]: merge style attributes into one component
//   - [Editor.SetOpacityPercent]: the opacity slider, 0 to 100
//   - [Editor.Export]: serialize the scope's document
//   - [Editor.Clear]: forget the scope entirely
//
// Derived views ([Editor.Preview], [Editor.Outline]) are cached by a hash of
// the stored document, so repeated reads of an unchanged document are free.
//
// # Usage
//
//	ed := editor.New(session.NewMemoryStore(), editor.Options{Logger: logger})
//	st, err := ed.Import(ctx, scope, data)
//	st, err = ed.ApplyStyle(ctx, scope, "header", screen.StyleUpdate{"color": "#fff"})
//	out, err := ed.Export(ctx, scope)
package editor
