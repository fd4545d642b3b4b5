// Package io provides JSON import and export for screen documents.
//
// # JSON Format
//
// A document is a single object with an id, a name, a components forest and
// optional metadata:
//
//	{
//	  "id": "shop",
//	  "name": "Mobile Shop",
//	  "components": [
//	    {"id": "title", "type": "heading", "content": "Shop", "styles": {"fontSize": "24px"}}
//	  ],
//	  "metadata": {"createdAt": "2024-06-10T12:00:00Z"}
//	}
//
// Style keys are exactly those listed by [screen.StyleKeys]. Unknown keys are
// dropped on import.
//
// # Import
//
// Use [ImportJSON] to read a file, [ReadJSON] for any io.Reader or
// [Unmarshal] for bytes already in memory:
//
//	s, err := io.ImportJSON("screen.json")
//	if errors.Is(err, errors.ErrCodeInvalidJSON) {
//	    // report the parse error to the user
//	}
//
// Import is lenient: anything that parses is accepted.
//
// # Export
//
// [WriteJSON], [Marshal] and [ExportJSON] produce two-space indented JSON.
// [ExportFilename] names downloads after the export time. A document survives
// export followed by import unchanged.
package io
