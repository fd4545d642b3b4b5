// Package screen defines the screen document model and the pure tree
// operations the editor is built on.
//
// # Model
//
// A [Screen] is the editable artifact: an id, a name, optional [Metadata] and
// a forest of [Component] trees. Each component has a [ComponentType], an
// optional label and content, ordered children and a sparse [Styles] record.
//
//	{
//	  "id": "shop",
//	  "name": "Mobile Shop",
//	  "components": [
//	    {
//	      "id": "header",
//	      "type": "container",
//	      "styles": {"padding": "16px", "backgroundColor": "#4f46e5"},
//	      "children": [
//	        {"id": "title", "type": "heading", "content": "Shop", "styles": {}}
//	      ]
//	    }
//	  ]
//	}
//
// # Operations
//
// [Find] locates a component by id with a pre-order depth-first search; the
// first match wins when ids are duplicated. [MergeStyle] returns a new forest
// in which the matching component's styles are overlaid with a
// [StyleUpdate]: every key present in the update overwrites, an empty value
// included, and absent keys are kept. Subtrees that contain no match are returned as-is (the same slice),
// so callers can detect unchanged branches without a deep comparison.
//
// Neither operation fails: a missing id is "not found" for [Find] and a no-op
// for [MergeStyle].
//
// # Validation
//
// Documents are accepted as long as they are syntactically valid JSON and
// have the screen shape. Number and boolean style or metadata values are
// kept as their literal text, and an empty children array decodes to nil.
// [Validate] performs the optional strict checks (required ids, unique ids,
// known component types) for callers that want to reject malformed input.
//
// # Concurrency
//
// All functions are pure. A forest passed in is never modified, so snapshots
// may be shared between goroutines freely.
package screen
