package screen

// =============================================================================
// Component Types
// =============================================================================

// ComponentType is the visual primitive a component is painted as.
type ComponentType string

// Component types understood by the renderer.
const (
	TypeContainer ComponentType = "container"
	TypeButton    ComponentType = "button"
	TypeText      ComponentType = "text"
	TypeCard      ComponentType = "card"
	TypeInput     ComponentType = "input"
	TypeImage     ComponentType = "image"
	TypeHeading   ComponentType = "heading"
)

// ComponentTypes lists every known component type.
var ComponentTypes = []ComponentType{
	TypeContainer,
	TypeButton,
	TypeText,
	TypeCard,
	TypeInput,
	TypeImage,
	TypeHeading,
}

// Valid reports whether t is one of [ComponentTypes].
func (t ComponentType) Valid() bool {
	for _, known := range ComponentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasChildren reports whether components of this type lay out children.
func (t ComponentType) HasChildren() bool {
	return t == TypeContainer || t == TypeCard
}

// =============================================================================
// Styles
// =============================================================================

// Styles is the sparse set of style attributes a user can edit.
// Every value is a free-form string; an empty string means unset.
type Styles struct {
	// Colors
	Color           string `json:"color,omitempty" bson:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" bson:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty" bson:"borderColor,omitempty"`
	TextColor       string `json:"textColor,omitempty" bson:"textColor,omitempty"` // carried, never resolved

	// Spacing
	Padding       string `json:"padding,omitempty" bson:"padding,omitempty"`
	PaddingTop    string `json:"paddingTop,omitempty" bson:"paddingTop,omitempty"`
	PaddingRight  string `json:"paddingRight,omitempty" bson:"paddingRight,omitempty"`
	PaddingBottom string `json:"paddingBottom,omitempty" bson:"paddingBottom,omitempty"`
	PaddingLeft   string `json:"paddingLeft,omitempty" bson:"paddingLeft,omitempty"`
	Margin        string `json:"margin,omitempty" bson:"margin,omitempty"`
	MarginTop     string `json:"marginTop,omitempty" bson:"marginTop,omitempty"`
	MarginRight   string `json:"marginRight,omitempty" bson:"marginRight,omitempty"`
	MarginBottom  string `json:"marginBottom,omitempty" bson:"marginBottom,omitempty"`
	MarginLeft    string `json:"marginLeft,omitempty" bson:"marginLeft,omitempty"`

	// Typography
	FontSize      string `json:"fontSize,omitempty" bson:"fontSize,omitempty"`
	FontWeight    string `json:"fontWeight,omitempty" bson:"fontWeight,omitempty"`
	FontFamily    string `json:"fontFamily,omitempty" bson:"fontFamily,omitempty"`
	FontStyle     string `json:"fontStyle,omitempty" bson:"fontStyle,omitempty"`
	LineHeight    string `json:"lineHeight,omitempty" bson:"lineHeight,omitempty"`
	LetterSpacing string `json:"letterSpacing,omitempty" bson:"letterSpacing,omitempty"`
	TextAlign     string `json:"textAlign,omitempty" bson:"textAlign,omitempty"`

	// Layout
	Display        string `json:"display,omitempty" bson:"display,omitempty"`
	FlexDirection  string `json:"flexDirection,omitempty" bson:"flexDirection,omitempty"`
	JustifyContent string `json:"justifyContent,omitempty" bson:"justifyContent,omitempty"`
	AlignItems     string `json:"alignItems,omitempty" bson:"alignItems,omitempty"`
	Gap            string `json:"gap,omitempty" bson:"gap,omitempty"`
	Width          string `json:"width,omitempty" bson:"width,omitempty"`
	Height         string `json:"height,omitempty" bson:"height,omitempty"`
	MinWidth       string `json:"minWidth,omitempty" bson:"minWidth,omitempty"`
	MaxWidth       string `json:"maxWidth,omitempty" bson:"maxWidth,omitempty"`
	MinHeight      string `json:"minHeight,omitempty" bson:"minHeight,omitempty"`
	MaxHeight      string `json:"maxHeight,omitempty" bson:"maxHeight,omitempty"`

	// Border & Radius
	BorderStyle  string `json:"borderStyle,omitempty" bson:"borderStyle,omitempty"`
	BorderWidth  string `json:"borderWidth,omitempty" bson:"borderWidth,omitempty"`
	BorderRadius string `json:"borderRadius,omitempty" bson:"borderRadius,omitempty"`

	// Effects
	Opacity   string `json:"opacity,omitempty" bson:"opacity,omitempty"` // decimal fraction, e.g. "0.8"
	BoxShadow string `json:"boxShadow,omitempty" bson:"boxShadow,omitempty"`
	Filter    string `json:"filter,omitempty" bson:"filter,omitempty"`
}

// =============================================================================
// Component
// =============================================================================

// Component is one node in the screen forest.
// Children are owned exclusively by their parent; the forest is a strict tree.
type Component struct {
	ID       string        `json:"id" bson:"id" validate:"required"`
	Type     ComponentType `json:"type" bson:"type" validate:"component_type"`
	Label    string        `json:"label,omitempty" bson:"label,omitempty"`
	Content  string        `json:"content,omitempty" bson:"content,omitempty"` // text, placeholder or image URL
	Children []Component   `json:"children,omitempty" bson:"children,omitempty" validate:"dive"`
	Styles   Styles        `json:"styles" bson:"styles"`
}

// IsLeaf reports whether the component has no children.
func (c *Component) IsLeaf() bool { return len(c.Children) == 0 }

// DisplayLabel returns the label if set, then the content, then a placeholder.
// This is the text shown for the component in tree views.
func (c *Component) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	if c.Content != "" {
		return c.Content
	}
	return "(no label)"
}

// =============================================================================
// Screen
// =============================================================================

// Metadata is carried through import and export but never interpreted.
type Metadata struct {
	CreatedAt   string `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Screen is the top-level editable document.
type Screen struct {
	ID         string      `json:"id" bson:"id" validate:"required"`
	Name       string      `json:"name" bson:"name" validate:"required"`
	Components []Component `json:"components" bson:"components" validate:"dive"`
	Metadata   *Metadata   `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Find locates a component anywhere in the screen. See [Find].
func (s *Screen) Find(id string) (Component, bool) {
	return Find(s.Components, id)
}

// WithStyle returns a copy of the screen whose component id has update merged
// into its styles. The receiver is not modified. See [MergeStyle].
func (s *Screen) WithStyle(id string, update StyleUpdate) *Screen {
	out := *s
	out.Components = MergeStyle(s.Components, id, update)
	return &out
}

// Count returns the total number of components, including descendants.
func (s *Screen) Count() int {
	return Count(s.Components)
}
