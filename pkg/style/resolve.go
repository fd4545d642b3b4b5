package style

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/bloom/pkg/screen"
)

// Border defaults used when borderStyle is set but width or color are not.
const (
	DefaultBorderWidth = "1px"
	DefaultBorderColor = "#000000"
	BorderNone         = "none"
)

// Presentation is the resolved, renderer-ready style of one component.
// Empty strings and a nil Opacity mean "unspecified": the renderer falls
// back to its own default.
type Presentation struct {
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`

	Padding string `json:"padding,omitempty"`
	Margin  string `json:"margin,omitempty"`

	FontSize      string `json:"fontSize,omitempty"`
	FontWeight    string `json:"fontWeight,omitempty"`
	FontFamily    string `json:"fontFamily,omitempty"`
	FontStyle     string `json:"fontStyle,omitempty"`
	LineHeight    string `json:"lineHeight,omitempty"`
	LetterSpacing string `json:"letterSpacing,omitempty"`
	TextAlign     string `json:"textAlign,omitempty"`

	Display        string `json:"display,omitempty"`
	FlexDirection  string `json:"flexDirection,omitempty"`
	JustifyContent string `json:"justifyContent,omitempty"`
	AlignItems     string `json:"alignItems,omitempty"`
	Gap            string `json:"gap,omitempty"`
	Width          string `json:"width,omitempty"`
	Height         string `json:"height,omitempty"`
	MinWidth       string `json:"minWidth,omitempty"`
	MaxWidth       string `json:"maxWidth,omitempty"`
	MinHeight      string `json:"minHeight,omitempty"`
	MaxHeight      string `json:"maxHeight,omitempty"`

	Border       string   `json:"border,omitempty"`
	BorderRadius string   `json:"borderRadius,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	BoxShadow    string   `json:"boxShadow,omitempty"`
	Filter       string   `json:"filter,omitempty"`

	// Editor affordances, see [Hints].
	Cursor        string `json:"cursor,omitempty"`
	Transition    string `json:"transition,omitempty"`
	Outline       string `json:"outline,omitempty"`
	OutlineOffset string `json:"outlineOffset,omitempty"`
}

// Hints are presentation defaults the editor canvas layers on top of every
// resolved style. They are not part of the document.
type Hints struct {
	Cursor     string
	Transition string
}

// EditorHints are the affordances the editing canvas applies to every node.
var EditorHints = Hints{
	Cursor:     "pointer",
	Transition: "all 0.2s ease",
}

// Resolve converts sparse style attributes into a presentation, applying
// [EditorHints]. It never fails and never validates values.
func Resolve(attrs screen.Styles) Presentation {
	return ResolveWith(attrs, EditorHints)
}

// ResolveWith is [Resolve] with caller-supplied hints. The zero Hints adds
// nothing.
func ResolveWith(attrs screen.Styles, hints Hints) Presentation {
	return Presentation{
		Color:           attrs.Color,
		BackgroundColor: attrs.BackgroundColor,

		Padding: boxShorthand(attrs.Padding, attrs.PaddingTop, attrs.PaddingRight, attrs.PaddingBottom, attrs.PaddingLeft),
		Margin:  boxShorthand(attrs.Margin, attrs.MarginTop, attrs.MarginRight, attrs.MarginBottom, attrs.MarginLeft),

		FontSize:      attrs.FontSize,
		FontWeight:    attrs.FontWeight,
		FontFamily:    attrs.FontFamily,
		FontStyle:     attrs.FontStyle,
		LineHeight:    attrs.LineHeight,
		LetterSpacing: attrs.LetterSpacing,
		TextAlign:     attrs.TextAlign,

		Display:        attrs.Display,
		FlexDirection:  attrs.FlexDirection,
		JustifyContent: attrs.JustifyContent,
		AlignItems:     attrs.AlignItems,
		Gap:            attrs.Gap,
		Width:          attrs.Width,
		Height:         attrs.Height,
		MinWidth:       attrs.MinWidth,
		MaxWidth:       attrs.MaxWidth,
		MinHeight:      attrs.MinHeight,
		MaxHeight:      attrs.MaxHeight,

		Border:       border(attrs.BorderStyle, attrs.BorderWidth, attrs.BorderColor),
		BorderRadius: attrs.BorderRadius,
		Opacity:      parseOpacity(attrs.Opacity),
		BoxShadow:    attrs.BoxShadow,
		Filter:       attrs.Filter,

		Cursor:     hints.Cursor,
		Transition: hints.Transition,
	}
}

// boxShorthand returns all verbatim when set. Otherwise, if any side is set,
// it composes "top right bottom left" with missing sides as 0. With nothing
// set the result is empty.
func boxShorthand(all, top, right, bottom, left string) string {
	if all != "" {
		return all
	}
	if top == "" && right == "" && bottom == "" && left == "" {
		return ""
	}
	return strings.Join([]string{orZero(top), orZero(right), orZero(bottom), orZero(left)}, " ")
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func border(style, width, color string) string {
	switch style {
	case "":
		return ""
	case BorderNone:
		return BorderNone
	}
	if width == "" {
		width = DefaultBorderWidth
	}
	if color == "" {
		color = DefaultBorderColor
	}
	return width + " " + style + " " + color
}

// parseOpacity reads a decimal fraction. The value is not divided or
// clamped; unparsable input leaves opacity unset.
func parseOpacity(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Map returns the set fields keyed by their CSS property names, with
// opacity formatted in its shortest decimal form.
func (p Presentation) Map() map[string]string {
	m := make(map[string]string)
	add := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	add("color", p.Color)
	add("backgroundColor", p.BackgroundColor)
	add("padding", p.Padding)
	add("margin", p.Margin)
	add("fontSize", p.FontSize)
	add("fontWeight", p.FontWeight)
	add("fontFamily", p.FontFamily)
	add("fontStyle", p.FontStyle)
	add("lineHeight", p.LineHeight)
	add("letterSpacing", p.LetterSpacing)
	add("textAlign", p.TextAlign)
	add("display", p.Display)
	add("flexDirection", p.FlexDirection)
	add("justifyContent", p.JustifyContent)
	add("alignItems", p.AlignItems)
	add("gap", p.Gap)
	add("width", p.Width)
	add("height", p.Height)
	add("minWidth", p.MinWidth)
	add("maxWidth", p.MaxWidth)
	add("minHeight", p.MinHeight)
	add("maxHeight", p.MaxHeight)
	add("border", p.Border)
	add("borderRadius", p.BorderRadius)
	if p.Opacity != nil {
		m["opacity"] = strconv.FormatFloat(*p.Opacity, 'f', -1, 64)
	}
	add("boxShadow", p.BoxShadow)
	add("filter", p.Filter)
	add("cursor", p.Cursor)
	add("transition", p.Transition)
	add("outline", p.Outline)
	add("outlineOffset", p.OutlineOffset)
	return m
}

// CSS renders the presentation as an inline style declaration list with
// kebab-case property names in lexical order.
func (p Presentation) CSS() string {
	m := p.Map()
	var b strings.Builder
	for i, k := range screen.SortedKeys(m) {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(kebab(k))
		b.WriteString(": ")
		b.WriteString(m[k])
		b.WriteString(";")
	}
	return b.String()
}

func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
