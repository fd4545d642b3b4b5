package screen

import (
	"sort"
	"strings"

	"github.com/matzehuels/bloom/pkg/errors"
)

// styleField binds a wire key to its field in [Styles].
type styleField struct {
	key   string
	field func(*Styles) *string
}

// styleFields is ordered the way the editor panel groups attributes.
var styleFields = []styleField{
	{"color", func(s *Styles) *string { return &s.Color }},
	{"backgroundColor", func(s *Styles) *string { return &s.BackgroundColor }},
	{"borderColor", func(s *Styles) *string { return &s.BorderColor }},
	{"textColor", func(s *Styles) *string { return &s.TextColor }},
	{"padding", func(s *Styles) *string { return &s.Padding }},
	{"paddingTop", func(s *Styles) *string { return &s.PaddingTop }},
	{"paddingRight", func(s *Styles) *string { return &s.PaddingRight }},
	{"paddingBottom", func(s *Styles) *string { return &s.PaddingBottom }},
	{"paddingLeft", func(s *Styles) *string { return &s.PaddingLeft }},
	{"margin", func(s *Styles) *string { return &s.Margin }},
	{"marginTop", func(s *Styles) *string { return &s.MarginTop }},
	{"marginRight", func(s *Styles) *string { return &s.MarginRight }},
	{"marginBottom", func(s *Styles) *string { return &s.MarginBottom }},
	{"marginLeft", func(s *Styles) *string { return &s.MarginLeft }},
	{"fontSize", func(s *Styles) *string { return &s.FontSize }},
	{"fontWeight", func(s *Styles) *string { return &s.FontWeight }},
	{"fontFamily", func(s *Styles) *string { return &s.FontFamily }},
	{"fontStyle", func(s *Styles) *string { return &s.FontStyle }},
	{"lineHeight", func(s *Styles) *string { return &s.LineHeight }},
	{"letterSpacing", func(s *Styles) *string { return &s.LetterSpacing }},
	{"textAlign", func(s *Styles) *string { return &s.TextAlign }},
	{"display", func(s *Styles) *string { return &s.Display }},
	{"flexDirection", func(s *Styles) *string { return &s.FlexDirection }},
	{"justifyContent", func(s *Styles) *string { return &s.JustifyContent }},
	{"alignItems", func(s *Styles) *string { return &s.AlignItems }},
	{"gap", func(s *Styles) *string { return &s.Gap }},
	{"width", func(s *Styles) *string { return &s.Width }},
	{"height", func(s *Styles) *string { return &s.Height }},
	{"minWidth", func(s *Styles) *string { return &s.MinWidth }},
	{"maxWidth", func(s *Styles) *string { return &s.MaxWidth }},
	{"minHeight", func(s *Styles) *string { return &s.MinHeight }},
	{"maxHeight", func(s *Styles) *string { return &s.MaxHeight }},
	{"borderStyle", func(s *Styles) *string { return &s.BorderStyle }},
	{"borderWidth", func(s *Styles) *string { return &s.BorderWidth }},
	{"borderRadius", func(s *Styles) *string { return &s.BorderRadius }},
	{"opacity", func(s *Styles) *string { return &s.Opacity }},
	{"boxShadow", func(s *Styles) *string { return &s.BoxShadow }},
	{"filter", func(s *Styles) *string { return &s.Filter }},
}

var styleIndex = func() map[string]styleField {
	m := make(map[string]styleField, len(styleFields))
	for _, f := range styleFields {
		m[f.key] = f
	}
	return m
}()

// StyleKeys returns every style attribute name in editor panel order.
func StyleKeys() []string {
	keys := make([]string, len(styleFields))
	for i, f := range styleFields {
		keys[i] = f.key
	}
	return keys
}

// IsStyleKey reports whether key names a style attribute.
func IsStyleKey(key string) bool {
	_, ok := styleIndex[key]
	return ok
}

// Get returns the value stored under key. The second result is false when
// key is not a style attribute; an unset attribute returns "", true.
func (s Styles) Get(key string) (string, bool) {
	f, ok := styleIndex[key]
	if !ok {
		return "", false
	}
	return *f.field(&s), true
}

// Set stores value under key. Unknown keys are rejected with
// [errors.ErrCodeInvalidStyleKey].
func (s *Styles) Set(key, value string) error {
	f, ok := styleIndex[key]
	if !ok {
		return errors.New(errors.ErrCodeInvalidStyleKey, "unknown style attribute %q", key)
	}
	*f.field(s) = value
	return nil
}

// Merge returns s overlaid with every attribute present in update. A key
// present with an empty value clears that attribute; keys absent from update
// keep their value in s. Unknown keys are ignored.
func (s Styles) Merge(update StyleUpdate) Styles {
	out := s
	for key, v := range update {
		if f, ok := styleIndex[key]; ok {
			*f.field(&out) = v
		}
	}
	return out
}

// Update returns the set attributes of s as a partial update.
func (s Styles) Update() StyleUpdate {
	return StyleUpdate(s.Map())
}

// IsEmpty reports whether no attribute is set.
func (s Styles) IsEmpty() bool {
	return s == Styles{}
}

// Map returns the set attributes keyed by name.
func (s Styles) Map() map[string]string {
	m := make(map[string]string)
	for _, f := range styleFields {
		if v := *f.field(&s); v != "" {
			m[f.key] = v
		}
	}
	return m
}

// StyleUpdate is a partial style record keyed by attribute name. Presence
// is what matters: a key mapped to "" overwrites the stored value with "",
// while an absent key leaves it alone.
type StyleUpdate map[string]string

// Validate rejects keys that do not name a style attribute.
func (u StyleUpdate) Validate() error {
	for _, key := range SortedKeys(u) {
		if !IsStyleKey(key) {
			return errors.New(errors.ErrCodeInvalidStyleKey, "unknown style attribute %q", key)
		}
	}
	return nil
}

// Keys returns the attribute names in u in lexical order.
func (u StyleUpdate) Keys() []string {
	return SortedKeys(u)
}

// ParseStyleAssignments builds a partial update from "key=value" pairs, as
// given on the command line. Keys are validated; values are not, and
// "key=" clears the attribute.
func ParseStyleAssignments(pairs []string) (StyleUpdate, error) {
	u := make(StyleUpdate, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "expected key=value, got %q", p)
		}
		key = strings.TrimSpace(key)
		if !IsStyleKey(key) {
			return nil, errors.New(errors.ErrCodeInvalidStyleKey, "unknown style attribute %q", key)
		}
		u[key] = value
	}
	return u, nil
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
