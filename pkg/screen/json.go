package screen

import (
	"encoding/json"
	"fmt"
)

// Documents written by hand or by other tools often carry numbers or
// booleans where the model holds strings ("fontWeight": 700). The decoders
// below accept any JSON scalar for those fields and keep its literal text.

// UnmarshalJSON decodes style attributes, accepting number and boolean values
// in their literal form. Keys that are not style attributes are dropped.
func (s *Styles) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, f := range styleFields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := decodeScalar(v, f.field(s)); err != nil {
			return fmt.Errorf("styles.%s: %w", f.key, err)
		}
	}
	return nil
}

// UnmarshalJSON decodes metadata, accepting number and boolean values (such
// as a Unix timestamp in createdAt) in their literal form.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := []struct {
		key string
		dst *string
	}{
		{"createdAt", &m.CreatedAt},
		{"updatedAt", &m.UpdatedAt},
		{"description", &m.Description},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := decodeScalar(v, f.dst); err != nil {
			return fmt.Errorf("metadata.%s: %w", f.key, err)
		}
	}
	return nil
}

// UnmarshalJSON decodes a component. An empty children array decodes to nil
// so that documents compare equal after an export and re-import.
func (c *Component) UnmarshalJSON(data []byte) error {
	type plain Component
	if err := json.Unmarshal(data, (*plain)(c)); err != nil {
		return err
	}
	if len(c.Children) == 0 {
		c.Children = nil
	}
	return nil
}

// decodeScalar stores a JSON string, number or boolean in dst. null leaves
// dst unchanged; objects and arrays are rejected.
func decodeScalar(data json.RawMessage, dst *string) error {
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, dst)
	case 'n':
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*dst = string(data)
		return nil
	case '{', '[':
		return fmt.Errorf("expected a string, got %s", kind(data[0]))
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*dst = n.String()
	return nil
}

func kind(b byte) string {
	if b == '{' {
		return "an object"
	}
	return "an array"
}
