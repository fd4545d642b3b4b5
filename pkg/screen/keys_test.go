package screen

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/bloom/pkg/errors"
)

// Every key must round-trip through Set and Get and match the JSON tag.
func TestStyleKeysMatchJSON(t *testing.T) {
	for _, key := range StyleKeys() {
		var s Styles
		if err := s.Set(key, "v"); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
		if got, ok := s.Get(key); !ok || got != "v" {
			t.Errorf("Get(%q) = %q, %v", key, got, ok)
		}

		data, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatal(err)
		}
		if len(m) != 1 || m[key] != "v" {
			t.Errorf("JSON for %q = %s", key, data)
		}
	}
}

func TestStylesSetUnknownKey(t *testing.T) {
	var s Styles
	err := s.Set("zIndex", "2")
	if !errors.Is(err, errors.ErrCodeInvalidStyleKey) {
		t.Errorf("Set(zIndex) error = %v, want %s", err, errors.ErrCodeInvalidStyleKey)
	}
	if _, ok := s.Get("zIndex"); ok {
		t.Error("Get(zIndex) should report unknown key")
	}
}

func TestStylesMerge(t *testing.T) {
	base := Styles{Color: "#000", Padding: "4px"}

	tests := []struct {
		name   string
		update StyleUpdate
		want   Styles
	}{
		{"overwrite and add", StyleUpdate{"color": "#fff", "margin": "2px"}, Styles{Color: "#fff", Padding: "4px", Margin: "2px"}},
		{"empty value clears", StyleUpdate{"padding": ""}, Styles{Color: "#000"}},
		{"empty value on unset key", StyleUpdate{"gap": ""}, base},
		{"nil update", nil, base},
		{"unknown key ignored", StyleUpdate{"zIndex": "2"}, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Merge(tt.update); got != tt.want {
				t.Errorf("Merge = %+v, want %+v", got, tt.want)
			}
		})
	}
	if base.Color != "#000" || base.Padding != "4px" {
		t.Error("Merge modified receiver")
	}
}

func TestStyleUpdate(t *testing.T) {
	u := Styles{Color: "red", Gap: "4px"}.Update()
	if len(u) != 2 || u["color"] != "red" || u["gap"] != "4px" {
		t.Errorf("Update = %v", u)
	}
	if got := u.Keys(); len(got) != 2 || got[0] != "color" || got[1] != "gap" {
		t.Errorf("Keys = %v", got)
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
	if err := (StyleUpdate{"colour": "red"}).Validate(); !errors.Is(err, errors.ErrCodeInvalidStyleKey) {
		t.Errorf("Validate(colour) = %v, want %s", err, errors.ErrCodeInvalidStyleKey)
	}
}

func TestStylesMap(t *testing.T) {
	s := Styles{Opacity: "0.4", FontFamily: "Inter"}
	m := s.Map()
	if len(m) != 2 || m["opacity"] != "0.4" || m["fontFamily"] != "Inter" {
		t.Errorf("Map = %v", m)
	}
	if !(Styles{}).IsEmpty() || s.IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
}

func TestParseStyleAssignments(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []string
		want     StyleUpdate
		wantCode errors.Code
	}{
		{"single", []string{"color=#ef4444"}, StyleUpdate{"color": "#ef4444"}, ""},
		{"multiple", []string{"padding=8px", "borderStyle=solid"}, StyleUpdate{"padding": "8px", "borderStyle": "solid"}, ""},
		{"value with equals", []string{"filter=blur(2px)=x"}, StyleUpdate{"filter": "blur(2px)=x"}, ""},
		{"empty value", []string{"color="}, StyleUpdate{"color": ""}, ""},
		{"none", nil, StyleUpdate{}, ""},
		{"no equals", []string{"color"}, nil, errors.ErrCodeInvalidInput},
		{"unknown key", []string{"zIndex=1"}, nil, errors.ErrCodeInvalidStyleKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyleAssignments(tt.pairs)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
