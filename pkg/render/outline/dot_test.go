package outline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bloom/pkg/screen"
)

func testScreen() *screen.Screen {
	return &screen.Screen{
		ID:   "shop",
		Name: "Mobile Shop",
		Components: []screen.Component{
			{
				ID:     "header",
				Type:   screen.TypeContainer,
				Label:  "Header",
				Styles: screen.Styles{BackgroundColor: "#1a1a1a"},
				Children: []screen.Component{
					{ID: "title", Type: screen.TypeHeading, Content: "Shop"},
				},
			},
			{ID: "cta", Type: screen.TypeButton, Styles: screen.Styles{BackgroundColor: "linear-gradient(red, blue)"}},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testScreen(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=TB",
		`root [label="Mobile Shop"`,
		`label="container: Header"`,
		`label="heading: Shop"`,
		`label="button: (no label)"`,
		"root -> n0;",
		"n0 -> n1;",
		"root -> n2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Direction(t *testing.T) {
	if dot := ToDOT(testScreen(), Options{Direction: "LR"}); !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() should honour LR direction")
	}
	if dot := ToDOT(testScreen(), Options{Direction: "sideways"}); !strings.Contains(dot, "rankdir=TB") {
		t.Error("ToDOT() should fall back to TB")
	}
}

func TestToDOT_Selected(t *testing.T) {
	dot := ToDOT(testScreen(), Options{SelectedID: "title"})
	if strings.Count(dot, "dashed") != 1 {
		t.Errorf("exactly one node should be dashed:\n%s", dot)
	}
	if !strings.Contains(dot, SelectionColor) {
		t.Error("ToDOT() selected node missing selection color")
	}
}

func TestToDOT_DuplicateIDs(t *testing.T) {
	s := &screen.Screen{ID: "s", Name: "s", Components: []screen.Component{
		{ID: "dup", Type: screen.TypeText},
		{ID: "dup", Type: screen.TypeText},
	}}
	dot := ToDOT(s, Options{})
	if !strings.Contains(dot, "root -> n0;") || !strings.Contains(dot, "root -> n1;") {
		t.Errorf("duplicate ids should still render two nodes:\n%s", dot)
	}
}

func TestFmtAttrs(t *testing.T) {
	w := &dotWriter{}

	dark := &screen.Component{ID: "a", Type: screen.TypeCard, Styles: screen.Styles{BackgroundColor: "#1a1a1a"}}
	joined := strings.Join(w.attrs(dark), " ")
	if !strings.Contains(joined, `fillcolor="#1a1a1a"`) || !strings.Contains(joined, "fontcolor=white") {
		t.Errorf("dark fill attrs = %s", joined)
	}

	light := &screen.Component{ID: "b", Type: screen.TypeCard, Styles: screen.Styles{BackgroundColor: "#fff"}}
	joined = strings.Join(w.attrs(light), " ")
	if !strings.Contains(joined, `fillcolor="#fff"`) || strings.Contains(joined, "fontcolor") {
		t.Errorf("light fill attrs = %s", joined)
	}

	plain := &screen.Component{ID: "c", Type: screen.TypeCard, Styles: screen.Styles{BackgroundColor: "tomato"}}
	if attrs := w.attrs(plain); len(attrs) != 1 {
		t.Errorf("non-hex background should only set a label, got %v", attrs)
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	c := &screen.Component{ID: "t", Type: screen.TypeText, Label: "Body", Styles: screen.Styles{PaddingTop: "4px"}}
	label := fmtLabel(c, true)

	if !strings.HasPrefix(label, "text: Body\n#t\n") {
		t.Errorf("fmtLabel() detailed should start with type and id: %q", label)
	}
	if !strings.Contains(label, "padding: 4px 0 0 0") {
		t.Errorf("fmtLabel() detailed missing resolved padding: %q", label)
	}
	if strings.Contains(label, "cursor") {
		t.Errorf("fmtLabel() should not include editor hints: %q", label)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testScreen(), Options{SelectedID: "cta"}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
