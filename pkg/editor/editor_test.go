package editor

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/bloom/pkg/cache"
	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/io"
	"github.com/matzehuels/bloom/pkg/observability"
	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/session"
	"github.com/matzehuels/bloom/pkg/style"
)

const testDoc = `{
  "id": "s1",
  "name": "Shop",
  "components": [
    {
      "id": "header",
      "type": "container",
      "label": "Header",
      "styles": {"padding": "8px"},
      "children": [
        {"id": "title", "type": "heading", "content": "Shop", "styles": {}}
      ]
    },
    {"id": "cta", "type": "button", "content": "Buy", "styles": {}}
  ]
}`

func newTestEditor(t *testing.T, opts Options) (*Editor, string) {
	t.Helper()
	return New(session.NewMemoryStore(), opts), session.NewID()
}

func mustImport(t *testing.T, e *Editor, scope string) *State {
	t.Helper()
	st, err := e.Import(context.Background(), scope, []byte(testDoc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return st
}

func TestLoadEmpty(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	st, err := e.Load(context.Background(), scope)
	if err != nil {
		t.Fatal(err)
	}
	if st.HasDocument() || st.SelectedID != "" || st.Dirty {
		t.Errorf("empty scope state = %+v", st)
	}
}

func TestInvalidScope(t *testing.T) {
	e, _ := newTestEditor(t, Options{})
	ctx := context.Background()

	if _, err := e.Load(ctx, "../etc"); !errors.Is(err, errors.ErrCodeInvalidSession) {
		t.Errorf("Load error = %v, want %s", err, errors.ErrCodeInvalidSession)
	}
	if _, err := e.Import(ctx, "", []byte(testDoc)); !errors.Is(err, errors.ErrCodeInvalidSession) {
		t.Errorf("Import error = %v, want %s", err, errors.ErrCodeInvalidSession)
	}
	if err := e.Clear(ctx, "a/b"); !errors.Is(err, errors.ErrCodeInvalidSession) {
		t.Errorf("Clear error = %v, want %s", err, errors.ErrCodeInvalidSession)
	}
}

func TestImport(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()

	st := mustImport(t, e, scope)
	if !st.Dirty || st.Screen.Count() != 3 || st.Screen.Name != "Shop" {
		t.Errorf("Import state = %+v", st)
	}

	if _, err := e.Select(ctx, scope, "title"); err != nil {
		t.Fatal(err)
	}
	st = mustImport(t, e, scope)
	if st.SelectedID != "" {
		t.Errorf("Import should reset selection, got %q", st.SelectedID)
	}

	loaded, err := e.Load(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded.Screen, st.Screen) || loaded.Dirty {
		t.Errorf("Load after Import = %+v", loaded)
	}
}

func TestImportInvalidKeepsDocument(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()
	mustImport(t, e, scope)

	for _, raw := range []string{"", "not json", "null", `{"id":`} {
		if _, err := e.Import(ctx, scope, []byte(raw)); !errors.Is(err, errors.ErrCodeInvalidJSON) {
			t.Errorf("Import(%q) error = %v, want %s", raw, err, errors.ErrCodeInvalidJSON)
		}
	}

	st, _ := e.Load(ctx, scope)
	if !st.HasDocument() || st.Screen.ID != "s1" {
		t.Error("failed import should leave the previous document in place")
	}
}

func TestImportStrict(t *testing.T) {
	dup := `{"id":"s","name":"n","components":[{"id":"a","type":"text","styles":{}},{"id":"a","type":"text","styles":{}}]}`
	ctx := context.Background()

	lenient, scope := newTestEditor(t, Options{})
	if _, err := lenient.Import(ctx, scope, []byte(dup)); err != nil {
		t.Errorf("lenient Import error = %v", err)
	}

	strict, scope := newTestEditor(t, Options{Strict: true})
	if _, err := strict.Import(ctx, scope, []byte(dup)); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("strict Import error = %v, want %s", err, errors.ErrCodeInvalidDocument)
	}
	if _, err := strict.Import(ctx, scope, []byte(testDoc)); err != nil {
		t.Errorf("strict Import of valid document error = %v", err)
	}
}

func TestSelect(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()

	if _, err := e.Select(ctx, scope, "title"); !errors.Is(err, errors.ErrCodeNoDocument) {
		t.Errorf("Select before import error = %v, want %s", err, errors.ErrCodeNoDocument)
	}

	mustImport(t, e, scope)
	st, err := e.Select(ctx, scope, "title")
	if err != nil {
		t.Fatal(err)
	}
	if st.SelectedID != "title" || st.Dirty {
		t.Errorf("Select state = %+v", st)
	}
	if c, ok := st.Selected(); !ok || c.Content != "Shop" {
		t.Errorf("Selected() = %+v, %v", c, ok)
	}

	if _, err := e.Select(ctx, scope, "ghost"); !errors.Is(err, errors.ErrCodeComponentNotFound) {
		t.Errorf("Select(ghost) error = %v, want %s", err, errors.ErrCodeComponentNotFound)
	}
	if st, _ := e.Load(ctx, scope); st.SelectedID != "title" {
		t.Errorf("failed Select changed selection to %q", st.SelectedID)
	}

	st, err = e.Select(ctx, scope, "")
	if err != nil || st.SelectedID != "" {
		t.Errorf("Select(\"\") = %+v, %v", st, err)
	}
}

func TestApplyStyle(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()
	mustImport(t, e, scope)

	st, err := e.ApplyStyle(ctx, scope, "title", screen.StyleUpdate{"color": "#fff", "fontSize": "24px"})
	if err != nil {
		t.Fatal(err)
	}
	if !st.Dirty {
		t.Error("ApplyStyle on an existing id should be dirty")
	}

	loaded, _ := e.Load(ctx, scope)
	title, _ := loaded.Screen.Find("title")
	if title.Styles.Color != "#fff" || title.Styles.FontSize != "24px" {
		t.Errorf("persisted styles = %+v", title.Styles)
	}
	header, _ := loaded.Screen.Find("header")
	if header.Styles.Padding != "8px" {
		t.Errorf("sibling styles changed: %+v", header.Styles)
	}

	// Later writes win, earlier keys survive.
	e.ApplyStyle(ctx, scope, "title", screen.StyleUpdate{"color": "#000"})
	loaded, _ = e.Load(ctx, scope)
	title, _ = loaded.Screen.Find("title")
	if title.Styles.Color != "#000" || title.Styles.FontSize != "24px" {
		t.Errorf("second merge styles = %+v", title.Styles)
	}
}

func TestApplyStyleEmptyValueClears(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()
	mustImport(t, e, scope)

	e.ApplyStyle(ctx, scope, "header", screen.StyleUpdate{"paddingTop": "4px"})
	st, err := e.ApplyStyle(ctx, scope, "header", screen.StyleUpdate{"padding": ""})
	if err != nil {
		t.Fatal(err)
	}
	if !st.Dirty {
		t.Error("clearing a key should be dirty")
	}

	loaded, _ := e.Load(ctx, scope)
	header, _ := loaded.Screen.Find("header")
	if header.Styles.Padding != "" || header.Styles.PaddingTop != "4px" {
		t.Errorf("header styles = %+v", header.Styles)
	}
	if got := style.Resolve(header.Styles).Padding; got != "4px 0 0 0" {
		t.Errorf("resolved padding = %q, want 4px 0 0 0", got)
	}

	if _, err := e.ApplyStyle(ctx, scope, "header", screen.StyleUpdate{"colour": "red"}); !errors.Is(err, errors.ErrCodeInvalidStyleKey) {
		t.Errorf("unknown key error = %v, want %s", err, errors.ErrCodeInvalidStyleKey)
	}
}

func TestApplyStyleNoOps(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()

	if _, err := e.ApplyStyle(ctx, scope, "x", screen.StyleUpdate{"color": "red"}); !errors.Is(err, errors.ErrCodeNoDocument) {
		t.Errorf("ApplyStyle before import error = %v, want %s", err, errors.ErrCodeNoDocument)
	}

	before := mustImport(t, e, scope)

	tests := []struct {
		name   string
		id     string
		update screen.StyleUpdate
	}{
		{"missing id", "ghost", screen.StyleUpdate{"color": "red"}},
		{"no id no selection", "", screen.StyleUpdate{"color": "red"}},
		{"empty update", "title", screen.StyleUpdate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := e.ApplyStyle(ctx, scope, tt.id, tt.update)
			if err != nil {
				t.Fatalf("ApplyStyle error = %v", err)
			}
			if st.Dirty {
				t.Error("no-op ApplyStyle should not be dirty")
			}
			if !reflect.DeepEqual(st.Screen, before.Screen) {
				t.Error("no-op ApplyStyle changed the document")
			}
		})
	}
}

func TestApplyStyleUsesSelection(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()
	mustImport(t, e, scope)
	e.Select(ctx, scope, "cta")

	st, err := e.ApplyStyle(ctx, scope, "", screen.StyleUpdate{"backgroundColor": "#4f46e5"})
	if err != nil {
		t.Fatal(err)
	}
	cta, _ := st.Screen.Find("cta")
	if cta.Styles.BackgroundColor != "#4f46e5" {
		t.Errorf("selection not styled: %+v", cta.Styles)
	}
	if st.SelectedID != "cta" {
		t.Errorf("ApplyStyle changed selection to %q", st.SelectedID)
	}
}

func TestSetOpacityPercent(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()
	mustImport(t, e, scope)

	tests := []struct {
		percent int
		want    string
	}{
		{40, "0.4"},
		{100, "1"},
		{0, "0"},
		{150, "1"},
		{-5, "0"},
	}
	for _, tt := range tests {
		st, err := e.SetOpacityPercent(ctx, scope, "cta", tt.percent)
		if err != nil {
			t.Fatal(err)
		}
		cta, _ := st.Screen.Find("cta")
		if cta.Styles.Opacity != tt.want {
			t.Errorf("SetOpacityPercent(%d) stored %q, want %q", tt.percent, cta.Styles.Opacity, tt.want)
		}
	}
}

func TestExport(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()

	if _, err := e.Export(ctx, scope); !errors.Is(err, errors.ErrCodeNoDocument) {
		t.Errorf("Export before import error = %v, want %s", err, errors.ErrCodeNoDocument)
	}

	st := mustImport(t, e, scope)
	data, err := e.Export(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"id\": \"s1\"") {
		t.Errorf("Export should be two-space indented:\n%s", data)
	}

	back, err := io.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, st.Screen) {
		t.Errorf("Export round trip mismatch:\n got %+v\nwant %+v", back, st.Screen)
	}
}

func TestClear(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()
	mustImport(t, e, scope)

	if err := e.Clear(ctx, scope); err != nil {
		t.Fatal(err)
	}
	st, err := e.Load(ctx, scope)
	if err != nil || st.HasDocument() {
		t.Errorf("Load after Clear = %+v, %v", st, err)
	}
	if err := e.Clear(ctx, scope); err != nil {
		t.Errorf("Clear of empty scope error = %v", err)
	}
}

func TestScopesAreIsolated(t *testing.T) {
	e, a := newTestEditor(t, Options{})
	b := session.NewID()
	ctx := context.Background()

	mustImport(t, e, a)
	if st, _ := e.Load(ctx, b); st.HasDocument() {
		t.Error("import into one scope leaked into another")
	}
}

func TestPreviewCached(t *testing.T) {
	mem := cache.NewMemoryCache(16)
	e, scope := newTestEditor(t, Options{Cache: mem})
	ctx := context.Background()

	if _, err := e.Preview(ctx, scope); !errors.Is(err, errors.ErrCodeNoDocument) {
		t.Errorf("Preview before import error = %v, want %s", err, errors.ErrCodeNoDocument)
	}

	mustImport(t, e, scope)
	first, err := e.Preview(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	if mem.Len() != 1 {
		t.Fatalf("cache entries = %d, want 1", mem.Len())
	}
	second, err := e.Preview(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached preview differs from fresh preview")
	}

	e.Select(ctx, scope, "title")
	tree, err := e.Preview(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	if mem.Len() != 2 {
		t.Errorf("selection change should produce a new cache entry, have %d", mem.Len())
	}
	n, ok := tree.Find("title")
	if !ok || !n.Selected || n.Style.Outline == "" {
		t.Errorf("selected preview node = %+v", n)
	}
	header, _ := tree.Find("header")
	if header.Style.Padding != "8px" || header.Style.Cursor != "pointer" {
		t.Errorf("header style = %+v", header.Style)
	}
}

func TestOutline(t *testing.T) {
	e, scope := newTestEditor(t, Options{Cache: cache.NewMemoryCache(16)})
	ctx := context.Background()
	mustImport(t, e, scope)

	dot, err := e.Outline(ctx, scope, OutlineOptions{Format: FormatDOT})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph G") {
		t.Errorf("DOT output = %s", dot)
	}

	svg, err := e.Outline(ctx, scope, OutlineOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("SVG output missing <svg> tag")
	}

	if _, err := e.Outline(ctx, scope, OutlineOptions{Format: "pdf"}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Outline(pdf) error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestSummary(t *testing.T) {
	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()

	sum, err := e.Summary(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	if sum.HasDocument || sum.Status() != "No document loaded" {
		t.Errorf("empty summary = %+v", sum)
	}

	mustImport(t, e, scope)
	sum, _ = e.Summary(ctx, scope)
	if sum.Components != 2 || sum.Nodes != 3 || sum.Depth != 2 {
		t.Errorf("summary counts = %+v", sum)
	}
	if sum.ByType[screen.TypeHeading] != 1 {
		t.Errorf("ByType = %v", sum.ByType)
	}
	if got := sum.Status(); got != "Click on a component to edit styles • 2 components" {
		t.Errorf("Status() = %q", got)
	}

	e.Select(ctx, scope, "cta")
	sum, _ = e.Summary(ctx, scope)
	if got := sum.Status(); got != "Selected: button (cta) • 2 components" {
		t.Errorf("Status() = %q", got)
	}

	e.Select(ctx, scope, "header")
	sum, _ = e.Summary(ctx, scope)
	if sum.SelectedLabel != "Header" || sum.SelectedType != screen.TypeContainer {
		t.Errorf("selected summary = %+v", sum)
	}
}

type recordingHooks struct {
	observability.NoopEditorHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(ev string) {
	h.mu.Lock()
	h.events = append(h.events, ev)
	h.mu.Unlock()
}

func (h *recordingHooks) OnImport(_ context.Context, _ string, n int, _ time.Duration, err error) {
	if err != nil {
		h.record("import:error")
		return
	}
	h.record("import")
}

func (h *recordingHooks) OnStyleMerge(_ context.Context, _, id string, keys []string, found bool) {
	if !found {
		h.record("merge:miss")
		return
	}
	h.record("merge:" + id + ":" + strings.Join(keys, ","))
}

func (h *recordingHooks) OnExport(context.Context, string, int, error) { h.record("export") }
func (h *recordingHooks) OnClear(context.Context, string)              { h.record("clear") }

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetEditorHooks(hooks)
	t.Cleanup(observability.Reset)

	e, scope := newTestEditor(t, Options{})
	ctx := context.Background()

	e.Import(ctx, scope, []byte("{"))
	mustImport(t, e, scope)
	e.ApplyStyle(ctx, scope, "cta", screen.StyleUpdate{"width": "100%", "color": "red"})
	e.ApplyStyle(ctx, scope, "ghost", screen.StyleUpdate{"color": "red"})
	e.Export(ctx, scope)
	e.Clear(ctx, scope)

	want := []string{
		"import:error",
		"import",
		"merge:cta:color,width",
		"merge:miss",
		"export",
		"clear",
	}
	if !reflect.DeepEqual(hooks.events, want) {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestNewDefaults(t *testing.T) {
	e := New(session.NewMemoryStore(), Options{})
	if e.Cache == nil || e.Keyer == nil || e.Logger == nil {
		t.Error("New should fill nil dependencies")
	}
	if e.TTL != session.DefaultTTL {
		t.Errorf("TTL = %v, want %v", e.TTL, session.DefaultTTL)
	}
	if e.Hints.Cursor != "pointer" {
		t.Errorf("Hints = %+v, want editor hints", e.Hints)
	}
}
