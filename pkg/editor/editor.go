package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bloom/pkg/cache"
	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/io"
	"github.com/matzehuels/bloom/pkg/observability"
	"github.com/matzehuels/bloom/pkg/render/outline"
	"github.com/matzehuels/bloom/pkg/render/preview"
	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/session"
	"github.com/matzehuels/bloom/pkg/style"
)

// Outline output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Options configures an [Editor]. The zero value is usable.
type Options struct {
	// Cache stores derived previews and outlines. Nil disables caching.
	Cache cache.Cache

	// Keyer derives cache keys. Nil uses [cache.NewDefaultKeyer].
	Keyer cache.Keyer

	// Logger receives debug and info records. Nil uses log.Default().
	Logger *log.Logger

	// Strict rejects documents that fail [screen.Validate] on import.
	Strict bool

	// TTL is how long a scope survives after its last write.
	// Zero uses [session.DefaultTTL].
	TTL time.Duration

	// Hints are layered onto every resolved style in previews.
	// Nil uses [style.EditorHints].
	Hints *style.Hints
}

// Editor applies editing operations to documents held in a session store.
// It is safe for concurrent use if the store and cache are.
type Editor struct {
	Store  session.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Strict bool
	TTL    time.Duration
	Hints  style.Hints
}

// New creates an editor backed by store.
func New(store session.Store, opts Options) *Editor {
	e := &Editor{
		Store:  store,
		Cache:  opts.Cache,
		Keyer:  opts.Keyer,
		Logger: opts.Logger,
		Strict: opts.Strict,
		TTL:    opts.TTL,
		Hints:  style.EditorHints,
	}
	if e.Cache == nil {
		e.Cache = cache.NewNullCache()
	}
	if e.Keyer == nil {
		e.Keyer = cache.NewDefaultKeyer()
	}
	if e.Logger == nil {
		e.Logger = log.Default()
	}
	if e.TTL <= 0 {
		e.TTL = session.DefaultTTL
	}
	if opts.Hints != nil {
		e.Hints = *opts.Hints
	}
	return e
}

// State is the editable state of one scope.
type State struct {
	Scope string

	// Screen is nil until a document has been imported.
	Screen *screen.Screen

	// SelectedID is empty when nothing is selected.
	SelectedID string

	// Dirty reports whether the call that returned this state changed the
	// stored document.
	Dirty bool

	doc []byte
}

// HasDocument reports whether a document is loaded.
func (s *State) HasDocument() bool { return s.Screen != nil }

// Selected returns the selected component, if any.
func (s *State) Selected() (screen.Component, bool) {
	if s.Screen == nil || s.SelectedID == "" {
		return screen.Component{}, false
	}
	return s.Screen.Find(s.SelectedID)
}

// Load returns the current state of scope. A scope that has never imported
// a document, or whose session expired, yields a state with a nil Screen.
func (e *Editor) Load(ctx context.Context, scope string) (*State, error) {
	st, _, err := e.load(ctx, scope)
	return st, err
}

func (e *Editor) load(ctx context.Context, scope string) (*State, *session.Session, error) {
	if err := errors.ValidateSessionID(scope); err != nil {
		return nil, nil, err
	}
	sess, err := e.Store.Get(ctx, scope)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return &State{Scope: scope}, session.New(scope, e.TTL), nil
	}

	st := &State{Scope: scope, SelectedID: sess.SelectedID}
	if sess.HasDocument() {
		s, err := io.Unmarshal(sess.Document)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeStorage, err, "stored document for %s is corrupt", scope)
		}
		st.Screen = s
		st.doc = sess.Document
	}
	return st, sess, nil
}

// loadDocument is load for operations that need a document.
func (e *Editor) loadDocument(ctx context.Context, scope string) (*State, *session.Session, error) {
	st, sess, err := e.load(ctx, scope)
	if err != nil {
		return nil, nil, err
	}
	if !st.HasDocument() {
		return nil, nil, errors.New(errors.ErrCodeNoDocument, "no document imported")
	}
	return st, sess, nil
}

func (e *Editor) save(ctx context.Context, st *State, sess *session.Session) error {
	if st.Screen == nil {
		sess.Document = nil
	} else {
		data, err := json.Marshal(st.Screen)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encoding document")
		}
		sess.Document = data
		st.doc = data
	}
	sess.SelectedID = st.SelectedID
	sess.Touch(e.TTL)
	return e.Store.Set(ctx, sess)
}

// Import parses raw as a screen document and makes it the scope's document,
// replacing whatever was there. The selection is cleared.
func (e *Editor) Import(ctx context.Context, scope string, raw []byte) (*State, error) {
	start := time.Now()
	st, err := e.importDocument(ctx, scope, raw)

	nodes := 0
	if st != nil {
		nodes = st.Screen.Count()
	}
	observability.Editor().OnImport(ctx, scope, nodes, time.Since(start), err)
	return st, err
}

func (e *Editor) importDocument(ctx context.Context, scope string, raw []byte) (*State, error) {
	s, err := io.Unmarshal(raw)
	if err != nil {
		return nil, err
	}
	if e.Strict {
		if err := screen.Validate(s); err != nil {
			return nil, err
		}
	}

	st, sess, err := e.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	st.Screen = s
	st.SelectedID = ""
	st.Dirty = true
	if err := e.save(ctx, st, sess); err != nil {
		return nil, err
	}

	e.Logger.Info("imported document", "scope", scope, "screen", s.ID, "components", s.Count())
	return st, nil
}

// Select makes id the selected component. An empty id clears the selection.
// Selecting an id that is not in the document fails with
// COMPONENT_NOT_FOUND and leaves the selection unchanged.
func (e *Editor) Select(ctx context.Context, scope, id string) (*State, error) {
	st, sess, err := e.loadDocument(ctx, scope)
	if err != nil {
		return nil, err
	}
	if id != "" {
		if _, ok := st.Screen.Find(id); !ok {
			return nil, errors.New(errors.ErrCodeComponentNotFound, "no component %q", id)
		}
	}
	if id == st.SelectedID {
		return st, nil
	}

	st.SelectedID = id
	if err := e.save(ctx, st, sess); err != nil {
		return nil, err
	}
	e.Logger.Debug("selected component", "scope", scope, "id", id)
	return st, nil
}

// ApplyStyle merges update into the styles of component id. An empty id
// targets the current selection; with no selection either, the call does
// nothing. A missing id is not an error: the document is left unchanged
// and the returned state is not dirty. Keys in update mapped to "" clear
// the attribute.
func (e *Editor) ApplyStyle(ctx context.Context, scope, id string, update screen.StyleUpdate) (*State, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	st, sess, err := e.loadDocument(ctx, scope)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = st.SelectedID
	}
	if id == "" {
		return st, nil
	}

	_, found := st.Screen.Find(id)
	keys := update.Keys()
	observability.Editor().OnStyleMerge(ctx, scope, id, keys, found)
	if !found || len(update) == 0 {
		return st, nil
	}

	st.Screen = st.Screen.WithStyle(id, update)
	st.Dirty = true
	if err := e.save(ctx, st, sess); err != nil {
		return nil, err
	}
	e.Logger.Debug("applied style", "scope", scope, "id", id, "keys", keys)
	return st, nil
}

// SetOpacityPercent sets the opacity of component id from a slider
// percentage. The percentage is clamped to [0, 100] and stored as a decimal
// fraction, so 40 is stored as "0.4".
func (e *Editor) SetOpacityPercent(ctx context.Context, scope, id string, percent int) (*State, error) {
	return e.ApplyStyle(ctx, scope, id, screen.StyleUpdate{"opacity": style.OpacityFromPercent(percent)})
}

// Export serializes the scope's document as indented JSON.
func (e *Editor) Export(ctx context.Context, scope string) ([]byte, error) {
	data, err := e.export(ctx, scope)
	observability.Editor().OnExport(ctx, scope, len(data), err)
	return data, err
}

func (e *Editor) export(ctx context.Context, scope string) ([]byte, error) {
	st, _, err := e.loadDocument(ctx, scope)
	if err != nil {
		return nil, err
	}
	return io.Marshal(st.Screen)
}

// Clear removes the scope's document and selection.
func (e *Editor) Clear(ctx context.Context, scope string) error {
	if err := errors.ValidateSessionID(scope); err != nil {
		return err
	}
	if err := e.Store.Delete(ctx, scope); err != nil {
		return err
	}
	observability.Editor().OnClear(ctx, scope)
	e.Logger.Info("cleared session", "scope", scope)
	return nil
}

// Preview returns the resolved view of the scope's document with the
// current selection highlighted.
func (e *Editor) Preview(ctx context.Context, scope string) (*preview.Tree, error) {
	st, _, err := e.loadDocument(ctx, scope)
	if err != nil {
		return nil, err
	}

	key := e.Keyer.PreviewKey(cache.Hash(st.doc), cache.PreviewKeyOpts{
		SelectedID: st.SelectedID,
		Cursor:     e.Hints.Cursor,
		Transition: e.Hints.Transition,
	})
	if data, ok := e.cached(ctx, "preview", key); ok {
		var tree preview.Tree
		if err := json.Unmarshal(data, &tree); err == nil {
			return &tree, nil
		}
	}

	tree := preview.Build(st.Screen, st.SelectedID, e.Hints)
	if data, err := json.Marshal(tree); err == nil {
		e.store(ctx, "preview", key, data)
	}
	return &tree, nil
}

// OutlineOptions configures [Editor.Outline].
type OutlineOptions struct {
	Format    string // FormatSVG (default) or FormatDOT
	Detailed  bool
	Direction string
}

// Outline renders the scope's component tree as a diagram, highlighting the
// current selection.
func (e *Editor) Outline(ctx context.Context, scope string, opts OutlineOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if opts.Format != FormatSVG && opts.Format != FormatDOT {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported outline format %q", opts.Format)
	}

	st, _, err := e.loadDocument(ctx, scope)
	if err != nil {
		return nil, err
	}

	key := e.Keyer.OutlineKey(cache.Hash(st.doc), cache.OutlineKeyOpts{
		Format:     opts.Format,
		SelectedID: st.SelectedID,
		Direction:  opts.Direction,
		Detailed:   opts.Detailed,
	})
	if data, ok := e.cached(ctx, "outline", key); ok {
		return data, nil
	}

	dot := outline.ToDOT(st.Screen, outline.Options{
		SelectedID: st.SelectedID,
		Detailed:   opts.Detailed,
		Direction:  opts.Direction,
	})
	data := []byte(dot)
	if opts.Format == FormatSVG {
		data, err = outline.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
	}
	e.store(ctx, "outline", key, data)
	return data, nil
}

func (e *Editor) cached(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, ok, err := e.Cache.Get(ctx, key)
	if err != nil {
		e.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (e *Editor) store(ctx context.Context, keyType, key string, data []byte) {
	if err := e.Cache.Set(ctx, key, bytes.Clone(data), cache.DefaultTTL); err != nil {
		e.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
