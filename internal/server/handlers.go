package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bloom/pkg/buildinfo"
	"github.com/matzehuels/bloom/pkg/editor"
	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/httputil"
	bloomio "github.com/matzehuels/bloom/pkg/io"
	"github.com/matzehuels/bloom/pkg/samples"
	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/style"
)

// stateResponse is the editor state as the API returns it.
type stateResponse struct {
	Screen     *screen.Screen `json:"screen"`
	SelectedID string         `json:"selectedId,omitempty"`
	Dirty      bool           `json:"dirty"`
}

func newStateResponse(st *editor.State) stateResponse {
	return stateResponse{Screen: st.Screen, SelectedID: st.SelectedID, Dirty: st.Dirty}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, style.DefaultPresets())
}

func (s *Server) listSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, samples.List())
}

func (s *Server) getSample(w http.ResponseWriter, r *http.Request) {
	data, err := samples.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) getScreen(w http.ResponseWriter, r *http.Request) {
	st, err := s.editor.Load(r.Context(), scopeFrom(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

func (s *Server) clearScreen(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.Clear(r.Context(), scopeFrom(r)); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// importScreen takes the document from ?sample=, ?url= or the request body,
// in that order.
func (s *Server) importScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		data []byte
		err  error
	)
	switch q := r.URL.Query(); {
	case q.Get("sample") != "":
		data, err = samples.Get(q.Get("sample"))
	case q.Get("url") != "":
		data, err = s.fetcher.Fetch(ctx, q.Get("url"))
	default:
		data, err = io.ReadAll(http.MaxBytesReader(w, r.Body, httputil.MaxDocumentSize))
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "reading request body")
		}
	}
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	st, err := s.editor.Import(ctx, scopeFrom(r), data)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

func (s *Server) exportScreen(w http.ResponseWriter, r *http.Request) {
	data, err := s.editor.Export(r.Context(), scopeFrom(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bloomio.ExportFilename(time.Now())))
	w.Write(data)
}

func (s *Server) previewScreen(w http.ResponseWriter, r *http.Request) {
	tree, err := s.editor.Preview(r.Context(), scopeFrom(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) outlineScreen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := editor.OutlineOptions{
		Format:    q.Get("format"),
		Direction: q.Get("direction"),
	}
	opts.Detailed, _ = strconv.ParseBool(q.Get("detailed"))

	data, err := s.editor.Outline(r.Context(), scopeFrom(r), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if opts.Format == editor.FormatDOT {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Write(data)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.editor.Summary(r.Context(), scopeFrom(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

type selectionRequest struct {
	ID string `json:"id"`
}

func (s *Server) selectComponent(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	st, err := s.editor.Select(r.Context(), scopeFrom(r), req.ID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

func (s *Server) getComponent(w http.ResponseWriter, r *http.Request) {
	c, err := s.component(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// patchStyles merges a partial style object. Keys are validated; values
// must be strings and are stored as given, so "" clears an attribute.
func (s *Server) patchStyles(w http.ResponseWriter, r *http.Request) {
	var update screen.StyleUpdate
	if err := decodeBody(w, r, &update); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	st, err := s.editor.ApplyStyle(r.Context(), scopeFrom(r), chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

type opacityRequest struct {
	Percent *int `json:"percent"`
}

func (s *Server) putOpacity(w http.ResponseWriter, r *http.Request) {
	var req opacityRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if req.Percent == nil {
		writeError(w, r, s.logger, errors.New(errors.ErrCodeInvalidInput, "percent is required"))
		return
	}

	st, err := s.editor.SetOpacityPercent(r.Context(), scopeFrom(r), chi.URLParam(r, "id"), *req.Percent)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

type resolvedResponse struct {
	ID    string             `json:"id"`
	Style style.Presentation `json:"style"`
	CSS   string             `json:"css"`
}

func (s *Server) resolvedStyle(w http.ResponseWriter, r *http.Request) {
	c, err := s.component(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	p := style.Resolve(c.Styles)
	writeJSON(w, http.StatusOK, resolvedResponse{ID: c.ID, Style: p, CSS: p.CSS()})
}

// component looks up the {id} route parameter in the scope's document.
func (s *Server) component(r *http.Request) (screen.Component, error) {
	id := chi.URLParam(r, "id")
	st, err := s.editor.Load(r.Context(), scopeFrom(r))
	if err != nil {
		return screen.Component{}, err
	}
	if !st.HasDocument() {
		return screen.Component{}, errors.New(errors.ErrCodeNoDocument, "no document imported")
	}
	c, ok := st.Screen.Find(id)
	if !ok {
		return screen.Component{}, errors.New(errors.ErrCodeComponentNotFound, "no component %q", id)
	}
	return c, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
