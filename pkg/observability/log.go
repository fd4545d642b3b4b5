package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger. The server installs
// them at startup; the CLI keeps the no-op defaults.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetEditorHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnImport(_ context.Context, scope string, components int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("import failed", "scope", scope, "err", err)
		return
	}
	h.logger.Info("imported document", "scope", scope, "components", components, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnStyleMerge(_ context.Context, scope, id string, keys []string, found bool) {
	if !found {
		h.logger.Debug("style merge ignored, no such component", "scope", scope, "id", id)
		return
	}
	h.logger.Debug("merged styles", "scope", scope, "id", id, "keys", keys)
}

func (h *LogHooks) OnExport(_ context.Context, scope string, size int, err error) {
	if err != nil {
		h.logger.Warn("export failed", "scope", scope, "err", err)
		return
	}
	h.logger.Debug("exported document", "scope", scope, "bytes", size)
}

func (h *LogHooks) OnClear(_ context.Context, scope string) {
	h.logger.Info("cleared session", "scope", scope)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("fetch", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Info("fetched", "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("fetch failed", "host", host, "path", path, "err", err)
}

var (
	_ EditorHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
