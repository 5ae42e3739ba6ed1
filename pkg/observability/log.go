package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// RenderHooks, CacheHooks and APIHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks logging to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnBuildStart(_ context.Context, kind string, rows int) {
	h.Logger.Debug("build start", "kind", kind, "rows", rows)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, kind string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("build failed", "kind", kind, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("build done", "kind", kind, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, kind string, formats []string) {
	h.Logger.Debug("render start", "kind", kind, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, kind string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "kind", kind, "formats", formats, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render done", "kind", kind, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.Logger.Debug("cache hit", "key", key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.Logger.Debug("cache miss", "key", key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.Logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ APIHooks    = (*LogHooks)(nil)
)
