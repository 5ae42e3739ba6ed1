package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/oceanplot/pkg/cache"
	"github.com/matzehuels/oceanplot/pkg/figure"
	"github.com/matzehuels/oceanplot/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
// When every requested format is cached, nothing is built.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	kind, err := ParseKind(string(req.Kind))
	if err != nil {
		return nil, err
	}
	req.Kind = kind
	r.applyLogger(&req.Options)
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	opts := req.Options

	inputHash, err := InputHash(req)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Kind:      kind,
		InputHash: inputHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.Rows = req.Table.Len()

	if !req.Refresh {
		if cached, ok := r.cached(ctx, inputHash, opts.Formats); ok {
			result.Artifacts = cached
			result.CacheHit = true
			r.Logger.Info("served from cache", "kind", kind, "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Build
	hooks := observability.Render()
	hooks.OnBuildStart(ctx, string(kind), result.Stats.Rows)
	buildStart := time.Now()
	fig, err := Build(req)
	result.Stats.BuildTime = time.Since(buildStart)
	hooks.OnBuildComplete(ctx, string(kind), result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("built figure",
		"kind", kind,
		"rows", result.Stats.Rows,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	hooks.OnRenderStart(ctx, string(kind), opts.Formats)
	renderStart := time.Now()
	err = r.render(ctx, fig, inputHash, opts, result.Artifacts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, string(kind), opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// InputHash returns the content hash that keys req's artifacts. Options
// should be validated first so that equivalent requests hash equally.
// Formats are left out since every artifact key names its format.
func InputHash(req Request) (string, error) {
	opts := req.Options
	opts.Formats = nil
	return cache.HashJSON(req.Kind, opts, req.Table)
}

// cached returns every format from the cache, or false if any is missing.
func (r *Runner) cached(ctx context.Context, inputHash string, formats []string) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		key := r.Keyer.ArtifactKey(inputHash, format)
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache lookup failed", "key", key, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, key)
			return nil, false
		}
		hooks.OnCacheHit(ctx, key)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) render(ctx context.Context, fig *figure.Figure, inputHash string, opts Options, out map[string][]byte) error {
	w := vg.Length(opts.Width) * vg.Centimeter
	h := vg.Length(opts.Height) * vg.Centimeter
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := figure.Render(fig, format, w, h)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		out[format] = data

		// Cache failures never fail a render.
		key := r.Keyer.ArtifactKey(inputHash, format)
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache store failed", "key", key, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
