package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/observability"
)

// Cache key types reported to cache hooks.
const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs the normalize → build → render pipeline. When every
// requested artifact is cached, no geometry is computed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{DataHash: opts.DataHash()}
	geometryKey := r.Keyer.GeometryKey(result.DataHash, opts.GeometryKeyOpts())
	geometryHash := cache.Hash([]byte(geometryKey))

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, geometryHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	buildStart := time.Now()
	g, size, err := build(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Geometry = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Points = size
	if g.Area != nil {
		result.Stats.Series = len(g.Area.Layers)
	} else {
		result.Stats.Series = 1
	}
	r.Logger.Info("built geometry",
		"type", opts.Definition.Chart.Type,
		"points", size,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, err := Render(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(geometryHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return result, nil
}

// Build computes geometry without caching.
func (r *Runner) Build(ctx context.Context, opts Options) (*Geometry, error) {
	r.applyLogger(&opts)
	g, err := Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return g, nil
}

func (r *Runner) cachedArtifacts(ctx context.Context, geometryHash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(geometryHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	return artifacts, true
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
