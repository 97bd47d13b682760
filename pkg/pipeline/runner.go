package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/slidegen/pkg/cache"
	"github.com/matzehuels/slidegen/pkg/deck"
	"github.com/matzehuels/slidegen/pkg/observability"
	"github.com/matzehuels/slidegen/pkg/outline"
)

// Cache lifetimes used when the runner is created by NewRunner.
const (
	DefaultArtifactTTL = 7 * 24 * time.Hour
	DefaultOutlineTTL  = time.Hour
)

// Runner executes the pipeline with caching.
//
// The Runner keeps no per-run state, so several goroutines may share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Client fetches remote outlines. Nil uses the fetcher's default client.
	Client *http.Client

	ArtifactTTL time.Duration
	OutlineTTL  time.Duration
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
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		ArtifactTTL: DefaultArtifactTTL,
		OutlineTTL:  DefaultOutlineTTL,
	}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	source := opts.Source()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	o, hit, err := r.LoadWithCacheInfo(ctx, opts)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnLoadComplete(ctx, source, slideCount(o), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Outline = o
	result.CacheInfo.OutlineHit = hit
	result.Warnings = o.Warnings()
	for _, w := range result.Warnings {
		opts.Logger.Warn(w)
	}
	opts.Logger.Info("loaded outline", "source", source, "slides", o.Len(), "duration", result.Stats.LoadTime)

	outlineHash, err := cache.HashJSON(o)
	if err != nil {
		return nil, fmt.Errorf("hash outline: %w", err)
	}
	themeHash, err := cache.HashJSON(opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("hash theme: %w", err)
	}
	result.OutlineHash = outlineHash

	// Stage 2: Build
	hooks.OnBuildStart(ctx, o.Len())
	start = time.Now()
	d, err := Build(o, opts)
	result.Stats.BuildTime = time.Since(start)
	if d != nil {
		// Equal inputs give equal ids, so cached artifacts and the
		// returned deck agree.
		d.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(outlineHash+themeHash)).String()
	}
	hooks.OnBuildComplete(ctx, o.Len(), result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Deck = d
	result.Stats.Slides = len(d.Slides)
	opts.Logger.Debug("built deck", "slides", len(d.Slides), "duration", result.Stats.BuildTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, outlineHash, themeHash, opts)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	opts.Logger.Info("rendered", "formats", opts.Formats, "cached", renderHit, "duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every format of d, serving all of them from
// the cache when every one is present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *deck.Deck, outlineHash, themeHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(outlineHash, opts.ArtifactKeyOpts(format, themeHash))
			data, hit := r.get(ctx, "artifact", key)
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(d, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(outlineHash, opts.ArtifactKeyOpts(format, themeHash))
		r.set(ctx, "artifact", key, data, r.ArtifactTTL)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads the cache, treating backend errors as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func slideCount(o *outline.Outline) int {
	if o == nil {
		return 0
	}
	return o.Len()
}
