package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/staveline/staveline/pkg/cache"
	"github.com/staveline/staveline/pkg/engrave"
	"github.com/staveline/staveline/pkg/errors"
	"github.com/staveline/staveline/pkg/music"
	"github.com/staveline/staveline/pkg/observability"
	"github.com/staveline/staveline/pkg/render/sink"
	"github.com/staveline/staveline/pkg/scorefile"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete parse → engrave → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		ScoreHash: cache.Hash([]byte(opts.Source)),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, "source")
	score, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	result.Stats.ParseTime = time.Since(parseStart)
	observability.Pipeline().OnParseComplete(ctx, "source", score.NoteCount(), result.Stats.ParseTime, err)
	if err != nil {
		return nil, err
	}
	result.Score = score
	result.Stats.MeasureCount = len(score.Measures)
	result.Stats.NoteCount = score.NoteCount()
	result.CacheInfo.ParseHit = parseHit

	r.Logger.Info("parsed score",
		"measures", result.Stats.MeasureCount,
		"notes", result.Stats.NoteCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Engrave
	engraveStart := time.Now()
	observability.Pipeline().OnEngraveStart(ctx, len(score.Measures))
	layout, engraveHit, err := r.EngraveWithCacheInfo(ctx, score, result.ScoreHash, opts)
	result.Stats.EngraveTime = time.Since(engraveStart)
	observability.Pipeline().OnEngraveComplete(ctx, layout.PrimitiveCount(), result.Stats.EngraveTime, err)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.PrimitiveCount = layout.PrimitiveCount()
	result.CacheInfo.EngraveHit = engraveHit

	r.Logger.Info("engraved layout",
		"primitives", result.Stats.PrimitiveCount,
		"duration", result.Stats.EngraveTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses the score with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (music.Score, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return music.Score{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ScoreKey(cache.Hash([]byte(opts.Source)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var score music.Score
			if err := json.Unmarshal(data, &score); err == nil {
				observability.Cache().OnCacheHit(ctx, "score")
				return score, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "score")
	}

	score, err := scorefile.Parse([]byte(opts.Source))
	if err != nil {
		return music.Score{}, false, err
	}

	if data, err := json.Marshal(score); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScore)
		observability.Cache().OnCacheSet(ctx, "score", len(data))
	}

	return score, false, nil
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (music.Score, error) {
	score, _, err := r.ParseWithCacheInfo(ctx, opts)
	return score, err
}

// EngraveWithCacheInfo computes the layout with caching and returns cache
// hit info. The scoreHash keys the cache entry together with the geometry
// options.
func (r *Runner) EngraveWithCacheInfo(ctx context.Context, score music.Score, scoreHash string, opts Options) (engrave.Layout, bool, error) {
	opts.SetEngraveDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(scoreHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := sink.ParseJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Undecodable entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	layout, err := engrave.Engrave(score, opts.EngraveOptions())
	if err != nil {
		return engrave.Layout{}, false, err
	}

	if data, err := sink.RenderJSON(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil
}

// Engrave is a convenience wrapper that discards the cache hit info.
func (r *Runner) Engrave(ctx context.Context, score music.Score, scoreHash string, opts Options) (engrave.Layout, error) {
	layout, _, err := r.EngraveWithCacheInfo(ctx, score, scoreHash, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The hit flag reports whether every requested format came from
// the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout engrave.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := sink.RenderJSON(layout)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := renderFormats(layout, layoutData, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout engrave.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// renderFormats dispatches to the sinks for every requested format.
func renderFormats(layout engrave.Layout, layoutJSON []byte, opts Options) (map[string][]byte, error) {
	svgOpts := opts.svgOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(layout, svgOpts...)
		case FormatPNG:
			data, err := sink.RenderPNG(layout, sink.WithPNGSVGOptions(svgOpts...))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := sink.RenderPDF(layout, sink.WithPDFSVGOptions(svgOpts...))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
			}
			artifacts[format] = data
		case FormatJSON:
			artifacts[format] = layoutJSON
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return artifacts, nil
}

func (o *Options) svgOptions() []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if o.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(o.Background))
	}
	if o.Ink != "" {
		svgOpts = append(svgOpts, sink.WithInk(o.Ink))
	}
	if o.NoTitle {
		svgOpts = append(svgOpts, sink.WithoutTitle())
	}
	return svgOpts
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
