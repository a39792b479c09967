package pipeline

import (
	"bytes"
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/antcolor/pkg/cache"
	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/errors"
	"github.com/matzehuels/antcolor/pkg/graph"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
	"github.com/matzehuels/antcolor/pkg/observability"
)

// Runner executes the pipeline with caching. It keeps no per-run state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// uses [cache.DefaultKeyer].
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute colors g and renders every requested format.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, Classify(err, "invalid options")
	}
	r.applyDefaults(&opts)

	result := &Result{
		Graph: g,
		Stats: Stats{Vertices: g.N(), Edges: g.EdgeCount()},
	}

	colorStart := time.Now()
	doc, hit, graphHash, err := r.color(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.GraphHash = graphHash
	result.Stats.ColorTime = time.Since(colorStart)
	result.CacheInfo.ResultHit = hit

	opts.Logger.Info("colored graph",
		"vertices", g.N(),
		"colors", doc.Colors,
		"found_at", doc.FoundAt,
		"cached", hit,
		"duration", result.Stats.ColorTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ColorWithCacheInfo runs the colony on g and reports whether the result
// came from the cache. Only seeded runs are looked up and stored.
func (r *Runner) ColorWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (pkgio.Document, bool, error) {
	if err := opts.Params.Validate(); err != nil {
		return pkgio.Document{}, false, Classify(err, "invalid options")
	}
	r.applyDefaults(&opts)
	doc, hit, _, err := r.color(ctx, g, opts)
	return doc, hit, err
}

// Color is [Runner.ColorWithCacheInfo] without the cache flag.
func (r *Runner) Color(ctx context.Context, g *graph.Graph, opts Options) (pkgio.Document, error) {
	doc, _, err := r.ColorWithCacheInfo(ctx, g, opts)
	return doc, err
}

func (r *Runner) color(ctx context.Context, g *graph.Graph, opts Options) (pkgio.Document, bool, string, error) {
	graphData, err := pkgio.MarshalGraph(g)
	if err != nil {
		return pkgio.Document{}, false, "", errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	graphHash := cache.Hash(graphData)

	var key string
	if opts.Cacheable() {
		key = r.Keyer.ResultKey(graphHash, cache.ResultKeyOpts{Params: opts.Params, Seed: *opts.Seed})
		if !opts.Refresh {
			if doc, ok := r.lookupResult(ctx, key); ok {
				return doc, true, graphHash, nil
			}
		}
	}

	seed := rand.Uint64()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])

	hooks := observability.Colony()
	hooks.OnRunStart(ctx, runID, g.N(), g.EdgeCount())

	res, err := colony.Run(ctx, g, opts.Params, newRNG(seed),
		colony.WithLogger(logger),
		colony.WithProgress(func(p colony.Progress) {
			hooks.OnIteration(ctx, runID, p.Iteration, p.BestCost, p.Improved)
			if opts.Progress != nil {
				opts.Progress(p)
			}
		}))
	if err != nil {
		hooks.OnRunComplete(ctx, runID, 0, 0, err)
		return pkgio.Document{}, false, graphHash, Classify(err, "color graph")
	}
	hooks.OnRunComplete(ctx, runID, res.Cost, res.Duration, nil)

	doc := pkgio.NewDocument(g, res)
	doc.RunID = runID
	params := opts.Params
	doc.Params = &params
	doc.Seed = &seed

	if key != "" {
		r.storeResult(ctx, key, doc)
	}
	return doc, false, graphHash, nil
}

func (r *Runner) lookupResult(ctx context.Context, key string) (pkgio.Document, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err == nil && hit {
		doc, err := pkgio.ReadDocument(bytes.NewReader(data))
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "result")
			return doc, true
		}
		r.Logger.Debug("discarding unreadable cache entry", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "result")
	return pkgio.Document{}, false
}

func (r *Runner) storeResult(ctx context.Context, key string, doc pkgio.Document) {
	data, err := pkgio.MarshalDocument(doc)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "result", len(data))
}

// RenderWithCacheInfo renders doc in every requested format and reports
// whether all of them came from the cache. g may be nil, in which case it
// is rebuilt from the document.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc pkgio.Document, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, Classify(err, "invalid options")
	}
	r.applyDefaults(&opts)

	if g == nil {
		var err error
		if g, err = doc.Validate(); err != nil {
			return nil, false, Classify(err, "invalid document")
		}
	}

	docData, err := pkgio.MarshalDocument(doc)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	docHash := cache.Hash(docData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.artifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allCached = false

		data, err := RenderFormat(ctx, g, doc, format, opts)
		if err != nil {
			return nil, false, Classify(err, "render %s", format)
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allCached, nil
}

// Render is [Runner.RenderWithCacheInfo] without the cache flag.
func (r *Runner) Render(ctx context.Context, doc pkgio.Document, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, g, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyDefaults(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
}

func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed, Title: o.Title}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
