package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/cache"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
	"github.com/matzehuels/bracketgen/pkg/observability"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
)

// Runner executes the pipeline against an artifact cache. The CLI and the
// render service each hold one; it keeps no per-run state, so concurrent
// Execute calls are fine.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the artifact expiry. Zero means [cache.TTLArtifact].
	TTL time.Duration
}

// NewRunner returns a runner. Nil arguments select the default keyer, no
// caching and the default logger.
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

// Execute runs the complete build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer().Start(ctx, "pipeline.Execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("bracket.source", opts.Source()),
		attribute.String("bracket.viz_type", opts.VizType),
		attribute.StringSlice("bracket.formats", opts.Formats),
	)

	result, err := r.execute(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result, nil
}

func (r *Runner) execute(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	b, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Bracket = b
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Rounds = b.NumRounds()
	for _, n := range b.MatchupCounts() {
		result.Stats.Matchups += n
	}
	result.Stats.Decided = decided(b)

	r.Logger.Info("built bracket",
		"source", opts.Source(),
		"rounds", result.Stats.Rounds,
		"decided", result.Stats.Decided,
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	hooks := observability.Pipeline()
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.VizType, result.Stats.Matchups)
	result.Layout = BuildLayout(b, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Highlights = result.Layout.Highlights()
	hooks.OnLayoutComplete(ctx, opts.VizType, result.Stats.LayoutTime, nil)

	r.Logger.Debug("computed layout",
		"columns", len(result.Layout.Columns),
		"highlights", result.Stats.Highlights,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hash, hit, err := r.render(ctx, b, result.Layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.BracketHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build constructs the bracket and reports build hooks.
func (r *Runner) Build(ctx context.Context, opts Options) (*bracket.Bracket, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	source := opts.Source()
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, source)
	start := time.Now()

	b, err := Build(opts)

	rounds := 0
	if b != nil {
		rounds = b.NumRounds()
	}
	hooks.OnBuildComplete(ctx, source, rounds, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// RenderWithCacheInfo renders b in every requested format and reports
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, b *bracket.Bracket, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	artifacts, _, hit, err := r.render(ctx, b, BuildLayout(b, opts), opts)
	return artifacts, hit, err
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, b *bracket.Bracket, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, b, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, b *bracket.Bracket, l layout.Layout, opts Options) (map[string][]byte, string, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hash, hit, err := r.renderCached(ctx, b, l, opts)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hash, hit, err
}

func (r *Runner) renderCached(ctx context.Context, b *bracket.Bracket, l layout.Layout, opts Options) (map[string][]byte, string, bool, error) {
	hash, err := cache.HashJSON(b.Picks())
	if err != nil {
		return nil, "", false, errs.Wrap(errs.ErrCodeInternal, err, "hash bracket")
	}
	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, hash, opts); ok {
			return artifacts, hash, true, nil
		}
	}

	artifacts, err := RenderFromLayout(ctx, b, l, opts)
	if err != nil {
		return nil, "", false, err
	}
	if !opts.Reproducible() {
		r.Logger.Debug("skipping cache write for random draw", "hash", hash)
		return artifacts, hash, false, nil
	}
	r.store(ctx, hash, artifacts, opts)
	return artifacts, hash, false, nil
}

// lookup returns cached artifacts only when every requested format is
// present. Read errors count as misses.
func (r *Runner) lookup(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	found := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, format)
			return nil, false
		}
		hooks.OnCacheHit(ctx, format)
		found[format] = data
	}
	return found, true
}

// store writes artifacts back. Failures are logged and skipped.
func (r *Runner) store(ctx context.Context, hash string, artifacts map[string][]byte, opts Options) {
	hooks := observability.Cache()
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, format, len(data))
	}
}

// RenderPicks is the render-request boundary: it turns submitted picks into
// a PDF page. Missing or empty picks fail with [errs.ErrCodeNoPicks] and no
// bytes.
func (r *Runner) RenderPicks(ctx context.Context, picks bracket.Picks) ([]byte, error) {
	if picks.Empty() {
		return nil, errs.New(errs.ErrCodeNoPicks, "no picks provided")
	}
	res, err := r.Execute(ctx, Options{Picks: picks, Formats: []string{FormatPDF}})
	if err != nil {
		return nil, err
	}
	data, ok := res.Artifacts[FormatPDF]
	if !ok {
		return nil, errs.New(errs.ErrCodeInternal, "pdf artifact missing")
	}
	return data, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func decided(b *bracket.Bracket) int {
	n := 0
	for _, r := range b.Rounds {
		for _, m := range r.Matchups {
			if m.Winner != "" {
				n++
			}
		}
	}
	return n
}
