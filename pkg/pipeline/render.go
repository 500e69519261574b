package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
	"github.com/matzehuels/bracketgen/pkg/render/nodelink"
	"github.com/matzehuels/bracketgen/pkg/render/sink"
	"github.com/matzehuels/bracketgen/pkg/render/styles"
)

// =============================================================================
// Build
// =============================================================================

// Build constructs a bracket from the picks or team list in opts.
func Build(opts Options) (*bracket.Bracket, error) {
	if opts.Source() == SourcePicks {
		return bracket.FromPicks(opts.Picks)
	}

	var bopts []bracket.Option
	if opts.Size > 0 {
		bopts = append(bopts, bracket.WithSize(opts.Size))
	}
	switch {
	case opts.Shuffler != nil:
		bopts = append(bopts, bracket.WithShuffler(opts.Shuffler))
	case opts.Seed != 0:
		bopts = append(bopts, bracket.WithSeed(opts.Seed))
	}

	b := bracket.FromTeams(opts.Teams, bopts...)
	if opts.AutoByes {
		b.AutoAdvanceByes()
	}
	return b, nil
}

// =============================================================================
// Layout
// =============================================================================

// BuildLayout computes the page geometry of b.
func BuildLayout(b *bracket.Bracket, opts Options) layout.Layout {
	return layout.Build(b, opts.layoutOptions()...)
}

// =============================================================================
// Render
// =============================================================================

// RenderFromLayout renders every requested format. Formats are rendered
// concurrently; the first failure cancels the rest.
func RenderFromLayout(ctx context.Context, b *bracket.Bracket, l layout.Layout, opts Options) (map[string][]byte, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, format, b, l, style, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, b *bracket.Bracket, l layout.Layout, style styles.Style, opts Options) ([]byte, error) {
	switch format {
	case FormatPicks:
		return json.MarshalIndent(b.Picks(), "", "  ")
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatDOT:
		return []byte(toDOT(b, style)), nil
	}

	if opts.IsNodelink() {
		return renderNodelink(ctx, format, b, l.Page, style)
	}

	sinkOpts := []sink.Option{
		sink.WithStyle(style),
		sink.WithScale(opts.Scale),
		sink.WithCompression(!opts.NoCompress),
	}
	switch format {
	case FormatPDF:
		return sink.RenderPDF(l, sinkOpts...)
	case FormatSVG:
		return sink.RenderSVG(l, sinkOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(l, sinkOpts...)
	default:
		return nil, fmt.Errorf("unsupported bracket format: %s", format)
	}
}

func renderNodelink(ctx context.Context, format string, b *bracket.Bracket, page layout.Page, style styles.Style) ([]byte, error) {
	dot := toDOT(b, style)
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot, page)
	default:
		return nil, fmt.Errorf("unsupported nodelink format: %s", format)
	}
}

func toDOT(b *bracket.Bracket, style styles.Style) string {
	return nodelink.ToDOT(b, nodelink.Options{Style: style, RoundClusters: true})
}
