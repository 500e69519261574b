// Package pkg holds the libraries behind bracketgen, a renderer for
// single-elimination tournament brackets.
//
// # Layout
//
//  1. [bracket] - The bracket model, builders and pick operations
//  2. [render] - Page geometry, styles and output sinks
//  3. [pipeline] - Orchestration (build → layout → render) with caching
//  4. [io] - Team lists and pick files
//  5. [cache], [config], [errors], [observability] - Supporting infrastructure
//
// # Data Flow
//
//	teams.json / picks.json
//	         ↓
//	    [bracket] (FromTeams or FromPicks)
//	         ↓
//	    [render/layout] (pure page geometry)
//	         ↓
//	    [render/sink] (PDF, SVG, PNG, JSON)
//
// # Quick Start
//
//	b := bracket.FromTeams(teams)
//	l := layout.Build(b, layout.WithTitle("Office Pool"))
//	pdf, err := sink.RenderPDF(l)
//
// Or through the pipeline, which adds caching and multi-format output:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Teams:   teams,
//	    Formats: []string{pipeline.FormatPDF, pipeline.FormatSVG},
//	})
//
// [bracket]: github.com/matzehuels/bracketgen/pkg/bracket
// [render]: github.com/matzehuels/bracketgen/pkg/render
// [render/layout]: github.com/matzehuels/bracketgen/pkg/render/layout
// [render/sink]: github.com/matzehuels/bracketgen/pkg/render/sink
// [pipeline]: github.com/matzehuels/bracketgen/pkg/pipeline
// [io]: github.com/matzehuels/bracketgen/pkg/io
// [cache]: github.com/matzehuels/bracketgen/pkg/cache
// [config]: github.com/matzehuels/bracketgen/pkg/config
// [errors]: github.com/matzehuels/bracketgen/pkg/errors
// [observability]: github.com/matzehuels/bracketgen/pkg/observability
package pkg
