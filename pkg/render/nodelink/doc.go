// Package nodelink renders a bracket as a node-link tree.
//
// # Overview
//
// Each matchup becomes a Graphviz node listing its two slots, and each
// node points at the matchup its winner advances into. The layout is left
// to right, so the final sits at the far right like a printed bracket. It
// is an alternative view for checking pick propagation at a glance.
//
// # Usage
//
//	dot := nodelink.ToDOT(b, nodelink.Options{RoundClusters: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot, layout.Letter())
//
// # Options
//
//   - Style: Colors for lines and winners
//   - RoundClusters: Group matchups by round under the round's name
//
// # Dependencies
//
// Rendering runs in-process through [github.com/goccy/go-graphviz]. PDF
// output embeds the PNG rendering in a single page via [render.ToPDF].
//
// [render.ToPDF]: github.com/matzehuels/bracketgen/pkg/render.ToPDF
package nodelink
