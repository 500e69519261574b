// Package render groups the bracket rendering packages and the format
// conversion they share.
//
// # Overview
//
//   - [layout]: Pure page geometry for the printed bracket
//   - [styles]: Palettes and stroke widths
//   - [sink]: PDF, SVG, PNG and JSON output for a layout
//   - [nodelink]: The bracket as a Graphviz tree
//
// # Format Conversion
//
// [ToPDF] wraps a raster image in a single PDF page. The node-link view
// uses it, since Graphviz itself has no PDF backend in-process:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//	pdf, err := render.ToPDF(png, 792, 612)
//
// [layout]: github.com/matzehuels/bracketgen/pkg/render/layout
// [styles]: github.com/matzehuels/bracketgen/pkg/render/styles
// [sink]: github.com/matzehuels/bracketgen/pkg/render/sink
// [nodelink]: github.com/matzehuels/bracketgen/pkg/render/nodelink
package render
