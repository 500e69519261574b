// Package sink provides output format renderers for bracket layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// This package provides renderers for:
//
//   - PDF: Single printable page, drawn natively with go-pdf/fpdf
//   - SVG: Scalable vector graphics
//   - PNG: Raster image drawn with fogleman/gg
//   - JSON: The raw layout geometry
//
// Every vector and raster sink walks the layout through one shared painting
// routine, so the formats differ only in how a rectangle, a line or a string
// reaches the surface.
//
// # PDF Output
//
// [RenderPDF] uses the Helvetica core font with cp1252 encoding, which
// covers the absent-slot dash and the truncation ellipsis:
//
//	pdf, err := sink.RenderPDF(l)
//	pdf, err := sink.RenderPDF(l, sink.WithCompression(false))
//
// # PNG Output
//
// [RenderPNG] embeds the Go fonts and scales every coordinate by the pixel
// density (default [DefaultScale]):
//
//	png, err := sink.RenderPNG(l, sink.WithScale(3))
//
// # Options
//
//   - [WithStyle]: Visual style ([styles.Classic] or [styles.Ink])
//   - [WithCompression]: PDF stream compression
//   - [WithScale]: PNG pixels per point
//   - [WithAuthor]: PDF author metadata
//
// [styles.Classic]: github.com/matzehuels/bracketgen/pkg/render/styles.Classic
// [styles.Ink]: github.com/matzehuels/bracketgen/pkg/render/styles.Ink
package sink
