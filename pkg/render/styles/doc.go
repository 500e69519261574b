// Package styles defines the visual styles used to paint a bracket.
//
// A [Style] is plain data: a [Palette] of hex colors, stroke widths and a
// font family. Every sink in [render/sink] paints the same layout with the
// same style, so a PDF, an SVG and a PNG of one bracket look alike.
//
// Two styles are registered:
//
//   - [Classic]: the default; green winners, indigo headings
//   - [Ink]: grayscale, for monochrome printers
//
// Use [Lookup] to resolve a style by name from configuration or flags:
//
//	s, err := styles.Lookup("ink")
//
// [render/sink]: github.com/matzehuels/bracketgen/pkg/render/sink
package styles
