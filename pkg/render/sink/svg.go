package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/bracketgen/pkg/fonts"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
)

// RenderSVG paints l as a standalone SVG document, one user unit per point.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	w, h := l.Page.Width, l.Page.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(l.Title.Value))
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.style.Palette.Background)

	paint(&svgCanvas{buf: &buf, h: h}, l, r.style)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

type svgCanvas struct {
	buf *bytes.Buffer
	h   float64
}

func (c *svgCanvas) rect(x, y, w, h float64, stroke string, width float64) {
	fmt.Fprintf(c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, c.h-(y+h), w, h, stroke, width)
}

func (c *svgCanvas) line(x1, y1, x2, y2 float64, stroke string, width float64) {
	fmt.Fprintf(c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, c.h-y1, x2, c.h-y2, stroke, width)
}

func (c *svgCanvas) text(t layout.Text, color string, bold bool) {
	attrs := ""
	if t.Centered {
		attrs += ` text-anchor="middle"`
	}
	if bold {
		attrs += ` font-weight="bold"`
	}
	fmt.Fprintf(c.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s"%s>%s</text>`+"\n",
		t.X, c.h-t.Y, fonts.FallbackFontFamily, t.Size, color, attrs, html.EscapeString(t.Value))
}
