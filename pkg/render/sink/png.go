package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/bracketgen/pkg/fonts"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
)

// RenderPNG rasterizes l at the configured scale (pixels per point).
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := r.scale

	dc := gg.NewContext(int(math.Ceil(l.Page.Width*s)), int(math.Ceil(l.Page.Height*s)))
	dc.SetHexColor(r.style.Palette.Background)
	dc.Clear()

	c := &pngCanvas{dc: dc, h: l.Page.Height, s: s, faces: map[faceKey]font.Face{}}
	paint(c, l, r.style)
	if c.err != nil {
		return nil, c.err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	bold bool
	size float64
}

// pngCanvas scales coordinates by hand instead of using a context
// transform so that line widths and text anchors stay exact.
type pngCanvas struct {
	dc    *gg.Context
	h, s  float64
	faces map[faceKey]font.Face
	err   error
}

func (c *pngCanvas) rect(x, y, w, h float64, stroke string, width float64) {
	c.dc.DrawRectangle(x*c.s, (c.h-(y+h))*c.s, w*c.s, h*c.s)
	c.stroke(stroke, width)
}

func (c *pngCanvas) line(x1, y1, x2, y2 float64, stroke string, width float64) {
	c.dc.DrawLine(x1*c.s, (c.h-y1)*c.s, x2*c.s, (c.h-y2)*c.s)
	c.stroke(stroke, width)
}

func (c *pngCanvas) stroke(color string, width float64) {
	c.dc.SetHexColor(color)
	c.dc.SetLineWidth(width * c.s)
	c.dc.Stroke()
}

func (c *pngCanvas) text(t layout.Text, color string, bold bool) {
	face, err := c.face(bold, t.Size*c.s)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return
	}
	c.dc.SetFontFace(face)
	c.dc.SetHexColor(color)

	x, y := t.X*c.s, (c.h-t.Y)*c.s
	if t.Centered {
		c.dc.DrawStringAnchored(t.Value, x, y, 0.5, 0)
		return
	}
	c.dc.DrawString(t.Value, x, y)
}

func (c *pngCanvas) face(bold bool, size float64) (font.Face, error) {
	k := faceKey{bold, size}
	if f, ok := c.faces[k]; ok {
		return f, nil
	}
	f, err := fonts.Face(bold, size)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	c.faces[k] = f
	return f, nil
}
