package sink

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/bracketgen/pkg/buildinfo"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
	"github.com/matzehuels/bracketgen/pkg/render/styles"
)

// pdfFont is a PDF core font, so nothing is embedded.
const pdfFont = "Helvetica"

// RenderPDF paints l as a single-page PDF sized to l.Page.
func RenderPDF(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.Page.Width, Ht: l.Page.Height},
	})
	pdf.SetCompression(r.compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(l.Title.Value, true)
	pdf.SetCreator("bracketgen "+buildinfo.Version, true)
	if r.author != "" {
		pdf.SetAuthor(r.author, true)
	}
	pdf.AddPage()

	c := &pdfCanvas{
		pdf: pdf,
		h:   l.Page.Height,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	if bg := r.style.Palette.Background; bg != "" && bg != "#ffffff" {
		c.fill(bg, l.Page.Width, l.Page.Height)
	}
	paint(c, l, r.style)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfCanvas struct {
	pdf *fpdf.Fpdf
	h   float64
	tr  func(string) string
}

func (c *pdfCanvas) fill(color string, w, h float64) {
	c.pdf.SetFillColor(styles.RGB(color))
	c.pdf.Rect(0, 0, w, h, "F")
}

func (c *pdfCanvas) rect(x, y, w, h float64, stroke string, width float64) {
	c.pdf.SetDrawColor(styles.RGB(stroke))
	c.pdf.SetLineWidth(width)
	c.pdf.Rect(x, c.h-(y+h), w, h, "D")
}

func (c *pdfCanvas) line(x1, y1, x2, y2 float64, stroke string, width float64) {
	c.pdf.SetDrawColor(styles.RGB(stroke))
	c.pdf.SetLineWidth(width)
	c.pdf.Line(x1, c.h-y1, x2, c.h-y2)
}

func (c *pdfCanvas) text(t layout.Text, color string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont(pdfFont, style, t.Size)
	c.pdf.SetTextColor(styles.RGB(color))

	s := c.tr(t.Value)
	x := t.X
	if t.Centered {
		x -= c.pdf.GetStringWidth(s) / 2
	}
	c.pdf.Text(x, c.h-t.Y, s)
}
