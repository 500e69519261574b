package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// pageMargin is the white border around an embedded image, in points.
const pageMargin = 24

// ToPDF places a PNG image on a single page of the given size (points),
// scaled to fit inside the margins and centered.
func ToPDF(png []byte, width, height float64) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader("image", opts, bytes.NewReader(png))
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("read png: %w", err)
	}

	w, h := fit(info.Width(), info.Height(), width-2*pageMargin, height-2*pageMargin)
	pdf.ImageOptions("image", (width-w)/2, (height-h)/2, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales (w, h) to the largest size inside (maxW, maxH) that keeps
// the aspect ratio.
func fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	s := min(maxW/w, maxH/h)
	return w * s, h * s
}
