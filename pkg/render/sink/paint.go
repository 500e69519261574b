package sink

import (
	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
	"github.com/matzehuels/bracketgen/pkg/render/styles"
)

// canvas is the drawing surface shared by every sink. Coordinates are
// layout coordinates (points, y-up); each canvas flips as needed.
type canvas interface {
	rect(x, y, w, h float64, stroke string, width float64)
	line(x1, y1, x2, y2 float64, stroke string, width float64)
	text(t layout.Text, color string, bold bool)
}

// paint draws l onto c in a fixed order: title, round labels, slots,
// connectors, champion.
func paint(c canvas, l layout.Layout, s styles.Style) {
	pal := s.Palette

	c.text(l.Title, pal.Accent, true)

	for _, col := range l.Columns {
		c.text(col.Label, pal.Accent, true)

		for _, m := range col.Matchups {
			for _, slot := range m.Slots {
				stroke, width, color := s.SlotColors(slot.Highlight)
				if !slot.Highlight && (slot.Label == "" || bracket.IsBye(slot.Label)) {
					color = pal.Seed
				}
				c.rect(slot.X, slot.Y, slot.W, slot.H, stroke, width)
				c.text(slot.Text, color, slot.Highlight)
			}
		}
		for _, m := range col.Matchups {
			if cn := m.Connector; cn != nil {
				c.line(cn.X1, cn.Y, cn.X2, cn.Y, pal.Line, s.ConnectorStroke)
			}
		}
	}

	if l.Champion != nil {
		c.text(*l.Champion, pal.Winner, true)
	}
}
