package layout

import "math"

// Page describes the physical page and the fixed slot metrics.
// All values are in PDF points with the origin at the bottom-left corner.
type Page struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginX      float64 `json:"margin_x"`
	MarginTop    float64 `json:"margin_top"`
	MarginBottom float64 `json:"margin_bottom"`
	SlotHeight   float64 `json:"slot_height"`
	SlotGap      float64 `json:"slot_gap"`
}

// Letter returns a landscape US Letter page (11 x 8.5 in).
//
// The slot metrics are sized so that the 32 first-round matchups of a full
// bracket fit inside the usable height: 32 x (2 x 7.5 + 1) = 512 <= 532.
func Letter() Page {
	return Page{
		Width:        792,
		Height:       612,
		MarginX:      32,
		MarginTop:    56,
		MarginBottom: 24,
		SlotHeight:   7.5,
		SlotGap:      1,
	}
}

// UsableWidth is the horizontal space between the side margins.
func (p Page) UsableWidth() float64 { return p.Width - 2*p.MarginX }

// UsableHeight is the vertical space between the top and bottom margins.
func (p Page) UsableHeight() float64 { return p.Height - p.MarginTop - p.MarginBottom }

// ColumnWidth divides the usable width into one column per round.
func (p Page) ColumnWidth(rounds int) float64 {
	if rounds <= 0 {
		return p.UsableWidth()
	}
	return p.UsableWidth() / float64(rounds)
}

// ColumnX returns the x origin of round i.
func (p Page) ColumnX(i, rounds int) float64 {
	return p.MarginX + float64(i)*p.ColumnWidth(rounds)
}

// MatchupHeight is the height of one two-slot box.
func (p Page) MatchupHeight() float64 { return 2*p.SlotHeight + p.SlotGap }

// BlockHeight is the vertical span allotted to one matchup of round i.
// It doubles every round.
func (p Page) BlockHeight(i int) float64 { return math.Ldexp(p.MatchupHeight(), i) }

// TotalHeight is the content height of round i holding n matchups.
func (p Page) TotalHeight(i, n int) float64 { return p.BlockHeight(i) * float64(n) }

// YStart is the top edge of round i's content, centered in the usable height.
func (p Page) YStart(i, n int) float64 {
	return p.Height - p.MarginTop - (p.UsableHeight()-p.TotalHeight(i, n))/2
}

// MatchupTop returns the top edge of matchup m in round i (n matchups). The
// two-slot box is centered inside its block.
func (p Page) MatchupTop(i, m, n int) float64 {
	block := p.BlockHeight(i)
	return p.YStart(i, n) - float64(m)*block - (block-p.MatchupHeight())/2
}

// SlotTop returns the top edge of slot s (0 top, 1 bottom) of a matchup
// whose box starts at top.
func (p Page) SlotTop(top float64, s int) float64 {
	return top - float64(s)*(p.SlotHeight+p.SlotGap)
}

// MidY is the vertical midpoint of a matchup, between its two slots.
func (p Page) MidY(top float64) float64 { return top - p.SlotHeight - p.SlotGap/2 }

// FlipY converts a y-up coordinate into a y-down coordinate on this page.
func (p Page) FlipY(y float64) float64 { return p.Height - y }
