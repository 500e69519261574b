package layout

import (
	"github.com/matzehuels/bracketgen/pkg/bracket"
)

// DefaultTitle is the page heading used when no title is given.
const DefaultTitle = "Tournament Bracket"

// Font sizes in points.
const (
	TitleFontSize    = 16
	RoundFontSize    = 6.5
	SlotFontSize     = 6
	ChampionFontSize = 12
)

// Horizontal offsets inside a column.
const (
	boxInset       = 2  // box left edge from the column origin
	boxTrim        = 12 // column width minus box width
	textInset      = 6  // slot text from the column origin
	connectorStart = 10 // connector start, measured back from the column's right edge
	connectorReach = 2  // connector end, past the column's right edge
	roundLabelRise = 8  // round label baseline above the top margin
	titleDrop      = 36 // title baseline below the page top
	championRise   = 6  // champion baseline above the bottom margin
)

// Layout is the complete page geometry of a bracket.
type Layout struct {
	Page     Page     `json:"page"`
	Title    Text     `json:"title"`
	Columns  []Column `json:"columns"`
	Champion *Text    `json:"champion,omitempty"`
}

// Text is a positioned string. X is the left edge unless Centered is set,
// in which case X is the horizontal center. Y is the baseline.
type Text struct {
	Value    string  `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Centered bool    `json:"centered,omitempty"`
}

// Column holds the geometry of one round.
type Column struct {
	Round       int          `json:"round"`
	Label       Text         `json:"label"`
	X           float64      `json:"x"`
	Width       float64      `json:"width"`
	BlockHeight float64      `json:"block_height"`
	TotalHeight float64      `json:"total_height"`
	YStart      float64      `json:"y_start"`
	Matchups    []MatchupBox `json:"matchups"`
}

// MatchupBox is one matchup: two stacked slots and an optional connector.
type MatchupBox struct {
	Index     int        `json:"index"`
	Top       float64    `json:"top"`
	MidY      float64    `json:"mid_y"`
	Slots     [2]SlotBox `json:"slots"`
	Connector *Connector `json:"connector,omitempty"`
}

// SlotBox is one label box. (X, Y) is the bottom-left corner.
type SlotBox struct {
	Label     string  `json:"label,omitempty"`
	Text      Text    `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Highlight bool    `json:"highlight,omitempty"`
}

// Connector is a horizontal line leaving a matchup toward the next round.
// It is not bent toward the next round's box.
type Connector struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
	Y  float64 `json:"y"`
}

// Option configures [Build].
type Option func(*config)

type config struct {
	page  Page
	title string
}

// WithPage sets the page geometry (default [Letter]).
func WithPage(p Page) Option { return func(c *config) { c.page = p } }

// WithTitle sets the page heading (default [DefaultTitle]).
func WithTitle(t string) Option {
	return func(c *config) {
		if t != "" {
			c.title = t
		}
	}
}

// Build computes the page geometry of b. It never fails and never mutates b.
func Build(b *bracket.Bracket, opts ...Option) Layout {
	cfg := config{page: Letter(), title: DefaultTitle}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := cfg.page

	l := Layout{
		Page:    p,
		Title:   Text{Value: cfg.title, X: p.Width / 2, Y: p.Height - titleDrop, Size: TitleFontSize, Centered: true},
		Columns: make([]Column, len(b.Rounds)),
	}

	rounds := len(b.Rounds)
	for ri, r := range b.Rounds {
		l.Columns[ri] = buildColumn(p, ri, rounds, r)
	}

	if champ := b.Champion(); champ != "" {
		l.Champion = &Text{
			Value:    "Champion:  " + champ,
			X:        p.Width / 2,
			Y:        p.MarginBottom + championRise,
			Size:     ChampionFontSize,
			Centered: true,
		}
	}
	return l
}

func buildColumn(p Page, ri, rounds int, r bracket.Round) Column {
	n := len(r.Matchups)
	x := p.ColumnX(ri, rounds)
	w := p.ColumnWidth(rounds)
	last := ri == rounds-1

	col := Column{
		Round: ri,
		Label: Text{
			Value: bracket.RoundName(ri, rounds),
			X:     x + boxInset,
			Y:     p.Height - p.MarginTop + roundLabelRise,
			Size:  RoundFontSize,
		},
		X:           x,
		Width:       w,
		BlockHeight: p.BlockHeight(ri),
		TotalHeight: p.TotalHeight(ri, n),
		YStart:      p.YStart(ri, n),
		Matchups:    make([]MatchupBox, n),
	}

	for mi, m := range r.Matchups {
		top := p.MatchupTop(ri, mi, n)
		box := MatchupBox{Index: mi, Top: top, MidY: p.MidY(top)}
		for s, label := range [2]string{m.Top, m.Bottom} {
			box.Slots[s] = buildSlot(p, x, w, p.SlotTop(top, s), label, m)
		}
		if !last {
			box.Connector = &Connector{X1: x + w - connectorStart, X2: x + w + connectorReach, Y: box.MidY}
		}
		col.Matchups[mi] = box
	}
	return col
}

func buildSlot(p Page, x, w, slotTop float64, label string, m bracket.Matchup) SlotBox {
	bottom := slotTop - p.SlotHeight
	return SlotBox{
		Label: label,
		Text: Text{
			Value: DisplayText(label),
			X:     x + textInset,
			Y:     bottom + textRise(p.SlotHeight, SlotFontSize),
			Size:  SlotFontSize,
		},
		X:         x + boxInset,
		Y:         bottom,
		W:         w - boxTrim,
		H:         p.SlotHeight,
		Highlight: m.IsWinner(label),
	}
}

// textRise centers the cap height of a size-pt font in a box of height h.
func textRise(h, size float64) float64 {
	return max((h-0.72*size)/2, 0)
}

// Highlights counts highlighted slots across the layout.
func (l Layout) Highlights() int {
	n := 0
	for _, c := range l.Columns {
		for _, m := range c.Matchups {
			for _, s := range m.Slots {
				if s.Highlight {
					n++
				}
			}
		}
	}
	return n
}
