package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/bracketgen/pkg/bracket"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func fullBracket() *bracket.Bracket {
	teams := make([]string, bracket.Size)
	for i := range teams {
		teams[i] = "Team " + string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	return bracket.FromTeams(teams, bracket.WithoutShuffle())
}

func TestLetter(t *testing.T) {
	p := Letter()
	if p.Width != 792 || p.Height != 612 {
		t.Errorf("page = %vx%v, want 792x612", p.Width, p.Height)
	}
	if got := p.UsableHeight(); got != 532 {
		t.Errorf("UsableHeight() = %v, want 532", got)
	}
	if got := p.TotalHeight(0, 32); got > p.UsableHeight() {
		t.Errorf("first round height %v exceeds usable height %v", got, p.UsableHeight())
	}
}

func TestGeometryFormulas(t *testing.T) {
	p := Letter()
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"column width", p.ColumnWidth(6), 728.0 / 6},
		{"column x round 3", p.ColumnX(3, 6), 32 + 3*728.0/6},
		{"matchup height", p.MatchupHeight(), 16},
		{"block height round 0", p.BlockHeight(0), 16},
		{"block height round 5", p.BlockHeight(5), 512},
		{"total height round 0", p.TotalHeight(0, 32), 512},
		{"y start", p.YStart(0, 32), 546},
		{"matchup top round 0 m1", p.MatchupTop(0, 1, 32), 530},
		{"matchup top round 1 m0", p.MatchupTop(1, 0, 16), 538},
		{"mid y", p.MidY(546), 538},
		{"slot top bottom", p.SlotTop(546, 1), 537.5},
		{"flip", p.FlipY(546), 66},
	}
	for _, tt := range tests {
		if !approx(tt.got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestTotalHeightRoundInvariant(t *testing.T) {
	l := Build(fullBracket())

	if len(l.Columns) != 6 {
		t.Fatalf("columns = %d, want 6", len(l.Columns))
	}
	base := l.Page.MatchupHeight()
	want := l.Columns[0].TotalHeight
	for i, c := range l.Columns {
		n := len(c.Matchups)
		if expect := base * math.Pow(2, float64(i)) * float64(n); !approx(c.TotalHeight, expect) {
			t.Errorf("round %d TotalHeight = %v, want %v", i, c.TotalHeight, expect)
		}
		if !approx(c.TotalHeight, want) {
			t.Errorf("round %d TotalHeight = %v, want %v (round-invariant)", i, c.TotalHeight, want)
		}
		if !approx(c.YStart, l.Columns[0].YStart) {
			t.Errorf("round %d YStart = %v, want %v", i, c.YStart, l.Columns[0].YStart)
		}
	}
}

func TestSlotsStayOnPage(t *testing.T) {
	l := Build(fullBracket())
	p := l.Page
	for _, c := range l.Columns {
		for _, m := range c.Matchups {
			for s, slot := range m.Slots {
				if slot.Y < p.MarginBottom || slot.Y+slot.H > p.Height-p.MarginTop {
					t.Errorf("round %d matchup %d slot %d spans [%v,%v], outside margins",
						c.Round, m.Index, s, slot.Y, slot.Y+slot.H)
				}
				if slot.X < p.MarginX || slot.X+slot.W > p.Width-p.MarginX {
					t.Errorf("round %d matchup %d slot %d x [%v,%v] outside margins",
						c.Round, m.Index, s, slot.X, slot.X+slot.W)
				}
			}
		}
	}
}

func TestMatchupCentering(t *testing.T) {
	l := Build(fullBracket())
	// Each later matchup sits midway between the two matchups feeding it.
	for ri := 1; ri < len(l.Columns); ri++ {
		prev := l.Columns[ri-1].Matchups
		for mi, m := range l.Columns[ri].Matchups {
			want := (prev[2*mi].MidY + prev[2*mi+1].MidY) / 2
			if !approx(m.MidY, want) {
				t.Errorf("round %d matchup %d MidY = %v, want %v", ri, mi, m.MidY, want)
			}
		}
	}
}

func TestConnectors(t *testing.T) {
	l := Build(fullBracket())
	for i, c := range l.Columns {
		last := i == len(l.Columns)-1
		for _, m := range c.Matchups {
			if last {
				if m.Connector != nil {
					t.Errorf("final round has connector %+v", m.Connector)
				}
				continue
			}
			if m.Connector == nil {
				t.Fatalf("round %d matchup %d has no connector", i, m.Index)
			}
			cn := m.Connector
			if !approx(cn.X1, c.X+c.Width-10) || !approx(cn.X2, c.X+c.Width+2) || !approx(cn.Y, m.MidY) {
				t.Errorf("round %d matchup %d connector = %+v", i, m.Index, *cn)
			}
		}
	}
}

func TestRoundLabels(t *testing.T) {
	l := Build(fullBracket())
	want := []string{"Round of 64", "Round of 32", "Sweet 16", "Elite 8", "Final Four", "Championship"}
	for i, c := range l.Columns {
		if c.Label.Value != want[i] {
			t.Errorf("round %d label = %q, want %q", i, c.Label.Value, want[i])
		}
		if !approx(c.Label.Y, 612-56+8) || !approx(c.Label.X, c.X+2) {
			t.Errorf("round %d label at (%v,%v)", i, c.Label.X, c.Label.Y)
		}
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		m    bracket.Matchup
		want [2]bool
	}{
		{"undecided", bracket.Matchup{Top: "A", Bottom: "B"}, [2]bool{false, false}},
		{"top wins", bracket.Matchup{Top: "A", Bottom: "B", Winner: "A"}, [2]bool{true, false}},
		{"bottom wins", bracket.Matchup{Top: "A", Bottom: "B", Winner: "B"}, [2]bool{false, true}},
		{"inconsistent winner", bracket.Matchup{Top: "A", Bottom: "B", Winner: "Z"}, [2]bool{false, false}},
		{"absent slots", bracket.Matchup{}, [2]bool{false, false}},
		{"winner with absent opponent", bracket.Matchup{Top: "A", Winner: "A"}, [2]bool{true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &bracket.Bracket{Rounds: []bracket.Round{{Matchups: []bracket.Matchup{tt.m}}}}
			l := Build(b)
			slots := l.Columns[0].Matchups[0].Slots
			for s := range slots {
				if slots[s].Highlight != tt.want[s] {
					t.Errorf("slot %d Highlight = %v, want %v", s, slots[s].Highlight, tt.want[s])
				}
			}
		})
	}
}

func TestNoPicksNoHighlights(t *testing.T) {
	l := Build(fullBracket())
	if n := l.Highlights(); n != 0 {
		t.Errorf("Highlights() = %d, want 0", n)
	}
	if l.Champion != nil {
		t.Errorf("Champion = %+v, want nil", l.Champion)
	}
	for _, m := range l.Columns[0].Matchups {
		for _, s := range m.Slots {
			if s.Text.Value == AbsentText {
				t.Errorf("round 0 matchup %d has absent slot", m.Index)
			}
		}
	}
	for _, m := range l.Columns[1].Matchups {
		for _, s := range m.Slots {
			if s.Text.Value != AbsentText {
				t.Errorf("round 1 slot text = %q, want %q", s.Text.Value, AbsentText)
			}
		}
	}
}

func TestChampionCallout(t *testing.T) {
	b := fullBracket()
	b.Rounds[5].Matchups[0] = bracket.Matchup{Top: "Duke", Bottom: "UConn", Winner: "UConn"}

	l := Build(b, WithTitle("Hall of Fame"))

	if l.Champion == nil {
		t.Fatal("Champion callout missing")
	}
	if l.Champion.Value != "Champion:  UConn" {
		t.Errorf("Champion = %q", l.Champion.Value)
	}
	if !l.Champion.Centered || !approx(l.Champion.X, 396) || !approx(l.Champion.Y, 30) {
		t.Errorf("Champion at (%v,%v) centered=%v", l.Champion.X, l.Champion.Y, l.Champion.Centered)
	}
	if l.Title.Value != "Hall of Fame" || !approx(l.Title.Y, 576) {
		t.Errorf("Title = %+v", l.Title)
	}
}

func TestDisplayText(t *testing.T) {
	long := strings.Repeat("x", 30)
	tests := []struct {
		in, want string
	}{
		{"", "—"},
		{"Duke", "Duke"},
		{strings.Repeat("y", 22), strings.Repeat("y", 22)},
		{long, strings.Repeat("x", 22) + "…"},
		{strings.Repeat("é", 23), strings.Repeat("é", 22) + "…"},
	}
	for _, tt := range tests {
		if got := DisplayText(tt.in); got != tt.want {
			t.Errorf("DisplayText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCompactBracket(t *testing.T) {
	b := bracket.FromTeams([]string{"A", "B", "C", "D"}, bracket.WithSize(4))
	l := Build(b)
	if len(l.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(l.Columns))
	}
	if got := l.Columns[1].Label.Value; got != "Championship" {
		t.Errorf("last label = %q, want Championship", got)
	}
	if !approx(l.Columns[1].Width, 728.0/2) {
		t.Errorf("width = %v, want %v", l.Columns[1].Width, 728.0/2)
	}
}

func TestBuildDoesNotMutate(t *testing.T) {
	b := fullBracket()
	before := b.Clone()
	Build(b)
	for ri := range b.Rounds {
		for mi := range b.Rounds[ri].Matchups {
			if b.Rounds[ri].Matchups[mi] != before.Rounds[ri].Matchups[mi] {
				t.Fatalf("Build mutated round %d matchup %d", ri, mi)
			}
		}
	}
}
