package layout_test

import (
	"fmt"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
)

func ExampleBuild() {
	b := bracket.FromTeams([]string{"Duke", "Kansas"}, bracket.WithoutShuffle())
	l := layout.Build(b)

	for _, c := range l.Columns {
		fmt.Printf("%-13s matchups=%-2d block=%-3g total=%g\n",
			c.Label.Value, len(c.Matchups), c.BlockHeight, c.TotalHeight)
	}
	fmt.Println(l.Columns[0].Matchups[0].Slots[0].Text.Value)
	fmt.Println(l.Columns[1].Matchups[0].Slots[0].Text.Value)
	// Output:
	// Round of 64   matchups=32 block=16  total=512
	// Round of 32   matchups=16 block=32  total=512
	// Sweet 16      matchups=8  block=64  total=512
	// Elite 8       matchups=4  block=128 total=512
	// Final Four    matchups=2  block=256 total=512
	// Championship  matchups=1  block=512 total=512
	// Duke
	// —
}

func ExamplePage_MatchupTop() {
	p := layout.Letter()
	fmt.Println(p.YStart(0, 32), p.MatchupTop(0, 1, 32), p.MatchupTop(1, 0, 16))
	// Output:
	// 546 530 538
}
