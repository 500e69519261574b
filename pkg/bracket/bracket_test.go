package bracket

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/bracketgen/pkg/errors"
)

// teamNames returns n distinct generated team names.
func teamNames(n int) []string {
	f := gofakeit.New(7)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s %s #%d", f.City(), f.Animal(), i+1)
	}
	return names
}

func TestFromTeamsShape(t *testing.T) {
	b := FromTeams(teamNames(64))

	if got, want := b.MatchupCounts(), []int{32, 16, 8, 4, 2, 1}; !slices.Equal(got, want) {
		t.Fatalf("MatchupCounts() = %v, want %v", got, want)
	}
	for mi, m := range b.Rounds[0].Matchups {
		if m.Top == "" || m.Bottom == "" {
			t.Errorf("round 0 matchup %d has absent slot: %+v", mi, m)
		}
		if m.Winner != "" {
			t.Errorf("round 0 matchup %d has winner %q", mi, m.Winner)
		}
	}
	for ri, r := range b.Rounds[1:] {
		for mi, m := range r.Matchups {
			if m != (Matchup{}) {
				t.Errorf("round %d matchup %d = %+v, want empty", ri+1, mi, m)
			}
		}
	}
}

func TestFromTeamsIsPermutation(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"exact", 64},
		{"short", 10},
		{"long", 100},
		{"empty", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams := teamNames(tt.count)
			b := FromTeams(teams, WithSeed(99))

			got := b.Labels()
			want := PadTeams(teams, Size)
			slices.Sort(got)
			slices.Sort(want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round 0 labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromTeamsTruncates(t *testing.T) {
	teams := teamNames(80)
	b := FromTeams(teams)

	labels := b.Labels()
	for _, dropped := range teams[64:] {
		if slices.Contains(labels, dropped) {
			t.Errorf("label %q beyond position 64 should be dropped", dropped)
		}
	}
	for _, l := range labels {
		if IsBye(l) {
			t.Errorf("unexpected placeholder %q in full list", l)
		}
	}
}

func TestPadTeams(t *testing.T) {
	teams := []string{"Duke", "Gonzaga", "Kansas"}
	padded := PadTeams(teams, Size)

	if len(padded) != Size {
		t.Fatalf("len = %d, want %d", len(padded), Size)
	}
	if !slices.Equal(padded[:3], teams) {
		t.Errorf("padded[:3] = %v, want %v", padded[:3], teams)
	}
	byes := 0
	for i, l := range padded[3:] {
		want := fmt.Sprintf("BYE %d", i+4)
		if l != want {
			t.Errorf("padded[%d] = %q, want %q", i+3, l, want)
		}
		byes++
	}
	if byes != Size-len(teams) {
		t.Errorf("placeholders = %d, want %d", byes, Size-len(teams))
	}
	if len(teams) != 3 {
		t.Error("PadTeams modified its input")
	}
}

func TestFromTeamsTwoNames(t *testing.T) {
	b := FromTeams([]string{"Alpha", "Beta"})

	real, byes := 0, 0
	for _, l := range b.Labels() {
		switch {
		case IsBye(l):
			byes++
		case l == "Alpha" || l == "Beta":
			real++
		default:
			t.Errorf("unexpected label %q", l)
		}
	}
	if real != 2 || byes != 62 {
		t.Errorf("real = %d, byes = %d, want 2 and 62", real, byes)
	}
}

func TestFromTeamsWithoutShuffle(t *testing.T) {
	b := FromTeams([]string{"A", "B", "C", "D"}, WithoutShuffle(), WithSize(4))

	want := []Round{
		{Matchups: []Matchup{{Top: "A", Bottom: "B"}, {Top: "C", Bottom: "D"}}},
		{Matchups: []Matchup{{}}},
	}
	if diff := cmp.Diff(want, b.Rounds); diff != "" {
		t.Errorf("rounds mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTeamsSeedIsReproducible(t *testing.T) {
	teams := teamNames(64)
	a := FromTeams(teams, WithSeed(42))
	b := FromTeams(teams, WithSeed(42))
	if diff := cmp.Diff(a.Labels(), b.Labels()); diff != "" {
		t.Errorf("same seed produced different orders:\n%s", diff)
	}
}

func TestFromTeamsInjectedShuffler(t *testing.T) {
	teams := teamNames(64)
	r := rand.New(rand.NewPCG(1, 2))
	b := FromTeams(teams, WithShuffler(r))
	if len(b.Labels()) != 64 {
		t.Fatalf("labels = %d, want 64", len(b.Labels()))
	}
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {8, 8}, {9, 16}, {63, 64}, {64, 64}, {100, 64},
	}
	for _, tt := range tests {
		if got := NextPow2(tt.in); got != tt.want {
			t.Errorf("NextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWithSizeRoundCounts(t *testing.T) {
	tests := []struct {
		size int
		want []int
	}{
		{2, []int{1}},
		{4, []int{2, 1}},
		{16, []int{8, 4, 2, 1}},
		{64, []int{32, 16, 8, 4, 2, 1}},
	}
	for _, tt := range tests {
		b := FromTeams(nil, WithSize(tt.size))
		if got := b.MatchupCounts(); !slices.Equal(got, tt.want) {
			t.Errorf("size %d: MatchupCounts() = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestRoundName(t *testing.T) {
	tests := []struct {
		i, n int
		want string
	}{
		{0, 6, "Round of 64"},
		{2, 6, "Sweet 16"},
		{5, 6, "Championship"},
		{6, 7, "Round 7"},
		{0, 2, "Final Four"},
		{1, 2, "Championship"},
		{0, 4, "Elite 8"},
	}
	for _, tt := range tests {
		if got := RoundName(tt.i, tt.n); got != tt.want {
			t.Errorf("RoundName(%d, %d) = %q, want %q", tt.i, tt.n, got, tt.want)
		}
	}
}

func strp(s string) *string { return &s }

func TestFromPicksRoundTrip(t *testing.T) {
	first := []MatchupRecord{
		{Top: strp("Duke"), Bottom: strp("Vermont"), Winner: strp("Duke")},
		{Top: strp("UCLA"), Bottom: strp("Iona")},
	}
	second := []MatchupRecord{{Top: strp("Duke")}}
	picks := Picks{{Matchups: &first}, {Matchups: &second}}

	b, err := FromPicks(picks)
	if err != nil {
		t.Fatalf("FromPicks() error: %v", err)
	}

	want := []Round{
		{Matchups: []Matchup{{Top: "Duke", Bottom: "Vermont", Winner: "Duke"}, {Top: "UCLA", Bottom: "Iona"}}},
		{Matchups: []Matchup{{Top: "Duke"}}},
	}
	if diff := cmp.Diff(want, b.Rounds); diff != "" {
		t.Errorf("rounds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(picks, b.Picks()); diff != "" {
		t.Errorf("Picks() round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromPicksMissingMatchups(t *testing.T) {
	empty := []MatchupRecord{}
	picks := Picks{{Matchups: &empty}, {}}

	_, err := FromPicks(picks)
	if !errs.Is(err, errs.ErrCodeInvalidStructure) {
		t.Fatalf("FromPicks() error = %v, want structure error", err)
	}
	if !strings.Contains(err.Error(), "round 1") {
		t.Errorf("error %q should name round 1", err)
	}
}

func TestFromPicksKeepsInconsistentWinner(t *testing.T) {
	ms := []MatchupRecord{{Top: strp("A"), Bottom: strp("B"), Winner: strp("Z")}}
	b, err := FromPicks(Picks{{Matchups: &ms}})
	if err != nil {
		t.Fatalf("FromPicks() error: %v", err)
	}
	m := b.Rounds[0].Matchups[0]
	if m.Winner != "Z" {
		t.Errorf("Winner = %q, want Z kept as-is", m.Winner)
	}
	if m.IsWinner(m.Top) || m.IsWinner(m.Bottom) {
		t.Error("neither slot should count as winner")
	}
}

func TestIsWinnerIgnoresAbsentMarkers(t *testing.T) {
	tests := []struct {
		name  string
		m     Matchup
		label string
		want  bool
	}{
		{"recorded winner", Matchup{Top: "A", Bottom: "B", Winner: "A"}, "A", true},
		{"loser", Matchup{Top: "A", Bottom: "B", Winner: "A"}, "B", false},
		{"empty label", Matchup{Winner: ""}, "", false},
		{"dash label picked as winner", Matchup{Top: AbsentLabel, Bottom: "B", Winner: AbsentLabel}, AbsentLabel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsWinner(tt.label); got != tt.want {
				t.Errorf("IsWinner(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestChampion(t *testing.T) {
	b := FromTeams(teamNames(64), WithoutShuffle())
	if got := b.Champion(); got != "" {
		t.Errorf("Champion() = %q, want empty", got)
	}
	b.Rounds[5].Matchups[0] = Matchup{Top: "A", Bottom: "B", Winner: "B"}
	if got := b.Champion(); got != "B" {
		t.Errorf("Champion() = %q, want B", got)
	}
	if got := (&Bracket{}).Champion(); got != "" {
		t.Errorf("empty bracket Champion() = %q", got)
	}
}

func TestClone(t *testing.T) {
	b := FromTeams([]string{"A", "B"}, WithoutShuffle())
	c := b.Clone()
	c.Rounds[0].Matchups[0].Winner = "A"
	if b.Rounds[0].Matchups[0].Winner != "" {
		t.Error("Clone shares matchup storage with the original")
	}
}

func TestParseSlot(t *testing.T) {
	if s, ok := ParseSlot("Bottom"); !ok || s != SlotBottom {
		t.Errorf("ParseSlot(Bottom) = %v, %v", s, ok)
	}
	if _, ok := ParseSlot("middle"); ok {
		t.Error("ParseSlot(middle) should fail")
	}
	if SlotTop.String() != "top" || SlotBottom.String() != "bottom" {
		t.Error("Slot.String() mismatch")
	}
}
