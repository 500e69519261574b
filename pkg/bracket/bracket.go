package bracket

import (
	"encoding/json"
	"strings"
)

const (
	// Size is the number of entrants in a full bracket.
	Size = 64

	// NumRounds is the number of rounds in a full bracket.
	NumRounds = 6

	// ByePrefix starts every synthesized placeholder label.
	ByePrefix = "BYE "

	// AbsentLabel is the marker painted for an empty slot. A slot holding
	// it literally is treated as absent too.
	AbsentLabel = "—"
)

// Matchup is one pairing of two slots with an optional recorded winner.
// An empty string means the slot or winner is absent.
type Matchup struct {
	Top    string
	Bottom string
	Winner string
}

// Slot identifies one of the two label positions of a matchup.
type Slot int

const (
	SlotTop Slot = iota
	SlotBottom
)

// String returns "top" or "bottom".
func (s Slot) String() string {
	if s == SlotBottom {
		return "bottom"
	}
	return "top"
}

// ParseSlot converts "top" or "bottom" into a Slot.
func ParseSlot(s string) (Slot, bool) {
	switch strings.ToLower(s) {
	case "top":
		return SlotTop, true
	case "bottom":
		return SlotBottom, true
	}
	return SlotTop, false
}

// Label returns the label held by slot s.
func (m Matchup) Label(s Slot) string {
	if s == SlotBottom {
		return m.Bottom
	}
	return m.Top
}

// IsWinner reports whether label is the recorded winner of m.
// Absent labels, "" or [AbsentLabel], never win.
func (m Matchup) IsWinner(label string) bool {
	return label != "" && label != AbsentLabel && m.Winner == label
}

func (m *Matchup) set(s Slot, label string) {
	if s == SlotBottom {
		m.Bottom = label
	} else {
		m.Top = label
	}
}

// Round is an ordered set of matchups at the same elimination depth.
type Round struct {
	Matchups []Matchup
}

// Bracket is the full ordered sequence of rounds, first round to final.
type Bracket struct {
	Rounds []Round
}

// NumRounds returns the number of rounds.
func (b *Bracket) NumRounds() int { return len(b.Rounds) }

// Entrants returns the number of first-round slots.
func (b *Bracket) Entrants() int {
	if len(b.Rounds) == 0 {
		return 0
	}
	return 2 * len(b.Rounds[0].Matchups)
}

// MatchupCounts returns the number of matchups in each round.
func (b *Bracket) MatchupCounts() []int {
	counts := make([]int, len(b.Rounds))
	for i, r := range b.Rounds {
		counts[i] = len(r.Matchups)
	}
	return counts
}

// Champion returns the winner of the final round's first matchup,
// or "" when the final is undecided or the bracket is empty.
func (b *Bracket) Champion() string {
	if len(b.Rounds) == 0 {
		return ""
	}
	final := b.Rounds[len(b.Rounds)-1]
	if len(final.Matchups) == 0 {
		return ""
	}
	return final.Matchups[0].Winner
}

// Clone returns a deep copy of b.
func (b *Bracket) Clone() *Bracket {
	out := &Bracket{Rounds: make([]Round, len(b.Rounds))}
	for i, r := range b.Rounds {
		out.Rounds[i] = Round{Matchups: append([]Matchup(nil), r.Matchups...)}
	}
	return out
}

// Labels returns every first-round label in slot order.
func (b *Bracket) Labels() []string {
	if len(b.Rounds) == 0 {
		return nil
	}
	labels := make([]string, 0, b.Entrants())
	for _, m := range b.Rounds[0].Matchups {
		labels = append(labels, m.Top, m.Bottom)
	}
	return labels
}

// IsBye reports whether label is a synthesized placeholder.
func IsBye(label string) bool {
	return strings.HasPrefix(label, strings.TrimSpace(ByePrefix))
}

// MarshalJSON encodes the bracket in the picks file format.
func (b *Bracket) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Picks())
}
