package bracket

import (
	errs "github.com/matzehuels/bracketgen/pkg/errors"
)

// PickResult describes the effect of [Bracket.ApplyPick].
type PickResult struct {
	Changed bool   // false when the picked slot was absent
	Cleared bool   // the slot was already the winner and the pick was removed
	Chosen  string // label of the picked slot
	IsFinal bool   // the pick decided the championship
}

// ApplyPick records the team in slot as the winner of matchup (round, match)
// and advances it into the next round.
//
// Picking the current winner again clears it along with every later slot it
// had advanced into. Picking the other team first clears the previous
// winner's path. Picking an absent slot changes nothing.
func (b *Bracket) ApplyPick(round, match int, slot Slot) (PickResult, error) {
	m, err := b.matchup(round, match)
	if err != nil {
		return PickResult{}, err
	}
	chosen := m.Label(slot)
	if chosen == "" {
		return PickResult{}, nil
	}

	if m.Winner == chosen {
		b.clearFrom(round, match)
		return PickResult{Changed: true, Cleared: true, Chosen: chosen}, nil
	}
	if m.Winner != "" {
		b.clearFrom(round, match)
	}

	b.advance(round, match, chosen)
	return PickResult{Changed: true, Chosen: chosen, IsFinal: round == len(b.Rounds)-1}, nil
}

// ClearFrom removes the winner of matchup (round, match) and recursively
// removes it from every later round it had advanced into.
func (b *Bracket) ClearFrom(round, match int) error {
	if _, err := b.matchup(round, match); err != nil {
		return err
	}
	b.clearFrom(round, match)
	return nil
}

// Reset clears every winner and every slot after the first round, then
// re-applies [Bracket.AutoAdvanceByes].
func (b *Bracket) Reset() {
	for ri := len(b.Rounds) - 1; ri >= 0; ri-- {
		ms := b.Rounds[ri].Matchups
		for mi := range ms {
			ms[mi].Winner = ""
			if ri > 0 {
				ms[mi].Top = ""
				ms[mi].Bottom = ""
			}
		}
	}
	b.AutoAdvanceByes()
}

// AutoAdvanceByes decides first-round matchups involving placeholders: a
// real team facing a BYE advances, and a BYE-vs-BYE matchup advances its
// top entry. Matchups between two real teams are left alone.
func (b *Bracket) AutoAdvanceByes() {
	if len(b.Rounds) == 0 {
		return
	}
	for mi, m := range b.Rounds[0].Matchups {
		topBye, bottomBye := IsBye(m.Top), IsBye(m.Bottom)
		switch {
		case topBye && bottomBye:
			b.advance(0, mi, m.Top)
		case topBye:
			if m.Bottom != "" {
				b.advance(0, mi, m.Bottom)
			}
		case bottomBye:
			if m.Top != "" {
				b.advance(0, mi, m.Top)
			}
		}
	}
}

// advance records label as the winner and writes it into the next round.
func (b *Bracket) advance(round, match int, label string) {
	b.Rounds[round].Matchups[match].Winner = label
	if next, ok := b.nextSlot(round, match); ok {
		next.m.set(next.slot, label)
	}
}

func (b *Bracket) clearFrom(round, match int) {
	m := &b.Rounds[round].Matchups[match]
	old := m.Winner
	m.Winner = ""

	next, ok := b.nextSlot(round, match)
	if !ok || old == "" {
		return
	}
	if next.m.Label(next.slot) == old {
		b.clearFrom(round+1, match/2)
		next.m.set(next.slot, "")
	}
}

type slotRef struct {
	m    *Matchup
	slot Slot
}

// nextSlot returns the slot that the winner of (round, match) feeds.
func (b *Bracket) nextSlot(round, match int) (slotRef, bool) {
	if round+1 >= len(b.Rounds) {
		return slotRef{}, false
	}
	next := b.Rounds[round+1].Matchups
	if match/2 >= len(next) {
		return slotRef{}, false
	}
	slot := SlotTop
	if match%2 == 1 {
		slot = SlotBottom
	}
	return slotRef{m: &next[match/2], slot: slot}, true
}

func (b *Bracket) matchup(round, match int) (*Matchup, error) {
	if round < 0 || round >= len(b.Rounds) {
		return nil, errs.New(errs.ErrCodeInvalidStructure, "round %d out of range [0,%d)", round, len(b.Rounds))
	}
	ms := b.Rounds[round].Matchups
	if match < 0 || match >= len(ms) {
		return nil, errs.New(errs.ErrCodeInvalidStructure, "round %d: matchup %d out of range [0,%d)", round, match, len(ms))
	}
	return &ms[match], nil
}
