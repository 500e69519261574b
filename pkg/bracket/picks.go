package bracket

import (
	errs "github.com/matzehuels/bracketgen/pkg/errors"
)

// Picks is the recorded pick structure exchanged with the bracket picker:
// an ordered list of rounds, each with an ordered list of matchups.
//
//	[
//	  {"matchups": [{"top": "Duke", "bottom": "Vermont", "winner": "Duke"}, ...]},
//	  ...
//	]
type Picks []RoundRecord

// RoundRecord is one round of a Picks structure.
// A nil Matchups pointer means the "matchups" field was missing.
type RoundRecord struct {
	Matchups *[]MatchupRecord `json:"matchups" yaml:"matchups"`
}

// MatchupRecord is one matchup of a Picks structure. Every field is optional.
type MatchupRecord struct {
	Top    *string `json:"top" yaml:"top"`
	Bottom *string `json:"bottom" yaml:"bottom"`
	Winner *string `json:"winner" yaml:"winner"`
}

// FromPicks converts a picks structure into a normalized Bracket.
//
// The transform is 1:1: round and matchup order are preserved and missing
// fields become absent. Round counts, matchup counts and winner consistency
// are not validated. A round without a matchups list fails with an
// [errs.ErrCodeInvalidStructure] error.
func FromPicks(p Picks) (*Bracket, error) {
	b := &Bracket{Rounds: make([]Round, len(p))}
	for ri, rr := range p {
		if rr.Matchups == nil {
			return nil, errs.New(errs.ErrCodeInvalidStructure, "round %d: missing matchups list", ri)
		}
		records := *rr.Matchups
		matchups := make([]Matchup, len(records))
		for mi, mr := range records {
			matchups[mi] = Matchup{
				Top:    deref(mr.Top),
				Bottom: deref(mr.Bottom),
				Winner: deref(mr.Winner),
			}
		}
		b.Rounds[ri] = Round{Matchups: matchups}
	}
	return b, nil
}

// Picks exports the bracket in the picks structure. Absent labels become nil.
func (b *Bracket) Picks() Picks {
	p := make(Picks, len(b.Rounds))
	for ri, r := range b.Rounds {
		records := make([]MatchupRecord, len(r.Matchups))
		for mi, m := range r.Matchups {
			records[mi] = MatchupRecord{
				Top:    ref(m.Top),
				Bottom: ref(m.Bottom),
				Winner: ref(m.Winner),
			}
		}
		p[ri] = RoundRecord{Matchups: &records}
	}
	return p
}

// Empty reports whether p carries no rounds.
func (p Picks) Empty() bool { return len(p) == 0 }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
