// Package bracket provides the normalized in-memory model of a
// single-elimination tournament bracket.
//
// # Overview
//
// A [Bracket] is an ordered sequence of [Round] values, outer index = round
// number (0 = first round). Each round holds an ordered sequence of
// [Matchup] values with two slot labels and an optional recorded winner.
// Labels are plain strings; the empty string is the absent marker for a slot
// or winner that has not been decided.
//
// # Construction
//
// Two paths produce the same normalized shape:
//
//   - [FromTeams]: pads or truncates a flat team list to the bracket size
//     (64 by default), shuffles it and pairs consecutive entries into the
//     first round. Later rounds start empty.
//   - [FromPicks]: converts a previously recorded [Picks] structure 1:1,
//     defaulting missing fields to absent.
//
// Shuffling draws from an injected [Shuffler]. The default uses the
// process-wide random source; tests and reproducible renders pass
// [WithSeed] or [WithoutShuffle]:
//
//	b := bracket.FromTeams(teams, bracket.WithSeed(42))
//
// # Pick Operations
//
// [Bracket.ApplyPick], [Bracket.ClearFrom], [Bracket.Reset] and
// [Bracket.AutoAdvanceByes] move winners through the bracket the way the
// bracket picker does. They mutate the receiver; call [Bracket.Clone] first
// when the original must stay untouched.
//
// # Concurrency
//
// A Bracket is not safe for concurrent mutation. Renderers only read it, so
// one bracket may be rendered from several goroutines at once.
package bracket
