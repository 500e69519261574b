package bracket

import (
	"math/rand/v2"
	"strconv"
)

// Shuffler permutes n elements by calling swap. It matches the Shuffle
// method of *math/rand/v2.Rand, so a seeded generator can be passed
// directly.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// globalShuffler draws from the process-wide random source.
type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// identity leaves the order untouched.
type identity struct{}

func (identity) Shuffle(int, func(i, j int)) {}

// Option configures [FromTeams].
type Option func(*builder)

type builder struct {
	size     int
	shuffler Shuffler
}

// WithShuffler sets the permutation source.
func WithShuffler(s Shuffler) Option {
	return func(b *builder) {
		if s != nil {
			b.shuffler = s
		}
	}
}

// WithSeed shuffles with a PCG generator seeded by seed, making the
// permutation reproducible.
func WithSeed(seed uint64) Option {
	return WithShuffler(rand.New(rand.NewPCG(seed, seed)))
}

// WithoutShuffle keeps the input order.
func WithoutShuffle() Option {
	return WithShuffler(identity{})
}

// WithSize builds a compact bracket of NextPow2(n) entrants instead of 64.
func WithSize(n int) Option {
	return func(b *builder) { b.size = NextPow2(n) }
}

// NextPow2 returns the smallest power of two >= n, at least 2 and at most [Size].
func NextPow2(n int) int {
	p := 2
	for p < n {
		p *= 2
	}
	return min(p, Size)
}

// FromTeams builds a bracket from a flat team list.
//
// The list is truncated to the bracket size (64 unless [WithSize] is given)
// and padded with "BYE N" placeholders, where N is the 1-based position of
// the padded entry. All entries are then permuted and consecutive pairs
// form the first round (even index on top). Later rounds hold empty
// matchups, halving in count down to the final.
//
// The input slice is never modified.
func FromTeams(teams []string, opts ...Option) *Bracket {
	cfg := builder{size: Size, shuffler: globalShuffler{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	seeded := PadTeams(teams, cfg.size)
	cfg.shuffler.Shuffle(len(seeded), func(i, j int) {
		seeded[i], seeded[j] = seeded[j], seeded[i]
	})

	first := make([]Matchup, 0, cfg.size/2)
	for i := 0; i < cfg.size; i += 2 {
		first = append(first, Matchup{Top: seeded[i], Bottom: seeded[i+1]})
	}

	b := &Bracket{Rounds: []Round{{Matchups: first}}}
	for count := cfg.size / 4; count >= 1; count /= 2 {
		b.Rounds = append(b.Rounds, Round{Matchups: make([]Matchup, count)})
	}
	return b
}

// PadTeams returns a copy of teams truncated or padded to exactly size
// entries. Padding labels are "BYE " followed by the 1-based position.
func PadTeams(teams []string, size int) []string {
	out := make([]string, 0, size)
	out = append(out, teams[:min(len(teams), size)]...)
	for len(out) < size {
		out = append(out, ByePrefix+strconv.Itoa(len(out)+1))
	}
	return out
}
