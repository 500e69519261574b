package bracket

import "fmt"

// roundNames labels the rounds of a full 64-entrant bracket.
var roundNames = [NumRounds]string{
	"Round of 64", "Round of 32", "Sweet 16",
	"Elite 8", "Final Four", "Championship",
}

// RoundName returns the display name of round i in a bracket of numRounds
// rounds. Brackets with fewer than six rounds use the tail of the name table
// so that the last round is always "Championship". Rounds beyond the table
// fall back to "Round N" (1-based).
func RoundName(i, numRounds int) string {
	offset := 0
	if numRounds > 0 && numRounds < NumRounds {
		offset = NumRounds - numRounds
	}
	if j := i + offset; i >= 0 && j < NumRounds {
		return roundNames[j]
	}
	return fmt.Sprintf("Round %d", i+1)
}
