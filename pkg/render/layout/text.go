package layout

import (
	"unicode/utf8"

	"github.com/matzehuels/bracketgen/pkg/bracket"
)

const (
	// MaxLabelRunes is the longest label shown untruncated.
	MaxLabelRunes = 22

	// AbsentText is shown for an undecided slot.
	AbsentText = bracket.AbsentLabel

	// Ellipsis marks a truncated label.
	Ellipsis = "…"
)

// DisplayText returns the text painted for a slot label: the absent marker
// for "", the first MaxLabelRunes runes plus an ellipsis for long labels,
// and the label itself otherwise.
func DisplayText(label string) string {
	if label == "" {
		return AbsentText
	}
	if utf8.RuneCountInString(label) <= MaxLabelRunes {
		return label
	}
	return string([]rune(label)[:MaxLabelRunes]) + Ellipsis
}
