// Package layout computes page geometry for bracket rendering.
//
// # Overview
//
// Given a normalized [bracket.Bracket], [Build] places every round in its
// own column and every matchup as two stacked label boxes. The result is a
// [Layout] with everything a sink needs to paint the page:
//
//   - Column origins and widths
//   - Slot boxes with display text and highlight flags
//   - Connector lines leaving each matchup toward the next round
//   - Title, round labels and the optional champion callout
//
// # Coordinates
//
// Coordinates are PDF points with the origin at the bottom-left corner and
// y growing upward. Sinks that draw in a y-down space use [Page.FlipY].
//
// # Vertical Centering
//
// The block allotted to one matchup doubles every round while the number of
// matchups halves, so the content height of every column is the same:
//
//	TotalHeight(i, n) = MatchupHeight * 2^i * n
//
// Each column's content is centered in the usable height and each two-slot
// box is centered inside its block. Connectors are straight horizontal
// lines from a matchup's midpoint toward the next column; they are not
// bent to meet the next round's box.
//
// # Geometry Functions
//
// The formulas are exposed as methods on [Page] so they can be checked
// independently of [Build]: [Page.ColumnX], [Page.BlockHeight],
// [Page.TotalHeight], [Page.YStart], [Page.MatchupTop] and [Page.MidY].
//
// [bracket.Bracket]: github.com/matzehuels/bracketgen/pkg/bracket
package layout
