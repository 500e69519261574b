// Package io reads team lists and pick files, and writes pick files.
//
// # Team Lists
//
// A team list is an ordered list of display names. Three encodings are
// accepted, chosen by file extension in [ImportTeams]:
//
//   - .json: a JSON array of strings, e.g. ["Duke", "Kansas", "UCLA"]
//   - .yaml / .yml: a YAML sequence of strings
//   - .xlsx: the first column of the first sheet; a leading "Team" or
//     "Name" header cell is skipped, as are blank cells
//
// Anything else in a .json or .yaml file (an object, a number, a list with
// non-string entries) is rejected with an [errors.ErrCodeInvalidInput]
// error.
//
// # Pick Files
//
// A pick file is the recorded state of a bracket, one entry per round:
//
//	[
//	  {"matchups": [{"top": "Duke", "bottom": "Vermont", "winner": "Duke"}, ...]},
//	  {"matchups": [{"top": "Duke", "bottom": null, "winner": null}, ...]},
//	  ...
//	]
//
// Every matchup field is optional; null or missing means absent. A file that
// is not a list of rounds, or whose fields have the wrong types, is rejected
// with an [errors.ErrCodeInvalidStructure] error. A round without a
// "matchups" list is rejected later, when the bracket is built.
//
// [WritePicks] and [ExportPicks] write indented JSON that [ReadPicks] reads
// back unchanged.
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/bracketgen/pkg/errors.ErrCodeInvalidInput
// [errors.ErrCodeInvalidStructure]: github.com/matzehuels/bracketgen/pkg/errors.ErrCodeInvalidStructure
package io
