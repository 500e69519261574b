package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bracketgen/pkg/pipeline"
)

// Palette. Winners reuse the success green and byes the muted gray.
var (
	colorAccent  = lipgloss.Color("36")
	colorWin     = lipgloss.Color("35")
	colorCaution = lipgloss.Color("220")
	colorFail    = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorText    = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as round names.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleHighlight renders addresses and the selected row.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)

	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// mark is the glyph leading a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorWin)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = mark{"!", lipgloss.NewStyle().Foreground(colorCaution)}
	markNote = mark{"›", styleLabel}
)

// Render cache states shown at the end of the stats line.
const (
	labelCached = "cached"
	labelFresh  = "fresh"
)

// terminal prints styled status lines for a human reader. Output meant for
// scripts, like "cache path", bypasses it.
type terminal struct {
	w io.Writer
}

func newTerminal(w io.Writer) *terminal {
	if w == nil {
		w = os.Stdout
	}
	return &terminal{w: w}
}

func (t *terminal) status(m mark, msg string) {
	fmt.Fprintln(t.w, m.style.Render(m.glyph)+" "+msg)
}

func (t *terminal) ok(format string, args ...any) {
	t.status(markOK, fmt.Sprintf(format, args...))
}

func (t *terminal) fail(format string, args ...any) {
	t.status(markFail, fmt.Sprintf(format, args...))
}

func (t *terminal) warn(format string, args ...any) {
	t.status(markWarn, markWarn.style.Render(fmt.Sprintf(format, args...)))
}

func (t *terminal) note(format string, args ...any) {
	t.status(markNote, fmt.Sprintf(format, args...))
}

// detail prints an indented secondary line under the last status.
func (t *terminal) detail(format string, args ...any) {
	fmt.Fprintln(t.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (t *terminal) file(path string) {
	fmt.Fprintln(t.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (t *terminal) field(key, value string) {
	fmt.Fprintln(t.w, styleLabel.Width(12).Render(key)+" "+StyleValue.Render(value))
}

func (t *terminal) stats(s pipeline.Stats, cached bool) {
	fmt.Fprintln(t.w, statsLine(s, cached))
}

// hint suggests the command to run next.
func (t *terminal) hint(description, command string) {
	fmt.Fprintln(t.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}

// statsLine summarizes a render, e.g.
// "6 rounds · 63 matchups · 12 decided · fresh".
func statsLine(s pipeline.Stats, cached bool) string {
	state := styleLabel.Render(labelFresh)
	if cached {
		state = markOK.style.Render(labelCached)
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d rounds", s.Rounds)),
		StyleDim.Render(fmt.Sprintf("%d matchups", s.Matchups)),
		StyleDim.Render(fmt.Sprintf("%d decided", s.Decided)),
		state,
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
