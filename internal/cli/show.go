package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
)

// Table styles
var (
	headerStyle = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	winnerStyle = lipgloss.NewStyle().Foreground(colorWin).Bold(true)
	loserStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	openStyle   = lipgloss.NewStyle().Foreground(colorText)
	byeStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		round int
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Browse a pick file round by round",
		Long: `Browse a pick file round by round.

Opens an interactive pager (←/→ switch rounds, ↑/↓ scroll, q quit).
With --plain the rounds are printed as tables instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPicksFile
			if len(args) == 1 {
				path = args[0]
			}
			b, err := loadBracket(path)
			if err != nil {
				return err
			}
			if round < 0 || round > b.NumRounds() {
				return errs.New(errs.ErrCodeInvalidInput, "--round must be between 1 and %d", b.NumRounds())
			}

			if plain {
				out := cmd.OutOrStdout()
				for ri := range b.Rounds {
					if round != 0 && ri != round-1 {
						continue
					}
					fmt.Fprintln(out, StyleTitle.Render(bracket.RoundName(ri, b.NumRounds())))
					fmt.Fprintln(out, renderRound(b, ri, 0, len(b.Rounds[ri].Matchups), -1))
				}
				if champ := b.Champion(); champ != "" {
					fmt.Fprintln(out, StyleTitle.Render("Champion: ")+winnerStyle.Render(champ))
				}
				return nil
			}

			m := newBracketModel(b)
			if round > 0 {
				m.Round = round - 1
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&round, "round", 0, "show only this round (1-based)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print tables instead of the interactive pager")
	return cmd
}

// =============================================================================
// BracketModel - Interactive round pager
// =============================================================================

// BracketModel is the bubbletea model for browsing a bracket.
type BracketModel struct {
	Bracket *bracket.Bracket
	Round   int
	Cursor  int
	Offset  int
	Height  int
}

// newBracketModel creates a model positioned on the first round.
func newBracketModel(b *bracket.Bracket) BracketModel {
	return BracketModel{Bracket: b, Height: 16}
}

func (m BracketModel) Init() tea.Cmd {
	return nil
}

func (m BracketModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Round > 0 {
				m.Round--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l":
			if m.Round < m.Bracket.NumRounds()-1 {
				m.Round++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.matchups()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 4 {
			m.Height = 4
		}
	}
	return m, nil
}

func (m BracketModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s  (%d/%d)",
		bracket.RoundName(m.Round, m.Bracket.NumRounds()), m.Round+1, m.Bracket.NumRounds())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ round  ↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, m.matchups())
	b.WriteString(renderRound(m.Bracket, m.Round, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")

	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.matchups())
	if champ := m.Bracket.Champion(); champ != "" {
		status += "  champion: " + champ
	}
	b.WriteString(StyleDim.Render(status))
	return b.String()
}

func (m BracketModel) matchups() int {
	if m.Round >= m.Bracket.NumRounds() {
		return 0
	}
	return len(m.Bracket.Rounds[m.Round].Matchups)
}

// =============================================================================
// Tables
// =============================================================================

// renderRound renders matchups [from, to) of round ri as a table. cursor
// marks a row; -1 marks none.
func renderRound(b *bracket.Bracket, ri, from, to, cursor int) string {
	ms := b.Rounds[ri].Matchups
	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows = append(rows, []string{mark + strconv.Itoa(i+1), cell(ms[i].Top), cell(ms[i].Bottom), cell(ms[i].Winner)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("#", "Top", "Bottom", "Winner").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if from+row >= len(ms) {
				return lipgloss.NewStyle()
			}
			m := ms[from+row]
			switch col {
			case 1:
				return slotStyle(m, m.Top)
			case 2:
				return slotStyle(m, m.Bottom)
			case 3:
				return winnerStyle
			}
			if from+row == cursor {
				return StyleHighlight
			}
			return StyleDim
		})

	return t.Render()
}

func slotStyle(m bracket.Matchup, label string) lipgloss.Style {
	switch {
	case label == "" || bracket.IsBye(label):
		return byeStyle
	case m.Winner == "":
		return openStyle
	case m.IsWinner(label):
		return winnerStyle
	default:
		return loserStyle
	}
}

func cell(label string) string {
	if label == "" {
		return bracket.AbsentLabel
	}
	return label
}
