package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
	"github.com/matzehuels/bracketgen/pkg/io"
)

const defaultPicksFile = "picks.json"

// picksCommand creates the picks command group.
func (c *CLI) picksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picks",
		Short: "Create and edit pick files",
		Long: `Create and edit pick files.

A pick file records every round of a bracket and the winners chosen so far.
It is the input of "render --picks" and of the HTTP render service.`,
	}

	cmd.AddCommand(c.picksInitCommand())
	cmd.AddCommand(c.picksApplyCommand())
	cmd.AddCommand(c.picksResetCommand())

	return cmd
}

// picksInitCommand creates the "picks init" subcommand.
func (c *CLI) picksInitCommand() *cobra.Command {
	var (
		teams    = defaultTeamsFile
		output   = defaultPicksFile
		size     int
		seed     uint64
		autoByes bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Draw a new bracket from a team list and save its picks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := io.ImportTeams(teams)
			if err != nil {
				return err
			}

			opts := []bracket.Option{bracket.WithSize(size)}
			if seed != 0 {
				opts = append(opts, bracket.WithSeed(seed))
			}
			b := bracket.FromTeams(names, opts...)
			if autoByes {
				b.AutoAdvanceByes()
			}

			if err := io.ExportPicks(output, b); err != nil {
				return err
			}
			c.Logger.Info("drew bracket", "teams", len(names), "entrants", b.Entrants(), "seed", seed)
			c.ui().ok("Wrote %d-team bracket", b.Entrants())
			c.ui().file(output)
			c.ui().hint("Render it", "bracketgen render --picks "+output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&teams, "teams", teams, "team list (json, yaml or xlsx)")
	f.StringVarP(&output, "output", "o", output, "pick file to write")
	f.IntVar(&size, "size", 0, "bracket size; rounded up to a power of two (default 64)")
	f.Uint64Var(&seed, "seed", 0, "shuffle seed (0 draws at random)")
	f.BoolVar(&autoByes, "auto-byes", true, "advance teams drawn against a BYE")
	_ = cmd.MarkFlagFilename("teams", teamFileExts...)
	return cmd
}

// picksApplyCommand creates the "picks apply" subcommand.
func (c *CLI) picksApplyCommand() *cobra.Command {
	var (
		picks  []string
		clears []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Record winners in a pick file",
		Long: `Record winners in a pick file.

Each --pick is ROUND:MATCH:WINNER with 1-based round and match numbers.
WINNER is "top", "bottom" or the team's name. Picking the current winner
again removes it, and changing a winner clears its later-round path.
--clear ROUND:MATCH removes a winner and its later-round path.`,
		Example: `  bracketgen picks apply picks.json --pick 1:1:top --pick 1:2:Vermont
  bracketgen picks apply picks.json --clear 2:1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			b, err := loadBracket(path)
			if err != nil {
				return err
			}

			for _, spec := range clears {
				round, match, _, err := parsePickSpec(spec, false)
				if err != nil {
					return err
				}
				if err := b.ClearFrom(round, match); err != nil {
					return err
				}
				c.Logger.Debug("cleared", "round", round+1, "match", match+1)
			}
			for _, spec := range picks {
				if err := c.applyPick(b, spec); err != nil {
					return err
				}
			}

			if output == "" {
				output = path
			}
			if err := io.ExportPicks(output, b); err != nil {
				return err
			}
			c.ui().ok("Updated picks")
			c.ui().file(output)
			if champ := b.Champion(); champ != "" {
				c.ui().field("Champion", champ)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&picks, "pick", nil, "ROUND:MATCH:WINNER to record (repeatable)")
	f.StringArrayVar(&clears, "clear", nil, "ROUND:MATCH to clear (repeatable)")
	f.StringVarP(&output, "output", "o", "", "write to this file instead of FILE")
	return cmd
}

func (c *CLI) applyPick(b *bracket.Bracket, spec string) error {
	round, match, winner, err := parsePickSpec(spec, true)
	if err != nil {
		return err
	}
	m, err := matchupAt(b, round, match)
	if err != nil {
		return err
	}

	slot, ok := bracket.ParseSlot(winner)
	if !ok {
		switch winner {
		case m.Top:
			slot = bracket.SlotTop
		case m.Bottom:
			slot = bracket.SlotBottom
		default:
			return errs.New(errs.ErrCodeInvalidInput, "pick %q: %q is not in %s matchup %d", spec, winner, bracket.RoundName(round, b.NumRounds()), match+1)
		}
	}

	res, err := b.ApplyPick(round, match, slot)
	if err != nil {
		return err
	}
	switch {
	case !res.Changed:
		c.ui().warn("%s: %s slot is empty, nothing picked", spec, slot)
	case res.Cleared:
		c.Logger.Info("cleared pick", "round", round+1, "match", match+1, "team", res.Chosen)
	default:
		c.Logger.Info("picked", "round", round+1, "match", match+1, "team", res.Chosen, "final", res.IsFinal)
	}
	return nil
}

// picksResetCommand creates the "picks reset" subcommand.
func (c *CLI) picksResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset FILE",
		Short: "Clear every pick, keeping the first-round draw",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBracket(args[0])
			if err != nil {
				return err
			}
			b.Reset()
			if err := io.ExportPicks(args[0], b); err != nil {
				return err
			}
			c.ui().ok("Reset picks")
			c.ui().file(args[0])
			return nil
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

func loadBracket(path string) (*bracket.Bracket, error) {
	p, err := io.ImportPicks(path)
	if err != nil {
		return nil, err
	}
	b, err := bracket.FromPicks(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// parsePickSpec parses "ROUND:MATCH[:WINNER]" into 0-based coordinates.
func parsePickSpec(spec string, withWinner bool) (round, match int, winner string, err error) {
	want := 2
	if withWinner {
		want = 3
	}
	parts := strings.SplitN(spec, ":", want)
	if len(parts) != want {
		return 0, 0, "", errs.New(errs.ErrCodeInvalidInput, "malformed pick %q", spec)
	}
	round, rerr := strconv.Atoi(strings.TrimSpace(parts[0]))
	match, merr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if rerr != nil || merr != nil || round < 1 || match < 1 {
		return 0, 0, "", errs.New(errs.ErrCodeInvalidInput, "malformed pick %q: round and match are numbers from 1", spec)
	}
	if withWinner {
		winner = strings.TrimSpace(parts[2])
	}
	return round - 1, match - 1, winner, nil
}

func matchupAt(b *bracket.Bracket, round, match int) (bracket.Matchup, error) {
	if round >= len(b.Rounds) || match >= len(b.Rounds[round].Matchups) {
		return bracket.Matchup{}, errs.New(errs.ErrCodeInvalidStructure, "no matchup %d in round %d", match+1, round+1)
	}
	return b.Rounds[round].Matchups[match], nil
}
