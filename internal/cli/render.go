package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/bracketgen/pkg/errors"
	"github.com/matzehuels/bracketgen/pkg/io"
	"github.com/matzehuels/bracketgen/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	picks    string // pick file; takes precedence over teams
	teams    string // team list (json, yaml or xlsx)
	output   string // output file, or base path for several formats
	formats  string // comma-separated output formats
	vizType  string // bracket or nodelink
	title    string
	style    string
	size     int
	seed     uint64
	autoByes bool
	noCache  bool
	watch    bool
	serve    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		teams:  defaultTeamsFile,
		output: defaultOutput,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a bracket from a team list or a pick file",
		Long: `Render a bracket from a team list or a pick file.

With --teams (default teams.json) the teams are shuffled into a fresh
bracket. With --picks the recorded picks are drawn as given, winners
highlighted and the champion shown.`,
		Example: `  bracketgen render
  bracketgen render --teams field.xlsx --seed 7 -o draw.pdf
  bracketgen render --picks picks.json -f pdf,png
  bracketgen render --picks picks.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.serve {
				return c.runServe(cmd.Context(), "")
			}
			return c.runRender(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.picks, "picks", "", "pick file to render (json or yaml)")
	f.StringVar(&opts.teams, "teams", opts.teams, "team list to shuffle into a bracket (json, yaml or xlsx)")
	f.StringVarP(&opts.output, "output", "o", opts.output, "output file (single format) or base path (several)")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): pdf (default), svg, png, json, picks, dot")
	f.StringVarP(&opts.vizType, "type", "t", "", "visualization: bracket (default), nodelink")
	f.StringVar(&opts.title, "title", "", "page title")
	f.StringVar(&opts.style, "style", "", "visual style: classic (default), ink")
	f.IntVar(&opts.size, "size", 0, "bracket size; rounded up to a power of two (default 64)")
	f.Uint64Var(&opts.seed, "seed", 0, "shuffle seed for a reproducible draw (0 draws at random)")
	f.BoolVar(&opts.autoByes, "auto-byes", false, "advance teams drawn against a BYE")
	f.BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	f.BoolVar(&opts.watch, "watch", false, "re-render whenever the input file changes")
	f.BoolVar(&opts.serve, "serve", false, "run the HTTP render service instead")
	cmd.MarkFlagsMutuallyExclusive("watch", "serve")

	return cmd
}

// runRender renders once, or keeps re-rendering with --watch.
func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	if opts.watch {
		return c.watchRender(ctx, runner, opts)
	}
	_, err := c.renderOnce(ctx, runner, opts)
	return err
}

// renderOnce loads the input, runs the pipeline and writes every output.
// It returns the written paths.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, opts renderOpts) ([]string, error) {
	done := startTimer(c.Logger)

	po, err := c.pipelineOptions(opts)
	if err != nil {
		return nil, err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering bracket...")
	spinner.Start()
	res, err := runner.Execute(ctx, po)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, err
	}
	spinner.Stop()

	paths := outputPaths(opts.output, po.Formats)
	written := make([]string, 0, len(po.Formats))
	for _, format := range po.Formats {
		path := paths[format]
		if err := io.WriteFile(path, res.Artifacts[format]); err != nil {
			return written, err
		}
		c.Logger.Debug("wrote output", "format", format, "path", path, "bytes", len(res.Artifacts[format]))
		written = append(written, path)
	}

	done("rendered", "outputs", strings.Join(written, ", "))
	for _, p := range written {
		c.ui().file(p)
	}
	c.ui().stats(res.Stats, res.CacheInfo.RenderHit)
	return written, nil
}

// pipelineOptions turns flags into validated pipeline options, reading the
// input file.
func (c *CLI) pipelineOptions(opts renderOpts) (pipeline.Options, error) {
	po := c.baseOptions()
	po.Size = opts.size
	po.Seed = opts.seed
	po.AutoByes = opts.autoByes
	po.Refresh = opts.noCache
	po.VizType = opts.vizType
	po.Formats = pipeline.ParseFormats(opts.formats)
	if opts.title != "" {
		po.Title = opts.title
	}
	if opts.style != "" {
		po.Style = opts.style
	}

	if opts.picks != "" {
		picks, err := io.ImportPicks(opts.picks)
		if err != nil {
			return po, err
		}
		if picks.Empty() {
			return po, errs.New(errs.ErrCodeNoPicks, "%s: no picks recorded", opts.picks)
		}
		c.Logger.Info("loaded picks", "path", opts.picks, "rounds", len(picks))
		po.Picks = picks
	} else {
		teams, err := io.ImportTeams(opts.teams)
		if err != nil {
			return po, err
		}
		c.Logger.Info("loaded teams", "path", opts.teams, "count", len(teams))
		po.Teams = teams
	}

	po.Logger = c.Logger
	return po, po.ValidateAndSetDefaults()
}

// inputPath is the file the render reads.
func (o renderOpts) inputPath() string {
	if o.picks != "" {
		return o.picks
	}
	return o.teams
}

// =============================================================================
// Output Paths
// =============================================================================

// basePath strips a known output extension from output.
func basePath(output string) string {
	if strings.HasSuffix(output, "."+pipeline.Extension(pipeline.FormatPicks)) {
		return strings.TrimSuffix(output, "."+pipeline.Extension(pipeline.FormatPicks))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(strings.ToLower(ext), ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format keeps output unless output carries another format's extension;
// several formats share output's base path.
func outputPaths(output string, formats []string) map[string]string {
	if output == "" {
		output = defaultOutput
	}
	base := basePath(output)
	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	if len(formats) == 1 && base == output {
		paths[formats[0]] = output
	}
	return paths
}
