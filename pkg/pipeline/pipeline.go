// Package pipeline turns a team list or a pick file into rendered bracket
// pages. The CLI and the render service share it, so a page produced from
// the command line is byte-identical to one served over HTTP.
//
// A run has three stages. Build seeds a bracket from teams or replays
// recorded picks. Layout places every matchup box and connector on the
// page. Render paints that geometry once per requested format. Rendered
// artifacts are cached by the hash of the bracket's picks plus the render
// options that affect output.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Picks: picks})
//	if err != nil {
//	    return err
//	}
//	pdf := res.Artifacts[pipeline.FormatPDF]
//
// [Runner.Build] and [Runner.Render] run the stages on their own.
package pipeline

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/cache"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
	"github.com/matzehuels/bracketgen/pkg/render/sink"
	"github.com/matzehuels/bracketgen/pkg/render/styles"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// VizTypeBracket is the printable bracket page.
	VizTypeBracket = "bracket"

	// VizTypeNodelink is the bracket tree drawn by Graphviz.
	VizTypeNodelink = "nodelink"

	// DefaultVizType is the default visualization type.
	DefaultVizType = VizTypeBracket

	// DefaultStyle is the default visual style.
	DefaultStyle = styles.StyleClassic

	// DefaultScale is the default PNG pixel density.
	DefaultScale = sink.DefaultScale
)

// Render-request boundary constants.
const (
	PDFFilename    = "bracket.pdf"
	PDFContentType = "application/pdf"
)

// Bracket sources.
const (
	SourceTeams = "teams"
	SourcePicks = "picks"
)

// Format constants for output formats.
const (
	FormatPDF   = "pdf"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatJSON  = "json"  // page geometry
	FormatPicks = "picks" // recorded picks, re-readable with --picks
	FormatDOT   = "dot"   // Graphviz source of the bracket tree
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:   true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatJSON:  true,
	FormatPicks: true,
	FormatDOT:   true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeBracket:  true,
	VizTypeNodelink: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatPDF:   PDFContentType,
	FormatSVG:   "image/svg+xml",
	FormatPNG:   "image/png",
	FormatJSON:  "application/json",
	FormatPicks: "application/json",
	FormatDOT:   "text/vnd.graphviz",
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	switch format {
	case FormatPicks:
		return "picks.json"
	case FormatDOT:
		return "dot"
	default:
		return format
	}
}

// =============================================================================
// Options
// =============================================================================

// Options configures one run. The JSON form is what the render service
// accepts as a request body.
type Options struct {
	// Build options. Picks take precedence over Teams when both are set.
	Teams    []string      `json:"teams,omitempty"`
	Picks    bracket.Picks `json:"picks,omitempty"`
	Size     int           `json:"size,omitempty"`      // entrants; rounded up to a power of two
	Seed     uint64        `json:"seed,omitempty"`      // 0 draws a fresh permutation
	AutoByes bool          `json:"auto_byes,omitempty"` // advance teams drawn against a BYE
	Refresh  bool          `json:"refresh,omitempty"`   // bypass the artifact cache

	// Page
	VizType string       `json:"viz_type,omitempty"`
	Title   string       `json:"title,omitempty"`
	Page    *layout.Page `json:"page,omitempty"`

	// Output
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	NoCompress bool     `json:"no_compress,omitempty"`

	Logger   *log.Logger      `json:"-"`
	Shuffler bracket.Shuffler `json:"-"`

	validated bool
}

// Result is everything a run produced.
type Result struct {
	Bracket     *bracket.Bracket
	BracketHash string // hash of the bracket's picks, the cache key base
	Layout      layout.Layout
	Artifacts   map[string][]byte // keyed by format
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats counts what a run saw and how long each stage took.
type Stats struct {
	Rounds     int
	Matchups   int
	Decided    int // matchups with a recorded winner
	Highlights int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports cache use. RenderHit is set only when every requested
// format was served from the cache.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat rejects formats outside [ValidFormats].
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, keys(ValidFormats))
	}
	return nil
}

// ValidateFormats reports the first invalid format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	if _, err := styles.Lookup(style); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid style")
	}
	return nil
}

// ValidateVizType rejects types outside [ValidVizTypes].
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errs.New(errs.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: %s)", vizType, keys(ValidVizTypes))
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates while keeping the first-seen order.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func keys(m map[string]bool) string {
	return strings.Join(slices.Sorted(maps.Keys(m)), ", ")
}

// =============================================================================
// Defaults and validation
// =============================================================================

// ValidateAndSetDefaults prepares o for a full run. Only the first call
// does any work.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the build fields and applies their defaults.
func (o *Options) ValidateForBuild() error {
	if o.Size < 0 || o.Size > bracket.Size {
		return errs.New(errs.ErrCodeInvalidInput, "size must be between 1 and %d, got %d", bracket.Size, o.Size)
	}
	if o.Size == 0 {
		o.Size = bracket.Size
	}
	o.ensureLogger()
	return nil
}

// SetLayoutDefaults fills the viz type, title and page.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Title == "" {
		o.Title = layout.DefaultTitle
	}
	if o.Page == nil {
		p := layout.Letter()
		o.Page = &p
	}
	o.ensureLogger()
}

// SetRenderDefaults fills formats (PDF only), style and PNG scale.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.ensureLogger()
}

// ensureLogger installs a discarding logger so stages can log
// unconditionally.
func (o *Options) ensureLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies layout and render defaults, then checks them.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// Source returns SourcePicks when picks were supplied, SourceTeams otherwise.
func (o *Options) Source() string {
	if !o.Picks.Empty() {
		return SourcePicks
	}
	return SourceTeams
}

// Reproducible reports whether the same options always build the same
// bracket. A teams draw with neither a seed nor a shuffler is random.
func (o *Options) Reproducible() bool {
	return o.Source() == SourcePicks || o.Seed != 0 || o.Shuffler != nil
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		VizType: o.VizType,
		Title:   o.Title,
		Style:   o.Style,
		Page:    o.Page,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatPDF:
		k.Compress = !o.NoCompress
	}
	return k
}

func (o *Options) layoutOptions() []layout.Option {
	var opts []layout.Option
	if o.Page != nil {
		opts = append(opts, layout.WithPage(*o.Page))
	}
	return append(opts, layout.WithTitle(o.Title))
}

func (o *Options) String() string {
	return fmt.Sprintf("source=%s viz=%s formats=%s", o.Source(), o.VizType, strings.Join(o.Formats, ","))
}
