package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/render"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
	"github.com/matzehuels/bracketgen/pkg/render/styles"
)

// Options configures node-link diagram generation.
type Options struct {
	// Style supplies the winner and line colors. Zero means [styles.Classic].
	Style styles.Style

	// RoundClusters groups each round's matchups under a labeled cluster.
	RoundClusters bool
}

// NodeID returns the DOT node name of matchup (round, match).
func NodeID(round, match int) string { return fmt.Sprintf("r%dm%d", round, match) }

// ToDOT converts a bracket to Graphviz DOT source. Each matchup becomes a
// node listing its two slots, with the recorded winner in bold, and an edge
// leads to the matchup its winner feeds. The tree reads left to right.
func ToDOT(b *bracket.Bracket, opts Options) string {
	s := opts.Style
	if s.Name == "" {
		s = styles.Classic()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded\", fontname=%q, fontsize=10, color=%q];\n",
		s.FontFamily, s.Palette.Line)
	fmt.Fprintf(&buf, "  edge [arrowsize=0.5, color=%q];\n", s.Palette.Line)
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.1;\n")
	buf.WriteString("\n")

	rounds := len(b.Rounds)
	for ri, r := range b.Rounds {
		indent := "  "
		if opts.RoundClusters {
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n    label=%q;\n    color=%q;\n",
				ri, bracket.RoundName(ri, rounds), s.Palette.Accent)
			indent = "    "
		}
		for mi, m := range r.Matchups {
			fmt.Fprintf(&buf, "%s%s [%s];\n", indent, NodeID(ri, mi), strings.Join(fmtAttrs(m, s), ", "))
		}
		if opts.RoundClusters {
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("\n")
	for ri := 0; ri < rounds-1; ri++ {
		next := len(b.Rounds[ri+1].Matchups)
		for mi := range b.Rounds[ri].Matchups {
			if mi/2 >= next {
				continue
			}
			fmt.Fprintf(&buf, "  %s -> %s;\n", NodeID(ri, mi), NodeID(ri+1, mi/2))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fmtLabel builds an HTML-like label with one line per slot.
func fmtLabel(m bracket.Matchup) string {
	lines := make([]string, 0, 2)
	for _, label := range []string{m.Top, m.Bottom} {
		text := html.EscapeString(layout.DisplayText(label))
		if m.IsWinner(label) {
			text = "<B>" + text + "</B>"
		}
		lines = append(lines, text)
	}
	return "<" + strings.Join(lines, "<BR/>") + ">"
}

func fmtAttrs(m bracket.Matchup, s styles.Style) []string {
	attrs := []string{"label=" + fmtLabel(m)}
	if m.IsWinner(m.Top) || m.IsWinner(m.Bottom) {
		attrs = append(attrs, fmt.Sprintf("color=%q", s.Palette.Winner), "penwidth=1.5")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

// RenderPDF renders DOT source as PNG and places it on a page of the
// given geometry.
func RenderPDF(ctx context.Context, dot string, page layout.Page) ([]byte, error) {
	png, err := RenderPNG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(png, page.Width, page.Height)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag with one that has a zero
// origin and explicit size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
