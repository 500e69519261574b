package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
)

func fourTeams() *bracket.Bracket {
	return bracket.FromTeams([]string{"Duke", "Kansas", "UCLA", "Iona"},
		bracket.WithoutShuffle(), bracket.WithSize(4))
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(fourTeams(), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() should lay out left to right")
	}
	for _, id := range []string{"r0m0", "r0m1", "r1m0"} {
		if !strings.Contains(dot, "  "+id+" [") {
			t.Errorf("ToDOT() output missing node %s", id)
		}
	}
	for _, e := range []string{"r0m0 -> r1m0", "r0m1 -> r1m0"} {
		if !strings.Contains(dot, e) {
			t.Errorf("ToDOT() output missing edge %s", e)
		}
	}
	if strings.Contains(dot, "<B>") {
		t.Error("undecided bracket should have no bold labels")
	}
}

func TestToDOT_Winner(t *testing.T) {
	b := fourTeams()
	if _, err := b.ApplyPick(0, 0, bracket.SlotBottom); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(b, Options{})

	if !strings.Contains(dot, "label=<Duke<BR/><B>Kansas</B>>") {
		t.Errorf("winner should be bold in label:\n%s", dot)
	}
	if !strings.Contains(dot, `color="#00875a"`) {
		t.Error("decided matchup should use the winner color")
	}
	if !strings.Contains(dot, "label=<<B>Kansas</B><BR/>—>") && !strings.Contains(dot, "label=<Kansas<BR/>—>") {
		t.Errorf("final should list Kansas on top:\n%s", dot)
	}
}

func TestToDOT_Escapes(t *testing.T) {
	b := bracket.FromTeams([]string{"A&M", "<script>"}, bracket.WithoutShuffle(), bracket.WithSize(2))
	dot := ToDOT(b, Options{})
	if !strings.Contains(dot, "A&amp;M") || !strings.Contains(dot, "&lt;script&gt;") {
		t.Errorf("labels should be escaped:\n%s", dot)
	}
}

func TestToDOT_RoundClusters(t *testing.T) {
	dot := ToDOT(fourTeams(), Options{RoundClusters: true})
	if !strings.Contains(dot, "subgraph cluster_0") || !strings.Contains(dot, `label="Championship"`) {
		t.Errorf("ToDOT() clusters missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox should pass through, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(fourTeams(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Duke")) {
		t.Error("RenderSVG() output missing svg root or labels")
	}
}

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF(context.Background(), ToDOT(fourTeams(), Options{}), layout.Letter())
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("RenderPDF() output is not a PDF")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should fail on malformed DOT")
	}
}
