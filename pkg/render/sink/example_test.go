package sink_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	"github.com/matzehuels/bracketgen/pkg/render/layout"
	"github.com/matzehuels/bracketgen/pkg/render/sink"
)

func ExampleRenderPDF() {
	b := bracket.FromTeams([]string{"Duke", "Kansas"}, bracket.WithoutShuffle())
	l := layout.Build(b)

	pdf, err := sink.RenderPDF(l)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(bytes.HasPrefix(pdf, []byte("%PDF-")))
	// Output:
	// true
}

func ExampleRenderSVG() {
	b := bracket.FromTeams(nil, bracket.WithSize(2))
	svg := sink.RenderSVG(layout.Build(b))

	fmt.Println(bytes.Count(svg, []byte("<text ")))
	// Output:
	// 4
}
