package styles

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Style names.
const (
	StyleClassic = "classic"
	StyleInk     = "ink"
)

// Palette holds hex colors ("#rrggbb") for every painted element.
type Palette struct {
	Background string
	Line       string
	Text       string
	Seed       string
	Winner     string
	Accent     string
}

// Style combines a palette with stroke widths and a font family.
type Style struct {
	Name            string
	Palette         Palette
	SlotStroke      float64
	WinnerStroke    float64
	ConnectorStroke float64
	FontFamily      string
}

// Classic is the default printed look: dark lines, green winners and an
// indigo accent for headings.
func Classic() Style {
	return Style{
		Name: StyleClassic,
		Palette: Palette{
			Background: "#ffffff",
			Line:       "#333333",
			Text:       "#1a1a1a",
			Seed:       "#888888",
			Winner:     "#00875a",
			Accent:     "#4a47a3",
		},
		SlotStroke:      0.4,
		WinnerStroke:    0.7,
		ConnectorStroke: 0.3,
		FontFamily:      "Helvetica",
	}
}

// Ink is a grayscale variant for monochrome printers. Winners are told
// apart by stroke weight and bold text only.
func Ink() Style {
	s := Classic()
	s.Name = StyleInk
	s.Palette = Palette{
		Background: "#ffffff",
		Line:       "#000000",
		Text:       "#000000",
		Seed:       "#777777",
		Winner:     "#000000",
		Accent:     "#000000",
	}
	s.WinnerStroke = 1.1
	return s
}

var registry = map[string]func() Style{
	StyleClassic: Classic,
	StyleInk:     Ink,
}

// Names lists the registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the style registered under name. The empty name selects
// [Classic].
func Lookup(name string) (Style, error) {
	if name == "" {
		return Classic(), nil
	}
	fn, ok := registry[strings.ToLower(name)]
	if !ok {
		return Style{}, fmt.Errorf("unknown style %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// SlotColors returns the stroke color, stroke width and text color of a slot.
func (s Style) SlotColors(highlight bool) (stroke string, width float64, text string) {
	if highlight {
		return s.Palette.Winner, s.WinnerStroke, s.Palette.Winner
	}
	return s.Palette.Line, s.SlotStroke, s.Palette.Text
}

// RGB parses a "#rrggbb" or "#rgb" color. Malformed input yields black.
func RGB(hex string) (r, g, b int) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
