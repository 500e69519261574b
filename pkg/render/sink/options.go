package sink

import "github.com/matzehuels/bracketgen/pkg/render/styles"

// Option configures a sink.
type Option func(*renderer)

type renderer struct {
	style    styles.Style
	compress bool
	scale    float64
	author   string
}

// DefaultScale is the PNG pixel density relative to one point.
const DefaultScale = 2.0

// WithStyle sets the visual style (default [styles.Classic]).
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithCompression toggles PDF stream compression (default on).
func WithCompression(on bool) Option { return func(r *renderer) { r.compress = on } }

// WithScale sets the PNG pixels per point. Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithAuthor sets the PDF author metadata.
func WithAuthor(a string) Option { return func(r *renderer) { r.author = a } }

func newRenderer(opts ...Option) renderer {
	r := renderer{style: styles.Classic(), compress: true, scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
