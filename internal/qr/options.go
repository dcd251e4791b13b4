package qr

import (
	"image/color"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
)

// Default module colors.
var (
	DefaultInk   = color.RGBA{0, 0, 0, 255}
	DefaultPaper = color.RGBA{255, 255, 255, 255}
)

type options struct {
	ink     color.Color
	paper   color.Color
	backend canvas.Backend
}

func defaultOptions() options {
	return options{
		ink:     DefaultInk,
		paper:   DefaultPaper,
		backend: canvas.BackendRasterx,
	}
}

// Option configures Render.
type Option func(*options)

// WithColors sets the ink and paper colors. Nil keeps the current value.
// Ink is expected to be opaque; paper may be translucent.
func WithColors(ink, paper color.Color) Option {
	return func(o *options) {
		if ink != nil {
			o.ink = ink
		}
		if paper != nil {
			o.paper = paper
		}
	}
}

// WithBackend selects the rasterizer used for rounded shapes.
func WithBackend(b canvas.Backend) Option {
	return func(o *options) {
		if b != "" {
			o.backend = b
		}
	}
}
