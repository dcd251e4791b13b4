package qr

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
)

// CompositeCenter returns a copy of surface with overlay drawn centered on
// top of it. The overlay is neither resized nor checked against the reserved
// region; size it with ReservedPixelExtent first.
func CompositeCenter(surface *image.RGBA, overlay image.Image) *image.RGBA {
	b := surface.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, surface, b.Min, draw.Src)
	if overlay == nil {
		return out
	}

	size := overlay.Bounds().Size()
	at := image.Pt(
		b.Min.X+(b.Dx()-size.X)/2,
		b.Min.Y+(b.Dy()-size.Y)/2,
	)
	canvas.FromRGBA(out).DrawImage(overlay, at)
	return out
}
