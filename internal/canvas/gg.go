package canvas

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// GG paints rounded shapes with a fogleman/gg context sharing the surface.
type GG struct {
	surface
	dc *gg.Context
}

func newGG(img *image.RGBA) *GG {
	return &GG{
		surface: surface{img: img},
		dc:      gg.NewContextForRGBA(img),
	}
}

// FillRoundedRect implements Canvas.
func (g *GG) FillRoundedRect(rect image.Rectangle, radius float64, c color.Color) {
	if rect.Empty() {
		return
	}
	if !rect.In(g.img.Bounds()) {
		offscreen(BackendGG, g.img, rect, func(tile Canvas) {
			tile.FillRoundedRect(tile.Bounds(), radius, c)
		})
		return
	}
	g.dc.SetColor(c)
	g.dc.DrawRoundedRectangle(
		float64(rect.Min.X), float64(rect.Min.Y),
		float64(rect.Dx()), float64(rect.Dy()),
		radius)
	g.dc.Fill()
}
