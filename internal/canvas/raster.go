package canvas

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
)

// Raster paints rounded shapes through a rasterx filler backed by the
// golang.org/x/image/vector scanner.
type Raster struct {
	surface
	filler *rasterx.Filler
}

func newRaster(img *image.RGBA) *Raster {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	return &Raster{
		surface: surface{img: img},
		filler:  rasterx.NewFiller(b.Dx(), b.Dy(), scanner),
	}
}

// FillRoundedRect implements Canvas.
func (r *Raster) FillRoundedRect(rect image.Rectangle, radius float64, c color.Color) {
	if rect.Empty() {
		return
	}
	if !rect.In(r.img.Bounds()) {
		offscreen(BackendRasterx, r.img, rect, func(tile Canvas) {
			tile.FillRoundedRect(tile.Bounds(), radius, c)
		})
		return
	}
	r.filler.Clear()
	r.filler.SetColor(c)
	rasterx.AddRoundRect(
		float64(rect.Min.X), float64(rect.Min.Y),
		float64(rect.Max.X), float64(rect.Max.Y),
		radius, radius, 0, rasterx.RoundGap, r.filler)
	r.filler.Draw()
	r.filler.Clear()
}
