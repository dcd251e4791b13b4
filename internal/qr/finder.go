package qr

import (
	"image"
	"image/color"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
)

// finderModules is the edge of a finder marker in modules.
const finderModules = 7

// inFinderZone reports whether (row, column) belongs to the top-left,
// top-right or bottom-left finder block. There is no bottom-right marker.
func inFinderZone(size, row, column int) bool {
	return (row < finderModules && (column < finderModules || column >= size-finderModules)) ||
		(column < finderModules && (row < finderModules || row >= size-finderModules))
}

// drawFinders paints the three corner markers over whatever is beneath.
func drawFinders(cv canvas.Canvas, size, pixel int, ink, paper color.Color) {
	far := (size - finderModules) * pixel
	for _, origin := range []image.Point{{0, 0}, {far, 0}, {0, far}} {
		drawFinder(cv, origin, pixel, ink, paper)
	}
}

// drawFinder paints one marker: rounded squares of 7, 5 and 3 modules,
// alternating ink, paper, ink.
func drawFinder(cv canvas.Canvas, origin image.Point, pixel int, ink, paper color.Color) {
	rings := []struct {
		inset   int
		modules int
		radius  float64
		color   color.Color
	}{
		{0, 7, 2, ink},
		{1, 5, 1.5, paper},
		{2, 3, 1, ink},
	}
	p := float64(pixel)
	for _, ring := range rings {
		tl := origin.Add(image.Pt(ring.inset*pixel, ring.inset*pixel))
		rect := image.Rectangle{Min: tl, Max: tl.Add(image.Pt(ring.modules*pixel, ring.modules*pixel))}
		cv.FillRoundedRect(rect, ring.radius*p, ring.color)
	}
}
