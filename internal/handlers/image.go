package handlers

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// addPadding surrounds img with a border of the given width in bg.
func addPadding(img *image.RGBA, width int, bg color.Color) *image.RGBA {
	if width <= 0 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*width, b.Dy()+2*width))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(width, width, width+b.Dx(), width+b.Dy()), img, b.Min, draw.Src)
	return out
}

// scaleExact scales img to exactly target × target using nearest neighbour,
// which keeps module edges sharp.
func scaleExact(img *image.RGBA, target int) *image.RGBA {
	if target <= 0 || img.Bounds().Dx() == target && img.Bounds().Dy() == target {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, target, target))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
