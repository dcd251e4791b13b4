package qr

import (
	"image"
	"image/color"
)

// standIn returns an opaque paper to paint with when paper is translucent,
// and whether one is needed. It is white unless the ink is light.
func standIn(ink, paper color.Color) (color.RGBA, bool) {
	if _, _, _, a := paper.RGBA(); a == 0xffff {
		return color.RGBA{}, false
	}
	r, g, b, _ := ink.RGBA()
	if r+g+b > 3*0x8000 {
		return color.RGBA{0, 0, 0, 255}, true
	}
	return color.RGBA{255, 255, 255, 255}, true
}

// knockOut turns every pixel painted as a mix of ink and stand into the same
// mix of ink and paper. Antialiased edges keep their coverage.
func knockOut(img *image.RGBA, ink color.Color, stand color.RGBA, paper color.Color) {
	in := color.RGBAModel.Convert(ink).(color.RGBA)
	pa := color.RGBAModel.Convert(paper).(color.RGBA)

	// Coverage is measured on the channel where ink and stand differ most.
	inkC := [3]int{int(in.R), int(in.G), int(in.B)}
	standC := [3]int{int(stand.R), int(stand.G), int(stand.B)}
	ch, span := 0, 0
	for i := range inkC {
		if d := inkC[i] - standC[i]; abs(d) > abs(span) {
			ch, span = i, d
		}
	}
	if span == 0 {
		return
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.RGBAAt(x, y)
			px := [3]int{int(p.R), int(p.G), int(p.B)}
			t := float64(px[ch]-standC[ch]) / float64(span)
			t = min(max(t, 0), 1)
			img.SetRGBA(x, y, mix(in, pa, t))
		}
	}
}

// mix blends premultiplied colors: t*a + (1-t)*b.
func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x)*t + float64(y)*(1-t) + 0.5)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
