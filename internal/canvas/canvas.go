// Package canvas wraps the 2D rasterizers used to paint codes.
//
// A Canvas exposes the handful of primitives the renderer needs: solid
// rectangles, rounded rectangles and image blits. Axis-aligned rectangles are
// always copied pixel-exact; rounded shapes go through the selected backend
// and are antialiased.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// Backend names a rasterizer implementation.
type Backend string

const (
	// BackendRasterx paints rounded shapes with github.com/srwiley/rasterx.
	BackendRasterx Backend = "rasterx"
	// BackendGG paints rounded shapes with github.com/fogleman/gg.
	BackendGG Backend = "gg"
)

// ErrUnknownBackend is returned by ParseBackend and New for unsupported names.
var ErrUnknownBackend = errors.New("canvas: unknown backend")

// Canvas is a paintable RGBA surface.
type Canvas interface {
	// Bounds returns the surface rectangle.
	Bounds() image.Rectangle
	// Fill paints the whole surface with c.
	Fill(c color.Color)
	// FillRect paints r with c, no antialiasing.
	FillRect(r image.Rectangle, c color.Color)
	// FillRoundedRect paints r with corners of the given radius, antialiased.
	FillRoundedRect(r image.Rectangle, radius float64, c color.Color)
	// DrawImage composites img (source-over) with its top-left corner at pt.
	DrawImage(img image.Image, pt image.Point)
	// RGBA returns the backing image.
	RGBA() *image.RGBA
}

// ParseBackend maps a configuration string to a Backend. Empty selects rasterx.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "", BackendRasterx:
		return BackendRasterx, nil
	case BackendGG:
		return BackendGG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// New allocates a width × height transparent canvas painted by backend.
func New(backend Backend, width, height int) (Canvas, error) {
	return Wrap(backend, image.NewRGBA(image.Rect(0, 0, width, height)))
}

// FromRGBA wraps img with the default backend.
func FromRGBA(img *image.RGBA) Canvas {
	return newRaster(img)
}

// Wrap returns a canvas painting into an existing image.
func Wrap(backend Backend, img *image.RGBA) (Canvas, error) {
	switch backend {
	case "", BackendRasterx:
		return newRaster(img), nil
	case BackendGG:
		return newGG(img), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Flatten composites img onto an opaque copy of bg, for formats without an
// alpha channel. A fully transparent bg falls back to white.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	c := color.RGBAModel.Convert(bg).(color.RGBA)
	if c.A == 0 {
		c = color.RGBA{255, 255, 255, 255}
	}
	c.A = 255
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(c), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// surface holds the operations both backends share.
type surface struct {
	img *image.RGBA
}

func (s surface) Bounds() image.Rectangle { return s.img.Bounds() }

func (s surface) RGBA() *image.RGBA { return s.img }

func (s surface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s surface) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (s surface) DrawImage(img image.Image, pt image.Point) {
	b := img.Bounds()
	dst := image.Rectangle{Min: pt, Max: pt.Add(b.Size())}
	draw.Draw(s.img, dst, img, b.Min, draw.Over)
}

// offscreen paints a rounded rectangle that does not fit inside dst on a
// scratch tile and composites the visible part.
func offscreen(backend Backend, dst *image.RGBA, rect image.Rectangle, paint func(tile Canvas)) {
	if !rect.Overlaps(dst.Bounds()) {
		return
	}
	tile, _ := Wrap(backend, image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy())))
	paint(tile)
	draw.Draw(dst, rect, tile.RGBA(), image.Point{}, draw.Over)
}
