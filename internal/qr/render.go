package qr

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
)

// Render paints m at pixel pixels per module and returns a new
// (size*pixel) × (size*pixel) surface.
func Render(m *Matrix, pixel int, opts ...Option) (*image.RGBA, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if pixel <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPixelScale, pixel)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Rounded paper shapes are painted source-over, so a translucent paper
	// is painted as an opaque stand-in and keyed out afterwards.
	paper := o.paper
	stand, translucent := standIn(o.ink, paper)
	if translucent {
		o.paper = stand
	}

	size := m.Size()
	cv, err := canvas.New(o.backend, size*pixel, size*pixel)
	if err != nil {
		return nil, err
	}
	cv.Fill(o.paper)

	r, err := newRasterizer(cv, pixel, o)
	if err != nil {
		return nil, err
	}
	c := newClassifier(m)
	for row := 0; row < size; row++ {
		for column := 0; column < size; column++ {
			if inFinderZone(size, row, column) {
				continue
			}
			r.module(column*pixel, row*pixel, c.shape(row, column))
		}
	}
	drawFinders(cv, size, pixel, o.ink, o.paper)
	if translucent {
		knockOut(cv.RGBA(), o.ink, stand, paper)
	}
	return cv.RGBA(), nil
}

// rasterizer paints single modules. The rounded dots are drawn once and
// blitted for every module that needs one.
type rasterizer struct {
	cv       canvas.Canvas
	pixel    int
	half     int
	skip     int
	ink      color.Color
	paper    color.Color
	inkDot   *image.RGBA
	paperDot *image.RGBA
}

func newRasterizer(cv canvas.Canvas, pixel int, o options) (*rasterizer, error) {
	inkDot, err := dot(o.backend, pixel, o.ink, o.paper)
	if err != nil {
		return nil, err
	}
	paperDot, err := dot(o.backend, pixel, o.paper, o.ink)
	if err != nil {
		return nil, err
	}
	return &rasterizer{
		cv:       cv,
		pixel:    pixel,
		half:     pixel / 2,
		skip:     pixel - pixel/2,
		ink:      o.ink,
		paper:    o.paper,
		inkDot:   inkDot,
		paperDot: paperDot,
	}, nil
}

// dot draws a fully rounded fg square on a bg tile.
func dot(backend canvas.Backend, pixel int, fg, bg color.Color) (*image.RGBA, error) {
	cv, err := canvas.New(backend, pixel, pixel)
	if err != nil {
		return nil, err
	}
	cv.Fill(bg)
	cv.FillRoundedRect(cv.Bounds(), float64(pixel)/2, fg)
	return cv.RGBA(), nil
}

func (r *rasterizer) module(x, y int, s Shape) {
	cell := image.Rect(x, y, x+r.pixel, y+r.pixel)
	switch {
	case s.Active && s.Full:
		r.cv.FillRect(cell, r.ink)
	case s.Active:
		r.cv.DrawImage(r.inkDot, cell.Min)
		if s.Top {
			r.cv.FillRect(r.topStrip(x, y), r.ink)
		} else if s.Bottom {
			r.cv.FillRect(r.bottomStrip(x, y), r.ink)
		}
		if s.Left {
			r.cv.FillRect(r.leftStrip(x, y), r.ink)
		} else if s.Right {
			r.cv.FillRect(r.rightStrip(x, y), r.ink)
		}
	case s.Full:
		r.cv.FillRect(cell, r.paper)
	default:
		r.cv.DrawImage(r.paperDot, cell.Min)
		open := s.Open
		if open[TopLeft] && open[TopRight] {
			r.cv.FillRect(r.topStrip(x, y), r.paper)
		} else if open[BottomLeft] && open[BottomRight] {
			r.cv.FillRect(r.bottomStrip(x, y), r.paper)
		}
		if open[TopLeft] && open[BottomLeft] {
			r.cv.FillRect(r.leftStrip(x, y), r.paper)
		} else if open[TopRight] && open[BottomRight] {
			r.cv.FillRect(r.rightStrip(x, y), r.paper)
		}
		for corner, ok := range open {
			if ok {
				r.cv.FillRect(r.quarter(x, y, Corner(corner)), r.paper)
			}
		}
	}
}

func (r *rasterizer) topStrip(x, y int) image.Rectangle {
	return image.Rect(x, y, x+r.pixel, y+r.half)
}

func (r *rasterizer) bottomStrip(x, y int) image.Rectangle {
	return image.Rect(x, y+r.skip, x+r.pixel, y+r.pixel)
}

func (r *rasterizer) leftStrip(x, y int) image.Rectangle {
	return image.Rect(x, y, x+r.half, y+r.pixel)
}

func (r *rasterizer) rightStrip(x, y int) image.Rectangle {
	return image.Rect(x+r.skip, y, x+r.pixel, y+r.pixel)
}

func (r *rasterizer) quarter(x, y int, c Corner) image.Rectangle {
	switch c {
	case TopRight:
		return image.Rect(x+r.skip, y, x+r.pixel, y+r.half)
	case BottomRight:
		return image.Rect(x+r.skip, y+r.skip, x+r.pixel, y+r.pixel)
	case BottomLeft:
		return image.Rect(x, y+r.skip, x+r.half, y+r.pixel)
	default:
		return image.Rect(x, y, x+r.half, y+r.half)
	}
}
