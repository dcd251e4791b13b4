// Package logo prepares images pasted into the blank center of a code.
//
// Raster logos (PNG, JPEG, GIF, WebP) are decoded with the image package
// decoders, SVG logos are rasterized with oksvg, and Fit scales either to the
// pixel extent reported by qr.ReservedPixelExtent.
package logo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNoRoom indicates the target extent is zero, so no logo fits.
	ErrNoRoom = errors.New("logo: no room reserved for a logo")
	// ErrDecode wraps image and SVG decoding failures.
	ErrDecode = errors.New("logo: failed to decode image")
)

// sniffLen is how many leading bytes are inspected to tell SVG from raster.
const sniffLen = 512

// Decode reads a raster or SVG image. SVG documents are rasterized at their
// own view box size.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)
	if isSVG(head) {
		return decodeSVG(br, 0)
	}
	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// DecodeSVG rasterizes an SVG document into a side × side image, keeping the
// drawing's aspect ratio.
func DecodeSVG(r io.Reader, side int) (*image.RGBA, error) {
	if side <= 0 {
		return nil, ErrNoRoom
	}
	return decodeSVG(r, side)
}

// Load opens path and returns the logo fitted into side × side pixels.
func Load(path string, side int) (*image.RGBA, error) {
	if side <= 0 {
		return nil, ErrNoRoom
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open logo: %w", err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, sniffLen)
	head, _ := br.Peek(sniffLen)
	if isSVG(head) {
		// Vector logos are drawn straight at the target size.
		return decodeSVG(br, side)
	}
	img, err := Decode(br)
	if err != nil {
		return nil, err
	}
	return Fit(img, side)
}

// Fit scales img so that its longer edge equals side, preserving the aspect
// ratio. The result is anchored at the origin.
func Fit(img image.Image, side int) (*image.RGBA, error) {
	if side <= 0 {
		return nil, ErrNoRoom
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	w, h := side, side
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*side/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*side/b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

func isSVG(head []byte) bool {
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// decodeSVG rasterizes an SVG. side 0 keeps the document's own size.
func decodeSVG(r io.Reader, side int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("%w: svg has no view box", ErrDecode)
	}

	w, h := int(vw), int(vh)
	if side > 0 {
		w, h = side, side
		if vw > vh {
			h = max(1, int(float64(side)*vh/vw))
		} else if vh > vw {
			w = max(1, int(float64(side)*vw/vh))
		}
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: svg is smaller than a pixel", ErrDecode)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}
