// Package qr renders smoothed QR-style code images from a module matrix.
//
// Active modules are drawn as rounded dots that fuse into continuous shapes
// with their active neighbors, inactive modules are carved the same way so
// open space reads clean, and the three finder markers are replaced by nested
// rounded squares. A centered block of modules can be left blank for a logo
// which is pasted afterwards with CompositeCenter.
//
// # Usage
//
//	m, err := qr.Encode("https://example.com")
//	if err != nil {
//		return err
//	}
//	img, err := qr.Render(m, 16)
//	if err != nil {
//		return err
//	}
//	overlay, err := logo.Load("logo.svg", qr.ReservedPixelExtent(m, 16))
//	if err == nil {
//		img = qr.CompositeCenter(img, overlay)
//	}
//
// Rendering is synchronous and allocates a new surface per call; concurrent
// renders share nothing.
package qr
