package qr

// Region is the centered square of modules kept blank for a logo.
// Modules with both row and column in [From, Till) are reserved.
type Region struct {
	From  int
	Till  int
	Count int
}

// Empty reports whether no module is reserved.
func (r Region) Empty() bool { return r.Count <= 0 }

// Contains reports whether (row, column) lies in the reserved square.
func (r Region) Contains(row, column int) bool {
	return r.Count > 0 &&
		row >= r.From && row < r.Till &&
		column >= r.From && column < r.Till
}

// ReservedRegion returns the centered region reserved in a size × size grid.
// A quarter of the edge is reserved, reduced by one when needed so that the
// remaining border splits evenly on both sides.
func ReservedRegion(size int) Region {
	elements := size / 4
	shift := (size - elements) % 2
	count := elements - shift
	if count <= 0 {
		return Region{}
	}
	from := (size - count) / 2
	return Region{From: from, Till: size - from, Count: count}
}

// ReservedPixelExtent returns the edge in pixels of the reserved region of m
// at the given pixel scale, or 0 when nothing is reserved.
func ReservedPixelExtent(m *Matrix, pixel int) int {
	if m == nil || pixel <= 0 {
		return 0
	}
	return ReservedRegion(m.Size()).Count * pixel
}
