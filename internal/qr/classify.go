package qr

// Corner identifies one quadrant of a module.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// cornerDeltas holds the (dx, dy) step toward each corner.
var cornerDeltas = [4][2]int{
	TopLeft:     {-1, -1},
	TopRight:    {1, -1},
	BottomRight: {1, 1},
	BottomLeft:  {-1, 1},
}

// Shape describes how a single module is painted.
type Shape struct {
	// Active is the effective state of the module.
	Active bool
	// Full means a plain square: an active module continuous along an axis,
	// or an inactive module with no ink pressing into any corner.
	Full bool

	// Extensions of a rounded active dot toward its active neighbors.
	Top, Bottom, Left, Right bool

	// Open marks the corners of an inactive module free of neighbor ink.
	Open [4]bool
}

// classifier answers neighbor questions about a matrix with the reserved
// region blanked out.
type classifier struct {
	m        *Matrix
	reserved Region
}

func newClassifier(m *Matrix) classifier {
	return classifier{m: m, reserved: ReservedRegion(m.Size())}
}

// value is the effective state of a module: out-of-range and reserved
// modules are inactive. All neighbor checks go through it.
func (c classifier) value(row, column int) bool {
	return !c.reserved.Contains(row, column) && c.m.At(row, column)
}

// mergedFull reports whether the module has active neighbors on both sides
// of either axis.
func (c classifier) mergedFull(row, column int) bool {
	return (c.value(row-1, column) && c.value(row+1, column)) ||
		(c.value(row, column-1) && c.value(row, column+1))
}

// openCorner reports whether the vertical, horizontal and diagonal neighbors
// toward (dx, dy) are not all active.
func (c classifier) openCorner(row, column, dx, dy int) bool {
	return !c.value(row+dy, column) ||
		!c.value(row, column+dx) ||
		!c.value(row+dy, column+dx)
}

// fullyOpen reports whether every corner of the module is open.
func (c classifier) fullyOpen(row, column int) bool {
	for _, d := range cornerDeltas {
		if !c.openCorner(row, column, d[0], d[1]) {
			return false
		}
	}
	return true
}

// shape classifies the module at (row, column).
func (c classifier) shape(row, column int) Shape {
	if c.value(row, column) {
		s := Shape{Active: true, Full: c.mergedFull(row, column)}
		if s.Full {
			return s
		}
		s.Top = c.value(row-1, column)
		s.Bottom = !s.Top && c.value(row+1, column)
		s.Left = c.value(row, column-1)
		s.Right = !s.Left && c.value(row, column+1)
		return s
	}
	var s Shape
	for corner, d := range cornerDeltas {
		s.Open[corner] = c.openCorner(row, column, d[0], d[1])
	}
	s.Full = s.Open[TopLeft] && s.Open[TopRight] && s.Open[BottomRight] && s.Open[BottomLeft]
	return s
}

// Classify returns the shape of every module of m in row-major order.
func Classify(m *Matrix) ([]Shape, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	c := newClassifier(m)
	size := m.Size()
	shapes := make([]Shape, 0, size*size)
	for row := 0; row < size; row++ {
		for column := 0; column < size; column++ {
			shapes = append(shapes, c.shape(row, column))
		}
	}
	return shapes, nil
}
