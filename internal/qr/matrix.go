package qr

import "fmt"

// Matrix is a square grid of modules, true meaning active (ink).
// A Matrix is immutable once built.
type Matrix struct {
	size  int
	cells []bool
}

// NewMatrix builds a Matrix from row-major cells, cell (row, column) being
// cells[row*size+column]. The slice is copied.
func NewMatrix(size int, cells []bool) (*Matrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidMatrix, size)
	}
	if len(cells) != size*size {
		return nil, fmt.Errorf("%w: %d cells for size %d", ErrInvalidMatrix, len(cells), size)
	}
	m := &Matrix{size: size, cells: make([]bool, len(cells))}
	copy(m.cells, cells)
	return m, nil
}

// NewMatrixFunc builds a size × size Matrix by asking active for every cell.
func NewMatrixFunc(size int, active func(row, column int) bool) (*Matrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidMatrix, size)
	}
	m := &Matrix{size: size, cells: make([]bool, size*size)}
	for row := 0; row < size; row++ {
		for column := 0; column < size; column++ {
			m.cells[row*size+column] = active(row, column)
		}
	}
	return m, nil
}

// Size returns the number of modules along one edge.
func (m *Matrix) Size() int { return m.size }

// At reports whether the module at (row, column) is active.
// Coordinates outside the grid are inactive.
func (m *Matrix) At(row, column int) bool {
	if row < 0 || row >= m.size || column < 0 || column >= m.size {
		return false
	}
	return m.cells[row*m.size+column]
}

// Validate reports ErrInvalidMatrix for a nil or inconsistent matrix, such as
// a zero Matrix value.
func (m *Matrix) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil matrix", ErrInvalidMatrix)
	}
	if m.size <= 0 || len(m.cells) != m.size*m.size {
		return fmt.Errorf("%w: %d cells for size %d", ErrInvalidMatrix, len(m.cells), m.size)
	}
	return nil
}
