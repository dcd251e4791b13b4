package qr

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
)

var backends = []canvas.Backend{canvas.BackendRasterx, canvas.BackendGG}

// gridFromRows builds a matrix from strings where '#' is active.
func gridFromRows(t *testing.T, rows ...string) *Matrix {
	t.Helper()
	m, err := NewMatrixFunc(len(rows), func(row, column int) bool {
		return rows[row][column] == '#'
	})
	require.NoError(t, err)
	return m
}

// randomMatrix returns a deterministic pseudo-random matrix.
func randomMatrix(t *testing.T, size int, seed int64) *Matrix {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := NewMatrixFunc(size, func(int, int) bool { return rng.Intn(2) == 1 })
	require.NoError(t, err)
	return m
}

// withActive returns a size × size matrix where only the listed cells are active.
func withActive(t *testing.T, size int, cells ...[2]int) *Matrix {
	t.Helper()
	set := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	m, err := NewMatrixFunc(size, func(row, column int) bool { return set[[2]int{row, column}] })
	require.NoError(t, err)
	return m
}

func isInk(c color.RGBA) bool   { return int(c.R)+int(c.G)+int(c.B) < 3*64 }
func isPaper(c color.RGBA) bool { return int(c.R)+int(c.G)+int(c.B) > 3*192 }

// cellPixels copies the pixels of one module out of img.
func cellPixels(img *image.RGBA, row, column, pixel int) *image.RGBA {
	r := image.Rect(column*pixel, row*pixel, (column+1)*pixel, (row+1)*pixel)
	out := image.NewRGBA(image.Rect(0, 0, pixel, pixel))
	for y := 0; y < pixel; y++ {
		for x := 0; x < pixel; x++ {
			out.SetRGBA(x, y, img.RGBAAt(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out
}

// assertNear compares colors allowing for antialiasing rounding.
func assertNear(t *testing.T, want, got color.RGBA, msgAndArgs ...interface{}) {
	t.Helper()
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	if diff(want.R, got.R) > 2 || diff(want.G, got.G) > 2 || diff(want.B, got.B) > 2 || diff(want.A, got.A) > 2 {
		assert.Fail(t, fmt.Sprintf("color %v not near %v", got, want), msgAndArgs...)
	}
}
