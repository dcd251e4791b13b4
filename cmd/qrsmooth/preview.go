package main

import (
	"io"
	"strings"

	"github.com/cristianadrielbraun/roundqr/internal/qr"
)

// Half-block glyphs by which halves of the cell show paper.
const (
	blockFull  = "█"
	blockUpper = "▀"
	blockLower = "▄"
	blockNone  = " "
)

// writeHalfBlocks prints m two module rows per text line, surrounded by quiet
// modules of paper. Paper is drawn as block so the code scans on a dark
// terminal.
func writeHalfBlocks(w io.Writer, m *qr.Matrix, quiet int) error {
	if err := m.Validate(); err != nil {
		return err
	}
	first, last := -quiet, m.Size()-1+quiet
	paper := func(row, column int) bool {
		return row <= last && !m.At(row, column)
	}

	var b strings.Builder
	for row := first; row <= last; row += 2 {
		for column := first; column <= last; column++ {
			upper, lower := paper(row, column), paper(row+1, column)
			switch {
			case upper && lower:
				b.WriteString(blockFull)
			case upper:
				b.WriteString(blockUpper)
			case lower:
				b.WriteString(blockLower)
			default:
				b.WriteString(blockNone)
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
