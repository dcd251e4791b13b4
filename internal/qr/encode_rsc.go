package qr

import (
	"fmt"

	rscqr "rsc.io/qr"
)

var rscLevels = map[Level]rscqr.Level{
	LevelLow:      rscqr.L,
	LevelMedium:   rscqr.M,
	LevelQuartile: rscqr.Q,
	LevelHigh:     rscqr.H,
}

func encodeRSC(text string, level Level) (*Matrix, error) {
	l, ok := rscLevels[level]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLevel, level)
	}
	code, err := rscqr.Encode(text, l)
	if err != nil {
		return nil, err
	}
	// Black takes (x, y), that is (column, row).
	return NewMatrixFunc(code.Size, func(row, column int) bool {
		return code.Black(column, row)
	})
}
