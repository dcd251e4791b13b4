package qr

import (
	"fmt"

	skip2 "github.com/skip2/go-qrcode"
)

var skip2Levels = map[Level]skip2.RecoveryLevel{
	LevelLow:      skip2.Low,
	LevelMedium:   skip2.Medium,
	LevelQuartile: skip2.High,
	LevelHigh:     skip2.Highest,
}

func encodeSkip2(text string, level Level) (*Matrix, error) {
	rl, ok := skip2Levels[level]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLevel, level)
	}
	q, err := skip2.New(text, rl)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	bits := q.Bitmap()
	return NewMatrixFunc(len(bits), func(row, column int) bool {
		return bits[row][column]
	})
}
