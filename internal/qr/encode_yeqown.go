package qr

import (
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
)

var yeqownLevels = map[Level]qrcode.EncodeOption{
	LevelLow:      qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow),
	LevelMedium:   qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
	LevelQuartile: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart),
	LevelHigh:     qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
}

func encodeYeqown(text string, level Level) (*Matrix, error) {
	opt, ok := yeqownLevels[level]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLevel, level)
	}
	qrc, err := qrcode.NewWith(text, opt)
	if err != nil {
		return nil, err
	}
	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, err
	}
	return w.m, nil
}

// matrixWriter is a qrcode.Writer that keeps the module matrix instead of
// drawing it.
type matrixWriter struct {
	m *Matrix
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	size := mat.Width()
	if size != mat.Height() {
		return fmt.Errorf("matrix is %dx%d, want square", mat.Width(), mat.Height())
	}
	cells := make([]bool, size*size)
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		cells[y*size+x] = v.IsSet()
	})
	m, err := NewMatrix(size, cells)
	if err != nil {
		return err
	}
	w.m = m
	return nil
}

func (w *matrixWriter) Close() error { return nil }
