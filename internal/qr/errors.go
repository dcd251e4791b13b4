package qr

import "errors"

var (
	// ErrEmptyText indicates Encode was called with an empty string.
	ErrEmptyText = errors.New("qr: text must not be empty")
	// ErrEncode wraps failures reported by the underlying encoder.
	ErrEncode = errors.New("qr: failed to encode text")
	// ErrInvalidMatrix indicates a nil matrix, a non-positive size or a cell
	// count other than size*size.
	ErrInvalidMatrix = errors.New("qr: invalid module matrix")
	// ErrInvalidPixelScale indicates a non-positive pixel scale.
	ErrInvalidPixelScale = errors.New("qr: pixel scale must be positive")
	// ErrUnknownEncoder is returned by EncoderByName for unsupported names.
	ErrUnknownEncoder = errors.New("qr: unknown encoder")
	// ErrUnknownLevel is returned by ParseLevel for unsupported levels.
	ErrUnknownLevel = errors.New("qr: unknown error correction level")
)
