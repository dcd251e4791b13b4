package qr

import (
	"fmt"
	"sort"
	"strings"
)

// Level is the error correction level requested from an encoder.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelQuartile
	LevelHigh
)

// String returns the single-letter name of the level.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "L"
	case LevelMedium:
		return "M"
	case LevelQuartile:
		return "Q"
	case LevelHigh:
		return "H"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel parses "L", "M", "Q" or "H" (case-insensitive). Empty means medium.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LOW":
		return LevelLow, nil
	case "", "M", "MEDIUM":
		return LevelMedium, nil
	case "Q", "QUARTILE":
		return LevelQuartile, nil
	case "H", "HIGH":
		return LevelHigh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Encoder turns text into a module matrix. Implementations must return a
// square matrix without a quiet zone.
type Encoder interface {
	Encode(text string, level Level) (*Matrix, error)
}

// EncoderFunc adapts a function to Encoder.
type EncoderFunc func(text string, level Level) (*Matrix, error)

// Encode implements Encoder.
func (f EncoderFunc) Encode(text string, level Level) (*Matrix, error) {
	return f(text, level)
}

// Built-in encoders, keyed by the name accepted in configuration.
var (
	Yeqown Encoder = EncoderFunc(encodeYeqown)
	Skip2  Encoder = EncoderFunc(encodeSkip2)
	RSC    Encoder = EncoderFunc(encodeRSC)

	encoders = map[string]Encoder{
		"yeqown": Yeqown,
		"skip2":  Skip2,
		"rsc":    RSC,
	}
)

// DefaultEncoder is the encoder name used when none is configured.
const DefaultEncoder = "yeqown"

// EncoderByName returns a built-in encoder. Empty selects DefaultEncoder.
func EncoderByName(name string) (Encoder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultEncoder
	}
	enc, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownEncoder, name, strings.Join(EncoderNames(), ", "))
	}
	return enc, nil
}

// EncoderNames lists the built-in encoder names in sorted order.
func EncoderNames() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode encodes text with the default encoder at medium error correction.
func Encode(text string) (*Matrix, error) {
	return EncodeWith(text, Yeqown, LevelMedium)
}

// EncodeWith encodes text with enc. Empty text is rejected before the encoder
// runs; encoder failures are wrapped with ErrEncode.
func EncodeWith(text string, enc Encoder, level Level) (*Matrix, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if enc == nil {
		enc = Yeqown
	}
	m, err := enc.Encode(text, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return m, nil
}
