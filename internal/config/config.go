// Package config loads server and renderer settings.
//
// Values are layered: Defaults, then an optional YAML file, then a .env file
// in the working directory, then process environment variables.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
	"github.com/cristianadrielbraun/roundqr/internal/qr"
)

type Config struct {
	Port       string       `yaml:"port" env:"PORT"`
	UploadsDir string       `yaml:"uploads_dir" env:"UPLOADS_DIR"`
	Render     RenderConfig `yaml:"render"`
}

type RenderConfig struct {
	Pixel         int    `yaml:"pixel" env:"QR_PIXEL"`
	DownloadPixel int    `yaml:"download_pixel" env:"QR_DOWNLOAD_PIXEL"`
	MaxPixel      int    `yaml:"max_pixel" env:"QR_MAX_PIXEL"`
	MaxTextLength int    `yaml:"max_text_length" env:"QR_MAX_TEXT_LENGTH"`
	// MaxEdge caps the edge of a served image in pixels, margin included.
	MaxEdge       int    `yaml:"max_edge" env:"QR_MAX_EDGE"`
	Ink           string `yaml:"ink" env:"QR_INK"`
	Paper         string `yaml:"paper" env:"QR_PAPER"`
	Encoder       string `yaml:"encoder" env:"QR_ENCODER"`
	Level         string `yaml:"level" env:"QR_LEVEL"` // L, M, Q or H
	Backend       string `yaml:"backend" env:"QR_BACKEND"`
}

// MaxQRBytes is the byte capacity of the largest QR version at the lowest
// error correction level. Longer text can never be encoded.
const MaxQRBytes = 2953

// Defaults returns a Config populated with all default values.
func Defaults() *Config {
	return &Config{
		Port:       "8080",
		UploadsDir: "uploads",
		Render: RenderConfig{
			Pixel:         16,
			DownloadPixel: 120,
			MaxPixel:      160,
			MaxTextLength: MaxQRBytes,
			MaxEdge:       8192,
			Ink:           "#000000",
			Paper:         "#ffffff",
			Encoder:       qr.DefaultEncoder,
			Level:         "M",
			Backend:       string(canvas.BackendRasterx),
		},
	}
}

// Load builds the configuration. An empty path skips the YAML layer; a
// missing .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting the renderer cannot use.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("%w: port %q", ErrInvalidConfig, c.Port)
	}
	return c.Render.Validate()
}

func (r RenderConfig) Validate() error {
	switch {
	case r.Pixel <= 0:
		return fmt.Errorf("%w: pixel must be positive", ErrInvalidConfig)
	case r.DownloadPixel <= 0:
		return fmt.Errorf("%w: download_pixel must be positive", ErrInvalidConfig)
	case r.MaxPixel < r.Pixel || r.MaxPixel < r.DownloadPixel:
		return fmt.Errorf("%w: max_pixel is below pixel or download_pixel", ErrInvalidConfig)
	case r.MaxTextLength <= 0:
		return fmt.Errorf("%w: max_text_length must be positive", ErrInvalidConfig)
	case r.MaxEdge < 21*r.Pixel:
		return fmt.Errorf("%w: max_edge cannot hold the smallest code at pixel %d", ErrInvalidConfig, r.Pixel)
	}
	if _, err := r.Options(); err != nil {
		return err
	}
	return nil
}

// Renderer is a RenderConfig resolved into library values.
type Renderer struct {
	Encoder qr.Encoder
	Level   qr.Level
	Backend canvas.Backend
	Ink     color.RGBA
	Paper   color.RGBA
}

// Options resolves names and colors. Errors wrap the qr, canvas or config
// sentinels.
func (r RenderConfig) Options() (Renderer, error) {
	var out Renderer
	var err error
	if out.Encoder, err = qr.EncoderByName(r.Encoder); err != nil {
		return Renderer{}, err
	}
	if out.Level, err = qr.ParseLevel(r.Level); err != nil {
		return Renderer{}, err
	}
	if out.Backend, err = canvas.ParseBackend(r.Backend); err != nil {
		return Renderer{}, err
	}
	if out.Ink, err = ParseColor(r.Ink); err != nil {
		return Renderer{}, fmt.Errorf("ink: %w", err)
	}
	if out.Ink.A != 0xff {
		return Renderer{}, fmt.Errorf("ink: %w: must be opaque", ErrInvalidColor)
	}
	if out.Paper, err = ParseColor(r.Paper); err != nil {
		return Renderer{}, fmt.Errorf("paper: %w", err)
	}
	return out, nil
}

// RenderOptions returns the qr options for r.
func (r Renderer) RenderOptions() []qr.Option {
	return []qr.Option{qr.WithColors(r.Ink, r.Paper), qr.WithBackend(r.Backend)}
}

// ParseColor parses "#rgb", "#rrggbb" (the # is optional) or "transparent".
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "transparent" {
		return color.RGBA{}, nil
	}
	v = strings.TrimPrefix(v, "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{uint8(n >> 16), uint8(n >> 8), uint8(n), 255}, nil
}
