package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
	"github.com/cristianadrielbraun/roundqr/internal/logo"
	"github.com/cristianadrielbraun/roundqr/internal/qr"
)

var renderCmd = &cobra.Command{
	Use:   "render TEXT",
	Short: "Render TEXT as a rounded QR code image",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

// previewQuiet is the quiet zone, in modules, around the terminal preview.
const previewQuiet = 2

var (
	renderOpts  renderFlags
	flagOut     string
	flagLogo    string
	flagPreview bool
)

func init() {
	renderOpts.register(renderCmd)
	renderCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file, .png or .jpg")
	renderCmd.Flags().StringVar(&flagLogo, "logo", "", "image or SVG pasted into the reserved center")
	renderCmd.Flags().BoolVar(&flagPreview, "preview", false, "also print the encoded matrix to the terminal")
	_ = renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()
	text := args[0]

	cfg, err := renderOpts.load(cmd)
	if err != nil {
		return err
	}
	r, err := cfg.Render.Options()
	if err != nil {
		return err
	}

	m, err := qr.EncodeWith(text, r.Encoder, r.Level)
	if err != nil {
		return err
	}
	pixel := cfg.Render.Pixel
	img, err := qr.Render(m, pixel, r.RenderOptions()...)
	if err != nil {
		return err
	}
	slog.Debug("rendered", "modules", m.Size(), "pixel", pixel, "encoder", cfg.Render.Encoder)

	if flagLogo != "" {
		extent := qr.ReservedPixelExtent(m, pixel)
		overlay, err := logo.Load(flagLogo, extent)
		switch {
		case errors.Is(err, logo.ErrNoRoom):
			slog.Warn("code too small for a logo, skipping", "modules", m.Size())
		case err != nil:
			return err
		default:
			img = qr.CompositeCenter(img, overlay)
		}
	}

	if err := writeImage(flagOut, img, r.Paper); err != nil {
		return err
	}
	slog.Info("wrote code", "path", flagOut, "size", img.Bounds().Dx(), "elapsed", time.Since(start))

	if flagPreview {
		return writeHalfBlocks(cmd.OutOrStdout(), m, previewQuiet)
	}
	return nil
}

// writeImage encodes img by the file extension: JPEG for .jpg/.jpeg, PNG otherwise.
func writeImage(path string, img *image.RGBA, paper color.Color) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := encodeImage(f, filepath.Ext(path), img, paper); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeImage(w io.Writer, ext string, img *image.RGBA, paper color.Color) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, canvas.Flatten(img, paper), &jpeg.Options{Quality: 92})
	default:
		return png.Encode(w, img)
	}
}
