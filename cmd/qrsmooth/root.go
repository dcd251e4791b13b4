package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/roundqr/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "qrsmooth",
	Short:         "Render QR codes with rounded, connected modules",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

var (
	flagConfig  string
	flagVerbose bool
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(extentCmd)
	rootCmd.AddCommand(versionCmd)
}

// renderFlags are the render settings a command may override.
type renderFlags struct {
	pixel   int
	ink     string
	paper   string
	encoder string
	ecc     string
	backend string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.pixel, "pixel", 0, "pixels per module (default from config)")
	fs.StringVar(&f.ink, "ink", "", "ink color, #rgb or #rrggbb")
	fs.StringVar(&f.paper, "paper", "", "paper color, #rgb, #rrggbb or transparent")
	fs.StringVar(&f.encoder, "encoder", "", "QR encoder: rsc, skip2 or yeqown")
	fs.StringVar(&f.ecc, "ecc", "", "error correction level: L, M, Q or H")
	fs.StringVar(&f.backend, "backend", "", "rasterizer: rasterx or gg")
}

// load reads the configuration and applies the flags the user set.
func (f *renderFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	fs := cmd.Flags()
	rc := &cfg.Render
	if fs.Changed("pixel") {
		rc.Pixel = f.pixel
		rc.MaxPixel = max(rc.MaxPixel, f.pixel)
	}
	if fs.Changed("ink") {
		rc.Ink = f.ink
	}
	if fs.Changed("paper") {
		rc.Paper = f.paper
	}
	if fs.Changed("encoder") {
		rc.Encoder = f.encoder
	}
	if fs.Changed("ecc") {
		rc.Level = f.ecc
	}
	if fs.Changed("backend") {
		rc.Backend = f.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
