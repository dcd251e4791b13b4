package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/roundqr/internal/qr"
)

var extentCmd = &cobra.Command{
	Use:   "extent TEXT",
	Short: "Print the matrix size and the reserved center extent",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtent,
}

var extentFlags renderFlags

func init() {
	extentFlags.register(extentCmd)
}

func runExtent(cmd *cobra.Command, args []string) error {
	cfg, err := extentFlags.load(cmd)
	if err != nil {
		return err
	}
	r, err := cfg.Render.Options()
	if err != nil {
		return err
	}
	m, err := qr.EncodeWith(args[0], r.Encoder, r.Level)
	if err != nil {
		return err
	}

	region := qr.ReservedRegion(m.Size())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "modules: %d\n", m.Size())
	fmt.Fprintf(out, "reserved modules: %d\n", region.Count)
	fmt.Fprintf(out, "reserved pixels: %d\n", qr.ReservedPixelExtent(m, cfg.Render.Pixel))
	return nil
}
