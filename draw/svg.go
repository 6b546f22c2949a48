package draw

import (
	"fmt"
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Icon rasterizes the SVG document read from r, scaled to fit rect on dst.
//
// Anti-aliased edges are thresholded by the color model of dst, so on a binary
// surface a pixel lights up when at least half of it is covered.
func Icon(dst Image, rect image.Rectangle, r io.Reader) error {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return fmt.Errorf("draw: parse SVG icon: %w", err)
	}

	rect = rect.Canon()
	icon.SetTarget(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))

	var (
		b       = dst.Bounds()
		w, h    = b.Max.X, b.Max.Y
		scanner = rasterx.NewScannerGV(w, h, dst, b)
		raster  = rasterx.NewDasher(w, h, scanner)
	)
	icon.Draw(raster, 1)
	return nil
}
