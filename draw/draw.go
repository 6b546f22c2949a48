// Package draw renders graphics onto binary pixel surfaces such as an LED matrix.
//
// Surfaces accept pixels in two ways: as a [draw.Image] through Set, or as a
// stream of [Pixel] values through a [Target]. Any [image.Image] can be turned
// into such a stream with [Pixels].
package draw

import (
	"image"
	"image/draw"
	"iter"

	"github.com/BeatGlow/max7219/pixel"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Pixel is a position and its on/off state.
type Pixel struct {
	image.Point
	On bool
}

// Target is a drawable surface with a fixed bounding box that accepts pixel streams.
type Target interface {
	// Bounds is the surface bounding box.
	Bounds() image.Rectangle

	// DrawPixels applies every pixel in order. Pixels outside Bounds are
	// ignored; drawing never fails.
	DrawPixels(pixels iter.Seq[Pixel])
}

// Pixels yields every pixel of src, row by row, converted to on/off.
func Pixels(src image.Image) iter.Seq[Pixel] {
	return func(yield func(Pixel) bool) {
		r := src.Bounds()
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := pixel.MonoModel.Convert(src.At(x, y)).(pixel.Mono)
				if !yield(Pixel{Point: image.Pt(x, y), On: c.On}) {
					return
				}
			}
		}
	}
}

// Points yields the given points, each with the same state.
func Points(on bool, points ...image.Point) iter.Seq[Pixel] {
	return func(yield func(Pixel) bool) {
		for _, pt := range points {
			if !yield(Pixel{Point: pt, On: on}) {
				return
			}
		}
	}
}

// Copy draws src onto dst with its origin at sp.
func Copy(dst Target, sp image.Point, src image.Image) {
	dst.DrawPixels(func(yield func(Pixel) bool) {
		for p := range Pixels(src) {
			p.Point = p.Point.Sub(src.Bounds().Min).Add(sp)
			if !yield(p) {
				return
			}
		}
	})
}
