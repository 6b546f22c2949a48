package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// BinaryImage is a monochrome image that stores one byte per pixel, holding either 0 or 1.
//
// Pixel (x, y) lives at Pix[x+y*Stride]. Writes never need to mask neighbouring
// pixels; packing into a wire format is left to the consumer.
type BinaryImage struct {
	Buffer
}

// NewBinaryImage returns a cleared w×h image.
func NewBinaryImage(w, h int) *BinaryImage {
	return &BinaryImage{
		Buffer: makeBuffer(w, h, w, w*h),
	}
}

// NewBinaryImageFrom wraps pix as a w×h image. The caller must ensure len(pix) == w*h.
func NewBinaryImageFrom(w, h int, pix []byte) *BinaryImage {
	return &BinaryImage{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    pix,
			Stride: w,
		},
	}
}

func (p *BinaryImage) ColorModel() color.Model {
	return MonoModel
}

// PixOffset returns the index of the pixel at (x, y) in Pix.
func (p *BinaryImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *BinaryImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Pix[p.PixOffset(x, y)] != 0}
}

// MonoAt returns the pixel at (x, y), or Off outside the image bounds.
func (p *BinaryImage) MonoAt(x, y int) Mono {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return Off
	}
	return Mono{On: p.Pix[p.PixOffset(x, y)] != 0}
}

func (p *BinaryImage) Set(x, y int, c color.Color) {
	p.SetMono(x, y, monoModel(c).(Mono))
}

// SetMono sets the pixel at (x, y). Points outside the image bounds are ignored.
func (p *BinaryImage) SetMono(x, y int, c Mono) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = c.Bit()
}

func (p *BinaryImage) Fill(c color.Color) {
	value := monoModel(c).(Mono).Bit()
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Interface checks.
var (
	_ Image = (*BinaryImage)(nil)
)
