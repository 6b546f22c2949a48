package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face5x7 is a 5×7 pixel font that fits a single matrix row of modules with
// one pixel to spare. It covers printable ASCII; lower case letters render as
// upper case and characters without a glyph render blank.
var Face5x7 font.Face = newFace5x7()

// font5x7 glyphs are stored as 5 columns, bit 0 being the top row.
var font5x7 = map[rune][5]byte{
	'A': {0x7E, 0x09, 0x09, 0x09, 0x7E},
	'B': {0x7F, 0x49, 0x49, 0x49, 0x36},
	'C': {0x3E, 0x41, 0x41, 0x41, 0x22},
	'D': {0x7F, 0x41, 0x41, 0x22, 0x1C},
	'E': {0x7F, 0x49, 0x49, 0x49, 0x41},
	'F': {0x7F, 0x09, 0x09, 0x09, 0x01},
	'G': {0x3E, 0x41, 0x49, 0x49, 0x3A},
	'H': {0x7F, 0x08, 0x08, 0x08, 0x7F},
	'I': {0x00, 0x41, 0x7F, 0x41, 0x00},
	'J': {0x20, 0x40, 0x41, 0x3F, 0x01},
	'K': {0x7F, 0x08, 0x14, 0x22, 0x41},
	'L': {0x7F, 0x40, 0x40, 0x40, 0x40},
	'M': {0x7F, 0x02, 0x0C, 0x02, 0x7F},
	'N': {0x7F, 0x04, 0x08, 0x10, 0x7F},
	'O': {0x3E, 0x41, 0x41, 0x41, 0x3E},
	'P': {0x7F, 0x09, 0x09, 0x09, 0x06},
	'Q': {0x3E, 0x41, 0x51, 0x21, 0x5E},
	'R': {0x7F, 0x09, 0x19, 0x29, 0x46},
	'S': {0x26, 0x49, 0x49, 0x49, 0x32},
	'T': {0x01, 0x01, 0x7F, 0x01, 0x01},
	'U': {0x3F, 0x40, 0x40, 0x40, 0x3F},
	'V': {0x1F, 0x20, 0x40, 0x20, 0x1F},
	'W': {0x3F, 0x40, 0x30, 0x40, 0x3F},
	'X': {0x63, 0x14, 0x08, 0x14, 0x63},
	'Y': {0x07, 0x08, 0x70, 0x08, 0x07},
	'Z': {0x61, 0x51, 0x49, 0x45, 0x43},
	'0': {0x3E, 0x51, 0x49, 0x45, 0x3E},
	'1': {0x00, 0x42, 0x7F, 0x40, 0x00},
	'2': {0x42, 0x61, 0x51, 0x49, 0x46},
	'3': {0x21, 0x41, 0x45, 0x4B, 0x31},
	'4': {0x18, 0x14, 0x12, 0x7F, 0x10},
	'5': {0x27, 0x45, 0x45, 0x45, 0x39},
	'6': {0x3C, 0x4A, 0x49, 0x49, 0x30},
	'7': {0x01, 0x71, 0x09, 0x05, 0x03},
	'8': {0x36, 0x49, 0x49, 0x49, 0x36},
	'9': {0x06, 0x49, 0x49, 0x29, 0x1E},
	'!': {0x00, 0x00, 0x5F, 0x00, 0x00},
	'.': {0x00, 0x60, 0x60, 0x00, 0x00},
	',': {0x00, 0x50, 0x30, 0x00, 0x00},
	':': {0x00, 0x36, 0x36, 0x00, 0x00},
	'-': {0x08, 0x08, 0x08, 0x08, 0x08},
	'+': {0x08, 0x08, 0x3E, 0x08, 0x08},
	'=': {0x14, 0x14, 0x14, 0x14, 0x14},
	'/': {0x20, 0x10, 0x08, 0x04, 0x02},
	'?': {0x02, 0x01, 0x51, 0x09, 0x06},
	'%': {0x23, 0x13, 0x08, 0x64, 0x62},
	'(': {0x00, 0x1C, 0x22, 0x41, 0x00},
	')': {0x00, 0x41, 0x22, 0x1C, 0x00},
}

const (
	face5x7First = ' '
	face5x7Last  = '~'
)

func newFace5x7() *basicfont.Face {
	const (
		w = 5
		h = 7
	)
	n := face5x7Last - face5x7First + 1
	mask := image.NewAlpha(image.Rect(0, 0, w, h*int(n)))
	for r := face5x7First; r <= face5x7Last; r++ {
		glyph, ok := font5x7[r]
		if !ok && r >= 'a' && r <= 'z' {
			glyph = font5x7[r-'a'+'A']
		}
		top := int(r-face5x7First) * h
		for x, col := range glyph {
			for y := 0; y < h; y++ {
				if col&(1<<uint(y)) != 0 {
					mask.SetAlpha(x, top+y, color.Alpha{A: 0xff})
				}
			}
		}
	}
	return &basicfont.Face{
		Advance: w + 1,
		Width:   w,
		Height:  h + 1,
		Ascent:  h,
		Descent: 0,
		Mask:    mask,
		Ranges: []basicfont.Range{
			{Low: face5x7First, High: face5x7Last + 1, Offset: 0},
		},
	}
}

// LoadFace parses a TrueType font and returns a face of the given size in pixels.
func LoadFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// String draws s with its baseline starting at dot and returns the dot
// position after the last glyph.
func String(dst Image, dot image.Point, face font.Face, s string, c color.Color) image.Point {
	if face == nil {
		face = Face5x7
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(s)
	return image.Pt(d.Dot.X.Round(), d.Dot.Y.Round())
}

// MeasureString returns the width in pixels of s.
func MeasureString(face font.Face, s string) int {
	if face == nil {
		face = Face5x7
	}
	return font.MeasureString(face, s).Ceil()
}
