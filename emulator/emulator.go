// Package emulator emulates a chain of cascaded MAX7219 LED matrix modules.
//
// A Chain implements max7219.Conn. Every write is shifted through the chips'
// 16-bit shift registers exactly as on the wire, and latched into the chips'
// registers when the write completes, which is when LOAD returns high on real
// hardware. The chain can then be inspected per chip, or as an image of the
// LEDs that would be lit.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/BeatGlow/max7219"
	"github.com/BeatGlow/max7219/pixel"
)

// ErrClosed is returned when writing to a closed chain.
var ErrClosed = errors.New("emulator: chain is closed")

// Chip is the register state of one chip.
type Chip struct {
	Shutdown  bool
	Decode    max7219.DecodeMode
	Intensity max7219.Intensity
	ScanLimit max7219.ScanLimit
	Test      bool
	Rows      [max7219.Rows]byte
}

// PowerOn is the state of a chip after power-on.
var PowerOn = Chip{
	Shutdown: true,
}

// latch executes the command held in the shift register.
func (c *Chip) latch(addr, data byte) {
	switch addr & 0x0f {
	case max7219.RegNoOp:
	case max7219.RegDecodeMode:
		c.Decode = max7219.DecodeMode(data)
	case max7219.RegIntensity:
		c.Intensity = max7219.Intensity(data & 0x0f)
	case max7219.RegScanLimit:
		c.ScanLimit = max7219.ScanLimit(data & 0x07)
	case max7219.RegShutdown:
		c.Shutdown = data&0x01 == 0
	case max7219.RegDisplayTest:
		c.Test = data&0x01 != 0
	case 0x0d, 0x0e:
		// Unused addresses.
	default:
		c.Rows[addr&0x0f-max7219.RegDigit0] = data
	}
}

// Lit reports whether the LED at (col, row) of this chip is on.
//
// Rows outside the scan limit and rows in Code B decode mode are dark.
func (c *Chip) Lit(col, row int) bool {
	switch {
	case c.Test:
		return true
	case c.Shutdown:
		return false
	case row > int(c.ScanLimit):
		return false
	case c.Decode&(1<<uint(row)) != 0:
		return false
	}
	return c.Rows[row]&(0x80>>uint(col)) != 0
}

// Chain is an emulated daisy chain. Chip 0 is wired to the controller.
type Chain struct {
	chips  []Chip
	shift  []byte // shift register contents, most recently shifted byte first
	writes [][]byte
	closed bool
}

// New returns a chain of modules chips in their power-on state.
func New(modules int) *Chain {
	c := &Chain{
		chips: make([]Chip, modules),
		shift: make([]byte, 2*modules),
	}
	for i := range c.chips {
		c.chips[i] = PowerOn
	}
	return c
}

func (c *Chain) String() string {
	return fmt.Sprintf("emulated chain of %d", len(c.chips))
}

func (c *Chain) Close() error {
	c.closed = true
	return nil
}

// Write shifts p into the chain and latches every chip.
func (c *Chain) Write(ctx context.Context, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.closed {
		return ErrClosed
	}
	c.writes = append(c.writes, append([]byte(nil), p...))
	for _, b := range p {
		copy(c.shift[1:], c.shift[:len(c.shift)-1])
		c.shift[0] = b
	}
	for i := range c.chips {
		c.chips[i].latch(c.shift[2*i+1], c.shift[2*i])
	}
	return nil
}

// Writes returns a copy of every write received so far.
func (c *Chain) Writes() [][]byte {
	out := make([][]byte, len(c.writes))
	copy(out, c.writes)
	return out
}

// Reset forgets the recorded writes.
func (c *Chain) Reset() {
	c.writes = nil
}

// Len is the number of chips.
func (c *Chain) Len() int {
	return len(c.chips)
}

// Chip returns the state of chip i.
func (c *Chain) Chip(i int) Chip {
	return c.chips[i]
}

// Bit returns the row register bit for the pixel at (x, y), regardless of
// whether the chip displays it.
func (c *Chain) Bit(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(c.Bounds()) {
		return false
	}
	return c.chips[x/max7219.Columns].Rows[y]&(0x80>>uint(x%max7219.Columns)) != 0
}

// Bounds of the chain's LEDs, chip i covering columns [8i, 8i+8).
func (c *Chain) Bounds() image.Rectangle {
	return image.Rect(0, 0, len(c.chips)*max7219.Columns, max7219.Rows)
}

func (c *Chain) ColorModel() color.Model {
	return pixel.MonoModel
}

// At returns whether the LED at (x, y) is lit.
func (c *Chain) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(c.Bounds()) {
		return color.Transparent
	}
	chip := c.chips[x/max7219.Columns]
	return pixel.Mono{On: chip.Lit(x%max7219.Columns, y)}
}

// Sketch renders the lit LEDs as text, one string per row: '@' for lit and '.' for dark.
func (c *Chain) Sketch() []string {
	var (
		b      = c.Bounds()
		sketch = make([]string, 0, b.Dy())
		line   strings.Builder
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.At(x, y).(pixel.Mono).On {
				line.WriteByte('@')
			} else {
				line.WriteByte('.')
			}
		}
		sketch = append(sketch, line.String())
	}
	return sketch
}

var (
	_ max7219.Conn = (*Chain)(nil)
	_ image.Image  = (*Chain)(nil)
)
