package max7219

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"iter"
	"log"
	"os"

	"github.com/BeatGlow/max7219/draw"
	"github.com/BeatGlow/max7219/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("MAX7219_DEBUG") != ""
}

// Config is the matrix configuration.
type Config struct {
	// Modules is the number of cascaded 8x8 modules, at least 1.
	Modules int

	// BufferLen is the framebuffer size in bytes. Zero means 64 bytes per
	// module, any other value must match it.
	BufferLen int
}

// Matrix drives a chain of cascaded MAX7219 8x8 LED matrix modules.
//
// The matrix keeps a framebuffer of one byte per pixel. Drawing only touches
// the framebuffer; Flush sends the whole frame to the chain. Module m covers
// columns [8m, 8m+8) and is the m-th chip counted from the controller.
//
// A Matrix is not safe for concurrent use.
type Matrix struct {
	c       Conn
	modules int
	fb      *pixel.BinaryImage
	data    []byte // packed row data, one byte per module
	tx      []byte // row command buffer, one register/data pair per module
	chain   bool   // initialized with InitChain
	closed  bool
}

// New returns a matrix using c. No I/O is done until a command or Flush is issued.
func New(c Conn, config *Config) (*Matrix, error) {
	if config == nil {
		config = &Config{Modules: 1}
	}
	if config.Modules < 1 {
		return nil, ErrModules
	}

	var (
		n    = config.Modules
		w    = n * Columns
		size = w * Rows
	)
	if config.BufferLen != 0 && config.BufferLen != size {
		return nil, fmt.Errorf("%w: got %d bytes for %d modules, want %d", ErrBufferSize, config.BufferLen, n, size)
	}

	m := &Matrix{
		c:       c,
		modules: n,
		fb:      pixel.NewBinaryImage(w, Rows),
		data:    make([]byte, 0, n),
		tx:      make([]byte, 2*n),
	}
	m.Clear()
	return m, nil
}

func (m *Matrix) String() string {
	bounds := m.Bounds()
	return fmt.Sprintf("MAX7219 %d module matrix %dx%d on %s", m.modules, bounds.Dx(), bounds.Dy(), m.c)
}

// Modules is the number of modules in the chain.
func (m *Matrix) Modules() int {
	return m.modules
}

// Close puts the display in shutdown mode and closes the connection. After
// InitChain the shutdown command is broadcast to every module.
func (m *Matrix) Close() error {
	if m.closed {
		return nil
	}
	var err error
	if m.chain {
		err = m.Broadcast(context.Background(), RegShutdown, byte(Shutdown))
	} else {
		err = m.ConfigurePowerMode(context.Background(), Shutdown)
	}
	m.closed = true
	if cerr := m.c.Close(); err == nil {
		err = cerr
	}
	return err
}

// Clear the framebuffer. The chain is not updated until the next Flush.
func (m *Matrix) Clear() {
	m.fb.Clear()
}

// Bounds is the matrix bounding box, 8 pixels per module wide and 8 pixels high.
func (m *Matrix) Bounds() image.Rectangle {
	return m.fb.Bounds()
}

// ColorModel is [pixel.MonoModel].
func (m *Matrix) ColorModel() color.Model {
	return pixel.MonoModel
}

// At returns the framebuffer color at (x, y).
func (m *Matrix) At(x, y int) color.Color {
	return m.fb.At(x, y)
}

// Set the framebuffer pixel at (x, y); points outside the bounds are ignored.
func (m *Matrix) Set(x, y int, c color.Color) {
	m.fb.Set(x, y, c)
}

// DrawPixels applies every pixel in order, ignoring those outside the bounds.
func (m *Matrix) DrawPixels(pixels iter.Seq[draw.Pixel]) {
	for p := range pixels {
		m.fb.SetMono(p.X, p.Y, pixel.Mono{On: p.On})
	}
}

// Flush sends the framebuffer to the chain, one command per row.
//
// Every row command carries one register/data pair per module, so a flush is
// always 8 writes of 2 bytes per module regardless of what changed. The first
// failing write aborts the flush, leaving the chain partially updated; the
// framebuffer is never modified.
//
// The chain should have been set up with InitDisplay, the display shows
// undefined content otherwise.
func (m *Matrix) Flush(ctx context.Context) error {
	if m.closed {
		return ErrClosed
	}
	for row := 0; row < Rows; row++ {
		if err := m.TransmitRaw(ctx, m.encodeRow(row)); err != nil {
			return err
		}
	}
	return nil
}

// encodeRow packs row into the row command buffer.
//
// The last module's pair is sent first: data shifted into the chain travels
// towards the far end, so the first pair ends up in the last chip.
func (m *Matrix) encodeRow(row int) []byte {
	var (
		n      = m.modules
		stride = n * Columns
	)
	m.data = m.data[:0]
	for disp := n - 1; disp >= 0; disp-- {
		base := disp*Columns + row*stride
		m.data = append(m.data, packRow(m.fb.Pix[base:base+Columns]))
	}

	reg := RowRegister(row)
	for i, b := range m.data {
		m.tx[2*i] = reg
		m.tx[2*i+1] = b
	}
	return m.tx
}

// packRow packs 8 pixel cells into a column mask, the leftmost pixel being the MSB.
func packRow(cells []byte) (b byte) {
	for i, v := range cells {
		if v != 0 {
			b |= 1 << uint(Columns-1-i)
		}
	}
	return
}

// TransmitRaw writes p to the chain as-is. All I/O goes through here.
func (m *Matrix) TransmitRaw(ctx context.Context, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if debug {
		log.Printf("max7219: tx % x", p)
	}
	return wrapError(m.c.Write(ctx, p))
}

// Interface checks.
var (
	_ draw.Image  = (*Matrix)(nil)
	_ draw.Target = (*Matrix)(nil)
)
