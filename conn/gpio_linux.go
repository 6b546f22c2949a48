//go:build linux

package conn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// outputLine is the part of a requested *gpiocdev.Line the bus uses.
type outputLine interface {
	Offset() int
	SetValue(int) error
	Close() error
}

// GPIO bit-bangs the MAX7219 serial protocol over three character device GPIO lines.
type GPIO struct {
	chip  string
	din   outputLine
	clk   outputLine
	cs    outputLine
	delay time.Duration
}

// OpenGPIO requests the DIN, CLK and CS (LOAD) lines on chip as outputs.
//
// delay is the half clock period; zero toggles the lines as fast as the kernel allows.
func OpenGPIO(chip string, din, clk, cs int, delay time.Duration) (*GPIO, error) {
	g := &GPIO{
		chip:  chip,
		delay: delay,
	}

	var err error
	if g.cs, err = requestLine(chip, cs, 1); err != nil {
		return nil, err
	}
	if g.clk, err = requestLine(chip, clk, 0); err != nil {
		_ = g.Close()
		return nil, err
	}
	if g.din, err = requestLine(chip, din, 0); err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

func requestLine(chip string, offset, value int) (outputLine, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(value), gpiocdev.WithConsumer("max7219"))
	if err != nil {
		return nil, fmt.Errorf("conn: request %s line %d: %w", chip, offset, err)
	}
	return l, nil
}

func (g *GPIO) String() string {
	return fmt.Sprintf("GPIO %s DIN=%d CLK=%d CS=%d", g.chip, g.din.Offset(), g.clk.Offset(), g.cs.Offset())
}

// Close releases the requested lines.
func (g *GPIO) Close() error {
	var errs []error
	for _, l := range []outputLine{g.din, g.clk, g.cs} {
		if l != nil {
			errs = append(errs, l.Close())
		}
	}
	return errors.Join(errs...)
}

func (g *GPIO) set(name string, l outputLine, v int) error {
	if err := l.SetValue(v); err != nil {
		return &PinError{Pin: name, Err: err}
	}
	return nil
}

func (g *GPIO) pause() {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
}

// Write shifts p out MSB first and pulses LOAD when done.
func (g *GPIO) Write(ctx context.Context, p []byte) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if err = g.set("CS", g.cs, 0); err != nil {
		return
	}
	defer func() {
		// Release LOAD so the next write starts on a clean frame.
		if err != nil {
			_ = g.set("CS", g.cs, 1)
		}
	}()
	for _, b := range p {
		for bit := 7; bit >= 0; bit-- {
			if err = g.set("DIN", g.din, int(b>>uint(bit))&1); err != nil {
				return
			}
			g.pause()
			if err = g.set("CLK", g.clk, 1); err != nil {
				return
			}
			g.pause()
			if err = g.set("CLK", g.clk, 0); err != nil {
				return
			}
		}
	}
	return g.set("CS", g.cs, 1)
}
