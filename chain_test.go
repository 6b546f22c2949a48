package max7219_test

import (
	"context"
	"image"
	"strings"
	"testing"

	"github.com/BeatGlow/max7219"
	"github.com/BeatGlow/max7219/draw"
	"github.com/BeatGlow/max7219/emulator"
	"github.com/BeatGlow/max7219/pixel"
)

func TestChainInit(t *testing.T) {
	chain := emulator.New(4)
	m, err := max7219.New(chain, &max7219.Config{Modules: 4})
	if err != nil {
		t.Fatal(err)
	}
	if err = m.InitChain(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := emulator.Chip{
		Shutdown:  false,
		Decode:    max7219.NoDecode,
		Intensity: max7219.Intensity3_32,
		ScanLimit: max7219.ScanDigit0To7,
	}
	for i := 0; i < chain.Len(); i++ {
		if v := chain.Chip(i); v != want {
			t.Errorf("chip %d: expected %+v, got %+v", i, want, v)
		}
	}
}

func TestChainInitDisplay(t *testing.T) {
	chain := emulator.New(2)
	m, err := max7219.New(chain, &max7219.Config{Modules: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err = m.InitDisplay(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i, w := range chain.Writes() {
		if len(w) != 2 {
			t.Errorf("write %d: expected a 2-byte command, got % x", i, w)
		}
	}

	want := emulator.Chip{
		Shutdown:  false,
		Decode:    max7219.NoDecode,
		Intensity: max7219.Intensity3_32,
		ScanLimit: max7219.ScanDigit0To7,
	}
	if v := chain.Chip(0); v != want {
		t.Errorf("near chip: expected %+v, got %+v", want, v)
	}

	// Each command is pushed one chip further by the next one, so the far
	// chip has latched every step but the last.
	want.Intensity = max7219.IntensityMin
	if v := chain.Chip(1); v != want {
		t.Errorf("far chip: expected %+v, got %+v", want, v)
	}
}

func TestChainFlush(t *testing.T) {
	for _, modules := range []int{1, 2, 4, 7} {
		chain := emulator.New(modules)
		m, err := max7219.New(chain, &max7219.Config{Modules: modules})
		if err != nil {
			t.Fatal(err)
		}
		ctx := context.Background()
		if err = m.InitChain(ctx); err != nil {
			t.Fatal(err)
		}

		r := m.Bounds()
		draw.Line(m, r.Min, r.Max.Sub(image.Pt(1, 1)), pixel.On)
		draw.Line(m, image.Pt(r.Max.X-1, 0), image.Pt(0, r.Max.Y-1), pixel.On)
		draw.String(m, image.Pt(1, 7), nil, "Go", pixel.On)
		if err = m.Flush(ctx); err != nil {
			t.Fatal(err)
		}

		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if want, got := m.At(x, y), chain.At(x, y); want != got {
					t.Fatalf("%d modules: pixel (%d,%d) is %v on the chain, %v in the framebuffer", modules, x, y, got, want)
				}
			}
		}

		m.Clear()
		if err = m.Flush(ctx); err != nil {
			t.Fatal(err)
		}
		for _, line := range chain.Sketch() {
			if strings.Contains(line, "@") {
				t.Fatalf("%d modules: expected a dark chain after clear, got %q", modules, line)
			}
		}
	}
}

func TestChainSketch(t *testing.T) {
	chain := emulator.New(2)
	m, err := max7219.New(chain, &max7219.Config{Modules: 2})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err = m.InitChain(ctx); err != nil {
		t.Fatal(err)
	}
	draw.Rectangle(m, m.Bounds(), pixel.On)
	draw.String(m, image.Pt(5, 7), nil, "-", pixel.On)
	if err = m.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"@@@@@@@@@@@@@@@@",
		"@..............@",
		"@..............@",
		"@....@@@@@.....@",
		"@..............@",
		"@..............@",
		"@..............@",
		"@@@@@@@@@@@@@@@@",
	}
	if got := chain.Sketch(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("expected:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
}

func TestChainFlushBeforeInit(t *testing.T) {
	chain := emulator.New(2)
	m, err := max7219.New(chain, &max7219.Config{Modules: 2})
	if err != nil {
		t.Fatal(err)
	}
	m.Set(9, 4, pixel.On)
	if err = m.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !chain.Bit(9, 4) {
		t.Error("expected row data to reach the chain")
	}
	if chain.At(9, 4) != pixel.Off {
		t.Error("expected unconfigured chain to stay dark")
	}
}
