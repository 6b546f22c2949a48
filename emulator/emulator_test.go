package emulator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BeatGlow/max7219"
)

func TestChainShift(t *testing.T) {
	c := New(2)
	ctx := context.Background()

	if err := c.Write(ctx, []byte{0x01, 0xAA, 0x01, 0x55}); err != nil {
		t.Fatal(err)
	}
	if v := c.Chip(1).Rows[0]; v != 0xAA {
		t.Errorf("expected far chip row 0 to be 0xaa, got %#02x", v)
	}
	if v := c.Chip(0).Rows[0]; v != 0x55 {
		t.Errorf("expected near chip row 0 to be 0x55, got %#02x", v)
	}

	// A single pair only reaches the first chip; the second chip latches
	// the pair pushed out of the first one.
	if err := c.Write(ctx, []byte{0x02, 0x0F}); err != nil {
		t.Fatal(err)
	}
	if v := c.Chip(0).Rows[1]; v != 0x0F {
		t.Errorf("expected near chip row 1 to be 0x0f, got %#02x", v)
	}
	if v := c.Chip(1).Rows[0]; v != 0x55 {
		t.Errorf("expected far chip row 0 to be 0x55, got %#02x", v)
	}
	if v := c.Chip(1).Rows[1]; v != 0x00 {
		t.Errorf("expected far chip row 1 to be untouched, got %#02x", v)
	}

	if n := len(c.Writes()); n != 2 {
		t.Errorf("expected 2 recorded writes, got %d", n)
	}
	c.Reset()
	if n := len(c.Writes()); n != 0 {
		t.Errorf("expected no recorded writes after reset, got %d", n)
	}
}

func TestChipRegisters(t *testing.T) {
	c := New(1)
	if v := c.Chip(0); v != PowerOn {
		t.Fatalf("expected power-on state, got %+v", v)
	}

	ctx := context.Background()
	for _, cmd := range [][]byte{
		{max7219.RegShutdown, 0x01},
		{max7219.RegDecodeMode, 0x0F},
		{max7219.RegScanLimit, 0x05},
		{max7219.RegIntensity, 0x0A},
		{max7219.RegDisplayTest, 0x01},
		{max7219.RegNoOp, 0xFF},
		{0xF8, 0x3C}, // upper address bits are ignored
	} {
		if err := c.Write(ctx, cmd); err != nil {
			t.Fatal(err)
		}
	}

	want := Chip{
		Shutdown:  false,
		Decode:    max7219.CodeB30,
		Intensity: max7219.Intensity21_32,
		ScanLimit: max7219.ScanDigit0To5,
		Test:      true,
	}
	want.Rows[7] = 0x3C
	if v := c.Chip(0); v != want {
		t.Errorf("expected %+v, got %+v", want, v)
	}
}

func TestChipLit(t *testing.T) {
	chip := Chip{
		ScanLimit: max7219.ScanDigit0To3,
		Decode:    max7219.CodeB0,
	}
	for i := range chip.Rows {
		chip.Rows[i] = 0x81
	}

	tests := []struct {
		Name     string
		Col, Row int
		Want     bool
	}{
		{"leftmost", 0, 1, true},
		{"rightmost", 7, 1, true},
		{"middle", 3, 1, false},
		{"decoded row", 0, 0, false},
		{"last scanned row", 0, 3, true},
		{"beyond scan limit", 0, 4, false},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if v := chip.Lit(test.Col, test.Row); v != test.Want {
				it.Errorf("expected %t, got %t", test.Want, v)
			}
		})
	}

	chip.Shutdown = true
	if chip.Lit(0, 1) {
		t.Error("expected nothing lit in shutdown")
	}
	chip.Test = true
	if !chip.Lit(3, 7) {
		t.Error("expected everything lit in display test")
	}
}

func TestChainSketch(t *testing.T) {
	c := New(2)
	ctx := context.Background()
	for _, cmd := range [][]byte{
		{max7219.RegShutdown, 0x01, max7219.RegShutdown, 0x01},
		{max7219.RegScanLimit, 0x07, max7219.RegScanLimit, 0x07},
		{0x01, 0x01, 0x01, 0x80},
		{0x08, 0xFF, 0x08, 0x00},
	} {
		if err := c.Write(ctx, cmd); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"@..............@",
		"................",
		"................",
		"................",
		"................",
		"................",
		"................",
		"........@@@@@@@@",
	}
	got := c.Sketch()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("expected:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
	if !c.Bit(15, 7) || c.Bit(0, 7) || c.Bit(16, 0) {
		t.Error("unexpected row register bits")
	}
}

func TestChainClosed(t *testing.T) {
	c := New(1)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Write(context.Background(), []byte{0x01, 0x01}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestChainCanceled(t *testing.T) {
	c := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Write(ctx, []byte{0x01, 0x01}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n := len(c.Writes()); n != 0 {
		t.Errorf("expected no writes, got %d", n)
	}
}
