//go:build linux

package conn

import (
	"context"
	"errors"
	"testing"
)

// testLine records the levels driven on a line and fails the failAt-th set (1-based).
type testLine struct {
	offset int
	levels []int
	failAt int
	err    error
}

func (l *testLine) Offset() int { return l.offset }

func (l *testLine) Close() error { return nil }

func (l *testLine) SetValue(v int) error {
	if l.failAt > 0 && len(l.levels)+1 == l.failAt {
		l.failAt = 0
		return l.err
	}
	l.levels = append(l.levels, v)
	return nil
}

func (l *testLine) level() int {
	if len(l.levels) == 0 {
		return -1
	}
	return l.levels[len(l.levels)-1]
}

func newTestGPIO() (*GPIO, *testLine, *testLine, *testLine) {
	din, clk, cs := &testLine{offset: 10}, &testLine{offset: 11}, &testLine{offset: 8}
	return &GPIO{chip: "test", din: din, clk: clk, cs: cs}, din, clk, cs
}

func TestGPIOWrite(t *testing.T) {
	g, din, clk, cs := newTestGPIO()
	if err := g.Write(context.Background(), []byte{0x0C, 0xA5}); err != nil {
		t.Fatal(err)
	}

	want := []int{
		0, 0, 0, 0, 1, 1, 0, 0, // 0x0c
		1, 0, 1, 0, 0, 1, 0, 1, // 0xa5
	}
	if len(din.levels) != len(want) {
		t.Fatalf("expected %d data bits, got %d", len(want), len(din.levels))
	}
	for i, v := range want {
		if din.levels[i] != v {
			t.Errorf("bit %d: expected %d, got %d", i, v, din.levels[i])
		}
	}
	if n := len(clk.levels); n != 2*len(want) {
		t.Errorf("expected %d clock edges, got %d", 2*len(want), n)
	}
	if len(cs.levels) != 2 || cs.levels[0] != 0 || cs.levels[1] != 1 {
		t.Errorf("expected CS to pulse low then high, got %v", cs.levels)
	}
}

func TestGPIOWriteReleasesCS(t *testing.T) {
	errLine := errors.New("line busy")
	tests := []struct {
		Name string
		Fail func(din, clk *testLine)
		Pin  string
	}{
		{"data line", func(din, _ *testLine) { din.failAt, din.err = 5, errLine }, "DIN"},
		{"clock rising", func(_, clk *testLine) { clk.failAt, clk.err = 3, errLine }, "CLK"},
		{"clock falling", func(_, clk *testLine) { clk.failAt, clk.err = 10, errLine }, "CLK"},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			g, din, clk, cs := newTestGPIO()
			test.Fail(din, clk)

			err := g.Write(context.Background(), []byte{0x01, 0xFF})
			var pinErr *PinError
			if !errors.As(err, &pinErr) {
				it.Fatalf("expected *PinError, got %#v", err)
			}
			if pinErr.Pin != test.Pin {
				it.Errorf("expected %s pin, got %q", test.Pin, pinErr.Pin)
			}
			if !errors.Is(err, errLine) {
				it.Errorf("expected error to wrap %v", errLine)
			}
			if v := cs.level(); v != 1 {
				it.Errorf("expected CS released high after a failed write, got %d", v)
			}
		})
	}
}

func TestGPIOCanceled(t *testing.T) {
	g, din, _, cs := newTestGPIO()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Write(ctx, []byte{0x01, 0x01}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(din.levels) != 0 || len(cs.levels) != 0 {
		t.Error("expected no line activity")
	}
}

func TestGPIOString(t *testing.T) {
	g, _, _, _ := newTestGPIO()
	want := "GPIO test DIN=10 CLK=11 CS=8"
	if v := g.String(); v != want {
		t.Errorf("expected %q, got %q", want, v)
	}
}
