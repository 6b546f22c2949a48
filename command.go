package max7219

import "context"

// command sends a single register/data pair. On a chain it reaches the chip
// nearest the controller; the others keep their registers.
func (m *Matrix) command(ctx context.Context, reg, data byte) error {
	if m.closed {
		return ErrClosed
	}
	return m.TransmitRaw(ctx, []byte{reg, data})
}

// ConfigurePowerMode switches between shutdown and normal operation.
// Register contents survive shutdown.
func (m *Matrix) ConfigurePowerMode(ctx context.Context, mode PowerMode) error {
	return m.command(ctx, RegShutdown, byte(mode))
}

// ConfigureDecodeMode sets the Code B decode mode.
func (m *Matrix) ConfigureDecodeMode(ctx context.Context, mode DecodeMode) error {
	return m.command(ctx, RegDecodeMode, byte(mode))
}

// ConfigureScanLimit sets the number of multiplexed rows.
func (m *Matrix) ConfigureScanLimit(ctx context.Context, limit ScanLimit) error {
	return m.command(ctx, RegScanLimit, byte(limit))
}

// ConfigureIntensity sets the LED brightness.
func (m *Matrix) ConfigureIntensity(ctx context.Context, intensity Intensity) error {
	return m.command(ctx, RegIntensity, byte(intensity))
}

// ConfigureDisplayTest lights every LED at full intensity while on, regardless
// of the other registers.
func (m *Matrix) ConfigureDisplayTest(ctx context.Context, on bool) error {
	var data byte
	if on {
		data = 0x01
	}
	return m.command(ctx, RegDisplayTest, data)
}

// InitDisplay configures the display for matrix use: normal operation, no
// decoding, all 8 rows scanned and a low intensity. The first failing step
// aborts the sequence.
//
// Each step is a single 2-byte command; use InitChain to configure every
// module of a cascade.
func (m *Matrix) InitDisplay(ctx context.Context) error {
	return m.initSequence(ctx, m.command)
}

// Broadcast sends the register/data pair once per module in a single write,
// so every chip in the chain latches it.
func (m *Matrix) Broadcast(ctx context.Context, reg, data byte) error {
	if m.closed {
		return ErrClosed
	}
	cmd := m.tx[:0]
	for i := 0; i < m.modules; i++ {
		cmd = append(cmd, reg, data)
	}
	return m.TransmitRaw(ctx, cmd)
}

// InitChain runs the InitDisplay sequence with every step broadcast to all
// modules.
func (m *Matrix) InitChain(ctx context.Context) error {
	m.chain = true
	return m.initSequence(ctx, m.Broadcast)
}

func (m *Matrix) initSequence(ctx context.Context, send func(context.Context, byte, byte) error) (err error) {
	if err = send(ctx, RegShutdown, byte(NormalOperation)); err != nil {
		return
	}
	if err = send(ctx, RegDecodeMode, byte(NoDecode)); err != nil {
		return
	}
	if err = send(ctx, RegScanLimit, byte(ScanDigit0To7)); err != nil {
		return
	}
	return send(ctx, RegIntensity, byte(Intensity3_32))
}
