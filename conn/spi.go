package conn

import (
	"context"
	"fmt"
	"io"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPIMaxSpeed is the highest clock rate the MAX7219 accepts.
const SPIMaxSpeed = 10 * physic.MegaHertz

// SPI is a write-only SPI connection to a MAX7219 chain.
//
// The chain samples DIN on the rising clock edge, MSB first, so the port is
// configured in mode 0 with 8 bits per word.
type SPI struct {
	port  spi.Port
	conn  spi.Conn
	cs    gpio.PinOut
	speed physic.Frequency
	maxTx int
}

// NewSPI connects to port at the given speed.
//
// cs is optional; when set, it is driven low for the duration of every write
// instead of relying on the port's own chip select.
func NewSPI(port spi.Port, speed physic.Frequency, cs gpio.PinOut) (*SPI, error) {
	if speed <= 0 || speed > SPIMaxSpeed {
		return nil, fmt.Errorf("conn: SPI speed %s out of range (max %s)", speed, SPIMaxSpeed)
	}

	c, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	s := &SPI{
		port:  port,
		conn:  c,
		cs:    cs,
		speed: speed,
	}
	if l, ok := c.(conn.Limits); ok {
		s.maxTx = l.MaxTxSize()
	}
	if err = s.updateCS(gpio.High); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SPI) String() string {
	return fmt.Sprintf("SPI %s at %s", s.conn, s.speed)
}

// Close releases the port, if it can be closed.
func (s *SPI) Close() error {
	if c, ok := s.port.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *SPI) updateCS(level gpio.Level) error {
	if s.cs == nil {
		return nil
	}
	if err := s.cs.Out(level); err != nil {
		return &PinError{Pin: "CS", Err: err}
	}
	return nil
}

// Write sends p as one transfer.
//
// Splitting a transfer would latch partial data into the chain, so writes
// larger than the port's transfer limit are refused.
func (s *SPI) Write(ctx context.Context, p []byte) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if s.maxTx > 0 && len(p) > s.maxTx {
		return fmt.Errorf("conn: SPI transfer of %d bytes exceeds port limit of %d bytes", len(p), s.maxTx)
	}
	if err = s.updateCS(gpio.Low); err != nil {
		return
	}
	if err = s.conn.Tx(p, nil); err != nil {
		_ = s.updateCS(gpio.High)
		return
	}
	return s.updateCS(gpio.High)
}
