package max7219

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/BeatGlow/max7219/conn"
)

// Conn errors.
var (
	ErrCSPin = errors.New("max7219: chip select (LOAD) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with the chain.
//
// Consecutive writes on one Conn must reach the bus in order; the chain
// protocol depends on command bytes arriving in sequence.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Write shifts p out to the chain and latches it, returning once the
	// transfer has completed.
	Write(ctx context.Context, p []byte) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Port is the periph SPI port name, use "" for the first available port.
	Port string

	// SpeedHz is the SPI clock rate.
	SpeedHz uint32

	// CS is an optional GPIO pin name to use as LOAD instead of the port's chip select.
	CS string
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	SpeedHz: 1_000_000,
}

// ValidSPISpeeds are common valid SPI bus speeds for the MAX7219.
var ValidSPISpeeds = []uint32{
	100_000,
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	10_000_000,
}

// OpenSPI opens a periph SPI port. The periph host drivers must have been
// initialized first.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	speed := config.SpeedHz
	if speed == 0 {
		speed = DefaultSPIConfig.SpeedHz
	}
	var valid bool
	for _, v := range ValidSPISpeeds {
		if valid = v == speed; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("max7219: invalid SPI speed %dHz", speed)
	}

	var cs gpio.PinOut
	if config.CS != "" {
		pin := gpioreg.ByName(config.CS)
		if pin == nil || pin == gpio.INVALID {
			return nil, ErrCSPin
		}
		cs = pin
	}

	port, err := spireg.Open(config.Port)
	if err != nil {
		return nil, err
	}

	c, err := conn.NewSPI(port, physic.Frequency(speed)*physic.Hertz, cs)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return c, nil
}

// GPIOConfig describes a bit-banged bus on GPIO character device lines.
type GPIOConfig struct {
	// Chip is the GPIO chip name, such as "gpiochip0".
	Chip string

	// DIN, CLK and CS are the line offsets on Chip.
	DIN, CLK, CS int

	// Delay is the half clock period.
	Delay time.Duration
}

// DefaultGPIOConfig uses the Raspberry Pi SPI0 header pins.
var DefaultGPIOConfig = GPIOConfig{
	Chip: "gpiochip0",
	DIN:  10,
	CLK:  11,
	CS:   8,
}

// OpenGPIO requests the bus lines from the GPIO character device.
func OpenGPIO(config *GPIOConfig) (Conn, error) {
	if config == nil {
		config = new(GPIOConfig)
		*config = DefaultGPIOConfig
	}
	if config.Chip == "" {
		config.Chip = DefaultGPIOConfig.Chip
	}
	if config.DIN == config.CLK || config.DIN == config.CS || config.CLK == config.CS {
		return nil, fmt.Errorf("max7219: GPIO lines must be distinct, got DIN=%d CLK=%d CS=%d", config.DIN, config.CLK, config.CS)
	}
	c, err := conn.OpenGPIO(config.Chip, config.DIN, config.CLK, config.CS, config.Delay)
	if err != nil {
		return nil, err
	}
	return c, nil
}
