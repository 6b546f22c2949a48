// Package config loads the demo configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config represents the demo configuration.
type Config struct {
	// Bus is one of "spi", "gpio" or "sim".
	Bus string `json:"bus"`

	// Modules is the number of cascaded modules.
	Modules int `json:"modules"`

	// Intensity is the LED brightness, 0 to 15.
	Intensity int `json:"intensity"`

	SPI  SPIConfig  `json:"spi"`
	GPIO GPIOConfig `json:"gpio"`
}

// SPIConfig selects a periph SPI port.
type SPIConfig struct {
	Port    string `json:"port"`
	SpeedHz uint32 `json:"speed_hz"`
	CS      string `json:"cs"`
}

// GPIOConfig selects the bit-banged bus lines.
type GPIOConfig struct {
	Chip  string   `json:"chip"`
	DIN   int      `json:"din"`
	CLK   int      `json:"clk"`
	CS    int      `json:"cs"`
	Delay Duration `json:"delay"`
}

// Duration is a time.Duration encoded as a string such as "10us".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the default configuration: four modules on the first SPI port.
func Default() *Config {
	return &Config{
		Bus:       "spi",
		Modules:   4,
		Intensity: 1,
		SPI: SPIConfig{
			SpeedHz: 1_000_000,
		},
		GPIO: GPIOConfig{
			Chip: "gpiochip0",
			DIN:  10,
			CLK:  11,
			CS:   8,
		},
	}
}

// Load reads the configuration from a file. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch c.Bus {
	case "spi", "gpio", "sim":
	default:
		return fmt.Errorf("config: unsupported bus %q", c.Bus)
	}
	if c.Modules < 1 {
		return fmt.Errorf("config: need at least one module, got %d", c.Modules)
	}
	if c.Intensity < 0 || c.Intensity > 15 {
		return fmt.Errorf("config: intensity must be between 0 and 15, got %d", c.Intensity)
	}
	return nil
}
