package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/image/font"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/max7219"
	"github.com/BeatGlow/max7219/draw"
	"github.com/BeatGlow/max7219/emulator"
	"github.com/BeatGlow/max7219/internal/config"
	"github.com/BeatGlow/max7219/pixel"
)

func main() {
	defaults := config.Default()
	configFlag := flag.String("config", "", "JSON configuration file")
	busFlag := flag.String("bus", defaults.Bus, "Bus type: spi, gpio or sim")
	modulesFlag := flag.Int("modules", defaults.Modules, "Number of cascaded modules")
	intensityFlag := flag.Int("intensity", defaults.Intensity, "LED intensity (0-15)")
	spiPortFlag := flag.String("spi-port", defaults.SPI.Port, "SPI port (default: first available)")
	spiSpeedFlag := flag.Uint("spi-speed", uint(defaults.SPI.SpeedHz), "SPI clock in Hz")
	spiCSFlag := flag.String("spi-cs", defaults.SPI.CS, "GPIO pin used as LOAD instead of the SPI chip select")
	gpioChipFlag := flag.String("gpio-chip", defaults.GPIO.Chip, "GPIO chip for the bit-banged bus")
	gpioDINFlag := flag.Int("gpio-din", defaults.GPIO.DIN, "DIN line offset")
	gpioCLKFlag := flag.Int("gpio-clk", defaults.GPIO.CLK, "CLK line offset")
	gpioCSFlag := flag.Int("gpio-cs", defaults.GPIO.CS, "CS (LOAD) line offset")
	textFlag := flag.String("text", "Test", "Text to show")
	fontFlag := flag.String("font", "", "TrueType font file (default: built-in 5x7 font)")
	fontSizeFlag := flag.Float64("font-size", 8, "TrueType font size in pixels")
	iconFlag := flag.String("icon", "", "SVG icon to show")
	intervalFlag := flag.Duration("interval", 2*time.Second, "Time each frame is shown")
	flag.Parse()

	cfg := defaults
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bus":
			cfg.Bus = *busFlag
		case "modules":
			cfg.Modules = *modulesFlag
		case "intensity":
			cfg.Intensity = *intensityFlag
		case "spi-port":
			cfg.SPI.Port = *spiPortFlag
		case "spi-speed":
			cfg.SPI.SpeedHz = uint32(*spiSpeedFlag)
		case "spi-cs":
			cfg.SPI.CS = *spiCSFlag
		case "gpio-chip":
			cfg.GPIO.Chip = *gpioChipFlag
		case "gpio-din":
			cfg.GPIO.DIN = *gpioDINFlag
		case "gpio-clk":
			cfg.GPIO.CLK = *gpioCLKFlag
		case "gpio-cs":
			cfg.GPIO.CS = *gpioCSFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	var face font.Face
	if *fontFlag != "" {
		ttf, err := os.ReadFile(*fontFlag)
		if err != nil {
			fatal(err)
		}
		if face, err = draw.LoadFace(ttf, *fontSizeFlag); err != nil {
			fatal(fmt.Errorf("font %s: %w", *fontFlag, err))
		}
	}

	var (
		conn  max7219.Conn
		chain *emulator.Chain
		err   error
	)
	switch cfg.Bus {
	case "spi":
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
		conn, err = max7219.OpenSPI(&max7219.SPIConfig{
			Port:    cfg.SPI.Port,
			SpeedHz: cfg.SPI.SpeedHz,
			CS:      cfg.SPI.CS,
		})
	case "gpio":
		conn, err = max7219.OpenGPIO(&max7219.GPIOConfig{
			Chip:  cfg.GPIO.Chip,
			DIN:   cfg.GPIO.DIN,
			CLK:   cfg.GPIO.CLK,
			CS:    cfg.GPIO.CS,
			Delay: time.Duration(cfg.GPIO.Delay),
		})
	case "sim":
		chain = emulator.New(cfg.Modules)
		conn = chain
	}
	if err != nil {
		fatal(err)
	}
	log.Printf("using connection: %s", conn)

	m, err := max7219.New(conn, &max7219.Config{Modules: cfg.Modules})
	if err != nil {
		_ = conn.Close()
		fatal(err)
	}
	log.Printf("using driver: %s", m)
	log.Printf("intensity: %s", max7219.Intensity(cfg.Intensity))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, m, chain, max7219.Intensity(cfg.Intensity), *textFlag, face, *iconFlag, *intervalFlag)
	if cerr := m.Close(); err == nil {
		err = cerr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

func run(ctx context.Context, m *max7219.Matrix, chain *emulator.Chain, intensity max7219.Intensity, text string, face font.Face, icon string, interval time.Duration) error {
	if err := m.InitChain(ctx); err != nil {
		return err
	}
	if err := m.Broadcast(ctx, max7219.RegIntensity, byte(intensity)); err != nil {
		return err
	}

	r := m.Bounds()
	frames := []func(){
		func() {
			draw.String(m, image.Pt(2, 7), face, text, pixel.On)
		},
		func() {
			draw.Line(m, image.Pt(0, 0), image.Pt(r.Max.X-1, r.Max.Y-1), pixel.On)
			draw.Line(m, image.Pt(r.Max.X-1, 0), image.Pt(0, r.Max.Y-1), pixel.On)
		},
	}
	if icon != "" {
		frames = append(frames, func() {
			f, err := os.Open(icon)
			if err != nil {
				log.Printf("icon: %v", err)
				return
			}
			defer f.Close()
			if err = draw.Icon(m, image.Rect(0, 0, max7219.Columns, max7219.Rows), f); err != nil {
				log.Printf("icon: %v", err)
			}
		})
	}

	fmt.Println("hit control-c to stop...")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		m.Clear()
		frames[i%len(frames)]()
		if err := m.Flush(ctx); err != nil {
			return err
		}
		if chain != nil {
			fmt.Println(strings.Join(chain.Sketch(), "\n"))
			fmt.Println()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
