// Package max7219 drives chains of cascaded 8x8 LED matrix modules built on
// the MAX7219 (or compatible MAX7221) LED driver.
//
// # Hardware Connection
//
// The modules are daisy chained: DOUT of every module feeds DIN of the next,
// CLK and CS (LOAD) are shared. Connect the first module to an SPI port:
//
//	Module Pin → System Pin
//	VCC        → 5V
//	GND        → GND
//	DIN        → SPI MOSI
//	CS         → SPI chip select (or any GPIO, see SPIConfig.CS)
//	CLK        → SPI clock
//
// # Basic Usage
//
//	if _, err := host.Init(); err != nil {
//		log.Fatal(err)
//	}
//	c, err := max7219.OpenSPI(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	m, err := max7219.New(c, &max7219.Config{Modules: 4})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer m.Close()
//
//	ctx := context.Background()
//	if err = m.InitChain(ctx); err != nil {
//		log.Fatal(err)
//	}
//	draw.String(m, image.Pt(1, 7), nil, "Test", pixel.On)
//	if err = m.Flush(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// The matrix is a [draw.Image], so anything that renders to an image (the
// helpers in the draw package, image/draw, font drawers) renders to the
// matrix framebuffer. Nothing reaches the modules until Flush.
//
// # Configuration Commands
//
// The Configure methods and InitDisplay send one 2-byte command, which a
// single module latches. On a chain, InitChain and Broadcast repeat the
// command once per module in one write so that every chip is configured.
//
// # Debugging
//
// Set the MAX7219_DEBUG environment variable to log every write to the chain.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/MAX7219-MAX7221.pdf
package max7219
