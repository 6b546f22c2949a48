package max7219

import "fmt"

// Register addresses.
const (
	RegNoOp        = 0x00
	RegDigit0      = 0x01 // row 0, rows 1..7 follow at RegDigit0+row
	RegDecodeMode  = 0x09
	RegIntensity   = 0x0A
	RegScanLimit   = 0x0B
	RegShutdown    = 0x0C
	RegDisplayTest = 0x0F
)

// Rows is the number of row registers in every chip, as well as the matrix height.
const Rows = 8

// Columns is the number of columns driven by every chip.
const Columns = 8

// RowRegister returns the data register for row, which must be in [0, Rows).
func RowRegister(row int) byte {
	return byte(RegDigit0 + row)
}

// PowerMode selects between shutdown and normal operation.
type PowerMode uint8

// Power modes.
const (
	Shutdown        PowerMode = 0x00
	NormalOperation PowerMode = 0x01
)

func (m PowerMode) String() string {
	switch m {
	case Shutdown:
		return "shutdown"
	case NormalOperation:
		return "normal operation"
	default:
		return fmt.Sprintf("PowerMode(%#02x)", uint8(m))
	}
}

// DecodeMode selects which digits use the chip's built-in Code B font. LED
// matrices drive raw segments and use NoDecode.
type DecodeMode uint8

// Decode modes.
const (
	NoDecode DecodeMode = 0x00
	CodeB0   DecodeMode = 0x01 // Code B for digit 0 only
	CodeB30  DecodeMode = 0x0F // Code B for digits 3-0
	CodeB70  DecodeMode = 0xFF // Code B for digits 7-0
)

func (m DecodeMode) String() string {
	switch m {
	case NoDecode:
		return "no decode"
	case CodeB0:
		return "code B digit 0"
	case CodeB30:
		return "code B digits 3-0"
	case CodeB70:
		return "code B digits 7-0"
	default:
		return fmt.Sprintf("DecodeMode(%#02x)", uint8(m))
	}
}

// Intensity is the LED duty cycle in 16 steps, from 1/32 up to 31/32.
type Intensity uint8

// Intensity steps.
const (
	IntensityMin Intensity = iota // 1/32
	Intensity3_32
	Intensity5_32
	Intensity7_32
	Intensity9_32
	Intensity11_32
	Intensity13_32
	Intensity15_32
	Intensity17_32
	Intensity19_32
	Intensity21_32
	Intensity23_32
	Intensity25_32
	Intensity27_32
	Intensity29_32
	IntensityMax // 31/32
)

func (i Intensity) String() string {
	if i > IntensityMax {
		return fmt.Sprintf("Intensity(%#02x)", uint8(i))
	}
	return fmt.Sprintf("%d/32", 2*uint8(i)+1)
}

// ScanLimit selects how many rows (digits) are multiplexed, from row 0 to the given row.
type ScanLimit uint8

// Scan limits.
const (
	ScanDigit0 ScanLimit = iota
	ScanDigit0To1
	ScanDigit0To2
	ScanDigit0To3
	ScanDigit0To4
	ScanDigit0To5
	ScanDigit0To6
	ScanDigit0To7
)

func (s ScanLimit) String() string {
	switch {
	case s == ScanDigit0:
		return "row 0"
	case s <= ScanDigit0To7:
		return fmt.Sprintf("rows 0-%d", uint8(s))
	default:
		return fmt.Sprintf("ScanLimit(%#02x)", uint8(s))
	}
}
