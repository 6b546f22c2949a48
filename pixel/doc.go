// Package pixel implements the binary color model and pixel buffers used by LED matrix displays.
//
// The types in this package are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
