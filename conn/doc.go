// Package conn implements the serial buses a MAX7219 chain can be attached to.
//
// Every bus implements a single ordered write primitive: the bytes of one
// Write are shifted out while the chain's LOAD (chip select) line is held low,
// and LOAD returns high when the write completes, latching the shifted data
// into every chip at once.
package conn
