package max7219

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/max7219/conn"
)

// Errors
var (
	ErrModules    = errors.New("max7219: module count must be at least 1")
	ErrBufferSize = errors.New("max7219: framebuffer length must be 64 bytes per module")
	ErrClosed     = errors.New("max7219: matrix is closed")
)

// Kind classifies the failures reported by I/O operations.
type Kind uint8

// Error kinds.
const (
	// Comm means the transport failed to send bytes.
	Comm Kind = iota

	// Pin means a bus control line could not be driven.
	Pin
)

func (k Kind) String() string {
	switch k {
	case Comm:
		return "communication"
	case Pin:
		return "pin"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Error is returned by every operation that talks to the chain. Failures are
// never retried; Err is the transport error as reported.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("max7219: %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError classifies a transport error.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var pinErr *conn.PinError
	if errors.As(err, &pinErr) {
		return &Error{Kind: Pin, Err: err}
	}
	return &Error{Kind: Comm, Err: err}
}
