package conn

import "fmt"

// PinError reports a failure driving one of the bus control lines.
type PinError struct {
	// Pin is the name of the line, such as "CS", "CLK" or "DIN".
	Pin string

	// Err is the underlying GPIO error.
	Err error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("conn: %s pin: %v", e.Pin, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}
