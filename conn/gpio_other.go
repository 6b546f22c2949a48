//go:build !linux

package conn

import (
	"context"
	"errors"
	"time"
)

var ErrNotSupported = errors.New("conn: GPIO character devices are not supported")

// GPIO is only available on Linux.
type GPIO struct{}

func OpenGPIO(_ string, _, _, _ int, _ time.Duration) (*GPIO, error) {
	return nil, ErrNotSupported
}

func (*GPIO) String() string { return "GPIO (unsupported)" }

func (*GPIO) Close() error { return ErrNotSupported }

func (*GPIO) Write(context.Context, []byte) error { return ErrNotSupported }
