// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the platform has no usable clipboard.
var ErrUnavailable = errors.New("no clipboard available")

// swapped out in tests
var (
	unsupported = func() bool { return clipboard.Unsupported }
	writeAll    = clipboard.WriteAll
)

// Write copies text to the system clipboard.
func Write(text string) error {
	if unsupported() {
		return ErrUnavailable
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Available reports whether copying can work on this system.
func Available() bool {
	return !unsupported()
}
