// Package rserrors provides the sentinel errors and wrapping helper shared
// across this module, in place of ad hoc fmt.Errorf call sites.
package rserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors covering the error kinds enumerated by the scanning
// engine's design: allocation and protection failures at Open, misuse of
// the public facade, and operating on a closed Scanner.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlloc           = errors.New("buffer allocation failed")
	ErrProtect         = errors.New("sentinel page protection failed")
	ErrClosed          = errors.New("scanner is closed")
)

// Wrap annotates err with msg, preserving err in the chain so callers can
// still errors.Is/errors.As against the sentinel values above. Wrap(nil,
// ...) returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
