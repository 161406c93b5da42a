// Package rstestutil holds test-only helpers used by the
// cmd/rawscanstress harness and internal/rstestdata:
// an os.Pipe wrapper and a PCG-seeded random line generator mirroring
// the original C library's test tooling.
package rstestutil

import "os"

// Pipe returns a connected read/write pair, wrapping os.Pipe so
// callers get a named error instead of a bare (nil, nil, err) triple.
func Pipe() (r *os.File, w *os.File, err error) {
	return os.Pipe()
}
