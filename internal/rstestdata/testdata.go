// Package rstestdata generates and compresses fixture data for
// benchmarking rawscan against realistically sized inputs, grounded on
// the teacher's benchmarks/testdata_generator.go shape.
package rstestdata

import (
	"bytes"
	"io"

	"github.com/DataDog/zstd"

	"github.com/mimecast/rawscan/internal/rstestutil"
)

// GenerateLines returns count PCG-generated lines concatenated
// together, delimited by delim.
func GenerateLines(count int, delim byte, seed1, seed2 uint64) []byte {
	gen := rstestutil.NewLineGenerator(seed1, seed2, delim)
	return gen.Lines(count)
}

// GenerateZstdCompressed builds count lines and returns them
// zstd-compressed at the given level, for exercising rawscan against a
// DecompressReader pipeline instead of plain bytes.
func GenerateZstdCompressed(count int, delim byte, seed1, seed2 uint64, level int) ([]byte, error) {
	raw := GenerateLines(count, delim, seed1, seed2)
	compressed, err := zstd.CompressLevel(nil, raw, level)
	if err != nil {
		return nil, err
	}
	return compressed, nil
}

// DecompressReader wraps a zstd-compressed byte stream as an
// io.Reader, the shape rawscan.Open expects.
func DecompressReader(compressed []byte) io.Reader {
	return zstd.NewReader(bytes.NewReader(compressed))
}
