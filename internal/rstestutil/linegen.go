package rstestutil

import (
	"math/rand/v2"
)

// alphabet mirrors the base64-style character set random_line_generator.c
// draws from when filling test lines.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// maxLineBody is the original generator's upper bound on a line's
// length before its trailing delimiter.
const maxLineBody = 15

// LineGenerator produces pseudo-random delimited lines with a PCG
// source, the same generator family the original C test harness uses
// for reproducible stress-test input.
type LineGenerator struct {
	rnd   *rand.Rand
	delim byte
}

// NewLineGenerator seeds a LineGenerator from seed1/seed2, mirroring
// the two 64-bit seed words the C tool's pcg32_srandom_r takes.
func NewLineGenerator(seed1, seed2 uint64, delim byte) *LineGenerator {
	return &LineGenerator{
		rnd:   rand.New(rand.NewPCG(seed1, seed2)),
		delim: delim,
	}
}

// Line returns one randomly sized line, 0 to maxLineBody bytes drawn
// from alphabet, followed by the delimiter.
func (g *LineGenerator) Line() []byte {
	n := g.rnd.IntN(maxLineBody + 1)
	line := make([]byte, n+1)
	for i := 0; i < n; i++ {
		line[i] = alphabet[g.rnd.IntN(len(alphabet))]
	}
	line[n] = g.delim
	return line
}

// Lines returns n concatenated calls to Line.
func (g *LineGenerator) Lines(n int) []byte {
	var out []byte
	for i := 0; i < n; i++ {
		out = append(out, g.Line()...)
	}
	return out
}
