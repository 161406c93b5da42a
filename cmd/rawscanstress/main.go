// Command rawscanstress repeatedly scans one generated random
// input at a sequence of doubling buffer sizes, verifying the
// reassembled output is byte-identical to what was written. Grounded
// on the original C library's src/rawscanstresstest.c, which runs the
// same doubling-buffer-size sweep against its own rawscan_getline.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mimecast/rawscan/internal/rawscan"
	"github.com/mimecast/rawscan/internal/rsenv"
	"github.com/mimecast/rawscan/internal/rslog"
	"github.com/mimecast/rawscan/internal/rstestutil"
)

func main() {
	var (
		lines     = flag.Int("lines", 5000, "lines of input to generate")
		minBufsz  = flag.Int("min-bufsz", 64, "smallest buffer size to try")
		maxBufsz  = flag.Int("max-bufsz", 1<<20, "largest buffer size to try")
		skip      = flag.Int("skip", 1, "test every Nth doubling step instead of every step")
		seed1     = flag.Uint64("seed1", 1, "PCG seed word 1")
		seed2     = flag.Uint64("seed2", 2, "PCG seed word 2")
		delimFlag = flag.String("delim", "\n", "single-byte line delimiter")
	)
	flag.Parse()

	log := rslog.Default()
	if rsenv.Enabled("RAWSCAN_STRESS_VERBOSE") {
		log = rslog.New(os.Stderr, rslog.LevelDebug)
	}

	if len(*delimFlag) != 1 {
		log.Error("delim must be exactly one byte")
		os.Exit(2)
	}
	delim := (*delimFlag)[0]

	gen := rstestutil.NewLineGenerator(*seed1, *seed2, delim)
	input := gen.Lines(*lines)

	step := 0
	failures := 0
	for bufsz := *minBufsz; bufsz <= *maxBufsz; bufsz *= 2 {
		step++
		if step%*skip != 0 {
			continue
		}
		if err := runOnce(input, bufsz, delim); err != nil {
			log.Error("bufsz=%d: %v", bufsz, err)
			failures++
			continue
		}
		log.Info("bufsz=%d: ok", bufsz)
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func runOnce(input []byte, bufsz int, delim byte) error {
	r, w, err := rstestutil.Pipe()
	if err != nil {
		return fmt.Errorf("pipe: %w", err)
	}

	writeErr := make(chan error, 1)
	go func() {
		_, err := w.Write(input)
		w.Close()
		writeErr <- err
	}()

	s, err := rawscan.Open(r, bufsz, delim, rawscan.Config{})
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer s.Close()

	var out bytes.Buffer
	for {
		res := s.GetLine()
		switch res.Kind {
		case rawscan.FullLine, rawscan.FullLineWithoutEol, rawscan.LongLineStart, rawscan.LongLineMid:
			out.Write(res.Line)
		case rawscan.LongLineEnd:
		case rawscan.Eof:
			if err := <-writeErr; err != nil && err != io.ErrClosedPipe {
				return fmt.Errorf("write side: %w", err)
			}
			if !bytes.Equal(out.Bytes(), input) {
				return fmt.Errorf("reassembled output mismatch: got %d bytes, want %d", out.Len(), len(input))
			}
			return nil
		case rawscan.Err:
			return res.Err
		case rawscan.Paused:
			return fmt.Errorf("unexpected Paused with pause mode disabled")
		}
	}
}
