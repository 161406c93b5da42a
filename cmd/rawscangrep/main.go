// Command rawscangrep prints lines starting with a given prefix.
// Grounded on _examples/original_source/source/tests/rawscan_test.c,
// which calls rs_set_min1stchunklen(rsp, abc_len) before scanning so a
// long line's first chunk is never shorter than the search pattern,
// then tests the pattern against only that first chunk and streams
// every later chunk of the same line straight to output, never
// buffering a whole long line to test it as one piece.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/mimecast/rawscan/internal/rawscan"
)

func main() {
	var (
		bufsz  = flag.Int("bufsz", 1<<16, "scanner buffer size in bytes")
		delim  = flag.String("delim", "\n", "single-byte line delimiter")
		prefix = flag.String("prefix", "", "print lines starting with this prefix")
	)
	flag.Parse()

	if len(*delim) != 1 {
		fmt.Fprintf(os.Stderr, "rawscangrep: delim must be exactly one byte, got %q\n", *delim)
		os.Exit(2)
	}

	s, err := rawscan.Open(os.Stdin, *bufsz, (*delim)[0], rawscan.Config{AllowEnvBufszOverride: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "rawscangrep: open: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	prefixBytes := []byte(*prefix)
	if len(prefixBytes) > 0 {
		if err := s.SetMinFirstChunkLen(len(prefixBytes)); err != nil {
			fmt.Fprintf(os.Stderr, "rawscangrep: set min first chunk len: %v\n", err)
			os.Exit(1)
		}
	}

	matches := 0
	longLineMatches := false

	for {
		res := s.GetLine()
		switch res.Kind {
		case rawscan.FullLine, rawscan.FullLineWithoutEol:
			if bytes.HasPrefix(res.Line, prefixBytes) {
				os.Stdout.Write(res.Line)
				matches++
			}
		case rawscan.LongLineStart:
			longLineMatches = bytes.HasPrefix(res.Line, prefixBytes)
			if longLineMatches {
				os.Stdout.Write(res.Line)
				matches++
			}
		case rawscan.LongLineMid:
			if longLineMatches {
				os.Stdout.Write(res.Line)
			}
		case rawscan.LongLineEnd:
			longLineMatches = false
		case rawscan.Eof:
			if matches == 0 && len(prefixBytes) > 0 {
				os.Exit(1)
			}
			return
		case rawscan.Err:
			fmt.Fprintf(os.Stderr, "rawscangrep: scan: %v\n", res.Err)
			os.Exit(1)
		case rawscan.Paused:
		}
	}
}
