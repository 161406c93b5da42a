// Command rawscancat scans stdin or a file and writes each line to
// stdout, the minimal demo CLI for the rawscan package. Grounded on
// the teacher's cmd/dcat, trading its remote-tailing flags for
// rawscan-specific ones.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mimecast/rawscan/internal/rawscan"
	"github.com/mimecast/rawscan/internal/rslog"
)

func main() {
	var (
		bufsz     = flag.Int("bufsz", 1<<16, "scanner buffer size in bytes")
		delim     = flag.String("delim", "\n", "single-byte line delimiter")
		path      = flag.String("file", "", "file to scan, defaults to stdin")
		quiet     = flag.Bool("quiet", false, "suppress chunk-boundary markers on long lines")
		noFail    = flag.Bool("ignore-errors", false, "exit 0 even if a read error occurs")
		envBufsz  = flag.Bool("allow-env-bufsz", rawscan.DefaultAllowEnvBufszOverride, "let _RAWSCAN_FORCE_BUFSZ_ override -bufsz")
	)
	flag.Parse()

	log := rslog.Default()

	if len(*delim) != 1 {
		log.Error("delim must be exactly one byte, got %q", *delim)
		os.Exit(2)
	}

	r := os.Stdin
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			log.Error("open %s: %v", *path, err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	s, err := rawscan.Open(r, *bufsz, (*delim)[0], rawscan.Config{AllowEnvBufszOverride: *envBufsz})
	if err != nil {
		log.Error("open scanner: %v", err)
		os.Exit(1)
	}
	defer s.Close()

	exitCode := 0
	for {
		res := s.GetLine()
		switch res.Kind {
		case rawscan.FullLine, rawscan.FullLineWithoutEol:
			os.Stdout.Write(res.Line)
		case rawscan.LongLineStart:
			if !*quiet {
				fmt.Fprintln(os.Stderr, "--- long line start ---")
			}
			os.Stdout.Write(res.Line)
		case rawscan.LongLineMid:
			os.Stdout.Write(res.Line)
		case rawscan.LongLineEnd:
			if !*quiet {
				fmt.Fprintln(os.Stderr, "--- long line end ---")
			}
		case rawscan.Eof:
			os.Exit(exitCode)
		case rawscan.Err:
			log.Error("scan: %v", res.Err)
			if !*noFail {
				exitCode = 1
			}
			os.Exit(exitCode)
		case rawscan.Paused:
			// rawscancat never enables pause mode.
		}
	}
}
