// Command rawscanremote runs a command on a remote host over SSH and
// scans its stdout with rawscan, demonstrating that the engine's
// io.Reader generalization needs no special-casing for a remote
// descriptor. Grounded on the teacher's internal/clients dial
// sequence and internal/ssh/client authentication helpers.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mimecast/rawscan/internal/rawscan"
	"github.com/mimecast/rawscan/internal/rslog"
	"github.com/mimecast/rawscan/internal/rsssh"
)

func main() {
	var (
		addr       = flag.String("addr", "", "host:port to dial")
		user       = flag.String("user", "", "remote username")
		privateKey = flag.String("identity", "", "path to a private key file")
		useAgent   = flag.Bool("agent", false, "also offer ssh-agent keys")
		remoteCmd  = flag.String("cmd", "cat /var/log/syslog", "command to run remotely")
		bufsz      = flag.Int("bufsz", 1<<16, "scanner buffer size in bytes")
		delimFlag  = flag.String("delim", "\n", "single-byte line delimiter")
		timeout    = flag.Duration("timeout", 15*time.Second, "dial timeout")
	)
	flag.Parse()

	log := rslog.Default()

	if *addr == "" || *user == "" {
		log.Error("-addr and -user are required")
		os.Exit(2)
	}
	if len(*delimFlag) != 1 {
		log.Error("delim must be exactly one byte")
		os.Exit(2)
	}

	conn, err := rsssh.Dial(rsssh.Options{
		Addr:           *addr,
		User:           *user,
		PrivateKeyPath: *privateKey,
		UseAgent:       *useAgent,
		Timeout:        *timeout,
	})
	if err != nil {
		log.Error("dial: %v", err)
		os.Exit(1)
	}
	defer conn.Close()

	stdout, err := conn.Run(*remoteCmd)
	if err != nil {
		log.Error("run: %v", err)
		os.Exit(1)
	}

	s, err := rawscan.Open(stdout, *bufsz, (*delimFlag)[0], rawscan.Config{AllowEnvBufszOverride: true})
	if err != nil {
		log.Error("open scanner: %v", err)
		os.Exit(1)
	}
	defer s.Close()

	for {
		res := s.GetLine()
		switch res.Kind {
		case rawscan.FullLine, rawscan.FullLineWithoutEol, rawscan.LongLineStart, rawscan.LongLineMid:
			os.Stdout.Write(res.Line)
		case rawscan.LongLineEnd:
		case rawscan.Eof:
			if err := stdout.Wait(); err != nil {
				log.Error("remote command: %v", err)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "rawscanremote: done")
			return
		case rawscan.Err:
			log.Error("scan: %v", res.Err)
			os.Exit(1)
		case rawscan.Paused:
		}
	}
}
