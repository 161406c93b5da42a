package rawscan

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/mimecast/rawscan/internal/rserrors"
)

// arena is the page-aligned memory region backing a Scanner's buffer.
// It is laid out as [writable buffer pages][one read-only sentinel
// page]. The sentinel page's first byte always holds the scanner's
// delimiter, which is where delimByte reads it from. findDelim does
// not rely on the sentinel to stop: it searches only up to the
// valid-data high-water mark. Because the page is read-only, any write
// that overruns the buffer faults immediately rather than corrupting
// adjacent memory.
type arena struct {
	mem      []byte // full mmap'd region: buf followed by the sentinel page
	buf      []byte // writable pages, mem[:len(mem)-pagesize]
	sentinel []byte // read-only page, mem[len(mem)-pagesize:]
	pagesize int
}

// newArena allocates an arena whose writable region is at least bufsz
// bytes, rounded up to a whole number of pages, followed by one
// read-only sentinel page primed with delim.
func newArena(bufsz int, delim byte) (*arena, error) {
	pagesize := unix.Getpagesize()
	bufcap := roundUp(bufsz, pagesize)
	total := bufcap + pagesize

	mem, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap arena: %w: %w", rserrors.ErrAlloc, err)
	}

	a := &arena{
		mem:      mem,
		buf:      mem[:bufcap],
		sentinel: mem[bufcap:],
		pagesize: pagesize,
	}
	a.sentinel[0] = delim

	if err := unix.Mprotect(a.sentinel, unix.PROT_READ); err != nil {
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("mprotect sentinel page: %w: %w", rserrors.ErrProtect, err)
	}

	return a, nil
}

func (a *arena) close() error {
	if a.mem == nil {
		return nil
	}
	_ = unix.Mprotect(a.sentinel, unix.PROT_READ|unix.PROT_WRITE)
	err := unix.Munmap(a.mem)
	a.mem, a.buf, a.sentinel = nil, nil, nil
	return rserrors.Wrap(err, "munmap arena")
}

func roundUp(n, multiple int) int {
	if multiple <= 0 {
		return n
	}
	rem := n % multiple
	if rem == 0 {
		return n
	}
	return n + multiple - rem
}
