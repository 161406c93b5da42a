// Package rawscan implements a buffer-arena-based delimiter scanner: an
// io.Reader wrapped around a page-aligned buffer with a read-only
// sentinel page, returning one Result per call instead of allocating a
// new []byte for every line.
package rawscan

import (
	"io"

	"github.com/mimecast/rawscan/internal/rserrors"
)

// Scanner reads delimiter-separated records out of an io.Reader using
// a single reusable buffer. A Result's Line field aliases that buffer:
// it stays valid only until the next GetLine call performs a
// shift-down or buffer-reset, which a caller can hold off by enabling
// pause mode (see EnablePause).
type Scanner struct {
	r     io.Reader
	arena *arena
	cfg   Config

	bufcap int

	low  int // offset of first unconsumed byte
	high int // offset one past the last valid byte

	minFirstChunkLen int

	havePeek bool
	peekAt   int

	inLongLine bool

	pauseOnInval  bool
	pendingShift  bool
	pendingReset  bool
	resumeGranted bool
	longlineEnd   bool

	eof        bool
	eofPending bool // a Read has already reported io.EOF; no further Read calls are made
	err        error
	closed     bool
}

// Open allocates a Scanner reading from r, splitting on delim, backed
// by a buffer of at least bufsz bytes (rounded up to a whole number of
// pages internally). cfg.AllowEnvBufszOverride lets a test harness
// override bufsz via rsenv.ForceBufszVar without recompiling.
func Open(r io.Reader, bufsz int, delim byte, cfg Config) (*Scanner, error) {
	if r == nil {
		return nil, rserrors.Wrap(rserrors.ErrInvalidArgument, "open: nil reader")
	}

	bufsz = cfg.resolveBufsz(bufsz)
	if bufsz < MinBufsz {
		return nil, rserrors.Wrap(rserrors.ErrInvalidArgument, "open: bufsz below minimum")
	}

	a, err := newArena(bufsz, delim)
	if err != nil {
		return nil, err
	}

	minFirstChunkLen := cfg.resolveMinFirstChunkLen(len(a.buf))
	if minFirstChunkLen > len(a.buf) {
		minFirstChunkLen = len(a.buf)
	}

	return &Scanner{
		r:                r,
		arena:            a,
		cfg:              cfg,
		bufcap:           len(a.buf),
		minFirstChunkLen: minFirstChunkLen,
		pauseOnInval:     cfg.PauseOnInval,
	}, nil
}

// Close releases the Scanner's arena. It is safe to call more than
// once.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.arena.close()
}

// SetMinFirstChunkLen changes the shift engine's threshold between a
// full shift and a minimal shift. n must be in [1, bufcap].
func (s *Scanner) SetMinFirstChunkLen(n int) error {
	if n < 1 || n > s.bufcap {
		return rserrors.Wrap(rserrors.ErrInvalidArgument, "SetMinFirstChunkLen: out of range")
	}
	s.minFirstChunkLen = n
	return nil
}

// MinFirstChunkLen reports the current shift-engine threshold.
func (s *Scanner) MinFirstChunkLen() int {
	return s.minFirstChunkLen
}

// GetLine returns the next record. Once it returns a Result with Kind
// Eof or Err, every subsequent call returns the same terminal Result.
func (s *Scanner) GetLine() Result {
	if s.closed {
		return Result{Kind: Err, Err: rserrors.ErrClosed}
	}
	if s.err != nil {
		return Result{Kind: Err, Err: s.err}
	}
	if s.longlineEnd {
		s.longlineEnd = false
		s.inLongLine = false
		return Result{Kind: LongLineEnd}
	}
	if s.eof {
		return Result{Kind: Eof}
	}

	if s.pendingShift || s.pendingReset {
		if s.pauseOnInval && !s.resumeGranted {
			return Result{Kind: Paused}
		}
		s.resumeGranted = false
		if s.pendingShift {
			s.shiftDown()
		} else {
			s.resetBuffer()
		}
	}

	for {
		// Fast Path A: a prior call already located the next
		// delimiter while data for this line was still resident.
		if s.havePeek {
			return s.emitFullLine(s.peekAt)
		}

		// Fast Path B: a fresh scan over data already buffered, no
		// read or shift required.
		if s.low < s.high {
			if pos := s.arena.findDelim(s.low, s.high); pos >= 0 {
				if s.inLongLine {
					return s.emitLongLineFinalChunk(pos)
				}
				return s.emitFullLine(pos)
			}
		}

		if s.high == s.bufcap {
			// The buffer is full and still holds no delimiter.
			if !s.inLongLine && s.low > 0 {
				s.pendingShift = true
				if s.pauseOnInval {
					return Result{Kind: Paused}
				}
				s.shiftDown()
				continue
			}
			if s.eofPending && s.high-s.low > 1 {
				return s.emitLongChunkHoldLast()
			}
			return s.emitLongChunk()
		}

		n, err := s.read()
		if n > 0 {
			continue
		}
		if err == nil {
			// A zero-byte, no-error read is not progress and not
			// failure; retry rather than fabricate a Result.
			continue
		}
		if err != io.EOF {
			s.err = err
			return Result{Kind: Err, Err: err}
		}
		return s.handleEOF()
	}
}

// read fills the buffer's free space above high. Once the reader has
// reported io.EOF once, whether or not that call also returned data,
// eofPending latches so later calls skip straight past the reader
// instead of issuing a Read that is known to return nothing.
func (s *Scanner) read() (int, error) {
	if s.eofPending {
		return 0, io.EOF
	}
	n, err := s.r.Read(s.arena.buf[s.high:s.bufcap])
	if n > 0 {
		s.high += n
	}
	if err == io.EOF {
		s.eofPending = true
	}
	return n, err
}

// emitFullLine returns the line ending at (and including) the
// delimiter at pos, then opportunistically scans any remaining
// buffered data for the delimiter that would start the following
// line, caching it for the next call's Fast Path A.
func (s *Scanner) emitFullLine(pos int) Result {
	s.havePeek = false
	line := s.arena.buf[s.low : pos+1]
	s.low = pos + 1

	if s.low < s.high {
		if next := s.arena.findDelim(s.low, s.high); next >= 0 {
			s.havePeek = true
			s.peekAt = next
		}
	}

	return Result{Kind: FullLine, Line: line}
}

// emitLongChunk flushes a full buffer's worth of undelimited data as
// one chunk of a long-line sequence and schedules the buffer reset
// that must precede the next read.
func (s *Scanner) emitLongChunk() Result {
	kind := LongLineMid
	if !s.inLongLine {
		kind = LongLineStart
		s.inLongLine = true
	}
	chunk := s.arena.buf[s.low:s.high]
	s.pendingReset = true
	return Result{Kind: kind, Line: chunk}
}

// emitLongChunkHoldLast handles a buffer that has filled to capacity
// in the same call that exhausted the reader. Flushing the whole
// buffer here would hand out a chunk ending at the very last byte the
// reader will ever produce, leaving nothing to place that byte with
// room above it. Instead this holds the final byte back and schedules
// a shift instead of a reset, so the byte is repositioned with
// minFirstChunkLen bytes of headroom before being picked up by the
// normal delimiter scan or handleEOF on the next call.
func (s *Scanner) emitLongChunkHoldLast() Result {
	kind := LongLineMid
	if !s.inLongLine {
		kind = LongLineStart
		s.inLongLine = true
	}
	end := s.high - 1
	chunk := s.arena.buf[s.low:end]
	s.low = end
	s.pendingShift = true
	return Result{Kind: kind, Line: chunk}
}

// emitLongLineFinalChunk ends a long line once a delimiter finally
// turns up in buffered data: the leftover bytes up to and including
// the delimiter become the last data chunk, and LongLineEnd follows on
// the next call.
func (s *Scanner) emitLongLineFinalChunk(pos int) Result {
	chunk := s.arena.buf[s.low : pos+1]
	s.low = pos + 1
	s.longlineEnd = true

	if s.low < s.high {
		if next := s.arena.findDelim(s.low, s.high); next >= 0 {
			s.havePeek = true
			s.peekAt = next
		}
	}

	return Result{Kind: LongLineMid, Line: chunk}
}

// handleEOF disposes of whatever is left in the buffer once the
// reader is exhausted.
func (s *Scanner) handleEOF() Result {
	if s.low < s.high {
		chunk := s.arena.buf[s.low:s.high]
		s.low = s.high
		if s.inLongLine {
			s.longlineEnd = true
			s.eof = true
			return Result{Kind: LongLineMid, Line: chunk}
		}
		s.eof = true
		return Result{Kind: FullLineWithoutEol, Line: chunk}
	}
	if s.inLongLine {
		s.inLongLine = false
		s.eof = true
		return Result{Kind: LongLineEnd}
	}
	s.eof = true
	return Result{Kind: Eof}
}
