package rawscan

import "github.com/mimecast/rawscan/internal/rsenv"

// MinBufsz is the smallest buffer size Open accepts. One byte of
// payload plus the sentinel page would make the shift engine's
// invariants vacuous, so the floor is set high enough to hold at least
// a handful of short lines.
const MinBufsz = 64

// DefaultAllowEnvBufszOverride is a legacy-style package-level default
// for Config.AllowEnvBufszOverride, standing in for the process-wide
// toggle the original C library exposed. Open never reads this
// directly; it exists purely so callers that want the old one-flip-
// affects-everything ergonomics for ad hoc stress testing can do
// cfg.AllowEnvBufszOverride = rawscan.DefaultAllowEnvBufszOverride
// instead of threading a flag through every Open call. Leave it false
// in production.
var DefaultAllowEnvBufszOverride = false

// Config carries a Scanner's tunables, passed explicitly to Open. The
// original C library's process-wide allow-env-bufsz toggle becomes the
// per-Open AllowEnvBufszOverride field here instead of global mutable
// state (see DefaultAllowEnvBufszOverride).
type Config struct {
	// PauseOnInval, when true, makes GetLine return Paused instead of
	// invalidating a previously returned Line, whenever the next
	// operation would otherwise do so. The caller must call
	// ResumeFromPause once it no longer needs the prior Line.
	PauseOnInval bool

	// AllowEnvBufszOverride, when true, lets rsenv.ForceBufszVar override
	// the bufsz argument passed to Open. Intended for test harnesses;
	// production callers should leave this false.
	AllowEnvBufszOverride bool

	// MinFirstChunkLen seeds the Scanner's min_first_chunk_len. Zero
	// means the buffer's capacity (the resolved bufsz rounded up to
	// whole pages): the whole buffer must fill before a long line's
	// first chunk is cut short. Larger values are clamped to the
	// capacity.
	MinFirstChunkLen int
}

func (c Config) resolveBufsz(requested int) int {
	if c.AllowEnvBufszOverride {
		if n, ok := rsenv.ForceBufsz(); ok {
			return n
		}
	}
	return requested
}

func (c Config) resolveMinFirstChunkLen(bufcap int) int {
	if c.MinFirstChunkLen > 0 {
		return c.MinFirstChunkLen
	}
	return bufcap
}
