// Package rsenv holds the environment-variable helpers the module uses,
// mirroring the teacher's internal/config/env.go shape: small, typed
// accessors rather than scattered os.Getenv calls.
package rsenv

import (
	"os"
	"strconv"
)

// ForceBufszVar is the environment variable that, when rawscan.Config's
// AllowEnvBufszOverride is true, overrides the bufsz given to Open.
// Documented as test-only; production callers should leave
// AllowEnvBufszOverride false.
const ForceBufszVar = "_RAWSCAN_FORCE_BUFSZ_"

// maxForceBufsz is the spec-mandated upper clamp: 2 GiB, i.e. 2^31.
const maxForceBufsz = 1 << 31

// ForceBufsz reads ForceBufszVar. An unset, non-numeric, or out-of-range
// ([1, 2^31]) value is ignored silently, reported as ok=false, rather
// than causing Open to fail.
func ForceBufsz() (n int, ok bool) {
	v, present := os.LookupEnv(ForceBufszVar)
	if !present {
		return 0, false
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	if parsed < 1 || int64(parsed) > maxForceBufsz {
		return 0, false
	}
	return parsed, true
}

// Enabled returns true when the named environment variable is set to a
// recognized truthy value. Used by the cmd/ demo tools, never by the
// scanning engine itself.
func Enabled(name string) bool {
	switch os.Getenv(name) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
