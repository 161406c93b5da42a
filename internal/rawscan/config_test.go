package rawscan

import "testing"

func TestResolveMinFirstChunkLen(t *testing.T) {
	if got := (Config{}).resolveMinFirstChunkLen(4096); got != 4096 {
		t.Errorf("zero-value Config: got %d, want %d (resolved bufcap)", got, 4096)
	}
	if got := (Config{MinFirstChunkLen: 512}).resolveMinFirstChunkLen(4096); got != 512 {
		t.Errorf("explicit value: got %d, want 512", got)
	}
}

func TestResolveBufszWithoutOverride(t *testing.T) {
	if got := (Config{}).resolveBufsz(4096); got != 4096 {
		t.Errorf("got %d, want 4096 (override disabled)", got)
	}
}

func TestResolveBufszWithOverride(t *testing.T) {
	t.Setenv("_RAWSCAN_FORCE_BUFSZ_", "8192")
	got := (Config{AllowEnvBufszOverride: true}).resolveBufsz(4096)
	if got != 8192 {
		t.Errorf("got %d, want 8192 (env override)", got)
	}
}
