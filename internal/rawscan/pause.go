package rawscan

// EnablePause turns on pause-on-invalidation: once enabled, GetLine
// defers any shift-down or buffer-reset that would overwrite memory
// behind a previously returned Result, returning Paused instead, until
// ResumeFromPause is called.
func (s *Scanner) EnablePause() {
	s.pauseOnInval = true
}

// DisablePause turns pause-on-invalidation back off. Any operation
// already deferred runs on the next GetLine call without waiting for
// ResumeFromPause.
func (s *Scanner) DisablePause() {
	s.pauseOnInval = false
}

// ResumeFromPause grants permission for exactly one deferred
// shift-down or buffer-reset to proceed on the next GetLine call. If
// nothing is pending, the permission is kept and used by the next
// shift-down or buffer-reset that pause mode would defer.
func (s *Scanner) ResumeFromPause() {
	s.resumeGranted = true
}
