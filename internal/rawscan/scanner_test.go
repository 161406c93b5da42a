package rawscan

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mimecast/rawscan/internal/rserrors"
)

func open(t *testing.T, data string, cfg Config) *Scanner {
	t.Helper()
	s, err := Open(strings.NewReader(data), 64, '\n', cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func collectLines(t *testing.T, s *Scanner) []string {
	t.Helper()
	var got []string
	for {
		r := s.GetLine()
		switch r.Kind {
		case FullLine, FullLineWithoutEol:
			got = append(got, string(r.Line))
		case Eof:
			return got
		case Err:
			t.Fatalf("unexpected Err: %v", r.Err)
		default:
			t.Fatalf("unexpected Kind in collectLines: %v", r.Kind)
		}
	}
}

func TestGetLineFullLines(t *testing.T) {
	s := open(t, "alpha\nbravo\ncharlie\n", Config{})
	got := collectLines(t, s)
	want := []string{"alpha\n", "bravo\n", "charlie\n"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetLineWithoutTrailingDelimiter(t *testing.T) {
	s := open(t, "alpha\nbravo", Config{})
	got := collectLines(t, s)
	want := []string{"alpha\n", "bravo"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}

	if r := s.GetLine(); r.Kind != Eof {
		t.Errorf("after exhaustion, Kind = %v, want Eof", r.Kind)
	}
	if r := s.GetLine(); r.Kind != Eof {
		t.Errorf("repeated call after Eof should still be Eof, got %v", r.Kind)
	}
}

func TestGetLineEmptyInput(t *testing.T) {
	s := open(t, "", Config{})
	if r := s.GetLine(); r.Kind != Eof {
		t.Errorf("Kind = %v, want Eof", r.Kind)
	}
}

func TestGetLineLongLine(t *testing.T) {
	long := strings.Repeat("x", 10000)
	data := "short\n" + long + "\nend\n"
	s := open(t, data, Config{})

	r := s.GetLine()
	if r.Kind != FullLine || string(r.Line) != "short\n" {
		t.Fatalf("first line = %v %q", r.Kind, r.Line)
	}

	var chunks [][]byte
	r = s.GetLine()
	if r.Kind != LongLineStart {
		t.Fatalf("expected LongLineStart, got %v", r.Kind)
	}
	chunks = append(chunks, append([]byte(nil), r.Line...))

	for {
		r = s.GetLine()
		if r.Kind == LongLineEnd {
			break
		}
		if r.Kind != LongLineMid {
			t.Fatalf("expected LongLineMid, got %v (%v)", r.Kind, r.Err)
		}
		chunks = append(chunks, append([]byte(nil), r.Line...))
	}

	var rebuilt bytes.Buffer
	for _, c := range chunks {
		rebuilt.Write(c)
	}
	if rebuilt.String() != long+"\n" {
		t.Fatalf("reassembled long line mismatch: got %d bytes, want %d", rebuilt.Len(), len(long)+1)
	}

	r = s.GetLine()
	if r.Kind != FullLine || string(r.Line) != "end\n" {
		t.Fatalf("line after long line = %v %q", r.Kind, r.Line)
	}

	r = s.GetLine()
	if r.Kind != Eof {
		t.Fatalf("final Kind = %v, want Eof", r.Kind)
	}
}

func TestGetLineLongLineAtEOFWithoutTrailingDelimiter(t *testing.T) {
	long := strings.Repeat("y", 10000)
	s := open(t, long, Config{})

	sawEnd := false
	var total int
	for {
		r := s.GetLine()
		if r.Kind == Eof {
			break
		}
		if r.Kind == LongLineEnd {
			sawEnd = true
			continue
		}
		if r.Kind != LongLineStart && r.Kind != LongLineMid {
			t.Fatalf("unexpected Kind: %v (%v)", r.Kind, r.Err)
		}
		total += len(r.Line)
	}
	if !sawEnd {
		t.Error("expected a LongLineEnd before Eof")
	}
	if total != len(long) {
		t.Errorf("total bytes = %d, want %d", total, len(long))
	}
}

// combinedEOFReader returns its entire payload together with io.EOF in
// a single Read call, legal under the io.Reader contract and the case
// that TestGetLineHoldsBackLastByteWhenEOFCoincidesWithFullBuffer
// exercises.
type combinedEOFReader struct {
	data []byte
	done bool
}

func (r *combinedEOFReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.done = true
	return n, io.EOF
}

func TestGetLineHoldsBackLastByteWhenEOFCoincidesWithFullBuffer(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 4096)
	r := &combinedEOFReader{data: data}
	s, err := Open(r, 64, '\n', Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	res := s.GetLine()
	if res.Kind != LongLineStart {
		t.Fatalf("first Kind = %v, want LongLineStart", res.Kind)
	}
	if len(res.Line) != len(data)-1 {
		t.Fatalf("first chunk length = %d, want %d (all but the last byte)", len(res.Line), len(data)-1)
	}
	got := append([]byte(nil), res.Line...)

	res = s.GetLine()
	if res.Kind != LongLineMid {
		t.Fatalf("second Kind = %v, want LongLineMid", res.Kind)
	}
	if len(res.Line) != 1 {
		t.Fatalf("second chunk length = %d, want 1 (the held-back byte)", len(res.Line))
	}
	got = append(got, res.Line...)

	if res = s.GetLine(); res.Kind != LongLineEnd {
		t.Fatalf("third Kind = %v, want LongLineEnd", res.Kind)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("reassembled %d bytes, want %d to match input", len(got), len(data))
	}

	if res = s.GetLine(); res.Kind != Eof {
		t.Fatalf("final Kind = %v, want Eof", res.Kind)
	}
}

func TestGetLineFindsDelimiterWhileInLongLine(t *testing.T) {
	long := strings.Repeat("z", 10000)
	data := long + "\n" + "tail\n"
	s := open(t, data, Config{})

	var chunks [][]byte
	for {
		r := s.GetLine()
		if r.Kind == LongLineEnd {
			break
		}
		if r.Kind != LongLineStart && r.Kind != LongLineMid {
			t.Fatalf("unexpected Kind: %v (%v)", r.Kind, r.Err)
		}
		chunks = append(chunks, append([]byte(nil), r.Line...))
	}

	var rebuilt bytes.Buffer
	for _, c := range chunks {
		rebuilt.Write(c)
	}
	if rebuilt.String() != long+"\n" {
		t.Fatalf("reassembled long line mismatch: got %d bytes, want %d", rebuilt.Len(), len(long)+1)
	}

	r := s.GetLine()
	if r.Kind != FullLine || string(r.Line) != "tail\n" {
		t.Fatalf("line after long line = %v %q", r.Kind, r.Line)
	}

	r = s.GetLine()
	if r.Kind != Eof {
		t.Fatalf("final Kind = %v, want Eof", r.Kind)
	}
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }

func TestGetLineReadError(t *testing.T) {
	boom := errors.New("boom")
	s, err := Open(errReader{boom}, 64, '\n', Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	r := s.GetLine()
	if r.Kind != Err || !errors.Is(r.Err, boom) {
		t.Fatalf("Kind = %v, Err = %v", r.Kind, r.Err)
	}
	r = s.GetLine()
	if r.Kind != Err {
		t.Errorf("repeated call after Err should stay Err, got %v", r.Kind)
	}
}

type zeroThenDataReader struct {
	calls int
	data  string
}

func (z *zeroThenDataReader) Read(p []byte) (int, error) {
	z.calls++
	if z.calls == 1 {
		return 0, nil
	}
	n := copy(p, z.data)
	z.data = z.data[n:]
	if z.data == "" {
		return n, io.EOF
	}
	return n, nil
}

func TestGetLineZeroByteNoErrorReadIsRetried(t *testing.T) {
	r := &zeroThenDataReader{data: "one\ntwo\n"}
	s, err := Open(r, 64, '\n', Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	got := collectLines(t, s)
	if len(got) != 2 || got[0] != "one\n" || got[1] != "two\n" {
		t.Fatalf("got %v", got)
	}
	if r.calls < 2 {
		t.Errorf("expected at least 2 Read calls, got %d", r.calls)
	}
}

func TestPauseDefersFullLineIsBenign(t *testing.T) {
	// Lines that fit comfortably in one fast-path scan never touch the
	// shift/reset machinery, so pause mode must not affect them.
	s := open(t, "a\nb\nc\n", Config{PauseOnInval: true})
	got := collectLines(t, s)
	if len(got) != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestPauseDefersLongLineReset(t *testing.T) {
	long := strings.Repeat("z", 10000)
	s := open(t, long+"\n", Config{PauseOnInval: true})

	r := s.GetLine()
	if r.Kind != LongLineStart {
		t.Fatalf("expected LongLineStart, got %v", r.Kind)
	}
	first := append([]byte(nil), r.Line...)

	// The next call must pause rather than overwrite the chunk we were
	// just handed, since emitting it scheduled a buffer reset.
	r = s.GetLine()
	if r.Kind != Paused {
		t.Fatalf("expected Paused, got %v", r.Kind)
	}

	s.ResumeFromPause()
	r = s.GetLine()
	if r.Kind != LongLineMid && r.Kind != LongLineEnd {
		t.Fatalf("expected LongLineMid or LongLineEnd after resume, got %v", r.Kind)
	}
	if bytes.Equal(first, nil) {
		t.Fatal("sanity: first chunk must be non-empty")
	}
}

func TestSetMinFirstChunkLenRejectsOutOfRange(t *testing.T) {
	s := open(t, "a\n", Config{})
	before := s.MinFirstChunkLen()

	if err := s.SetMinFirstChunkLen(0); err == nil {
		t.Error("expected error for n=0")
	}
	if err := s.SetMinFirstChunkLen(1 << 30); err == nil {
		t.Error("expected error for n larger than bufcap")
	}
	if s.MinFirstChunkLen() != before {
		t.Errorf("MinFirstChunkLen() = %d, want unchanged %d", s.MinFirstChunkLen(), before)
	}

	if err := s.SetMinFirstChunkLen(s.bufcap); err != nil {
		t.Errorf("SetMinFirstChunkLen(bufcap): %v", err)
	}
	if s.MinFirstChunkLen() != s.bufcap {
		t.Errorf("MinFirstChunkLen() = %d, want %d", s.MinFirstChunkLen(), s.bufcap)
	}
}

func TestOpenRejectsNilReader(t *testing.T) {
	if _, err := Open(nil, 64, '\n', Config{}); err == nil {
		t.Fatal("expected error for nil reader")
	}
}

func TestOpenRejectsTooSmallBufsz(t *testing.T) {
	if _, err := Open(strings.NewReader(""), 1, '\n', Config{}); err == nil {
		t.Fatal("expected error for undersized bufsz")
	}
}

func TestCloseThenGetLine(t *testing.T) {
	s, err := Open(strings.NewReader("a\n"), 64, '\n', Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	r := s.GetLine()
	if r.Kind != Err || !errors.Is(r.Err, rserrors.ErrClosed) {
		t.Fatalf("Kind = %v, Err = %v, want Err wrapping ErrClosed", r.Kind, r.Err)
	}
}
