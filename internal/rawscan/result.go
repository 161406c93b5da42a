package rawscan

// Kind identifies the variant of a Result.
type Kind int

const (
	// FullLine is a complete line, Line's last byte is the delimiter.
	FullLine Kind = iota
	// FullLineWithoutEol is the final line of an input that ended without
	// a trailing delimiter.
	FullLineWithoutEol
	// LongLineStart is the first chunk of a line longer than the
	// Scanner's buffer.
	LongLineStart
	// LongLineMid is a subsequent chunk of an in-progress long line.
	LongLineMid
	// LongLineEnd marks the end of a long-line sequence. Line is nil.
	LongLineEnd
	// Paused means getline did nothing; the caller must call
	// ResumeFromPause before the next call can make progress.
	Paused
	// Eof means the input is exhausted. Subsequent calls keep returning
	// Eof.
	Eof
	// Err means a read failed. Err field carries the error. Subsequent
	// calls keep returning Err.
	Err
)

func (k Kind) String() string {
	switch k {
	case FullLine:
		return "FullLine"
	case FullLineWithoutEol:
		return "FullLineWithoutEol"
	case LongLineStart:
		return "LongLineStart"
	case LongLineMid:
		return "LongLineMid"
	case LongLineEnd:
		return "LongLineEnd"
	case Paused:
		return "Paused"
	case Eof:
		return "Eof"
	case Err:
		return "Err"
	default:
		return "Unknown"
	}
}

// Result is the return value of one GetLine call. Line, when non-nil, is
// a slice of the Scanner's internal buffer: it is valid only until the
// next GetLine call that mutates the buffer (see Scanner doc comment),
// unless pause mode is holding that mutation off.
type Result struct {
	Kind Kind
	Line []byte
	Err  error
}

func (r Result) String() string {
	switch r.Kind {
	case Err:
		return "Result(Err, " + r.Err.Error() + ")"
	case LongLineEnd, Paused, Eof:
		return "Result(" + r.Kind.String() + ")"
	default:
		return "Result(" + r.Kind.String() + ", " + string(r.Line) + ")"
	}
}
