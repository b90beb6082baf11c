package token

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"jargon/internal/source"
)

// Token describes a contiguous span of a source buffer by offset and length.
type Token struct {
	Start  int // index of the first unit
	Length int // number of units
}

// Create returns a Token whose fields equal start and length exactly.
func Create(start, length int) Token {
	return Token{
		Start:  start,
		Length: length,
	}
}

// End returns the offset one past the last unit.
func (t Token) End() int { return t.Start + t.Length }

// Empty reports whether the token covers no units.
func (t Token) Empty() bool { return t.Length == 0 }

// String returns the token in start+length format.
func (t Token) String() string {
	return strconv.Itoa(t.Start) + "+" + strconv.Itoa(t.Length)
}

// Span converts the token into a byte span of file. Negative fields and
// offsets that do not fit uint32 are reported as errors.
func (t Token) Span(file source.FileID) (source.Span, error) {
	if t.Length < 0 {
		return source.Span{}, fmt.Errorf("token %s: negative length", t)
	}
	start, err := safecast.Conv[uint32](t.Start)
	if err != nil {
		return source.Span{}, fmt.Errorf("token %s: start: %w", t, err)
	}
	end, err := safecast.Conv[uint32](t.End())
	if err != nil {
		return source.Span{}, fmt.Errorf("token %s: end: %w", t, err)
	}
	return source.Span{File: file, Start: start, End: end}, nil
}

// FromSpan is the inverse of Span.
func FromSpan(sp source.Span) Token {
	return Create(int(sp.Start), int(sp.Len()))
}
