package source

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// Len returns the number of bytes covered by s.
func (s Span) Len() uint32 {
	return s.End - s.Start
}
