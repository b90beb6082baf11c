package source

// FileID identifies the buffer a Span points into. Zero is the anonymous buffer.
type FileID uint32 // просто ID источника
