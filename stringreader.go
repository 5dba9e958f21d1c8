package repa

import (
	"io"
)

// stringReader serves a string at most max bytes per Read call, modelling
// a slow streaming source. Handy in tests for pinning down exactly how
// much data each buffer growth sees.
type stringReader struct {
	str string
	pos int
	max int
}

// NewStringReader returns a reader over str that yields at most max bytes
// per Read. A max of zero or less means no per-read limit.
func NewStringReader(str string, max int) io.Reader {
	return &stringReader{str: str, max: max}
}

func (sr *stringReader) Read(p []byte) (n int, err error) {
	n = len(sr.str) - sr.pos
	if n == 0 {
		return 0, io.EOF
	}
	if n > len(p) {
		n = len(p)
	}
	if sr.max > 0 && n > sr.max {
		n = sr.max
	}
	copy(p, sr.str[sr.pos:sr.pos+n])
	sr.pos += n
	return n, nil
}
