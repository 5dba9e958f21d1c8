package repa

import (
	"io"
	"strconv"
)

// buffer owns the unconsumed input. The cursor is implicitly at offset
// zero: consumed prefixes are physically removed, never skipped over.
// mayGrow tracks strictly whether the source has signaled end-of-data,
// independent of the minimum-buffer threshold.
type buffer struct {
	data    []byte
	src     io.Reader
	mayGrow bool
	minBuf  int
	filter  func([]byte) []byte
}

func newBuffer(src io.Reader, minBuf int, filter func([]byte) []byte) *buffer {
	return &buffer{
		src:     src,
		mayGrow: true,
		minBuf:  minBuf,
		filter:  filter,
	}
}

// grow appends the next chunk from the source and reports whether more
// data may still arrive. With a zero threshold the first call reads the
// entire source, trading memory for the guarantee that no token is ever
// truncated. Otherwise chunks are twice the threshold so repeated fills
// amortize well.
func (b *buffer) grow() (bool, error) {
	if !b.mayGrow {
		return false, nil
	}
	var chunk []byte
	if b.minBuf == 0 {
		all, err := io.ReadAll(b.src)
		if err != nil {
			return false, err
		}
		chunk = all
		b.mayGrow = false
	} else {
		chunk = make([]byte, 2*b.minBuf)
		n, err := b.src.Read(chunk)
		chunk = chunk[:n]
		if err == io.EOF {
			b.mayGrow = false
		} else if err != nil {
			return false, err
		}
	}
	if len(chunk) > 0 {
		b.data = append(b.data, chunk...)
		if b.filter != nil {
			b.data = b.filter(b.data)
		}
	}
	return b.mayGrow, nil
}

// consume removes the first n bytes.
func (b *buffer) consume(n int) {
	if n > len(b.data) {
		n = len(b.data)
	}
	b.data = append(b.data[:0], b.data[n:]...)
}

// low reports whether the buffer has fallen below the refill threshold.
func (b *buffer) low() bool {
	return len(b.data) < b.minBuf
}

// preview returns the first n bytes (the whole buffer when n == 0) with
// non-printable characters escaped. Diagnostics only; never mutates.
func (b *buffer) preview(n int) string {
	if n <= 0 || n > len(b.data) {
		n = len(b.data)
	}
	return strconv.Quote(string(b.data[:n]))
}
