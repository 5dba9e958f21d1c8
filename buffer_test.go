package repa

import (
	"strings"
	"testing"
)

func TestBufferGrowChunked(t *testing.T) {
	b := newBuffer(NewStringReader("abcdefghij", 0), 2, nil)
	more, err := b.grow()
	if err != nil {
		t.Fatal(err)
	}
	// Chunks are twice the threshold.
	if string(b.data) != "abcd" {
		t.Errorf("after first grow buffer is %q", b.data)
	}
	if !more {
		t.Error("source not exhausted yet, grow said otherwise")
	}
	for more {
		more, err = b.grow()
		if err != nil {
			t.Fatal(err)
		}
	}
	if string(b.data) != "abcdefghij" {
		t.Errorf("after draining source buffer is %q", b.data)
	}
	if b.mayGrow {
		t.Error("mayGrow still set after end of data")
	}
	// Growing a dry buffer is a no-op.
	if more, _ = b.grow(); more {
		t.Error("grow on exhausted source reported more data")
	}
}

// A zero threshold reads the entire source on the first grow.
func TestBufferFullBuffering(t *testing.T) {
	src := NewStringReader(strings.Repeat("x", 10000), 512)
	b := newBuffer(src, 0, nil)
	more, err := b.grow()
	if err != nil {
		t.Fatal(err)
	}
	if more {
		t.Error("full-buffering grow must exhaust the source")
	}
	if len(b.data) != 10000 {
		t.Errorf("read %d bytes, want the whole 10000", len(b.data))
	}
}

func TestBufferConsume(t *testing.T) {
	b := newBuffer(strings.NewReader(""), 2, nil)
	b.data = []byte("hello world")
	b.consume(6)
	if string(b.data) != "world" {
		t.Errorf("after consume buffer is %q", b.data)
	}
	b.consume(100)
	if len(b.data) != 0 {
		t.Errorf("overlong consume left %q", b.data)
	}
}

func TestBufferPreview(t *testing.T) {
	b := newBuffer(strings.NewReader(""), 2, nil)
	b.data = []byte("a\tb\ncdef")
	if got := b.preview(4); got != `"a\tb\n"` {
		t.Errorf("preview(4) = %s", got)
	}
	if got := b.preview(0); got != `"a\tb\ncdef"` {
		t.Errorf("preview(0) = %s", got)
	}
	if string(b.data) != "a\tb\ncdef" {
		t.Error("preview mutated the buffer")
	}
}

func TestBufferFilterHook(t *testing.T) {
	crlf := func(data []byte) []byte {
		out := data[:0]
		for _, c := range data {
			if c != '\r' {
				out = append(out, c)
			}
		}
		return out
	}
	b := newBuffer(NewStringReader("a\r\nb\r\nc", 0), 2, crlf)
	for more := true; more; {
		var err error
		more, err = b.grow()
		if err != nil {
			t.Fatal(err)
		}
	}
	if string(b.data) != "a\nb\nc" {
		t.Errorf("filter not applied on growth: %q", b.data)
	}
}

func TestBufferLow(t *testing.T) {
	b := newBuffer(strings.NewReader(""), 4, nil)
	b.data = []byte("abc")
	if !b.low() {
		t.Error("3 bytes under threshold 4 not reported low")
	}
	b.data = []byte("abcd")
	if b.low() {
		t.Error("4 bytes at threshold 4 reported low")
	}
}
