// Package testing provides small io.Reader test doubles for the FBX codec
// packages.
package testing

import (
	"bytes"
	"errors"
	"io"
)

// ErrShortRead is returned by LimitedReader once its budget is exhausted.
var ErrShortRead = errors.New("mock reader: short read")

// NonSeekingReader wraps an io.Reader but deliberately does not implement
// io.Seeker, so callers exercise the plain (read-and-discard) skip path
// instead of the seekable one.
type NonSeekingReader struct {
	r io.Reader
}

// NewNonSeekingReader wraps data as a pure io.Reader.
func NewNonSeekingReader(data []byte) *NonSeekingReader {
	return &NonSeekingReader{r: bytes.NewReader(data)}
}

// Read implements io.Reader.
func (n *NonSeekingReader) Read(p []byte) (int, error) {
	return n.r.Read(p)
}

// LimitedReader fails with ErrShortRead once budget bytes have been read,
// used to exercise truncated-file error paths in the parser.
type LimitedReader struct {
	r      io.Reader
	budget int
}

// NewLimitedReader creates a reader that fails after reading budget bytes.
func NewLimitedReader(data []byte, budget int) *LimitedReader {
	return &LimitedReader{r: bytes.NewReader(data), budget: budget}
}

// Read implements io.Reader.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.budget <= 0 {
		return 0, ErrShortRead
	}
	if len(p) > l.budget {
		p = p[:l.budget]
	}
	n, err := l.r.Read(p)
	l.budget -= n
	return n, err
}
