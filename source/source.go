// Package source abstracts the byte stream an FBX parser reads from,
// tracking an absolute offset so callers can report syntactic position
// without querying the underlying stream.
package source

import (
	"io"

	"github.com/scigolib/fbx/internal/utils"
)

// Source is the abstraction the pull parser reads through. Skip panics
// if asked to move backward: that is a parser programming error, not a
// data error.
type Source interface {
	io.Reader

	// Position returns the current absolute byte offset. O(1).
	Position() uint64

	// SkipForward advances by n bytes, discarding them.
	SkipForward(n uint64) error

	// SkipToAbsolute advances to the given absolute offset. Panics if
	// target < Position().
	SkipToAbsolute(target uint64) error
}

// PlainSource wraps any io.Reader and emulates skipping by reading and
// discarding.
type PlainSource struct {
	r   io.Reader
	pos uint64
}

// NewPlainSource wraps r.
func NewPlainSource(r io.Reader) *PlainSource {
	return &PlainSource{r: r}
}

func (s *PlainSource) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.pos += uint64(n)
	return n, err
}

func (s *PlainSource) Position() uint64 { return s.pos }

func (s *PlainSource) SkipForward(n uint64) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, s, int64(n)); err != nil {
		return utils.WrapError("skip forward", err)
	}
	return nil
}

func (s *PlainSource) SkipToAbsolute(target uint64) error {
	if target < s.pos {
		panic("source: SkipToAbsolute target is behind current position")
	}
	return s.SkipForward(target - s.pos)
}

// SeekableSource wraps an io.ReadSeeker and implements skip via Seek.
type SeekableSource struct {
	rs  io.ReadSeeker
	pos uint64
}

// NewSeekableSource wraps rs, which must currently be positioned at
// offset 0.
func NewSeekableSource(rs io.ReadSeeker) *SeekableSource {
	return &SeekableSource{rs: rs}
}

func (s *SeekableSource) Read(p []byte) (int, error) {
	n, err := s.rs.Read(p)
	s.pos += uint64(n)
	return n, err
}

func (s *SeekableSource) Position() uint64 { return s.pos }

func (s *SeekableSource) SkipForward(n uint64) error {
	return s.SkipToAbsolute(s.pos + n)
}

func (s *SeekableSource) SkipToAbsolute(target uint64) error {
	if target < s.pos {
		panic("source: SkipToAbsolute target is behind current position")
	}
	if target == s.pos {
		return nil
	}
	if _, err := s.rs.Seek(int64(target), io.SeekStart); err != nil {
		return utils.WrapError("seek", err)
	}
	s.pos = target
	return nil
}
