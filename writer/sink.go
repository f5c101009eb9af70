package writer

import (
	"io"

	"github.com/scigolib/fbx/internal/utils"
)

// sink wraps an io.WriteSeeker and tracks the absolute write position
// itself, mirroring source.Source on the read side: callers never need
// to query the underlying stream to know where they are.
type sink struct {
	w   io.WriteSeeker
	pos uint64
}

func newSink(w io.WriteSeeker) *sink {
	return &sink{w: w}
}

func (s *sink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.pos += uint64(n)
	return n, err
}

func (s *sink) Position() uint64 { return s.pos }

// SeekTo moves the underlying writer to an absolute offset already
// written (used only for back-patching placeholder headers).
func (s *sink) SeekTo(target uint64) error {
	if _, err := s.w.Seek(int64(target), io.SeekStart); err != nil {
		return utils.WrapError("seek", err)
	}
	s.pos = target
	return nil
}
