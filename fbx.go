// Package fbx provides a pure Go implementation for reading and writing
// Autodesk FBX binary files. It sniffs the file header to dispatch to
// the matching versioned codec; today that means FBX 7.x (7.0–7.9),
// implemented by the v7400 wire format.
package fbx

import (
	"bytes"
	"io"
	"os"

	"github.com/scigolib/fbx/dom/v7400"
	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
	"github.com/scigolib/fbx/low"
	"github.com/scigolib/fbx/pullparser"
	"github.com/scigolib/fbx/tree"
	"github.com/scigolib/fbx/writer"
)

// ParserVariant names the codec generation a sniffed header dispatches
// to. It is intentionally non-exhaustive: a future FBX wire generation
// would add a new variant here without requiring existing exhaustive
// switches elsewhere in client code to change, so long as they retain
// a default case.
type ParserVariant int

const (
	// VariantV7400 covers FBX 7.0 through 7.9 (raw version 7000-7999),
	// the only generation this module's codec layer implements.
	VariantV7400 ParserVariant = iota
)

func (v ParserVariant) String() string {
	switch v {
	case VariantV7400:
		return "v7400"
	default:
		return "unknown"
	}
}

// Sniff reads just enough of r to report the file's declared FBX
// version and which ParserVariant handles it, without consuming more
// of r than the header (callers using a non-seekable r should treat r
// as consumed afterward).
func Sniff(r io.Reader) (low.FbxVersion, ParserVariant, error) {
	header, err := low.LoadFbxHeader(r)
	if err != nil {
		return 0, 0, err
	}
	variant, err := variantFor(header.Version)
	if err != nil {
		return header.Version, 0, err
	}
	return header.Version, variant, nil
}

func variantFor(v low.FbxVersion) (ParserVariant, error) {
	if !v.Supported() {
		return 0, ferr.NewUnsupportedFbxVersion("fbx", v.Raw())
	}
	return VariantV7400, nil
}

// OpenPullParser sniffs r's header and returns a streaming pull parser
// for it. Prefer OpenPullParserSeekable when rs supports
// seeking: it lets the parser skip unread array/binary/string payloads
// instead of discard-reading them.
func OpenPullParser(r io.Reader) (*pullparser.Parser, error) {
	return pullparser.NewFromReader(r)
}

// OpenPullParserSeekable is OpenPullParser for a seekable source.
func OpenPullParserSeekable(rs io.ReadSeeker) (*pullparser.Parser, error) {
	return pullparser.NewFromSeekableReader(rs)
}

// LoadTree parses r fully into a tree.Tree.
func LoadTree(r io.Reader) (*tree.Tree, low.Footer, error) {
	return tree.Load(r)
}

// LoadTreeFile opens path and parses it fully into a tree.Tree.
func LoadTreeFile(path string) (*tree.Tree, low.Footer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, low.Footer{}, utils.WrapError("open fbx file", err)
	}
	defer f.Close()
	return tree.Load(f)
}

// LoadDocument parses r fully into a semantic dom/v7400.Document.
func LoadDocument(r io.Reader) (*v7400.Document, error) {
	return v7400.Load(r)
}

// LoadDocumentFile opens path and parses it fully into a
// dom/v7400.Document.
func LoadDocumentFile(path string) (*v7400.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, utils.WrapError("open fbx file", err)
	}
	defer f.Close()
	return v7400.Load(f)
}

// NewWriter sniffs nothing (there is no existing file to sniff): the
// caller picks the version to emit. It is a thin alias over
// writer.NewWriter kept at the package root for symmetry with the read
// side's version-dispatch entry points.
func NewWriter(w io.WriteSeeker, version low.FbxVersion) (*writer.Writer, error) {
	return writer.NewWriter(w, version)
}

// WriteTreeFile writes t to a new file at path using the given version,
// truncating any existing file.
func WriteTreeFile(path string, version low.FbxVersion, t *tree.Tree) error {
	f, err := os.Create(path)
	if err != nil {
		return utils.WrapError("create fbx file", err)
	}
	defer f.Close()

	w, err := writer.NewWriter(f, version)
	if err != nil {
		return err
	}
	if err := writer.WriteTree(w, t); err != nil {
		return err
	}
	return w.Finalize(nil, -1)
}

// IsFbxFile reports whether r begins with the FBX binary magic
// sequence. It reads and discards exactly len(low.Magic) bytes from r.
func IsFbxFile(r io.Reader) bool {
	buf := make([]byte, len(low.Magic))
	if _, err := io.ReadFull(r, buf); err != nil {
		return false
	}
	return bytes.Equal(buf, low.Magic)
}
