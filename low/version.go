package low

// FbxVersion is a raw FBX version number, encoded as major*1000 +
// minor*100 (e.g. 7400 for "7.4").
type FbxVersion uint32

const (
	// V7_4 is FBX 7.4. Node header widths (end_offset, num_attributes,
	// bytelen_attributes) are u32 on the wire.
	V7_4 FbxVersion = 7400
	// V7_5 is FBX 7.5. Node header widths widen to u64 on the wire.
	V7_5 FbxVersion = 7500
)

// Major returns the major version component.
func (v FbxVersion) Major() uint32 { return uint32(v) / 1000 }

// Minor returns the minor version component.
func (v FbxVersion) Minor() uint32 { return (uint32(v) % 1000) / 100 }

// Raw returns the underlying integer.
func (v FbxVersion) Raw() uint32 { return uint32(v) }

// HasWideNodeHeader reports whether node headers for this version use
// 64-bit fields (true for v7.5 and above).
func (v FbxVersion) HasWideNodeHeader() bool { return v >= V7_5 }

// Supported reports whether v falls within the band this module
// implements decoding for: every version from 7.0 to 7.9 is parsed by
// the v7400 codec, with 64-bit node headers from 7.5 on and 32-bit
// node headers below it.
func (v FbxVersion) Supported() bool { return v >= 7000 && v < 8000 }
