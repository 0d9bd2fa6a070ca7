/*
Package pack serializes glyph tables into the compact binary layout
consumed by embedded renderers, and decodes it again.

The layout is the single place where a one-bit error becomes visually
wrong glyphs with no compile-time signal, so the encoder is paired with a
reference decoder (Face) and both are exercised by bit-exact round-trip
tests. All multi-byte fields are little-endian; glyph rows are bit-packed
byte-aligned, most-significant bit first, the conventional BDF packing.

Layout:

	offset  size  field
	0       4     magic "fbt1"
	4       2     pixel size
	6       2     ascent  (signed)
	8       2     descent (signed, positive down)
	10      2     max advance width
	12      4     number of index entries
	16      n*14  index entries, sorted ascending by code-point:
	              u32 code-point, u32 blob offset, u8 width, u8 height,
	              i8 x-offset, i8 y-offset, u16 advance
	16+n*14 …     glyph-data blob, rows of ceil(width/8) bytes per glyph

Entries of code-points with identical bitmaps share one blob offset; the
blob stores each distinct bitmap exactly once.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package pack

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontbake.pack'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.pack")
}
