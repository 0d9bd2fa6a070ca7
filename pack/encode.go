package pack

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/table"
)

// binary layout constants; see the package documentation for the full map
const (
	magic = "fbt1"

	headerLen = 16
	entryLen  = 14

	offPixelSize  = 4
	offAscent     = 6
	offDescent    = 8
	offMaxAdvance = 10
	offNumEntries = 12
	offIndex      = headerLen

	offEntryCodepoint = 0
	offEntryBlob      = 4
	offEntryWidth     = 8
	offEntryHeight    = 9
	offEntryXOffset   = 10
	offEntryYOffset   = 11
	offEntryAdvance   = 12
)

var bo = binary.LittleEndian

// Encode serializes a glyph table. The output is deterministic: identical
// tables yield byte-identical encodings, which in turn makes the whole
// bake reproducible for identical inputs.
//
// Encode fails with code EENCODE whenever a table value does not fit its
// layout field; values are never silently wrapped or clamped.
func Encode(t *table.GlyphTable) ([]byte, error) {
	if err := checkMetrics(t.Metrics); err != nil {
		return nil, err
	}
	// blob layout: each distinct bitmap once, in glyph-index order
	offsets := make([]uint32, len(t.Bitmaps))
	var blob bytes.Buffer
	for i := range t.Bitmaps {
		b := &t.Bitmaps[i]
		if b.Width > math.MaxUint8 || b.Height > math.MaxUint8 {
			return nil, core.Error(core.EENCODE,
				"glyph bitmap of %dx%d pixels exceeds the 255-pixel field limit", b.Width, b.Height)
		}
		offsets[i] = uint32(blob.Len())
		blob.Write(b.Bits)
	}
	if int64(blob.Len()) > math.MaxUint32 {
		return nil, core.Error(core.EENCODE, "glyph-data blob exceeds 4GiB")
	}
	//
	out := make([]byte, headerLen+entryLen*len(t.Entries), headerLen+entryLen*len(t.Entries)+blob.Len())
	copy(out, magic)
	bo.PutUint16(out[offPixelSize:], uint16(t.Metrics.PixelSize))
	bo.PutUint16(out[offAscent:], uint16(int16(t.Metrics.Ascent)))
	bo.PutUint16(out[offDescent:], uint16(int16(t.Metrics.Descent)))
	bo.PutUint16(out[offMaxAdvance:], uint16(t.Metrics.MaxAdvance))
	bo.PutUint32(out[offNumEntries:], uint32(len(t.Entries)))
	for i, e := range t.Entries {
		if err := checkEntry(&e, t.BitmapFor(e)); err != nil {
			return nil, err
		}
		ent := out[offIndex+i*entryLen:]
		bo.PutUint32(ent[offEntryCodepoint:], uint32(e.Codepoint))
		bo.PutUint32(ent[offEntryBlob:], offsets[e.GlyphIndex])
		bm := t.BitmapFor(e)
		ent[offEntryWidth] = uint8(bm.Width)
		ent[offEntryHeight] = uint8(bm.Height)
		ent[offEntryXOffset] = uint8(int8(e.XOffset))
		ent[offEntryYOffset] = uint8(int8(e.YOffset))
		bo.PutUint16(ent[offEntryAdvance:], uint16(e.Advance))
	}
	out = append(out, blob.Bytes()...)
	tracer().Debugf("encoded font table: %d entries, %d blob bytes, %d bytes total",
		len(t.Entries), blob.Len(), len(out))
	return out, nil
}

func checkMetrics(m table.Metrics) error {
	if m.PixelSize < 0 || m.PixelSize > math.MaxUint16 {
		return core.Error(core.EENCODE, "pixel size %d does not fit layout field", m.PixelSize)
	}
	if m.Ascent > math.MaxInt16 || m.Ascent < math.MinInt16 ||
		m.Descent > math.MaxInt16 || m.Descent < math.MinInt16 {
		return core.Error(core.EENCODE, "font extents (%d, %d) do not fit layout fields",
			m.Ascent, m.Descent)
	}
	if m.MaxAdvance < 0 || m.MaxAdvance > math.MaxUint16 {
		return core.Error(core.EENCODE, "max advance %d does not fit layout field", m.MaxAdvance)
	}
	return nil
}

func checkEntry(e *table.Entry, bm *table.Bitmap) error {
	if e.Advance < 0 || e.Advance > math.MaxUint16 {
		return core.Error(core.EENCODE,
			"advance %d of %#U does not fit layout field", e.Advance, e.Codepoint)
	}
	if e.XOffset > math.MaxInt8 || e.XOffset < math.MinInt8 ||
		e.YOffset > math.MaxInt8 || e.YOffset < math.MinInt8 {
		return core.Error(core.EENCODE,
			"bbox offsets (%d, %d) of %#U do not fit layout fields",
			e.XOffset, e.YOffset, e.Codepoint)
	}
	if len(bm.Bits) != bm.Height*bm.Stride() {
		return core.Error(core.EINTERNAL,
			"bitmap of %#U has %d bytes, geometry requires %d",
			e.Codepoint, len(bm.Bits), bm.Height*bm.Stride())
	}
	return nil
}
