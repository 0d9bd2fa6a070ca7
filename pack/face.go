package pack

import (
	"sort"

	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/table"
)

// Face is the reference decoder for the compact layout. At render time it
// serves glyph lookups by binary search directly on the encoded bytes,
// without unpacking the table; in tests it pairs with Encode for bit-exact
// round trips.
type Face struct {
	data       []byte
	numEntries int
}

// Glyph is one decoded glyph: placement metrics plus a view into the
// bit-packed bitmap rows. Bits aliases the face's underlying data and must
// not be modified.
type Glyph struct {
	Codepoint rune
	Width     int
	Height    int
	XOffset   int
	YOffset   int
	Advance   int
	Bits      []byte
}

// Stride returns the number of bytes per bitmap row.
func (g *Glyph) Stride() int {
	return (g.Width + 7) / 8
}

// Pixel reports whether the pixel at (x, y) is set, with (0, 0) being the
// top-left corner of the glyph's bounding box.
func (g *Glyph) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.Bits[y*g.Stride()+x/8]&(1<<uint(7-x%8)) != 0
}

// NewFace interprets data as an encoded font table. It validates the
// header and all blob references up front, so that render-time accessors
// cannot run out of bounds.
func NewFace(data []byte) (*Face, error) {
	if len(data) < headerLen || string(data[:4]) != magic {
		return nil, core.Error(core.EINVALID, "not an encoded font table")
	}
	n := int(bo.Uint32(data[offNumEntries:]))
	if len(data) < headerLen+n*entryLen {
		return nil, core.Error(core.EINVALID,
			"font table truncated: %d entries do not fit %d bytes", n, len(data))
	}
	f := &Face{data: data, numEntries: n}
	blobLen := len(data) - headerLen - n*entryLen
	prev := rune(-1)
	for i := 0; i < n; i++ {
		g := f.glyphAt(i)
		if g.Codepoint <= prev {
			return nil, core.Error(core.EINVALID,
				"font table index not sorted ascending at %#U", g.Codepoint)
		}
		prev = g.Codepoint
		end := int(bo.Uint32(f.entry(i)[offEntryBlob:])) + g.Height*g.Stride()
		if end > blobLen {
			return nil, core.Error(core.EINVALID,
				"bitmap of %#U exceeds glyph-data blob", g.Codepoint)
		}
	}
	return f, nil
}

// MustFace is like NewFace but panics on malformed data. Intended for
// package-level variables in generated source files, where the data is a
// build artifact.
func MustFace(data []byte) *Face {
	f, err := NewFace(data)
	if err != nil {
		panic(err)
	}
	return f
}

// Metrics returns the font-wide metrics stored in the header.
func (f *Face) Metrics() table.Metrics {
	return table.Metrics{
		PixelSize:  int(bo.Uint16(f.data[offPixelSize:])),
		Ascent:     int(int16(bo.Uint16(f.data[offAscent:]))),
		Descent:    int(int16(bo.Uint16(f.data[offDescent:]))),
		MaxAdvance: int(bo.Uint16(f.data[offMaxAdvance:])),
	}
}

// GlyphCount returns the number of index entries.
func (f *Face) GlyphCount() int {
	return f.numEntries
}

func (f *Face) entry(i int) []byte {
	return f.data[offIndex+i*entryLen : offIndex+(i+1)*entryLen]
}

func (f *Face) glyphAt(i int) Glyph {
	ent := f.entry(i)
	g := Glyph{
		Codepoint: rune(bo.Uint32(ent[offEntryCodepoint:])),
		Width:     int(ent[offEntryWidth]),
		Height:    int(ent[offEntryHeight]),
		XOffset:   int(int8(ent[offEntryXOffset])),
		YOffset:   int(int8(ent[offEntryYOffset])),
		Advance:   int(bo.Uint16(ent[offEntryAdvance:])),
	}
	blob := f.data[offIndex+f.numEntries*entryLen:]
	start := int(bo.Uint32(ent[offEntryBlob:]))
	g.Bits = blob[start : start+g.Height*g.Stride()]
	return g
}

// Lookup finds the glyph for a code-point by binary search over the sorted
// index.
func (f *Face) Lookup(r rune) (Glyph, bool) {
	i := sort.Search(f.numEntries, func(i int) bool {
		return rune(bo.Uint32(f.entry(i)[offEntryCodepoint:])) >= r
	})
	if i == f.numEntries {
		return Glyph{}, false
	}
	g := f.glyphAt(i)
	if g.Codepoint != r {
		return Glyph{}, false
	}
	return g, true
}

// Decode reconstructs the full glyph table from its encoding. Decoding the
// output of Encode reproduces the original table exactly, including the
// sharing of deduplicated bitmaps; this is the property the round-trip
// tests pin down.
func (f *Face) Decode() (*table.GlyphTable, error) {
	t := &table.GlyphTable{Metrics: f.Metrics()}
	// zero-area bitmaps occupy no blob bytes and share their offset with
	// the following bitmap, so the offset alone does not identify one
	type blobRef struct {
		off  uint32
		w, h int
	}
	indexForRef := make(map[blobRef]int)
	for i := 0; i < f.numEntries; i++ {
		g := f.glyphAt(i)
		ref := blobRef{off: bo.Uint32(f.entry(i)[offEntryBlob:]), w: g.Width, h: g.Height}
		index, ok := indexForRef[ref]
		if !ok {
			index = len(t.Bitmaps)
			indexForRef[ref] = index
			bits := make([]byte, len(g.Bits))
			copy(bits, g.Bits)
			t.Bitmaps = append(t.Bitmaps, table.Bitmap{Width: g.Width, Height: g.Height, Bits: bits})
		}
		t.Entries = append(t.Entries, table.Entry{
			Codepoint:  g.Codepoint,
			GlyphIndex: index,
			Advance:    g.Advance,
			XOffset:    g.XOffset,
			YOffset:    g.YOffset,
		})
	}
	return t, nil
}
