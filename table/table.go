package table

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/fontbake/bdf"
	"github.com/npillmayer/fontbake/charset"
	"github.com/npillmayer/fontbake/core"
)

// Bitmap is one deduplicated glyph bitmap. Bits holds Height rows of
// Stride() bytes each, most-significant bit first, as delivered by the
// intermediate font description.
type Bitmap struct {
	Width  int
	Height int
	Bits   []byte
}

// Stride returns the number of bytes per bitmap row.
func (b *Bitmap) Stride() int {
	return (b.Width + 7) / 8
}

// Pixel reports whether the pixel at (x, y) is set, with (0, 0) being the
// top-left corner of the bounding box.
func (b *Bitmap) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Bits[y*b.Stride()+x/8]&(1<<uint(7-x%8)) != 0
}

// Entry associates a code-point with its deduplicated bitmap and its
// per-glyph placement metrics. Entries of a table are sorted ascending by
// code-point.
type Entry struct {
	Codepoint  rune
	GlyphIndex int // index into GlyphTable.Bitmaps
	Advance    int
	XOffset    int // bbox displacement from the origin
	YOffset    int // bbox displacement from the baseline, up = positive
}

// Metrics holds the font-wide metrics of a baked font. They feed
// line-height and cursor-advance decisions at render time and are derived
// exactly from the glyph extents, in the rasterizer's integer pixel units.
type Metrics struct {
	Ascent     int // maximum extent above the baseline
	Descent    int // maximum extent below the baseline, positive down
	MaxAdvance int
	PixelSize  int
}

// GlyphTable is the final artifact of the build stage: lookup entries,
// deduplicated bitmaps and font metrics. A table is constructed once and
// never mutated afterwards.
type GlyphTable struct {
	Entries []Entry
	Bitmaps []Bitmap
	Metrics Metrics
}

// Lookup finds the entry for a code-point by binary search.
func (t *GlyphTable) Lookup(r rune) (Entry, bool) {
	i := sort.Search(len(t.Entries), func(i int) bool {
		return t.Entries[i].Codepoint >= r
	})
	if i < len(t.Entries) && t.Entries[i].Codepoint == r {
		return t.Entries[i], true
	}
	return Entry{}, false
}

// BitmapFor returns the deduplicated bitmap an entry points to.
func (t *GlyphTable) BitmapFor(e Entry) *Bitmap {
	return &t.Bitmaps[e.GlyphIndex]
}

// --- Missing glyphs ---------------------------------------------------------

// MissingGlyphsError reports requested code-points the rasterizer produced
// no glyph for, typically because the font does not contain them. Callers
// decide at the boundary whether this is fatal; the builder never silently
// omits requested code-points from the table.
type MissingGlyphsError struct {
	Codepoints []rune // ascending
}

func (e *MissingGlyphsError) Error() string {
	return fmt.Sprintf("font lacks glyphs for %d requested code-points: %s",
		len(e.Codepoints), formatCodepoints(e.Codepoints))
}

// ErrorCode implements core.AppError.
func (e *MissingGlyphsError) ErrorCode() int {
	return core.EMISSING
}

// UserMessage implements core.AppError.
func (e *MissingGlyphsError) UserMessage() string {
	return e.Error()
}

var _ core.AppError = &MissingGlyphsError{}

func formatCodepoints(rs []rune) string {
	var sb strings.Builder
	for i, r := range rs {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i == 8 && len(rs) > 9 {
			fmt.Fprintf(&sb, "… (%d more)", len(rs)-i)
			break
		}
		fmt.Fprintf(&sb, "%#U", r)
	}
	return sb.String()
}

// --- Builder ----------------------------------------------------------------

// Build produces the glyph table for a requested character set from the
// parsed intermediate description. Exactly one entry per requested
// code-point ends up in the table; glyph bitmaps with identical dimensions
// and pixel content share a single glyph index.
//
// Build fails with code EBUILD for an empty character set or when the
// description contains no usable glyphs, with EINTERNAL when the parser
// delivered duplicate code-points, and with a MissingGlyphsError when the
// description lacks glyphs for some requested code-points.
func Build(f *bdf.Font, req charset.Set) (*GlyphTable, error) {
	if req.IsEmpty() {
		return nil, core.Error(core.EBUILD, "character set for font %q is empty", f.Name)
	}
	requested := treemap.NewWith(utils.RuneComparator)
	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		if !req.Contains(g.Codepoint) {
			tracer().Debugf("rasterizer emitted unrequested glyph %#U, ignored", g.Codepoint)
			continue
		}
		if _, found := requested.Get(g.Codepoint); found {
			return nil, core.Error(core.EINTERNAL,
				"duplicate glyph for %#U in font description; this is a parser bug", g.Codepoint)
		}
		requested.Put(g.Codepoint, g)
	}
	if requested.Empty() {
		return nil, core.Error(core.EBUILD,
			"font description for %q contains no glyph of the requested set", f.Name)
	}
	var missing []rune
	for _, r := range req.Runes() {
		if _, found := requested.Get(r); !found {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingGlyphsError{Codepoints: missing}
	}
	//
	t := &GlyphTable{Metrics: Metrics{PixelSize: f.PixelSize}}
	dedup := make(map[string]int) // bitmap content → glyph index
	it := requested.Iterator()
	for it.Next() {
		g := it.Value().(*bdf.Glyph)
		bits := flatten(g)
		key := dedupKey(g.Width, g.Height, bits)
		index, ok := dedup[key]
		if !ok {
			index = len(t.Bitmaps)
			dedup[key] = index
			t.Bitmaps = append(t.Bitmaps, Bitmap{Width: g.Width, Height: g.Height, Bits: bits})
		}
		t.Entries = append(t.Entries, Entry{
			Codepoint:  g.Codepoint,
			GlyphIndex: index,
			Advance:    g.Advance,
			XOffset:    g.XOffset,
			YOffset:    g.YOffset,
		})
		if asc := g.YOffset + g.Height; asc > t.Metrics.Ascent {
			t.Metrics.Ascent = asc
		}
		if desc := -g.YOffset; desc > t.Metrics.Descent {
			t.Metrics.Descent = desc
		}
		if g.Advance > t.Metrics.MaxAdvance {
			t.Metrics.MaxAdvance = g.Advance
		}
	}
	if f.Ascent != 0 && f.Ascent < t.Metrics.Ascent {
		tracer().Infof("glyph extents exceed declared FONT_ASCENT: %d > %d",
			t.Metrics.Ascent, f.Ascent)
	}
	tracer().Debugf("built table: %d entries, %d distinct bitmaps",
		len(t.Entries), len(t.Bitmaps))
	return t, nil
}

func flatten(g *bdf.Glyph) []byte {
	return bytes.Join(g.Rows, nil)
}

func dedupKey(w, h int, bits []byte) string {
	return fmt.Sprintf("%d:%d:%s", w, h, bits)
}
