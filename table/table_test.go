package table

import (
	"testing"

	"github.com/npillmayer/fontbake/bdf"
	"github.com/npillmayer/fontbake/charset"
	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func glyph(cp rune, w, h, xoff, yoff, adv int, rows ...[]byte) bdf.Glyph {
	return bdf.Glyph{
		Codepoint: cp, Width: w, Height: h,
		XOffset: xoff, YOffset: yoff, Advance: adv,
		Rows: rows,
	}
}

func digitFont() *bdf.Font {
	f := &bdf.Font{Name: "testfont", PixelSize: 8}
	for _, cp := range "0123456789" {
		f.Glyphs = append(f.Glyphs, glyph(cp, 6, 2, 1, 0, 7,
			[]byte{0x78}, []byte{0xcc}))
	}
	return f
}

func TestBuildDigits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	tbl, err := Build(digitFont(), charset.FromString("0123456789"))
	require.NoError(t, err)
	require.Len(t, tbl.Entries, 10, "expected exactly one entry per requested code-point")
	for i, e := range tbl.Entries {
		require.Equal(t, rune('0'+i), e.Codepoint, "entries must be sorted ascending")
	}
	require.Equal(t, 7, tbl.Metrics.MaxAdvance)
	require.Equal(t, 8, tbl.Metrics.PixelSize)
}

func TestBuildDeduplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	// all ten digits share one bitmap in digitFont
	tbl, err := Build(digitFont(), charset.FromString("0123456789"))
	require.NoError(t, err)
	require.Len(t, tbl.Bitmaps, 1, "identical bitmaps must share a glyph index")
	for _, e := range tbl.Entries {
		require.Equal(t, 0, e.GlyphIndex)
	}
	//
	// distinct content must not be conflated
	f := digitFont()
	f.Glyphs[3].Rows = [][]byte{{0xff}, {0xff}}
	tbl, err = Build(f, charset.FromString("0123456789"))
	require.NoError(t, err)
	require.Len(t, tbl.Bitmaps, 2)
	e, ok := tbl.Lookup('3')
	require.True(t, ok)
	require.Equal(t, 1, e.GlyphIndex)
	require.True(t, tbl.BitmapFor(e).Pixel(0, 0))
}

func TestBuildSameBytesDifferentGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	f := &bdf.Font{Name: "geom", PixelSize: 8}
	f.Glyphs = append(f.Glyphs,
		glyph('a', 8, 2, 0, 0, 8, []byte{0xf0}, []byte{0x0f}),
		glyph('b', 16, 1, 0, 0, 16, []byte{0xf0, 0x0f}))
	tbl, err := Build(f, charset.FromString("ab"))
	require.NoError(t, err)
	require.Len(t, tbl.Bitmaps, 2, "equal bytes with different dimensions are distinct bitmaps")
}

func TestBuildMetricsExtents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	f := &bdf.Font{Name: "extents", PixelSize: 30}
	f.Glyphs = append(f.Glyphs,
		glyph('A', 8, 10, 0, 0, 9, rows(10, 1)...),   // 10 above baseline
		glyph('g', 8, 10, 0, -3, 10, rows(10, 1)...)) // 7 above, 3 below
	tbl, err := Build(f, charset.FromString("Ag"))
	require.NoError(t, err)
	require.Equal(t, 10, tbl.Metrics.Ascent)
	require.Equal(t, 3, tbl.Metrics.Descent)
	require.Equal(t, 10, tbl.Metrics.MaxAdvance)
}

func rows(n, stride int) [][]byte {
	rs := make([][]byte, n)
	for i := range rs {
		rs[i] = make([]byte, stride)
	}
	return rs
}

func TestBuildMissingGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	_, err := Build(digitFont(), charset.FromString("01A"))
	require.Error(t, err)
	var missing *MissingGlyphsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []rune{'A'}, missing.Codepoints,
		"missing glyphs must be named exactly")
	require.Equal(t, core.EMISSING, core.Code(err))
}

func TestBuildEmptyCharset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	_, err := Build(digitFont(), charset.Set{})
	require.Error(t, err)
	require.Equal(t, core.EBUILD, core.Code(err))
}

func TestBuildNoUsableGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	_, err := Build(&bdf.Font{Name: "empty"}, charset.FromString("0"))
	require.Error(t, err)
	require.Equal(t, core.EBUILD, core.Code(err))
}

func TestBuildDuplicateCodepointIsInternal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	f := digitFont()
	f.Glyphs = append(f.Glyphs, f.Glyphs[0])
	_, err := Build(f, charset.FromString("0123456789"))
	require.Error(t, err)
	require.Equal(t, core.EINTERNAL, core.Code(err),
		"duplicate code-points are a parser bug, not user error")
}

func TestLookupBinarySearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	tbl, err := Build(digitFont(), charset.FromString("0123456789"))
	require.NoError(t, err)
	for _, cp := range "0123456789" {
		e, ok := tbl.Lookup(cp)
		require.True(t, ok)
		require.Equal(t, cp, e.Codepoint)
	}
	if _, ok := tbl.Lookup('A'); ok {
		t.Errorf("did not expect a hit for 'A'")
	}
}
