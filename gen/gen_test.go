package gen

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/pack"
	"github.com/npillmayer/fontbake/table"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func sampleEncoding(t *testing.T) []byte {
	t.Helper()
	tbl := &table.GlyphTable{
		Metrics: table.Metrics{PixelSize: 8, Ascent: 7, Descent: 1, MaxAdvance: 6},
		Bitmaps: []table.Bitmap{
			{Width: 4, Height: 2, Bits: []byte{0xf0, 0x90}},
		},
		Entries: []table.Entry{
			{Codepoint: '0', GlyphIndex: 0, Advance: 6, XOffset: 1, YOffset: 0},
		},
	}
	encoded, err := pack.Encode(tbl)
	require.NoError(t, err)
	return encoded
}

func TestSourceParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.gen")
	defer teardown()
	//
	src, err := Source(Options{Package: "assets", Name: "Digits8"}, sampleEncoding(t))
	require.NoError(t, err)
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "digits8.go", src, parser.ParseComments)
	require.NoError(t, err)
	require.Equal(t, "assets", file.Name.Name)
	text := string(src)
	require.Contains(t, text, "// Code generated by fontbake. DO NOT EDIT.")
	require.Contains(t, text, "var Digits8 = pack.MustFace(digits8Data)")
	require.Contains(t, text, "var digits8Data = []byte{")
}

func TestSourceEmbedsEncodingVerbatim(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.gen")
	defer teardown()
	//
	encoded := sampleEncoding(t)
	src, err := Source(Options{Package: "assets", Name: "Digits8"}, encoded)
	require.NoError(t, err)
	// every encoded byte appears in the literal, in order
	text := string(src)
	pos := strings.Index(text, "[]byte{")
	require.Greater(t, pos, 0)
	for _, b := range encoded {
		hex := byteLiteral(b)
		next := strings.Index(text[pos:], hex)
		require.Greater(t, next, 0, "missing byte %s after offset %d", hex, pos)
		pos += next + len(hex)
	}
}

func byteLiteral(b byte) string {
	const hexdigits = "0123456789abcdef"
	return "0x" + string(hexdigits[b>>4]) + string(hexdigits[b&0xf]) + ","
}

func TestSourceRejectsBadIdentifiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.gen")
	defer teardown()
	//
	encoded := sampleEncoding(t)
	cases := []Options{
		{Package: "assets", Name: "digits8"},  // not exported
		{Package: "assets", Name: "8Digits"},  // not an identifier
		{Package: "Assets", Name: "Digits8"},  // upper-case package
		{Package: "my-pkg", Name: "Digits8"},  // not an identifier
		{Package: "assets", Name: "func"},     // keyword
	}
	for _, opts := range cases {
		_, err := Source(opts, encoded)
		require.Error(t, err, "options %+v should be rejected", opts)
		require.Equal(t, core.EINVALID, core.Code(err))
	}
}
