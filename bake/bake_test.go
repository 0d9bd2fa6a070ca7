package bake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/fontbake/charset"
	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/pack"
	"github.com/npillmayer/fontbake/raster"
	"github.com/npillmayer/fontbake/table"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

// fakeRasterizer substitutes for the external tool. It emits a synthetic
// font description for the requested character set.
type fakeRasterizer struct {
	err   error
	calls int
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, req raster.Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fakeDescription(req), nil
}

// fakeDescription renders a minimal description with one 4x5 glyph per
// requested code-point. The bitmap encodes the code-point's low byte, so
// most glyphs are distinct.
func fakeDescription(req raster.Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "STARTFONT 2.1\nFONT -fake-font\nSIZE %d 72 72\n", req.PixelSize)
	sb.WriteString("STARTPROPERTIES 2\nFONT_ASCENT 5\nFONT_DESCENT 0\nENDPROPERTIES\n")
	runes := req.Charset.Runes()
	fmt.Fprintf(&sb, "CHARS %d\n", len(runes))
	for _, r := range runes {
		fmt.Fprintf(&sb, "STARTCHAR uni%04X\nENCODING %d\nDWIDTH 5 0\nBBX 4 5 0 0\nBITMAP\n", r, r)
		for row := 0; row < 5; row++ {
			fmt.Fprintf(&sb, "%02X\n", byte(r)<<4&0xf0)
		}
		sb.WriteString("ENDCHAR\n")
	}
	sb.WriteString("ENDFONT\n")
	return sb.String()
}

func testFontPath(t *testing.T) string {
	t.Helper()
	fpath := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(fpath, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}
	return fpath
}

func TestBakeFontDigits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.bake")
	defer teardown()
	//
	fake := &fakeRasterizer{}
	b := &Baker{conf: testconfig.Conf{}, rast: fake}
	result, err := b.BakeFont(Request{
		Font:    testFontPath(t),
		Size:    30,
		Charset: charset.FromString("9081726354"),
		Name:    "Digits30",
	}).Result()
	require.NoError(t, err)
	require.Equal(t, 1, fake.calls)
	require.Len(t, result.Table.Entries, 10)
	for i, e := range result.Table.Entries {
		require.Equal(t, rune('0'+i), e.Codepoint, "entries must be sorted ascending")
	}
	require.Equal(t, 30, result.Table.Metrics.PixelSize)
	//
	face, err := pack.NewFace(result.Encoded)
	require.NoError(t, err)
	g, ok := face.Lookup('5')
	require.True(t, ok)
	require.Equal(t, 4, g.Width)
	require.Equal(t, 5, g.Height)
	require.Equal(t, 5, g.Advance)
	decoded, err := face.Decode()
	require.NoError(t, err)
	require.Equal(t, result.Table, decoded)
}

func TestBakeFontEmptyCharset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.bake")
	defer teardown()
	//
	fake := &fakeRasterizer{}
	b := &Baker{conf: testconfig.Conf{}, rast: fake}
	_, err := b.BakeFont(Request{Font: testFontPath(t), Size: 16}).Result()
	require.Error(t, err)
	require.Equal(t, core.EBUILD, core.Code(err))
	require.Zero(t, fake.calls, "rasterizer must not run for an empty character set")
}

func TestBakeFontUncoveredCodepoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.bake")
	defer teardown()
	//
	fake := &fakeRasterizer{}
	b := &Baker{conf: testconfig.Conf{}, rast: fake}
	_, err := b.BakeFont(Request{
		Font:    testFontPath(t),
		Size:    16,
		Charset: charset.FromString("0\ue777"),
	}).Result()
	require.Error(t, err)
	var missing *table.MissingGlyphsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []rune{'\ue777'}, missing.Codepoints)
	require.Zero(t, fake.calls, "rasterizer must not run when coverage is incomplete")
}

func TestBakeFontRasterizerFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.bake")
	defer teardown()
	//
	fake := &fakeRasterizer{err: core.Error(core.ERASTER, "simulated failure")}
	b := &Baker{conf: testconfig.Conf{}, rast: fake}
	_, err := b.BakeFont(Request{
		Font:    testFontPath(t),
		Size:    16,
		Charset: charset.FromString("01"),
	}).Result()
	require.Error(t, err)
	require.Equal(t, core.ERASTER, core.Code(err))
}

func TestBakeAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.bake")
	defer teardown()
	//
	fake := &fakeRasterizer{}
	b := &Baker{conf: testconfig.Conf{}, rast: fake}
	fpath := testFontPath(t)
	reqs := []Request{
		{Font: fpath, Size: 16, Charset: charset.FromString("01")},
		{Font: fpath, Size: 24, Charset: charset.FromString("AB")},
	}
	results, err := b.BakeAll(reqs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 16, results[0].Table.Metrics.PixelSize)
	require.Equal(t, 24, results[1].Table.Metrics.PixelSize)
}

func TestBakeAllPropagatesFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.bake")
	defer teardown()
	//
	fake := &fakeRasterizer{}
	b := &Baker{conf: testconfig.Conf{}, rast: fake}
	reqs := []Request{
		{Font: testFontPath(t), Size: 16, Charset: charset.FromString("01")},
		{Font: "/nonexistent/font.ttf", Size: 16, Charset: charset.FromString("01")},
	}
	_, err := b.BakeAll(reqs)
	require.Error(t, err)
	require.Equal(t, core.EMISSING, core.Code(err))
}
