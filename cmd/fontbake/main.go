/*
fontbake converts an outline font (TTF/OTF) into a compact bitmap glyph
table for embedded renderers.

	fontbake -font DejaVuSans.ttf -size 30 -chars 0123456789 -o digits.fbt
	fontbake -font Inconsolata -size 16 -ranges 32-126 -pkg assets -name Mono16 -o mono16.go

With -pkg, the output is a generated Go source file embedding the table;
without it, the raw encoded table is written.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/fontbake/bake"
	"github.com/npillmayer/fontbake/charset"
	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/gen"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	xfont "golang.org/x/image/font"
)

// tracer traces with key 'fontbake.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.cli")
}

func main() {
	initDisplay()

	// command line flags
	fontname := flag.String("font", "", "font file or installed font name (required)")
	size := flag.Int("size", 16, "pixel size to rasterize at")
	chars := flag.String("chars", "", "characters to include, as a literal string")
	ranges := flag.String("ranges", "", "code-point ranges to include, e.g. '32-126,0x20AC'")
	italic := flag.Bool("italic", false, "prefer an italic variant")
	bold := flag.Bool("bold", false, "prefer a bold variant")
	output := flag.String("o", "", "output file (required)")
	pkgname := flag.String("pkg", "", "emit a Go source file for this package instead of a raw table")
	varname := flag.String("name", "Font", "exported variable name in the generated source")
	otf2bdf := flag.String("otf2bdf", "", "path of the otf2bdf binary, if not on the search path")
	tlevel := flag.String("trace", "Info", "trace level [Debug|Info|Error]")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"app-key":                  "fontbake",
		"tracing.adapter":          "go",
		"trace.fontbake.cli":       *tlevel,
		"trace.fontbake.fonts":     *tlevel,
		"trace.fontbake.resources": *tlevel,
		"trace.fontbake.raster":    *tlevel,
		"trace.fontbake.bdf":       *tlevel,
		"trace.fontbake.table":     *tlevel,
		"trace.fontbake.pack":      *tlevel,
		"trace.fontbake.gen":       *tlevel,
		"trace.fontbake.bake":      *tlevel,
	}
	if *otf2bdf != "" {
		conf["otf2bdf"] = *otf2bdf
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	if *fontname == "" || *output == "" {
		pterm.Error.Println("flags -font and -o are required")
		flag.Usage()
		os.Exit(2)
	}
	set, err := requestedCharset(*chars, *ranges)
	if err != nil {
		fail(err)
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if *italic {
		style = xfont.StyleItalic
	}
	if *bold {
		weight = xfont.WeightBold
	}

	baker, err := bake.NewBaker(conf)
	if err != nil {
		fail(err)
	}
	pterm.Info.Printfln("baking %s at %dpx, %d code-points", *fontname, *size, set.Len())
	result, err := baker.BakeFont(bake.Request{
		Font:    *fontname,
		Style:   style,
		Weight:  weight,
		Size:    *size,
		Charset: set,
		Name:    *varname,
	}).Result()
	if err != nil {
		fail(err)
	}

	out := result.Encoded
	if *pkgname != "" {
		out, err = gen.Source(gen.Options{Package: *pkgname, Name: *varname}, result.Encoded)
		if err != nil {
			fail(err)
		}
	}
	if err := os.WriteFile(*output, out, 0644); err != nil {
		fail(core.WrapError(err, core.EINVALID, "cannot write output file %s", *output))
	}
	pterm.Info.Printfln("%s: %d glyphs, %d distinct bitmaps, %d bytes",
		*output, len(result.Table.Entries), len(result.Table.Bitmaps), len(out))
}

// requestedCharset merges the -chars and -ranges flags into one set.
func requestedCharset(chars, ranges string) (charset.Set, error) {
	set := charset.FromString(chars)
	if ranges != "" {
		rset, err := charset.FromRanges(ranges)
		if err != nil {
			return charset.Set{}, err
		}
		set = charset.Union(set, rset)
	}
	if set.IsEmpty() {
		return charset.Set{}, core.Error(core.EBUILD,
			"no characters requested; use -chars and/or -ranges")
	}
	return set, nil
}

func fail(err error) {
	tracer().Errorf(err.Error())
	core.UserError(err)
	os.Exit(1)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
