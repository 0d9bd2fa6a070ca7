package bdf

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/fontbake/core"
)

// Glyph is one glyph record of the intermediate font description.
// Rows hold the bit-packed pixels of the glyph's bounding box, one entry
// per scanline, each exactly ceil(Width/8) bytes, most-significant bit
// first.
type Glyph struct {
	Codepoint rune
	Name      string // STARTCHAR label, informational only
	Width     int    // bounding box width in pixels
	Height    int    // bounding box height in pixels
	XOffset   int    // horizontal bbox displacement from the origin
	YOffset   int    // vertical bbox displacement from the baseline (up = positive)
	Advance   int    // horizontal cursor displacement after drawing
	Rows      [][]byte
}

// Stride returns the number of bytes per bitmap row.
func (g *Glyph) Stride() int {
	return (g.Width + 7) / 8
}

// Font is the parsed intermediate description: font-wide fields plus the
// glyph records in file order. Instances are transient; they are consumed
// by the table builder and then discarded.
type Font struct {
	Name      string
	PixelSize int // point size field of the SIZE line
	Ascent    int // FONT_ASCENT property, 0 if absent
	Descent   int // FONT_DESCENT property, 0 if absent
	Glyphs    []Glyph
}

// ParseError describes a malformed construct in the intermediate font
// description, tagged with the line it occurred on.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bdf: line %d: %s", e.Line, e.Reason)
}

// ErrorCode implements core.AppError.
func (e *ParseError) ErrorCode() int {
	return core.EPARSE
}

// UserMessage implements core.AppError.
func (e *ParseError) UserMessage() string {
	return fmt.Sprintf("font description is malformed at line %d: %s", e.Line, e.Reason)
}

var _ core.AppError = &ParseError{}

// --- Parser ----------------------------------------------------------------

// parser is a line scanner over the glyph-block structure of BDF files.
// Methods panic with *ParseError on malformed input; Parse recovers and
// returns the error.
type parser struct {
	scanner *bufio.Scanner
	line    int
	tokens  []string
	font    *Font

	declared int // CHARS count, -1 if not seen yet
}

// Parse reads an intermediate font description. It is strict about
// everything the table builder depends on (bitmap geometry, advances,
// encodings) and lenient about fields it does not consume.
func Parse(r io.Reader) (f *Font, err error) {
	p := parser{
		scanner:  bufio.NewScanner(r),
		font:     &Font{},
		declared: -1,
	}
	defer func() {
		if rec := recover(); rec != nil {
			var ok bool
			if err, ok = rec.(*ParseError); !ok {
				panic(rec)
			}
		}
	}()
	p.parse()
	return p.font, nil
}

func (p *parser) fail(format string, v ...interface{}) {
	panic(&ParseError{Line: p.line, Reason: fmt.Sprintf(format, v...)})
}

// readLine reads the next non-empty line and splits it into fields.
// Returns false if the end of input has been reached normally.
func (p *parser) readLine() bool {
	for p.scanner.Scan() {
		p.line++
		p.tokens = strings.Fields(p.scanner.Text())
		if len(p.tokens) > 0 {
			return true
		}
	}
	if err := p.scanner.Err(); err != nil {
		p.fail("reading input: %v", err)
	}
	return false
}

func (p *parser) intArg(n int) int {
	if len(p.tokens) <= n {
		p.fail("%s: insufficient arguments", p.tokens[0])
	}
	i, err := strconv.Atoi(p.tokens[n])
	if err != nil {
		p.fail("%s: argument %q is not a number", p.tokens[0], p.tokens[n])
	}
	return i
}

func (p *parser) parse() {
	if !p.readLine() || len(p.tokens) != 2 || p.tokens[0] != "STARTFONT" {
		p.fail("missing STARTFONT header")
	}
	if v := p.tokens[1]; v != "2.1" && v != "2.2" {
		p.fail("unsupported BDF version %s", v)
	}
	for p.readLine() && p.tokens[0] != "ENDFONT" {
		switch p.tokens[0] {
		case "FONT":
			if len(p.tokens) < 2 {
				p.fail("FONT: insufficient arguments")
			}
			p.font.Name = p.tokens[1]
		case "SIZE":
			p.font.PixelSize = p.intArg(1)
		case "CHARS":
			p.declared = p.intArg(1)
		case "METRICSSET":
			if p.intArg(1) == 1 {
				p.fail("purely vertical fonts are unsupported")
			}
		case "STARTPROPERTIES":
			p.parseProperties()
		case "STARTCHAR":
			p.parseChar()
		}
	}
	if p.declared >= 0 && p.declared != len(p.font.Glyphs) {
		// otf2bdf has been seen to announce more glyphs than it emits
		tracer().Infof("font declares %d glyphs, contains %d", p.declared, len(p.font.Glyphs))
	}
	tracer().Debugf("parsed %d glyphs of font %q", len(p.font.Glyphs), p.font.Name)
}

// The wording in the BDF specification suggests that the argument with the
// number of properties to follow isn't reliable, so we scan until
// ENDPROPERTIES.
func (p *parser) parseProperties() {
	for p.readLine() && p.tokens[0] != "ENDPROPERTIES" {
		switch p.tokens[0] {
		case "FONT_ASCENT":
			p.font.Ascent = p.intArg(1)
		case "FONT_DESCENT":
			p.font.Descent = p.intArg(1)
		}
	}
}

func (p *parser) parseChar() {
	g := Glyph{Codepoint: -1}
	if len(p.tokens) > 1 {
		g.Name = p.tokens[1]
	}
	seenBBX, inBitmap := false, false
	for p.readLine() && p.tokens[0] != "ENDCHAR" {
		if inBitmap {
			if len(p.tokens) != 1 {
				p.fail("glyph %s: bitmap row holds more than one value", g.Name)
			}
			row, err := hex.DecodeString(p.tokens[0])
			if err != nil {
				p.fail("glyph %s: bitmap row is not hex-encoded", g.Name)
			}
			if len(row) != g.Stride() {
				p.fail("glyph %s: bitmap row has %d bytes, declared width %d requires %d",
					g.Name, len(row), g.Width, g.Stride())
			}
			g.Rows = append(g.Rows, row)
			continue
		}
		switch p.tokens[0] {
		case "ENCODING":
			g.Codepoint = rune(p.intArg(1))
		case "DWIDTH":
			g.Advance = p.intArg(1)
		case "BBX":
			g.Width = p.intArg(1)
			g.Height = p.intArg(2)
			g.XOffset = p.intArg(3)
			g.YOffset = p.intArg(4)
			if g.Width < 0 || g.Height < 0 {
				p.fail("glyph %s: bounding box may not have negative dimensions", g.Name)
			}
			seenBBX = true
		case "BITMAP":
			if !seenBBX {
				p.fail("glyph %s: BITMAP before BBX", g.Name)
			}
			inBitmap = true
		}
	}
	if !inBitmap {
		p.fail("glyph %s: block without BITMAP section", g.Name)
	}
	if len(g.Rows) != g.Height {
		p.fail("glyph %s: bitmap has %d rows, bounding box declares %d",
			g.Name, len(g.Rows), g.Height)
	}
	// Some fonts use -1 for glyphs outside the encoding; those cannot be
	// addressed by code-point and are dropped.
	if g.Codepoint < 0 {
		tracer().Debugf("dropping unencoded glyph %q", g.Name)
		return
	}
	p.font.Glyphs = append(p.font.Glyphs, g)
}
