package font

import (
	"golang.org/x/image/font/sfnt"
)

// --- Code-point coverage ----------------------------------------------------

// Covers returns true if the font maps code-point r to a real glyph.
//
// From the OpenType specification: character codes that do not correspond to
// any glyph in the font should be mapped to glyph index 0. The glyph at this
// location must be a special glyph representing a missing character,
// commonly known as '.notdef'.
func (sf *ScalableFont) Covers(r rune) bool {
	var buf sfnt.Buffer
	gid, err := sf.SFNT.GlyphIndex(&buf, r)
	if err != nil {
		tracer().Errorf("coverage lookup for %#U: %v", r, err)
		return false
	}
	return gid != 0
}

// MissingFrom checks a set of code-points against the font's character map
// and returns those the font has no glyph for. The result preserves the
// order of the input sequence.
func (sf *ScalableFont) MissingFrom(codepoints []rune) []rune {
	var buf sfnt.Buffer
	var missing []rune
	for _, r := range codepoints {
		gid, err := sf.SFNT.GlyphIndex(&buf, r)
		if err != nil || gid == 0 {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		tracer().Infof("font %q lacks %d of %d requested code-points",
			sf.Fontname, len(missing), len(codepoints))
	}
	return missing
}
