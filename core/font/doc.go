/*
Package font handles outline fonts (TrueType/OpenType) on the build host.

Fonts enter the baking pipeline as outline fonts and leave it as compact
bitmap glyph tables. This package covers the entry side: loading a font
file, parsing its SFNT container, guessing style and weight from file
names, and querying which code-points the font actually covers. The
coverage query lets the pipeline report missing glyphs with precise
diagnostics before any rasterizer output is inspected.

# Status

Font collections (*.ttc) and variable fonts are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontbake.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.fonts")
}
