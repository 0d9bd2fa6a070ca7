/*
Package bdf parses the intermediate bitmap font description produced by the
external rasterizer.

The description follows the Glyph Bitmap Distribution Format (BDF): a
line-oriented plain text format with labeled fields and one block per
glyph. The grammar is an external, weakly-versioned contract owned by the
rasterizer, which makes this parser the most failure-prone boundary of the
baking pipeline. Error paths are therefore exhaustive: every malformed
construct fails with a ParseError carrying the offending line number, and
bitmap rows are never silently padded or truncated.

References:

▪︎ https://en.wikipedia.org/wiki/Glyph_Bitmap_Distribution_Format

▪︎ https://www.adobe.com/content/dam/acom/en/devnet/font/pdfs/5005.BDF_Spec.pdf

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bdf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontbake.bdf'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.bdf")
}
