/*
Package table builds position-indexed glyph tables from parsed glyph
records.

This is the algorithmic core of the baking pipeline. The builder
deduplicates identical glyph bitmaps across code-points, assigns stable
glyph indices, derives the font-wide metrics, and orders the lookup
entries ascending by code-point. That ordering is load-bearing: lookup at
render time is defined as binary search over it, so the sort is a hard
invariant of the table, not a presentation choice.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package table

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontbake.table'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.table")
}
