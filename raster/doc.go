/*
Package raster adapts an external outline-to-bitmap rasterizer.

The baking pipeline never rasterizes outlines itself; it spawns a
rasterizer tool (otf2bdf) which renders the requested characters of an
outline font at a fixed pixel size and emits the intermediate bitmap font
description consumed by package bdf. The adapter is a typed wrapper over
that process invocation: it builds a deterministic argument list, filters
the character set so the tool emits only the requested code-points, and
surfaces the tool's diagnostic output on failure.

The rasterizer binary must be discoverable on the build host; its absence
fails the build, not the target.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontbake.raster'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.raster")
}
