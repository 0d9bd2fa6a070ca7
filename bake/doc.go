/*
Package bake orchestrates the conversion of an outline font into a baked
bitmap glyph table.

A bake is a single forward pass through the pipeline stages

	locate → rasterize → parse → build → encode

with no retries and no partial output: every stage either succeeds or
fails the bake with an error tagged by the stage's error code. Requests
are self-contained, so several fonts may be baked in parallel.

Baking can take a while (font resolution may hit the network, the
rasterizer is an external process), so BakeFont works in an async/await
fashion and returns a promise. The call to the promise-function will
block until the bake has completed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bake

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontbake.bake'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.bake")
}
