/*
Package resources locates the outline fonts a bake request names.

A request may name a font file directly (absolute or relative to the
project root), a font installed on the build host, or a font available
from a remote directory such as the Google webfont service. Resolving may
be a time-consuming task, so some functions in this package work in an
async/await fashion by returning a promise. Functions named

	Resolve…(…)

will return a resource-specific promise type, which the client will call
later to receive the loaded resource. The call to the promise-function
will then block until loading has completed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontbake.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.resources")
}
