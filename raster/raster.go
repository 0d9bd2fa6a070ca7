package raster

import (
	"context"

	"github.com/npillmayer/fontbake/charset"
)

// Request carries the conversion parameters a rasterizer needs: which font
// file, at which pixel size, for which characters. Requests are immutable
// and self-contained; independent requests may be rasterized concurrently.
type Request struct {
	FontPath  string
	PixelSize int
	Charset   charset.Set
}

// Rasterizer produces the intermediate bitmap font description for a
// request. Implementations must be deterministic: identical font bytes,
// size and character set yield identical output, which makes bakes
// reproducible.
//
// The production implementation (Otf2bdf) shells out to an external tool;
// tests substitute an in-process fake.
type Rasterizer interface {
	Rasterize(ctx context.Context, req Request) (string, error)
}
