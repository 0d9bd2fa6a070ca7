package bake

import (
	"context"
	"strings"

	"github.com/npillmayer/fontbake/bdf"
	"github.com/npillmayer/fontbake/charset"
	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/core/font"
	"github.com/npillmayer/fontbake/core/locate/resources"
	"github.com/npillmayer/fontbake/pack"
	"github.com/npillmayer/fontbake/raster"
	"github.com/npillmayer/fontbake/table"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// Request describes one font to bake: which font, at which pixel size,
// for which characters. Name is a client-chosen identifier for the baked
// artifact, e.g. the variable name of a generated source file.
type Request struct {
	Font    string // font file path or installed font name
	Style   xfont.Style
	Weight  xfont.Weight
	Size    int // pixel size
	Charset charset.Set
	Name    string
}

// Result is the outcome of a successful bake.
type Result struct {
	Request Request
	Font    *font.ScalableFont
	Table   *table.GlyphTable
	Encoded []byte
}

type resultPlusErr struct {
	result *Result
	err    error
}

// Promise is the await-side of an async bake.
type Promise interface {
	Result() (*Result, error)
}

type bakePromise struct {
	await func(ctx context.Context) (*Result, error)
}

func (p bakePromise) Result() (*Result, error) {
	return p.await(context.Background())
}

// Baker runs bake requests through the pipeline. A Baker is safe for
// concurrent use.
type Baker struct {
	conf schuko.Configuration
	rast raster.Rasterizer
}

// NewBaker creates a Baker using the otf2bdf rasterizer. A missing
// rasterizer binary is a hard failure; nothing in the pipeline can
// substitute for it.
func NewBaker(conf schuko.Configuration) (*Baker, error) {
	rast, err := raster.NewOtf2bdf(conf)
	if err != nil {
		return nil, err
	}
	return &Baker{conf: conf, rast: rast}, nil
}

// BakeFont starts baking a font asynchronously and returns a promise for
// the result.
func (b *Baker) BakeFont(req Request) Promise {
	ch := make(chan resultPlusErr)
	go func(ch chan<- resultPlusErr) {
		result, err := b.bake(context.Background(), req)
		ch <- resultPlusErr{result: result, err: err}
		close(ch)
	}(ch)
	return bakePromise{
		await: func(ctx context.Context) (*Result, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.result, r.err
			}
		},
	}
}

// BakeAll bakes several fonts in parallel. Results are returned in
// request order. If any bake fails, BakeAll returns the error of the
// first failing request and no results.
func (b *Baker) BakeAll(reqs []Request) ([]*Result, error) {
	promises := make([]Promise, len(reqs))
	for i, req := range reqs {
		promises[i] = b.BakeFont(req)
	}
	results := make([]*Result, len(reqs))
	for i, p := range promises {
		result, err := p.Result()
		if err != nil {
			return nil, core.WrapError(err, core.Code(err),
				"baking %q failed: %s", reqs[i].Font, core.UserMessage(err))
		}
		results[i] = result
	}
	return results, nil
}

// bake is the single forward pass through the pipeline stages.
func (b *Baker) bake(ctx context.Context, req Request) (*Result, error) {
	if req.Charset.IsEmpty() {
		return nil, core.Error(core.EBUILD, "character set for font %q is empty", req.Font)
	}
	f, err := resources.ResolveFont(b.conf, req.Font, req.Style, req.Weight).Font()
	if err != nil {
		return nil, err
	}
	tracer().Infof("baking %q at %dpx, %d code-points", f.Fontname, req.Size, req.Charset.Len())
	// check coverage against the outline font's character map before
	// spawning the rasterizer
	if missing := f.MissingFrom(req.Charset.Runes()); len(missing) > 0 {
		return nil, &table.MissingGlyphsError{Codepoints: missing}
	}
	description, err := b.rast.Rasterize(ctx, raster.Request{
		FontPath:  f.Filepath,
		PixelSize: req.Size,
		Charset:   req.Charset,
	})
	if err != nil {
		return nil, err
	}
	parsed, err := bdf.Parse(strings.NewReader(description))
	if err != nil {
		return nil, err
	}
	t, err := table.Build(parsed, req.Charset)
	if err != nil {
		return nil, err
	}
	encoded, err := pack.Encode(t)
	if err != nil {
		return nil, err
	}
	tracer().Infof("baked %q: %d glyphs, %d bytes", f.Fontname, len(t.Entries), len(encoded))
	return &Result{Request: req, Font: f, Table: t, Encoded: encoded}, nil
}
