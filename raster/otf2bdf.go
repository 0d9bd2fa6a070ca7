package raster

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/schuko"
)

// otf2bdf accepts point sizes in this range; requests outside of it fail
// before the process is spawned.
const (
	minPixelSize = 2
	maxPixelSize = 1024
)

// Otf2bdf rasterizes outline fonts by invoking the otf2bdf tool
// (https://github.com/jirutka/otf2bdf), which renders TrueType/OpenType
// outlines into BDF at a fixed size.
type Otf2bdf struct {
	binary string // absolute path of the tool
}

// NewOtf2bdf locates the otf2bdf binary. The configuration key "otf2bdf"
// may pin an explicit path; otherwise the host's search path is consulted.
// A missing binary is a hard failure with code ERASTER.
func NewOtf2bdf(conf schuko.Configuration) (*Otf2bdf, error) {
	binary := ""
	if conf != nil {
		binary = conf.GetString("otf2bdf")
	}
	if binary == "" {
		path, err := exec.LookPath("otf2bdf")
		if err != nil {
			return nil, core.WrapError(err, core.ERASTER,
				"rasterizer 'otf2bdf' not found on search path; install it or set config key 'otf2bdf'")
		}
		binary = path
	} else if fi, err := os.Stat(binary); err != nil || fi.Mode().Perm()&0100 == 0 {
		return nil, core.WrapError(err, core.ERASTER,
			"configured rasterizer is not an executable: %s", binary)
	}
	tracer().Debugf("using rasterizer %s", binary)
	return &Otf2bdf{binary: binary}, nil
}

// Rasterize runs the tool and returns its BDF output. The character set is
// passed as a subset filter so the tool emits glyphs only for the
// requested code-points, never the font's entire repertoire.
func (o *Otf2bdf) Rasterize(ctx context.Context, req Request) (string, error) {
	if req.PixelSize < minPixelSize || req.PixelSize > maxPixelSize {
		return "", core.Error(core.ERASTER,
			"pixel size %d outside of rasterizer-supported range %d-%d",
			req.PixelSize, minPixelSize, maxPixelSize)
	}
	if _, err := os.Stat(req.FontPath); err != nil {
		return "", core.WrapError(err, core.ERASTER, "font file not readable: %s", req.FontPath)
	}
	args := subsetArgs(req)
	tracer().Debugf("spawning %s %s", o.binary, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, o.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = "(no diagnostic output)"
		}
		return "", core.WrapError(err, core.ERASTER,
			"rasterizer failed on %s: %s", req.FontPath, diag)
	}
	if stderr.Len() > 0 {
		tracer().Infof("rasterizer diagnostics: %s", strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// subsetArgs builds the tool's argument list. Runs are emitted ascending,
// so identical character sets always produce identical invocations.
func subsetArgs(req Request) []string {
	var subset strings.Builder
	for i, run := range req.Charset.Runs() {
		if i > 0 {
			subset.WriteByte(' ')
		}
		if run.Lo == run.Hi {
			subset.WriteString(strconv.Itoa(int(run.Lo)))
		} else {
			subset.WriteString(strconv.Itoa(int(run.Lo)))
			subset.WriteByte('_')
			subset.WriteString(strconv.Itoa(int(run.Hi)))
		}
	}
	return []string{
		"-p", strconv.Itoa(req.PixelSize),
		"-l", subset.String(),
		req.FontPath,
	}
}
