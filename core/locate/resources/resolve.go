package resources

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/core/font"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// NotFound returns an application error for a missing font resource.
func NotFound(name string) error {
	return core.Error(core.EMISSING, "font not found: %s", name)
}

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// FontPromise is the await-side of an async font resolution.
type FontPromise interface {
	Font() (*font.ScalableFont, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ScalableFont, error)
}

func (loader fontLoader) Font() (*font.ScalableFont, error) {
	return loader.await(context.Background())
}

// ResolveFont resolves a font specification to a loaded outline font.
// The specification is tried in this order:
//
//  1. a font file path, absolute or relative to the configured
//     "project-root" (falling back to the working directory),
//  2. a font installed on the build host, located via the font search
//     path or, if configured, via fontconfig's fc-list,
//  3. a font of the Google webfont service, downloaded into the user's
//     cache directory (requires config key "google-api-key").
//
// Style and weight take part in matching for steps 2 and 3; a direct file
// path is authoritative as given.
func ResolveFont(conf schuko.Configuration, name string, style xfont.Style,
	weight xfont.Weight) FontPromise {
	//
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		if fpath, ok := fontFilePath(conf, name); ok {
			tracer().Debugf("%s is a font file", name)
			result.font, result.err = font.LoadOpenTypeFont(fpath)
		}
		if result.font == nil && result.err == nil {
			if fpath, err := findfont.Find(name); err == nil && fpath != "" {
				tracer().Debugf("%s is a system font", name)
				result.font, result.err = font.LoadOpenTypeFont(fpath)
			}
		}
		if result.font == nil && result.err == nil {
			if desc, variant := findFontConfigFont(conf, name, style, weight); desc.Path != "" {
				tracer().Debugf("%s is a fontconfig font, variant %s", name, variant)
				result.font, result.err = font.LoadOpenTypeFont(desc.Path)
			}
		}
		if result.font == nil && result.err == nil {
			if fiList, err := FindGoogleFont(conf, name, style, weight); err == nil {
				fi := fiList[0]
				var fpath string
				if fpath, result.err = CacheGoogleFont(conf, fi, fi.Variants[0]); result.err == nil {
					result.font, result.err = font.LoadOpenTypeFont(fpath)
				}
			}
		}
		if result.font == nil && result.err == nil {
			result.err = NotFound(name)
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.ScalableFont, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

// fontFilePath checks whether name denotes a readable font file, either
// as given or relative to the configured project root.
func fontFilePath(conf schuko.Configuration, name string) (string, bool) {
	if !isFontFileName(name) {
		return "", false
	}
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	if filepath.IsAbs(name) || conf == nil {
		return "", false
	}
	root := conf.GetString("project-root")
	if root == "" {
		return "", false
	}
	fpath := filepath.Join(root, name)
	if _, err := os.Stat(fpath); err == nil {
		return fpath, true
	}
	return "", false
}

func isFontFileName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}
