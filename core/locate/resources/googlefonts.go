package resources

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/npillmayer/fontbake/core"
	"github.com/npillmayer/fontbake/core/font"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// GoogleFontInfo describes a font entry of the Google webfont service
// directory.
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

type googleFontsList struct {
	Items []GoogleFontInfo `json:"items"`
}

var loadGoogleFontsDir sync.Once
var googleFontsDirectory googleFontsList
var googleFontsLoadError error
var googleFontsAPI string = `https://www.googleapis.com/webfonts/v1/webfonts?`

func setupGoogleFontsDirectory(conf schuko.Configuration) error {
	loadGoogleFontsDir.Do(func() {
		apikey := conf.GetString("google-api-key")
		if apikey == "" {
			apikey = os.Getenv("GOOGLE_API_KEY")
		}
		if apikey == "" {
			err := errors.New("Google API key not set")
			tracer().Errorf(err.Error())
			googleFontsLoadError = core.WrapError(err, core.EMISSING,
				`Google Fonts API-key must be set in configuration or as GOOGLE_API_KEY in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`)
			return
		}
		values := url.Values{
			"sort": []string{"alpha"},
			"key":  []string{apikey},
		}
		resp, err := http.Get(googleFontsAPI + values.Encode())
		if err != nil {
			tracer().Errorf("Google Fonts API request not OK: %s", err.Error())
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			tracer().Errorf("Google Fonts API request not OK: %v", resp.Status)
			err := core.Error(core.ECONNECTION, "response: %v", resp.Status)
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		dec := json.NewDecoder(resp.Body)
		err = dec.Decode(&googleFontsDirectory)
		if err != nil {
			googleFontsLoadError = core.WrapError(err, core.EINVALID,
				"could not decode fonts-list from Google font service")
		}
	})
	return googleFontsLoadError
}

// ---------------------------------------------------------------------------

// ListGoogleFonts produces a listing of available fonts from the Google
// webfont service, with font-family names matching a given pattern.
//
// If not already done, the list of fonts will be downloaded from Google.
func ListGoogleFonts(conf schuko.Configuration, pattern string) {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	if err := setupGoogleFontsDirectory(conf); err != nil {
		tracer().Errorf(core.UserMessage(err))
	} else {
		listGoogleFonts(googleFontsDirectory, pattern)
	}
	tracer().SetTraceLevel(level)
}

func listGoogleFonts(list googleFontsList, pattern string) {
	r, err := regexp.Compile(pattern)
	if err != nil {
		tracer().Errorf("cannot list Google fonts: invalid pattern: %v", err)
		return
	}
	tracer().Infof("%d fonts in list", len(list.Items))
	tracer().Infof("======================================")
	for i, finfo := range list.Items {
		if r.MatchString(finfo.Family) {
			tracer().Infof("[%4d] %-20s: %s", i, finfo.Family, finfo.Version)
			tracer().Infof("       subsets: %v", finfo.Subsets)
			for k, v := range finfo.Files {
				tracer().Infof("       - %-18s: %s", k, v[len(v)-4:])
			}
		}
	}
}

// FindGoogleFont searches the Google webfont service for fonts with
// family names matching a given pattern, having a variant for a given
// style and weight.
//
// If not already done, the list of fonts will be downloaded from Google.
func FindGoogleFont(conf schuko.Configuration, pattern string, style xfont.Style,
	weight xfont.Weight) ([]GoogleFontInfo, error) {
	//
	var fonts []GoogleFontInfo
	if err := setupGoogleFontsDirectory(conf); err != nil {
		return fonts, err
	}
	r, err := regexp.Compile(strings.ToLower(pattern))
	if err != nil {
		return fonts, core.WrapError(err, core.EINVALID, "invalid font name pattern: %s", pattern)
	}
	for _, finfo := range googleFontsDirectory.Items {
		if !r.MatchString(strings.ToLower(finfo.Family)) {
			continue
		}
		for _, v := range finfo.Variants {
			s := font.MatchStyle(v, style)
			w := font.MatchWeight(v, weight)
			if (s+w)/2 > font.LowConfidence {
				fonts = append(fonts, finfo)
				tracer().Debugf("found Google font %s, variant %s", finfo.Family, v)
				break
			}
		}
	}
	if len(fonts) == 0 {
		return fonts, NotFound(pattern)
	}
	return fonts, nil
}

// CacheGoogleFont downloads a font file for a variant of a Google font,
// unless it is already present in the user's cache directory. Returns
// the path of the cached font file.
func CacheGoogleFont(conf schuko.Configuration, fi GoogleFontInfo, variant string) (string, error) {
	fileurl := fi.Files[variant]
	if fileurl == "" {
		return "", core.Error(core.EMISSING, "font %s has no variant %s", fi.Family, variant)
	}
	ext := path.Ext(fileurl)
	if ext == "" {
		ext = ".ttf"
	}
	cachedir, err := CacheDirPath(conf, "fonts", "google")
	if err != nil {
		return "", err
	}
	name := font.NormalizeFontname(fi.Family, xfont.StyleNormal, xfont.WeightNormal)
	filename := name + "-" + variant + ext
	fpath := path.Join(cachedir, filename)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("font %s already cached", filename)
		return fpath, nil
	}
	if err := DownloadCachedFile(fpath, fileurl); err != nil {
		return "", err
	}
	tracer().Infof("cached Google font %s as %s", fi.Family, fpath)
	return fpath, nil
}
