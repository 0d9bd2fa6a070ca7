package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/fontbake/core"
)

const packImportPath = "github.com/npillmayer/fontbake/pack"

// Options select names for the generated source file.
type Options struct {
	Package string // package clause of the generated file
	Name    string // exported variable holding the face, e.g. "Terminus18"
}

// Source renders a gofmt'ed Go source file embedding an encoded font
// table. The file declares an exported face variable named opts.Name and
// an unexported byte-literal holding the encoding.
func Source(opts Options, encoded []byte) ([]byte, error) {
	if !token.IsIdentifier(opts.Package) || token.IsExported(opts.Package) {
		return nil, core.Error(core.EINVALID,
			"%q is not a valid (lower-case) package name", opts.Package)
	}
	if !token.IsIdentifier(opts.Name) || !token.IsExported(opts.Name) {
		return nil, core.Error(core.EINVALID,
			"%q is not a valid exported identifier for the face variable", opts.Name)
	}
	dataName := unexported(opts.Name) + "Data"
	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by fontbake. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	fmt.Fprintf(&out, "import %q\n\n", packImportPath)
	fmt.Fprintf(&out, "// %s is a pre-rendered bitmap font table.\n", opts.Name)
	fmt.Fprintf(&out, "var %s = pack.MustFace(%s)\n\n", opts.Name, dataName)
	fmt.Fprintf(&out, "var %s = []byte{\n", dataName)
	writeByteLiteral(&out, encoded)
	fmt.Fprintf(&out, "}\n")
	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "generated source does not parse")
	}
	tracer().Debugf("generated %d bytes of source for %s.%s", len(src), opts.Package, opts.Name)
	return src, nil
}

const bytesPerLine = 12

func writeByteLiteral(out *bytes.Buffer, data []byte) {
	for i, b := range data {
		if i%bytesPerLine == 0 {
			out.WriteByte('\t')
		}
		fmt.Fprintf(out, "0x%02x,", b)
		if i%bytesPerLine == bytesPerLine-1 {
			out.WriteByte('\n')
		} else {
			out.WriteByte(' ')
		}
	}
	if len(data)%bytesPerLine != 0 {
		out.WriteByte('\n')
	}
}

func unexported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
