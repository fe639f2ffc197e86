package dialect

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Encoding names produced by detection.
const (
	UTF8BOM     = "utf-8-sig"
	UTF8        = "utf-8"
	Windows1250 = "windows-1250"
	Latin1      = "iso-8859-1"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// encodingAliases maps common spellings to detection names.
var encodingAliases = map[string]string{
	"utf-8-sig":    UTF8BOM,
	"utf8-sig":     UTF8BOM,
	"utf-8-bom":    UTF8BOM,
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"cp1250":       Windows1250,
	"windows-1250": Windows1250,
	"win1250":      Windows1250,
	"latin1":       Latin1,
	"latin-1":      Latin1,
	"iso-8859-1":   Latin1,
	"iso8859-1":    Latin1,
}

// HasBOM reports whether raw starts with a UTF-8 byte order mark.
func HasBOM(raw []byte) bool {
	return bytes.HasPrefix(raw, bom)
}

// ResolveEncoding returns the canonical name for an encoding given by the
// user. Names outside the alias table are looked up in the IANA registry.
func ResolveEncoding(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := encodingAliases[key]; ok {
		return canonical, nil
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return "", &FormatDetectionError{
			Message: fmt.Sprintf("unknown encoding %q", name),
			Cause:   err,
		}
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return "", &FormatDetectionError{
			Message: fmt.Sprintf("unknown encoding %q", name),
			Cause:   err,
		}
	}
	return strings.ToLower(canonical), nil
}

// Decode converts raw bytes in the named encoding to a UTF-8 string.
// A leading byte order mark is dropped for the UTF-8 encodings.
func Decode(raw []byte, name string) (string, error) {
	switch name {
	case UTF8BOM, UTF8:
		return string(bytes.TrimPrefix(raw, bom)), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &FormatDetectionError{
			Message: fmt.Sprintf("decode as %s", name),
			Cause:   err,
		}
	}
	return string(out), nil
}

func lookup(name string) (encoding.Encoding, error) {
	switch name {
	case Windows1250:
		return charmap.Windows1250, nil
	case Latin1:
		return charmap.ISO8859_1, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, &FormatDetectionError{
			Message: fmt.Sprintf("unsupported encoding %q", name),
			Cause:   err,
		}
	}
	return enc, nil
}
