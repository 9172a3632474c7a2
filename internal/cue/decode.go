package cue

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// ErrDecode is returned when cue sheet bytes cannot be turned into text.
var ErrDecode = errors.New("cannot decode cue sheet")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charsetAliases maps detector names that neither index knows about.
var charsetAliases = map[string]encoding.Encoding{
	"utf-32be": utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	"utf-32le": utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
}

// Decode detects the character set of data and returns it as UTF-8 text.
//
// A UTF-8 byte order mark short-circuits detection. When lossy is true,
// sequences that do not decode are dropped; otherwise they are an error.
func Decode(data []byte, lossy bool) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	var charset string
	if bytes.HasPrefix(data, utf8BOM) {
		charset = "UTF-8"
		data = data[len(utf8BOM):]
	} else {
		result, err := chardet.NewTextDetector().DetectBest(data)
		if err != nil {
			return "", fmt.Errorf("%w: detect charset: %v", ErrDecode, err)
		}
		charset = result.Charset
	}

	enc, err := lookupEncoding(charset)
	if err != nil {
		return "", err
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDecode, charset, err)
	}

	text := string(decoded)
	if strings.ContainsRune(text, '\uFFFD') {
		if !lossy {
			return "", fmt.Errorf("%w: undecodable bytes for charset %s", ErrDecode, charset)
		}
		text = strings.ReplaceAll(text, "\uFFFD", "")
	}

	return strings.TrimPrefix(text, "\uFEFF"), nil
}

// lookupEncoding resolves a detector charset name to an encoding.
func lookupEncoding(charset string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" {
		return nil, fmt.Errorf("%w: empty charset name", ErrDecode)
	}
	if name == "utf-8" {
		return unicode.UTF8, nil
	}

	if enc, ok := charsetAliases[name]; ok {
		return enc, nil
	}

	candidates := []string{name, strings.ReplaceAll(name, "-", "")}
	for _, candidate := range candidates {
		if enc, err := htmlindex.Get(candidate); err == nil {
			return enc, nil
		}
		if enc, err := ianaindex.IANA.Encoding(candidate); err == nil && enc != nil {
			return enc, nil
		}
	}

	return nil, fmt.Errorf("%w: unsupported charset %q", ErrDecode, charset)
}
