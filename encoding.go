package csv2html

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupEncoding resolves a WHATWG encoding label such as "latin1",
// "windows-1252" or "utf-16le". The empty label means UTF-8 and returns a
// nil encoding.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, label)
	}
	return enc, nil
}

// decodeReader wraps r so that it yields UTF-8. Plain UTF-8 input is
// returned unchanged so that invalid bytes reach checkRecord instead of
// being replaced.
func decodeReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := LookupEncoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil || enc == unicode.UTF8 {
		return r, nil
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}
