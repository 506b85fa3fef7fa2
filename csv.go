package csv2html

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\ufeff"

var errInvalidText = errors.New("invalid UTF-8")

// RowSource yields records one at a time and returns io.EOF after the last
// one. *csv.Reader satisfies it.
type RowSource interface {
	Read() ([]string, error)
}

// NewReader returns a RowSource that tokenizes r using the delimiter and
// encoding in cfg. Records may have differing field counts, and stray
// quotes are kept as literal text.
func NewReader(r io.Reader, cfg Config) (RowSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dr, err := decodeReader(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dr)
	cr.Comma = cfg.delimiter()
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr, nil
}

// Records adapts src to an iterator. Iteration stops after the first error,
// which is yielded with a nil record. io.EOF is not yielded.
func Records(src RowSource) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			rec, err := src.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// checkRecord rejects fields that are not valid UTF-8. Undecodable bytes are
// a data error, not something to pass through to the markup.
func checkRecord(rec []string) error {
	for i, field := range rec {
		if !utf8.ValidString(field) {
			return fmt.Errorf("%w in field %d", errInvalidText, i+1)
		}
	}
	return nil
}

func stripBOM(rec []string) {
	if len(rec) > 0 {
		rec[0] = strings.TrimPrefix(rec[0], utf8BOM)
	}
}

// isDataError reports whether err describes malformed input rather than a
// failure of the underlying reader.
func isDataError(err error) bool {
	var pe *csv.ParseError
	return errors.As(err, &pe) || errors.Is(err, errInvalidText)
}
