package csv2html

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors for programmatic error handling.
var (
	ErrNoInput             = errors.New("no input file given")
	ErrOpenInput           = errors.New("cannot open the input file")
	ErrOpenOutput          = errors.New("cannot open the output file")
	ErrReadInput           = errors.New("cannot read the input")
	ErrWriteOutput         = errors.New("cannot write to the output file")
	ErrParseHeader         = errors.New("cannot parse the CSV header")
	ErrParseRow            = errors.New("cannot parse a CSV row")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// DefaultDelimiter is the field delimiter used when Config.Delimiter is zero.
const DefaultDelimiter = ','

// Config controls how records are read and rendered. It is passed by value
// and never modified by the package.
//
// The attribute fields are inserted verbatim into their tags. They are not
// escaped: callers that need quotes inside attribute values must supply
// already-quoted text. Cell content and the title are always escaped.
type Config struct {
	// CompleteDocument wraps the table in <html>, <head> and <body>.
	CompleteDocument bool
	// Title is placed in <title> when CompleteDocument is set.
	Title string

	TableAttrs      string // <table>
	RowAttrs        string // <tr>
	HeaderCellAttrs string // <th>
	BodyCellAttrs   string // <td>

	// SkipHeader treats the first record as data instead of a header.
	SkipHeader bool
	// Start is the number of data rows, counted after the header, that are
	// read but not rendered.
	Start int
	// Renumber replaces the first field of every body row with its row number.
	Renumber bool

	// Delimiter separates fields. Zero means DefaultDelimiter.
	Delimiter rune
	// Encoding is a WHATWG label for the input character encoding.
	// Empty means UTF-8.
	Encoding string
}

// Validate reports whether c can be used for a conversion.
func (c Config) Validate() error {
	if c.Start < 0 {
		return fmt.Errorf("%w: start row must not be negative, got %d", ErrInvalidConfig, c.Start)
	}
	if c.Delimiter != 0 && !validDelim(c.Delimiter) {
		return fmt.Errorf("%w: delimiter %q", ErrInvalidConfig, c.Delimiter)
	}
	return nil
}

func (c Config) delimiter() rune {
	if c.Delimiter == 0 {
		return DefaultDelimiter
	}
	return c.Delimiter
}

// renumberOffset is added to a row's position in the rendered window. Row
// numbers are zero-based only when a header is present and nothing is
// skipped.
func (c Config) renumberOffset() int {
	if c.SkipHeader || c.Start > 0 {
		return 1
	}
	return 0
}

// Same rules as encoding/csv.
func validDelim(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
