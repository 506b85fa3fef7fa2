// Package csv2html converts delimited text to HTML tables.
//
// The conversion is a streaming pipeline: a [RowSource] produces records, a
// [Renderer] turns each record into a fragment of markup, and [Convert]
// writes every fragment before it reads the next record. Memory use does not
// grow with the size of the input.
//
//	stats, err := csv2html.Convert(os.Stdout, file, csv2html.Config{
//		CompleteDocument: true,
//		Title:            "Inventory",
//	})
//
// # Output
//
// Every fragment ends with a single newline and carries no indentation:
//
//	<table>
//	<tr><th>name</th><th>age</th></tr>
//	<tr><td>Alice</td><td>30</td></tr>
//	</table>
//
// With [Config.CompleteDocument] the table is wrapped in a minimal HTML5
// document whose <title> is [Config.Title].
//
// # Escaping
//
// Field values and the title are escaped with [html.EscapeString]. Attribute
// text ([Config.TableAttrs], [Config.RowAttrs], [Config.HeaderCellAttrs],
// [Config.BodyCellAttrs]) is inserted verbatim. Treat it as trusted input;
// producing valid HTML from it is the caller's job.
//
// # Row Window
//
// Unless [Config.SkipHeader] is set, the first record is the header. Data
// records are counted from zero after the header and the first
// [Config.Start] of them are dropped. With [Config.Renumber] the first field
// of each remaining row is replaced by its number. Numbering starts at 0
// when there is a header and Start is zero, and at 1 otherwise.
//
// # Input
//
// Records may have differing field counts, and a quote that does not open
// or close a quoted field is kept as text. Input must be UTF-8 unless
// [Config.Encoding] names another encoding; see [LookupEncoding]. Invalid
// UTF-8 is reported as a parse error.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrParseHeader], [ErrParseRow] — malformed input
//   - [ErrReadInput], [ErrWriteOutput] — I/O failures
//   - [ErrUnsupportedEncoding] — unknown encoding label
//   - [ErrInvalidConfig] — invalid start row, delimiter or config file
//   - [ErrNoInput], [ErrOpenInput], [ErrOpenOutput] — used by the command
package csv2html
