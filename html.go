package csv2html

import (
	"html"
	"strings"
)

const docPrologue = "<!DOCTYPE html>\n<html>\n<head><title>"

// Renderer turns records into HTML fragments. Every fragment ends with a
// single newline. The zero value renders a bare table without attributes.
type Renderer struct {
	cfg Config
}

// NewRenderer returns a Renderer for cfg.
func NewRenderer(cfg Config) Renderer {
	return Renderer{cfg: cfg}
}

// Start returns the markup that precedes the first row: the document head
// when CompleteDocument is set, then the opening table tag.
func (r Renderer) Start() string {
	var b strings.Builder
	if r.cfg.CompleteDocument {
		b.WriteString(docPrologue)
		b.WriteString(html.EscapeString(r.cfg.Title))
		b.WriteString("</title></head>\n<body>\n")
	}
	openTag(&b, "table", r.cfg.TableAttrs)
	b.WriteByte('\n')
	return b.String()
}

// Row renders one record as a table row. Header rows use <th> cells and body
// rows use <td> cells. An empty record produces an empty row.
func (r Renderer) Row(record []string, header bool) string {
	tag, attrs := "td", r.cfg.BodyCellAttrs
	if header {
		tag, attrs = "th", r.cfg.HeaderCellAttrs
	}

	var b strings.Builder
	openTag(&b, "tr", r.cfg.RowAttrs)
	for _, field := range record {
		openTag(&b, tag, attrs)
		b.WriteString(html.EscapeString(field))
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
	}
	b.WriteString("</tr>\n")
	return b.String()
}

// End returns the markup that follows the last row.
func (r Renderer) End() string {
	if r.cfg.CompleteDocument {
		return "</table>\n</body>\n</html>\n"
	}
	return "</table>\n"
}

// openTag writes <name> or <name attrs>. attrs is raw text.
func openTag(b *strings.Builder, name, attrs string) {
	b.WriteByte('<')
	b.WriteString(name)
	if attrs != "" {
		b.WriteByte(' ')
		b.WriteString(attrs)
	}
	b.WriteByte('>')
}
