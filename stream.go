package csv2html

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// Stats describes what a conversion rendered.
type Stats struct {
	HeaderCells int // cells in the header row, zero when there is none
	BodyRows    int // body rows written
	Skipped     int // data rows read but not rendered because of Config.Start
}

// Convert reads delimited text from r and writes an HTML table to w. Each
// row is written as soon as it is parsed; the table is never held in memory.
// On error, the markup written so far is left in w.
func Convert(w io.Writer, r io.Reader, cfg Config) (Stats, error) {
	src, err := NewReader(r, cfg)
	if err != nil {
		return Stats{}, err
	}
	return ConvertRows(w, src, cfg)
}

// ConvertRows renders the records produced by src.
func ConvertRows(w io.Writer, src RowSource, cfg Config) (Stats, error) {
	return ConvertIter(w, Records(src), cfg)
}

// ConvertIter renders records from seq. The closing markup is written only
// when seq finishes without an error.
func ConvertIter(w io.Writer, seq iter.Seq2[[]string, error], cfg Config) (Stats, error) {
	var stats Stats
	if err := cfg.Validate(); err != nil {
		return stats, err
	}
	rn := NewRenderer(cfg)
	if err := emit(w, rn.Start()); err != nil {
		return stats, err
	}

	first := true
	index := 0 // data rows seen, header excluded
	var convErr error
	seq(func(rec []string, err error) bool {
		header := first && !cfg.SkipHeader
		if err == nil {
			err = checkRecord(rec)
		}
		if err != nil {
			convErr = sourceError(err, header, index)
			return false
		}
		if first {
			stripBOM(rec)
			first = false
		}
		if header {
			stats.HeaderCells = len(rec)
			convErr = emit(w, rn.Row(rec, true))
			return convErr == nil
		}

		i := index
		index++
		if i < cfg.Start {
			stats.Skipped++
			return true
		}
		if cfg.Renumber && len(rec) > 0 {
			rec[0] = strconv.Itoa(i - cfg.Start + cfg.renumberOffset())
		}
		if convErr = emit(w, rn.Row(rec, false)); convErr != nil {
			return false
		}
		stats.BodyRows++
		return true
	})
	if convErr != nil {
		return stats, convErr
	}
	return stats, emit(w, rn.End())
}

// Marshal converts r and returns the markup.
func Marshal(r io.Reader, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Convert(&buf, r, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func emit(w io.Writer, fragment string) error {
	if _, err := io.WriteString(w, fragment); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func sourceError(err error, header bool, index int) error {
	switch {
	case !isDataError(err):
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	case header:
		return fmt.Errorf("%w: %w", ErrParseHeader, err)
	default:
		return fmt.Errorf("%w: data row %d: %w", ErrParseRow, index+1, err)
	}
}
