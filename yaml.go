package csv2html

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Pointer fields distinguish an
// absent key from a zero value so that a file only overrides what it names.
//
//	complete_document: true
//	title: Quarterly report
//	delimiter: ";"
//	attributes:
//	  table: class="report"
//	  td: class="cell"
type FileConfig struct {
	CompleteDocument *bool      `yaml:"complete_document"`
	Title            *string    `yaml:"title"`
	Delimiter        *string    `yaml:"delimiter"`
	Encoding         *string    `yaml:"encoding"`
	Start            *int       `yaml:"start"`
	Renumber         *bool      `yaml:"renumber"`
	NoHeader         *bool      `yaml:"no_header"`
	Attributes       Attributes `yaml:"attributes"`
}

// Attributes holds raw attribute text for each tag.
type Attributes struct {
	Table *string `yaml:"table"`
	TR    *string `yaml:"tr"`
	TH    *string `yaml:"th"`
	TD    *string `yaml:"td"`
}

// LoadConfig reads a YAML configuration file. Unknown keys are rejected.
func LoadConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration. An empty document yields an empty
// FileConfig.
func ParseConfig(data []byte) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return fc, nil
}

// Apply overlays the values present in fc onto cfg.
func (fc FileConfig) Apply(cfg Config) (Config, error) {
	if fc.CompleteDocument != nil {
		cfg.CompleteDocument = *fc.CompleteDocument
	}
	if fc.Title != nil {
		cfg.Title = *fc.Title
	}
	if fc.Delimiter != nil {
		d, err := ParseDelimiter(*fc.Delimiter)
		if err != nil {
			return cfg, err
		}
		cfg.Delimiter = d
	}
	if fc.Encoding != nil {
		cfg.Encoding = *fc.Encoding
	}
	if fc.Start != nil {
		cfg.Start = *fc.Start
	}
	if fc.Renumber != nil {
		cfg.Renumber = *fc.Renumber
	}
	if fc.NoHeader != nil {
		cfg.SkipHeader = *fc.NoHeader
	}
	setString(&cfg.TableAttrs, fc.Attributes.Table)
	setString(&cfg.RowAttrs, fc.Attributes.TR)
	setString(&cfg.HeaderCellAttrs, fc.Attributes.TH)
	setString(&cfg.BodyCellAttrs, fc.Attributes.TD)
	return cfg, cfg.Validate()
}

// ParseDelimiter converts user input to a delimiter rune. It accepts a
// single character or the escape `\t` for tab.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || !validDelim(r) {
		return 0, fmt.Errorf("%w: invalid delimiter %q", ErrInvalidConfig, s)
	}
	return r, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
