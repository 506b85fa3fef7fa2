// Command csv2html converts CSV files to HTML tables.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bjaus/csv2html"
	"github.com/bjaus/csv2html/internal/version"
)

const usageText = `Usage: csv2html [flags] input

Convert CSV files to HTML tables. Use "-" as input to read standard input.

Flags:
  -o, --output FILE          output file (standard output by default)
  -t, --title TITLE          HTML document title
  -d, --delimiter DELIM      field delimiter character ("," by default, "\t" for tab)
  -e, --encoding NAME        input character encoding (UTF-8 by default)
  -s, --start N              skip the first N data rows
  -r, --renumber             replace the first column with row numbers
  -n, --no-header            do not use the first row of the input as the header
  -c, --complete-document    output a complete HTML document instead of only a table
      --table ATTRS          attributes for <table>, e.g. 'class="data"'
      --tr ATTRS             attributes for <tr>
      --th ATTRS             attributes for <th>
      --td ATTRS             attributes for <td>
      --config FILE          YAML file with default settings
      --verbose              log diagnostics to standard error
  -v, --version              print the version and exit
  -h, --help                 print this help and exit

Attribute text is inserted as is. It is up to you to ensure the result is valid HTML.
`

// cliFlags holds raw flag values before they are merged with a config file.
type cliFlags struct {
	output     string
	title      string
	delimiter  string
	encoding   string
	start      int
	renumber   bool
	noHeader   bool
	complete   bool
	tableAttrs string
	trAttrs    string
	thAttrs    string
	tdAttrs    string
	configPath string
	verbose    bool
	version    bool

	set map[string]bool
}

// isSet reports whether any of the named flags was given on the command line.
func (f *cliFlags) isSet(names ...string) bool {
	for _, n := range names {
		if f.set[n] {
			return true
		}
	}
	return false
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the exit code, so tests can drive it
// without terminating the test binary.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fl, input, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		_, _ = io.WriteString(stdout, usageText)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "csv2html: %v\n", err)
		fmt.Fprintln(stderr, "Run 'csv2html --help' for usage.")
		return exitSoftware
	}
	if fl.version {
		fmt.Fprintf(stdout, "csv2html %s\n", version.Version)
		fmt.Fprintf(stdout, "Commit: %s\n", version.CommitHash)
		fmt.Fprintf(stdout, "Built: %s\n", version.BuildDate)
		return exitOK
	}
	if input == "" {
		_, _ = io.WriteString(stderr, usageText)
		return exitCode(csv2html.ErrNoInput)
	}

	log := newLogger(stderr, fl.verbose)

	cfg, err := resolveConfig(fl)
	if err == nil {
		_, err = csv2html.LookupEncoding(cfg.Encoding)
	}
	if err == nil {
		err = convert(log, input, fl.output, cfg, stdin, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "csv2html: %v\n", err)
	}
	return exitCode(err)
}

// parseFlags parses args and returns the single positional input argument.
// Flags may appear before and after the input. Everything after "--" is
// positional.
func parseFlags(args []string) (*cliFlags, string, error) {
	fl := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("csv2html", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	stringVar(fs, &fl.output, "", "o", "output")
	stringVar(fs, &fl.title, "", "t", "title")
	stringVar(fs, &fl.delimiter, ",", "d", "delimiter")
	stringVar(fs, &fl.encoding, "", "e", "encoding")
	fs.IntVar(&fl.start, "s", 0, "")
	fs.IntVar(&fl.start, "start", 0, "")
	boolVar(fs, &fl.renumber, "r", "renumber")
	boolVar(fs, &fl.noHeader, "n", "no-header")
	boolVar(fs, &fl.complete, "c", "complete-document")
	stringVar(fs, &fl.tableAttrs, "", "table")
	stringVar(fs, &fl.trAttrs, "", "tr")
	stringVar(fs, &fl.thAttrs, "", "th")
	stringVar(fs, &fl.tdAttrs, "", "td")
	stringVar(fs, &fl.configPath, "", "config")
	boolVar(fs, &fl.verbose, "verbose")
	boolVar(fs, &fl.version, "v", "version")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, "", err
		}
		remaining := fs.Args()
		if consumed := rest[:len(rest)-len(remaining)]; len(consumed) > 0 && consumed[len(consumed)-1] == "--" {
			positional = append(positional, remaining...)
			break
		}
		rest = remaining
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
	fs.Visit(func(f *flag.Flag) { fl.set[f.Name] = true })

	if len(positional) > 1 {
		return nil, "", fmt.Errorf("%w: expected one input file, got %d", csv2html.ErrInvalidConfig, len(positional))
	}
	if fl.start < 0 {
		return nil, "", fmt.Errorf("%w: invalid start row %d", csv2html.ErrInvalidConfig, fl.start)
	}
	var input string
	if len(positional) == 1 {
		input = positional[0]
	}
	return fl, input, nil
}

func stringVar(fs *flag.FlagSet, p *string, value string, names ...string) {
	for _, n := range names {
		fs.StringVar(p, n, value, "")
	}
}

func boolVar(fs *flag.FlagSet, p *bool, names ...string) {
	for _, n := range names {
		fs.BoolVar(p, n, false, "")
	}
}

// resolveConfig builds the conversion config. Values from the config file
// are used unless the corresponding flag was given explicitly.
func resolveConfig(fl *cliFlags) (csv2html.Config, error) {
	var cfg csv2html.Config
	if fl.configPath != "" {
		fc, err := csv2html.LoadConfig(fl.configPath)
		if err != nil {
			return cfg, err
		}
		if cfg, err = fc.Apply(cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Delimiter == 0 || fl.isSet("d", "delimiter") {
		d, err := csv2html.ParseDelimiter(fl.delimiter)
		if err != nil {
			return cfg, err
		}
		cfg.Delimiter = d
	}
	if fl.isSet("t", "title") {
		cfg.Title = fl.title
	}
	if fl.isSet("e", "encoding") {
		cfg.Encoding = fl.encoding
	}
	if fl.isSet("s", "start") {
		cfg.Start = fl.start
	}
	if fl.isSet("r", "renumber") {
		cfg.Renumber = fl.renumber
	}
	if fl.isSet("n", "no-header") {
		cfg.SkipHeader = fl.noHeader
	}
	if fl.isSet("c", "complete-document") {
		cfg.CompleteDocument = fl.complete
	}
	if fl.isSet("table") {
		cfg.TableAttrs = fl.tableAttrs
	}
	if fl.isSet("tr") {
		cfg.RowAttrs = fl.trAttrs
	}
	if fl.isSet("th") {
		cfg.HeaderCellAttrs = fl.thAttrs
	}
	if fl.isSet("td") {
		cfg.BodyCellAttrs = fl.tdAttrs
	}
	return cfg, cfg.Validate()
}

// convert opens the input and output, runs the conversion and releases both
// on every path. Output already written stays written when the input turns
// out to be malformed.
func convert(log *slog.Logger, input, output string, cfg csv2html.Config, stdin io.Reader, stdout io.Writer) (err error) {
	log.Debug("resolved config",
		"input", input,
		"output", output,
		"delimiter", string(cfg.Delimiter),
		"encoding", cfg.Encoding,
		"start", cfg.Start,
		"renumber", cfg.Renumber,
		"no_header", cfg.SkipHeader,
		"complete_document", cfg.CompleteDocument,
	)

	in := stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("%w %q: %w", csv2html.ErrOpenInput, input, err)
		}
		defer f.Close()
		in = f
	}

	out := stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("%w %q: %w", csv2html.ErrOpenOutput, output, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("%w: %w", csv2html.ErrWriteOutput, cerr)
			}
		}()
		out = f
	}

	bw := bufio.NewWriter(out)
	stats, err := csv2html.Convert(bw, in, cfg)
	if ferr := bw.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("%w: %w", csv2html.ErrWriteOutput, ferr)
	}
	log.Debug("conversion finished",
		"header_cells", stats.HeaderCells,
		"body_rows", stats.BodyRows,
		"skipped", stats.Skipped,
		"error", err,
	)
	return err
}
