package main

import (
	"errors"
	"io/fs"

	"github.com/bjaus/csv2html"
)

// Exit codes from sysexits.h. Scripts depend on these values.
const (
	exitOK          = 0
	exitDataErr     = 65
	exitNoInput     = 66
	exitUnavailable = 69
	exitSoftware    = 70
	exitIOErr       = 74
)

// exitCode maps an error returned by the conversion to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, csv2html.ErrNoInput):
		return exitNoInput
	case errors.Is(err, csv2html.ErrOpenInput):
		if errors.Is(err, fs.ErrNotExist) {
			return exitNoInput
		}
		return exitIOErr
	case errors.Is(err, csv2html.ErrParseHeader), errors.Is(err, csv2html.ErrParseRow):
		return exitDataErr
	case errors.Is(err, csv2html.ErrUnsupportedEncoding):
		return exitUnavailable
	case errors.Is(err, csv2html.ErrOpenOutput),
		errors.Is(err, csv2html.ErrReadInput),
		errors.Is(err, csv2html.ErrWriteOutput):
		return exitIOErr
	default:
		return exitSoftware
	}
}
