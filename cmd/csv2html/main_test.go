package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bjaus/csv2html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const people = "name,age\nAlice,30\nBob,25\n"

const peopleHTML = "<table>\n" +
	"<tr><th>name</th><th>age</th></tr>\n" +
	"<tr><td>Alice</td><td>30</td></tr>\n" +
	"<tr><td>Bob</td><td>25</td></tr>\n" +
	"</table>\n"

type result struct {
	code   int
	stdout string
	stderr string
}

func runCmd(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errb)
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunDefault(t *testing.T) {
	t.Parallel()
	in := writeFile(t, t.TempDir(), "people.csv", people)
	res := runCmd(t, "", in)
	assert.Equal(t, exitOK, res.code)
	assert.Equal(t, peopleHTML, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRunStdin(t *testing.T) {
	t.Parallel()
	res := runCmd(t, people, "-")
	assert.Equal(t, exitOK, res.code)
	assert.Equal(t, peopleHTML, res.stdout)
}

func TestRunFlags(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args []string
		want string
	}{
		"start": {
			args: []string{"-s", "1", "-"},
			want: "<table>\n<tr><th>name</th><th>age</th></tr>\n<tr><td>Bob</td><td>25</td></tr>\n</table>\n",
		},
		"flags after input": {
			args: []string{"-", "--no-header", "--start", "2"},
			want: "<table>\n<tr><td>Bob</td><td>25</td></tr>\n</table>\n",
		},
		"renumber": {
			args: []string{"-r", "-"},
			want: "<table>\n<tr><th>name</th><th>age</th></tr>\n" +
				"<tr><td>0</td><td>30</td></tr>\n<tr><td>1</td><td>25</td></tr>\n</table>\n",
		},
		"complete document": {
			args: []string{"-c", "-t", "Foo & Bar", "-s", "5", "-"},
			want: "<!DOCTYPE html>\n<html>\n<head><title>Foo &amp; Bar</title></head>\n<body>\n" +
				"<table>\n<tr><th>name</th><th>age</th></tr>\n</table>\n</body>\n</html>\n",
		},
		"attributes": {
			args: []string{"--table", `class="t"`, "--tr", "r", "--th", "h", "--td", "d", "-s=2", "-"},
			want: `<table class="t">` + "\n<tr r><th h>name</th><th h>age</th></tr>\n</table>\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runCmd(t, people, tt.args...)
			assert.Equal(t, exitOK, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestRunDelimiter(t *testing.T) {
	t.Parallel()
	tsv := strings.ReplaceAll(people, ",", "\t")
	for _, d := range []string{`\t`, "\t"} {
		res := runCmd(t, tsv, "--delimiter", d, "-")
		assert.Equal(t, exitOK, res.code, res.stderr)
		assert.Equal(t, peopleHTML, res.stdout)
	}
}

func TestRunOutputFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "people.csv", people)
	out := filepath.Join(dir, "people.html")

	res := runCmd(t, "", in, "-o", out)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, peopleHTML, string(got))
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := writeFile(t, dir, "csv2html.yaml", "delimiter: \";\"\ntitle: From file\ncomplete_document: true\nattributes:\n  td: class=\"c\"\n")
	in := writeFile(t, dir, "in.csv", "a;b\n1;2\n")

	res := runCmd(t, "", "--config", cfg, "--title", "From flag", in)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "<!DOCTYPE html>\n<html>\n<head><title>From flag</title></head>\n<body>\n"+
		"<table>\n<tr><th>a</th><th>b</th></tr>\n"+
		`<tr><td class="c">1</td><td class="c">2</td></tr>`+"\n"+
		"</table>\n</body>\n</html>\n", res.stdout)
}

func TestRunEncoding(t *testing.T) {
	t.Parallel()
	res := runCmd(t, "caf\xe9\n", "-n", "-e", "latin1", "-")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "<table>\n<tr><td>café</td></tr>\n</table>\n", res.stdout)
}

func TestRunLenientQuotes(t *testing.T) {
	t.Parallel()
	res := runCmd(t, "item,size\npipe,5\"\nx\"y,1\n\"open,never closed\n", "-")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "<tr><td>pipe</td><td>5&#34;</td></tr>\n")
	assert.Contains(t, res.stdout, "<tr><td>x&#34;y</td><td>1</td></tr>\n")
	assert.Contains(t, res.stdout, "<tr><td>open,never closed")
	assert.True(t, strings.HasSuffix(res.stdout, "</table>\n"))
}

func TestRunDoubleDash(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := writeFile(t, dir, "-x", people)

	res := runCmd(t, "", "-s", "1", "--", in)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "<table>\n<tr><th>name</th><th>age</th></tr>\n<tr><td>Bob</td><td>25</td></tr>\n</table>\n", res.stdout)

	res = runCmd(t, "", "--", in, "-x")
	assert.Equal(t, exitSoftware, res.code)
	assert.Contains(t, res.stderr, "expected one input file, got 2")
	assert.NotContains(t, res.stderr, "flag provided but not defined")
}

func TestRunNoInputUsesNoInputCode(t *testing.T) {
	t.Parallel()
	res := runCmd(t, "", "--renumber")
	assert.Equal(t, exitCode(csv2html.ErrNoInput), res.code)
	assert.Equal(t, exitNoInput, res.code)
	assert.Contains(t, res.stderr, "Usage: csv2html")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()
	for _, arg := range []string{"-v", "--version"} {
		res := runCmd(t, "", arg)
		assert.Equal(t, exitOK, res.code)
		assert.Equal(t, "csv2html dev\nCommit: unknown\nBuilt: unknown\n", res.stdout)
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()
	res := runCmd(t, "", "--help")
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stdout, "Convert CSV files to HTML tables")
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	t.Parallel()
	res := runCmd(t, people, "--verbose", "-")
	require.Equal(t, exitOK, res.code)
	assert.Equal(t, peopleHTML, res.stdout)
	assert.Contains(t, res.stderr, "conversion finished")
	assert.Contains(t, res.stderr, "body_rows=2")
}

func TestRunFailures(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	garbage := writeFile(t, dir, "garbage", "\x00\xff\xd8\xff\xe0binary\x89PNG\r\n\x1a\n")
	good := writeFile(t, dir, "good.csv", people)

	tests := map[string]struct {
		stdin      string
		args       []string
		wantCode   int
		wantStderr string
	}{
		"no input": {
			wantCode:   exitNoInput,
			wantStderr: "Usage: csv2html",
		},
		"missing input": {
			args:       []string{filepath.Join(dir, "does-not-exist.csv")},
			wantCode:   exitNoInput,
			wantStderr: "cannot open the input file",
		},
		"garbage input": {
			args:       []string{garbage},
			wantCode:   exitDataErr,
			wantStderr: "cannot parse",
		},
		"undecodable row": {
			stdin:      "a,b\nok,\xfe\xff\n",
			args:       []string{"-"},
			wantCode:   exitDataErr,
			wantStderr: "cannot parse a CSV row",
		},
		"unknown encoding": {
			args:       []string{"-e", "klingon", good},
			wantCode:   exitUnavailable,
			wantStderr: "unsupported encoding",
		},
		"bad delimiter": {
			args:       []string{"-d", ";;", good},
			wantCode:   exitSoftware,
			wantStderr: "invalid delimiter",
		},
		"bad start": {
			args:     []string{"-s", "many", good},
			wantCode: exitSoftware,
		},
		"negative start": {
			args:     []string{"-s", "-3", good},
			wantCode: exitSoftware,
		},
		"unknown flag": {
			args:     []string{"--colour", good},
			wantCode: exitSoftware,
		},
		"two inputs": {
			args:     []string{good, good},
			wantCode: exitSoftware,
		},
		"bad config": {
			args:     []string{"--config", filepath.Join(dir, "missing.yaml"), good},
			wantCode: exitSoftware,
		},
		"unwritable output": {
			args:       []string{good, "-o", filepath.Join(dir, "no", "such", "dir.html")},
			wantCode:   exitIOErr,
			wantStderr: "cannot open the output file",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runCmd(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.wantCode, res.code, res.stderr)
			assert.Contains(t, res.stderr, tt.wantStderr)
		})
	}
}

func TestRunGarbageWritesNoRows(t *testing.T) {
	t.Parallel()
	res := runCmd(t, "\xff\xfe\xfd\n", "-")
	assert.Equal(t, exitDataErr, res.code)
	assert.Equal(t, "<table>\n", res.stdout)
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":            {err: nil, want: exitOK},
		"no input":       {err: csv2html.ErrNoInput, want: exitNoInput},
		"input missing":  {err: fmt.Errorf("%w: %w", csv2html.ErrOpenInput, fs.ErrNotExist), want: exitNoInput},
		"input denied":   {err: fmt.Errorf("%w: %w", csv2html.ErrOpenInput, fs.ErrPermission), want: exitIOErr},
		"output":         {err: csv2html.ErrOpenOutput, want: exitIOErr},
		"read":           {err: csv2html.ErrReadInput, want: exitIOErr},
		"write":          {err: csv2html.ErrWriteOutput, want: exitIOErr},
		"header":         {err: csv2html.ErrParseHeader, want: exitDataErr},
		"row":            {err: fmt.Errorf("%w: boom", csv2html.ErrParseRow), want: exitDataErr},
		"encoding":       {err: csv2html.ErrUnsupportedEncoding, want: exitUnavailable},
		"config":         {err: csv2html.ErrInvalidConfig, want: exitSoftware},
		"something else": {err: errors.New("surprise"), want: exitSoftware},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
