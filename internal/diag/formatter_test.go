package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
)

type fakeFileTable struct {
	path string
	src  string
}

func (f fakeFileTable) Path(ast.FileID) string   { return f.path }
func (f fakeFileTable) Source(ast.FileID) string { return f.src }
func (f fakeFileTable) Position(loc ast.Loc) (int, int) {
	return 2, 5
}

func TestFormatterFormatWritesHeaderAndSnippet(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	files := fakeFileTable{path: "app.rb", src: "class A\n  def foo\nend"}

	d := diag.New(diag.StageTypecheck, diag.CodeUnknownMethod, ast.Loc{File: 1}, "unknown method %q", "foo")
	f.Format(d, files)

	out := buf.String()
	require.Contains(t, out, "error[TYPECHECK_UNKNOWN_METHOD]")
	require.Contains(t, out, "app.rb:2:5")
	require.Contains(t, out, "def foo")
}

func TestFormatterFormatAllPrintsCount(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	files := fakeFileTable{path: "app.rb", src: "x"}

	diags := []diag.Diagnostic{
		diag.New(diag.StageNamer, diag.CodeRedefinitionOfMethod, ast.Loc{File: 1}, "a"),
		diag.New(diag.StageResolver, diag.CodeUndeclaredVariable, ast.Loc{File: 2}, "b"),
	}
	f.FormatAll(diags, files)

	require.Contains(t, buf.String(), "2 error(s)")
}
