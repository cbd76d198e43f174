package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
)

func TestNewFormatsMessageArgs(t *testing.T) {
	loc := ast.Loc{File: 3, Start: 10, End: 20}
	d := diag.New(diag.StageNamer, diag.CodeRedefinitionOfMethod, loc, "method %q redefined", "call")

	require.Equal(t, diag.StageNamer, d.Stage)
	require.Equal(t, diag.SeverityError, d.Severity)
	require.Equal(t, diag.CodeRedefinitionOfMethod, d.Code)
	require.Equal(t, `method "call" redefined`, d.Message)
	require.Equal(t, loc, d.Loc)
}

func TestWithSeverityDoesNotMutateReceiver(t *testing.T) {
	d := diag.New(diag.StageResolver, diag.CodeUndeclaredVariable, ast.Loc{}, "undeclared")
	warn := d.WithSeverity(diag.SeverityWarning)

	require.Equal(t, diag.SeverityError, d.Severity)
	require.Equal(t, diag.SeverityWarning, warn.Severity)
}

func TestWithRelatedAppendsWithoutAliasingBackingArray(t *testing.T) {
	base := diag.New(diag.StageResolver, diag.CodeRedefinitionOfParents, ast.Loc{}, "parents redefined")
	a := base.WithRelated(ast.Loc{File: 1}, "first")
	b := base.WithRelated(ast.Loc{File: 2}, "second")

	require.Len(t, a.Related, 1)
	require.Len(t, b.Related, 1)
	require.Equal(t, "first", a.Related[0].Message)
	require.Equal(t, "second", b.Related[0].Message)
}
