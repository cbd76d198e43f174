package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/lsp"
)

func TestErrorAccumulatorSilencesRedefinitionOfMethod(t *testing.T) {
	acc := lsp.NewErrorAccumulator()
	acc.Push(diag.New(diag.StageNamer, diag.CodeRedefinitionOfMethod, ast.Loc{File: 1}, "redefined"))

	updated := acc.DrainUpdated()
	require.Empty(t, updated)
}

func TestErrorAccumulatorPushMarksFileDirty(t *testing.T) {
	acc := lsp.NewErrorAccumulator()
	acc.Push(diag.New(diag.StageTypecheck, diag.CodeUnknownMethod, ast.Loc{File: 1, Start: 5}, "unknown method"))

	updated := acc.DrainUpdated()
	require.Len(t, updated, 1)
	require.Equal(t, ast.FileID(1), updated[0].FileID)
	require.Len(t, updated[0].Diagnostics, 1)

	// A second drain with nothing new pushed reports no dirty files.
	require.Empty(t, acc.DrainUpdated())
}

func TestErrorAccumulatorInvalidateRepublishesEmptySet(t *testing.T) {
	acc := lsp.NewErrorAccumulator()
	acc.Push(diag.New(diag.StageTypecheck, diag.CodeUnknownMethod, ast.Loc{File: 1}, "unknown method"))
	acc.DrainUpdated()

	acc.InvalidateAllErrors()
	updated := acc.DrainUpdated()
	require.Len(t, updated, 1)
	require.Equal(t, ast.FileID(1), updated[0].FileID)
	require.Empty(t, updated[0].Diagnostics)
}

func TestErrorAccumulatorTombstoneDropsFile(t *testing.T) {
	acc := lsp.NewErrorAccumulator()
	acc.Push(diag.New(diag.StageTypecheck, diag.CodeUnknownMethod, ast.Loc{File: 1}, "unknown method"))
	acc.Tombstone(ast.FileID(1))

	updated := acc.DrainUpdated()
	require.Empty(t, updated)
}

func TestErrorAccumulatorSortsDiagnosticsByOffset(t *testing.T) {
	acc := lsp.NewErrorAccumulator()
	acc.Push(diag.New(diag.StageTypecheck, diag.CodeUnknownMethod, ast.Loc{File: 1, Start: 20}, "second"))
	acc.Push(diag.New(diag.StageTypecheck, diag.CodeUnknownMethod, ast.Loc{File: 1, Start: 5}, "first"))

	updated := acc.DrainUpdated()
	require.Len(t, updated, 1)
	require.Len(t, updated[0].Diagnostics, 2)
	require.Equal(t, "first", updated[0].Diagnostics[0].Message)
	require.Equal(t, "second", updated[0].Diagnostics[1].Message)
}
