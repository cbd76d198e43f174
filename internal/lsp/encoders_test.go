package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/lsp"
	"github.com/vellum-lang/vellum/internal/symtab"
)

func TestEncodeLocationIsZeroBased(t *testing.T) {
	gs := symtab.New()
	id := gs.EnterFile("foo.rb", "class Foo\n  x\nend\n", symtab.FileNormal)

	loc := ast.Loc{File: id, Start: 12, End: 13} // "x" on line 2, col 3 (1-based)
	got := lsp.EncodeLocation(gs, "file:///root", loc, symtab.FileNormal)

	require.Equal(t, "file:///root/foo.rb", got.URI)
	require.Equal(t, 1, got.Range.Start.Line)
	require.Equal(t, 2, got.Range.Start.Character)
}

func TestEncodeLocationPayloadFileUsesPseudoURI(t *testing.T) {
	gs := symtab.New()
	id := gs.EnterFile("core/object.rbi", "class Object\nend\n", symtab.FilePayload)

	loc := ast.Loc{File: id, Start: 0, End: 5}
	got := lsp.EncodeLocation(gs, "file:///root", loc, symtab.FilePayload)
	require.Equal(t, "core/object.rbi#L1", got.URI)
}

func TestEncodeDiagnosticMapsSeverityAndRelated(t *testing.T) {
	gs := symtab.New()
	id := gs.EnterFile("foo.rb", "class Foo\n  def bar\n  end\n  def bar\n  end\nend\n", symtab.FileNormal)

	d := diag.New(diag.StageNamer, diag.CodeRedefinitionOfMethod, ast.Loc{File: id, Start: 30}, "method %q redefined", "bar").
		WithRelated(ast.Loc{File: id, Start: 12}, "previous definition was here")

	got := lsp.EncodeDiagnostic(gs, "file:///root", d)
	require.Equal(t, 1, got.Severity)
	require.Equal(t, diag.CodeRedefinitionOfMethod.Number(), got.Code)
	require.NotZero(t, got.Code)
	require.Len(t, got.RelatedInformation, 1)
	require.Equal(t, "previous definition was here", got.RelatedInformation[0].Message)
}

func TestEncodeDiagnosticRendersRelatedPayloadLocationAsPseudoURI(t *testing.T) {
	gs := symtab.New()
	workspaceID := gs.EnterFile("foo.rb", "class Foo\nend\n", symtab.FileNormal)
	payloadID := gs.EnterFile("core/object.rbi", "class Object\nend\n", symtab.FilePayload)

	d := diag.New(diag.StageTypecheck, diag.CodeUnknownMethod, ast.Loc{File: workspaceID, Start: 0}, "boom").
		WithRelated(ast.Loc{File: payloadID, Start: 0}, "defined here")

	got := lsp.EncodeDiagnostic(gs, "file:///root", d)
	require.Len(t, got.RelatedInformation, 1)
	require.Equal(t, "core/object.rbi#L1", got.RelatedInformation[0].Location.URI)
}

func TestEncodeSymbolInformationSkipsUnknownKind(t *testing.T) {
	gs := symtab.New()
	sym := &symtab.Symbol{Name: "mystery"}
	ref := gs.EnterSymbol(sym)

	_, ok := lsp.EncodeSymbolInformation(gs, "file:///root", ref, sym)
	require.False(t, ok)
}

func TestEncodeSymbolInformationSetsContainerName(t *testing.T) {
	gs := symtab.New()
	classSym := &symtab.Symbol{Name: "Foo", IsClass: true, IsClassClass: true}
	classRef := gs.EnterSymbol(classSym)
	methodSym := &symtab.Symbol{Name: "bar", Owner: classRef, IsMethod: true}
	methodRef := gs.EnterSymbol(methodSym)

	info, ok := lsp.EncodeSymbolInformation(gs, "file:///root", methodRef, methodSym)
	require.True(t, ok)
	require.Equal(t, "Foo", info.ContainerName)
	require.Equal(t, int(symtab.SymbolKindMethod), info.Kind)
}
