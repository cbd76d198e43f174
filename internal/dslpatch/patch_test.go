package dslpatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
)

func loc() ast.Loc { return ast.Loc{File: 1, Start: 0, End: 0} }

func sigSend() *ast.Send {
	inner := ast.NewSend(loc(), ast.NewSelf(loc()), "sig", nil, nil)
	return ast.NewSend(loc(), inner, "returns", nil, nil)
}

func callMethod() *ast.MethodDef {
	return ast.NewMethodDef(loc(), ast.NoSymbol, "call", nil, ast.NewEmptyTree(loc()), false)
}

func TestPatchInsertsVariantWhenPreceded(t *testing.T) {
	other := ast.NewSelf(loc())
	cd := ast.NewClassDef(loc(), ast.NoSymbol, ast.NewIdent(loc(), ast.NoSymbol), nil,
		[]ast.Expression{other, sigSend(), callMethod()}, ast.ClassKindClass)

	changed := Patch(cd)
	require.True(t, changed)
	require.Len(t, cd.Rhs, 5)

	variant, ok := ast.As[*ast.MethodDef](cd.Rhs[4])
	require.True(t, ok)
	require.True(t, variant.IsSelf)
	require.Equal(t, "call", variant.Name)
}

func TestPatchSkipsWhenCallIsFirstStatement(t *testing.T) {
	cd := ast.NewClassDef(loc(), ast.NoSymbol, ast.NewIdent(loc(), ast.NoSymbol), nil,
		[]ast.Expression{callMethod()}, ast.ClassKindClass)

	changed := Patch(cd)
	require.False(t, changed)
	require.Len(t, cd.Rhs, 1)
}

func TestPatchSkipsWhenPrecedingStatementIsNotASignature(t *testing.T) {
	cd := ast.NewClassDef(loc(), ast.NoSymbol, ast.NewIdent(loc(), ast.NoSymbol), nil,
		[]ast.Expression{ast.NewSelf(loc()), callMethod()}, ast.ClassKindClass)

	changed := Patch(cd)
	require.False(t, changed)
	require.Len(t, cd.Rhs, 2)
}

func TestPatchClonesArgsIndependently(t *testing.T) {
	arg := ast.NewLocal(loc(), ast.LocalVar{Name: "x", Unique: 1})
	method := ast.NewMethodDef(loc(), ast.NoSymbol, "call", []ast.Reference{arg}, ast.NewEmptyTree(loc()), false)
	cd := ast.NewClassDef(loc(), ast.NoSymbol, ast.NewIdent(loc(), ast.NoSymbol), nil,
		[]ast.Expression{ast.NewSelf(loc()), sigSend(), method}, ast.ClassKindClass)

	require.True(t, Patch(cd))
	variant, ok := ast.As[*ast.MethodDef](cd.Rhs[4])
	require.True(t, ok)
	require.Len(t, variant.Args, 1)
	require.NotSame(t, arg, variant.Args[0])
}
