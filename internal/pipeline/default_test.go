package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/pipeline"
	"github.com/vellum-lang/vellum/internal/symtab"
)

const fooSource = `class Foo
  def bar
  end

  def baz
  end
end
`

func TestDefaultIndexEntersSymbols(t *testing.T) {
	gs := symtab.New()
	id := gs.EnterFile("foo.rb", fooSource, symtab.FileNormal)

	p := pipeline.NewDefault()
	trees, err := p.Index(context.Background(), gs, []ast.FileID{id})
	require.NoError(t, err)
	require.NotNil(t, trees[id])

	seq, ok := ast.As[*ast.InsSeq](trees[id])
	require.True(t, ok)
	require.Len(t, seq.Stats, 1)

	cd, ok := ast.As[*ast.ClassDef](seq.Stats[0])
	require.True(t, ok)
	require.Len(t, cd.Rhs, 2)

	names := []string{}
	for _, stmt := range cd.Rhs {
		m, ok := ast.As[*ast.MethodDef](stmt)
		require.True(t, ok)
		names = append(names, m.Name)
	}
	require.ElementsMatch(t, []string{"bar", "baz"}, names)
}

func TestDefaultTypecheckFlagsDuplicateMethodName(t *testing.T) {
	gs := symtab.New()
	id := gs.EnterFile("foo.rb", "class Foo\n  def bar\n  end\n\n  def bar\n  end\nend\n", symtab.FileNormal)

	p := pipeline.NewDefault()
	trees, err := p.Index(context.Background(), gs, []ast.FileID{id})
	require.NoError(t, err)

	resolved, err := p.Resolve(context.Background(), gs, trees)
	require.NoError(t, err)

	require.NoError(t, p.Typecheck(context.Background(), gs, resolved))

	errs := gs.DrainErrors()
	require.Len(t, errs, 1)
	require.Equal(t, "NAMER_REDEFINITION_OF_METHOD", string(errs[0].Code))
}

func TestDefaultTypecheckFlagsClassRedefinedAsModule(t *testing.T) {
	gs := symtab.New()
	classID := gs.EnterFile("a.rb", "class Widget\nend\n", symtab.FileNormal)
	moduleID := gs.EnterFile("b.rb", "module Widget\nend\n", symtab.FileNormal)

	p := pipeline.NewDefault()
	trees, err := p.Index(context.Background(), gs, []ast.FileID{classID, moduleID})
	require.NoError(t, err)

	resolved, err := p.Resolve(context.Background(), gs, trees)
	require.NoError(t, err)
	require.NoError(t, p.Typecheck(context.Background(), gs, resolved))

	errs := gs.DrainErrors()
	require.Len(t, errs, 1)
	require.Equal(t, diag.CodeRedefinedAsDifferentKind, errs[0].Code)
}

func TestDefaultIndexClosesUnterminatedBlockAtEOF(t *testing.T) {
	gs := symtab.New()
	id := gs.EnterFile("bad.rb", "class Foo\n  def bar\n", symtab.FileNormal)

	p := pipeline.NewDefault()
	trees, err := p.Index(context.Background(), gs, []ast.FileID{id})
	require.NoError(t, err)
	require.NotNil(t, trees[id])
}
