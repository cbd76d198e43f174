// Package pipeline defines the external index/resolve/typecheck contract
// the edit handler drives, plus one concrete implementation. Producing a
// real parser or type inference engine is out of scope; the default
// implementation does just enough lexical scanning to populate finalGs
// with symbols documentSymbol can enumerate and to synthesize diagnostics
// that exercise the error accumulator's silencing filter.
package pipeline

import (
	"context"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/symtab"
)

// Trees maps a file to its top-level tree, mirroring the loop's `indexed`
// and working-copy vectors.
type Trees map[ast.FileID]ast.Expression

// Indexer turns raw file contents into per-file trees, entering whatever
// symbols it discovers into gs.
type Indexer interface {
	Index(ctx context.Context, gs *symtab.GlobalState, files []ast.FileID) (Trees, error)
}

// Resolver rewrites unresolved references in trees against gs's symbol
// table, returning the resolved trees.
type Resolver interface {
	Resolve(ctx context.Context, gs *symtab.GlobalState, trees Trees) (Trees, error)
}

// Typechecker inspects resolved trees and pushes diagnostics into gs's
// error queue. It never returns trees; findings flow through gs alone.
type Typechecker interface {
	Typecheck(ctx context.Context, gs *symtab.GlobalState, trees Trees) error
}

// Pipeline bundles all three external operations the edit handler
// invokes as one collaborator.
type Pipeline interface {
	Indexer
	Resolver
	Typechecker
}
