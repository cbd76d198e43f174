// Package symtab implements the global symbol table: the flat symbol
// record store and file table that back initialGS and finalGs.
package symtab

import "github.com/vellum-lang/vellum/internal/ast"

// Symbol is one entry in the table: a class, module, method, field, static
// field, method argument or type parameter. Exactly which of the flag
// fields is set determines the symbol's LSP SymbolKind via SymbolKindFor.
type Symbol struct {
	Name   string
	Owner  ast.SymbolRef
	DefLoc ast.Loc

	IsClass         bool
	IsClassModule   bool
	IsClassClass    bool
	IsMethod        bool
	IsField         bool
	IsStaticField   bool
	IsMethodArgument bool
	IsTypeMember    bool
	IsTypeArgument  bool
}

func (s *Symbol) clone() *Symbol {
	c := *s
	return &c
}

// SymbolKind is the numeric LSP SymbolKind space; only the values this
// table ever produces are named.
type SymbolKind int

const (
	SymbolKindModule      SymbolKind = 2
	SymbolKindClass       SymbolKind = 5
	SymbolKindMethod      SymbolKind = 6
	SymbolKindField       SymbolKind = 8
	SymbolKindConstructor SymbolKind = 9
	SymbolKindVariable    SymbolKind = 13
	SymbolKindConstant    SymbolKind = 14
	SymbolKindTypeParam   SymbolKind = 26
)

// SymbolKindFor maps sym to its LSP symbol kind, evaluating the predicates
// in the fixed order below (first match wins) — an ordering that matters
// because a class symbol is never also a method, but a method symbol could
// otherwise satisfy more than one clause. ok is false when no clause
// matches and the symbol should not be surfaced as a SymbolInformation.
func SymbolKindFor(sym *Symbol) (kind SymbolKind, ok bool) {
	switch {
	case sym.IsClass && sym.IsClassModule:
		return SymbolKindModule, true
	case sym.IsClass && sym.IsClassClass:
		return SymbolKindClass, true
	case sym.IsMethod && sym.Name == "initialize":
		return SymbolKindConstructor, true
	case sym.IsMethod:
		return SymbolKindMethod, true
	case sym.IsField:
		return SymbolKindField, true
	case sym.IsStaticField:
		return SymbolKindConstant, true
	case sym.IsMethodArgument:
		return SymbolKindVariable, true
	case sym.IsTypeMember || sym.IsTypeArgument:
		return SymbolKindTypeParam, true
	default:
		return 0, false
	}
}
