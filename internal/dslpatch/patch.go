// Package dslpatch mutates class bodies to synthesize sig-style method
// variants, exercising ast.DeepCopy as a duplication primitive rather than
// a full traversal rewrite.
package dslpatch

import "github.com/vellum-lang/vellum/internal/ast"

// signatureHeuristic reports whether stmt looks like a `sig { ... }` call:
// a Send whose own receiver is itself a Send. This is a syntactic
// heuristic, not a semantic one — it never inspects the sig's contents.
func signatureHeuristic(stmt ast.Expression) bool {
	send, ok := ast.As[*ast.Send](stmt)
	if !ok {
		return false
	}
	_, ok = ast.As[*ast.Send](send.Recv)
	return ok
}

// Patch scans cd's body for a `call` method preceded by what looks like a
// signature call, and if found, inserts a cloned copy of the signature
// statement and a synthesized self-variant of the method immediately after
// it. It mutates cd.Rhs in place and reports whether it made a change.
//
// The i==0 guard below preserves the original tool's own off-by-one: a
// `call` method as the very first statement in the class body is never
// patched, even though nothing about the heuristic requires that.
func Patch(cd *ast.ClassDef) bool {
	for i, stmt := range cd.Rhs {
		method, ok := ast.As[*ast.MethodDef](stmt)
		if !ok || method.Name != "call" {
			continue
		}
		if i == 0 {
			continue
		}
		prev := cd.Rhs[i-1]
		if !signatureHeuristic(prev) {
			continue
		}

		sigClone := ast.DeepCopy(prev)
		if sigClone == nil {
			continue
		}

		variant := synthesizeVariant(method)

		rhs := make([]ast.Expression, 0, len(cd.Rhs)+2)
		rhs = append(rhs, cd.Rhs[:i+1]...)
		rhs = append(rhs, sigClone, variant)
		rhs = append(rhs, cd.Rhs[i+1:]...)
		cd.Rhs = rhs
		return true
	}
	return false
}

// synthesizeVariant builds a self.call variant of method with the same
// parameter shape (each arg deep-copied independently, so the variant
// shares no node with the original) and a placeholder body.
func synthesizeVariant(method *ast.MethodDef) *ast.MethodDef {
	args := make([]ast.Reference, 0, len(method.Args))
	for _, a := range method.Args {
		clone := ast.DeepCopy(a)
		if clone == nil {
			continue
		}
		ref, ok := ast.AsReference(clone)
		if !ok {
			continue
		}
		args = append(args, ref)
	}
	body := ast.NewEmptyTree(method.Loc())
	return ast.NewMethodDef(method.Loc(), ast.NoSymbol, method.Name, args, body, true)
}
