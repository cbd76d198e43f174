package ast

import (
	"fmt"
	"strings"
)

// Print renders e as an s-expression-ish debug form. It exists for tests
// and log lines, not for round-tripping source; every node kind must be
// handled here since every node's String() delegates to it.
func Print(e Expression) string {
	if e == nil {
		return "<nil>"
	}
	switch n := e.(type) {
	case *EmptyTree:
		return "<empty>"
	case *TreeRef:
		return fmt.Sprintf("&%s", Print(n.Tree))
	case *ClassDef:
		return fmt.Sprintf("(%s %s < %s %s)", n.Kind, Print(n.Name), printList(n.Ancestors), printList(n.Rhs))
	case *MethodDef:
		prefix := ""
		if n.IsSelf {
			prefix = "self."
		}
		return fmt.Sprintf("(def %s%s(%s) %s)", prefix, n.Name, printRefs(n.Args), Print(n.Body))
	case *ConstDef:
		return fmt.Sprintf("(const-def %s)", Print(n.Rhs))
	case *If:
		return fmt.Sprintf("(if %s %s %s)", Print(n.Cond), Print(n.Thenp), Print(n.Elsep))
	case *While:
		return fmt.Sprintf("(while %s %s)", Print(n.Cond), Print(n.Body))
	case *Break:
		return fmt.Sprintf("(break %s)", Print(n.Expr))
	case *Next:
		return fmt.Sprintf("(next %s)", Print(n.Expr))
	case *Return:
		return fmt.Sprintf("(return %s)", Print(n.Expr))
	case *Yield:
		return fmt.Sprintf("(yield %s)", Print(n.Expr))
	case *Retry:
		return "(retry)"
	case *RescueCase:
		return fmt.Sprintf("(rescue-case %s %s)", printList(n.Exceptions), Print(n.Body))
	case *Rescue:
		return fmt.Sprintf("(rescue %s %s else=%s ensure=%s)", Print(n.Body), printRescueCases(n.RescueCases), Print(n.Else_), Print(n.Ensure))
	case *Ident:
		return fmt.Sprintf("ident#%d", n.Symbol)
	case *Local:
		return fmt.Sprintf("local(%s$%d)", n.Var.Name, n.Var.Unique)
	case *UnresolvedIdent:
		return fmt.Sprintf("unresolved(%s:%s)", n.Kind, n.Name)
	case *RestArg:
		return fmt.Sprintf("(*%s)", Print(n.Inner))
	case *KeywordArg:
		return fmt.Sprintf("(%s:)", Print(n.Inner))
	case *BlockArg:
		return fmt.Sprintf("(&%s)", Print(n.Inner))
	case *ShadowArg:
		return fmt.Sprintf("(;%s)", Print(n.Inner))
	case *OptionalArg:
		return fmt.Sprintf("(%s = %s)", Print(n.Inner), Print(n.Default))
	case *Assign:
		return fmt.Sprintf("(= %s %s)", Print(n.Lhs), Print(n.Rhs))
	case *Send:
		block := ""
		if n.Block != nil {
			block = " " + Print(n.Block)
		}
		return fmt.Sprintf("(send %s.%s(%s)%s)", Print(n.Recv), n.Fun, printList(n.Args), block)
	case *Block:
		return fmt.Sprintf("{|%s| %s}", printRefs(n.Args), Print(n.Body))
	case *Cast:
		return fmt.Sprintf("(%s %s : %s)", n.Kind, Print(n.Arg), Print(n.TypeExpr))
	case *Array:
		return fmt.Sprintf("[%s]", printList(n.Elems))
	case *Hash:
		var b strings.Builder
		b.WriteString("{")
		for i := range n.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Print(n.Keys[i]))
			b.WriteString(" => ")
			b.WriteString(Print(n.Values[i]))
		}
		b.WriteString("}")
		return b.String()
	case *Literal:
		return fmt.Sprintf("%v", n.Value)
	case *ConstantLit:
		if _, ok := n.Scope.(*EmptyTree); ok {
			return n.Name
		}
		return fmt.Sprintf("%s::%s", Print(n.Scope), n.Name)
	case *ArraySplat:
		return fmt.Sprintf("*%s", Print(n.Arg))
	case *HashSplat:
		return fmt.Sprintf("**%s", Print(n.Arg))
	case *ZSuperArgs:
		return "<zsuper-args>"
	case *Self:
		return "self"
	case *InsSeq:
		return fmt.Sprintf("(seq %s %s)", printList(n.Stats), Print(n.Expr))
	default:
		return fmt.Sprintf("<unknown %T>", n)
	}
}

func printList(items []Expression) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Print(item)
	}
	return strings.Join(parts, " ")
}

func printRefs(items []Reference) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Print(item)
	}
	return strings.Join(parts, ", ")
}

func printRescueCases(items []*RescueCase) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Print(item)
	}
	return strings.Join(parts, " ")
}
