package ast

// Walk traverses the tree rooted at node, calling fn for each node
// (pre-order). If fn returns false, Walk does not descend into that node's
// children but still returns normally to the caller.
func Walk(node Expression, fn func(Expression) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *EmptyTree, *Self, *Retry, *ZSuperArgs, *Ident, *Local, *UnresolvedIdent, *Literal:
		// leaves

	case *TreeRef:
		Walk(n.Tree, fn)

	case *ClassDef:
		Walk(n.Name, fn)
		for _, a := range n.Ancestors {
			Walk(a, fn)
		}
		for _, r := range n.Rhs {
			Walk(r, fn)
		}

	case *MethodDef:
		for _, a := range n.Args {
			Walk(a, fn)
		}
		Walk(n.Body, fn)

	case *ConstDef:
		Walk(n.Rhs, fn)

	case *If:
		Walk(n.Cond, fn)
		Walk(n.Thenp, fn)
		Walk(n.Elsep, fn)

	case *While:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *Break:
		Walk(n.Expr, fn)
	case *Next:
		Walk(n.Expr, fn)
	case *Return:
		Walk(n.Expr, fn)
	case *Yield:
		Walk(n.Expr, fn)

	case *RescueCase:
		for _, e := range n.Exceptions {
			Walk(e, fn)
		}
		Walk(n.Var, fn)
		Walk(n.Body, fn)

	case *Rescue:
		Walk(n.Body, fn)
		for _, c := range n.RescueCases {
			Walk(c, fn)
		}
		Walk(n.Else_, fn)
		Walk(n.Ensure, fn)

	case *RestArg:
		Walk(n.Inner, fn)
	case *KeywordArg:
		Walk(n.Inner, fn)
	case *BlockArg:
		Walk(n.Inner, fn)
	case *ShadowArg:
		Walk(n.Inner, fn)
	case *OptionalArg:
		Walk(n.Inner, fn)
		Walk(n.Default, fn)

	case *Assign:
		Walk(n.Lhs, fn)
		Walk(n.Rhs, fn)

	case *Send:
		Walk(n.Recv, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
		if n.Block != nil {
			Walk(n.Block, fn)
		}

	case *Block:
		for _, a := range n.Args {
			Walk(a, fn)
		}
		Walk(n.Body, fn)

	case *Cast:
		Walk(n.Arg, fn)
		Walk(n.TypeExpr, fn)

	case *Array:
		for _, e := range n.Elems {
			Walk(e, fn)
		}

	case *Hash:
		for _, k := range n.Keys {
			Walk(k, fn)
		}
		for _, v := range n.Values {
			Walk(v, fn)
		}

	case *ConstantLit:
		Walk(n.Scope, fn)

	case *ArraySplat:
		Walk(n.Arg, fn)
	case *HashSplat:
		Walk(n.Arg, fn)

	case *InsSeq:
		for _, s := range n.Stats {
			Walk(s, fn)
		}
		Walk(n.Expr, fn)
	}
}
