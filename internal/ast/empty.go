package ast

// EmptyTree represents the absence of a value in an owned slot that the
// grammar allows to be empty (an else-less If, a valueless Return, ...).
// It is a real node, never a nil Expression.
type EmptyTree struct {
	loc Loc
}

// NewEmptyTree constructs an EmptyTree at loc.
func NewEmptyTree(loc Loc) *EmptyTree { return &EmptyTree{loc: loc} }

func (n *EmptyTree) Loc() Loc  { return n.loc }
func (*EmptyTree) exprNode()   {}
func (n *EmptyTree) String() string { return Print(n) }

func (n *EmptyTree) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	return &EmptyTree{loc: n.loc}, nil
}

// TreeRef is a non-owning indirection into another node — the only
// mechanism in the universe for shared observation. Every owned edge forms
// a forest; TreeRef never participates in that forest and never forms a
// cycle through owned edges. Deep-copying a TreeRef collapses the
// indirection: the copy is the (cloned) referent, not another TreeRef.
type TreeRef struct {
	loc  Loc
	Tree Expression
}

// NewTreeRef constructs a non-owning reference to tree.
func NewTreeRef(loc Loc, tree Expression) *TreeRef {
	return &TreeRef{loc: loc, Tree: tree}
}

func (n *TreeRef) Loc() Loc  { return n.loc }
func (*TreeRef) exprNode()   {}
func (n *TreeRef) String() string { return Print(n) }

func (n *TreeRef) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	if n.Tree == nil {
		return nil, errAvoidReached
	}
	if n.Tree == avoid {
		return nil, errAvoidReached
	}
	return n.Tree.deepCopy(avoid, false)
}
