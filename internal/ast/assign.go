package ast

// Assign binds Rhs to Lhs, an lvalue Reference (Local, Ident, or one of the
// Unresolved* kinds before the namer runs).
type Assign struct {
	loc      Loc
	Lhs      Reference
	Rhs      Expression
}

// NewAssign constructs an assignment node.
func NewAssign(loc Loc, lhs Reference, rhs Expression) *Assign {
	return &Assign{loc: loc, Lhs: lhs, Rhs: rhs}
}

func (n *Assign) Loc() Loc        { return n.loc }
func (*Assign) exprNode()         {}
func (n *Assign) String() string  { return Print(n) }

func (n *Assign) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	lhs, err := deepCopyReference(n.Lhs, avoid)
	if err != nil {
		return nil, err
	}
	rhs, err := deepCopyOne(n.Rhs, avoid)
	if err != nil {
		return nil, err
	}
	return &Assign{loc: n.loc, Lhs: lhs, Rhs: rhs}, nil
}
