package ast

// ArraySplat is a `*expr` splat used inside an Array literal or a Send's
// argument list.
type ArraySplat struct {
	loc  Loc
	Arg  Expression
}

func NewArraySplat(loc Loc, arg Expression) *ArraySplat { return &ArraySplat{loc: loc, Arg: arg} }
func (n *ArraySplat) Loc() Loc                          { return n.loc }
func (*ArraySplat) exprNode()                           {}
func (n *ArraySplat) String() string                    { return Print(n) }

func (n *ArraySplat) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	arg, err := deepCopyOne(n.Arg, avoid)
	if err != nil {
		return nil, err
	}
	return &ArraySplat{loc: n.loc, Arg: arg}, nil
}

// HashSplat is a `**expr` double-splat used inside a Hash literal or a
// Send's keyword-argument list.
type HashSplat struct {
	loc Loc
	Arg Expression
}

func NewHashSplat(loc Loc, arg Expression) *HashSplat { return &HashSplat{loc: loc, Arg: arg} }
func (n *HashSplat) Loc() Loc                         { return n.loc }
func (*HashSplat) exprNode()                          {}
func (n *HashSplat) String() string                   { return Print(n) }

func (n *HashSplat) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	arg, err := deepCopyOne(n.Arg, avoid)
	if err != nil {
		return nil, err
	}
	return &HashSplat{loc: n.loc, Arg: arg}, nil
}

// ZSuperArgs marks a bare `super` call (no parens): forward the enclosing
// method's own arguments unchanged. It carries no payload of its own.
type ZSuperArgs struct {
	loc Loc
}

func NewZSuperArgs(loc Loc) *ZSuperArgs { return &ZSuperArgs{loc: loc} }
func (n *ZSuperArgs) Loc() Loc          { return n.loc }
func (*ZSuperArgs) exprNode()           {}
func (n *ZSuperArgs) String() string    { return Print(n) }

func (n *ZSuperArgs) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	return &ZSuperArgs{loc: n.loc}, nil
}
