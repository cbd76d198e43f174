package ast

// CastKind distinguishes the four type-annotation call forms the checker
// recognizes: `let`, `cast`, `assert_type!` and `T.must`.
type CastKind int

const (
	CastLet CastKind = iota
	CastCast
	CastAssertType
	CastMust
)

func (k CastKind) String() string {
	switch k {
	case CastCast:
		return "cast"
	case CastAssertType:
		return "assert_type!"
	case CastMust:
		return "must"
	default:
		return "let"
	}
}

// Cast wraps Arg with a type annotation of the given Kind. TypeExpr is the
// syntactic type expression as written (T.nilable(String), etc); the
// checker resolves it, it is not interpreted here.
type Cast struct {
	loc      Loc
	Arg      Expression
	TypeExpr Expression
	Kind     CastKind
}

// NewCast constructs a cast/annotation node.
func NewCast(loc Loc, arg, typeExpr Expression, kind CastKind) *Cast {
	return &Cast{loc: loc, Arg: arg, TypeExpr: typeExpr, Kind: kind}
}

func (n *Cast) Loc() Loc       { return n.loc }
func (*Cast) exprNode()        {}
func (n *Cast) String() string { return Print(n) }

func (n *Cast) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	arg, err := deepCopyOne(n.Arg, avoid)
	if err != nil {
		return nil, err
	}
	typeExpr, err := deepCopyOne(n.TypeExpr, avoid)
	if err != nil {
		return nil, err
	}
	return &Cast{loc: n.loc, Arg: arg, TypeExpr: typeExpr, Kind: n.Kind}, nil
}
