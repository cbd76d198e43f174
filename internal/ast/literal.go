package ast

// LiteralKind tags the Go value stored in a Literal node.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralSymbol
	LiteralBool
	LiteralNil
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	case LiteralSymbol:
		return "symbol"
	case LiteralBool:
		return "bool"
	case LiteralNil:
		return "nil"
	default:
		return "int"
	}
}

// Literal is a scalar literal: an int, float, string, symbol, bool or nil.
// Value holds the corresponding Go value (int64, float64, string, string,
// bool, or nil respectively) and is never mutated after construction, so
// deepCopy can share it directly instead of cloning.
type Literal struct {
	loc   Loc
	Kind  LiteralKind
	Value any
}

// NewLiteral constructs a scalar literal node.
func NewLiteral(loc Loc, kind LiteralKind, value any) *Literal {
	return &Literal{loc: loc, Kind: kind, Value: value}
}

func (n *Literal) Loc() Loc       { return n.loc }
func (*Literal) exprNode()        {}
func (n *Literal) String() string { return Print(n) }

func (n *Literal) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	return &Literal{loc: n.loc, Kind: n.Kind, Value: n.Value}, nil
}

// ConstantLit is a reference to a scoped constant path, e.g. `A::B::C`,
// prior to namer resolution collapsing it into an Ident or
// UnresolvedIdent. Scope is *EmptyTree for a bare top-level constant.
type ConstantLit struct {
	loc   Loc
	Scope Expression
	Name  string
}

// NewConstantLit constructs a constant-path node.
func NewConstantLit(loc Loc, scope Expression, name string) *ConstantLit {
	return &ConstantLit{loc: loc, Scope: scope, Name: name}
}

func (n *ConstantLit) Loc() Loc       { return n.loc }
func (*ConstantLit) exprNode()        {}
func (n *ConstantLit) String() string { return Print(n) }

func (n *ConstantLit) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	scope, err := deepCopyOne(n.Scope, avoid)
	if err != nil {
		return nil, err
	}
	return &ConstantLit{loc: n.loc, Scope: scope, Name: n.Name}, nil
}
