package ast

// ClassKind distinguishes a `class` definition from a `module` definition.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindModule
)

func (k ClassKind) String() string {
	if k == ClassKindModule {
		return "module"
	}
	return "class"
}

// ClassDef is a class or module definition: a name, an ordered list of
// ancestors (superclass plus any mixed-in modules, in declaration order),
// and an ordered body of statements.
type ClassDef struct {
	loc       Loc
	Symbol    SymbolRef
	Name      *Ident
	Ancestors []Expression
	Rhs       []Expression
	Kind      ClassKind
}

// NewClassDef constructs a class or module definition.
func NewClassDef(loc Loc, symbol SymbolRef, name *Ident, ancestors, rhs []Expression, kind ClassKind) *ClassDef {
	return &ClassDef{loc: loc, Symbol: symbol, Name: name, Ancestors: ancestors, Rhs: rhs, Kind: kind}
}

func (n *ClassDef) Loc() Loc  { return n.loc }
func (*ClassDef) exprNode()   {}
func (n *ClassDef) String() string { return Print(n) }

func (n *ClassDef) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	name, err := deepCopyOne(n.Name, avoid)
	if err != nil {
		return nil, err
	}
	ancestors, err := deepCopySlice(n.Ancestors, avoid)
	if err != nil {
		return nil, err
	}
	rhs, err := deepCopySlice(n.Rhs, avoid)
	if err != nil {
		return nil, err
	}
	return &ClassDef{
		loc:       n.loc,
		Symbol:    n.Symbol,
		Name:      name.(*Ident),
		Ancestors: ancestors,
		Rhs:       rhs,
		Kind:      n.Kind,
	}, nil
}

// MethodDef is a method definition: a name, ordered parameters (always
// Reference nodes), a body, and whether it is a `self.` (class-level)
// method.
type MethodDef struct {
	loc    Loc
	Symbol SymbolRef
	Name   string
	Args   []Reference
	Body   Expression
	IsSelf bool
}

// NewMethodDef constructs a method definition.
func NewMethodDef(loc Loc, symbol SymbolRef, name string, args []Reference, body Expression, isSelf bool) *MethodDef {
	return &MethodDef{loc: loc, Symbol: symbol, Name: name, Args: args, Body: body, IsSelf: isSelf}
}

func (n *MethodDef) Loc() Loc  { return n.loc }
func (*MethodDef) exprNode()   {}
func (n *MethodDef) String() string { return Print(n) }

func (n *MethodDef) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	args, err := deepCopyReferences(n.Args, avoid)
	if err != nil {
		return nil, err
	}
	body, err := deepCopyOne(n.Body, avoid)
	if err != nil {
		return nil, err
	}
	return &MethodDef{
		loc:    n.loc,
		Symbol: n.Symbol,
		Name:   n.Name,
		Args:   args,
		Body:   body,
		IsSelf: n.IsSelf,
	}, nil
}

// ConstDef binds a constant name (tracked via Symbol) to rhs.
type ConstDef struct {
	loc    Loc
	Symbol SymbolRef
	Rhs    Expression
}

// NewConstDef constructs a constant definition.
func NewConstDef(loc Loc, symbol SymbolRef, rhs Expression) *ConstDef {
	return &ConstDef{loc: loc, Symbol: symbol, Rhs: rhs}
}

func (n *ConstDef) Loc() Loc  { return n.loc }
func (*ConstDef) exprNode()   {}
func (n *ConstDef) String() string { return Print(n) }

func (n *ConstDef) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	rhs, err := deepCopyOne(n.Rhs, avoid)
	if err != nil {
		return nil, err
	}
	return &ConstDef{loc: n.loc, Symbol: n.Symbol, Rhs: rhs}, nil
}
