package ast

// UnresolvedKind classifies an identifier the namer has not yet bound to a
// symbol: which of the four variable namespaces it lives in.
type UnresolvedKind int

const (
	UnresolvedLocal UnresolvedKind = iota
	UnresolvedInstance
	UnresolvedClass
	UnresolvedGlobal
)

func (k UnresolvedKind) String() string {
	switch k {
	case UnresolvedInstance:
		return "instance"
	case UnresolvedClass:
		return "class"
	case UnresolvedGlobal:
		return "global"
	default:
		return "local"
	}
}

// Ident is a resolved reference to a symbol (a class, method, or constant
// already bound by the namer).
type Ident struct {
	loc    Loc
	Symbol SymbolRef
}

func NewIdent(loc Loc, symbol SymbolRef) *Ident { return &Ident{loc: loc, Symbol: symbol} }
func (n *Ident) Loc() Loc                       { return n.loc }
func (*Ident) exprNode()                        {}
func (*Ident) referenceNode()                   {}
func (n *Ident) String() string                 { return Print(n) }
func (n *Ident) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	return &Ident{loc: n.loc, Symbol: n.Symbol}, nil
}

// Local is a resolved reference to a local-variable binding.
type Local struct {
	loc Loc
	Var LocalVar
}

func NewLocal(loc Loc, v LocalVar) *Local { return &Local{loc: loc, Var: v} }
func (n *Local) Loc() Loc                 { return n.loc }
func (*Local) exprNode()                  {}
func (*Local) referenceNode()             {}
func (n *Local) String() string           { return Print(n) }
func (n *Local) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	return &Local{loc: n.loc, Var: n.Var}, nil
}

// UnresolvedIdent is a bare name the namer has not yet resolved to a
// symbol or local, tagged with which namespace it was parsed from.
type UnresolvedIdent struct {
	loc  Loc
	Kind UnresolvedKind
	Name string
}

func NewUnresolvedIdent(loc Loc, kind UnresolvedKind, name string) *UnresolvedIdent {
	return &UnresolvedIdent{loc: loc, Kind: kind, Name: name}
}
func (n *UnresolvedIdent) Loc() Loc  { return n.loc }
func (*UnresolvedIdent) exprNode()   {}
func (*UnresolvedIdent) referenceNode() {}
func (n *UnresolvedIdent) String() string { return Print(n) }
func (n *UnresolvedIdent) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	return &UnresolvedIdent{loc: n.loc, Kind: n.Kind, Name: n.Name}, nil
}

// RestArg, KeywordArg, BlockArg and ShadowArg all wrap a single inner
// Reference: `*rest`, `key:`, `&blk` and `; shadowed` parameters
// respectively. They stay distinct kinds because each carries different
// calling-convention semantics downstream even though their AST shape is
// identical.

type RestArg struct {
	loc   Loc
	Inner Reference
}

func NewRestArg(loc Loc, inner Reference) *RestArg { return &RestArg{loc: loc, Inner: inner} }
func (n *RestArg) Loc() Loc                        { return n.loc }
func (*RestArg) exprNode()                         {}
func (*RestArg) referenceNode()                    {}
func (n *RestArg) String() string                  { return Print(n) }
func (n *RestArg) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	inner, err := deepCopyReference(n.Inner, avoid)
	if err != nil {
		return nil, err
	}
	return &RestArg{loc: n.loc, Inner: inner}, nil
}

type KeywordArg struct {
	loc   Loc
	Inner Reference
}

func NewKeywordArg(loc Loc, inner Reference) *KeywordArg { return &KeywordArg{loc: loc, Inner: inner} }
func (n *KeywordArg) Loc() Loc                           { return n.loc }
func (*KeywordArg) exprNode()                            {}
func (*KeywordArg) referenceNode()                       {}
func (n *KeywordArg) String() string                     { return Print(n) }
func (n *KeywordArg) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	inner, err := deepCopyReference(n.Inner, avoid)
	if err != nil {
		return nil, err
	}
	return &KeywordArg{loc: n.loc, Inner: inner}, nil
}

type BlockArg struct {
	loc   Loc
	Inner Reference
}

func NewBlockArg(loc Loc, inner Reference) *BlockArg { return &BlockArg{loc: loc, Inner: inner} }
func (n *BlockArg) Loc() Loc                         { return n.loc }
func (*BlockArg) exprNode()                          {}
func (*BlockArg) referenceNode()                     {}
func (n *BlockArg) String() string                   { return Print(n) }
func (n *BlockArg) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	inner, err := deepCopyReference(n.Inner, avoid)
	if err != nil {
		return nil, err
	}
	return &BlockArg{loc: n.loc, Inner: inner}, nil
}

type ShadowArg struct {
	loc   Loc
	Inner Reference
}

func NewShadowArg(loc Loc, inner Reference) *ShadowArg { return &ShadowArg{loc: loc, Inner: inner} }
func (n *ShadowArg) Loc() Loc                          { return n.loc }
func (*ShadowArg) exprNode()                           {}
func (*ShadowArg) referenceNode()                      {}
func (n *ShadowArg) String() string                    { return Print(n) }
func (n *ShadowArg) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	inner, err := deepCopyReference(n.Inner, avoid)
	if err != nil {
		return nil, err
	}
	return &ShadowArg{loc: n.loc, Inner: inner}, nil
}

// OptionalArg is a parameter with a default value expression.
type OptionalArg struct {
	loc     Loc
	Inner   Reference
	Default Expression
}

func NewOptionalArg(loc Loc, inner Reference, def Expression) *OptionalArg {
	return &OptionalArg{loc: loc, Inner: inner, Default: def}
}
func (n *OptionalArg) Loc() Loc      { return n.loc }
func (*OptionalArg) exprNode()       {}
func (*OptionalArg) referenceNode()  {}
func (n *OptionalArg) String() string { return Print(n) }
func (n *OptionalArg) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	inner, err := deepCopyReference(n.Inner, avoid)
	if err != nil {
		return nil, err
	}
	def, err := deepCopyOne(n.Default, avoid)
	if err != nil {
		return nil, err
	}
	return &OptionalArg{loc: n.loc, Inner: inner, Default: def}, nil
}
