package ast

// RescueCase is a single `rescue ExcA, ExcB => var` clause inside a Rescue.
type RescueCase struct {
	loc        Loc
	Exceptions []Expression
	Var        Reference
	Body       Expression
}

// NewRescueCase constructs a rescue clause.
func NewRescueCase(loc Loc, exceptions []Expression, v Reference, body Expression) *RescueCase {
	return &RescueCase{loc: loc, Exceptions: exceptions, Var: v, Body: body}
}

func (n *RescueCase) Loc() Loc  { return n.loc }
func (*RescueCase) exprNode()   {}
func (n *RescueCase) String() string { return Print(n) }

func (n *RescueCase) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	exceptions, err := deepCopySlice(n.Exceptions, avoid)
	if err != nil {
		return nil, err
	}
	v, err := deepCopyReference(n.Var, avoid)
	if err != nil {
		return nil, err
	}
	body, err := deepCopyOne(n.Body, avoid)
	if err != nil {
		return nil, err
	}
	return &RescueCase{loc: n.loc, Exceptions: exceptions, Var: v, Body: body}, nil
}

// Rescue is a `begin ... rescue ... else ... ensure ... end` block.
type Rescue struct {
	loc         Loc
	Body        Expression
	RescueCases []*RescueCase
	Else_       Expression
	Ensure      Expression
}

// NewRescue constructs a rescue/ensure block.
func NewRescue(loc Loc, body Expression, cases []*RescueCase, else_, ensure Expression) *Rescue {
	return &Rescue{loc: loc, Body: body, RescueCases: cases, Else_: else_, Ensure: ensure}
}

func (n *Rescue) Loc() Loc  { return n.loc }
func (*Rescue) exprNode()   {}
func (n *Rescue) String() string { return Print(n) }

func (n *Rescue) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	body, err := deepCopyOne(n.Body, avoid)
	if err != nil {
		return nil, err
	}
	cases, err := deepCopyRescueCases(n.RescueCases, avoid)
	if err != nil {
		return nil, err
	}
	else_, err := deepCopyOne(n.Else_, avoid)
	if err != nil {
		return nil, err
	}
	ensure, err := deepCopyOne(n.Ensure, avoid)
	if err != nil {
		return nil, err
	}
	return &Rescue{loc: n.loc, Body: body, RescueCases: cases, Else_: else_, Ensure: ensure}, nil
}
