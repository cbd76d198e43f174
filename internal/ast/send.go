package ast

// Send is a method call: Recv.Fun(Args...) { Block }. Block is nil when the
// call has no block argument.
type Send struct {
	loc   Loc
	Recv  Expression
	Fun   string
	Args  []Expression
	Block *Block
}

// NewSend constructs a method-call node.
func NewSend(loc Loc, recv Expression, fun string, args []Expression, block *Block) *Send {
	return &Send{loc: loc, Recv: recv, Fun: fun, Args: args, Block: block}
}

func (n *Send) Loc() Loc       { return n.loc }
func (*Send) exprNode()        {}
func (n *Send) String() string { return Print(n) }

func (n *Send) deepCopy(avoid Expression, root bool) (Expression, error) {
	if !root && Expression(n) == avoid {
		return nil, errAvoidReached
	}
	recv, err := deepCopyOne(n.Recv, avoid)
	if err != nil {
		return nil, err
	}
	args, err := deepCopySlice(n.Args, avoid)
	if err != nil {
		return nil, err
	}
	var block *Block
	if n.Block != nil {
		clone, err := n.Block.deepCopy(avoid, false)
		if err != nil {
			return nil, err
		}
		block = clone.(*Block)
	}
	return &Send{loc: n.loc, Recv: recv, Fun: n.Fun, Args: args, Block: block}, nil
}

// Block is the `{ |Args| Body }` or `do |Args| Body end` block attached to
// a Send. Symbol starts as NoSymbol at parse time and is filled in by the
// resolver once the block gets its own synthetic method symbol; deepCopy
// copies it explicitly as post-construction state rather than through a
// child clone.
type Block struct {
	loc    Loc
	Args   []Reference
	Body   Expression
	Symbol SymbolRef
}

// NewBlock constructs a block node.
func NewBlock(loc Loc, args []Reference, body Expression) *Block {
	return &Block{loc: loc, Args: args, Body: body}
}

func (n *Block) Loc() Loc       { return n.loc }
func (*Block) exprNode()        {}
func (n *Block) String() string { return Print(n) }

func (n *Block) deepCopy(avoid Expression, root bool) (Expression, error) {
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
	clone := &Block{loc: n.loc, Args: args, Body: body}
	clone.Symbol = n.Symbol
	return clone, nil
}
