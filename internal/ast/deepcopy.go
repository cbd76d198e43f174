package ast

import "errors"

// errAvoidReached is DeepCopyError: the non-value signal used internally to
// unwind a clone that reached the caller's forbidden subtree. It never
// escapes this package — DeepCopy and DeepCopyAvoiding catch it once at the
// public boundary and turn it into a nil result.
var errAvoidReached = errors.New("ast: deep copy reached avoided subtree")

// DeepCopy returns a structurally independent clone of tree, or nil if
// tree is nil or the clone fails. This is the common case of
// DeepCopyAvoiding: avoid defaults to tree itself, so a TreeRef anywhere
// below tree that points back at tree's own address aborts the clone (the
// top level itself is exempt, since root is skipped for the entry node), as
// does a TreeRef with no referent.
func DeepCopy(tree Expression) Expression {
	if tree == nil {
		return nil
	}
	return DeepCopyAvoiding(tree, tree)
}

// DeepCopyAvoiding clones tree, failing (returning nil) if avoid is
// encountered anywhere below the root — including through a TreeRef
// indirection. avoid is compared by identity, not structural equality; do
// not generalize this to a set of avoided nodes, callers rely on the
// single-pointer identity check.
func DeepCopyAvoiding(tree Expression, avoid Expression) Expression {
	if tree == nil {
		return nil
	}
	clone, err := tree.deepCopy(avoid, true)
	if err != nil {
		return nil
	}
	return clone
}

func deepCopySlice(items []Expression, avoid Expression) ([]Expression, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]Expression, len(items))
	for i, item := range items {
		clone, err := item.deepCopy(avoid, false)
		if err != nil {
			return nil, err
		}
		out[i] = clone
	}
	return out, nil
}

func deepCopyReferences(items []Reference, avoid Expression) ([]Reference, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]Reference, len(items))
	for i, item := range items {
		clone, err := item.deepCopy(avoid, false)
		if err != nil {
			return nil, err
		}
		ref, ok := AsReference(clone)
		if !ok {
			panic("ast: reference kind cloned into a non-reference node")
		}
		out[i] = ref
	}
	return out, nil
}

func deepCopyReference(item Reference, avoid Expression) (Reference, error) {
	if item == nil {
		return nil, nil
	}
	clone, err := item.deepCopy(avoid, false)
	if err != nil {
		return nil, err
	}
	ref, ok := AsReference(clone)
	if !ok {
		panic("ast: reference kind cloned into a non-reference node")
	}
	return ref, nil
}

func deepCopyOne(item Expression, avoid Expression) (Expression, error) {
	if item == nil {
		return nil, nil
	}
	return item.deepCopy(avoid, false)
}

func deepCopyRescueCases(items []*RescueCase, avoid Expression) ([]*RescueCase, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]*RescueCase, len(items))
	for i, item := range items {
		clone, err := item.deepCopy(avoid, false)
		if err != nil {
			return nil, err
		}
		out[i] = clone.(*RescueCase)
	}
	return out, nil
}
