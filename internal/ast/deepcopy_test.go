package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testLoc() Loc { return Loc{File: 1, Start: 0, End: 1} }

func TestDeepCopyProducesIndependentTree(t *testing.T) {
	inner := NewSelf(testLoc())
	send := NewSend(testLoc(), inner, "foo", nil, nil)

	clone := DeepCopy(send)
	require.NotNil(t, clone)
	cloneSend, ok := As[*Send](clone)
	require.True(t, ok)
	require.NotSame(t, send, cloneSend)
	require.NotSame(t, send.Recv, cloneSend.Recv)
	require.Equal(t, "foo", cloneSend.Fun)
}

func TestDeepCopyAvoidingFailsWhenAvoidReachable(t *testing.T) {
	ident := NewIdent(testLoc(), 42)
	send := NewSend(testLoc(), ident, "bar", []Expression{ident}, nil)

	clone := DeepCopyAvoiding(send, ident)
	require.Nil(t, clone)
}

func TestDeepCopyAvoidingSkipsRootLevelCheck(t *testing.T) {
	ident := NewIdent(testLoc(), 7)

	clone := DeepCopyAvoiding(ident, ident)
	require.NotNil(t, clone)
	cloneIdent, ok := As[*Ident](clone)
	require.True(t, ok)
	require.NotSame(t, ident, cloneIdent)
	require.Equal(t, ident.Symbol, cloneIdent.Symbol)
}

func TestDeepCopyCollapsesTreeRefIndirection(t *testing.T) {
	target := NewSelf(testLoc())
	ref := NewTreeRef(testLoc(), target)
	send := NewSend(testLoc(), ref, "baz", nil, nil)

	clone := DeepCopy(send)
	require.NotNil(t, clone)
	cloneSend, ok := As[*Send](clone)
	require.True(t, ok)

	_, isRef := cloneSend.Recv.(*TreeRef)
	require.False(t, isRef, "TreeRef indirection must collapse in the copy")
	_, isSelf := cloneSend.Recv.(*Self)
	require.True(t, isSelf)
}

func TestDeepCopyTreeRefFailsWhenReferentIsAvoid(t *testing.T) {
	target := NewSelf(testLoc())
	ref := NewTreeRef(testLoc(), target)
	send := NewSend(testLoc(), ref, "baz", nil, nil)

	clone := DeepCopyAvoiding(send, target)
	require.Nil(t, clone)
}

func TestDeepCopyTreeRefFailsWhenReferentNil(t *testing.T) {
	ref := NewTreeRef(testLoc(), nil)
	clone := DeepCopy(ref)
	require.Nil(t, clone)
}

func TestDeepCopyNilTreeReturnsNil(t *testing.T) {
	require.Nil(t, DeepCopy(nil))
}

func TestDeepCopyEmptyTreeSucceeds(t *testing.T) {
	empty := NewEmptyTree(testLoc())
	clone := DeepCopy(empty)
	require.NotNil(t, clone)
	_, ok := As[*EmptyTree](clone)
	require.True(t, ok)
}

func TestCastAndIs(t *testing.T) {
	var e Expression = NewSelf(testLoc())
	require.True(t, Is[*Self](e))
	require.False(t, Is[*Ident](e))

	self, ok := As[*Self](e)
	require.True(t, ok)
	require.NotNil(t, self)

	_, ok = As[*Ident](e)
	require.False(t, ok)
}

func TestAsReference(t *testing.T) {
	var e Expression = NewIdent(testLoc(), 1)
	ref, ok := AsReference(e)
	require.True(t, ok)
	require.NotNil(t, ref)

	e = NewSelf(testLoc())
	_, ok = AsReference(e)
	require.False(t, ok)
}
