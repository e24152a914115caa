package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sovereign-lang/sovereign/errz"
)

func TestListAppendMutatesInPlace(t *testing.T) {
	list := NewList([]Value{NewInt(1)})
	alias := list
	list.Append(NewInt(2))

	assert.Equal(t, 2, alias.Len())
	assert.Equal(t, "[1, 2]", alias.Inspect())
}

func TestListInspect(t *testing.T) {
	assert.Equal(t, "[]", NewList(nil).Inspect())
	list := NewList([]Value{NewInt(1), NewString("x"), True})
	assert.Equal(t, `[1, "x", true]`, list.Inspect())
}

func TestNamespaceKeysSorted(t *testing.T) {
	ns := NewNamespace(map[string]Value{
		"stdout": NewString("hi"),
		"code":   NewInt(0),
		"stderr": NewString(""),
	})
	assert.Equal(t, []string{"code", "stderr", "stdout"}, ns.Keys())
	assert.Equal(t, `{code: 0, stderr: "", stdout: "hi"}`, ns.Inspect())
}

func TestSetMembership(t *testing.T) {
	s, err := NewSet([]Value{NewInt(1), NewInt(2), NewInt(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(NewInt(1)))
	assert.False(t, s.Contains(NewInt(3)))
}

func TestSetRejectsUnhashableMembers(t *testing.T) {
	_, err := NewSet([]Value{NewList(nil)})
	require.Error(t, err)
	assert.True(t, errz.IsKind(err, errz.Type))
}

func TestIsTruthy(t *testing.T) {
	assert.True(t, NewInt(1).IsTruthy())
	assert.False(t, NewInt(0).IsTruthy())
	assert.True(t, NewString("x").IsTruthy())
	assert.False(t, NewString("").IsTruthy())
	assert.True(t, NewList([]Value{Unit}).IsTruthy())
	assert.False(t, NewList(nil).IsTruthy())
	assert.False(t, Unit.IsTruthy())
	assert.False(t, Hole.IsTruthy())
}
