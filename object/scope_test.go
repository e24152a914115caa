package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeLookupWalksOutward(t *testing.T) {
	outer := NewFunctionScope(nil)
	outer.Declare("x", NewInt(1))
	inner := NewScope(outer)

	v, ok := inner.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.(*Int).Value())

	_, ok = inner.Get("y")
	assert.False(t, ok)
}

func TestScopeLookupCrossesFunctionBoundaries(t *testing.T) {
	global := NewFunctionScope(nil)
	global.Declare("x", NewInt(42))
	fnScope := NewFunctionScope(global)

	v, ok := fnScope.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(42), v.(*Int).Value())
}

func TestScopeAssignRebindsWithinFunction(t *testing.T) {
	fnScope := NewFunctionScope(nil)
	fnScope.Declare("x", NewInt(1))
	inner := NewScope(fnScope)

	inner.Assign("x", NewInt(2))
	v, _ := fnScope.Get("x")
	assert.Equal(t, int64(2), v.(*Int).Value())
}

func TestScopeAssignDoesNotCrossFunctionBoundary(t *testing.T) {
	global := NewFunctionScope(nil)
	global.Declare("x", NewInt(1))
	fnScope := NewFunctionScope(global)

	// Assignment inside the function shadows rather than rebinding the
	// enclosing binding.
	fnScope.Assign("x", NewInt(2))

	v, _ := global.Get("x")
	assert.Equal(t, int64(1), v.(*Int).Value())
	v, _ = fnScope.Get("x")
	assert.Equal(t, int64(2), v.(*Int).Value())
}

func TestScopeAssignCreatesInnermostBinding(t *testing.T) {
	fnScope := NewFunctionScope(nil)
	inner := NewScope(fnScope)
	inner.Assign("fresh", NewInt(7))

	_, ok := fnScope.vars["fresh"]
	assert.False(t, ok)
	v, ok := inner.Get("fresh")
	require.True(t, ok)
	assert.Equal(t, int64(7), v.(*Int).Value())
}
