package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefineAlwaysCurrentScope(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Integer{Value: 1})
	inner := NewEnclosedEnvironment(outer)
	inner.Define("x", &Integer{Value: 2})

	innerVal, ok := inner.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(2), innerVal.(*Integer).Value, "inner scope define should shadow")

	outerVal, ok := outer.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(1), outerVal.(*Integer).Value, "outer scope should be untouched by inner define")
}

func TestSetUpdatesNearestExistingBinding(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", &Integer{Value: 1})
	inner := NewEnclosedEnvironment(outer)

	inner.Set("x", &Integer{Value: 99})

	outerVal, ok := outer.Get("x")
	require.True(t, ok)
	require.Equal(t, int64(99), outerVal.(*Integer).Value, "set should mutate the outer scope's existing binding")

	_, shadowed := inner.store["x"]
	require.False(t, shadowed, "set must not create a shadow binding in the inner scope")
}

func TestSetDefinesInCurrentScopeWhenAbsentEverywhere(t *testing.T) {
	env := NewEnvironment()
	env.Set("fresh", &Integer{Value: 7})
	v, ok := env.Get("fresh")
	require.True(t, ok)
	require.Equal(t, int64(7), v.(*Integer).Value)
}

func TestForceSetGlobalWritesRootAndMarksOverride(t *testing.T) {
	root := NewEnvironment()
	child := NewEnclosedEnvironment(root)
	grandchild := NewEnclosedEnvironment(child)

	grandchild.ForceSetGlobal("g", &Integer{Value: 5})

	v, ok := root.Get("g")
	require.True(t, ok)
	require.Equal(t, int64(5), v.(*Integer).Value, "force_set_global must write at the root")
	require.True(t, grandchild.IsOverridden("g"), "force_set_global must mark the entry overridden")
}

func TestGetWalksChainToGlobal(t *testing.T) {
	root := NewEnvironment()
	root.Define("shared", &String{Value: "from root"})
	leaf := NewEnclosedEnvironment(NewEnclosedEnvironment(root))

	v, ok := leaf.Get("shared")
	require.True(t, ok)
	require.Equal(t, "from root", v.(*String).Value, "get should walk the full chain")

	_, ok = leaf.Get("missing")
	require.False(t, ok, "get on an undefined name should report not-found")
}
