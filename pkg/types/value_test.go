package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucheSir/mal/pkg/types"
)

func TestNewValues(t *testing.T) {
	// Ensure all constructors return valid Value implementations
	values := []types.Value{
		types.NewNil(),
		types.NewBool(true),
		types.NewBool(false),
		types.NewInt(42),
		types.NewStr("hello"),
		types.NewKeyword("kw"),
		types.Intern("sym"),
		types.NewList(),
		types.NewVector(nil),
		types.NewAtom(types.NewInt(1)),
	}

	for i, v := range values {
		if v == nil {
			t.Errorf("value %d: got nil", i)
		}
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		value    types.Value
		expected bool
	}{
		{types.NewNil(), false},
		{types.NewBool(false), false},
		{types.NewBool(true), true},
		{types.NewInt(0), true},
		{types.NewStr(""), true},
		{types.NewList(), true},
		{types.NewVector(nil), true},
	}

	for i, tt := range tests {
		got := types.Truthy(tt.value)
		if got != tt.expected {
			t.Errorf("test %d: Truthy(%v) = %v, want %v", i, tt.value, got, tt.expected)
		}
	}
}

func TestInternReturnsSameSymbol(t *testing.T) {
	a := types.Intern("foo")
	b := types.Intern("foo")
	c := types.Intern("bar")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestKeywordAndStringKeysDoNotCollide(t *testing.T) {
	m, err := types.NewMap(
		types.NewKeyword("a"), types.NewInt(1),
		types.NewStr("a"), types.NewInt(2),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	kw, ok := m.Get(types.NewKeyword("a"))
	require.True(t, ok)
	assert.Equal(t, types.NewInt(1), kw)

	str, ok := m.Get(types.NewStr("a"))
	require.True(t, ok)
	assert.Equal(t, types.NewInt(2), str)
}

func TestMapRejectsNonKeys(t *testing.T) {
	_, err := types.NewMap(types.NewInt(1), types.NewInt(2))
	assert.Error(t, err)

	_, err = types.NewMap(types.NewStr("a"))
	assert.Error(t, err)
}

func TestMapAssocDissocArePersistent(t *testing.T) {
	m1, err := types.NewMap(types.NewStr("a"), types.NewInt(1))
	require.NoError(t, err)

	m2, err := m1.Assoc(types.NewStr("b"), types.NewInt(2))
	require.NoError(t, err)
	m3 := m2.Dissoc(types.NewStr("a"))

	assert.Equal(t, 1, m1.Len())
	assert.Equal(t, 2, m2.Len())
	assert.Equal(t, 1, m3.Len())
	_, ok := m3.Get(types.NewStr("a"))
	assert.False(t, ok)
}

func TestMapKeysAreSorted(t *testing.T) {
	m, err := types.NewMap(
		types.NewStr("b"), types.NewInt(2),
		types.NewStr("a"), types.NewInt(1),
		types.NewKeyword("c"), types.NewInt(3),
	)
	require.NoError(t, err)

	keys := m.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, types.NewStr("a"), keys[0])
	assert.Equal(t, types.NewStr("b"), keys[1])
	assert.Equal(t, types.NewKeyword("c"), keys[2])
}

func TestWithMetaLeavesOriginalUntouched(t *testing.T) {
	v := types.NewVector([]types.Value{types.NewInt(1)})
	tagged, ok := types.WithMeta(v, types.NewStr("doc"))
	require.True(t, ok)

	assert.Equal(t, types.NewNil(), types.MetaOf(v))
	assert.Equal(t, types.NewStr("doc"), types.MetaOf(tagged))
	assert.True(t, types.Equal(v, tagged))

	_, ok = types.WithMeta(types.NewInt(1), types.NewNil())
	assert.False(t, ok)
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		value types.Value
		want  string
	}{
		{types.NewNil(), "nil"},
		{types.NewBool(true), "boolean"},
		{types.NewInt(1), "number"},
		{types.NewStr("s"), "string"},
		{types.NewKeyword("k"), "keyword"},
		{types.Intern("s"), "symbol"},
		{types.NewList(), "list"},
		{types.NewVector(nil), "vector"},
		{types.Map{}, "map"},
		{&types.Closure{}, "function"},
		{&types.Closure{IsMacro: true}, "macro"},
		{types.NewAtom(types.NewNil()), "atom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, types.TypeName(tt.value))
	}
}
