package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucheSir/mal/pkg/diagnostics"
	"github.com/ToucheSir/mal/pkg/types"
)

func syms(names ...string) []*types.Symbol {
	out := make([]*types.Symbol, len(names))
	for i, n := range names {
		out[i] = types.Intern(n)
	}
	return out
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var malErr *types.Error
	require.True(t, errors.As(err, &malErr), "expected *types.Error, got %T", err)
	return malErr.Code
}

func TestEnvGetWalksOuter(t *testing.T) {
	root := types.NewEnv(nil)
	root.Set(types.Intern("x"), types.NewInt(1))
	child := types.NewEnv(root)

	v, err := child.Get(types.Intern("x"))
	require.NoError(t, err)
	assert.Equal(t, types.NewInt(1), v)
	assert.Same(t, root, child.Find(types.Intern("x")))
}

func TestEnvShadowing(t *testing.T) {
	root := types.NewEnv(nil)
	root.Set(types.Intern("x"), types.NewInt(1))
	inner := types.NewEnv(root)
	inner.Set(types.Intern("x"), types.NewInt(2))
	sibling := types.NewEnv(root)

	v, _ := inner.Get(types.Intern("x"))
	assert.Equal(t, types.NewInt(2), v)
	v, _ = sibling.Get(types.Intern("x"))
	assert.Equal(t, types.NewInt(1), v)
}

func TestEnvLookupError(t *testing.T) {
	env := types.NewEnv(nil)
	_, err := env.Get(types.Intern("missing"))
	require.Error(t, err)
	assert.Equal(t, diagnostics.ELookup, errCode(t, err))
	assert.Equal(t, "'missing' not found", err.Error())
	assert.Nil(t, env.Find(types.Intern("missing")))
}

func TestBindPositional(t *testing.T) {
	env, err := types.Bind(nil, syms("a", "b"), []types.Value{types.NewInt(1), types.NewInt(2)})
	require.NoError(t, err)

	b, _ := env.Get(types.Intern("b"))
	assert.Equal(t, types.NewInt(2), b)
}

func TestBindVariadicEmpty(t *testing.T) {
	env, err := types.Bind(nil, syms("a", "&", "rest"), []types.Value{types.NewInt(1)})
	require.NoError(t, err)

	a, _ := env.Get(types.Intern("a"))
	assert.Equal(t, types.NewInt(1), a)

	rest, _ := env.Get(types.Intern("rest"))
	l, ok := rest.(*types.List)
	require.True(t, ok, "rest should be a list, got %T", rest)
	assert.True(t, l.Empty())
}

func TestBindVariadicCollects(t *testing.T) {
	env, err := types.Bind(nil, syms("&", "xs"), []types.Value{types.NewInt(1), types.NewInt(2)})
	require.NoError(t, err)

	xs, _ := env.Get(types.Intern("xs"))
	assert.True(t, types.Equal(types.NewList(types.NewInt(1), types.NewInt(2)), xs))
}

func TestBindArityErrors(t *testing.T) {
	tests := []struct {
		name   string
		params []*types.Symbol
		args   []types.Value
	}{
		{"too few", syms("a", "b"), []types.Value{types.NewInt(1)}},
		{"too many", syms("a"), []types.Value{types.NewInt(1), types.NewInt(2)}},
		{"too few before variadic", syms("a", "b", "&", "c"), []types.Value{types.NewInt(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.Bind(nil, tt.params, tt.args)
			require.Error(t, err)
			assert.Equal(t, diagnostics.EArity, errCode(t, err))
		})
	}
}
