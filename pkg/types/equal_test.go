package types_test

import (
	"testing"

	"github.com/ToucheSir/mal/pkg/types"
)

func mustMap(t *testing.T, kvs ...types.Value) types.Map {
	t.Helper()
	m, err := types.NewMap(kvs...)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func TestEqual(t *testing.T) {
	one, two := types.NewInt(1), types.NewInt(2)
	atom := types.NewAtom(one)

	tests := []struct {
		name string
		a, b types.Value
		want bool
	}{
		{"ints", one, types.NewInt(1), true},
		{"different ints", one, two, false},
		{"nil", types.NewNil(), types.NewNil(), true},
		{"nil vs false", types.NewNil(), types.NewBool(false), false},
		{"strings", types.NewStr("a"), types.NewStr("a"), true},
		{"string vs keyword", types.NewStr("a"), types.NewKeyword("a"), false},
		{"symbols", types.Intern("x"), types.Intern("x"), true},
		{"list vs vector", types.NewList(one, two), types.NewVector([]types.Value{one, two}), true},
		{"list lengths", types.NewList(one), types.NewList(one, two), false},
		{"nested", types.NewList(types.NewVector([]types.Value{one})), types.NewVector([]types.Value{types.NewList(one)}), true},
		{"empty list vs empty vector", types.NewList(), types.NewVector(nil), true},
		{"maps ignore order",
			mustMap(t, types.NewStr("a"), one, types.NewKeyword("b"), two),
			mustMap(t, types.NewKeyword("b"), two, types.NewStr("a"), one), true},
		{"maps differ", mustMap(t, types.NewStr("a"), one), mustMap(t, types.NewStr("a"), two), false},
		{"atom identity", atom, atom, true},
		{"distinct atoms", atom, types.NewAtom(one), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := types.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}
