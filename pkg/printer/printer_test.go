package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucheSir/mal/pkg/printer"
	"github.com/ToucheSir/mal/pkg/reader"
	"github.com/ToucheSir/mal/pkg/types"
)

func TestRenderScalars(t *testing.T) {
	tests := []struct {
		value    types.Value
		readably string
		plain    string
	}{
		{types.NewNil(), "nil", "nil"},
		{types.NewBool(true), "true", "true"},
		{types.NewInt(-7), "-7", "-7"},
		{types.NewStr("a\"b\\c\nd"), `"a\"b\\c\nd"`, "a\"b\\c\nd"},
		{types.NewKeyword("kw"), ":kw", ":kw"},
		{types.Intern("sym"), "sym", "sym"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.readably, printer.Render(tt.value, true))
		assert.Equal(t, tt.plain, printer.Render(tt.value, false))
	}
}

func TestRenderCollections(t *testing.T) {
	m, err := types.NewMap(types.NewStr("b"), types.NewInt(2), types.NewKeyword("a"), types.NewStr("x"))
	require.NoError(t, err)

	tests := []struct {
		value types.Value
		want  string
	}{
		{types.NewList(), "()"},
		{types.NewVector(nil), "[]"},
		{types.NewList(types.NewInt(1), types.NewVector([]types.Value{types.NewInt(2)})), "(1 [2])"},
		{m, `{"b" 2 :a "x"}`},
		{types.NewAtom(types.NewInt(5)), "(atom 5)"},
		{&types.Closure{}, "#<function>"},
		{&types.Closure{IsMacro: true}, "#<macro>"},
		{&types.Func{Name: "+"}, "#<function>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, printer.Render(tt.value, true))
	}
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		`(1 2 (3 4) [5 6])`,
		`"with \"quotes\" and \\ and \n newline"`,
		`{:a [1 2] "b" {:c nil}}`,
		`(quote (a :b "c" true false nil -1))`,
		`()`,
		`[]`,
		`{}`,
	}
	for _, src := range sources {
		v, err := reader.Read(src)
		require.NoError(t, err, src)

		printed := printer.Render(v, true)
		back, err := reader.Read(printed)
		require.NoError(t, err, printed)
		assert.True(t, types.Equal(v, back), "round trip of %s gave %s", src, printed)
	}
}

func TestJoin(t *testing.T) {
	vals := []types.Value{types.NewStr("a"), types.NewInt(1)}
	assert.Equal(t, `"a" 1`, printer.Join(vals, " ", true))
	assert.Equal(t, "a1", printer.Join(vals, "", false))
}
