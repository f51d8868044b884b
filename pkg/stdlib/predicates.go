package stdlib

import (
	"fmt"
	"unicode/utf8"

	"github.com/ToucheSir/mal/pkg/types"
)

// = a b → deep equality; lists and vectors with equal elements are equal
func stdlibEq(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("=", args, 2); err != nil {
		return nil, err
	}
	return types.NewBool(types.Equal(args[0], args[1])), nil
}

func stdlibIsNil(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("nil?", args, 1); err != nil {
		return nil, err
	}
	return types.NewBool(types.IsNil(args[0])), nil
}

func stdlibIsTrue(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("true?", args, 1); err != nil {
		return nil, err
	}
	b, ok := args[0].(types.Bool)
	return types.NewBool(ok && b.Value), nil
}

func stdlibIsFalse(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("false?", args, 1); err != nil {
		return nil, err
	}
	b, ok := args[0].(types.Bool)
	return types.NewBool(ok && !b.Value), nil
}

// typePredicate builds a one-argument predicate comparing types.TypeName.
func typePredicate(name, typeName string) func(Host, []types.Value) (types.Value, error) {
	return func(_ Host, args []types.Value) (types.Value, error) {
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		return types.NewBool(types.TypeName(args[0]) == typeName), nil
	}
}

// fn? x → true for primitives and non-macro closures
func stdlibIsFn(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("fn?", args, 1); err != nil {
		return nil, err
	}
	switch f := args[0].(type) {
	case *types.Func:
		return types.NewBool(true), nil
	case *types.Closure:
		return types.NewBool(!f.IsMacro), nil
	}
	return types.NewBool(false), nil
}

func stdlibIsSequential(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("sequential?", args, 1); err != nil {
		return nil, err
	}
	return types.NewBool(types.IsSequential(args[0])), nil
}

// empty? coll → true for nil and empty sequences, maps and strings
func stdlibIsEmpty(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("empty?", args, 1); err != nil {
		return nil, err
	}
	n, err := countOf(args[0])
	if err != nil {
		return nil, err
	}
	return types.NewBool(n == 0), nil
}

// contains? map key → key presence
func stdlibContains(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("contains?", args, 2); err != nil {
		return nil, err
	}
	if types.IsNil(args[0]) {
		return types.NewBool(false), nil
	}
	m, err := mapArg(args, 0)
	if err != nil {
		return nil, err
	}
	_, ok := m.Get(args[1])
	return types.NewBool(ok), nil
}

func countOf(v types.Value) (int, error) {
	switch c := v.(type) {
	case types.Nil:
		return 0, nil
	case *types.List:
		return c.Len(), nil
	case types.Vector:
		return len(c.Items), nil
	case types.Map:
		return c.Len(), nil
	case types.Str:
		return utf8.RuneCountInString(c.Value), nil
	}
	return 0, fmt.Errorf("count not supported on %s", types.TypeName(v))
}
