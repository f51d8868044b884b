package stdlib

import (
	"github.com/ToucheSir/mal/pkg/types"
)

// hash-map k v... → new map; keys must be strings or keywords
func stdlibHashMap(_ Host, args []types.Value) (types.Value, error) {
	m, err := types.NewMap(args...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// assoc m k v... → copy of m with the pairs added
func stdlibAssoc(_ Host, args []types.Value) (types.Value, error) {
	if err := checkMinArity("assoc", args, 1); err != nil {
		return nil, err
	}
	m, err := mapArg(args, 0)
	if err != nil {
		return nil, err
	}
	out, err := m.Assoc(args[1:]...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// dissoc m k... → copy of m without the keys
func stdlibDissoc(_ Host, args []types.Value) (types.Value, error) {
	if err := checkMinArity("dissoc", args, 1); err != nil {
		return nil, err
	}
	m, err := mapArg(args, 0)
	if err != nil {
		return nil, err
	}
	return m.Dissoc(args[1:]...), nil
}

// get m k → value or nil; a nil map behaves as empty
func stdlibGet(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("get", args, 2); err != nil {
		return nil, err
	}
	if types.IsNil(args[0]) {
		return types.NewNil(), nil
	}
	m, err := mapArg(args, 0)
	if err != nil {
		return nil, err
	}
	if v, ok := m.Get(args[1]); ok {
		return v, nil
	}
	return types.NewNil(), nil
}

func stdlibKeys(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("keys", args, 1); err != nil {
		return nil, err
	}
	m, err := mapArg(args, 0)
	if err != nil {
		return nil, err
	}
	return types.NewList(m.Keys()...), nil
}

func stdlibVals(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("vals", args, 1); err != nil {
		return nil, err
	}
	m, err := mapArg(args, 0)
	if err != nil {
		return nil, err
	}
	vals := make([]types.Value, 0, m.Len())
	m.Range(func(_, v types.Value) bool {
		vals = append(vals, v)
		return true
	})
	return types.NewList(vals...), nil
}
