package stdlib

import (
	"fmt"

	"github.com/ToucheSir/mal/pkg/types"
)

func stdlibAtom(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("atom", args, 1); err != nil {
		return nil, err
	}
	return types.NewAtom(args[0]), nil
}

func atomArg(args []types.Value, i int) (*types.Atom, error) {
	a, ok := args[i].(*types.Atom)
	if !ok {
		return nil, fmt.Errorf("argument %d must be an atom, got %s", i+1, types.TypeName(args[i]))
	}
	return a, nil
}

func stdlibDeref(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("deref", args, 1); err != nil {
		return nil, err
	}
	a, err := atomArg(args, 0)
	if err != nil {
		return nil, err
	}
	return a.Value, nil
}

// reset! atom v → v, stored in atom
func stdlibReset(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("reset!", args, 2); err != nil {
		return nil, err
	}
	a, err := atomArg(args, 0)
	if err != nil {
		return nil, err
	}
	a.Value = args[1]
	return a.Value, nil
}

// swap! atom f x... → (f current x...), stored in atom
func stdlibSwap(h Host, args []types.Value) (types.Value, error) {
	if err := checkMinArity("swap!", args, 2); err != nil {
		return nil, err
	}
	a, err := atomArg(args, 0)
	if err != nil {
		return nil, err
	}
	callArgs := make([]types.Value, 0, len(args)-1)
	callArgs = append(callArgs, a.Value)
	callArgs = append(callArgs, args[2:]...)
	v, err := h.Apply(args[1], callArgs)
	if err != nil {
		return nil, err
	}
	a.Value = v
	return v, nil
}

// with-meta x m → copy of x carrying m
func stdlibWithMeta(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("with-meta", args, 2); err != nil {
		return nil, err
	}
	v, ok := types.WithMeta(args[0], args[1])
	if !ok {
		return nil, fmt.Errorf("metadata not supported on %s", types.TypeName(args[0]))
	}
	return v, nil
}

func stdlibMeta(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("meta", args, 1); err != nil {
		return nil, err
	}
	return types.MetaOf(args[0]), nil
}

// throw x → raises x; a surrounding catch* receives it unchanged
func stdlibThrow(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("throw", args, 1); err != nil {
		return nil, err
	}
	return nil, types.Throw(args[0])
}
