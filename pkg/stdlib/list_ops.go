package stdlib

import (
	"fmt"

	"github.com/ToucheSir/mal/pkg/types"
)

func stdlibList(_ Host, args []types.Value) (types.Value, error) {
	return types.NewList(args...), nil
}

func stdlibVector(_ Host, args []types.Value) (types.Value, error) {
	items := make([]types.Value, len(args))
	copy(items, args)
	return types.NewVector(items), nil
}

// vec seq → vector with the same elements
func stdlibVec(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("vec", args, 1); err != nil {
		return nil, err
	}
	if v, ok := args[0].(types.Vector); ok {
		return v, nil
	}
	items, err := seqArg(args, 0)
	if err != nil {
		return nil, err
	}
	return types.NewVector(items), nil
}

func stdlibCount(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("count", args, 1); err != nil {
		return nil, err
	}
	n, err := countOf(args[0])
	if err != nil {
		return nil, err
	}
	return types.NewInt(int64(n)), nil
}

// cons x seq → list whose tail is seq. A list argument is shared, not copied.
func stdlibCons(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("cons", args, 2); err != nil {
		return nil, err
	}
	if l, ok := args[1].(*types.List); ok {
		return l.Cons(args[0]), nil
	}
	items, err := seqArg(args, 1)
	if err != nil {
		return nil, err
	}
	return types.NewList(items...).Cons(args[0]), nil
}

// concat seq... → list of all elements. The last argument's list is reused
// as the tail of the result.
func stdlibConcat(_ Host, args []types.Value) (types.Value, error) {
	if len(args) == 0 {
		return types.EmptyList(), nil
	}
	last := len(args) - 1
	var acc *types.List
	if l, ok := args[last].(*types.List); ok {
		acc = l
	} else {
		items, err := seqArg(args, last)
		if err != nil {
			return nil, err
		}
		acc = types.NewList(items...)
	}
	for i := last - 1; i >= 0; i-- {
		items, err := seqArg(args, i)
		if err != nil {
			return nil, err
		}
		for j := len(items) - 1; j >= 0; j-- {
			acc = acc.Cons(items[j])
		}
	}
	return acc, nil
}

// nth seq i → element i; out of range is an error
func stdlibNth(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("nth", args, 2); err != nil {
		return nil, err
	}
	idx, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	switch s := args[0].(type) {
	case *types.List:
		if v, ok := s.Nth(int(idx)); ok {
			return v, nil
		}
	case types.Vector:
		if idx >= 0 && idx < int64(len(s.Items)) {
			return s.Items[idx], nil
		}
	default:
		return nil, fmt.Errorf("argument 1 must be a list or vector, got %s", types.TypeName(args[0]))
	}
	return nil, fmt.Errorf("index %d out of range", idx)
}

// first seq → first element, nil for nil or an empty sequence
func stdlibFirst(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("first", args, 1); err != nil {
		return nil, err
	}
	if l, ok := args[0].(*types.List); ok {
		return l.First(), nil
	}
	items, err := seqArg(args, 0)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return types.NewNil(), nil
	}
	return items[0], nil
}

// rest seq → list of all but the first element. For a list this is the
// shared tail.
func stdlibRest(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("rest", args, 1); err != nil {
		return nil, err
	}
	if l, ok := args[0].(*types.List); ok {
		return l.Rest(), nil
	}
	items, err := seqArg(args, 0)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return types.EmptyList(), nil
	}
	return types.NewList(items[1:]...), nil
}

// conj coll x... → lists grow at the front, vectors at the back
func stdlibConj(_ Host, args []types.Value) (types.Value, error) {
	if err := checkMinArity("conj", args, 1); err != nil {
		return nil, err
	}
	switch c := args[0].(type) {
	case *types.List:
		for _, v := range args[1:] {
			c = c.Cons(v)
		}
		return c, nil
	case types.Vector:
		items := make([]types.Value, 0, len(c.Items)+len(args)-1)
		items = append(items, c.Items...)
		items = append(items, args[1:]...)
		return types.NewVector(items), nil
	}
	return nil, fmt.Errorf("argument 1 must be a list or vector, got %s", types.TypeName(args[0]))
}

// seq coll → list view of coll, nil when empty. Strings yield one-character
// strings.
func stdlibSeq(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("seq", args, 1); err != nil {
		return nil, err
	}
	switch c := args[0].(type) {
	case types.Nil:
		return c, nil
	case *types.List:
		if c.Empty() {
			return types.NewNil(), nil
		}
		return c, nil
	case types.Vector:
		if len(c.Items) == 0 {
			return types.NewNil(), nil
		}
		return types.NewList(c.Items...), nil
	case types.Str:
		if c.Value == "" {
			return types.NewNil(), nil
		}
		var chars []types.Value
		for _, r := range c.Value {
			chars = append(chars, types.NewStr(string(r)))
		}
		return types.NewList(chars...), nil
	}
	return nil, fmt.Errorf("seq not supported on %s", types.TypeName(args[0]))
}

// apply f x... seq → f called with the xs followed by the elements of seq
func stdlibApply(h Host, args []types.Value) (types.Value, error) {
	if err := checkMinArity("apply", args, 2); err != nil {
		return nil, err
	}
	last := len(args) - 1
	tail, err := seqArg(args, last)
	if err != nil {
		return nil, err
	}
	callArgs := make([]types.Value, 0, last-1+len(tail))
	callArgs = append(callArgs, args[1:last]...)
	callArgs = append(callArgs, tail...)
	return h.Apply(args[0], callArgs)
}

// map f seq → list of f applied to each element
func stdlibMap(h Host, args []types.Value) (types.Value, error) {
	if err := checkArity("map", args, 2); err != nil {
		return nil, err
	}
	items, err := seqArg(args, 1)
	if err != nil {
		return nil, err
	}
	out := make([]types.Value, len(items))
	for i, item := range items {
		v, err := h.Apply(args[0], []types.Value{item})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return types.NewList(out...), nil
}
