package stdlib

import (
	"errors"
	"time"

	"github.com/ToucheSir/mal/pkg/types"
)

var errDivideByZero = errors.New("division by zero")

// + → sum of all arguments, 0 when none
func stdlibAdd(_ Host, args []types.Value) (types.Value, error) {
	var sum int64
	for i := range args {
		n, err := intArg(args, i)
		if err != nil {
			return nil, err
		}
		sum += n
	}
	return types.NewInt(sum), nil
}

// - x → negation; - x y... → x minus the rest
func stdlibSub(_ Host, args []types.Value) (types.Value, error) {
	if err := checkMinArity("-", args, 1); err != nil {
		return nil, err
	}
	acc, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return types.NewInt(-acc), nil
	}
	for i := 1; i < len(args); i++ {
		n, err := intArg(args, i)
		if err != nil {
			return nil, err
		}
		acc -= n
	}
	return types.NewInt(acc), nil
}

// * → product of all arguments, 1 when none
func stdlibMul(_ Host, args []types.Value) (types.Value, error) {
	prod := int64(1)
	for i := range args {
		n, err := intArg(args, i)
		if err != nil {
			return nil, err
		}
		prod *= n
	}
	return types.NewInt(prod), nil
}

// / x y... → integer division truncating toward zero
func stdlibDiv(_ Host, args []types.Value) (types.Value, error) {
	if err := checkMinArity("/", args, 2); err != nil {
		return nil, err
	}
	acc, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		n, err := intArg(args, i)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, errDivideByZero
		}
		acc /= n
	}
	return types.NewInt(acc), nil
}

func compareWith(name string, cmp func(a, b int64) bool) func(Host, []types.Value) (types.Value, error) {
	return func(_ Host, args []types.Value) (types.Value, error) {
		if err := checkArity(name, args, 2); err != nil {
			return nil, err
		}
		a, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		return types.NewBool(cmp(a, b)), nil
	}
}

// time-ms → milliseconds since the Unix epoch
func stdlibTimeMs(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("time-ms", args, 0); err != nil {
		return nil, err
	}
	return types.NewInt(time.Now().UnixMilli()), nil
}
