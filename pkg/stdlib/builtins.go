package stdlib

import (
	"fmt"

	"github.com/ToucheSir/mal/pkg/types"
)

// RegisterDefaults adds all primitive functions.
func RegisterDefaults(r *Registry) {
	// Math
	r.Register(Fn{Name: "+", Execute: stdlibAdd})
	r.Register(Fn{Name: "-", Execute: stdlibSub})
	r.Register(Fn{Name: "*", Execute: stdlibMul})
	r.Register(Fn{Name: "/", Execute: stdlibDiv})
	r.Register(Fn{Name: "<", Execute: compareWith("<", func(a, b int64) bool { return a < b })})
	r.Register(Fn{Name: "<=", Execute: compareWith("<=", func(a, b int64) bool { return a <= b })})
	r.Register(Fn{Name: ">", Execute: compareWith(">", func(a, b int64) bool { return a > b })})
	r.Register(Fn{Name: ">=", Execute: compareWith(">=", func(a, b int64) bool { return a >= b })})
	r.Register(Fn{Name: "time-ms", Execute: stdlibTimeMs})

	// Predicates
	r.Register(Fn{Name: "=", Execute: stdlibEq})
	r.Register(Fn{Name: "nil?", Execute: stdlibIsNil})
	r.Register(Fn{Name: "true?", Execute: stdlibIsTrue})
	r.Register(Fn{Name: "false?", Execute: stdlibIsFalse})
	r.Register(Fn{Name: "symbol?", Execute: typePredicate("symbol?", "symbol")})
	r.Register(Fn{Name: "keyword?", Execute: typePredicate("keyword?", "keyword")})
	r.Register(Fn{Name: "string?", Execute: typePredicate("string?", "string")})
	r.Register(Fn{Name: "number?", Execute: typePredicate("number?", "number")})
	r.Register(Fn{Name: "list?", Execute: typePredicate("list?", "list")})
	r.Register(Fn{Name: "vector?", Execute: typePredicate("vector?", "vector")})
	r.Register(Fn{Name: "map?", Execute: typePredicate("map?", "map")})
	r.Register(Fn{Name: "atom?", Execute: typePredicate("atom?", "atom")})
	r.Register(Fn{Name: "fn?", Execute: stdlibIsFn})
	r.Register(Fn{Name: "macro?", Execute: typePredicate("macro?", "macro")})
	r.Register(Fn{Name: "sequential?", Execute: stdlibIsSequential})
	r.Register(Fn{Name: "empty?", Execute: stdlibIsEmpty})
	r.Register(Fn{Name: "contains?", Execute: stdlibContains})

	// Sequence ops
	r.Register(Fn{Name: "list", Execute: stdlibList})
	r.Register(Fn{Name: "vector", Execute: stdlibVector})
	r.Register(Fn{Name: "vec", Execute: stdlibVec})
	r.Register(Fn{Name: "count", Execute: stdlibCount})
	r.Register(Fn{Name: "cons", Execute: stdlibCons})
	r.Register(Fn{Name: "concat", Execute: stdlibConcat})
	r.Register(Fn{Name: "nth", Execute: stdlibNth})
	r.Register(Fn{Name: "first", Execute: stdlibFirst})
	r.Register(Fn{Name: "rest", Execute: stdlibRest})
	r.Register(Fn{Name: "conj", Execute: stdlibConj})
	r.Register(Fn{Name: "seq", Execute: stdlibSeq})
	r.Register(Fn{Name: "apply", Execute: stdlibApply})
	r.Register(Fn{Name: "map", Execute: stdlibMap})

	// Map ops
	r.Register(Fn{Name: "hash-map", Execute: stdlibHashMap})
	r.Register(Fn{Name: "assoc", Execute: stdlibAssoc})
	r.Register(Fn{Name: "dissoc", Execute: stdlibDissoc})
	r.Register(Fn{Name: "get", Execute: stdlibGet})
	r.Register(Fn{Name: "keys", Execute: stdlibKeys})
	r.Register(Fn{Name: "vals", Execute: stdlibVals})

	// String and I/O ops
	r.Register(Fn{Name: "symbol", Execute: stdlibSymbol})
	r.Register(Fn{Name: "keyword", Execute: stdlibKeyword})
	r.Register(Fn{Name: "pr-str", Execute: stdlibPrStr})
	r.Register(Fn{Name: "str", Execute: stdlibStr})
	r.Register(Fn{Name: "prn", Execute: stdlibPrn})
	r.Register(Fn{Name: "println", Execute: stdlibPrintln})
	r.Register(Fn{Name: "read-string", Execute: stdlibReadString})
	r.Register(Fn{Name: "slurp", Execute: stdlibSlurp})
	r.Register(Fn{Name: "readline", Execute: stdlibReadline})

	// Atoms, metadata and exceptions
	r.Register(Fn{Name: "atom", Execute: stdlibAtom})
	r.Register(Fn{Name: "deref", Execute: stdlibDeref})
	r.Register(Fn{Name: "reset!", Execute: stdlibReset})
	r.Register(Fn{Name: "swap!", Execute: stdlibSwap})
	r.Register(Fn{Name: "with-meta", Execute: stdlibWithMeta})
	r.Register(Fn{Name: "meta", Execute: stdlibMeta})
	r.Register(Fn{Name: "throw", Execute: stdlibThrow})
}

func checkArity(name string, args []types.Value, n int) error {
	if len(args) != n {
		return types.ArityError("%s: wrong number of arguments: expected %d, got %d", name, n, len(args))
	}
	return nil
}

func checkMinArity(name string, args []types.Value, n int) error {
	if len(args) < n {
		return types.ArityError("%s: wrong number of arguments: expected at least %d, got %d", name, n, len(args))
	}
	return nil
}

func intArg(args []types.Value, i int) (int64, error) {
	n, ok := args[i].(types.Int)
	if !ok {
		return 0, fmt.Errorf("argument %d must be a number, got %s", i+1, types.TypeName(args[i]))
	}
	return n.Value, nil
}

func strArg(args []types.Value, i int) (string, error) {
	s, ok := args[i].(types.Str)
	if !ok {
		return "", fmt.Errorf("argument %d must be a string, got %s", i+1, types.TypeName(args[i]))
	}
	return s.Value, nil
}

// seqArg returns the elements of a list or vector. nil counts as empty.
func seqArg(args []types.Value, i int) ([]types.Value, error) {
	if types.IsNil(args[i]) {
		return nil, nil
	}
	items, ok := types.Items(args[i])
	if !ok {
		return nil, fmt.Errorf("argument %d must be a list or vector, got %s", i+1, types.TypeName(args[i]))
	}
	return items, nil
}

func mapArg(args []types.Value, i int) (types.Map, error) {
	m, ok := args[i].(types.Map)
	if !ok {
		return types.Map{}, fmt.Errorf("argument %d must be a map, got %s", i+1, types.TypeName(args[i]))
	}
	return m, nil
}
