package types

// Variadic is the parameter marker that binds the following symbol to the
// remaining arguments.
var Variadic = Intern("&")

// Env is a scoped environment for variable bindings.
// It supports outer-chained lookup for lexical scoping.
type Env struct {
	bindings map[*Symbol]Value
	outer    *Env
}

// NewEnv creates a new environment with an optional outer scope.
func NewEnv(outer *Env) *Env {
	return &Env{
		bindings: make(map[*Symbol]Value),
		outer:    outer,
	}
}

// Bind creates a child of outer binding params to args positionally. After
// the & marker the next symbol receives a list of the remaining arguments,
// which is the empty list when none remain.
func Bind(outer *Env, params []*Symbol, args []Value) (*Env, error) {
	env := NewEnv(outer)
	for i, p := range params {
		if p == Variadic {
			if i+1 >= len(params) {
				return nil, ShapeError("'&' must be followed by a parameter name")
			}
			if len(args) < i {
				return nil, ArityError("wrong number of arguments: expected at least %d, got %d", i, len(args))
			}
			for j := 0; j < i; j++ {
				env.Set(params[j], args[j])
			}
			env.Set(params[i+1], NewList(args[i:]...))
			return env, nil
		}
	}
	if len(args) != len(params) {
		return nil, ArityError("wrong number of arguments: expected %d, got %d", len(params), len(args))
	}
	for i, p := range params {
		env.Set(p, args[i])
	}
	return env, nil
}

// Set binds sym in this scope, replacing any existing local binding.
func (e *Env) Set(sym *Symbol, val Value) Value {
	e.bindings[sym] = val
	return val
}

// Find returns the innermost scope binding sym, or nil.
func (e *Env) Find(sym *Symbol) *Env {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.bindings[sym]; ok {
			return env
		}
	}
	return nil
}

// Get looks up sym, traversing outer scopes.
func (e *Env) Get(sym *Symbol) (Value, error) {
	env := e.Find(sym)
	if env == nil {
		return nil, LookupError(sym.Name)
	}
	return env.bindings[sym], nil
}
