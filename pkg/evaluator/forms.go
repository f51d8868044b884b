package evaluator

import (
	"github.com/ToucheSir/mal/pkg/types"
)

// implicitDo turns a body of zero or more forms into a single form.
func implicitDo(body *types.List) types.Value {
	switch body.Len() {
	case 0:
		return types.NewNil()
	case 1:
		return body.First()
	}
	return body.Cons(symDo)
}

func (ev *Evaluator) evalDef(args *types.List, env *types.Env) (types.Value, error) {
	sym, err := defTarget("def!", args)
	if err != nil {
		return nil, err
	}
	val, err := ev.Eval(args.Rest().First(), env)
	if err != nil {
		return nil, err
	}
	return env.Set(sym, val), nil
}

func (ev *Evaluator) evalDefMacro(args *types.List, env *types.Env) (types.Value, error) {
	sym, err := defTarget("defmacro!", args)
	if err != nil {
		return nil, err
	}
	val, err := ev.Eval(args.Rest().First(), env)
	if err != nil {
		return nil, err
	}
	fn, ok := val.(*types.Closure)
	if !ok {
		return nil, types.ShapeError("defmacro! requires a fn* value, got %s", types.TypeName(val))
	}
	macro := *fn
	macro.IsMacro = true
	return env.Set(sym, &macro), nil
}

func defTarget(form string, args *types.List) (*types.Symbol, error) {
	if args.Len() != 2 {
		return nil, types.ShapeError("%s requires a symbol and a value", form)
	}
	sym, ok := args.First().(*types.Symbol)
	if !ok {
		return nil, types.ShapeError("%s requires a symbol, got %s", form, types.TypeName(args.First()))
	}
	return sym, nil
}

// evalLet binds the let* bindings in a fresh child of env and returns the
// body to continue with. Each binding sees the ones before it.
func (ev *Evaluator) evalLet(args *types.List, env *types.Env) (types.Value, *types.Env, error) {
	if args.Empty() {
		return nil, nil, types.ShapeError("let* requires a binding list")
	}
	bindings, ok := types.Items(args.First())
	if !ok {
		return nil, nil, types.ShapeError("let* bindings must be a list or vector, got %s", types.TypeName(args.First()))
	}
	if len(bindings)%2 != 0 {
		return nil, nil, types.ShapeError("let* bindings must come in symbol/value pairs")
	}

	letEnv := types.NewEnv(env)
	for i := 0; i < len(bindings); i += 2 {
		sym, ok := bindings[i].(*types.Symbol)
		if !ok {
			return nil, nil, types.ShapeError("let* can only bind symbols, got %s", types.TypeName(bindings[i]))
		}
		val, err := ev.Eval(bindings[i+1], letEnv)
		if err != nil {
			return nil, nil, err
		}
		letEnv.Set(sym, val)
	}
	return implicitDo(args.Rest()), letEnv, nil
}

func makeClosure(args *types.List, env *types.Env) (types.Value, error) {
	if args.Empty() {
		return nil, types.ShapeError("fn* requires a parameter list")
	}
	params, err := ParseParams(args.First())
	if err != nil {
		return nil, err
	}
	return &types.Closure{
		Params: params,
		Body:   implicitDo(args.Rest()),
		Env:    env,
	}, nil
}

// ParseParams validates a fn* parameter list. The & marker may appear once,
// followed by exactly one symbol.
func ParseParams(v types.Value) ([]*types.Symbol, error) {
	items, ok := types.Items(v)
	if !ok {
		return nil, types.ShapeError("fn* parameters must be a list or vector, got %s", types.TypeName(v))
	}
	params := make([]*types.Symbol, len(items))
	for i, item := range items {
		sym, ok := item.(*types.Symbol)
		if !ok {
			return nil, types.ShapeError("fn* parameters must be symbols, got %s", types.TypeName(item))
		}
		if sym == types.Variadic && i != len(items)-2 {
			return nil, types.ShapeError("& must be followed by exactly one parameter")
		}
		if sym == types.Variadic && items[i+1] == types.Value(types.Variadic) {
			return nil, types.ShapeError("& must be followed by a parameter name")
		}
		params[i] = sym
	}
	return params, nil
}

// evalTry evaluates the protected form of a try*. On success it returns the
// value. When a catch* clause handles a failure it returns the handler body
// and its environment so the caller can continue in tail position.
func (ev *Evaluator) evalTry(args *types.List, env *types.Env) (types.Value, *types.Env, types.Value, error) {
	if args.Empty() || args.Len() > 2 {
		return nil, nil, nil, types.ShapeError("try* requires a form and an optional catch* clause")
	}

	var binding *types.Symbol
	var handler types.Value
	if clause, ok := args.Nth(1); ok {
		sym, body, err := parseCatch(clause)
		if err != nil {
			return nil, nil, nil, err
		}
		binding, handler = sym, body
	}

	ev.emit(TraceTryStart, "", "")
	val, err := ev.Eval(args.First(), env)
	ev.emit(TraceTryEnd, "", "")
	if err == nil {
		return nil, nil, val, nil
	}
	if binding == nil {
		return nil, nil, nil, err
	}

	malErr := types.AsError(err)
	ev.emit(TraceCatch, binding.Name, malErr.Error())
	catchEnv := types.NewEnv(env)
	catchEnv.Set(binding, malErr.Value())
	return handler, catchEnv, nil, nil
}

func parseCatch(clause types.Value) (*types.Symbol, types.Value, error) {
	list, ok := clause.(*types.List)
	if !ok || list.Len() < 2 || list.First() != types.Value(symCatch) {
		return nil, nil, types.ShapeError("try* expects (catch* symbol body...)")
	}
	sym, ok := list.Rest().First().(*types.Symbol)
	if !ok {
		return nil, nil, types.ShapeError("catch* requires a symbol to bind")
	}
	return sym, implicitDo(list.Rest().Rest()), nil
}
