// Package evaluator implements the trampolined mal evaluator: special forms,
// closures with tail calls, macro expansion, quasiquote and try*/catch*.
package evaluator

import (
	"fmt"

	"github.com/golang/glog"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/ToucheSir/mal/pkg/printer"
	"github.com/ToucheSir/mal/pkg/types"
)

var (
	symDef      = types.Intern("def!")
	symLet      = types.Intern("let*")
	symDo       = types.Intern("do")
	symIf       = types.Intern("if")
	symFn       = types.Intern("fn*")
	symQuote    = types.Intern("quote")
	symQuasi    = types.Intern("quasiquote")
	symQuasiExp = types.Intern("quasiquoteexpand")
	symDefMacro = types.Intern("defmacro!")
	symMacroExp = types.Intern("macroexpand")
	symTry      = types.Intern("try*")
	symCatch    = types.Intern("catch*")
	symUnquote  = types.Intern("unquote")
	symSplice   = types.Intern("splice-unquote")
	symCons     = types.Intern("cons")
	symConcat   = types.Intern("concat")
)

// Metric names registered by the evaluator.
const (
	MetricSteps           = "eval.steps"
	MetricTailCalls       = "eval.tail_calls"
	MetricMacroExpansions = "eval.macro_expansions"
	MetricPrimitiveCalls  = "eval.primitive_calls"
)

// Evaluator evaluates value trees against environments. It holds no
// per-evaluation state, so one Evaluator serves a whole session.
type Evaluator struct {
	registry metrics.Registry
	trace    func(TraceEvent)

	steps           metrics.Counter
	tailCalls       metrics.Counter
	macroExpansions metrics.Counter
	primitiveCalls  metrics.Counter
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMetrics registers the evaluator counters in r instead of a private
// registry.
func WithMetrics(r metrics.Registry) Option {
	return func(ev *Evaluator) {
		ev.registry = r
	}
}

// WithTrace installs a callback receiving trace events.
func WithTrace(fn func(TraceEvent)) Option {
	return func(ev *Evaluator) {
		ev.trace = fn
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{}
	for _, opt := range opts {
		opt(ev)
	}
	if ev.registry == nil {
		ev.registry = metrics.NewRegistry()
	}
	ev.steps = metrics.GetOrRegisterCounter(MetricSteps, ev.registry)
	ev.tailCalls = metrics.GetOrRegisterCounter(MetricTailCalls, ev.registry)
	ev.macroExpansions = metrics.GetOrRegisterCounter(MetricMacroExpansions, ev.registry)
	ev.primitiveCalls = metrics.GetOrRegisterCounter(MetricPrimitiveCalls, ev.registry)
	return ev
}

// Metrics returns the registry holding the evaluator counters.
func (ev *Evaluator) Metrics() metrics.Registry {
	return ev.registry
}

// Eval evaluates ast in env. Forms in tail position replace the current
// (ast, env) pair instead of recursing, so tail calls run in constant Go
// stack.
func (ev *Evaluator) Eval(ast types.Value, env *types.Env) (types.Value, error) {
	for {
		ev.steps.Inc(1)

		if _, ok := ast.(*types.List); !ok {
			return ev.evalAst(ast, env)
		}
		expanded, err := ev.MacroExpand(ast, env)
		if err != nil {
			return nil, err
		}
		list, ok := expanded.(*types.List)
		if !ok {
			return ev.evalAst(expanded, env)
		}
		if list.Empty() {
			return list, nil
		}
		args := list.Rest()

		if head, ok := list.First().(*types.Symbol); ok {
			switch head {
			case symDef:
				return ev.evalDef(args, env)

			case symLet:
				body, letEnv, err := ev.evalLet(args, env)
				if err != nil {
					return nil, err
				}
				ast, env = body, letEnv
				continue

			case symDo:
				if args.Empty() {
					return types.NewNil(), nil
				}
				for l := args; l.Len() > 1; l = l.Rest() {
					if _, err := ev.Eval(l.First(), env); err != nil {
						return nil, err
					}
				}
				last, _ := args.Nth(args.Len() - 1)
				ast = last
				continue

			case symIf:
				if args.Len() < 2 || args.Len() > 3 {
					return nil, types.ShapeError("if requires a condition, a consequent and an optional alternative")
				}
				cond, err := ev.Eval(args.First(), env)
				if err != nil {
					return nil, err
				}
				if types.Truthy(cond) {
					ast, _ = args.Nth(1)
				} else if alt, ok := args.Nth(2); ok {
					ast = alt
				} else {
					return types.NewNil(), nil
				}
				continue

			case symFn:
				return makeClosure(args, env)

			case symQuote:
				if args.Len() != 1 {
					return nil, types.ShapeError("quote requires exactly one form")
				}
				return args.First(), nil

			case symQuasiExp:
				if args.Len() != 1 {
					return nil, types.ShapeError("quasiquoteexpand requires exactly one form")
				}
				return Quasiquote(args.First()), nil

			case symQuasi:
				if args.Len() != 1 {
					return nil, types.ShapeError("quasiquote requires exactly one form")
				}
				ast = Quasiquote(args.First())
				continue

			case symDefMacro:
				return ev.evalDefMacro(args, env)

			case symMacroExp:
				if args.Len() != 1 {
					return nil, types.ShapeError("macroexpand requires exactly one form")
				}
				return ev.MacroExpand(args.First(), env)

			case symTry:
				next, nextEnv, result, err := ev.evalTry(args, env)
				if err != nil || next == nil {
					return result, err
				}
				ast, env = next, nextEnv
				continue
			}
		}

		fn, err := ev.Eval(list.First(), env)
		if err != nil {
			return nil, err
		}
		vals, err := ev.evalList(args, env)
		if err != nil {
			return nil, err
		}

		switch f := fn.(type) {
		case *types.Closure:
			fnEnv, err := types.Bind(f.Env, f.Params, vals)
			if err != nil {
				return nil, err
			}
			ev.tailCalls.Inc(1)
			ev.emit(TraceTailCall, "", "")
			ast, env = f.Body, fnEnv
		case *types.Func:
			return ev.callPrimitive(f, vals)
		default:
			return nil, notCallable(fn)
		}
	}
}

// Apply calls fn with already evaluated arguments. Unlike calls made from
// Eval, the closure body is not in tail position of any enclosing loop.
func (ev *Evaluator) Apply(fn types.Value, args []types.Value) (types.Value, error) {
	switch f := fn.(type) {
	case *types.Closure:
		fnEnv, err := types.Bind(f.Env, f.Params, args)
		if err != nil {
			return nil, err
		}
		return ev.Eval(f.Body, fnEnv)
	case *types.Func:
		return ev.callPrimitive(f, args)
	}
	return nil, notCallable(fn)
}

func (ev *Evaluator) callPrimitive(f *types.Func, args []types.Value) (types.Value, error) {
	ev.primitiveCalls.Inc(1)
	ev.emit(TracePrimitive, f.Name, "")
	v, err := f.Fn(args)
	if err != nil {
		return nil, types.HostError(f.Name, err)
	}
	return v, nil
}

func notCallable(v types.Value) error {
	return types.HostError("", fmt.Errorf("cannot apply %s %s", types.TypeName(v), printer.Render(v, true)))
}

// evalAst evaluates a form that is not a list application.
func (ev *Evaluator) evalAst(ast types.Value, env *types.Env) (types.Value, error) {
	switch v := ast.(type) {
	case *types.Symbol:
		return env.Get(v)
	case types.Vector:
		items := make([]types.Value, len(v.Items))
		for i, item := range v.Items {
			val, err := ev.Eval(item, env)
			if err != nil {
				return nil, err
			}
			items[i] = val
		}
		return types.NewVector(items), nil
	case types.Map:
		kvs := make([]types.Value, 0, 2*v.Len())
		var evalErr error
		v.Range(func(k, item types.Value) bool {
			val, err := ev.Eval(item, env)
			if err != nil {
				evalErr = err
				return false
			}
			kvs = append(kvs, k, val)
			return true
		})
		if evalErr != nil {
			return nil, evalErr
		}
		return types.NewMap(kvs...)
	}
	return ast, nil
}

func (ev *Evaluator) evalList(l *types.List, env *types.Env) ([]types.Value, error) {
	vals := make([]types.Value, 0, l.Len())
	for ; !l.Empty(); l = l.Rest() {
		v, err := ev.Eval(l.First(), env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// MacroExpand repeatedly expands ast while its head symbol names a macro in
// env. Non-macro forms are returned unchanged.
func (ev *Evaluator) MacroExpand(ast types.Value, env *types.Env) (types.Value, error) {
	for {
		macro, ok := macroCall(ast, env)
		if !ok {
			return ast, nil
		}
		list := ast.(*types.List)
		name := list.First().(*types.Symbol).Name
		ev.macroExpansions.Inc(1)
		if glog.V(3) {
			glog.Infof("macroexpand %s", printer.Render(ast, true))
		}
		expanded, err := ev.Apply(macro, list.Rest().Slice())
		if err != nil {
			return nil, err
		}
		ev.emit(TraceMacroExpand, name, printer.Render(expanded, true))
		ast = expanded
	}
}

func macroCall(ast types.Value, env *types.Env) (*types.Closure, bool) {
	list, ok := ast.(*types.List)
	if !ok || list.Empty() {
		return nil, false
	}
	sym, ok := list.First().(*types.Symbol)
	if !ok {
		return nil, false
	}
	owner := env.Find(sym)
	if owner == nil {
		return nil, false
	}
	v, _ := owner.Get(sym)
	c, ok := v.(*types.Closure)
	if !ok || !c.IsMacro {
		return nil, false
	}
	return c, true
}
