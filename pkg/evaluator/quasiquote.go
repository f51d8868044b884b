package evaluator

import (
	"github.com/ToucheSir/mal/pkg/types"
)

// Quasiquote rewrites a quasiquoted form into cons/concat calls. Unquoted
// forms are left for evaluation, spliced forms are concatenated, and
// everything else is quoted.
func Quasiquote(ast types.Value) types.Value {
	seq, ok := asPair(ast)
	if !ok {
		return types.NewList(symQuote, ast)
	}
	if seq.First() == types.Value(symUnquote) {
		return second(seq)
	}

	head := seq.First()
	if inner, ok := asPair(head); ok && inner.First() == types.Value(symSplice) {
		return types.NewList(symConcat, second(inner), Quasiquote(seq.Rest()))
	}
	return types.NewList(symCons, Quasiquote(head), Quasiquote(seq.Rest()))
}

// asPair returns a non-empty list or vector as a list.
func asPair(v types.Value) (*types.List, bool) {
	switch seq := v.(type) {
	case *types.List:
		return seq, !seq.Empty()
	case types.Vector:
		if len(seq.Items) == 0 {
			return nil, false
		}
		return types.NewList(seq.Items...), true
	}
	return nil, false
}

func second(l *types.List) types.Value {
	v, ok := l.Nth(1)
	if !ok {
		return types.NewNil()
	}
	return v
}
