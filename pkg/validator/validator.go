// Package validator implements static shape checks of mal special forms.
package validator

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ToucheSir/mal/pkg/diagnostics"
	"github.com/ToucheSir/mal/pkg/evaluator"
	"github.com/ToucheSir/mal/pkg/printer"
	"github.com/ToucheSir/mal/pkg/types"
)

// argCounts holds the allowed argument counts of fixed-shape special forms.
// A max of -1 means unbounded.
var argCounts = map[string][2]int{
	"def!":             {2, 2},
	"defmacro!":        {2, 2},
	"let*":             {1, -1},
	"fn*":              {1, -1},
	"if":               {2, 3},
	"quote":            {1, 1},
	"quasiquote":       {1, 1},
	"quasiquoteexpand": {1, 1},
	"macroexpand":      {1, 1},
	"try*":             {1, 2},
}

type validator struct {
	diags []diagnostics.Diagnostic
	form  int
}

// Validate checks the special forms in a program without evaluating it.
// Quoted data is not inspected.
func Validate(forms []types.Value) []diagnostics.Diagnostic {
	v := &validator{}
	for i, form := range forms {
		v.form = i + 1
		v.validateForm(form)
	}
	return v.diags
}

func (v *validator) addDiag(msg string, form types.Value) {
	hint := fmt.Sprintf("in top-level form %d: %s", v.form, abbreviate(printer.Render(form, true)))
	v.diags = append(v.diags, diagnostics.MakeDiag(diagnostics.EShape, msg, nil, hint))
}

func abbreviate(s string) string {
	const limit = 60
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func (v *validator) validateForm(form types.Value) {
	switch f := form.(type) {
	case *types.List:
		v.validateList(f)
	case types.Vector:
		v.validateAll(f.Items)
	case types.Map:
		f.Range(func(_, val types.Value) bool {
			v.validateForm(val)
			return true
		})
	}
}

func (v *validator) validateAll(forms []types.Value) {
	for _, f := range forms {
		v.validateForm(f)
	}
}

func (v *validator) validateList(l *types.List) {
	if l.Empty() {
		return
	}
	head, ok := l.First().(*types.Symbol)
	if !ok {
		v.validateAll(l.Slice())
		return
	}
	args := l.Rest().Slice()

	if counts, ok := argCounts[head.Name]; ok {
		if len(args) < counts[0] || (counts[1] >= 0 && len(args) > counts[1]) {
			v.addDiag(fmt.Sprintf("%s takes %s, got %d", head.Name, describeCounts(counts), len(args)), l)
			return
		}
	}

	switch head.Name {
	case "quote":
		// data
	case "quasiquote":
		v.validateUnquoted(args[0])
	case "def!", "defmacro!":
		if _, ok := args[0].(*types.Symbol); !ok {
			v.addDiag(fmt.Sprintf("%s requires a symbol, got %s", head.Name, types.TypeName(args[0])), l)
		}
		v.validateForm(args[1])
	case "let*":
		v.validateBindings(args[0], l)
		v.validateAll(args[1:])
	case "fn*":
		if _, err := evaluator.ParseParams(args[0]); err != nil {
			v.addDiag(errorMessage(err), l)
		}
		v.validateAll(args[1:])
	case "try*":
		v.validateForm(args[0])
		if len(args) == 2 {
			v.validateCatch(args[1], l)
		}
	default:
		v.validateAll(args)
	}
}

func describeCounts(c [2]int) string {
	switch {
	case c[1] < 0:
		return fmt.Sprintf("at least %d argument(s)", c[0])
	case c[0] == c[1]:
		return fmt.Sprintf("exactly %d argument(s)", c[0])
	}
	return fmt.Sprintf("%d to %d arguments", c[0], c[1])
}

func (v *validator) validateBindings(bindings types.Value, form *types.List) {
	items, ok := types.Items(bindings)
	if !ok {
		v.addDiag(fmt.Sprintf("let* bindings must be a list or vector, got %s", types.TypeName(bindings)), form)
		return
	}
	if len(items)%2 != 0 {
		v.addDiag("let* bindings must come in symbol/value pairs", form)
		return
	}
	for i := 0; i < len(items); i += 2 {
		if _, ok := items[i].(*types.Symbol); !ok {
			v.addDiag(fmt.Sprintf("let* can only bind symbols, got %s", types.TypeName(items[i])), form)
		}
		v.validateForm(items[i+1])
	}
}

func (v *validator) validateCatch(clause types.Value, form *types.List) {
	l, ok := clause.(*types.List)
	if !ok || l.Len() < 2 || l.First() != types.Value(types.Intern("catch*")) {
		v.addDiag("try* expects (catch* symbol body...)", form)
		return
	}
	if _, ok := l.Rest().First().(*types.Symbol); !ok {
		v.addDiag("catch* requires a symbol to bind", form)
	}
	v.validateAll(l.Rest().Rest().Slice())
}

// validateUnquoted walks quasiquoted data and validates only the forms that
// will be evaluated.
func (v *validator) validateUnquoted(form types.Value) {
	items, ok := types.Items(form)
	if !ok || len(items) == 0 {
		return
	}
	if sym, ok := items[0].(*types.Symbol); ok && (sym.Name == "unquote" || sym.Name == "splice-unquote") {
		if len(items) != 2 {
			v.addDiag(fmt.Sprintf("%s takes exactly 1 argument(s), got %d", sym.Name, len(items)-1), form)
			return
		}
		v.validateForm(items[1])
		return
	}
	for _, item := range items {
		v.validateUnquoted(item)
	}
}

func errorMessage(err error) string {
	var malErr *types.Error
	if errors.As(err, &malErr) {
		return malErr.Message
	}
	return err.Error()
}
