package validator_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ToucheSir/mal/pkg/diagnostics"
	"github.com/ToucheSir/mal/pkg/reader"
	"github.com/ToucheSir/mal/pkg/validator"
)

// helper reads source and validates, returning diagnostics from validation only.
// It fatals on read errors so test cases focus on validator behavior.
func mustReadAndValidate(t *testing.T, source string) []diagnostics.Diagnostic {
	t.Helper()
	forms, err := reader.ReadAll(source, "test.mal")
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	return validator.Validate(forms)
}

// assertNoDiags asserts zero diagnostics were produced.
func assertNoDiags(t *testing.T, diags []diagnostics.Diagnostic) {
	t.Helper()
	if len(diags) != 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Code+": "+d.Message)
		}
		t.Errorf("expected no diagnostics, got %d:\n  %s", len(diags), strings.Join(msgs, "\n  "))
	}
}

// assertDiagCount asserts the expected number of diagnostics.
func assertDiagCount(t *testing.T, diags []diagnostics.Diagnostic, expected int) {
	t.Helper()
	if len(diags) != expected {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Code+": "+d.Message)
		}
		t.Errorf("expected %d diagnostics, got %d:\n  %s", expected, len(diags), strings.Join(msgs, "\n  "))
	}
}

func TestValidProgram(t *testing.T) {
	diags := mustReadAndValidate(t, `
(def! fib (fn* (n) (if (<= n 1) n (+ (fib (- n 1)) (fib (- n 2))))))
(defmacro! unless (fn* (c & body) `+"`"+`(if ~c nil (do ~@body))))
(let* [a 1 b (+ a 1)] (prn a b))
(try* (throw "x") (catch* e (str "caught " e)))
(try* 1)
(fn* [& rest] rest)
{:k (quote (anything goes))}
`)
	assertNoDiags(t, diags)
}

func TestInvalidShapes(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"def! arity", "(def! x)"},
		{"def! target", "(def! 1 2)"},
		{"defmacro! target", `(defmacro! "m" (fn* () 1))`},
		{"if too short", "(if true)"},
		{"if too long", "(if 1 2 3 4)"},
		{"let* bindings type", "(let* x 1)"},
		{"let* odd bindings", "(let* (a 1 b) a)"},
		{"let* non-symbol", "(let* (1 2) 3)"},
		{"fn* params type", "(fn* x x)"},
		{"fn* non-symbol param", "(fn* (a 1) a)"},
		{"fn* dangling &", "(fn* (a &) a)"},
		{"fn* & with two names", "(fn* (& a b) a)"},
		{"quote arity", "(quote a b)"},
		{"try* catch shape", "(try* 1 (finally 2))"},
		{"catch* binding", "(try* 1 (catch* 2 3))"},
		{"try* arity", "(try* 1 (catch* e e) 3)"},
		{"nested", "(do (println (if)))"},
		{"inside vector", "[(def!)]"},
		{"inside unquote", "`(a ~(if))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := mustReadAndValidate(t, tt.source)
			assertDiagCount(t, diags, 1)
			if len(diags) == 1 && diags[0].Code != diagnostics.EShape {
				t.Errorf("expected %s, got %s", diagnostics.EShape, diags[0].Code)
			}
		})
	}
}

func TestQuotedDataIsNotChecked(t *testing.T) {
	assertNoDiags(t, mustReadAndValidate(t, "'(if) `(def! ~'x)"))
}

func TestHintNamesForm(t *testing.T) {
	diags := mustReadAndValidate(t, "(def! a 1)\n(if)")
	assertDiagCount(t, diags, 1)
	if len(diags) == 1 && !strings.Contains(diags[0].Hint, "top-level form 2") {
		t.Errorf("hint should name form 2, got %q", diags[0].Hint)
	}
}

func TestHintTruncatesOnRuneBoundary(t *testing.T) {
	diags := mustReadAndValidate(t, `(if "`+strings.Repeat("é", 40)+`")`)
	assertDiagCount(t, diags, 1)
	if len(diags) != 1 {
		return
	}
	hint := diags[0].Hint
	if !utf8.ValidString(hint) {
		t.Errorf("hint is not valid UTF-8: %q", hint)
	}
	if !strings.HasSuffix(hint, "...") {
		t.Errorf("long form should be abbreviated, got %q", hint)
	}
}
