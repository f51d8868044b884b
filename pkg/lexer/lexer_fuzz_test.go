package lexer

import (
	"strings"
	"testing"
)

// FuzzTokenize feeds random inputs to the lexer to catch panics and
// non-terminating scans.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		`(+ 1 2)`,
		`[1 2 3] {:a 1 "b" 2}`,
		`'a ` + "`" + `(a ~b ~@c) @x ^{:m 1} [1]`,
		`"hello" "with\nescape" "quote\""`,
		`; comment`,
		`,,, a,b`,
		``,
		`   `,
		"\t\n\r",
		`"unterminated`,
		`"\`,
		`~@`,
		`~`,
		`"é" λ`,
		"\xff\xfe",
		`(def! fib (fn* (n) (if (<= n 1) n (+ (fib (- n 1)) (fib (- n 2))))))`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tokens := Tokenize(input, "fuzz.mal")
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokEOF {
			t.Fatalf("token stream must end with EOF")
		}
		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Value == "" {
				t.Fatalf("empty token of type %v", tok.Type)
			}
			if !strings.Contains(input, tok.Value) {
				t.Fatalf("token %q is not a substring of the input", tok.Value)
			}
		}
	})
}
