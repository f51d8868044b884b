package reader

import (
	"errors"
	"testing"

	"github.com/ToucheSir/mal/pkg/diagnostics"
	"github.com/ToucheSir/mal/pkg/types"
)

// FuzzRead checks that the reader never panics and that every failure is a
// structured read error.
func FuzzRead(f *testing.F) {
	seeds := []string{
		`(+ 1 2)`,
		`[1 [2 [3]]]`,
		`{:a 1 "b" 2 3 4}`,
		`{:a}`,
		`'x ` + "`" + `(a ~b ~@c)`,
		`^{:m 1} [1 2]`,
		`@a`,
		`(1 2`,
		`)`,
		`"abc`,
		`"a\"b\\c\n"`,
		`99999999999999999999`,
		`-`,
		`:`,
		`~@`,
		"\"\xff\"",
		`; comment only`,
		``,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		forms, err := ReadAll(input, "fuzz.mal")
		if err != nil {
			var malErr *types.Error
			if !errors.As(err, &malErr) || malErr.Code != diagnostics.ERead {
				t.Fatalf("unexpected error for %q: %v", input, err)
			}
			return
		}
		for _, form := range forms {
			if form == nil {
				t.Fatalf("nil form read from %q", input)
			}
		}
	})
}
