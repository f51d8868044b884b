// Package formatter lays out mal source code in a canonical form.
package formatter

import (
	"strings"

	"github.com/ToucheSir/mal/pkg/printer"
	"github.com/ToucheSir/mal/pkg/types"
)

const (
	indent   = "  "
	maxWidth = 80
)

// Format pretty-prints top-level forms back to source code. Forms that fit
// on one line stay flat; longer lists keep their head on the opening line
// and indent the remaining elements.
func Format(forms []types.Value) string {
	lines := make([]string, len(forms))
	for i, f := range forms {
		lines[i] = formatForm(f, 0)
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatForm(v types.Value, depth int) string {
	flat := printer.Render(v, true)
	if len(indent)*depth+len(flat) <= maxWidth {
		return flat
	}
	prefix := strings.Repeat(indent, depth+1)
	switch val := v.(type) {
	case *types.List:
		items := val.Slice()
		if len(items) == 0 {
			return flat
		}
		parts := []string{"(" + formatForm(items[0], depth+1)}
		for _, item := range items[1:] {
			parts = append(parts, prefix+formatForm(item, depth+1))
		}
		return strings.Join(parts, "\n") + ")"
	case types.Vector:
		if len(val.Items) == 0 {
			return flat
		}
		parts := []string{"[" + formatForm(val.Items[0], depth+1)}
		for _, item := range val.Items[1:] {
			parts = append(parts, prefix+formatForm(item, depth+1))
		}
		return strings.Join(parts, "\n") + "]"
	case types.Map:
		var parts []string
		val.Range(func(k, item types.Value) bool {
			entry := printer.Render(k, true) + " " + formatForm(item, depth+1)
			if len(parts) == 0 {
				parts = append(parts, "{"+entry)
			} else {
				parts = append(parts, prefix+entry)
			}
			return true
		})
		return strings.Join(parts, "\n") + "}"
	}
	return flat
}

// HasComments reports whether source contains a ; comment outside a string
// literal. Comments are not preserved by Format.
func HasComments(source string) bool {
	inString := false
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\\':
			if inString {
				i++
			}
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return true
			}
		}
	}
	return false
}
