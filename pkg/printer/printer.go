// Package printer renders mal values as text.
package printer

import (
	"strconv"
	"strings"

	"github.com/ToucheSir/mal/pkg/types"
)

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Render returns the printed form of v. When readably is set, strings are
// quoted and escaped so the output reads back as an equal value.
func Render(v types.Value, readably bool) string {
	var sb strings.Builder
	write(&sb, v, readably)
	return sb.String()
}

// Join renders each value and joins the results with sep.
func Join(vals []types.Value, sep string, readably bool) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = Render(v, readably)
	}
	return strings.Join(parts, sep)
}

func write(sb *strings.Builder, v types.Value, readably bool) {
	switch val := v.(type) {
	case nil, types.Nil:
		sb.WriteString("nil")
	case types.Bool:
		sb.WriteString(strconv.FormatBool(val.Value))
	case types.Int:
		sb.WriteString(strconv.FormatInt(val.Value, 10))
	case types.Str:
		if readably {
			sb.WriteByte('"')
			sb.WriteString(escaper.Replace(val.Value))
			sb.WriteByte('"')
		} else {
			sb.WriteString(val.Value)
		}
	case types.Keyword:
		sb.WriteByte(':')
		sb.WriteString(val.Name)
	case *types.Symbol:
		sb.WriteString(val.Name)
	case *types.List:
		writeSeq(sb, "(", ")", val.Slice(), readably)
	case types.Vector:
		writeSeq(sb, "[", "]", val.Items, readably)
	case types.Map:
		sb.WriteByte('{')
		first := true
		val.Range(func(k, item types.Value) bool {
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			write(sb, k, readably)
			sb.WriteByte(' ')
			write(sb, item, readably)
			return true
		})
		sb.WriteByte('}')
	case *types.Closure:
		if val.IsMacro {
			sb.WriteString("#<macro>")
		} else {
			sb.WriteString("#<function>")
		}
	case *types.Func:
		sb.WriteString("#<function>")
	case *types.Atom:
		sb.WriteString("(atom ")
		write(sb, val.Value, readably)
		sb.WriteByte(')')
	default:
		sb.WriteString("#<unknown>")
	}
}

func writeSeq(sb *strings.Builder, open, close string, items []types.Value, readably bool) {
	sb.WriteString(open)
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		write(sb, item, readably)
	}
	sb.WriteString(close)
}
