package formatter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucheSir/mal/pkg/formatter"
	"github.com/ToucheSir/mal/pkg/reader"
	"github.com/ToucheSir/mal/pkg/types"
)

func TestFormat(t *testing.T) {
	forms, err := reader.ReadAll("(def! a   1)\n\n\n[1    2]", "fmt.mal")
	require.NoError(t, err)
	assert.Equal(t, "(def! a 1)\n[1 2]\n", formatter.Format(forms))
}

func TestFormatBreaksLongForms(t *testing.T) {
	src := `(def! long-function-name (fn* (alpha beta gamma) (if (> alpha beta) (+ alpha gamma) (- beta gamma))))`
	forms, err := reader.ReadAll(src, "fmt.mal")
	require.NoError(t, err)

	out := formatter.Format(forms)
	assert.Greater(t, strings.Count(out, "\n"), 1)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 80, line)
	}

	back, err := reader.ReadAll(out, "fmt.mal")
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.True(t, types.Equal(forms[0], back[0]))
}

func TestHasComments(t *testing.T) {
	assert.True(t, formatter.HasComments("; header\n(+ 1 2)"))
	assert.True(t, formatter.HasComments("(+ 1 2) ; trailing"))
	assert.False(t, formatter.HasComments(`(str "a;b")`))
	assert.False(t, formatter.HasComments(`(str "a\";b")`))
	assert.False(t, formatter.HasComments("(+ 1 2)"))
}
