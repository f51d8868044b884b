// Package reader turns mal source text into value trees.
package reader

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ToucheSir/mal/pkg/diagnostics"
	"github.com/ToucheSir/mal/pkg/lexer"
	"github.com/ToucheSir/mal/pkg/types"
)

var macroSymbols = map[lexer.TokenType]*types.Symbol{
	lexer.TokQuote:         types.Intern("quote"),
	lexer.TokQuasiquote:    types.Intern("quasiquote"),
	lexer.TokUnquote:       types.Intern("unquote"),
	lexer.TokSpliceUnquote: types.Intern("splice-unquote"),
	lexer.TokDeref:         types.Intern("deref"),
	lexer.TokMeta:          types.Intern("with-meta"),
}

var closers = map[lexer.TokenType]string{
	lexer.TokRParen:   ")",
	lexer.TokRBracket: "]",
	lexer.TokRBrace:   "}",
}

type reader struct {
	tokens []lexer.Token
	pos    int
}

func newReader(source, filename string) *reader {
	return &reader{tokens: lexer.Tokenize(source, filename)}
}

func (r *reader) current() lexer.Token {
	if r.pos >= len(r.tokens) {
		return r.tokens[len(r.tokens)-1] // EOF
	}
	return r.tokens[r.pos]
}

func (r *reader) advance() lexer.Token {
	tok := r.current()
	if r.pos < len(r.tokens)-1 {
		r.pos++
	}
	return tok
}

func (r *reader) atEOF() bool {
	return r.current().Type == lexer.TokEOF
}

// Read returns the first complete form in text. Text holding no form reads
// as nil; anything after the first form is ignored.
func Read(text string) (types.Value, error) {
	r := newReader(text, "<input>")
	if r.atEOF() {
		return types.NewNil(), nil
	}
	return r.readForm()
}

// ReadAll returns every top-level form in source.
func ReadAll(source, filename string) ([]types.Value, error) {
	r := newReader(source, filename)
	var forms []types.Value
	for !r.atEOF() {
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// IsIncomplete reports whether err was caused by input ending inside a form,
// so more input could complete it.
func IsIncomplete(err error) bool {
	var malErr *types.Error
	return errors.As(err, &malErr) && malErr.Code == diagnostics.ERead && malErr.Incomplete
}

func incomplete(span diagnostics.Span, format string, args ...any) *types.Error {
	err := types.ReadError(&span, format, args...)
	err.Incomplete = true
	return err
}

func (r *reader) readForm() (types.Value, error) {
	tok := r.current()
	switch tok.Type {
	case lexer.TokEOF:
		return nil, incomplete(tok.Span, "unexpected EOF")
	case lexer.TokLParen:
		items, err := r.readSeq(lexer.TokRParen)
		if err != nil {
			return nil, err
		}
		return types.NewList(items...), nil
	case lexer.TokLBracket:
		items, err := r.readSeq(lexer.TokRBracket)
		if err != nil {
			return nil, err
		}
		return types.NewVector(items), nil
	case lexer.TokLBrace:
		return r.readMap()
	case lexer.TokRParen, lexer.TokRBracket, lexer.TokRBrace:
		r.advance()
		return nil, types.ReadError(&tok.Span, "unexpected '%s'", tok.Value)
	case lexer.TokMeta:
		r.advance()
		meta, err := r.readForm()
		if err != nil {
			return nil, err
		}
		target, err := r.readForm()
		if err != nil {
			return nil, err
		}
		return types.NewList(macroSymbols[lexer.TokMeta], target, meta), nil
	case lexer.TokQuote, lexer.TokQuasiquote, lexer.TokUnquote, lexer.TokSpliceUnquote, lexer.TokDeref:
		r.advance()
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		return types.NewList(macroSymbols[tok.Type], form), nil
	case lexer.TokUnterminatedString:
		r.advance()
		return nil, incomplete(tok.Span, "expected '\"', got EOF")
	case lexer.TokString:
		r.advance()
		return parseString(tok)
	default:
		r.advance()
		return parseAtom(tok)
	}
}

// readSeq consumes an opening bracket and the forms up to its closer.
func (r *reader) readSeq(closer lexer.TokenType) ([]types.Value, error) {
	open := r.advance()
	items := []types.Value{}
	for {
		tok := r.current()
		switch tok.Type {
		case closer:
			r.advance()
			return items, nil
		case lexer.TokEOF:
			return nil, incomplete(open.Span, "expected '%s', got EOF", closers[closer])
		}
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		items = append(items, form)
	}
}

func (r *reader) readMap() (types.Value, error) {
	open := r.current()
	items, err := r.readSeq(lexer.TokRBrace)
	if err != nil {
		return nil, err
	}
	if len(items)%2 != 0 {
		return nil, types.ReadError(&open.Span, "map literal has an odd number of forms")
	}
	kvs := make([]types.Value, 0, len(items))
	for i := 0; i < len(items); i += 2 {
		// Pairs with a key that is neither a string nor a keyword are dropped.
		if _, ok := types.MapKey(items[i]); ok {
			kvs = append(kvs, items[i], items[i+1])
		}
	}
	m, err := types.NewMap(kvs...)
	if err != nil {
		return nil, types.ReadError(&open.Span, "%v", err)
	}
	return m, nil
}

func parseString(tok lexer.Token) (types.Value, error) {
	raw := tok.Value[1 : len(tok.Value)-1]
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' || i+1 >= len(raw) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch raw[i] {
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(raw[i])
		}
	}
	s := sb.String()
	if !types.ValidText(s) {
		return nil, types.ReadError(&tok.Span, "string is not valid UTF-8")
	}
	return types.NewStr(s), nil
}

func isInteger(tok string) bool {
	digits := strings.TrimPrefix(tok, "-")
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func parseAtom(tok lexer.Token) (types.Value, error) {
	text := tok.Value
	if isInteger(text) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, types.ReadError(&tok.Span, "integer out of range: %s", text)
		}
		return types.NewInt(n), nil
	}
	switch text {
	case "true":
		return types.NewBool(true), nil
	case "false":
		return types.NewBool(false), nil
	case "nil":
		return types.NewNil(), nil
	}
	if strings.HasPrefix(text, ":") {
		return types.NewKeyword(text[1:]), nil
	}
	return types.Intern(text), nil
}
