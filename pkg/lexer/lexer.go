// Package lexer implements the mal tokenizer.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ToucheSir/mal/pkg/diagnostics"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Brackets
	TokLParen   TokenType = iota // (
	TokRParen                    // )
	TokLBracket                  // [
	TokRBracket                  // ]
	TokLBrace                    // {
	TokRBrace                    // }

	// Reader macros
	TokQuote         // '
	TokQuasiquote    // `
	TokUnquote       // ~
	TokSpliceUnquote // ~@
	TokMeta          // ^
	TokDeref         // @

	// Literals. String token values keep their quotes and escapes.
	TokString
	TokUnterminatedString
	TokAtom

	// Special
	TokEOF
)

var tokenNames = map[TokenType]string{
	TokLParen:             "'('",
	TokRParen:             "')'",
	TokLBracket:           "'['",
	TokRBracket:           "']'",
	TokLBrace:             "'{'",
	TokRBrace:             "'}'",
	TokQuote:              "'",
	TokQuasiquote:         "`",
	TokUnquote:            "~",
	TokSpliceUnquote:      "~@",
	TokMeta:               "^",
	TokDeref:              "@",
	TokString:             "string",
	TokUnterminatedString: "unterminated string",
	TokAtom:               "atom",
	TokEOF:                "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token represents a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Span  diagnostics.Span
}

var singleChar = map[byte]TokenType{
	'(':  TokLParen,
	')':  TokRParen,
	'[':  TokLBracket,
	']':  TokRBracket,
	'{':  TokLBrace,
	'}':  TokRBrace,
	'\'': TokQuote,
	'`':  TokQuasiquote,
	'~':  TokUnquote,
	'^':  TokMeta,
	'@':  TokDeref,
}

type scanner struct {
	source   string
	filename string
	pos      int
	line     int
	col      int
}

func newScanner(source, filename string) *scanner {
	return &scanner{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	p := s.pos + offset
	if p >= len(s.source) {
		return 0
	}
	return s.source[p]
}

func (s *scanner) advance() byte {
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else if utf8.RuneStart(ch) {
		s.col++
	}
	return ch
}

func (s *scanner) span(startLine, startCol int) diagnostics.Span {
	return diagnostics.Span{
		File:      s.filename,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   s.line,
		EndCol:    s.col,
	}
}

// spaceAt returns the byte width of the whitespace rune at the cursor, or 0.
func (s *scanner) spaceAt() int {
	ch := s.peek()
	if ch < utf8.RuneSelf {
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == '\v' {
			return 1
		}
		return 0
	}
	r, size := utf8.DecodeRuneInString(s.source[s.pos:])
	if unicode.IsSpace(r) {
		return size
	}
	return 0
}

func (s *scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		if n := s.spaceAt(); n > 0 {
			for i := 0; i < n; i++ {
				s.advance()
			}
			continue
		}
		switch s.peek() {
		case ',':
			s.advance()
		case ';':
			for !s.atEnd() && s.peek() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

func isDelimiter(ch byte) bool {
	return strings.IndexByte("[]{}()'\"`,;", ch) >= 0
}

func (s *scanner) scanString() Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos
	s.advance() // consume opening "

	for !s.atEnd() {
		ch := s.advance()
		if ch == '\\' {
			if s.atEnd() {
				break
			}
			s.advance()
			continue
		}
		if ch == '"' {
			return Token{
				Type:  TokString,
				Value: s.source[startPos:s.pos],
				Span:  s.span(startLine, startCol),
			}
		}
	}
	return Token{
		Type:  TokUnterminatedString,
		Value: s.source[startPos:s.pos],
		Span:  s.span(startLine, startCol),
	}
}

func (s *scanner) scanAtom() Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos

	for !s.atEnd() && !isDelimiter(s.peek()) && s.spaceAt() == 0 {
		s.advance()
	}

	return Token{
		Type:  TokAtom,
		Value: s.source[startPos:s.pos],
		Span:  s.span(startLine, startCol),
	}
}

func (s *scanner) nextToken() Token {
	s.skipWhitespaceAndComments()

	if s.atEnd() {
		return Token{
			Type:  TokEOF,
			Value: "",
			Span:  s.span(s.line, s.col),
		}
	}

	ch := s.peek()
	startLine, startCol := s.line, s.col

	if ch == '~' && s.peekAt(1) == '@' {
		s.advance()
		s.advance()
		return Token{Type: TokSpliceUnquote, Value: "~@", Span: s.span(startLine, startCol)}
	}

	if typ, ok := singleChar[ch]; ok {
		s.advance()
		return Token{Type: typ, Value: string(ch), Span: s.span(startLine, startCol)}
	}

	if ch == '"' {
		return s.scanString()
	}

	return s.scanAtom()
}

// Tokenize breaks source text into a slice of tokens ending with TokEOF.
// Tokenizing never fails: malformed strings surface as
// TokUnterminatedString and are rejected by the reader.
func Tokenize(source, filename string) []Token {
	s := newScanner(source, filename)
	var tokens []Token

	for {
		tok := s.nextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			break
		}
	}

	return tokens
}
