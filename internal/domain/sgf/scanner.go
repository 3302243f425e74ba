package sgf

import (
	"fmt"
	"strconv"
)

// ScanError reports lexical content that could not be classified or parsed
// (for example an integer literal that overflows uint64).
type ScanError struct {
	Pos Position
	Msg string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan_error at %s: %s", e.Pos, e.Msg)
}

// Scanner turns a decoded text into an ordered token sequence. The unit of
// input is the Unicode code point, not the byte: a multi-byte character is
// one TokenRune.
type Scanner struct {
	input []rune
	cur   int
	pos   Position
}

func NewScanner(data string) *Scanner {
	return &Scanner{
		input: []rune(data),
		pos:   Position{Row: 1, Col: 0},
	}
}

// Scan consumes the whole input. It fails atomically: on a scan error no
// partial token slice is returned.
func (s *Scanner) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.scanToken()
		if err != nil {
			return nil, &ScanError{Pos: s.pos, Msg: err.Error()}
		}
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// scanToken dispatches on one character of lookahead. The branches are
// meant to be comprehensive over every possible rune.
func (s *Scanner) scanToken() (Token, error) {
	switch c := s.peek(0); {
	case c == 0:
		return Token{Kind: TokenEOF}, nil
	case c == ' ' || c == '\t' || c == '\r':
		return s.scanWhitespace(), nil
	case c == '\n':
		return s.scanNewlines(), nil
	case c == '\\':
		return s.scanEscaped(), nil
	case c == '(':
		return s.single(TokenOpenParen), nil
	case c == ')':
		return s.single(TokenCloseParen), nil
	case c == '[':
		return s.single(TokenOpenBracket), nil
	case c == ']':
		return s.single(TokenCloseBracket), nil
	case c == ';':
		return s.single(TokenSemicolon), nil
	case isDigit(c):
		return s.scanNumber()
	case isIdentStart(c):
		return s.scanIdentifier(), nil
	case c >= 0x20 && c <= 0x7e:
		return s.scanOther(), nil
	default:
		return s.scanRune(), nil
	}
}

// peek returns the rune n positions ahead, or NUL past the end.
func (s *Scanner) peek(n int) rune {
	if s.cur+n < len(s.input) {
		return s.input[s.cur+n]
	}
	return 0
}

// read advances the cursor and returns the current rune, tracking row and
// column. A newline resets the column and bumps the row.
func (s *Scanner) read() rune {
	if s.cur >= len(s.input) {
		s.cur++
		return 0
	}
	c := s.input[s.cur]
	if c == '\n' {
		s.pos.Row++
		s.pos.Col = 0
	} else {
		s.pos.Col++
	}
	s.cur++
	return c
}

func (s *Scanner) single(kind TokenKind) Token {
	tok := Token{Kind: kind, Pos: s.pos}
	s.read()
	return tok
}

func (s *Scanner) scanWhitespace() Token {
	for {
		switch s.peek(0) {
		case ' ', '\t', '\r':
			s.read()
		default:
			return Token{Kind: TokenWhitespace}
		}
	}
}

// The recorded position is the state after the run is consumed.
func (s *Scanner) scanNewlines() Token {
	for s.peek(0) == '\n' {
		s.read()
	}
	return Token{Kind: TokenNewline, Pos: s.pos}
}

// scanEscaped consumes the backslash and exactly one following character,
// even a structural one. This is how a bracketed value carries a literal
// ']' or '\'.
func (s *Scanner) scanEscaped() Token {
	s.read()
	c := s.read()
	return Token{Kind: TokenEscaped, Pos: s.pos, Text: string(c)}
}

func (s *Scanner) scanOther() Token {
	c := s.read()
	return Token{Kind: TokenOther, Pos: s.pos, Text: string(c)}
}

func (s *Scanner) scanRune() Token {
	c := s.read()
	return Token{Kind: TokenRune, Pos: s.pos, Text: string(c)}
}

func (s *Scanner) scanNumber() (Token, error) {
	var digits []rune
	for isDigit(s.peek(0)) {
		digits = append(digits, s.read())
	}
	n, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenInteger, Pos: s.pos, Int: n}, nil
}

// scanIdentifier consumes a maximal run of letters, digits and underscores.
// The run is classified TokenUcIdent only when every character was an ASCII
// uppercase letter; property identifiers are case-sensitive.
func (s *Scanner) scanIdentifier() Token {
	upper := true
	var chars []rune
	for isIdent(s.peek(0)) {
		c := s.read()
		if c < 'A' || c > 'Z' {
			upper = false
		}
		chars = append(chars, c)
	}
	kind := TokenIdent
	if upper {
		kind = TokenUcIdent
	}
	return Token{Kind: kind, Pos: s.pos, Text: string(chars)}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdent(c rune) bool {
	return isDigit(c) || isIdentStart(c)
}
