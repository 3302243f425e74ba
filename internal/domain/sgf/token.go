package sgf

import (
	"fmt"
	"strconv"
)

// Position указывает место в исходном тексте (для диагностики).
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenWhitespace
	TokenNewline
	TokenIdent
	TokenUcIdent
	TokenOpenParen
	TokenCloseParen
	TokenOpenBracket
	TokenCloseBracket
	TokenSemicolon
	TokenInteger
	TokenFloat // reserved, the grammar never produces one
	TokenEscaped
	TokenOther // printable ASCII not matched by any other kind
	TokenRune  // non-ASCII code point, passed through verbatim
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenWhitespace:   "Whitespace",
	TokenNewline:      "Newline",
	TokenIdent:        "Ident",
	TokenUcIdent:      "UcIdent",
	TokenOpenParen:    "OpenParen",
	TokenCloseParen:   "CloseParen",
	TokenOpenBracket:  "OpenBracket",
	TokenCloseBracket: "CloseBracket",
	TokenSemicolon:    "Semicolon",
	TokenInteger:      "Integer",
	TokenFloat:        "Float",
	TokenEscaped:      "Escaped",
	TokenOther:        "Other",
	TokenRune:         "Rune",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token — один лексический элемент. После сканирования не изменяется.
type Token struct {
	Kind  TokenKind
	Pos   Position
	Text  string
	Int   uint64
	Float float64
}

// String renders the source text of the token. An escaped character keeps
// its leading backslash so that bracketed values round-trip through
// serialization unchanged.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return ""
	case TokenWhitespace:
		return " "
	case TokenNewline:
		return "\n"
	case TokenIdent, TokenUcIdent, TokenOther, TokenRune:
		return t.Text
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	case TokenOpenBracket:
		return "["
	case TokenCloseBracket:
		return "]"
	case TokenSemicolon:
		return ";"
	case TokenInteger:
		return strconv.FormatUint(t.Int, 10)
	case TokenFloat:
		return strconv.FormatFloat(t.Float, 'f', -1, 64)
	case TokenEscaped:
		return "\\" + t.Text
	default:
		return ""
	}
}
