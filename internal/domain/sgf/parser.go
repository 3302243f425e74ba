package sgf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFile is returned when the input scanned to no tokens at all, so
// there is no position to report.
var ErrEmptyFile = errors.New("empty file")

// ParseError reports a grammar violation at the position of the offending
// token. A scan error surfacing through the parser is carried in Err, so
// callers only ever deal with one error taxonomy.
type ParseError struct {
	Pos Position
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("parse_error at %s: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser — рекурсивный спуск по потоку токенов, по одному методу на
// продукцию грамматики.
type Parser struct {
	tokens []Token
	cur    int
}

// NewParser scans data up front; a scan failure is already reported as a
// *ParseError.
func NewParser(data string) (*Parser, error) {
	tokens, err := NewScanner(data).Scan()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return &Parser{tokens: tokens}, nil
}

// Parse is the convenience entry point: scan and parse in one call.
func Parse(data string) (*Collection, error) {
	p, err := NewParser(data)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// peek returns the token n positions ahead, or an EOF token past the end,
// so grammar rules detect premature termination uniformly.
func (p *Parser) peek(n int) Token {
	if p.cur+n < len(p.tokens) {
		return p.tokens[p.cur+n]
	}
	return Token{Kind: TokenEOF}
}

func (p *Parser) read() Token {
	if p.cur >= len(p.tokens) {
		p.cur++
		return Token{Kind: TokenEOF}
	}
	t := p.tokens[p.cur]
	p.cur++
	return t
}

// errorf anchors the message to the current token, falling back to the last
// token once the cursor has run off the end.
func (p *Parser) errorf(format string, args ...any) error {
	if len(p.tokens) == 0 {
		return ErrEmptyFile
	}
	msg := fmt.Sprintf(format, args...)
	if p.cur >= len(p.tokens) {
		return &ParseError{Pos: p.tokens[len(p.tokens)-1].Pos, Msg: msg}
	}
	return &ParseError{Pos: p.tokens[p.cur].Pos, Msg: msg}
}

func (p *Parser) unexpected(msg string) error {
	t := p.read()
	return p.errorf("unexpected %s %s", t, msg)
}

func (p *Parser) consumeWhitespace() {
	for {
		switch p.peek(0).Kind {
		case TokenWhitespace, TokenNewline:
			p.read()
		default:
			return
		}
	}
}

// Parse consumes the whole token stream and returns the collection.
func (p *Parser) Parse() (*Collection, error) {
	p.consumeWhitespace()

	// kgs accepts sgf files with garbage before the first game tree, so
	// anything up to the first '(' is discarded here too
	for {
		if k := p.peek(0).Kind; k == TokenOpenParen || k == TokenEOF {
			break
		}
		p.read()
	}

	var trees []*GameTree
	for p.peek(0).Kind == TokenOpenParen {
		gt, err := p.parseGameTree()
		if err != nil {
			return nil, err
		}
		trees = append(trees, gt)
	}
	if len(trees) == 0 {
		return nil, p.errorf("cannot have empty collection")
	}
	return &Collection{GameTrees: trees}, nil
}

func (p *Parser) parseGameTree() (*GameTree, error) {
	// gametrees start with "("
	p.read()
	p.consumeWhitespace()
	seq, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	p.consumeWhitespace()
	var children []*GameTree
	for {
		switch p.peek(0).Kind {
		case TokenOpenParen:
			child, err := p.parseGameTree()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			p.consumeWhitespace()
		case TokenCloseParen:
			p.read()
			return &GameTree{Sequence: seq, Children: children}, nil
		default:
			return nil, p.unexpected("in parseGameTree")
		}
	}
}

func (p *Parser) parseSequence() (Sequence, error) {
	// sequences start with a node, nodes start with ";"
	var nodes []Node
	for p.peek(0).Kind == TokenSemicolon {
		n, err := p.parseNode()
		if err != nil {
			return Sequence{}, err
		}
		nodes = append(nodes, n)
		p.consumeWhitespace()
	}
	if len(nodes) == 0 {
		return Sequence{}, p.errorf("cannot have empty node list")
	}
	return Sequence{Nodes: nodes}, nil
}

func (p *Parser) parseNode() (Node, error) {
	// the leading ";"
	p.read()
	p.consumeWhitespace()
	var props []Property
	for p.peek(0).Kind == TokenUcIdent {
		prop, err := p.parseProperty()
		if err != nil {
			return Node{}, err
		}
		props = append(props, prop)
		p.consumeWhitespace()
	}
	return Node{Properties: props}, nil
}

func (p *Parser) parseProperty() (Property, error) {
	ident, err := p.parsePropIdent()
	if err != nil {
		return Property{}, err
	}
	p.consumeWhitespace()
	var values []string
	for p.peek(0).Kind == TokenOpenBracket {
		v, err := p.parsePropValue()
		if err != nil {
			return Property{}, err
		}
		values = append(values, v)
		p.consumeWhitespace()
	}
	if len(values) == 0 {
		return Property{}, p.errorf("cannot have empty property list")
	}
	return Property{Ident: ident, Values: values}, nil
}

func (p *Parser) parsePropIdent() (string, error) {
	t := p.read()
	if t.Kind != TokenUcIdent {
		return "", p.errorf("expected uppercase identifier")
	}
	return t.Text, nil
}

// parsePropValue accumulates the source rendering of every token up to the
// closing ']'. Whitespace, newlines, digits and non-ASCII runes inside the
// brackets are all literal content.
func (p *Parser) parsePropValue() (string, error) {
	if p.peek(0).Kind != TokenOpenBracket {
		return "", p.unexpected("needed '[' in parsePropValue")
	}
	p.read()
	var sb strings.Builder
	for {
		switch t := p.peek(0); t.Kind {
		case TokenCloseBracket:
			p.read()
			return sb.String(), nil
		case TokenEOF:
			return "", p.unexpected("eof while waiting for ']'")
		default:
			sb.WriteString(t.String())
			p.read()
		}
	}
}
