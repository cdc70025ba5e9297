// Package parser turns the token stream from internal/lexer into the
// nested atom tree (internal/ast) the analyzer consumes: syntactically
// trivial next to the evaluation engine, but still a full implementation
// of the source grammar, including the REPL's accumulate-until-balanced
// behavior.
package parser

import (
	"errors"
	"fmt"

	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/ast"
	"github.com/nfiedler-tsi/tsi-go/internal/lexer"
)

// ErrIncomplete is returned (wrapped) when the input ends in the middle of
// a parenthesized expression. The REPL driver (internal/driver) uses this
// to distinguish "keep reading more lines" from a genuine syntax error.
var ErrIncomplete = errors.New("incomplete expression")

// Parser reads one or more expressions out of a token stream.
type Parser struct {
	lex    *lexer.Lexer
	tok    lexer.Token
	peeked bool
}

// New creates a Parser over source text.
func New(source string) *Parser {
	return &Parser{lex: lexer.New(source)}
}

func (p *Parser) next() (lexer.Token, error) {
	if p.peeked {
		p.peeked = false
		return p.tok, nil
	}
	return p.lex.Next()
}

func (p *Parser) peek() (lexer.Token, error) {
	if !p.peeked {
		tok, err := p.lex.Next()
		if err != nil {
			return lexer.Token{}, err
		}
		p.tok = tok
		p.peeked = true
	}
	return p.tok, nil
}

// ParseOne parses a single expression and reports an error if the input
// contains anything beyond it, matching the REPL's one-expression-per-line
// contract. If the input ends before a started list closes, the error
// wraps ErrIncomplete so the REPL can prompt for another line.
func (p *Parser) ParseOne() (ast.Node, error) {
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != lexer.EOF {
		return nil, langerr.Newf("too many right parentheses or more than one expression").AtPosition(tok.Pos)
	}
	return node, nil
}

// ParseAll parses every expression in the input in order, for loading
// whole files rather than one REPL line at a time.
func (p *Parser) ParseAll() ([]ast.Node, error) {
	var nodes []ast.Node
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.EOF {
			return nodes, nil
		}
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) parseExpr() (ast.Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case lexer.EOF:
		return nil, fmt.Errorf("%w: nothing to parse", ErrIncomplete)
	case lexer.LPAREN:
		return p.parseList(tok.Pos)
	case lexer.RPAREN:
		return nil, langerr.Newf("parenthesis doesn't match").AtPosition(tok.Pos)
	case lexer.QUOTE:
		datum, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.List{ast.Atom("quote"), datum}, nil
	case lexer.STRING, lexer.ATOM:
		return ast.Atom(tok.Literal), nil
	default:
		return nil, langerr.Newf("unexpected token %s", tok.Type).AtPosition(tok.Pos)
	}
}

func (p *Parser) parseList(_ lexer.Position) (ast.Node, error) {
	var items ast.List
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case lexer.EOF:
			return nil, fmt.Errorf("%w: too few right parentheses", ErrIncomplete)
		case lexer.RPAREN:
			p.next()
			return items, nil
		default:
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
}

// Parse parses a single expression from source, as ParseOne does on a
// fresh Parser. The REPL and the read primitive accumulate input by
// calling it again on the grown text while it reports ErrIncomplete.
func Parse(source string) (ast.Node, error) {
	return New(source).ParseOne()
}

// ParseProgram parses every expression in source, as ParseAll does on a
// fresh Parser. Used when loading files.
func ParseProgram(source string) ([]ast.Node, error) {
	return New(source).ParseAll()
}
