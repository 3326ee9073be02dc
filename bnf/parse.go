package bnf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/midbel/exprs/parse"
)

// Parser reads the rules of a grammar written as
//
//	<expr> ::= <expr> <op> <expr> | <num> | '(' <expr> ')'
//	<op>   ::= + | - | * | /
//
// Rules are not terminated: a new rule starts at the first "<name> ::=".
type Parser struct {
	parser *parse.Parser[string]
}

func NewParser(tk parse.Tokenizer[string]) *Parser {
	return &Parser{
		parser: parse.NewParser(tk),
	}
}

func Parse(r io.Reader) (*Grammar, error) {
	return NewParser(Scan(r)).Parse()
}

func ParseString(str string) (*Grammar, error) {
	return Parse(strings.NewReader(str))
}

func ParseFile(file string) (*Grammar, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Parse(r)
}

func (p *Parser) Parse() (*Grammar, error) {
	var g Grammar
	for {
		done, err := p.done()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		g.add(rule)
	}
	if len(g.Rules) == 0 {
		return nil, ErrEmpty
	}
	return &g, nil
}

func (p *Parser) parseRule() (Rule, error) {
	var (
		rule Rule
		err  error
	)
	if rule.Name, err = p.parseName(); err != nil {
		return rule, err
	}
	if _, err := p.parser.Match(Assign); err != nil {
		return rule, err
	}
	for {
		expr, err := p.parseAlternative()
		if err != nil {
			return rule, err
		}
		rule.Alternatives = append(rule.Alternatives, expr)
		if ok, err := p.is(1, Bar); err != nil || !ok {
			return rule, err
		}
		if err := p.parser.Consume(); err != nil {
			return rule, err
		}
	}
}

func (p *Parser) parseAlternative() (Expression, error) {
	var expr Expression
	for {
		stop, err := p.endOfAlternative()
		if err != nil {
			return expr, err
		}
		if stop {
			break
		}
		sym, err := p.parseSymbol()
		if err != nil {
			return expr, err
		}
		expr.Symbols = append(expr.Symbols, sym)
	}
	if len(expr.Symbols) == 0 {
		tok, _ := p.parser.LT(1)
		return expr, fmt.Errorf("empty alternative: %w", parse.Unexpected(tok))
	}
	return expr, nil
}

func (p *Parser) parseSymbol() (Symbol, error) {
	tok, err := p.parser.LT(1)
	if err != nil {
		return nil, err
	}
	switch tok.Code() {
	case Lt.Code():
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return NonTerminal{Name: name}, nil
	case Ident.Code(), String.Code():
		return Terminal{Value: tok.Value}, p.parser.Consume()
	case Quoted.Code():
		return Terminal{Value: tok.Value, Quoted: true}, p.parser.Consume()
	default:
		return nil, parse.Unexpected(tok)
	}
}

func (p *Parser) parseName() (string, error) {
	if _, err := p.parser.Match(Lt); err != nil {
		return "", err
	}
	tok, err := p.parser.Match(Ident)
	if err != nil {
		return "", err
	}
	if _, err := p.parser.Match(Gt); err != nil {
		return "", err
	}
	return tok.Value, nil
}

func (p *Parser) endOfAlternative() (bool, error) {
	if ok, err := p.done(); ok || err != nil {
		return ok, err
	}
	if ok, err := p.is(1, Bar); ok || err != nil {
		return ok, err
	}
	return p.startOfRule()
}

func (p *Parser) startOfRule() (bool, error) {
	for i, k := range []Kind{Lt, Ident, Gt, Assign} {
		ok, err := p.is(i+1, k)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (p *Parser) is(ahead int, kind Kind) (bool, error) {
	code, err := p.parser.LA(ahead)
	return err == nil && code == kind.Code(), err
}

func (p *Parser) done() (bool, error) {
	tok, err := p.parser.LT(1)
	return err == nil && tok.IsEOF(), err
}
