package parse

import (
	"fmt"
)

// Parser buffers the tokens of a single tokenizer to give a bounded lookahead
// over the stream. A Parser is a cursor owned by one parse and must not be
// shared between goroutines.
type Parser[T comparable] struct {
	tokenizer Tokenizer[T]
	buffer    []Token[T]
	last      Token[T]
	eof       *Token[T]
}

func NewParser[T comparable](tk Tokenizer[T]) *Parser[T] {
	return &Parser[T]{
		tokenizer: tk,
	}
}

// LT returns the token k positions ahead without consuming it. LT(1) is the
// next token.
func (p *Parser[T]) LT(k int) (Token[T], error) {
	if k < 1 {
		return EOFToken[T](), fmt.Errorf("lookahead %d: position should be at least 1", k)
	}
	if err := p.fill(k); err != nil {
		return EOFToken[T](), err
	}
	return p.buffer[k-1], nil
}

// LA returns the type code of LT(k).
func (p *Parser[T]) LA(k int) (int, error) {
	tok, err := p.LT(k)
	if err != nil {
		return eofCode, err
	}
	return tok.Code(), nil
}

// Match consumes the next token if its type is the expected one.
func (p *Parser[T]) Match(kind Type) (Token[T], error) {
	tok, err := p.LT(1)
	if err != nil {
		return tok, err
	}
	if tok.Code() != kind.Code() {
		return tok, expected(kind, tok)
	}
	return tok, p.Consume()
}

// Consume moves past the next token whatever its type.
func (p *Parser[T]) Consume() error {
	if err := p.fill(1); err != nil {
		return err
	}
	if tok := p.buffer[0]; !tok.IsEOF() {
		p.last = tok
	}
	p.buffer = p.buffer[1:]
	return nil
}

// Last returns the most recently consumed token.
func (p *Parser[T]) Last() Token[T] {
	return p.last
}

func (p *Parser[T]) fill(k int) error {
	for len(p.buffer) < k {
		if p.eof != nil {
			p.buffer = append(p.buffer, *p.eof)
			continue
		}
		tok, err := p.tokenizer.Next()
		if err != nil {
			return err
		}
		if tok.IsEOF() {
			p.eof = &tok
		}
		p.buffer = append(p.buffer, tok)
	}
	return nil
}
