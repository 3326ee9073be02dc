package parse

import (
	"fmt"
)

// Type identifies the lexical category of a token. Codes are stable for a
// given tokenizer and must not be negative, negative codes being reserved.
type Type interface {
	Code() int
}

const eofCode = -1

type eofType struct{}

func (_ eofType) Code() int {
	return eofCode
}

func (_ eofType) String() string {
	return "EOF"
}

// EOF is the type of the token returned once the input is exhausted. It is
// shared by all tokenizers.
var EOF Type = eofType{}

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token[T comparable] struct {
	Type  Type
	Value T
	Position
}

func Make[T comparable](kind Type, value T) Token[T] {
	return Token[T]{
		Type:  kind,
		Value: value,
	}
}

func EOFToken[T comparable]() Token[T] {
	return Token[T]{
		Type: EOF,
	}
}

func (t Token[T]) Code() int {
	if t.Type == nil {
		return eofCode
	}
	return t.Type.Code()
}

func (t Token[T]) IsEOF() bool {
	return t.Code() == eofCode
}

// Equal reports whether both tokens have the same type and the same value. The
// position is not part of a token's identity.
func (t Token[T]) Equal(other Token[T]) bool {
	return t.Code() == other.Code() && t.Value == other.Value
}

func (t Token[T]) String() string {
	if t.IsEOF() {
		return "<eof>"
	}
	return fmt.Sprintf("%s(%v)", typeName(t.Type), t.Value)
}

func typeName(kind Type) string {
	if kind == nil {
		return EOF.(fmt.Stringer).String()
	}
	if s, ok := kind.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("type-%d", kind.Code())
}

// Tokenizer pulls the next token out of its input. Once the input is exhausted,
// Next keeps returning the EOF token.
type Tokenizer[T comparable] interface {
	Next() (Token[T], error)
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc[T comparable] func() (Token[T], error)

func (f TokenizerFunc[T]) Next() (Token[T], error) {
	return f()
}

// Tokens returns a tokenizer replaying the given tokens. The EOF token is
// returned after the last one.
func Tokens[T comparable](list ...Token[T]) Tokenizer[T] {
	var ix int
	fn := func() (Token[T], error) {
		if ix >= len(list) {
			return EOFToken[T](), nil
		}
		tok := list[ix]
		ix++
		return tok, nil
	}
	return TokenizerFunc[T](fn)
}

// Collect drains the tokenizer until the EOF token (excluded) or the first
// error.
func Collect[T comparable](tk Tokenizer[T]) ([]Token[T], error) {
	var list []Token[T]
	for {
		tok, err := tk.Next()
		if err != nil {
			return list, err
		}
		if tok.IsEOF() {
			return list, nil
		}
		list = append(list, tok)
	}
}
