package parse

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax   = errors.New("syntax error")
	ErrTokenize = errors.New("invalid character")
	ErrNested   = errors.New("too deeply nested")
	ErrConfig   = errors.New("invalid parser configuration")
)

// SyntaxError reports a token stream not matching the expected shape.
type SyntaxError struct {
	Expected string
	Actual   string
	Cause    string
	Position
}

// Unexpected builds the error reported when tok can not be accepted at the
// current position.
func Unexpected[T comparable](tok Token[T]) error {
	return unexpected(tok)
}

func unexpected[T comparable](tok Token[T]) error {
	if tok.IsEOF() {
		return endOfInput(tok.Position)
	}
	return &SyntaxError{
		Actual:   tok.String(),
		Cause:    "unexpected symbol",
		Position: tok.Position,
	}
}

func expected[T comparable](want Type, tok Token[T]) error {
	cause := "unexpected symbol"
	if tok.IsEOF() {
		cause = "unexpected end of input"
	}
	return &SyntaxError{
		Expected: typeName(want),
		Actual:   tok.String(),
		Cause:    cause,
		Position: tok.Position,
	}
}

func endOfInput(pos Position) error {
	return &SyntaxError{
		Actual:   "<eof>",
		Cause:    "unexpected end of input",
		Position: pos,
	}
}

func (e *SyntaxError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s: want %s but got %s", e.Position, e.Cause, e.Expected, e.Actual)
	}
	if e.Actual == "" || e.Actual == "<eof>" {
		return fmt.Sprintf("%s: %s", e.Position, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Position, e.Cause, e.Actual)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// IsEOF reports whether the error was caused by the input ending too early.
func (e *SyntaxError) IsEOF() bool {
	return e.Actual == "<eof>"
}

// TokenizeError reports a character that can not start or continue any token.
type TokenizeError struct {
	Char  rune
	Cause string
	Position
}

func (e *TokenizeError) Error() string {
	cause := e.Cause
	if cause == "" {
		cause = "invalid character"
	}
	if e.Char == 0 {
		return fmt.Sprintf("%s: %s", e.Position, cause)
	}
	return fmt.Sprintf("%s: %s %q", e.Position, cause, e.Char)
}

func (e *TokenizeError) Unwrap() error {
	return ErrTokenize
}

type nestedError struct {
	Limit int
	Position
}

func (e nestedError) Error() string {
	return fmt.Sprintf("%s: expression nested deeper than %d levels", e.Position, e.Limit)
}

func (e nestedError) Unwrap() error {
	return ErrNested
}

type convertError struct {
	Token string
	Err   error
	Position
}

func (e convertError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Position, e.Token, e.Err)
}

func (e convertError) Unwrap() error {
	return e.Err
}
