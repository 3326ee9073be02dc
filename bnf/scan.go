package bnf

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/midbel/exprs/parse"
)

type Kind int

const (
	Assign Kind = iota + 1
	Bar
	Gt
	Lt
	Ident
	String
	Quoted
)

func (k Kind) Code() int {
	return int(k)
}

func (k Kind) String() string {
	switch k {
	case Assign:
		return "ASSIGN"
	case Bar:
		return "BAR"
	case Gt:
		return "GT"
	case Lt:
		return "LT"
	case Ident:
		return "ID"
	case String:
		return "STRING"
	case Quoted:
		return "QUOTED_STRING"
	default:
		return "UNKNOWN"
	}
}

const eof = -1

// Scanner splits a grammar definition into tokens:
//
//	ASSIGN: '::=';
//	BAR: '|';
//	GT: '>';
//	LT: '<';
//	ID: letter (letter | digit | '-')*;
//	QUOTED_STRING: '\'' (~'\'')* '\'';
//	STRING: (~(space | '<' | '>' | '|' | ':' | '\''))+;
type Scanner struct {
	input *bufio.Reader
	char  rune
	width int
	parse.Position

	str bytes.Buffer
}

func Scan(r io.Reader) *Scanner {
	scan := Scanner{
		input: bufio.NewReader(r),
	}
	scan.Line++
	scan.read()
	return &scan
}

func ScanString(str string) *Scanner {
	return Scan(strings.NewReader(str))
}

func (s *Scanner) Next() (parse.Token[string], error) {
	defer s.reset()

	s.skip(isBlank)

	var (
		tok parse.Token[string]
		err error
	)
	tok.Position = s.Position
	if s.done() {
		tok.Type = parse.EOF
		return tok, nil
	}
	switch {
	case isColon(s.char):
		err = s.scanAssign(&tok)
	case isPunct(s.char):
		s.scanPunct(&tok)
	case isQuote(s.char):
		err = s.scanQuote(&tok)
	case isLetter(s.char):
		s.scanIdent(&tok)
	case isStringChar(s.char):
		s.scanString(&tok)
	default:
		err = s.invalid("invalid character")
	}
	return tok, err
}

func (s *Scanner) scanAssign(tok *parse.Token[string]) error {
	for _, want := range "::=" {
		if s.char != want {
			return s.invalid("expected ::=")
		}
		s.read()
	}
	tok.Type = Assign
	tok.Value = "::="
	return nil
}

func (s *Scanner) scanPunct(tok *parse.Token[string]) {
	switch s.char {
	case '|':
		tok.Type = Bar
	case '<':
		tok.Type = Lt
	case '>':
		tok.Type = Gt
	}
	tok.Value = string(s.char)
	s.read()
}

func (s *Scanner) scanQuote(tok *parse.Token[string]) error {
	s.read()
	for !s.done() && !isQuote(s.char) {
		if isEscape(s.char) {
			s.read()
			if s.done() {
				break
			}
		}
		s.write()
		s.read()
	}
	if !isQuote(s.char) {
		return &parse.TokenizeError{
			Cause:    "unterminated quoted string",
			Position: tok.Position,
		}
	}
	s.read()
	tok.Type = Quoted
	tok.Value = s.literal()
	return nil
}

func (s *Scanner) scanIdent(tok *parse.Token[string]) {
	for !s.done() && isIdentChar(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Ident
	tok.Value = s.literal()
}

func (s *Scanner) scanString(tok *parse.Token[string]) {
	for !s.done() && isStringChar(s.char) {
		s.write()
		s.read()
	}
	tok.Type = String
	tok.Value = s.literal()
}

func (s *Scanner) invalid(cause string) error {
	err := parse.TokenizeError{
		Char:     s.char,
		Cause:    cause,
		Position: s.Position,
	}
	if s.done() {
		err.Char = 0
		err.Cause = "unexpected end of input"
	}
	return &err
}

func (s *Scanner) read() {
	if s.done() {
		return
	}
	if s.char == '\n' {
		s.Line++
		s.Column = 0
	}
	s.Offset += s.width
	s.Column++

	char, width, err := s.input.ReadRune()
	if errors.Is(err, io.EOF) {
		char = eof
	}
	s.char = char
	s.width = width
}

func (s *Scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *Scanner) done() bool {
	return s.char == eof
}

func (s *Scanner) literal() string {
	return s.str.String()
}

func (s *Scanner) reset() {
	s.str.Reset()
}

func (s *Scanner) skip(accept func(rune) bool) {
	for accept(s.char) {
		s.read()
	}
}

func isColon(r rune) bool {
	return r == ':'
}

func isPunct(r rune) bool {
	return r == '|' || r == '<' || r == '>'
}

func isQuote(r rune) bool {
	return r == '\''
}

func isEscape(r rune) bool {
	return r == '\\'
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

func isStringChar(r rune) bool {
	if r == eof || isBlank(r) || unicode.IsSpace(r) || unicode.IsControl(r) {
		return false
	}
	return !isPunct(r) && !isColon(r) && !isQuote(r)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
