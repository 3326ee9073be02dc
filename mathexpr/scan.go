package mathexpr

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/midbel/exprs/parse"
)

type Kind int

const (
	Number Kind = iota + 1
	Ident
	Add
	Sub
	Mul
	Div
	Mod
	Pow
	Lparen
	Rparen
	Comma
)

func (k Kind) Code() int {
	return int(k)
}

func (k Kind) String() string {
	switch k {
	case Number:
		return "NUMBER"
	case Ident:
		return "IDENT"
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Mul:
		return "MUL"
	case Div:
		return "DIV"
	case Mod:
		return "MOD"
	case Pow:
		return "POW"
	case Lparen:
		return "LPAREN"
	case Rparen:
		return "RPAREN"
	case Comma:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

var operators = map[rune]Kind{
	'+': Add,
	'-': Sub,
	'*': Mul,
	'/': Div,
	'%': Mod,
	'^': Pow,
	'(': Lparen,
	')': Rparen,
	',': Comma,
}

// kindOf gives the token type of an operator written in a profile.
func kindOf(op string) (Kind, bool) {
	rs := []rune(op)
	if len(rs) != 1 {
		return 0, false
	}
	k, ok := operators[rs[0]]
	return k, ok && k != Lparen && k != Rparen && k != Comma
}

const eof = -1

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
	case isDigit(s.char) || s.char == '.':
		err = s.scanNumber(&tok)
	case isLetter(s.char):
		s.scanIdent(&tok)
	default:
		k, ok := operators[s.char]
		if !ok {
			return tok, s.invalid("invalid character")
		}
		tok.Type = k
		tok.Value = string(s.char)
		s.read()
	}
	return tok, err
}

func (s *Scanner) scanNumber(tok *parse.Token[string]) error {
	s.digits()
	if s.char == '.' {
		s.write()
		s.read()
		s.digits()
	}
	if lit := s.literal(); lit == "." {
		return &parse.TokenizeError{
			Char:     '.',
			Cause:    "invalid number",
			Position: tok.Position,
		}
	}
	if s.char == 'e' || s.char == 'E' {
		s.write()
		s.read()
		if s.char == '-' || s.char == '+' {
			s.write()
			s.read()
		}
		if !isDigit(s.char) {
			return s.invalid("missing exponent")
		}
		s.digits()
	}
	tok.Type = Number
	tok.Value = s.literal()
	return nil
}

func (s *Scanner) digits() {
	for isDigit(s.char) {
		s.write()
		s.read()
	}
}

func (s *Scanner) scanIdent(tok *parse.Token[string]) {
	for isLetter(s.char) || isDigit(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Ident
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

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
