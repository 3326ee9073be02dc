package parse

import (
	"fmt"
	"strconv"

	"github.com/midbel/exprs/tree"
)

// Role tells the converter at which syntactic position a token was found.
type Role int8

const (
	Atom Role = iota
	BinaryOperator
	UnaryOperator
	Function
)

func (r Role) String() string {
	switch r {
	case Atom:
		return "atom"
	case BinaryOperator:
		return "binary-operator"
	case UnaryOperator:
		return "unary-operator"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Converter turns a token into the value stored in the node of the tree.
type Converter[T comparable, V any] func(Token[T], Role) (V, error)

// Grammar assigns the roles of the token types known by a parser.
//
// Binaries lists the binary operators grouped by precedence: the first group
// has the lowest precedence, the last one the highest. All operators are left
// associative.
type Grammar[T comparable] struct {
	LeftParen  Type
	RightParen Type
	Comma      Type

	Binaries    [][]Type
	Unaries     []Type
	Identifiers []Type

	// Functions reports whether an identifier names a function. A nil
	// predicate knows no function.
	Functions func(T) bool
}

type Option func(*settings)

type settings struct {
	maxDepth int
	tracer   Tracer
}

// WithMaxDepth limits the nesting of groups, function arguments and unary
// operators. A limit of zero, the default, disables the check.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		s.maxDepth = max(depth, 0)
	}
}

func WithTracer(tracer Tracer) Option {
	return func(s *settings) {
		if tracer == nil {
			tracer = discardTracer{}
		}
		s.tracer = tracer
	}
}

type codeset map[int]struct{}

func makeCodeset(list []Type) codeset {
	set := make(codeset)
	for _, t := range list {
		if t == nil {
			continue
		}
		set[t.Code()] = struct{}{}
	}
	return set
}

func (s codeset) has(code int) bool {
	_, ok := s[code]
	return ok
}

type level struct {
	name string
	ops  codeset
}

// Formula is an immutable parser configuration. It can be shared by any
// number of goroutines, each parsing from its own Parser.
type Formula[T comparable, V any] struct {
	convert Converter[T, V]

	lparen Type
	rparen Type
	comma  Type

	levels      []level
	unaries     codeset
	identifiers codeset
	functions   func(T) bool

	settings
}

func New[T comparable, V any](g Grammar[T], convert Converter[T, V], options ...Option) (*Formula[T, V], error) {
	if convert == nil {
		return nil, fmt.Errorf("%w: converter is missing", ErrConfig)
	}
	if g.LeftParen == nil || g.RightParen == nil || g.Comma == nil {
		return nil, fmt.Errorf("%w: parenthesis and comma token types are required", ErrConfig)
	}
	f := Formula[T, V]{
		convert:     convert,
		lparen:      g.LeftParen,
		rparen:      g.RightParen,
		comma:       g.Comma,
		unaries:     makeCodeset(g.Unaries),
		identifiers: makeCodeset(g.Identifiers),
		functions:   g.Functions,
		settings: settings{
			tracer: discardTracer{},
		},
	}
	if f.functions == nil {
		f.functions = func(_ T) bool { return false }
	}
	for i, ops := range g.Binaries {
		set := makeCodeset(ops)
		if len(set) == 0 {
			return nil, fmt.Errorf("%w: precedence level %d has no operator", ErrConfig, i)
		}
		lvl := level{
			name: "level-" + strconv.Itoa(i),
			ops:  set,
		}
		f.levels = append(f.levels, lvl)
	}
	for _, o := range options {
		o(&f.settings)
	}
	return &f, nil
}

// Levels returns the number of precedence levels of binary operators.
func (f *Formula[T, V]) Levels() int {
	return len(f.levels)
}

// Parse parses one expression from p. Tokens following the expression are
// left unconsumed.
func (f *Formula[T, V]) Parse(p *Parser[T]) (*tree.Node[V], error) {
	s := state[T, V]{
		Formula: f,
		parser:  p,
	}
	return s.expression()
}

// ParseAll parses one expression from p and requires the input to end right
// after it.
func (f *Formula[T, V]) ParseAll(p *Parser[T]) (*tree.Node[V], error) {
	node, err := f.Parse(p)
	if err != nil {
		return nil, err
	}
	tok, err := p.LT(1)
	if err != nil {
		return nil, err
	}
	if !tok.IsEOF() {
		return nil, unexpected(tok)
	}
	return node, nil
}

type state[T comparable, V any] struct {
	*Formula[T, V]
	parser *Parser[T]
	depth  int
}

func (s *state[T, V]) enter() error {
	s.depth++
	if s.maxDepth > 0 && s.depth > s.maxDepth {
		tok, _ := s.parser.LT(1)
		return nestedError{
			Limit:    s.maxDepth,
			Position: tok.Position,
		}
	}
	return nil
}

func (s *state[T, V]) leave() {
	s.depth--
}

func (s *state[T, V]) expression() (*tree.Node[V], error) {
	defer s.leave()
	if err := s.enter(); err != nil {
		return nil, s.fail("expression", err)
	}
	return s.expr(0)
}

func (s *state[T, V]) expr(ix int) (*tree.Node[V], error) {
	if ix >= len(s.levels) {
		return s.terminal()
	}
	lvl := s.levels[ix]
	s.tracer.Enter(lvl.name, s.depth)
	defer s.tracer.Leave(lvl.name, s.depth)

	left, err := s.term(ix)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := s.parser.LT(1)
		if err != nil {
			return nil, s.fail(lvl.name, err)
		}
		if !lvl.ops.has(tok.Code()) {
			break
		}
		if err := s.parser.Consume(); err != nil {
			return nil, s.fail(lvl.name, err)
		}
		value, err := s.value(tok, BinaryOperator)
		if err != nil {
			return nil, s.fail(lvl.name, err)
		}
		right, err := s.term(ix)
		if err != nil {
			return nil, err
		}
		left = tree.New(value).Attach(left, right)
	}
	return left, nil
}

func (s *state[T, V]) term(ix int) (*tree.Node[V], error) {
	return s.expr(ix + 1)
}

func (s *state[T, V]) terminal() (*tree.Node[V], error) {
	tok, err := s.parser.LT(1)
	if err != nil {
		return nil, s.fail("terminal", err)
	}
	switch {
	case s.isFunction(tok):
		return s.call()
	case tok.Code() == s.lparen.Code():
		return s.group()
	default:
		return s.unary()
	}
}

func (s *state[T, V]) call() (*tree.Node[V], error) {
	s.tracer.Enter("call", s.depth)
	defer s.tracer.Leave("call", s.depth)

	tok, _ := s.parser.LT(1)
	if err := s.parser.Consume(); err != nil {
		return nil, s.fail("call", err)
	}
	value, err := s.value(tok, Function)
	if err != nil {
		return nil, s.fail("call", err)
	}
	if _, err := s.parser.Match(s.lparen); err != nil {
		return nil, s.fail("call", err)
	}
	node := tree.New(value)
	for {
		arg, err := s.expression()
		if err != nil {
			return nil, err
		}
		node.Attach(arg)

		code, err := s.parser.LA(1)
		if err != nil {
			return nil, s.fail("call", err)
		}
		if code != s.comma.Code() {
			break
		}
		if err := s.parser.Consume(); err != nil {
			return nil, s.fail("call", err)
		}
	}
	if _, err := s.parser.Match(s.rparen); err != nil {
		return nil, s.fail("call", err)
	}
	return node, nil
}

func (s *state[T, V]) group() (*tree.Node[V], error) {
	s.tracer.Enter("group", s.depth)
	defer s.tracer.Leave("group", s.depth)

	if err := s.parser.Consume(); err != nil {
		return nil, s.fail("group", err)
	}
	node, err := s.expression()
	if err != nil {
		return nil, err
	}
	if _, err := s.parser.Match(s.rparen); err != nil {
		return nil, s.fail("group", err)
	}
	return node, nil
}

func (s *state[T, V]) unary() (*tree.Node[V], error) {
	tok, err := s.parser.LT(1)
	if err != nil {
		return nil, s.fail("unary", err)
	}
	if !s.unaries.has(tok.Code()) {
		return s.atom()
	}
	s.tracer.Enter("unary", s.depth)
	defer s.tracer.Leave("unary", s.depth)

	defer s.leave()
	if err := s.enter(); err != nil {
		return nil, s.fail("unary", err)
	}
	if err := s.parser.Consume(); err != nil {
		return nil, s.fail("unary", err)
	}
	value, err := s.value(tok, UnaryOperator)
	if err != nil {
		return nil, s.fail("unary", err)
	}
	operand, err := s.unary()
	if err != nil {
		return nil, err
	}
	return tree.New(value).Attach(operand), nil
}

func (s *state[T, V]) atom() (*tree.Node[V], error) {
	tok, err := s.parser.LT(1)
	if err != nil {
		return nil, s.fail("atom", err)
	}
	if !s.identifiers.has(tok.Code()) {
		return nil, s.fail("atom", unexpected(tok))
	}
	if err := s.parser.Consume(); err != nil {
		return nil, s.fail("atom", err)
	}
	value, err := s.value(tok, Atom)
	if err != nil {
		return nil, s.fail("atom", err)
	}
	return tree.New(value), nil
}

func (s *state[T, V]) isFunction(tok Token[T]) bool {
	return s.identifiers.has(tok.Code()) && s.functions(tok.Value)
}

func (s *state[T, V]) value(tok Token[T], role Role) (V, error) {
	value, err := s.convert(tok, role)
	if err != nil {
		err = convertError{
			Token:    tok.String(),
			Err:      err,
			Position: tok.Position,
		}
	}
	return value, err
}

func (s *state[T, V]) fail(rule string, err error) error {
	s.tracer.Error(rule, err)
	return err
}
