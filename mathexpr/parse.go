package mathexpr

import (
	"fmt"
	"strconv"

	"github.com/midbel/exprs/environ"
	"github.com/midbel/exprs/parse"
	"github.com/midbel/exprs/tree"
)

// Parser turns formulas into trees of Op according to a profile. A Parser
// can be used by many goroutines at once.
type Parser struct {
	profile Profile
	levels  map[string]int
	formula *parse.Formula[string, Op]
}

// Compile builds a parser from a copy of the profile: changing p afterwards
// has no effect on the parser.
func Compile(p Profile, options ...parse.Option) (*Parser, error) {
	p = p.clone()
	g, err := p.grammar()
	if err != nil {
		return nil, err
	}
	mp := Parser{
		profile: p,
		levels:  p.levels(),
	}
	options = append([]parse.Option{parse.WithMaxDepth(p.MaxDepth)}, options...)
	mp.formula, err = parse.New[string, Op](g, mp.convert, options...)
	if err != nil {
		return nil, err
	}
	return &mp, nil
}

var std *Parser

func init() {
	p, err := Compile(DefaultProfile())
	if err != nil {
		panic(err)
	}
	std = p
}

// Parse parses a formula with the default profile.
func Parse(str string) (*tree.Node[Op], error) {
	return std.Parse(str)
}

func (p *Parser) Parse(str string) (*tree.Node[Op], error) {
	return p.formula.ParseAll(parse.NewParser(ScanString(str)))
}

func (p *Parser) Profile() Profile {
	return p.profile.clone()
}

// Environ gives the bindings used to evaluate a formula: the constants of the
// profile, read only, enclosing the given variables. A variable named after a
// constant is an error wrapping environ.ErrReadOnly.
func (p *Parser) Environ(vars map[string]float64) (environ.Environ[float64], error) {
	env := environ.Enclosed(environ.ReadOnly(p.profile.Constants))
	for k, v := range vars {
		if err := env.Define(k, v); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (p *Parser) convert(tok parse.Token[string], role parse.Role) (Op, error) {
	var op Op
	switch role {
	case parse.BinaryOperator:
		op.Kind = Binary
		op.Name = tok.Value
		op.Level = p.levels[tok.Value]
	case parse.UnaryOperator:
		op.Kind = Unary
		op.Name = tok.Value
	case parse.Function:
		op.Kind = Call
		op.Name = tok.Value
	default:
		if tok.Code() != Number.Code() {
			op.Kind = Var
			op.Name = tok.Value
			break
		}
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return op, fmt.Errorf("invalid number: %w", err)
		}
		op.Kind = Const
		op.Value = v
	}
	return op, nil
}
