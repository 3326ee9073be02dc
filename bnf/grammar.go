package bnf

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/midbel/distance"
)

var (
	ErrUndefined = errors.New("undefined nonterminal")
	ErrEmpty     = errors.New("grammar has no rule")
)

type UndefinedError struct {
	Name   string
	Rule   string
	Others []string
}

func (e UndefinedError) Error() string {
	return fmt.Sprintf("<%s>: undefined nonterminal used in rule <%s>", e.Name, e.Rule)
}

func (e UndefinedError) Unwrap() error {
	return ErrUndefined
}

type Symbol interface {
	fmt.Stringer
	symbol()
}

type NonTerminal struct {
	Name string
}

func (n NonTerminal) String() string {
	return "<" + n.Name + ">"
}

func (_ NonTerminal) symbol() {}

// Terminal is a symbol appearing as is in the generated sentences. Quoted
// tells whether it was written between single quotes in the definition.
type Terminal struct {
	Value  string
	Quoted bool
}

func (t Terminal) String() string {
	if !t.Quoted {
		return t.Value
	}
	var str strings.Builder
	str.WriteRune('\'')
	for _, r := range t.Value {
		if r == '\'' || r == '\\' {
			str.WriteRune('\\')
		}
		str.WriteRune(r)
	}
	str.WriteRune('\'')
	return str.String()
}

func (_ Terminal) symbol() {}

// Expression is one alternative of a rule.
type Expression struct {
	Symbols []Symbol
}

func (e Expression) String() string {
	list := make([]string, len(e.Symbols))
	for i := range e.Symbols {
		list[i] = e.Symbols[i].String()
	}
	return strings.Join(list, " ")
}

type Rule struct {
	Name         string
	Alternatives []Expression
}

func (r Rule) String() string {
	list := make([]string, len(r.Alternatives))
	for i := range r.Alternatives {
		list[i] = r.Alternatives[i].String()
	}
	return fmt.Sprintf("<%s> ::= %s", r.Name, strings.Join(list, " | "))
}

// Grammar is an ordered list of rules. The first rule is the start rule.
type Grammar struct {
	Rules []Rule
}

// add registers a rule. Alternatives of a rule defined more than once are
// appended to the first definition.
func (g *Grammar) add(rule Rule) {
	ix := slices.IndexFunc(g.Rules, func(r Rule) bool {
		return r.Name == rule.Name
	})
	if ix < 0 {
		g.Rules = append(g.Rules, rule)
		return
	}
	g.Rules[ix].Alternatives = append(g.Rules[ix].Alternatives, rule.Alternatives...)
}

func (g *Grammar) Start() (Rule, error) {
	if len(g.Rules) == 0 {
		return Rule{}, ErrEmpty
	}
	return g.Rules[0], nil
}

func (g *Grammar) Rule(name string) (Rule, bool) {
	ix := slices.IndexFunc(g.Rules, func(r Rule) bool {
		return r.Name == name
	})
	if ix < 0 {
		return Rule{}, false
	}
	return g.Rules[ix], true
}

func (g *Grammar) Names() []string {
	var list []string
	for _, r := range g.Rules {
		list = append(list, r.Name)
	}
	return list
}

// Terminals returns the distinct values of the terminal symbols in order of
// first appearance.
func (g *Grammar) Terminals() []string {
	var list []string
	for _, r := range g.Rules {
		for _, e := range r.Alternatives {
			for _, s := range e.Symbols {
				t, ok := s.(Terminal)
				if !ok || slices.Contains(list, t.Value) {
					continue
				}
				list = append(list, t.Value)
			}
		}
	}
	return list
}

// Validate checks that every nonterminal used in a rule is defined.
func (g *Grammar) Validate() error {
	if len(g.Rules) == 0 {
		return ErrEmpty
	}
	names := g.Names()
	for _, r := range g.Rules {
		for _, e := range r.Alternatives {
			for _, s := range e.Symbols {
				n, ok := s.(NonTerminal)
				if !ok || slices.Contains(names, n.Name) {
					continue
				}
				return UndefinedError{
					Name:   n.Name,
					Rule:   r.Name,
					Others: distance.Levenshtein(n.Name, names),
				}
			}
		}
	}
	return nil
}

func (g *Grammar) String() string {
	var str strings.Builder
	for _, r := range g.Rules {
		str.WriteString(r.String())
		str.WriteString("\n")
	}
	return str.String()
}
