package bnf

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/midbel/exprs/casing"
)

// EBNF writes the grammar with the notation of golang.org/x/exp/ebnf. Rule
// names are rewritten in pascal case so that every production is a
// non-lexical one.
func (g *Grammar) EBNF() string {
	var (
		str   strings.Builder
		names = g.productions()
	)
	for _, r := range g.Rules {
		str.WriteString(names[r.Name])
		str.WriteString(" = ")
		for i, e := range r.Alternatives {
			if i > 0 {
				str.WriteString(" | ")
			}
			for j, s := range e.Symbols {
				if j > 0 {
					str.WriteString(" ")
				}
				switch s := s.(type) {
				case NonTerminal:
					str.WriteString(productionName(names, s.Name))
				case Terminal:
					str.WriteString(strconv.Quote(s.Value))
				}
			}
		}
		str.WriteString(" .\n")
	}
	return str.String()
}

// Verify checks the grammar with the rules of golang.org/x/exp/ebnf: all the
// nonterminals used are defined and all the rules are reachable from the
// start rule.
func (g *Grammar) Verify() error {
	if err := g.Validate(); err != nil {
		return err
	}
	start, err := g.Start()
	if err != nil {
		return err
	}
	names := g.productions()
	prods, err := ebnf.Parse(start.Name, strings.NewReader(g.EBNF()))
	if err != nil {
		return fmt.Errorf("ebnf: %w", err)
	}
	if err := ebnf.Verify(prods, names[start.Name]); err != nil {
		return fmt.Errorf("ebnf: %w", err)
	}
	return nil
}

func (g *Grammar) productions() map[string]string {
	var (
		names = make(map[string]string)
		seen  = make(map[string]struct{})
	)
	for _, r := range g.Rules {
		var (
			base = casing.ToPascal(r.Name)
			name = base
		)
		for i := 1; ; i++ {
			if _, ok := seen[name]; !ok {
				break
			}
			name = base + strconv.Itoa(i)
		}
		seen[name] = struct{}{}
		names[r.Name] = name
	}
	return names
}

func productionName(names map[string]string, rule string) string {
	if n, ok := names[rule]; ok {
		return n
	}
	return casing.ToPascal(rule)
}
