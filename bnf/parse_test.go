package bnf

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/midbel/exprs/parse"
)

const arithmetic = `
<expr> ::= ( <expr> <op> <expr> ) | <num> | <var> |  <fun> ( <expr>, <var> )
<fun>  ::= FUN1 | FUN2
<op>   ::= + | - | * | /
<var>  ::= x | y
<num>  ::= 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 | 8 | 9
`

func TestParse(t *testing.T) {
	g, err := ParseString(arithmetic)
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	if names := g.Names(); !slices.Equal(names, []string{"expr", "fun", "op", "var", "num"}) {
		t.Fatalf("rules mismatched: %v", names)
	}
	start, err := g.Start()
	if err != nil || start.Name != "expr" {
		t.Fatalf("start rule: want expr, got %s (%v)", start.Name, err)
	}
	if len(start.Alternatives) != 4 {
		t.Fatalf("expr: want 4 alternatives, got %d", len(start.Alternatives))
	}
	want := "( <expr> <op> <expr> )"
	if got := start.Alternatives[0].String(); got != want {
		t.Errorf("first alternative: want %s, got %s", want, got)
	}
	want = "<fun> ( <expr> , <var> )"
	if got := start.Alternatives[3].String(); got != want {
		t.Errorf("last alternative: want %s, got %s", want, got)
	}
	num, ok := g.Rule("num")
	if !ok || len(num.Alternatives) != 10 {
		t.Errorf("num: want 10 alternatives")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("grammar should be valid: %s", err)
	}
	if got := g.Terminals(); len(got) != 21 {
		t.Errorf("want 21 terminals, got %d: %v", len(got), got)
	}
}

func TestParseQuoted(t *testing.T) {
	g, err := ParseString(`<expr> ::= <expr> '+' <expr> | 'a b' | id`)
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	start, _ := g.Start()
	sym := start.Alternatives[0].Symbols[1]
	if term, ok := sym.(Terminal); !ok || term.Value != "+" || !term.Quoted {
		t.Errorf("expected quoted terminal +, got %#v", sym)
	}
	want := "<expr> ::= <expr> '+' <expr> | 'a b' | id\n"
	if got := g.String(); got != want {
		t.Errorf("grammar mismatched! want %q, got %q", want, got)
	}
	again, err := ParseString(g.String())
	if err != nil {
		t.Fatalf("fail to parse written grammar: %s", err)
	}
	if again.String() != g.String() {
		t.Errorf("written grammar can not be read back: %s", again)
	}
}

func TestParseMergeRules(t *testing.T) {
	g, err := ParseString("<a> ::= x\n<b> ::= y\n<a> ::= z")
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	if len(g.Rules) != 2 {
		t.Fatalf("want 2 rules, got %d", len(g.Rules))
	}
	a, _ := g.Rule("a")
	if len(a.Alternatives) != 2 || a.Alternatives[1].String() != "z" {
		t.Errorf("alternatives should be merged: %s", a)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		Input string
		Err   error
	}{
		{
			Input: "",
			Err:   ErrEmpty,
		},
		{
			Input: "<a> x",
			Err:   parse.ErrSyntax,
		},
		{
			Input: "a ::= x",
			Err:   parse.ErrSyntax,
		},
		{
			Input: "<a> ::=",
			Err:   parse.ErrSyntax,
		},
		{
			Input: "<a> ::= x | | y",
			Err:   parse.ErrSyntax,
		},
		{
			Input: "<a> ::= <b",
			Err:   parse.ErrSyntax,
		},
		{
			Input: "<a> ::= x >",
			Err:   parse.ErrSyntax,
		},
		{
			Input: "<a> ::= 'x",
			Err:   parse.ErrTokenize,
		},
	}
	for _, c := range tests {
		_, err := ParseString(c.Input)
		if !errors.Is(err, c.Err) {
			t.Errorf("%q: want error %v, got %v", c.Input, c.Err, err)
		}
	}
}

func TestValidate(t *testing.T) {
	g, err := ParseString("<expr> ::= <term> | <exrp>\n<term> ::= x")
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	err = g.Validate()
	if !errors.Is(err, ErrUndefined) {
		t.Fatalf("expected undefined error, got %v", err)
	}
	var uerr UndefinedError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UndefinedError, got %T", err)
	}
	if uerr.Name != "exrp" || uerr.Rule != "expr" {
		t.Errorf("wrong error details: %s", uerr)
	}
	if slices.Contains(uerr.Others, uerr.Name) {
		t.Errorf("undefined name should not be suggested: %v", uerr.Others)
	}
}

func TestEBNF(t *testing.T) {
	g, err := ParseString("<bin-op> ::= <arg> '+' <arg>\n<arg> ::= x | \"y\"")
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	want := strings.Join([]string{
		`BinOp = Arg "+" Arg .`,
		`Arg = "x" | "\"y\"" .`,
		"",
	}, "\n")
	if got := g.EBNF(); got != want {
		t.Errorf("ebnf mismatched! want\n%s\ngot\n%s", want, got)
	}
}

func TestVerify(t *testing.T) {
	g, err := ParseString(arithmetic)
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	if err := g.Verify(); err != nil {
		t.Errorf("grammar should be verified: %s", err)
	}

	g, err = ParseString("<a> ::= x <b>\n<b> ::= y\n<orphan> ::= z")
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	if err := g.Verify(); err == nil {
		t.Errorf("unreachable rule should be reported")
	}

	g, err = ParseString("<a> ::= <c>")
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	if err := g.Verify(); !errors.Is(err, ErrUndefined) {
		t.Errorf("undefined rule should be reported, got %v", err)
	}
}
