package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midbel/exprs/bnf"
)

func TestGrammarCheck(t *testing.T) {
	tests := []struct {
		Grammar string
		Verify  bool
		Err     error
	}{
		{
			Grammar: "<expr> ::= <term> | <exrp>\n<term> ::= x",
			Err:     errFail,
		},
		{
			Grammar: "<expr> ::= <term> | <exrp>\n<term> ::= x",
			Verify:  true,
			Err:     errFail,
		},
		{
			Grammar: "<expr> ::= <term> '+' <term>\n<term> ::= x | y",
			Verify:  true,
		},
	}
	for _, c := range tests {
		file := filepath.Join(t.TempDir(), "grammar.bnf")
		if err := os.WriteFile(file, []byte(c.Grammar), 0o644); err != nil {
			t.Fatalf("fail to write grammar: %s", err)
		}
		var args []string
		if c.Verify {
			args = append(args, "-verify")
		}
		cmd := GrammarCmd{}
		err := cmd.Run(append(args, file))
		if c.Err == nil && err != nil {
			t.Errorf("%q: unexpected error: %s", c.Grammar, err)
		}
		if c.Err != nil && !errors.Is(err, c.Err) {
			t.Errorf("%q: want %v, got %v", c.Grammar, c.Err, err)
		}
	}
}

func TestReportGrammar(t *testing.T) {
	g, err := bnf.ParseString("<expr> ::= <term> | <exrp>\n<term> ::= x")
	if err != nil {
		t.Fatalf("fail to parse grammar: %s", err)
	}
	var str strings.Builder
	if err := reportGrammar(&str, g.Validate()); !errors.Is(err, errFail) {
		t.Errorf("undefined rule should be reported, got %v", err)
	}
	if !strings.Contains(str.String(), "<exrp>") {
		t.Errorf("undefined rule not written: %s", str.String())
	}

	str.Reset()
	other := errors.New("other")
	if err := reportGrammar(&str, other); err != other || str.Len() > 0 {
		t.Errorf("unrelated error should be returned as is")
	}
}
