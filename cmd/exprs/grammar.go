package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/midbel/cli"

	"github.com/midbel/exprs/bnf"
	"github.com/midbel/exprs/mathexpr"
	"github.com/midbel/exprs/parse"
)

var tokensCmd = cli.Command{
	Name:    "tokens",
	Alias:   []string{"scan"},
	Summary: "print the tokens of a formula or of a grammar",
	Handler: &TokensCmd{},
}

var grammarCmd = cli.Command{
	Name:    "grammar",
	Summary: "parse and check a bnf grammar",
	Handler: &GrammarCmd{},
}

type TokensCmd struct {
	Lang string
}

func (t *TokensCmd) Run(args []string) error {
	set := flag.NewFlagSet("tokens", flag.ContinueOnError)
	set.StringVar(&t.Lang, "lang", "math", "language of the input: math or bnf")
	if err := set.Parse(args); err != nil {
		return err
	}
	str, err := readSource(set.Args())
	if err != nil {
		return err
	}
	var scan parse.Tokenizer[string]
	switch t.Lang {
	case "math", "":
		scan = mathexpr.ScanString(str)
	case "bnf":
		scan = bnf.ScanString(str)
	default:
		return fmt.Errorf("%s: unsupported language", t.Lang)
	}
	for {
		tok, err := scan.Next()
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %s", tok.Position, tok)
		fmt.Println()
		if tok.IsEOF() {
			break
		}
	}
	return nil
}

// readSource reads the file named by the only argument if it exists,
// otherwise the arguments are the input.
func readSource(args []string) (string, error) {
	if len(args) == 1 {
		if s, err := os.Stat(args[0]); err == nil && !s.IsDir() {
			buf, err := os.ReadFile(args[0])
			return string(buf), err
		}
	}
	return readInput(args)
}

type GrammarCmd struct {
	Ebnf      bool
	Verify    bool
	Terminals bool
}

func (g *GrammarCmd) Run(args []string) error {
	set := flag.NewFlagSet("grammar", flag.ContinueOnError)
	set.BoolVar(&g.Ebnf, "ebnf", false, "write the grammar in ebnf notation")
	set.BoolVar(&g.Verify, "verify", false, "check that all rules are defined and reachable from the start rule")
	set.BoolVar(&g.Terminals, "terminals", false, "print the terminals of the grammar")
	if err := set.Parse(args); err != nil {
		return err
	}
	gram, err := bnf.ParseFile(set.Arg(0))
	if err != nil {
		return err
	}
	check := gram.Validate
	if g.Verify {
		check = gram.Verify
	}
	if err := check(); err != nil {
		return reportGrammar(os.Stderr, err)
	}
	switch {
	case g.Terminals:
		for _, t := range gram.Terminals() {
			fmt.Println(t)
		}
	case g.Ebnf:
		fmt.Print(gram.EBNF())
	default:
		fmt.Print(gram)
	}
	return nil
}

// reportGrammar writes an undefined nonterminal and the rules having a close
// name. Other errors are returned as is.
func reportGrammar(w io.Writer, err error) error {
	var uerr bnf.UndefinedError
	if !errors.As(err, &uerr) {
		return err
	}
	fmt.Fprintln(w, uerr)
	if len(uerr.Others) > 0 {
		fmt.Fprintln(w, "similar rule(s)")
		for _, n := range uerr.Others {
			fmt.Fprintln(w, "-", n)
		}
	}
	return errFail
}
