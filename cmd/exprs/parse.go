package main

import (
	"flag"
	"fmt"

	"github.com/midbel/cli"

	"github.com/midbel/exprs/mathexpr"
	"github.com/midbel/exprs/tree"
)

var parseCmd = cli.Command{
	Name:    "parse",
	Summary: "parse a formula and print its tree",
	Handler: &ParseCmd{},
}

var evalCmd = cli.Command{
	Name:    "eval",
	Alias:   []string{"calc"},
	Summary: "evaluate a formula",
	Handler: &EvalCmd{},
}

type ParseCmd struct {
	Format string
	ProfileOptions
}

func (p *ParseCmd) Run(args []string) error {
	set := flag.NewFlagSet("parse", flag.ContinueOnError)
	set.StringVar(&p.Config, "config", "", "profile file (yaml or toml) defining operators and functions")
	set.StringVar(&p.Format, "format", "tree", "output format: tree, lisp, parens, infix or dot")
	set.IntVar(&p.MaxDepth, "max-depth", 0, "maximum nesting of the formula")
	set.BoolVar(&p.Trace, "trace", false, "trace parsing rules on stderr")
	if err := set.Parse(args); err != nil {
		return err
	}
	parser, err := p.compile()
	if err != nil {
		return err
	}
	str, err := readInput(set.Args())
	if err != nil {
		return err
	}
	node, err := parser.Parse(str)
	if err != nil {
		return err
	}
	switch p.Format {
	case "tree", "":
		fmt.Print(tree.Tree(node, mathexpr.Op.String))
	case "lisp":
		fmt.Println(tree.Lisp(node, mathexpr.Op.String))
	case "parens":
		fmt.Println(tree.Parentheses(node, mathexpr.Op.String))
	case "infix":
		fmt.Println(mathexpr.Format(node))
	case "dot":
		fmt.Print(tree.Dot(node, "formula", mathexpr.Op.String))
	default:
		return fmt.Errorf("%s: unsupported format", p.Format)
	}
	return nil
}

type EvalCmd struct {
	ProfileOptions
}

func (e *EvalCmd) Run(args []string) error {
	var (
		set  = flag.NewFlagSet("eval", flag.ContinueOnError)
		vars = make(Vars)
	)
	set.StringVar(&e.Config, "config", "", "profile file (yaml or toml) defining operators and functions")
	set.Var(vars, "var", "define a variable with name=value")
	if err := set.Parse(args); err != nil {
		return err
	}
	parser, err := e.compile()
	if err != nil {
		return err
	}
	str, err := readInput(set.Args())
	if err != nil {
		return err
	}
	node, err := parser.Parse(str)
	if err != nil {
		return err
	}
	env, err := parser.Environ(vars)
	if err != nil {
		return err
	}
	res, err := mathexpr.Eval(node, env)
	if err != nil {
		return explain(err)
	}
	fmt.Println(formatNumber(res))
	return nil
}
