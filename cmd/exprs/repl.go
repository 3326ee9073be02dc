package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/cli"
	"github.com/peterh/liner"

	"github.com/midbel/exprs/environ"
	"github.com/midbel/exprs/mathexpr"
	"github.com/midbel/exprs/parse"
	"github.com/midbel/exprs/tree"
)

var replCmd = cli.Command{
	Name:    "repl",
	Summary: "evaluate formulas interactively",
	Handler: &ReplCmd{},
}

const (
	historyFile = ".exprs_history"
	prompt      = "exprs> "
)

type ReplCmd struct {
	ProfileOptions
}

func (r *ReplCmd) Run(args []string) error {
	set := flag.NewFlagSet("repl", flag.ContinueOnError)
	set.StringVar(&r.Config, "config", "", "profile file (yaml or toml) defining operators and functions")
	if err := set.Parse(args); err != nil {
		return err
	}
	parser, err := r.compile()
	if err != nil {
		return err
	}
	env, err := parser.Environ(nil)
	if err != nil {
		return err
	}

	home, _ := os.UserHomeDir()
	history := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(history); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	sess := session{
		parser: parser,
		env:    env,
	}
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if line == ":quit" {
			break
		}
		if err := sess.exec(os.Stdout, line); err != nil {
			fmt.Fprintln(os.Stderr, explain(err))
		}
	}

	if f, err := os.Create(history); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
	return nil
}

type session struct {
	parser *mathexpr.Parser
	env    environ.Environ[float64]
}

// exec runs one line of the repl: a command starting with a colon, an
// assignment "name = formula" or a formula to evaluate.
func (s *session) exec(w io.Writer, line string) error {
	if cmd, ok := strings.CutPrefix(line, ":"); ok {
		return s.command(w, cmd)
	}
	name, str, ok := strings.Cut(line, "=")
	if !ok {
		str, name = line, ""
	} else if name = strings.TrimSpace(name); !isIdent(name) {
		return fmt.Errorf("%s: invalid variable name", name)
	}
	node, err := s.parser.Parse(str)
	if err != nil {
		return err
	}
	res, err := mathexpr.Eval(node, s.env)
	if err != nil {
		return err
	}
	if name != "" {
		if err := s.env.Define(name, res); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, formatNumber(res))
	return nil
}

func (s *session) command(w io.Writer, cmd string) error {
	cmd, rest, _ := strings.Cut(cmd, " ")
	switch cmd {
	case "vars":
		for _, n := range s.env.Names() {
			v, _ := s.env.Resolve(n)
			fmt.Fprintf(w, "%s = %s", n, formatNumber(v))
			fmt.Fprintln(w)
		}
	case "funcs":
		fmt.Fprintln(w, strings.Join(s.parser.Profile().Functions, " "))
	case "tree":
		node, err := s.parser.Parse(rest)
		if err != nil {
			return err
		}
		fmt.Fprint(w, tree.Tree(node, mathexpr.Op.String))
	case "fmt":
		node, err := s.parser.Parse(rest)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, mathexpr.Format(node))
	default:
		return fmt.Errorf("%s: unknown command", cmd)
	}
	return nil
}

func isIdent(str string) bool {
	list, err := parse.Collect(mathexpr.ScanString(str))
	return err == nil && len(list) == 1 && list[0].Code() == mathexpr.Ident.Code()
}
