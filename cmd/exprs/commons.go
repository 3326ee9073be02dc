package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/exprs/mathexpr"
	"github.com/midbel/exprs/parse"
)

type ProfileOptions struct {
	Config   string
	MaxDepth int
	Trace    bool
}

func (o ProfileOptions) compile() (*mathexpr.Parser, error) {
	prof := mathexpr.DefaultProfile()
	if o.Config != "" {
		p, err := mathexpr.LoadProfile(o.Config)
		if err != nil {
			return nil, err
		}
		prof = p
	}
	var options []parse.Option
	if o.MaxDepth > 0 {
		options = append(options, parse.WithMaxDepth(o.MaxDepth))
	}
	if o.Trace {
		options = append(options, parse.WithTracer(parse.TraceStderr()))
	}
	return mathexpr.Compile(prof, options...)
}

// readInput joins the arguments given on the command line or, without
// arguments, reads everything from stdin.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	buf, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(buf)), nil
}

type Vars map[string]float64

func (v Vars) Set(str string) error {
	name, value, ok := strings.Cut(str, "=")
	if !ok {
		return fmt.Errorf("%s: expected name=value", str)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	v[strings.TrimSpace(name)] = f
	return nil
}

func (v Vars) String() string {
	var list []string
	for k, f := range v {
		list = append(list, k+"="+formatNumber(f))
	}
	return strings.Join(list, ",")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// explain adds the names close to an undefined identifier to the error.
func explain(err error) error {
	var uerr *mathexpr.UndefinedError
	if !errors.As(err, &uerr) || len(uerr.Others) == 0 {
		return err
	}
	return fmt.Errorf("%w (similar: %s)", err, strings.Join(uerr.Others, ", "))
}
