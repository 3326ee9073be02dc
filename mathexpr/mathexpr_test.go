package mathexpr

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/midbel/exprs/environ"
	"github.com/midbel/exprs/parse"
	"github.com/midbel/exprs/tree"
)

func TestScan(t *testing.T) {
	got, err := parse.Collect(ScanString("x1 + 2.5e-3*(y_2) ,% ^ .5"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []parse.Token[string]{
		parse.Make(Ident, "x1"),
		parse.Make(Add, "+"),
		parse.Make(Number, "2.5e-3"),
		parse.Make(Mul, "*"),
		parse.Make(Lparen, "("),
		parse.Make(Ident, "y_2"),
		parse.Make(Rparen, ")"),
		parse.Make(Comma, ","),
		parse.Make(Mod, "%"),
		parse.Make(Pow, "^"),
		parse.Make(Number, ".5"),
	}
	if len(got) != len(want) {
		t.Fatalf("want %d tokens, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("token %d mismatched! want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScanErrors(t *testing.T) {
	for _, str := range []string{"1 $ 2", "1e", "2e+x", ". 1", "a = 1"} {
		_, err := parse.Collect(ScanString(str))
		if !errors.Is(err, parse.ErrTokenize) {
			t.Errorf("%q: expected tokenize error, got %v", str, err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{
			Input: "1 + 2 * 3",
			Want:  "(+ 1 (* 2 3))",
		},
		{
			Input: "2 ^ 3 ^ 2",
			Want:  "(^ (^ 2 3) 2)",
		},
		{
			Input: "-x * 2",
			Want:  "(* (- x) 2)",
		},
		{
			Input: "max(1, x, 5) % y",
			Want:  "(% (max 1 x 5) y)",
		},
		{
			Input: "(a - b) - c",
			Want:  "(- (- a b) c)",
		},
		{
			Input: "pi",
			Want:  "pi",
		},
	}
	for _, c := range tests {
		node, err := Parse(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if got := tree.Lisp(node, Op.String); got != c.Want {
			t.Errorf("%s: want %s, got %s", c.Input, c.Want, got)
		}
	}
}

func TestParseOps(t *testing.T) {
	node, err := Parse("-a + sin(2)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var kinds []OpKind
	for n := range node.All() {
		kinds = append(kinds, n.Value().Kind)
	}
	want := []OpKind{Binary, Unary, Var, Call, Const}
	if !slices.Equal(kinds, want) {
		t.Errorf("kinds mismatched! want %v, got %v", want, kinds)
	}
	if node.Value().Level != 0 {
		t.Errorf("+ should be at level 0, got %d", node.Value().Level)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		Input string
		Err   error
	}{
		{Input: "1 +", Err: parse.ErrSyntax},
		{Input: "1 2", Err: parse.ErrSyntax},
		{Input: "foo(1)", Err: parse.ErrSyntax},
		{Input: "max()", Err: parse.ErrSyntax},
		{Input: "(1 + 2", Err: parse.ErrSyntax},
		{Input: "1 # 2", Err: parse.ErrTokenize},
		{Input: "", Err: parse.ErrSyntax},
	}
	for _, c := range tests {
		_, err := Parse(c.Input)
		if !errors.Is(err, c.Err) {
			t.Errorf("%q: want %v, got %v", c.Input, c.Err, err)
		}
	}
}

func TestEval(t *testing.T) {
	p, err := Compile(DefaultProfile())
	if err != nil {
		t.Fatalf("fail to compile default profile: %s", err)
	}
	env, err := p.Environ(map[string]float64{
		"x": 7,
		"y": 3,
	})
	if err != nil {
		t.Fatalf("fail to create environment: %s", err)
	}
	tests := []struct {
		Input string
		Want  float64
	}{
		{Input: "1 + 2 * 3", Want: 7},
		{Input: "(1 + 2) * 3", Want: 9},
		{Input: "2 ^ 3 ^ 2", Want: 64},
		{Input: "10 % 4", Want: 2},
		{Input: "-y * 2", Want: -6},
		{Input: "x - y - 1", Want: 3},
		{Input: "max(1, x, 5)", Want: 7},
		{Input: "min(y, x)", Want: 3},
		{Input: "pow(2, 10)", Want: 1024},
		{Input: "sqrt(16) + abs(-4)", Want: 8},
		{Input: "1.5e1 / 3", Want: 5},
		{Input: "floor(pi)", Want: 3},
		{Input: "hypot(3, 4)", Want: 5},
	}
	for _, c := range tests {
		node, err := p.Parse(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		got, err := Eval(node, env)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if math.Abs(got-c.Want) > 1e-9 {
			t.Errorf("%s: want %f, got %f", c.Input, c.Want, got)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	env := environ.FromMap(map[string]float64{
		"value": 1,
	})
	tests := []struct {
		Input string
		Err   error
	}{
		{Input: "1 / 0", Err: ErrZero},
		{Input: "5 % (value - 1)", Err: ErrZero},
		{Input: "pow(1)", Err: ErrArity},
		{Input: "sin(1, 2)", Err: ErrArity},
		{Input: "valeu + 1", Err: environ.ErrUndefined},
	}
	for _, c := range tests {
		node, err := Parse(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if _, err := Eval(node, env); !errors.Is(err, c.Err) {
			t.Errorf("%s: want %v, got %v", c.Input, c.Err, err)
		}
	}

	node, _ := Parse("valeu + 1")
	_, err := Eval(node, env)
	var uerr *UndefinedError
	if !errors.As(err, &uerr) || uerr.Name != "valeu" {
		t.Fatalf("expected undefined error for valeu, got %v", err)
	}
	if _, err := Eval(node, nil); !errors.As(err, &uerr) {
		t.Errorf("nil environment: expected undefined error, got %v", err)
	}
}

func TestEvalUnknownFunction(t *testing.T) {
	node := tree.New(Op{Kind: Call, Name: "sinh"})
	node.Attach(tree.New(Op{Kind: Const, Value: 1}))

	_, err := Eval(node, nil)
	var uerr *UndefinedError
	if !errors.As(err, &uerr) || uerr.Name != "sinh" {
		t.Errorf("expected undefined function, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{Input: "(a + b) * c", Want: "(a + b) * c"},
		{Input: "a-(b-c)", Want: "a - (b - c)"},
		{Input: "(a - b) - c", Want: "a - b - c"},
		{Input: "2 ^ (3 ^ 2)", Want: "2 ^ (3 ^ 2)"},
		{Input: "-x^2", Want: "-x ^ 2"},
		{Input: "--x", Want: "--x"},
		{Input: "max(a,b+1)*2", Want: "max(a, b + 1) * 2"},
		{Input: "a*b+c", Want: "a * b + c"},
		{Input: "0.5 * 1e6", Want: "0.5 * 1e+06"},
	}
	for _, c := range tests {
		node, err := Parse(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		got := Format(node)
		if got != c.Want {
			t.Errorf("%s: want %s, got %s", c.Input, c.Want, got)
			continue
		}
		again, err := Parse(got)
		if err != nil {
			t.Errorf("%s: formatted formula can not be parsed: %s", got, err)
			continue
		}
		if !tree.Equal(node, again) {
			t.Errorf("%s: formatted formula gives a different tree", got)
		}
	}
}

const yamlProfile = `
levels:
  - ["+", "-"]
  - ["*", "/"]
unary: ["-"]
functions: [sin]
max-depth: 3
constants:
  tau: 6.283185307179586
`

const tomlProfile = `
levels = [["+"], ["*"]]

[constants]
k = 2.0
`

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("fail to write profile: %s", err)
	}
	return file
}

func TestLoadProfileYAML(t *testing.T) {
	prof, err := LoadProfile(writeProfile(t, "math.yaml", yamlProfile))
	if err != nil {
		t.Fatalf("fail to load profile: %s", err)
	}
	if prof.MaxDepth != 3 || len(prof.Levels) != 2 || prof.Constants["tau"] == 0 {
		t.Fatalf("profile not loaded properly: %+v", prof)
	}
	p, err := Compile(prof)
	if err != nil {
		t.Fatalf("fail to compile profile: %s", err)
	}
	tests := []struct {
		Input string
		Err   error
	}{
		{Input: "1 + 2 * sin(tau)"},
		{Input: "((1))"},
		{Input: "2 ^ 3", Err: parse.ErrSyntax},
		{Input: "cos(1)", Err: parse.ErrSyntax},
		{Input: "+1", Err: parse.ErrSyntax},
		{Input: "((((1))))", Err: parse.ErrNested},
	}
	for _, c := range tests {
		_, err := p.Parse(c.Input)
		if c.Err == nil && err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
		}
		if c.Err != nil && !errors.Is(err, c.Err) {
			t.Errorf("%s: want %v, got %v", c.Input, c.Err, err)
		}
	}
	node, _ := p.Parse("tau / 2")
	env, _ := p.Environ(nil)
	if got, err := Eval(node, env); err != nil || math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("tau / 2: want pi, got %f (%v)", got, err)
	}
}

func TestLoadProfileTOML(t *testing.T) {
	prof, err := LoadProfile(writeProfile(t, "math.toml", tomlProfile))
	if err != nil {
		t.Fatalf("fail to load profile: %s", err)
	}
	if !slices.Equal(prof.Unary, DefaultProfile().Unary) {
		t.Errorf("default unary operators should be kept: %v", prof.Unary)
	}
	p, err := Compile(prof)
	if err != nil {
		t.Fatalf("fail to compile profile: %s", err)
	}
	if _, err := p.Parse("1 - 2"); !errors.Is(err, parse.ErrSyntax) {
		t.Errorf("binary - should not be known, got %v", err)
	}
	node, err := p.Parse("k * -k + max(k, 1)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	env, _ := p.Environ(nil)
	if got, _ := Eval(node, env); got != -2 {
		t.Errorf("want -2, got %f", got)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	if _, err := LoadProfile(writeProfile(t, "math.json", "{}")); err == nil {
		t.Errorf("unsupported extension should be rejected")
	}
	if _, err := LoadProfile(writeProfile(t, "bad.yml", "levels: [[")); err == nil {
		t.Errorf("invalid yaml should be rejected")
	}
	tests := []Profile{
		{Levels: [][]string{{"&"}}},
		{Levels: [][]string{{"+"}}, Unary: []string{"!"}},
		{Levels: [][]string{{"+"}}, Functions: []string{"gamma"}},
		{Levels: [][]string{{"+"}, {}}},
	}
	for _, p := range tests {
		if _, err := Compile(p); !errors.Is(err, parse.ErrConfig) {
			t.Errorf("%+v: expected configuration error, got %v", p, err)
		}
	}
}

func TestCompileOptions(t *testing.T) {
	p, err := Compile(DefaultProfile(), parse.WithMaxDepth(2))
	if err != nil {
		t.Fatalf("fail to compile profile: %s", err)
	}
	if _, err := p.Parse("(1)"); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if _, err := p.Parse("((1))"); !errors.Is(err, parse.ErrNested) {
		t.Errorf("expected nesting error, got %v", err)
	}
}

func TestCompileCopiesProfile(t *testing.T) {
	prof := DefaultProfile()
	p, err := Compile(prof)
	if err != nil {
		t.Fatalf("fail to compile profile: %s", err)
	}
	prof.Constants["pi"] = 3
	prof.Levels[0][0] = "*"
	prof.Functions[0] = "gamma"

	node, err := p.Parse("pi + 1")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	env, _ := p.Environ(nil)
	if got, _ := Eval(node, env); math.Abs(got-math.Pi-1) > 1e-9 {
		t.Errorf("constant changed after compilation: pi + 1 = %f", got)
	}

	copied := p.Profile()
	copied.Constants["pi"] = 3
	if got, _ := Eval(node, env); math.Abs(got-math.Pi-1) > 1e-9 {
		t.Errorf("constant changed through Profile: pi + 1 = %f", got)
	}
	if p.Profile().Constants["pi"] != math.Pi {
		t.Errorf("profile of the parser modified")
	}
}

func TestEnvironConstants(t *testing.T) {
	p, err := Compile(DefaultProfile())
	if err != nil {
		t.Fatalf("fail to compile profile: %s", err)
	}
	if _, err := p.Environ(map[string]float64{"pi": 3}); !errors.Is(err, environ.ErrReadOnly) {
		t.Errorf("constant should not be redefined, got %v", err)
	}
	env, err := p.Environ(map[string]float64{"x": 2})
	if err != nil {
		t.Fatalf("fail to create environment: %s", err)
	}
	if err := env.Define("e", 1); !errors.Is(err, environ.ErrReadOnly) {
		t.Errorf("constant should not be shadowed, got %v", err)
	}
	if err := env.Define("x", 3); err != nil {
		t.Errorf("variable should be redefined: %s", err)
	}
}
