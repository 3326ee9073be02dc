package mathexpr

import (
	"math"
	"slices"
	"strconv"
)

type OpKind int8

const (
	Const OpKind = iota
	Var
	Unary
	Binary
	Call
)

func (k OpKind) String() string {
	switch k {
	case Const:
		return "const"
	case Var:
		return "var"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// Op is the value stored in each node of a formula tree. Level is the
// precedence level of a binary operator, starting at zero for the lowest.
type Op struct {
	Kind  OpKind
	Name  string
	Value float64
	Level int
}

func (o Op) String() string {
	if o.Kind == Const {
		return strconv.FormatFloat(o.Value, 'g', -1, 64)
	}
	return o.Name
}

type builtin struct {
	Arity int
	Call  func([]float64) float64
}

// variadic functions accept one or more arguments.
const variadic = -1

func unary(fn func(float64) float64) builtin {
	return builtin{
		Arity: 1,
		Call: func(args []float64) float64 {
			return fn(args[0])
		},
	}
}

func binary(fn func(float64, float64) float64) builtin {
	return builtin{
		Arity: 2,
		Call: func(args []float64) float64 {
			return fn(args[0], args[1])
		},
	}
}

var builtins = map[string]builtin{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"pow":   binary(math.Pow),
	"atan2": binary(math.Atan2),
	"hypot": binary(math.Hypot),
	"min": {
		Arity: variadic,
		Call: func(args []float64) float64 {
			return slices.Min(args)
		},
	},
	"max": {
		Arity: variadic,
		Call: func(args []float64) float64 {
			return slices.Max(args)
		},
	},
}

// Builtins returns the sorted names of the functions known by the evaluator.
func Builtins() []string {
	var list []string
	for n := range builtins {
		list = append(list, n)
	}
	slices.Sort(list)
	return list
}
