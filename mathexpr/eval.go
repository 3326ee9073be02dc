package mathexpr

import (
	"errors"
	"fmt"
	"math"

	"github.com/midbel/distance"

	"github.com/midbel/exprs/environ"
	"github.com/midbel/exprs/tree"
)

var (
	ErrZero  = errors.New("division by zero")
	ErrArity = errors.New("wrong number of arguments")
)

// UndefinedError reports a variable or a function without definition. Others
// holds the known names closest to Name.
type UndefinedError struct {
	Name   string
	Others []string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s: undefined identifier", e.Name)
}

func (e *UndefinedError) Unwrap() error {
	return environ.ErrUndefined
}

// Eval computes the value of a formula tree. Variables are resolved in env,
// which can be nil when the formula has none.
func Eval(node *tree.Node[Op], env environ.Environ[float64]) (float64, error) {
	if env == nil {
		env = environ.Empty[float64]()
	}
	return eval(node, env)
}

func eval(node *tree.Node[Op], env environ.Environ[float64]) (float64, error) {
	if node == nil {
		return 0, fmt.Errorf("missing operand")
	}
	op := node.Value()
	switch op.Kind {
	case Const:
		return op.Value, nil
	case Var:
		v, err := env.Resolve(op.Name)
		if errors.Is(err, environ.ErrUndefined) {
			err = &UndefinedError{
				Name:   op.Name,
				Others: distance.Levenshtein(op.Name, env.Names()),
			}
		}
		return v, err
	case Unary:
		return evalUnary(op, node, env)
	case Binary:
		return evalBinary(op, node, env)
	case Call:
		return evalCall(op, node, env)
	default:
		return 0, fmt.Errorf("%s: unsupported node", op.Kind)
	}
}

func evalUnary(op Op, node *tree.Node[Op], env environ.Environ[float64]) (float64, error) {
	if node.ChildCount() != 1 {
		return 0, fmt.Errorf("%s: %w", op.Name, ErrArity)
	}
	v, err := eval(node.Child(0), env)
	if err != nil {
		return 0, err
	}
	switch op.Name {
	case "-":
		return -v, nil
	case "+":
		return v, nil
	default:
		return 0, fmt.Errorf("%s: unsupported unary operator", op.Name)
	}
}

func evalBinary(op Op, node *tree.Node[Op], env environ.Environ[float64]) (float64, error) {
	if node.ChildCount() != 2 {
		return 0, fmt.Errorf("%s: %w", op.Name, ErrArity)
	}
	left, err := eval(node.Child(0), env)
	if err != nil {
		return 0, err
	}
	right, err := eval(node.Child(1), env)
	if err != nil {
		return 0, err
	}
	switch op.Name {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, ErrZero
		}
		return left / right, nil
	case "%":
		if right == 0 {
			return 0, ErrZero
		}
		return math.Mod(left, right), nil
	case "^":
		return math.Pow(left, right), nil
	default:
		return 0, fmt.Errorf("%s: unsupported binary operator", op.Name)
	}
}

func evalCall(op Op, node *tree.Node[Op], env environ.Environ[float64]) (float64, error) {
	fn, ok := builtins[op.Name]
	if !ok {
		return 0, &UndefinedError{
			Name:   op.Name,
			Others: distance.Levenshtein(op.Name, Builtins()),
		}
	}
	n := node.ChildCount()
	if (fn.Arity == variadic && n == 0) || (fn.Arity != variadic && n != fn.Arity) {
		return 0, fmt.Errorf("%s: %w: got %d", op.Name, ErrArity, n)
	}
	args := make([]float64, 0, n)
	for _, c := range node.Children() {
		v, err := eval(c, env)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	return fn.Call(args), nil
}
