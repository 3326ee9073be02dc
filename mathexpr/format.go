package mathexpr

import (
	"math"
	"strings"

	"github.com/midbel/exprs/tree"
)

// Format writes a formula tree in infix notation. Parentheses are only added
// where the tree could not be read back otherwise.
func Format(node *tree.Node[Op]) string {
	var str strings.Builder
	format(&str, node)
	return str.String()
}

func format(str *strings.Builder, node *tree.Node[Op]) {
	if node == nil {
		return
	}
	op := node.Value()
	switch op.Kind {
	case Binary:
		left, right := node.Child(0), node.Child(1)
		group(str, left, precedence(left) < op.Level)
		str.WriteString(" ")
		str.WriteString(op.Name)
		str.WriteString(" ")
		group(str, right, precedence(right) <= op.Level)
	case Unary:
		str.WriteString(op.Name)
		child := node.Child(0)
		group(str, child, precedence(child) < math.MaxInt-1)
	case Call:
		str.WriteString(op.Name)
		str.WriteString("(")
		for i, c := range node.Children() {
			if i > 0 {
				str.WriteString(", ")
			}
			format(str, c)
		}
		str.WriteString(")")
	default:
		str.WriteString(op.String())
	}
}

func group(str *strings.Builder, node *tree.Node[Op], paren bool) {
	if paren {
		str.WriteString("(")
	}
	format(str, node)
	if paren {
		str.WriteString(")")
	}
}

// precedence of a node: binary operators have the level of their operator,
// unary operators bind tighter than any binary one and operands the tightest.
func precedence(node *tree.Node[Op]) int {
	if node == nil {
		return math.MaxInt
	}
	switch op := node.Value(); op.Kind {
	case Binary:
		return op.Level
	case Unary:
		return math.MaxInt - 1
	default:
		return math.MaxInt
	}
}
