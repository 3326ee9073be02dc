package tree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Lisp writes the tree as a s-expression: (+ 1 (* 2 3)). Leaves are written
// without parentheses.
func Lisp[V any](n *Node[V], str func(V) string) string {
	var w strings.Builder
	writeLisp(&w, n, textOf(str))
	return w.String()
}

func writeLisp[V any](w io.Writer, n *Node[V], str func(V) string) {
	if n.IsLeaf() {
		io.WriteString(w, str(n.value))
		return
	}
	io.WriteString(w, "(")
	io.WriteString(w, str(n.value))
	for _, c := range n.children {
		io.WriteString(w, " ")
		writeLisp(w, c, str)
	}
	io.WriteString(w, ")")
}

// Parentheses writes the tree in the compact form +(1,*(2,3)).
func Parentheses[V any](n *Node[V], str func(V) string) string {
	var w strings.Builder
	writeParens(&w, n, textOf(str))
	return w.String()
}

func writeParens[V any](w io.Writer, n *Node[V], str func(V) string) {
	io.WriteString(w, str(n.value))
	if n.IsLeaf() {
		return
	}
	io.WriteString(w, "(")
	for i, c := range n.children {
		if i > 0 {
			io.WriteString(w, ",")
		}
		writeParens(w, c, str)
	}
	io.WriteString(w, ")")
}

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// Tree writes one node per line, children drawn below their parent.
func Tree[V any](n *Node[V], str func(V) string) string {
	var w strings.Builder
	str = textOf(str)
	io.WriteString(&w, str(n.value))
	io.WriteString(&w, "\n")
	writeTree(&w, n, "", str)
	return w.String()
}

func writeTree[V any](w io.Writer, n *Node[V], prefix string, str func(V) string) {
	for i, c := range n.children {
		branch, indent := branchMid, indentMid
		if i == len(n.children)-1 {
			branch, indent = branchLast, indentLast
		}
		io.WriteString(w, prefix)
		io.WriteString(w, branch)
		io.WriteString(w, str(c.value))
		io.WriteString(w, "\n")
		writeTree(w, c, prefix+indent, str)
	}
}

// Dot writes the tree as a graphviz digraph.
func Dot[V any](n *Node[V], name string, str func(V) string) string {
	var (
		w  strings.Builder
		id int
	)
	if name == "" {
		name = "tree"
	}
	str = textOf(str)
	fmt.Fprintf(&w, "digraph %s {\n", strconv.Quote(name))

	var walk func(*Node[V]) int
	walk = func(n *Node[V]) int {
		curr := id
		id++
		fmt.Fprintf(&w, "\tnode%d [label=%s];\n", curr, strconv.Quote(str(n.value)))
		for _, c := range n.children {
			child := walk(c)
			fmt.Fprintf(&w, "\tnode%d -> node%d;\n", curr, child)
		}
		return curr
	}
	walk(n)
	io.WriteString(&w, "}\n")
	return w.String()
}

func textOf[V any](str func(V) string) func(V) string {
	if str != nil {
		return str
	}
	return func(v V) string {
		return fmt.Sprint(v)
	}
}
