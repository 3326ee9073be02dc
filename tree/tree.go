package tree

import (
	"iter"
	"slices"
)

// Node is a node of an ordered, rooted tree. A node has at most one parent:
// attaching it somewhere else removes it from its previous parent.
type Node[V any] struct {
	value    V
	parent   *Node[V]
	children []*Node[V]
}

func New[V any](value V) *Node[V] {
	return &Node[V]{
		value: value,
	}
}

// Attach appends the given nodes to the children of n. It panics if one of
// them is n itself or one of its ancestors.
func (n *Node[V]) Attach(children ...*Node[V]) *Node[V] {
	for _, c := range children {
		if c == nil {
			continue
		}
		if n.isAncestor(c) {
			panic("tree: attaching node would create a cycle")
		}
		c.Detach()
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Detach removes n from its parent. n becomes the root of its own tree.
func (n *Node[V]) Detach() *Node[V] {
	if n.parent == nil {
		return n
	}
	p := n.parent
	if ix := slices.Index(p.children, n); ix >= 0 {
		p.children = slices.Delete(p.children, ix, ix+1)
	}
	n.parent = nil
	return n
}

func (n *Node[V]) isAncestor(other *Node[V]) bool {
	for p := n; p != nil; p = p.parent {
		if p == other {
			return true
		}
	}
	return false
}

func (n *Node[V]) Value() V {
	return n.value
}

func (n *Node[V]) Parent() *Node[V] {
	return n.parent
}

func (n *Node[V]) Root() *Node[V] {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns a copy of the list of children of n.
func (n *Node[V]) Children() []*Node[V] {
	return slices.Clone(n.children)
}

func (n *Node[V]) Child(ix int) *Node[V] {
	if ix < 0 || ix >= len(n.children) {
		return nil
	}
	return n.children[ix]
}

func (n *Node[V]) ChildCount() int {
	return len(n.children)
}

func (n *Node[V]) IsLeaf() bool {
	return len(n.children) == 0
}

func (n *Node[V]) IsRoot() bool {
	return n.parent == nil
}

// Size returns the number of nodes of the subtree rooted at n.
func (n *Node[V]) Size() int {
	size := 1
	for _, c := range n.children {
		size += c.Size()
	}
	return size
}

// Depth returns the number of edges between n and the root of its tree.
func (n *Node[V]) Depth() int {
	var depth int
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Height returns the number of edges on the longest path from n to a leaf.
func (n *Node[V]) Height() int {
	var height int
	for _, c := range n.children {
		height = max(height, c.Height()+1)
	}
	return height
}

// All iterates over the subtree rooted at n in pre-order.
func (n *Node[V]) All() iter.Seq[*Node[V]] {
	return func(yield func(*Node[V]) bool) {
		n.preorder(yield)
	}
}

func (n *Node[V]) preorder(yield func(*Node[V]) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.children {
		if !c.preorder(yield) {
			return false
		}
	}
	return true
}

// PostOrder iterates over the subtree rooted at n, children first.
func (n *Node[V]) PostOrder() iter.Seq[*Node[V]] {
	return func(yield func(*Node[V]) bool) {
		n.postorder(yield)
	}
}

func (n *Node[V]) postorder(yield func(*Node[V]) bool) bool {
	for _, c := range n.children {
		if !c.postorder(yield) {
			return false
		}
	}
	return yield(n)
}

// Map builds a new tree with the same shape as n, each value converted by fn.
func Map[V, W any](n *Node[V], fn func(V) W) *Node[W] {
	if n == nil {
		return nil
	}
	m := New(fn(n.value))
	for _, c := range n.children {
		m.Attach(Map(c, fn))
	}
	return m
}

// Equal reports whether both trees have the same shape and the same values.
func Equal[V comparable](a, b *Node[V]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.value != b.value || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
