// Package ast implements the syntax tree the parse algorithms build
// and the post-processing (structure-token pruning, recursion
// flattening) run over it before a caller sees the final tree.
package ast

import "github.com/tokenloom/lexgram/token"

// Node is a named tree node: Text is the rule name for an interior
// node or the token lexeme for a leaf, Location is its source
// position, Children is ordered, and parent is a non-owning back
// reference (the node itself is owned by its parent's Children slice;
// the root is owned by whoever holds it).
type Node struct {
	Text     string
	Location token.Location
	Children []*Node

	parent *Node
}

// Tree is a minimal read-only view of a node (text, position,
// children), the data a second structured-value backend would need
// (the original implementation treats JSON and a VDF/KeyValues tree as
// interchangeable targets — see SPEC_FULL.md §3.A). ast.Node satisfies
// it directly; the JSON serializer in serialize.go reads *Node itself,
// not Tree.
type Tree interface {
	GetText() string
	Line() int
	Column() int
	GetChildren() []*Node
}

var _ Tree = (*Node)(nil)

// New builds a detached Node (no parent, no children).
func New(text string, loc token.Location) *Node {
	return &Node{Text: text, Location: loc}
}

// GetText returns the node's text.
func (n *Node) GetText() string { return n.Text }

// Line returns the node's 1-indexed source line.
func (n *Node) Line() int { return n.Location.Line }

// Column returns the node's 1-indexed source column.
func (n *Node) Column() int { return n.Location.Column }

// GetChildren returns the node's children.
func (n *Node) GetChildren() []*Node { return n.Children }

// Parent returns n's parent, or nil if n is a root.
func (n *Node) Parent() *Node { return n.parent }

// AddChild appends child to n's Children and points child's parent
// back at n. child must not already be parented elsewhere.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// CalcSize returns 1 plus the CalcSize of every child: the total node
// count of the subtree rooted at n.
func (n *Node) CalcSize() int {
	size := 1
	for _, child := range n.Children {
		size += child.CalcSize()
	}
	return size
}

// FindChild searches n's subtree pre-order, depth-limited to maxDepth
// (0 means "only n itself"), for the first node whose Text equals
// text.
func (n *Node) FindChild(text string, maxDepth int) *Node {
	if n.Text == text {
		return n
	}
	if maxDepth <= 0 {
		return nil
	}
	for _, child := range n.Children {
		if found := child.FindChild(text, maxDepth-1); found != nil {
			return found
		}
	}
	return nil
}

// FindParent walks n's parent chain, depth-limited to maxDepth (0
// means "only n itself"), for the first ancestor whose Text equals
// text.
func (n *Node) FindParent(text string, maxDepth int) *Node {
	cur := n
	for depth := 0; cur != nil && depth <= maxDepth; depth++ {
		if cur.Text == text {
			return cur
		}
		cur = cur.parent
	}
	return nil
}

// Clone makes a structural deep copy of n: every descendant is
// duplicated and every clone's parent back-reference points at its
// clone ancestor, not the original tree.
func (n *Node) Clone() *Node {
	clone := &Node{Text: n.Text, Location: n.Location}
	for _, child := range n.Children {
		clone.AddChild(child.Clone())
	}
	return clone
}

// Flatten collapses, post-order, any child whose Text equals its
// parent's Text: the child is removed and its own children are
// spliced into the parent's Children in its place. Idempotent —
// applying Flatten twice has the same effect as applying it once, and
// afterward no node has a child sharing its Text (spec.md §8
// properties 5 and the Flatten invariant in §3).
func (n *Node) Flatten() {
	for _, child := range n.Children {
		child.Flatten()
	}

	flattened := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Text == n.Text {
			for _, grandchild := range child.Children {
				grandchild.parent = n
				flattened = append(flattened, grandchild)
			}
			continue
		}
		flattened = append(flattened, child)
	}
	n.Children = flattened
}

// RemoveNodesWithText drops any direct child whose Text is in set,
// then recurses into the remaining children. Idempotent (spec.md §8
// property 4).
func (n *Node) RemoveNodesWithText(set map[string]bool) {
	kept := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if set[child.Text] {
			continue
		}
		kept = append(kept, child)
	}
	n.Children = kept
	for _, child := range n.Children {
		child.RemoveNodesWithText(set)
	}
}
