package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenloom/lexgram/ast"
	"github.com/tokenloom/lexgram/token"
)

func leaf(text string, line, col int) *ast.Node {
	return ast.New(text, token.Location{Line: line, Column: col})
}

func TestAddChildSetsParent(t *testing.T) {
	root := leaf("root", 1, 1)
	child := leaf("child", 1, 2)
	root.AddChild(child)
	assert.Same(t, root, child.Parent())
	require.Len(t, root.Children, 1)
	assert.Same(t, child, root.Children[0])
}

func TestCalcSize(t *testing.T) {
	root := leaf("root", 1, 1)
	a := leaf("a", 1, 2)
	b := leaf("b", 1, 3)
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(leaf("c", 1, 4))
	assert.Equal(t, 4, root.CalcSize())
}

func TestFindChildPreOrderDepthLimited(t *testing.T) {
	root := leaf("root", 1, 1)
	mid := leaf("mid", 1, 2)
	deep := leaf("target", 1, 3)
	root.AddChild(mid)
	mid.AddChild(deep)

	assert.Nil(t, root.FindChild("target", 0))
	assert.Nil(t, root.FindChild("target", 1))
	assert.Same(t, deep, root.FindChild("target", 2))
}

func TestFindParentWalksUp(t *testing.T) {
	root := leaf("root", 1, 1)
	mid := leaf("mid", 1, 2)
	leafNode := leaf("leaf", 1, 3)
	root.AddChild(mid)
	mid.AddChild(leafNode)

	assert.Same(t, mid, leafNode.FindParent("mid", 5))
	assert.Same(t, root, leafNode.FindParent("root", 5))
	assert.Nil(t, leafNode.FindParent("root", 1))
}

// S9: mutating a clone must not affect the original, and clone parent
// back-links must point into the clone tree.
func TestCloneIndependence(t *testing.T) {
	root := leaf("root", 1, 1)
	child := leaf("child", 1, 2)
	root.AddChild(child)

	clone := root.Clone()
	require.Len(t, clone.Children, 1)
	assert.Same(t, clone, clone.Children[0].Parent())
	assert.NotSame(t, root, clone)
	assert.NotSame(t, child, clone.Children[0])

	clone.AddChild(leaf("extra", 1, 3))
	assert.Len(t, clone.Children, 2)
	assert.Len(t, root.Children, 1, "mutating the clone must not affect the original")
}

// Property 4: RemoveNodesWithText is idempotent.
func TestRemoveNodesWithTextIdempotent(t *testing.T) {
	root := leaf("stmt", 1, 1)
	root.AddChild(leaf("(", 1, 2))
	root.AddChild(leaf("expr", 1, 3))
	root.AddChild(leaf(")", 1, 4))

	set := map[string]bool{"(": true, ")": true}
	root.RemoveNodesWithText(set)
	once := snapshot(root)

	root.RemoveNodesWithText(set)
	twice := snapshot(root)

	assert.Equal(t, once, twice)
	assert.Len(t, root.Children, 1)
	assert.Equal(t, "expr", root.Children[0].Text)
}

// Property 5: Flatten is idempotent, and converges to no node having a
// child sharing its own Text.
func TestFlattenIdempotentAndConverges(t *testing.T) {
	// expr(expr(1, +, 2), *, 3) flattens to expr(1, +, 2, *, 3).
	inner := leaf("expr", 1, 1)
	inner.AddChild(leaf("1", 1, 1))
	inner.AddChild(leaf("+", 1, 2))
	inner.AddChild(leaf("2", 1, 3))

	root := leaf("expr", 1, 1)
	root.AddChild(inner)
	root.AddChild(leaf("*", 1, 4))
	root.AddChild(leaf("3", 1, 5))

	root.Flatten()
	once := snapshot(root)
	assertNoSameTextChild(t, root)

	root.Flatten()
	twice := snapshot(root)
	assert.Equal(t, once, twice)

	var texts []string
	for _, c := range root.Children {
		texts = append(texts, c.Text)
	}
	assert.Equal(t, []string{"1", "+", "2", "*", "3"}, texts)
}

func assertNoSameTextChild(t *testing.T, n *ast.Node) {
	t.Helper()
	for _, child := range n.Children {
		assert.NotEqual(t, n.Text, child.Text, "node %q has same-text child after Flatten", n.Text)
		assertNoSameTextChild(t, child)
	}
}

type snap struct {
	Text     string
	Line     int
	Column   int
	Children []snap
}

func snapshot(n *ast.Node) snap {
	s := snap{Text: n.Text, Line: n.Location.Line, Column: n.Location.Column}
	for _, c := range n.Children {
		s.Children = append(s.Children, snapshot(c))
	}
	return s
}

// Property 6: AST JSON round-trip preserves (text, line, column, children).
func TestJSONRoundTrip(t *testing.T) {
	root := leaf("module", 1, 1)
	a := leaf("id", 2, 3)
	b := leaf("body", 3, 1)
	root.AddChild(a)
	root.AddChild(b)
	b.AddChild(leaf("stmt", 4, 5))

	data, err := ast.WriteToJson(root, "a free-text note")
	require.NoError(t, err)

	restored, errDiag := ast.ReadFromJson(data)
	require.Nil(t, errDiag, "%v", errDiag)

	diff := cmp.Diff(root, restored, cmpopts.IgnoreUnexported(ast.Node{}))
	assert.Empty(t, diff)
}

func TestNodeSatisfiesTreeInterface(t *testing.T) {
	var _ ast.Tree = ast.New("x", token.Location{Line: 1, Column: 1})
}
