package ast

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

// jsonNode is the on-disk node shape: {text, line, column, children}.
type jsonNode struct {
	Text     string     `json:"text"`
	Line     int        `json:"line"`
	Column   int        `json:"column"`
	Children []jsonNode `json:"children,omitempty"`
}

// jsonFile is the on-disk AST file shape: a root node under "root",
// with an optional free-text "comment".
type jsonFile struct {
	Comment string   `json:"comment,omitempty"`
	Root    jsonNode `json:"root"`
}

func toJSONNode(n *Node) jsonNode {
	jn := jsonNode{Text: n.Text, Line: n.Location.Line, Column: n.Location.Column}
	for _, child := range n.Children {
		jn.Children = append(jn.Children, toJSONNode(child))
	}
	return jn
}

func fromJSONNode(jn jsonNode) *Node {
	n := New(jn.Text, token.Location{Line: jn.Line, Column: jn.Column})
	for _, jc := range jn.Children {
		n.AddChild(fromJSONNode(jc))
	}
	return n
}

// WriteToJson serializes n (and, wrapped around it, comment) to the
// AST file shape described in spec.md §6.
func WriteToJson(n *Node, comment string) ([]byte, error) {
	return json.Marshal(jsonFile{Comment: comment, Root: toJSONNode(n)})
}

// ReadFromJson parses an AST file, returning the root node (the
// wrapping comment, if any, is discarded — callers that need it
// should decode the file themselves).
func ReadFromJson(data []byte) (*Node, *diag.Diagnostic) {
	var jf jsonFile
	if err := json.Unmarshal(data, &jf); err != nil {
		return nil, diag.Wrap(diag.ConfigError, err, "parsing AST JSON")
	}
	return fromJSONNode(jf.Root), nil
}
