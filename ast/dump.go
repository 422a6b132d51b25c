package ast

import "github.com/alecthomas/repr"

// Dump renders n for human inspection: the in-library equivalent of
// the teacher's cmd/mibdump use of alecthomas/repr to eyeball a parsed
// structure against a baseline.
func (n *Node) Dump() string {
	return repr.String(n, repr.Indent("  "), repr.OmitEmpty(true))
}
