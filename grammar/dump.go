package grammar

import "github.com/alecthomas/repr"

// Dump renders the grammar's rules and alternatives for human
// inspection, the in-library equivalent of the teacher's
// cmd/mibdump use of alecthomas/repr to eyeball parsed structures.
func (g *Grammar) Dump() string {
	return repr.String(g, repr.Indent("  "), repr.OmitEmpty(true))
}

// Note: the original implementation's Grammar::WriteFile/Rule::Write
// (a grammar-file writer) is not implemented here. spec.md's Non-goals
// explicitly name "grammar-file writing" as left unimplemented; Load
// is one-directional by design.
