// Package parse implements the three parse algorithms — Quick,
// LookAhead, and Slow — behind one shared Algorithm contract, and a
// post-processing pass (structure-token pruning, flattening) run over
// whichever of them produces a tree.
package parse

import (
	"github.com/tokenloom/lexgram/ast"
	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/grammar"
	"github.com/tokenloom/lexgram/token"
)

// Algorithm is the common contract every parse strategy satisfies:
// (tokens, grammar) → AST | diagnostic. Each call constructs a fresh
// Algorithm value with its own cache and attempt state (spec.md §5);
// nothing is shared across calls.
type Algorithm interface {
	Parse() (*ast.Node, *diag.Diagnostic)
}

// New constructs the Algorithm named by g.AlgorithmName over tokens.
func New(tokens []token.Token, g *grammar.Grammar) (Algorithm, *diag.Diagnostic) {
	switch g.AlgorithmName {
	case grammar.Quick:
		return NewQuick(tokens, g), nil
	case grammar.LookAhead:
		return NewLookAhead(tokens, g), nil
	case grammar.Slow:
		return NewSlow(tokens, g), nil
	default:
		return nil, diag.Newf(diag.ConfigError, "unknown algorithm %q", g.AlgorithmName)
	}
}

// Run parses tokens under g with the algorithm it names, then applies
// g.Flags post-processing (structure-token pruning, then flattening —
// the original implementation's Parser::PostProcessTree order, see
// SPEC_FULL.md §4.7).
func Run(tokens []token.Token, g *grammar.Grammar) (*ast.Node, *diag.Diagnostic) {
	if len(tokens) == 0 {
		return nil, diag.New(diag.ParseError, "no tokens to parse")
	}

	algo, errDiag := New(tokens, g)
	if errDiag != nil {
		return nil, errDiag
	}

	root, errDiag := algo.Parse()
	if errDiag != nil {
		return nil, errDiag
	}
	if root == nil {
		return nil, diag.New(diag.Internal, "algorithm reported success with a nil tree")
	}

	if g.Flags.DeleteStructureTokens {
		root.RemoveNodesWithText(grammar.StructureTokenSet)
	}
	if g.Flags.Flatten {
		root.Flatten()
	}

	return root, nil
}
