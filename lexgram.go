// Package lexgram is the public facade over the lexicon, grammar, ast
// and parse packages: given a lexicon JSON config and a grammar JSON
// document, it turns source text or a source file into an AST, or a
// located diagnostic explaining why it couldn't.
package lexgram

import (
	"os"

	"github.com/tokenloom/lexgram/ast"
	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/grammar"
	"github.com/tokenloom/lexgram/lexicon"
	"github.com/tokenloom/lexgram/parse"
	"github.com/tokenloom/lexgram/token"
)

// Diagnostic is the error type every fallible operation in this
// package returns.
type Diagnostic = diag.Diagnostic

// ConfigureLexer builds a Lexer from a lexicon JSON document (spec.md
// §4.1/§6). The returned Lexer is immutable and safe to share across
// concurrent Parse/ParseFile calls.
func ConfigureLexer(lexiconJSON []byte) (*lexicon.Lexer, *Diagnostic) {
	return lexicon.New(lexiconJSON)
}

// LoadGrammar parses a grammar JSON document (spec.md §4.2/§6). The
// returned Grammar is immutable and safe to share across concurrent
// Parse/ParseFile calls.
func LoadGrammar(grammarJSON []byte) (*grammar.Grammar, *Diagnostic) {
	return grammar.Load(grammarJSON)
}

// Parse tokenizes text with lx and runs the algorithm g names over the
// resulting token stream, post-processing per g.Flags.
func Parse(text string, g *grammar.Grammar, lx *lexicon.Lexer) (*ast.Node, *Diagnostic) {
	tokens, errDiag := lx.Tokenize([]byte(text), false, token.Location{Line: 1, Column: 1})
	if errDiag != nil {
		return nil, errDiag
	}
	return parse.Run(tokens, g)
}

// ParseFile reads the file at path and parses its contents exactly as
// Parse would.
func ParseFile(path string, g *grammar.Grammar, lx *lexicon.Lexer) (*ast.Node, *Diagnostic) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(diag.IO, err, "reading "+path)
	}
	tokens, errDiag := lx.Tokenize(data, false, token.Location{Line: 1, Column: 1})
	if errDiag != nil {
		return nil, errDiag
	}
	return parse.Run(tokens, g)
}

// SerializeAst writes n to the AST JSON file shape (spec.md §6),
// wrapped with a free-text comment.
func SerializeAst(n *ast.Node, comment string) ([]byte, error) {
	return ast.WriteToJson(n, comment)
}

// DeserializeAst parses an AST JSON file, returning its root node.
func DeserializeAst(data []byte) (*ast.Node, *Diagnostic) {
	return ast.ReadFromJson(data)
}
