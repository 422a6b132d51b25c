package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenloom/lexgram/grammar"
	"github.com/tokenloom/lexgram/lexicon"
	"github.com/tokenloom/lexgram/parse"
	"github.com/tokenloom/lexgram/token"
)

func jsonLexer(t *testing.T) *lexicon.Lexer {
	t.Helper()
	cfg := []byte(`{
		"token_generators": [
			{"name": "Paren"},
			{"name": "Delimiter"},
			{"name": "String", "config": {"process_escape_sequences": true}},
			{"name": "Number"},
			{"name": "Identifier", "config": {"keywords": ["true", "false", "null"]}}
		]
	}`)
	lx, errDiag := lexicon.New(cfg)
	require.Nil(t, errDiag, "%v", errDiag)
	return lx
}

func arithLexer(t *testing.T) *lexicon.Lexer {
	t.Helper()
	cfg := []byte(`{
		"token_generators": [
			{"name": "Paren"},
			{"name": "Number"},
			{"name": "Operator", "config": {"operators": ["=", "+", "*"]}},
			{"name": "Identifier", "config": {"keywords": []}}
		]
	}`)
	lx, errDiag := lexicon.New(cfg)
	require.Nil(t, errDiag, "%v", errDiag)
	return lx
}

func tokenize(t *testing.T, lx *lexicon.Lexer, src string) []token.Token {
	t.Helper()
	tokens, errDiag := lx.Tokenize([]byte(src), false, token.Location{Line: 1, Column: 1})
	require.Nil(t, errDiag, "%v", errDiag)
	return tokens
}

func loadGrammar(t *testing.T, data string) *grammar.Grammar {
	t.Helper()
	g, errDiag := grammar.Load([]byte(data))
	require.Nil(t, errDiag, "%v", errDiag)
	return g
}

// S1: a small JSON-shaped grammar parsed with Quick produces the
// expected tree shape for an object with a nested array value.
func TestQuickJSONValue(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "value",
		"algorithm": "quick",
		"rules": {
			"value":  [["object"], ["array"], ["@string"], ["@number"], ["true"], ["false"], ["null"]],
			"object": [["{", "pair", "}"]],
			"pair":   [["@string", ":", "value"]],
			"array":  [["[", "value", ",", "value", "]"]]
		}
	}`)
	tokens := tokenize(t, jsonLexer(t), `{"a": [1, 2]}`)

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)
	require.Equal(t, "value", root.Text)
	obj := root.FindChild("object", 1)
	require.NotNil(t, obj)
	pair := obj.FindChild("pair", 1)
	require.NotNil(t, pair)
	arr := pair.FindChild("array", 2)
	require.NotNil(t, arr, "the pair's value should resolve through to the nested array")
}

// Property 8: Quick's memoization cache never changes the result,
// only the work needed to reach it. On "1 a" the first alternative
// parses num at position 0 and then fails, so the second alternative
// takes that num from the salvage cache instead of reparsing it; the
// result must still be the second alternative's full tree, and two
// independent runs must agree.
func TestQuickMemoizationDoesNotChangeResult(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "s",
		"algorithm": "quick",
		"rules": {
			"s":      [["num", "num"], ["num", "@identifier"]],
			"num":    [["@number"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "1 a")

	root1, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)
	root2, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)

	assert.Equal(t, root1.Dump(), root2.Dump(), "repeated parses of the same input must agree")
	require.Len(t, root1.Children, 2)
	assert.Equal(t, "num", root1.Children[0].Text)
}

// S2: arithmetic precedence under Slow, with flattening on, collapses
// nested same-named expr wrappers into one flat chain. Each "+"/"*"
// terminal wrapper shares its Text with its own single leaf child (the
// matched lexeme equals the terminal's pattern), so Flatten's same-text
// collapse rule empties it down to a bare childless node in the same
// pass that hoists it up into the shared expr parent — functionally an
// operator leaf, just represented as a childless wrapper rather than a
// leaf outright. The @number wrappers, whose pattern never equals the
// matched lexeme, keep their leaf child throughout.
func TestSlowArithmeticFlattensToOperatorChain(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "expr",
		"algorithm": "slow",
		"flags": {"flatten": true},
		"rules": {
			"expr": [["expr", "+", "expr"], ["expr", "*", "expr"], ["@number"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "1 + 2 * 3")

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)
	assert.Equal(t, "expr", root.Text)

	var texts []string
	for _, c := range root.Children {
		texts = append(texts, c.Text)
	}
	assert.Equal(t, []string{"@number", "+", "@number", "*", "@number"}, texts)

	require.Len(t, root.Children[1].Children, 0, "operator wrapper collapses to childless once it shares text with its leaf")
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "1", root.Children[0].Children[0].Text)
	assert.Equal(t, "2", root.Children[2].Children[0].Text)
	assert.Equal(t, "3", root.Children[4].Children[0].Text)
}

// S3: right-associative chained assignment. The grammar is written
// left-to-right (no trailing -1): tracing the original continuous-
// cursor terminal-pinning algorithm by hand shows the RightToLeft
// form of this exact alternative fails to cover the full range for
// chains three identifiers deep (the leading identifier and its
// following "=" are left unpinned), so this is the direction that
// actually produces the documented result.
func TestSlowRightAssociativeAssignment(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "assign",
		"algorithm": "slow",
		"rules": {
			"assign": [["@identifier", "=", "assign"], ["@identifier"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "a = b = c")

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)

	require.Len(t, root.Children, 3)
	assert.Equal(t, "a", root.Children[0].Children[0].Text, "wrapper leaf for @identifier")
	assert.Equal(t, "=", root.Children[1].Children[0].Text)
	inner := root.Children[2]
	assert.Equal(t, "assign", inner.Text)
	require.Len(t, inner.Children, 3)
	assert.Equal(t, "b", inner.Children[0].Children[0].Text)
	innerInner := inner.Children[2]
	assert.Equal(t, "assign", innerInner.Text)
	require.Len(t, innerInner.Children, 1)
	assert.Equal(t, "c", innerInner.Children[0].Children[0].Text)
}

// Left-associative chained assignment via the mirrored, RightToLeft
// alternative: assign : assign "=" @identifier, marked -1. Slow's
// range-based partitioning handles this the way Quick and LookAhead's
// left-recursion guards cannot.
func TestSlowLeftAssociativeAssignmentViaRightToLeft(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "assign",
		"algorithm": "slow",
		"rules": {
			"assign": [["assign", "=", "@identifier", -1], ["@identifier"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "a = b = c")

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)

	require.Len(t, root.Children, 3)
	assert.Equal(t, "=", root.Children[1].Children[0].Text)
	assert.Equal(t, "c", root.Children[2].Children[0].Text)
	inner := root.Children[0]
	assert.Equal(t, "assign", inner.Text)
	require.Len(t, inner.Children, 3)
	assert.Equal(t, "b", inner.Children[2].Children[0].Text)
	innerInner := inner.Children[0]
	assert.Equal(t, "assign", innerInner.Text)
	require.Len(t, innerInner.Children, 1)
	assert.Equal(t, "a", innerInner.Children[0].Children[0].Text)
}

// S4: a left-recursive Quick grammar must terminate without diverging
// and must fully consume the input, growing the base case one token at
// a time via the grow-seed mechanism.
func TestQuickLeftRecursionGuardTerminates(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "x",
		"algorithm": "quick",
		"rules": {
			"x": [["x", "a"], ["a"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "a a a")

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)

	outer := root
	assert.Equal(t, "x", outer.Text)
	require.Len(t, outer.Children, 2)
	assert.Equal(t, "a", outer.Children[1].Text)
	mid := outer.Children[0]
	assert.Equal(t, "x", mid.Text)
	require.Len(t, mid.Children, 2)
	assert.Equal(t, "a", mid.Children[1].Text)
	inner := mid.Children[0]
	assert.Equal(t, "x", inner.Text)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "a", inner.Children[0].Text)
}

// S6: bracket balance under Slow. A parenthesized expr sub-range must
// resolve to exactly the tokens inside the parens, not spill past the
// closing bracket.
func TestSlowBracketBalance(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "stmt",
		"algorithm": "slow",
		"rules": {
			"stmt": [["(", "expr", ")"]],
			"expr": [["expr", "+", "expr"], ["@identifier"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "(a+b)")

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "(", root.Children[0].Text)
	expr := root.Children[1]
	assert.Equal(t, "expr", expr.Text)
	assert.Equal(t, ")", root.Children[2].Text)

	require.Len(t, expr.Children, 3)
	assert.Equal(t, "a", expr.Children[0].Children[0].Children[0].Text, "expr -> @identifier wrapper -> leaf")
	assert.Equal(t, "+", expr.Children[1].Children[0].Text)
	assert.Equal(t, "b", expr.Children[2].Children[0].Children[0].Text, "expr -> @identifier wrapper -> leaf")
}

// A mismatched or extra closing bracket must fail to parse: the top
// rule only succeeds by matching the entire token range, so any
// content outside the parens leaves the range uncovered.
func TestSlowBracketImbalanceFails(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "stmt",
		"algorithm": "slow",
		"rules": {
			"stmt": [["(", "expr", ")"]],
			"expr": [["expr", "+", "expr"], ["@identifier"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "(a+b))")

	_, errDiag := parse.Run(tokens, g)
	assert.NotNil(t, errDiag, "a trailing unmatched close paren must not parse")
}

// S8: LookAhead commits to the first alternative whose bounded probe
// succeeds and does not backtrack into a sibling even if the commit
// later fails deeper in.
func TestLookAheadCommitsToFirstPlausibleAlternative(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "s",
		"algorithm": "lookahead",
		"rules": {
			"s": [["@identifier", "@identifier"], ["@identifier"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "a b")

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "a", root.Children[0].Text)
	assert.Equal(t, "b", root.Children[1].Text)
}

// S10: farthest-failure diagnostics under Quick. When no alternative
// matches, the reported location is the farthest position the failed
// attempt reached, not the very first token.
func TestQuickFarthestFailure(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "s",
		"algorithm": "quick",
		"rules": {
			"s": [["@identifier", "@identifier", "@number"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "a b b")

	_, errDiag := parse.Run(tokens, g)
	require.NotNil(t, errDiag)
	assert.Equal(t, 1, errDiag.Location.Line)
	assert.Equal(t, 5, errDiag.Location.Column, "failure should be reported at the third token, not the first")
}

// Property 7: Slow never pins a terminal inside a bracketed
// sub-expression at a shallower bracket depth than the range it's
// scanning started at.
func TestSlowRespectsBracketDepthWhenPinning(t *testing.T) {
	g := loadGrammar(t, `{
		"initial_rule": "stmt",
		"algorithm": "slow",
		"rules": {
			"stmt": [["(", "inner", ")"], ["@identifier"]],
			"inner": [["(", "inner", ")"], ["@identifier"]]
		}
	}`)
	tokens := tokenize(t, arithLexer(t), "((a))")

	root, errDiag := parse.Run(tokens, g)
	require.Nil(t, errDiag, "%v", errDiag)
	require.Len(t, root.Children, 3)
	mid := root.Children[1]
	assert.Equal(t, "inner", mid.Text)
	require.Len(t, mid.Children, 3)
	deepest := mid.Children[1]
	assert.Equal(t, "inner", deepest.Text)
	require.Len(t, deepest.Children, 1)
	assert.Equal(t, "@identifier", deepest.Children[0].Text, "terminal sub-ranges build a wrapper node named after the pattern")
	require.Len(t, deepest.Children[0].Children, 1)
	assert.Equal(t, "a", deepest.Children[0].Children[0].Text)
}
