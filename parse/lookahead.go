package parse

import (
	"github.com/tokenloom/lexgram/ast"
	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/grammar"
	"github.com/tokenloom/lexgram/token"
)

// Defaults grounded on original_source/ParseLibrary/Source/
// LookAheadParseAlgorithm.cpp's lookAheadCount and maxRecursionDepth
// constants.
const (
	defaultLookAheadCount    = 5
	defaultMaxRecursionDepth = 16
)

// LookAheadAlgorithm picks, before committing, which alternative of a
// rule to follow by probing up to LookAheadCount tokens ahead of the
// current position. Unlike Quick it never backtracks across
// alternatives once one is chosen — the probe is the only arbitration
// step (spec.md §4.5).
type LookAheadAlgorithm struct {
	tokens  []token.Token
	grammar *grammar.Grammar

	LookAheadCount    int
	MaxRecursionDepth int

	cache map[quickCacheKey]quickCacheEntry

	maxFailPos int
	failDiag   *diag.Diagnostic
}

// NewLookAhead builds a LookAheadAlgorithm over tokens under g, with
// the original implementation's default probe depth and recursion
// ceiling.
func NewLookAhead(tokens []token.Token, g *grammar.Grammar) *LookAheadAlgorithm {
	return &LookAheadAlgorithm{
		tokens:            tokens,
		grammar:           g,
		LookAheadCount:    defaultLookAheadCount,
		MaxRecursionDepth: defaultMaxRecursionDepth,
		cache:             make(map[quickCacheKey]quickCacheEntry),
		maxFailPos:        -1,
	}
}

// Parse implements Algorithm.
func (l *LookAheadAlgorithm) Parse() (*ast.Node, *diag.Diagnostic) {
	root := l.grammar.GetInitialRule()
	if root == nil {
		return nil, diag.Newf(diag.ConfigError, "initial rule %q not found", l.grammar.InitialRule)
	}

	node, pos, ok := l.matchRule(0, root, 0)
	if !ok {
		if l.failDiag != nil {
			return nil, l.failDiag
		}
		return nil, diag.New(diag.ParseError, "failed to parse input")
	}
	if pos != len(l.tokens) {
		return nil, diag.Atf(diag.ParseError, l.tokens[pos].Location,
			"unconsumed input starting at %q", l.tokens[pos].Lexeme)
	}
	return node, nil
}

func (l *LookAheadAlgorithm) matchRule(position int, rule *grammar.Rule, depth int) (*ast.Node, int, bool) {
	if position < 0 || position >= len(l.tokens) {
		return nil, position, false
	}
	if depth > l.MaxRecursionDepth {
		return nil, position, false
	}

	key := quickCacheKey{rule.Name, position}
	if entry, ok := l.cache[key]; ok {
		return entry.node, position + entry.consumed, true
	}

	idx := l.determineAlternative(position, rule.Alternatives, depth)
	if idx < 0 {
		l.recordFailure(position, rule)
		return nil, position, false
	}

	node := ast.New(rule.Name, l.tokens[position].Location)
	children, endPos, failPos, ok := l.matchSequence(position, rule.Alternatives[idx], depth)
	if !ok {
		l.recordFailure(failPos, rule)
		return nil, position, false
	}
	for _, c := range children {
		node.AddChild(c)
	}
	l.cache[key] = quickCacheEntry{node: node, consumed: endPos - position}
	return node, endPos, true
}

func (l *LookAheadAlgorithm) recordFailure(position int, rule *grammar.Rule) {
	if position > l.maxFailPos {
		l.maxFailPos = position
		l.failDiag = diag.Atf(diag.ParseError, l.tokens[position].Location,
			"failed to match rule %q at %q", rule.Name, l.tokens[position].Lexeme)
	}
}

// determineAlternative returns the index of the first alternative
// whose bounded probe succeeds, or -1 if none does.
func (l *LookAheadAlgorithm) determineAlternative(position int, alternatives []*grammar.MatchSequence, depth int) int {
	for idx, alt := range alternatives {
		if l.tryMatchSequence(position, alt, l.LookAheadCount, depth) {
			return idx
		}
	}
	return -1
}

// tryMatchSequence probes alt starting at position without building
// any tree: it spends at most remainingLookahead tokens of budget,
// and once that budget is exhausted it assumes the rest of the
// sequence is plausible (the probe's whole point is to stay cheap).
func (l *LookAheadAlgorithm) tryMatchSequence(position int, alt *grammar.MatchSequence, remainingLookahead, depth int) bool {
	pos := position
	budget := remainingLookahead

	for _, gt := range alt.Tokens {
		if budget <= 0 {
			return true
		}
		if pos >= len(l.tokens) {
			return false
		}
		result, ruleName := gt.Matches(l.tokens[pos])
		switch result {
		case grammar.Yes:
			pos++
			budget--
		case grammar.Maybe:
			if depth+1 > l.MaxRecursionDepth {
				return false
			}
			subRule := l.grammar.LookupRule(ruleName)
			if subRule == nil {
				return false
			}
			matched := false
			for _, subAlt := range subRule.Alternatives {
				if l.tryMatchSequence(pos, subAlt, budget, depth+1) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
			pos++
			budget--
		default:
			return false
		}
	}
	return true
}

// matchSequence actually builds alt's children, once DetermineAlternative
// has committed to it. No backtracking to a sibling alternative happens
// here even on failure. failPos reports how far this commit attempt
// actually reached before giving up, for farthest-failure diagnostics.
func (l *LookAheadAlgorithm) matchSequence(position int, alt *grammar.MatchSequence, depth int) (children []*ast.Node, endPos, failPos int, ok bool) {
	pos := position
	children = make([]*ast.Node, 0, len(alt.Tokens))
	lastIdx := len(l.tokens) - 1

	for _, gt := range alt.Tokens {
		if pos >= len(l.tokens) {
			return nil, position, lastIdx, false
		}
		result, ruleName := gt.Matches(l.tokens[pos])
		switch result {
		case grammar.Yes:
			children = append(children, ast.New(l.tokens[pos].Lexeme, l.tokens[pos].Location))
			pos++
		case grammar.Maybe:
			subRule := l.grammar.LookupRule(ruleName)
			if subRule == nil {
				return nil, position, pos, false
			}
			child, newPos, subOk := l.matchRule(pos, subRule, depth+1)
			if !subOk {
				return nil, position, pos, false
			}
			children = append(children, child)
			pos = newPos
		default:
			return nil, position, pos, false
		}
	}
	return children, pos, pos, true
}
