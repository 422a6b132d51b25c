package parse

import (
	"github.com/tokenloom/lexgram/ast"
	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/grammar"
	"github.com/tokenloom/lexgram/token"
)

// tokenRange is a half-open [Start, End) slice of the token stream.
type tokenRange struct {
	Start, End int
}

func (r tokenRange) len() int { return r.End - r.Start }

// slowCacheKey identifies one (rule, range) attempt, the Slow
// algorithm's unit of memoization (grounded on original_source/
// ParseLibrary/Source/SlowParseAlgorithm.cpp's ParseCacheKey).
type slowCacheKey struct {
	ruleName   string
	start, end int
}

// SlowAlgorithm resolves an alternative by pinning its terminals to
// exact positions at bracket-depth zero within the current range
// (scanning from the range's left edge, or its right edge when the
// alternative's Direction is RightToLeft), then recursively
// partitioning whatever ranges remain between pinned terminals among
// the alternative's non-terminals. A gap holding more than one
// adjacent non-terminal is not split: the alternative is rejected.
// Matching whole ranges rather than advancing a cursor is what makes
// it "slow" relative to Quick and LookAhead, and what lets it resolve
// infix sequences neither of those can (spec.md §4.6).
type SlowAlgorithm struct {
	tokens  []token.Token
	grammar *grammar.Grammar

	success map[slowCacheKey]*ast.Node
	failure map[slowCacheKey]bool

	maxFailPos int
	failDiag   *diag.Diagnostic
}

// NewSlow builds a SlowAlgorithm over tokens under g.
func NewSlow(tokens []token.Token, g *grammar.Grammar) *SlowAlgorithm {
	return &SlowAlgorithm{
		tokens:     tokens,
		grammar:    g,
		success:    make(map[slowCacheKey]*ast.Node),
		failure:    make(map[slowCacheKey]bool),
		maxFailPos: -1,
	}
}

// Parse implements Algorithm.
func (s *SlowAlgorithm) Parse() (*ast.Node, *diag.Diagnostic) {
	root := s.grammar.GetInitialRule()
	if root == nil {
		return nil, diag.Newf(diag.ConfigError, "initial rule %q not found", s.grammar.InitialRule)
	}
	if len(s.tokens) == 0 {
		return nil, diag.New(diag.ParseError, "no tokens to parse")
	}

	node, ok := s.matchRuleRange(root, tokenRange{0, len(s.tokens)})
	if !ok {
		if s.failDiag != nil {
			return nil, s.failDiag
		}
		return nil, diag.New(diag.ParseError, "failed to parse input")
	}
	return node, nil
}

func (s *SlowAlgorithm) matchRuleRange(rule *grammar.Rule, rng tokenRange) (*ast.Node, bool) {
	if rng.Start < 0 || rng.End > len(s.tokens) || rng.Start >= rng.End {
		return nil, false
	}

	key := slowCacheKey{rule.Name, rng.Start, rng.End}
	if node, ok := s.success[key]; ok {
		return node, true
	}
	if s.failure[key] {
		return nil, false
	}

	for _, alt := range rule.Alternatives {
		if children, ok := s.matchAlternativeRange(alt, rng); ok {
			node := ast.New(rule.Name, s.tokens[rng.Start].Location)
			for _, c := range children {
				node.AddChild(c)
			}
			s.success[key] = node
			return node, true
		}
	}

	s.failure[key] = true
	if rng.Start > s.maxFailPos {
		s.maxFailPos = rng.Start
		s.failDiag = diag.Atf(diag.ParseError, s.tokens[rng.Start].Location,
			"failed to match rule %q over %d tokens", rule.Name, rng.len())
	}
	return nil, false
}

// unpinned marks a slot in pinTerminals' anchors that holds no token
// position: terminals resolve to a single exact position, non-terminals
// are left at unpinned for matchAlternativeRange to fill once every
// terminal is pinned.
const unpinned = -1

func (s *SlowAlgorithm) matchAlternativeRange(alt *grammar.MatchSequence, rng tokenRange) ([]*ast.Node, bool) {
	anchors, ok := s.pinTerminals(alt, rng)
	if !ok {
		return nil, false
	}

	children := make([]*ast.Node, len(alt.Tokens))
	for i, pos := range anchors {
		if pos != unpinned {
			// A terminal sub-range builds a wrapper node named after
			// the grammar pattern, with one leaf child carrying the
			// matched source token (spec.md §4.6 step 4).
			wrapper := ast.New(alt.Tokens[i].String(), s.tokens[pos].Location)
			wrapper.AddChild(ast.New(s.tokens[pos].Lexeme, s.tokens[pos].Location))
			children[i] = wrapper
		}
	}

	if !s.fillGaps(alt, rng, anchors, children) {
		return nil, false
	}
	return children, true
}

// pinTerminals scans rng for an exact, bracket-depth-zero position for
// every terminal in alt, leaving non-terminal slots as unpinned. A
// single cursor sweeps the range once, in the alternative's declared
// order for LeftToRight or reverse order for RightToLeft, carrying
// over from one terminal's match to the next terminal's search start
// — so a later terminal is always found at or past the previous
// one, never behind it. Bracket depth is tracked relative to the
// sweep direction: a bracket that opens in the direction of travel
// raises the level, one that closes against it lowers it, keeping
// pins outside nested sub-expressions.
func (s *SlowAlgorithm) pinTerminals(alt *grammar.MatchSequence, rng tokenRange) ([]int, bool) {
	n := len(alt.Tokens)
	anchors := make([]int, n)
	for i := range anchors {
		anchors[i] = unpinned
	}

	start, stop, delta := 0, n, 1
	pos := rng.Start
	if alt.Direction == grammar.RightToLeft {
		start, stop, delta = n-1, -1, -1
		pos = rng.End - 1
	}

	lastMatch := unpinned
	for i := start; i != stop; i += delta {
		gt := alt.Tokens[i]
		if isNonTerminal(gt) {
			continue
		}
		if !s.scanForMatch(gt, &pos, delta, rng) {
			return nil, false
		}
		if pos == lastMatch {
			// Same token just claimed by the previous terminal pin
			// (identical adjacent patterns) — step past it and
			// rescan rather than double-assign.
			pos += delta
			if !s.scanForMatch(gt, &pos, delta, rng) {
				return nil, false
			}
		}
		anchors[i] = pos
		lastMatch = pos
	}
	return anchors, true
}

func isNonTerminal(gt grammar.GrammarToken) bool {
	_, isNT := gt.(*grammar.NonTerminal)
	return isNT
}

// scanForMatch walks *pos by delta within rng until gt matches at
// bracket depth zero, leaving *pos at the match. Depth is clamped at
// zero (an unbalanced closer never drives it negative).
func (s *SlowAlgorithm) scanForMatch(gt grammar.GrammarToken, pos *int, delta int, rng tokenRange) bool {
	level := 0
	for *pos >= rng.Start && *pos < rng.End {
		tok := s.tokens[*pos]

		if (delta > 0 && tok.IsCloser()) || (delta < 0 && tok.IsOpener()) {
			if level > 0 {
				level--
			}
		}
		if level == 0 {
			if result, _ := gt.Matches(tok); result == grammar.Yes {
				return true
			}
		}
		if (delta > 0 && tok.IsOpener()) || (delta < 0 && tok.IsCloser()) {
			level++
		}

		*pos += delta
	}
	return false
}

// fillGaps walks the pinned anchors left to right, grouping runs of
// consecutive unpinned (non-terminal) slots into gaps bounded by
// whatever terminal positions (or the range edges) surround them, and
// resolves each gap.
func (s *SlowAlgorithm) fillGaps(alt *grammar.MatchSequence, rng tokenRange, anchors []int, children []*ast.Node) bool {
	n := len(anchors)
	i := 0
	left := rng.Start

	for i < n {
		if anchors[i] != unpinned {
			// No non-terminal to absorb any leftover tokens before
			// this pin: it must sit exactly at the range's running
			// edge, or sub-ranges aren't contiguous (spec.md §4.6
			// step 3's validation).
			if anchors[i] != left {
				return false
			}
			left = anchors[i] + 1
			i++
			continue
		}

		j := i
		for j < n && anchors[j] == unpinned {
			j++
		}
		right := rng.End
		if j < n {
			right = anchors[j]
		}
		if right < left {
			return false
		}

		slots := alt.Tokens[i:j]
		gapChildren, ok := s.fillNonTerminalGap(slots, tokenRange{left, right})
		if !ok {
			return false
		}
		for k, c := range gapChildren {
			children[i+k] = c
		}

		left = right
		i = j
	}

	return left == rng.End
}

// fillNonTerminalGap resolves the non-terminal(s) standing between two
// pinned terminals (or a range edge) against rng. Two adjacent
// non-terminals in the same alternative are rejected outright — per
// spec.md §4.6's stated assumption, nothing but the terminals pinned
// around them indicates where one would end and the next begin, so
// this function refuses the alternative rather than guess.
func (s *SlowAlgorithm) fillNonTerminalGap(slots []grammar.GrammarToken, rng tokenRange) ([]*ast.Node, bool) {
	if len(slots) == 0 {
		if rng.len() == 0 {
			return nil, true
		}
		return nil, false
	}
	if len(slots) > 1 {
		return nil, false
	}

	nt, _ := slots[0].(*grammar.NonTerminal)
	subRule := s.grammar.LookupRule(nt.RuleName)
	if subRule == nil {
		return nil, false
	}

	node, ok := s.matchRuleRange(subRule, rng)
	if !ok {
		return nil, false
	}
	return []*ast.Node{node}, true
}
