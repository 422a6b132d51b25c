package parse

import (
	"github.com/tokenloom/lexgram/ast"
	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/grammar"
	"github.com/tokenloom/lexgram/token"
)

// quickCacheKey identifies one (rule, starting position) attempt. It
// doubles as the left-recursion attempt-stack entry: a rule is never
// re-entered at a position it is already trying to match at a
// shallower frame (grounded on original_source/ParseLibrary/Source/
// QuickParseAlgorithm.cpp's ParseAttempt / parseAttemptStack).
type quickCacheKey struct {
	ruleName string
	position int
}

// quickCacheEntry is a subtree salvaged out of a failed alternative so
// a later alternative — or a later call into the same rule at the
// same position — can reuse it instead of reparsing.
type quickCacheEntry struct {
	node     *ast.Node
	consumed int
}

// QuickAlgorithm is a top-down recursive-descent parser with a
// consume-on-lookup memoization cache and a left-recursion guard. It
// favors speed over resolving genuine ambiguity: the first alternative
// whose grammar tokens all match wins (spec.md §4.4).
type QuickAlgorithm struct {
	tokens  []token.Token
	grammar *grammar.Grammar

	cache map[quickCacheKey]quickCacheEntry
	stack []quickCacheKey

	// growSeed holds the best match found so far for the initial rule
	// at position 0 (seedKey). A rule guarded out of re-entering
	// itself still produces a base-case match (the non-recursive
	// alternative); Parse seeds that result back in and reattempts the
	// rule so the recursive alternative can consume it and grow one
	// token further, repeating until an attempt fails to grow. Only the
	// initial rule is grown this way: a left-recursive rule reached
	// through another rule stops at its base-case match.
	growSeed *quickCacheEntry
	seedKey  quickCacheKey

	maxFailPos int
	failDiag   *diag.Diagnostic
}

// NewQuick builds a QuickAlgorithm over tokens under g.
func NewQuick(tokens []token.Token, g *grammar.Grammar) *QuickAlgorithm {
	return &QuickAlgorithm{
		tokens:     tokens,
		grammar:    g,
		cache:      make(map[quickCacheKey]quickCacheEntry),
		maxFailPos: -1,
	}
}

// Parse implements Algorithm.
func (q *QuickAlgorithm) Parse() (*ast.Node, *diag.Diagnostic) {
	root := q.grammar.GetInitialRule()
	if root == nil {
		return nil, diag.Newf(diag.ConfigError, "initial rule %q not found", q.grammar.InitialRule)
	}

	node, pos, ok := q.attemptRule(0, root)
	if !ok {
		if q.failDiag != nil {
			return nil, q.failDiag
		}
		return nil, diag.New(diag.ParseError, "failed to parse input")
	}

	// Grow a left-recursive initial rule: seed the best match found so
	// far and reattempt from scratch, letting the recursive alternative
	// pick the seed up in place of the guard that blocked it the first
	// time. Stop once an attempt fails to consume more than the seed
	// did; bounded by len(tokens) since every successful growth step
	// consumes at least one more token.
	q.seedKey = quickCacheKey{root.Name, 0}
	for pos < len(q.tokens) {
		q.growSeed = &quickCacheEntry{node: node, consumed: pos}
		grown, grownPos, ok := q.attemptRule(0, root)
		q.growSeed = nil
		if !ok || grownPos <= pos {
			break
		}
		node, pos = grown, grownPos
	}

	if pos != len(q.tokens) {
		return nil, diag.Atf(diag.ParseError, q.tokens[pos].Location,
			"unconsumed input starting at %q", q.tokens[pos].Lexeme)
	}
	return node, nil
}

// attemptRule tries rule's alternatives fresh at position, bypassing
// the memoization cache and the grow-seed lookup at entry (those only
// apply to nested references reached through matchRule). Used both for
// the very first attempt at the initial rule and for each subsequent
// growth round.
func (q *QuickAlgorithm) attemptRule(position int, rule *grammar.Rule) (*ast.Node, int, bool) {
	if position < 0 || position >= len(q.tokens) {
		return nil, position, false
	}
	key := quickCacheKey{rule.Name, position}
	q.stack = append(q.stack, key)
	defer func() { q.stack = q.stack[:len(q.stack)-1] }()
	return q.tryAlternatives(position, rule)
}

func (q *QuickAlgorithm) isAttempting(key quickCacheKey) bool {
	for _, a := range q.stack {
		if a == key {
			return true
		}
	}
	return false
}

// matchRule tries to match rule starting at position, returning the
// built node and the position just past it on success. Every
// non-terminal reference reached while trying an alternative goes
// through here, not through attemptRule — so a reference back into the
// rule currently being grown sees the grow seed before it ever reaches
// the left-recursion guard.
func (q *QuickAlgorithm) matchRule(position int, rule *grammar.Rule) (*ast.Node, int, bool) {
	if position < 0 || position >= len(q.tokens) {
		return nil, position, false
	}

	key := quickCacheKey{rule.Name, position}
	if q.growSeed != nil && key == q.seedKey {
		return q.growSeed.node, position + q.growSeed.consumed, true
	}
	if entry, ok := q.cache[key]; ok {
		delete(q.cache, key)
		return entry.node, position + entry.consumed, true
	}
	if q.isAttempting(key) {
		// Left recursion: this rule is already on the call stack at
		// this exact position. Refuse to re-enter it.
		return nil, position, false
	}

	q.stack = append(q.stack, key)
	defer func() { q.stack = q.stack[:len(q.stack)-1] }()
	return q.tryAlternatives(position, rule)
}

// tryAlternatives walks rule's alternatives in order, returning the
// first that matches in full. Across whichever alternatives fail, it
// records the farthest position any of them reached before giving up,
// not just rule's own starting position (spec.md §7's farthest-failure
// diagnostic).
func (q *QuickAlgorithm) tryAlternatives(position int, rule *grammar.Rule) (*ast.Node, int, bool) {
	node := ast.New(rule.Name, q.tokens[position].Location)

	for _, alt := range rule.Alternatives {
		children, salvage, endPos, failPos, ok := q.matchSequence(position, alt)
		if ok {
			for _, c := range children {
				node.AddChild(c)
			}
			return node, endPos, true
		}
		for key, entry := range salvage {
			q.cache[key] = entry
		}
		if failPos > q.maxFailPos {
			q.maxFailPos = failPos
			q.failDiag = diag.Atf(diag.ParseError, q.tokens[failPos].Location,
				"failed to match rule %q at %q", rule.Name, q.tokens[failPos].Lexeme)
		}
	}

	return nil, position, false
}

// matchSequence tries one alternative starting at position. On
// failure it also returns any non-terminal subtrees it successfully
// built before failing (keyed for cache salvage by a sibling
// alternative) and failPos, the farthest position this attempt
// actually reached before giving up — capped at the last valid token
// index so it's always safe to index q.tokens with.
func (q *QuickAlgorithm) matchSequence(position int, alt *grammar.MatchSequence) (children []*ast.Node, salvage map[quickCacheKey]quickCacheEntry, endPos, failPos int, ok bool) {
	pos := position
	children = make([]*ast.Node, 0, len(alt.Tokens))
	salvage = make(map[quickCacheKey]quickCacheEntry)
	lastIdx := len(q.tokens) - 1

	for _, gt := range alt.Tokens {
		if pos >= len(q.tokens) {
			return nil, salvage, position, lastIdx, false
		}
		result, ruleName := gt.Matches(q.tokens[pos])
		switch result {
		case grammar.Yes:
			children = append(children, ast.New(q.tokens[pos].Lexeme, q.tokens[pos].Location))
			pos++
		case grammar.Maybe:
			subRule := q.grammar.LookupRule(ruleName)
			if subRule == nil {
				return nil, salvage, position, pos, false
			}
			start := pos
			child, newPos, subOk := q.matchRule(pos, subRule)
			if !subOk {
				return nil, salvage, position, pos, false
			}
			salvage[quickCacheKey{ruleName, start}] = quickCacheEntry{node: child, consumed: newPos - start}
			children = append(children, child)
			pos = newPos
		default:
			return nil, salvage, position, pos, false
		}
	}

	return children, nil, pos, pos, true
}
