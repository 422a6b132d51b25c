// Package grammar models a context-free grammar loaded from data:
// rules, ordered alternatives, terminal/non-terminal grammar tokens,
// and per-alternative match direction.
package grammar

import (
	"strings"

	"github.com/tokenloom/lexgram/token"
)

// MatchResult is the three-valued answer a GrammarToken gives for a
// source token: it either matches outright, doesn't match, or "maybe"
// matches pending a recursive parse of a named rule.
type MatchResult int

const (
	No MatchResult = iota
	Yes
	Maybe
)

func (r MatchResult) String() string {
	switch r {
	case Yes:
		return "YES"
	case No:
		return "NO"
	case Maybe:
		return "MAYBE"
	default:
		return "?"
	}
}

// GrammarToken is a sealed sum type (per spec.md §9): a grammar atom
// that is either a Terminal (matches a literal source token) or a
// NonTerminal (defers to a named rule). Matches never looks up
// anything in the rule table itself — MAYBE just carries the rule
// name back for the caller (an Algorithm) to recurse into.
type GrammarToken interface {
	// Matches classifies tok against this grammar atom. For a
	// NonTerminal, ruleName is always populated on Maybe; it is
	// unused for Terminal.
	Matches(tok token.Token) (result MatchResult, ruleName string)

	// String renders the atom the way it appeared in the grammar
	// file (a terminal's pattern, or a non-terminal's rule name).
	String() string

	sealed()
}

// Terminal matches a literal source token: either a class marker
// (@string, @int, @float, @number, @identifier) matching by Kind
// alone, or an exact pattern matched by lexeme and (per spec.md §9's
// resolution of the kind-matching ambiguity) a kind consistent with
// that pattern's shape.
type Terminal struct {
	Pattern string
}

func (*Terminal) sealed() {}

func (t *Terminal) String() string { return t.Pattern }

func (t *Terminal) Matches(tok token.Token) (MatchResult, string) {
	if kind, ok := classMarkerKind(t.Pattern); ok {
		if matchesClass(tok, kind) {
			return Yes, ""
		}
		return No, ""
	}

	if tok.Lexeme != t.Pattern {
		return No, ""
	}

	implied := impliedKinds(t.Pattern)
	if implied == nil {
		// Unrecognized shape (rare): fall back to pure lexeme
		// equality, kind-independent, as the original implementation
		// always does.
		return Yes, ""
	}
	for _, k := range implied {
		if tok.Kind == k {
			return Yes, ""
		}
	}
	return No, ""
}

type classKind int

const (
	classString classKind = iota
	classInt
	classFloat
	classNumber
	classIdentifier
)

func classMarkerKind(pattern string) (classKind, bool) {
	switch pattern {
	case "@string":
		return classString, true
	case "@int":
		return classInt, true
	case "@float":
		return classFloat, true
	case "@number":
		return classNumber, true
	case "@identifier":
		return classIdentifier, true
	default:
		return 0, false
	}
}

func matchesClass(tok token.Token, kind classKind) bool {
	switch kind {
	case classString:
		return tok.Kind == token.STRING_LITERAL
	case classInt:
		return tok.Kind == token.NUMBER_INT
	case classFloat:
		return tok.Kind == token.NUMBER_FLOAT
	case classNumber:
		return tok.Kind == token.NUMBER_INT || tok.Kind == token.NUMBER_FLOAT
	case classIdentifier:
		return tok.Kind == token.IDENTIFIER
	default:
		return false
	}
}

var punctuationKinds = map[string]token.Kind{
	"(": token.OPEN_PAREN,
	")": token.CLOSE_PAREN,
	"[": token.OPEN_BRACKET,
	"]": token.CLOSE_BRACKET,
	"{": token.OPEN_BRACE,
	"}": token.CLOSE_BRACE,
	",": token.DELIM_COMMA,
	";": token.DELIM_SEMI,
	":": token.DELIM_COLON,
}

const operatorChars = "!#$%&*+-./<=>?^|~\\"

// impliedKinds returns the token Kinds an exact-text terminal pattern
// may legitimately match, or nil if the pattern's shape isn't one we
// recognize (in which case Terminal.Matches falls back to lexeme-only
// equality).
func impliedKinds(pattern string) []token.Kind {
	if kind, ok := punctuationKinds[pattern]; ok {
		return []token.Kind{kind}
	}
	if isWordShaped(pattern) {
		return []token.Kind{token.IDENTIFIER, token.IDENTIFIER_KEYWORD}
	}
	if isOperatorShaped(pattern) {
		return []token.Kind{token.OPERATOR}
	}
	return nil
}

func isWordShaped(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit && r != '_' && r != ' ' {
			return false
		}
	}
	return true
}

func isOperatorShaped(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, operatorChars) == ""
}

// NonTerminal defers to a named rule; its Matches always answers
// Maybe, leaving the recursion itself to the caller.
type NonTerminal struct {
	RuleName string
}

func (*NonTerminal) sealed() {}

func (n *NonTerminal) String() string { return n.RuleName }

func (n *NonTerminal) Matches(token.Token) (MatchResult, string) {
	return Maybe, n.RuleName
}
