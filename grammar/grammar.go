package grammar

// Algorithm names the parse strategy a Grammar was authored for.
type Algorithm string

const (
	Quick     Algorithm = "quick"
	LookAhead Algorithm = "lookahead"
	Slow      Algorithm = "slow"
)

// Flags are the grammar-level post-processing switches.
type Flags struct {
	// Flatten collapses identically-named parent/child node pairs
	// after a successful parse.
	Flatten bool
	// DeleteStructureTokens removes AST leaves whose lexeme is pure
	// punctuation (";", ",", "(", ")", "{", "}", "[", "]").
	DeleteStructureTokens bool
}

// Grammar is a name→rule mapping, the initial rule to start parsing
// from, the algorithm it was authored for, and its post-processing
// Flags. Immutable after Load: safe to share across concurrent parses
// (spec.md §5).
type Grammar struct {
	Rules       map[string]*Rule
	InitialRule string
	AlgorithmName Algorithm
	Flags       Flags
}

// GetInitialRule looks up the grammar's initial rule, or nil if it
// doesn't exist (a Load-time invariant violation that should never
// survive construction, but defended against anyway per spec.md's
// Internal error kind).
func (g *Grammar) GetInitialRule() *Rule {
	return g.Rules[g.InitialRule]
}

// LookupRule looks up a rule by name, or nil if there is no such rule.
func (g *Grammar) LookupRule(name string) *Rule {
	return g.Rules[name]
}

// StructureTokenSet is the set of lexemes DeleteStructureTokens prunes.
var StructureTokenSet = map[string]bool{
	";": true, ",": true, "(": true, ")": true,
	"{": true, "}": true, "[": true, "]": true,
}
