// Package token defines the lexical token vocabulary shared by the
// lexicon, grammar and parse packages.
package token

import (
	"fmt"

	participlelexer "github.com/alecthomas/participle/v2/lexer"
)

// Kind classifies a Token. The set is closed; callers never construct
// new kinds at runtime.
type Kind int

const (
	UNKNOWN Kind = iota
	COMMENT
	DELIM_COMMA
	DELIM_COLON
	DELIM_SEMI
	OPERATOR
	IDENTIFIER
	IDENTIFIER_KEYWORD
	STRING_LITERAL
	NUMBER_INT
	NUMBER_FLOAT
	OPEN_PAREN
	CLOSE_PAREN
	OPEN_BRACKET
	CLOSE_BRACKET
	OPEN_BRACE
	CLOSE_BRACE
)

var kindNames = map[Kind]string{
	UNKNOWN:            "UNKNOWN",
	COMMENT:            "COMMENT",
	DELIM_COMMA:        "DELIM_COMMA",
	DELIM_COLON:        "DELIM_COLON",
	DELIM_SEMI:         "DELIM_SEMI",
	OPERATOR:           "OPERATOR",
	IDENTIFIER:         "IDENTIFIER",
	IDENTIFIER_KEYWORD: "IDENTIFIER_KEYWORD",
	STRING_LITERAL:     "STRING_LITERAL",
	NUMBER_INT:         "NUMBER_INT",
	NUMBER_FLOAT:       "NUMBER_FLOAT",
	OPEN_PAREN:         "OPEN_PAREN",
	CLOSE_PAREN:        "CLOSE_PAREN",
	OPEN_BRACKET:       "OPEN_BRACKET",
	CLOSE_BRACKET:      "CLOSE_BRACKET",
	OPEN_BRACE:         "OPEN_BRACE",
	CLOSE_BRACE:        "CLOSE_BRACE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Location is a 1-indexed (line, column) pair, ordered lexicographically.
// Its line/column shape matches participle/v2/lexer.Position. lexgram
// doesn't track byte offsets: ToParticiple takes one from the caller,
// and FromParticiple drops it.
type Location struct {
	Line   int
	Column int
}

// Less reports whether loc sorts strictly before other.
func (loc Location) Less(other Location) bool {
	if loc.Line != other.Line {
		return loc.Line < other.Line
	}
	return loc.Column < other.Column
}

func (loc Location) String() string {
	return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
}

// ToParticiple converts loc to a participle/v2/lexer.Position for the
// given filename and byte offset. Offset tracking belongs to the
// caller; lexgram's own cursor only needs line/column.
func (loc Location) ToParticiple(filename string, offset int) participlelexer.Position {
	return participlelexer.Position{
		Filename: filename,
		Offset:   offset,
		Line:     loc.Line,
		Column:   loc.Column,
	}
}

// FromParticiple extracts a Location from a participle/v2/lexer.Position.
func FromParticiple(pos participlelexer.Position) Location {
	return Location{Line: pos.Line, Column: pos.Column}
}

// Token is an immutable tagged value produced by the lexer: a Kind, the
// exact source lexeme (or a canonicalized value for escaped strings),
// and the Location of its first byte.
type Token struct {
	Kind     Kind
	Lexeme   string
	Location Location
}

// IsOpener reports whether t opens a bracketed region.
func (t Token) IsOpener() bool {
	switch t.Kind {
	case OPEN_PAREN, OPEN_BRACKET, OPEN_BRACE:
		return true
	default:
		return false
	}
}

// IsCloser reports whether t closes a bracketed region.
func (t Token) IsCloser() bool {
	switch t.Kind {
	case CLOSE_PAREN, CLOSE_BRACKET, CLOSE_BRACE:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t is an integer or floating-point literal.
func (t Token) IsNumeric() bool {
	return t.Kind == NUMBER_INT || t.Kind == NUMBER_FLOAT
}

func (t Token) String() string {
	lexeme := t.Lexeme
	if len(lexeme) > 24 {
		lexeme = lexeme[:21] + "..."
	}
	return fmt.Sprintf("%s %q (%s)", t.Location, lexeme, t.Kind)
}
