package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

// Recognizer is a pluggable token producer. The lexer tries each
// configured Recognizer in order at the current cursor position; the
// first one that reports ok=true wins. Recognizer is a sealed sum type
// (per spec.md §9): the seven concrete recognizers below are the only
// implementations, and sealed() keeps it that way.
type Recognizer interface {
	// TryProduce attempts to consume a token from src starting at
	// *pos. On success it returns the lexeme and kind and advances
	// *pos past the consumed bytes. ok=false (with *pos untouched)
	// means "not applicable here" and is not an error. A non-nil
	// diagnostic means this recognizer committed to producing a
	// token here but failed (e.g. an unterminated string); the
	// caller attaches the source location.
	TryProduce(src []byte, pos *int) (lexeme string, kind token.Kind, ok bool, errDiag *diag.Diagnostic)

	// ReadConfig parses this recognizer's "config" object from the
	// lexicon file. cfg is nil when no config object was given.
	ReadConfig(cfg json.RawMessage) *diag.Diagnostic

	sealed()
}

// The Recognizer* constants are the closed set of names the lexicon
// config recognizes in a "token_generators" entry.
const (
	RecognizerParen      = "Paren"
	RecognizerDelimiter  = "Delimiter"
	RecognizerString     = "String"
	RecognizerNumber     = "Number"
	RecognizerOperator   = "Operator"
	RecognizerIdentifier = "Identifier"
	RecognizerComment    = "Comment"
)

// NewRecognizer constructs the named recognizer with zero configuration;
// callers then call ReadConfig on it. Returns a ConfigError diagnostic
// for an unrecognized name.
func NewRecognizer(name string) (Recognizer, *diag.Diagnostic) {
	switch name {
	case RecognizerParen:
		return &parenRecognizer{}, nil
	case RecognizerDelimiter:
		return &delimiterRecognizer{}, nil
	case RecognizerString:
		return &stringRecognizer{}, nil
	case RecognizerNumber:
		return &numberRecognizer{}, nil
	case RecognizerOperator:
		return &operatorRecognizer{}, nil
	case RecognizerIdentifier:
		return &identifierRecognizer{}, nil
	case RecognizerComment:
		return &commentRecognizer{}, nil
	default:
		return nil, diag.Newf(diag.ConfigError, "unknown token generator %q", name)
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '_'
}
