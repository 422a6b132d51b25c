// Package lexicon implements the pluggable, data-driven tokenizer:
// an ordered set of Recognizers drives a cursor over source bytes,
// producing the token stream the grammar/parse packages consume.
package lexicon

import (
	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

// DefaultTabSize is the column increment for a tab character in a
// Lexer built by New (a lexicon file has no tab-size setting), and in
// one built by NewLexer with a non-positive tabSize.
const DefaultTabSize = 4

// Lexer drives a cursor over source bytes, skipping whitespace and
// applying its configured Recognizers in order until the input is
// exhausted. Immutable after construction: safe to share across
// concurrent Tokenize calls (§5 of the spec).
type Lexer struct {
	recognizers []Recognizer
	tabSize     int
}

// NewLexer builds a Lexer from an already-configured recognizer set.
// Most callers use New (lexicon.Config JSON) instead.
func NewLexer(recognizers []Recognizer, tabSize int) *Lexer {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	return &Lexer{recognizers: recognizers, tabSize: tabSize}
}

// Tokenize carves source into a token stream. keepComments controls
// whether COMMENT tokens are retained. initialLocation lets a caller
// resume lexing a fragment at a non-(1,1) starting position; pass
// token.Location{Line: 1, Column: 1} for a fresh source.
func (l *Lexer) Tokenize(source []byte, keepComments bool, initialLocation token.Location) ([]token.Token, *diag.Diagnostic) {
	c := newCursor(source, l.tabSize)
	c.loc = initialLocation

	var tokens []token.Token
	for {
		c.skipWhitespace()
		loc := c.location()

		if c.atEnd() {
			return tokens, nil
		}

		before := c.i
		lexeme, kind, ok, errDiag := l.tryRecognizers(source, &c.i)
		if errDiag != nil {
			return nil, diag.At(errDiag.Kind, loc, errDiag.Message)
		}
		if !ok || c.i == before {
			return nil, diag.Atf(diag.LexError, loc, "no recognizer could consume input starting with %q", previewByte(source, before))
		}

		if kind == token.COMMENT && !keepComments {
			continue
		}
		tokens = append(tokens, token.Token{Kind: kind, Lexeme: lexeme, Location: loc})
	}
}

func (l *Lexer) tryRecognizers(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	for _, r := range l.recognizers {
		lexeme, kind, ok, errDiag := r.TryProduce(src, pos)
		if errDiag != nil {
			return "", 0, false, errDiag
		}
		if ok {
			return lexeme, kind, true, nil
		}
	}
	return "", 0, false, nil
}

func previewByte(src []byte, i int) string {
	if i >= len(src) {
		return ""
	}
	end := i + 1
	if end > len(src) {
		end = len(src)
	}
	return string(src[i:end])
}
