package lexicon

import (
	"io"

	participlelexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/tokenloom/lexgram/token"
)

// tokenStreamLexer adapts an already-tokenized []token.Token into
// participle/v2/lexer.Lexer's Next() contract, so a caller with an
// existing participle-based grammar (as the teacher repo's MIB parser
// builds with participle.MustBuild) can drive it off lexgram's token
// stream instead of writing a second tokenizer. TokenType is the
// lexgram token.Kind reinterpreted as a participle TokenType; EOF is
// signaled the way participle expects, with lexer.EOF (-1).
type tokenStreamLexer struct {
	filename string
	tokens   []token.Token
	pos      int
}

var _ participlelexer.Lexer = (*tokenStreamLexer)(nil)

func (l *tokenStreamLexer) Next() (participlelexer.Token, error) {
	if l.pos >= len(l.tokens) {
		return participlelexer.Token{
			Type: participlelexer.EOF,
			Pos:  participlelexer.Position{Filename: l.filename},
		}, nil
	}
	t := l.tokens[l.pos]
	l.pos++
	return participlelexer.Token{
		Type:  participlelexer.TokenType(t.Kind),
		Value: t.Lexeme,
		Pos:   t.Location.ToParticiple(l.filename, 0),
	}, nil
}

// AsParticipleLexer wraps an already-tokenized stream as a participle
// lexer.Lexer, so it can be fed directly to a participle.Parser built
// over lexgram's token kinds.
func AsParticipleLexer(filename string, tokens []token.Token) participlelexer.Lexer {
	return &tokenStreamLexer{filename: filename, tokens: tokens}
}

// Definition adapts a *Lexer into a participle/v2/lexer.Definition,
// the interface participle.Lexer(...) expects when building a parser.
// keepComments mirrors the Tokenize parameter.
type Definition struct {
	lexer        *Lexer
	keepComments bool
}

var _ participlelexer.Definition = (*Definition)(nil)

// AsParticipleDefinition exposes l as a participle lexer.Definition.
func (l *Lexer) AsParticipleDefinition(keepComments bool) *Definition {
	return &Definition{lexer: l, keepComments: keepComments}
}

func (d *Definition) Lex(filename string, r io.Reader) (participlelexer.Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	tokens, errDiag := d.lexer.Tokenize(src, d.keepComments, token.Location{Line: 1, Column: 1})
	if errDiag != nil {
		return nil, errDiag
	}
	return AsParticipleLexer(filename, tokens), nil
}

func (d *Definition) Symbols() map[string]participlelexer.TokenType {
	return map[string]participlelexer.TokenType{
		"UNKNOWN":            participlelexer.TokenType(token.UNKNOWN),
		"COMMENT":            participlelexer.TokenType(token.COMMENT),
		"DELIM_COMMA":        participlelexer.TokenType(token.DELIM_COMMA),
		"DELIM_COLON":        participlelexer.TokenType(token.DELIM_COLON),
		"DELIM_SEMI":         participlelexer.TokenType(token.DELIM_SEMI),
		"OPERATOR":           participlelexer.TokenType(token.OPERATOR),
		"IDENTIFIER":         participlelexer.TokenType(token.IDENTIFIER),
		"IDENTIFIER_KEYWORD": participlelexer.TokenType(token.IDENTIFIER_KEYWORD),
		"STRING_LITERAL":     participlelexer.TokenType(token.STRING_LITERAL),
		"NUMBER_INT":         participlelexer.TokenType(token.NUMBER_INT),
		"NUMBER_FLOAT":       participlelexer.TokenType(token.NUMBER_FLOAT),
		"OPEN_PAREN":         participlelexer.TokenType(token.OPEN_PAREN),
		"CLOSE_PAREN":        participlelexer.TokenType(token.CLOSE_PAREN),
		"OPEN_BRACKET":       participlelexer.TokenType(token.OPEN_BRACKET),
		"CLOSE_BRACKET":      participlelexer.TokenType(token.CLOSE_BRACKET),
		"OPEN_BRACE":         participlelexer.TokenType(token.OPEN_BRACE),
		"CLOSE_BRACE":        participlelexer.TokenType(token.CLOSE_BRACE),
	}
}
