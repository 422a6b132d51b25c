package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

// parenRecognizer matches a single open/close paren/bracket/brace
// character. No configuration.
type parenRecognizer struct{}

func (*parenRecognizer) sealed() {}

func (*parenRecognizer) ReadConfig(json.RawMessage) *diag.Diagnostic { return nil }

func (*parenRecognizer) TryProduce(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	if *pos >= len(src) {
		return "", 0, false, nil
	}
	var kind token.Kind
	switch src[*pos] {
	case '(':
		kind = token.OPEN_PAREN
	case ')':
		kind = token.CLOSE_PAREN
	case '[':
		kind = token.OPEN_BRACKET
	case ']':
		kind = token.CLOSE_BRACKET
	case '{':
		kind = token.OPEN_BRACE
	case '}':
		kind = token.CLOSE_BRACE
	default:
		return "", 0, false, nil
	}
	lexeme := string(src[*pos : *pos+1])
	*pos++
	return lexeme, kind, true, nil
}
