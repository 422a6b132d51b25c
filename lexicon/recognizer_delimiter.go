package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

// delimiterRecognizer matches a single comma, semicolon, or colon. No
// configuration.
type delimiterRecognizer struct{}

func (*delimiterRecognizer) sealed() {}

func (*delimiterRecognizer) ReadConfig(json.RawMessage) *diag.Diagnostic { return nil }

func (*delimiterRecognizer) TryProduce(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	if *pos >= len(src) {
		return "", 0, false, nil
	}
	var kind token.Kind
	switch src[*pos] {
	case ',':
		kind = token.DELIM_COMMA
	case ';':
		kind = token.DELIM_SEMI
	case ':':
		kind = token.DELIM_COLON
	default:
		return "", 0, false, nil
	}
	lexeme := string(src[*pos : *pos+1])
	*pos++
	return lexeme, kind, true, nil
}
