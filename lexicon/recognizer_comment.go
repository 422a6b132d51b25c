package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

// commentRecognizer matches '#' through end of line (exclusive). No
// configuration.
type commentRecognizer struct{}

func (*commentRecognizer) sealed() {}

func (*commentRecognizer) ReadConfig(json.RawMessage) *diag.Diagnostic { return nil }

func (*commentRecognizer) TryProduce(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	if *pos >= len(src) || src[*pos] != '#' {
		return "", 0, false, nil
	}
	start := *pos
	i := start
	for i < len(src) && src[i] != '\n' {
		i++
	}
	lexeme := string(src[start:i])
	*pos = i
	return lexeme, token.COMMENT, true, nil
}
