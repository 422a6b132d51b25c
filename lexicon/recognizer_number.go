package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

// numberRecognizer matches an optional leading '-' followed by digits
// and at most one '.'; presence of the '.' upgrades the kind from
// NUMBER_INT to NUMBER_FLOAT. A lone '-' is not a number: it is left
// for the Operator recognizer.
type numberRecognizer struct{}

func (*numberRecognizer) sealed() {}

func (*numberRecognizer) ReadConfig(json.RawMessage) *diag.Diagnostic { return nil }

func (*numberRecognizer) TryProduce(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	i := *pos
	start := i
	if i < len(src) && src[i] == '-' {
		i++
	}
	digitsStart := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i == digitsStart {
		return "", 0, false, nil // no digits: not a number (lone '-' included)
	}
	kind := token.NUMBER_INT
	if i < len(src) && src[i] == '.' {
		// Only consume the dot if at least one digit follows, so a
		// trailing '.' (e.g. a rule-sequence period) isn't swallowed.
		if i+1 < len(src) && isDigit(src[i+1]) {
			kind = token.NUMBER_FLOAT
			i++
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		}
	}
	lexeme := string(src[start:i])
	*pos = i
	return lexeme, kind, true, nil
}
