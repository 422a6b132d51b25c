package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

type identifierConfig struct {
	Keywords []string `json:"keywords"`
}

// identifierRecognizer matches [A-Za-z][A-Za-z0-9_]*. A captured
// lexeme present in the configured keyword set is tagged
// IDENTIFIER_KEYWORD instead of IDENTIFIER.
type identifierRecognizer struct {
	keywords map[string]bool
}

func (*identifierRecognizer) sealed() {}

func (r *identifierRecognizer) ReadConfig(cfg json.RawMessage) *diag.Diagnostic {
	var c identifierConfig
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &c); err != nil {
			return diag.Wrap(diag.ConfigError, err, "reading Identifier recognizer config")
		}
	}
	r.keywords = make(map[string]bool, len(c.Keywords))
	for _, kw := range c.Keywords {
		r.keywords[kw] = true
	}
	return nil
}

func (r *identifierRecognizer) TryProduce(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	i := *pos
	if i >= len(src) || !isIdentStart(src[i]) {
		return "", 0, false, nil
	}
	start := i
	i++
	for i < len(src) && isIdentCont(src[i]) {
		i++
	}
	lexeme := string(src[start:i])
	*pos = i
	kind := token.IDENTIFIER
	if r.keywords[lexeme] {
		kind = token.IDENTIFIER_KEYWORD
	}
	return lexeme, kind, true, nil
}
