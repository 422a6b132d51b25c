package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

type stringConfig struct {
	ProcessEscapeSequences bool `json:"process_escape_sequences"`
}

// stringRecognizer matches a double-quoted string literal. When
// configured with process_escape_sequences, a closing quote preceded
// by a backslash does not terminate the string, and the captured body
// is run through DecodeEscapes once lexing completes.
type stringRecognizer struct {
	cfg stringConfig
}

func (*stringRecognizer) sealed() {}

func (r *stringRecognizer) ReadConfig(cfg json.RawMessage) *diag.Diagnostic {
	if len(cfg) == 0 {
		return nil
	}
	if err := json.Unmarshal(cfg, &r.cfg); err != nil {
		return diag.Wrap(diag.ConfigError, err, "reading String recognizer config")
	}
	return nil
}

func (r *stringRecognizer) TryProduce(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	if *pos >= len(src) || src[*pos] != '"' {
		return "", 0, false, nil
	}
	start := *pos
	i := start + 1
	for {
		if i >= len(src) {
			return "", 0, false, diag.New(diag.LexError, "unterminated string literal")
		}
		if src[i] == '"' {
			if r.cfg.ProcessEscapeSequences && i > start+1 && countTrailingBackslashes(src, i)%2 == 1 {
				// Escaped quote: doesn't terminate the string.
				i++
				continue
			}
			break
		}
		i++
	}
	body := string(src[start+1 : i])
	*pos = i + 1
	if r.cfg.ProcessEscapeSequences {
		body = DecodeEscapes(body)
	}
	return body, token.STRING_LITERAL, true, nil
}

// countTrailingBackslashes counts the run of '\\' bytes immediately
// preceding src[i].
func countTrailingBackslashes(src []byte, i int) int {
	n := 0
	for j := i - 1; j >= 0 && src[j] == '\\'; j-- {
		n++
	}
	return n
}
