package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
	"github.com/tokenloom/lexgram/token"
)

type operatorConfig struct {
	Operators []string `json:"operators"`
}

// operatorRecognizer matches the longest configured operator string
// starting at the cursor. The set of bytes that can appear anywhere in
// any configured operator is computed once from the config; a greedy
// scan extends while the next byte is in that set, and the longest
// prefix that is itself a configured operator wins.
type operatorRecognizer struct {
	operators map[string]bool
	charSet   map[byte]bool
	maxLen    int
}

func (*operatorRecognizer) sealed() {}

func (r *operatorRecognizer) ReadConfig(cfg json.RawMessage) *diag.Diagnostic {
	var c operatorConfig
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &c); err != nil {
			return diag.Wrap(diag.ConfigError, err, "reading Operator recognizer config")
		}
	}
	r.operators = make(map[string]bool, len(c.Operators))
	r.charSet = make(map[byte]bool)
	for _, op := range c.Operators {
		if op == "" {
			continue
		}
		r.operators[op] = true
		if len(op) > r.maxLen {
			r.maxLen = len(op)
		}
		for i := 0; i < len(op); i++ {
			r.charSet[op[i]] = true
		}
	}
	return nil
}

func (r *operatorRecognizer) TryProduce(src []byte, pos *int) (string, token.Kind, bool, *diag.Diagnostic) {
	if *pos >= len(src) || !r.charSet[src[*pos]] {
		return "", 0, false, nil
	}
	end := *pos
	limit := *pos + r.maxLen
	if limit > len(src) {
		limit = len(src)
	}
	for end < limit && r.charSet[src[end]] {
		end++
	}
	// Longest matched-set prefix that is itself a configured operator.
	for l := end - *pos; l > 0; l-- {
		candidate := string(src[*pos : *pos+l])
		if r.operators[candidate] {
			*pos += l
			return candidate, token.OPERATOR, true, nil
		}
	}
	return "", 0, false, nil
}
