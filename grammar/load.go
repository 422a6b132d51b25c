package grammar

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
)

type rawFlags struct {
	Flatten               bool `json:"flatten"`
	DeleteStructureTokens bool `json:"delete_structure_tokens"`
}

type rawGrammar struct {
	InitialRule string                       `json:"initial_rule"`
	Algorithm   string                       `json:"algorithm"`
	Flags       *rawFlags                    `json:"flags"`
	Rules       map[string][]json.RawMessage `json:"rules"`
}

// Load parses a grammar JSON document per spec.md §4.2/§6: required
// keys initial_rule, algorithm, rules; optional flags. A grammar token
// string is a non-terminal iff it names a rule defined in the same
// file, else a terminal.
func Load(data []byte) (*Grammar, *diag.Diagnostic) {
	var raw rawGrammar
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, diag.Wrap(diag.ConfigError, err, "parsing grammar JSON")
	}

	if raw.InitialRule == "" {
		return nil, diag.New(diag.ConfigError, "grammar is missing required key \"initial_rule\"")
	}
	if raw.Algorithm == "" {
		return nil, diag.New(diag.ConfigError, "grammar is missing required key \"algorithm\"")
	}
	algo := Algorithm(raw.Algorithm)
	if algo != Quick && algo != LookAhead && algo != Slow {
		return nil, diag.Newf(diag.ConfigError, "unknown algorithm %q", raw.Algorithm)
	}
	if raw.Rules == nil {
		return nil, diag.New(diag.ConfigError, "grammar is missing required key \"rules\"")
	}

	ruleNames := make(map[string]bool, len(raw.Rules))
	for name := range raw.Rules {
		ruleNames[name] = true
	}

	g := &Grammar{
		Rules:         make(map[string]*Rule, len(raw.Rules)),
		InitialRule:   raw.InitialRule,
		AlgorithmName: algo,
	}
	if raw.Flags != nil {
		g.Flags = Flags{Flatten: raw.Flags.Flatten, DeleteStructureTokens: raw.Flags.DeleteStructureTokens}
	}

	for name, rawAlternatives := range raw.Rules {
		rule := &Rule{Name: name}
		for _, rawAlt := range rawAlternatives {
			alt, errDiag := loadAlternative(rawAlt, ruleNames)
			if errDiag != nil {
				return nil, diag.Newf(diag.ConfigError, "rule %q: %s", name, errDiag.Message)
			}
			rule.Alternatives = append(rule.Alternatives, alt)
		}
		g.Rules[name] = rule
	}

	if g.GetInitialRule() == nil {
		return nil, diag.Newf(diag.ConfigError, "initial_rule %q is not defined in \"rules\"", raw.InitialRule)
	}

	return g, nil
}

func loadAlternative(rawAlt json.RawMessage, ruleNames map[string]bool) (*MatchSequence, *diag.Diagnostic) {
	var elems []json.RawMessage
	if err := json.Unmarshal(rawAlt, &elems); err != nil {
		return nil, diag.Wrap(diag.ConfigError, err, "alternative must be an array")
	}

	alt := &MatchSequence{Direction: LeftToRight}
	for i, elem := range elems {
		var s string
		if err := json.Unmarshal(elem, &s); err == nil {
			if ruleNames[s] {
				alt.Tokens = append(alt.Tokens, &NonTerminal{RuleName: s})
			} else {
				alt.Tokens = append(alt.Tokens, &Terminal{Pattern: s})
			}
			continue
		}

		var n int
		if err := json.Unmarshal(elem, &n); err == nil {
			if n == -1 && i == len(elems)-1 {
				alt.Direction = RightToLeft
				continue
			}
			return nil, diag.Newf(diag.ConfigError, "unexpected integer %d in alternative (only a trailing -1 is allowed)", n)
		}

		return nil, diag.New(diag.ConfigError, "alternative elements must be strings, with an optional trailing -1")
	}

	if len(alt.Tokens) == 0 {
		return nil, diag.New(diag.ConfigError, "alternative has no grammar tokens")
	}

	return alt, nil
}
