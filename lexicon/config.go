package lexicon

import (
	"github.com/segmentio/encoding/json"

	"github.com/tokenloom/lexgram/diag"
)

// Config is the lexicon file shape: an ordered list of token
// generators, first-match-wins.
type Config struct {
	TokenGenerators []GeneratorConfig `json:"token_generators"`
}

// GeneratorConfig names one recognizer and carries its raw config
// object, deferred-parsed by that recognizer's ReadConfig.
type GeneratorConfig struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config"`
}

// LoadConfig parses a lexicon JSON document.
func LoadConfig(data []byte) (Config, *diag.Diagnostic) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, diag.Wrap(diag.ConfigError, err, "parsing lexicon JSON")
	}
	return cfg, nil
}

// BuildRecognizers walks cfg.TokenGenerators in file order, constructing
// and configuring one Recognizer per entry.
func BuildRecognizers(cfg Config) ([]Recognizer, *diag.Diagnostic) {
	recognizers := make([]Recognizer, 0, len(cfg.TokenGenerators))
	for _, gen := range cfg.TokenGenerators {
		r, errDiag := NewRecognizer(gen.Name)
		if errDiag != nil {
			return nil, errDiag
		}
		if errDiag := r.ReadConfig(gen.Config); errDiag != nil {
			return nil, errDiag
		}
		recognizers = append(recognizers, r)
	}
	return recognizers, nil
}

// New builds a Lexer directly from a lexicon JSON document.
func New(data []byte) (*Lexer, *diag.Diagnostic) {
	cfg, errDiag := LoadConfig(data)
	if errDiag != nil {
		return nil, errDiag
	}
	recognizers, errDiag := BuildRecognizers(cfg)
	if errDiag != nil {
		return nil, errDiag
	}
	return NewLexer(recognizers, DefaultTabSize), nil
}
