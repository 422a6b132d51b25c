package lexgram_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenloom/lexgram"
)

func jsonLexicon(t *testing.T) []byte {
	t.Helper()
	return []byte(`{
		"token_generators": [
			{"name": "Paren"},
			{"name": "Delimiter"},
			{"name": "String", "config": {"process_escape_sequences": true}},
			{"name": "Number"},
			{"name": "Identifier", "config": {"keywords": ["true", "false", "null"]}}
		]
	}`)
}

func jsonGrammar(t *testing.T) []byte {
	t.Helper()
	return []byte(`{
		"initial_rule": "value",
		"algorithm": "quick",
		"rules": {
			"value":  [["object"], ["@string"], ["@number"], ["true"], ["false"], ["null"]],
			"object": [["{", "pair", "}"]],
			"pair":   [["@string", ":", "value"]]
		}
	}`)
}

func TestParseEndToEnd(t *testing.T) {
	lx, errDiag := lexgram.ConfigureLexer(jsonLexicon(t))
	require.Nil(t, errDiag, "%v", errDiag)
	g, errDiag := lexgram.LoadGrammar(jsonGrammar(t))
	require.Nil(t, errDiag, "%v", errDiag)

	root, errDiag := lexgram.Parse(`{"a": 1}`, g, lx)
	require.Nil(t, errDiag, "%v", errDiag)
	assert.Equal(t, "value", root.Text)
	assert.NotNil(t, root.FindChild("object", 1))
}

func TestParseFileMatchesParse(t *testing.T) {
	lx, errDiag := lexgram.ConfigureLexer(jsonLexicon(t))
	require.Nil(t, errDiag, "%v", errDiag)
	g, errDiag := lexgram.LoadGrammar(jsonGrammar(t))
	require.Nil(t, errDiag, "%v", errDiag)

	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o644))

	fromFile, errDiag := lexgram.ParseFile(path, g, lx)
	require.Nil(t, errDiag, "%v", errDiag)
	fromText, errDiag := lexgram.Parse(`{"a": 1}`, g, lx)
	require.Nil(t, errDiag, "%v", errDiag)

	assert.Equal(t, fromText.Dump(), fromFile.Dump())
}

func TestParseFileMissingReportsIODiagnostic(t *testing.T) {
	lx, errDiag := lexgram.ConfigureLexer(jsonLexicon(t))
	require.Nil(t, errDiag, "%v", errDiag)
	g, errDiag := lexgram.LoadGrammar(jsonGrammar(t))
	require.Nil(t, errDiag, "%v", errDiag)

	_, errDiag = lexgram.ParseFile(filepath.Join(t.TempDir(), "missing.txt"), g, lx)
	require.NotNil(t, errDiag)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	lx, errDiag := lexgram.ConfigureLexer(jsonLexicon(t))
	require.Nil(t, errDiag, "%v", errDiag)
	g, errDiag := lexgram.LoadGrammar(jsonGrammar(t))
	require.Nil(t, errDiag, "%v", errDiag)

	root, errDiag := lexgram.Parse(`{"a": 1}`, g, lx)
	require.Nil(t, errDiag, "%v", errDiag)

	data, err := lexgram.SerializeAst(root, "round trip test")
	require.NoError(t, err)

	restored, errDiag := lexgram.DeserializeAst(data)
	require.Nil(t, errDiag, "%v", errDiag)
	assert.Equal(t, root.Dump(), restored.Dump())
}
