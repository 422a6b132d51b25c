package lexicon

import "strings"

// DecodeEscapes runs the captured body of a double-quoted string
// literal (without the surrounding quotes) through the escape-sequence
// encoder: \t, \n, \r, \", \\ map to their control/literal characters;
// any other \X passes through unchanged (backslash and X both kept).
func DecodeEscapes(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			b.WriteByte(raw[i])
			continue
		}
		switch raw[i+1] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(raw[i+1])
		}
		i++
	}
	return b.String()
}

// EncodeEscapes is the inverse of DecodeEscapes: it produces the
// double-quoted-string body that would decode back to s, escaping the
// control/literal characters the lexer understands. Exercised by the
// round-trip property test in spec.md §8 (property 2); AST
// serialization does not use it.
func EncodeEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
