package lexicon

import "github.com/tokenloom/lexgram/token"

// cursor carries (line, column) through a byte stream, advancing column
// by tabSize for a tab character and resetting to column 1 on newline.
// It mirrors the teacher lexer's start/pos/line/column bookkeeping in
// parser/lexer.Lexer, generalized with a configurable tab width.
type cursor struct {
	src     []byte
	i       int // current position, not yet accounted for in loc
	j       int // position up to which loc has been updated
	loc     token.Location
	tabSize int
}

func newCursor(src []byte, tabSize int) *cursor {
	if tabSize <= 0 {
		tabSize = 4
	}
	return &cursor{src: src, loc: token.Location{Line: 1, Column: 1}, tabSize: tabSize}
}

func (c *cursor) atEnd() bool {
	return c.i >= len(c.src)
}

// sync advances j to i, folding every byte in between into loc.
func (c *cursor) sync() {
	for c.j < c.i {
		switch c.src[c.j] {
		case '\n':
			c.loc.Line++
			c.loc.Column = 1
		case '\t':
			c.loc.Column += c.tabSize
		default:
			c.loc.Column++
		}
		c.j++
	}
}

// location returns the location of byte i, syncing first if needed.
func (c *cursor) location() token.Location {
	c.sync()
	return c.loc
}

func (c *cursor) skipWhitespace() {
	for c.i < len(c.src) && isSpace(c.src[c.i]) {
		c.i++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
