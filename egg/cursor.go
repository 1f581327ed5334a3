/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package egg

import (
	"fmt"
	"unicode/utf8"
)

// Position is a 1-based line/column pair inside the program text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Cursor walks over the raw program text and keeps track of line and column.
type Cursor struct {
	src    string
	pos    int // byte offset
	line   int
	column int
}

func NewCursor(src string) *Cursor {
	return &Cursor{src: src, line: 1, column: 1}
}

// Peek returns the current character or "" at the end of input.
func (c *Cursor) Peek() string {
	if c.pos >= len(c.src) {
		return ""
	}
	_, size := utf8.DecodeRuneInString(c.src[c.pos:])
	return c.src[c.pos : c.pos+size]
}

// Advance moves n bytes forward. Columns count characters, so continuation
// bytes of a multi-byte sequence do not advance the column.
func (c *Cursor) Advance(n int) {
	for i := 0; i < n && c.pos < len(c.src); i++ {
		ch := c.src[c.pos]
		if ch == '\n' {
			c.line++
			c.column = 1
		} else if ch&0xC0 != 0x80 {
			c.column++
		}
		c.pos++
	}
}

func (c *Cursor) Remaining() string {
	return c.src[c.pos:]
}

func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.src)
}

func (c *Cursor) Clone() *Cursor {
	cp := *c
	return &cp
}

func (c *Cursor) Position() Position {
	return Position{c.line, c.column}
}
