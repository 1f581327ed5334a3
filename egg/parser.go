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
	"regexp"
	"strconv"
)

/*
 grammar:
	program    := expression
	expression := (string | number | word) ( "(" [expression ("," expression)*] ")" )*
	comments run from # to the end of the line and count as whitespace
*/

var (
	spaceRe  = regexp.MustCompile(`^(?:\s|#[^\n]*)*`)
	stringRe = regexp.MustCompile(`^"([^"]*)"`) // no escape sequences
	numberRe = regexp.MustCompile(`^\d+(?:\.\d+)?`)
	wordRe   = regexp.MustCompile(`^[^\s(),#"]+`)
)

// Parse reads exactly one expression; anything but whitespace after it is an error.
func Parse(src string) (Expr, error) {
	c := NewCursor(src)
	expr, err := parseExpression(c)
	if err != nil {
		return nil, err
	}
	skipSpace(c)
	if !c.AtEnd() {
		return nil, errorAt(SyntaxError, c.Position(), "unexpected text after program")
	}
	return expr, nil
}

func skipSpace(c *Cursor) {
	for {
		m := spaceRe.FindString(c.Remaining())
		if len(m) == 0 {
			return
		}
		c.Advance(len(m))
	}
}

func parseExpression(c *Cursor) (Expr, error) {
	skipSpace(c)
	start := c.Clone().Position()
	rest := c.Remaining()

	var expr Expr
	if m := stringRe.FindStringSubmatch(rest); m != nil {
		expr = &Literal{String(m[1]), start}
		c.Advance(len(m[0]))
	} else if m := numberRe.FindString(rest); m != "" {
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil, errorAt(SyntaxError, start, "invalid number %s", m)
		}
		expr = &Literal{Number(f), start}
		c.Advance(len(m))
	} else if m := wordRe.FindString(rest); m != "" {
		expr = &Word{m, start}
		c.Advance(len(m))
	} else {
		return nil, unexpected(c, rest)
	}
	return parseApply(expr, c)
}

// parseApply absorbs a call suffix and recurses so that f(a)(b) chains.
func parseApply(expr Expr, c *Cursor) (Expr, error) {
	skipSpace(c)
	if c.Peek() != "(" {
		return expr, nil
	}
	c.Advance(1)
	app := &Apply{Operator: expr, Args: []Expr{}, Position: expr.Pos()}

	skipSpace(c)
	if c.Peek() == ")" {
		c.Advance(1)
		return parseApply(app, c)
	}
	for {
		arg, err := parseExpression(c)
		if err != nil {
			return nil, err
		}
		app.Args = append(app.Args, arg)
		skipSpace(c)
		switch c.Peek() {
		case ",":
			c.Advance(1)
			continue
		case ")":
			c.Advance(1)
			return parseApply(app, c)
		case "":
			e := errorAt(SyntaxError, c.Position(), "expected ',' or ')'")
			e.Incomplete = true
			return nil, e
		default:
			return nil, errorAt(SyntaxError, c.Position(), "expected ',' or ')'")
		}
	}
}

func unexpected(c *Cursor, rest string) error {
	if rest == "" {
		e := errorAt(SyntaxError, c.Position(), "unexpected end of input")
		e.Incomplete = true
		return e
	}
	if rest[0] == '"' {
		e := errorAt(SyntaxError, c.Position(), "unterminated string")
		e.Incomplete = true
		return e
	}
	return errorAt(SyntaxError, c.Position(), "unexpected syntax: \"%s...\"", preview(rest, 10))
}

func preview(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
