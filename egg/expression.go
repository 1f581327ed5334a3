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
	"strconv"
	"strings"
)

// Expr is a node of the program tree. The parser creates the nodes,
// nothing modifies them afterwards.
type Expr interface {
	Pos() Position
	// String renders the node in surface syntax; parsing it again yields an equal tree.
	String() string
	exprNode()
}

// Literal is a number or string constant.
type Literal struct {
	Value Value // Number or String
	Position
}

// Word references a binding by name.
type Word struct {
	Name string
	Position
}

// Apply is a call or special form invocation. Position is the start of the operator.
type Apply struct {
	Operator Expr
	Args     []Expr
	Position
}

func (e *Literal) Pos() Position { return e.Position }
func (e *Word) Pos() Position    { return e.Position }
func (e *Apply) Pos() Position   { return e.Position }

func (*Literal) exprNode() {}
func (*Word) exprNode()    {}
func (*Apply) exprNode()   {}

func (e *Literal) String() string {
	if s, ok := e.Value.(String); ok {
		return "\"" + string(s) + "\""
	}
	if n, ok := e.Value.(Number); ok {
		// plain digits only, the grammar has no exponent notation
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	}
	return ToString(e.Value)
}

func (e *Word) String() string { return e.Name }

func (e *Apply) String() string {
	var b strings.Builder
	b.WriteString(e.Operator.String())
	b.WriteByte('(')
	for i, arg := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// EqualExpr compares two trees structurally, ignoring positions.
func EqualExpr(a, b Expr) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value == y.Value
	case *Word:
		y, ok := b.(*Word)
		return ok && x.Name == y.Name
	case *Apply:
		y, ok := b.(*Apply)
		if !ok || len(x.Args) != len(y.Args) || !EqualExpr(x.Operator, y.Operator) {
			return false
		}
		for i := range x.Args {
			if !EqualExpr(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}
