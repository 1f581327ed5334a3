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

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	ReferenceError
	TypeError
	RangeError
	HostError // failure reported by the host, e.g. a broken output stream
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case ReferenceError:
		return "ReferenceError"
	case TypeError:
		return "TypeError"
	case RangeError:
		return "RangeError"
	}
	return "Error"
}

// Error is the single error type raised by the parser, the evaluator and the builtins.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Line   int
	Column int
	HasPos bool
	// Incomplete is set by the parser when the input ended too early;
	// the REPL uses it to ask for another line.
	Incomplete bool
}

func (e *Error) Error() string {
	if e.HasPos {
		return fmt.Sprintf("%s: %s at line %d, column %d", e.Kind, e.Msg, e.Line, e.Column)
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) setPos(p Position) {
	e.Line, e.Column, e.HasPos = p.Line, p.Column, true
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func errorAt(kind ErrorKind, p Position, format string, args ...any) *Error {
	e := newError(kind, format, args...)
	e.setPos(p)
	return e
}

func typeError(format string, args ...any) error {
	return newError(TypeError, format, args...)
}

func rangeError(format string, args ...any) error {
	return newError(RangeError, format, args...)
}

// IsKind reports whether err is (or wraps) a language error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsIncomplete reports whether parsing failed only because the input ended.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Incomplete
}

// annotate attaches the position of expr to errors that do not carry one yet.
func annotate(err error, expr Expr) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if !e.HasPos {
			e.setPos(expr.Pos())
		}
		return err
	}
	return errorAt(HostError, expr.Pos(), "%s", err.Error())
}
