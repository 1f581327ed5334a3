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
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram evaluates src in a fresh child of a new root scope and returns
// the result together with everything print wrote.
func runProgram(t *testing.T, src string) (Value, string, error) {
	t.Helper()
	var out bytes.Buffer
	en := NewEnv(NewTopScope(&out))
	v, err := NewEvaluator().Run(src, en)
	return v, out.String(), err
}

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, "got %v", err)
	return e
}

func TestEval_Programs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"define returns value", "do(define(x, 10), x)", Number(10)},
		{"closure assigns outer", "do(define(x, 1), define(f, fun(set(x, 2))), f(), x)", Number(2)},
		// a closure sees later defines of the same scope
		{"redefine in closure scope", "do(define(x, 5), define(f, fun(y, +(x, y))), define(x, 999), f(3))", Number(1002)},
		{"lexical scope", "do(define(a, 5), define(g, fun(x, +(x, a))), define(h, fun(a, g(3))), h(100))", Number(8)},
		{"while sums", "do(define(i, 0), define(s, 0), while(<(i, 4), do(set(s, +(s, i)), set(i, +(i, 1)))), s)", Number(6)},
		{"while false", "while(false, undefinedThing)", Bool(false)},
		{"curried", "fun(n, fun(x, +(x, n)))(5)(10)", Number(15)},
		{"zero is true", "if(0, \"a\", \"b\")", String("a")},
		{"empty string is true", "if(\"\", 1, 2)", Number(1)},
		{"only false is false", "if(false, 1, 2)", Number(2)},
		{"empty do", "do()", Bool(false)},
		{"shadowing", "do(define(x, 1), define(f, fun(do(define(x, 2), x))), +(f(), x))", Number(3)},
		{"recursion", "do(define(fact, fun(n, if(<(n, 2), 1, *(n, fact(-(n, 1)))))), fact(10))", Number(3628800)},
		{"counter", "do(define(mk, fun(do(define(c, 0), fun(set(c, +(c, 1)))))), define(inc, mk()), inc(), inc(), inc())", Number(3)},
		{"define shadows builtin", "do(define(length, 7), length)", Number(7)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, _, err := runProgram(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestEval_PrintOutput(t *testing.T) {
	v, out, err := runProgram(t, "do(define(x, 10), if(>(x, 5), print(\"large\"), print(\"small\")))")
	require.NoError(t, err)
	assert.Equal(t, String("large"), v)
	assert.Equal(t, "large\n", out)
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
		msg  string
	}{
		{"undefined", "+(undefinedName, 1)", ReferenceError, "undefinedName"},
		{"set undefined", "set(nope, 1)", ReferenceError, "nope"},
		{"arity", "do(define(f, fun(a, b, +(a, b))), f(1))", TypeError, "expected 2, got 1"},
		{"non-function", "5(1)", TypeError, "applying a non-function"},
		{"string call", "\"f\"()", TypeError, "applying a non-function"},
		{"element range", "element(array(1, 2), 5)", RangeError, "out of bounds"},
		{"element fraction", "element(array(1, 2), 0.5)", RangeError, "not an integer"},
		{"element type", "element(1, 0)", TypeError, "expects an array"},
		{"if arity", "if(true, 1)", SyntaxError, "if"},
		{"define target", "define(1, 2)", SyntaxError, "define"},
		{"set target", "set(\"x\", 2)", SyntaxError, "set"},
		{"fun without body", "fun()", SyntaxError, "body"},
		{"fun parameter", "fun(1, x)", SyntaxError, "parameter"},
		{"builtin arity", "length()", TypeError, "at least 1"},
		{"syntax", "+(1, 2", SyntaxError, "expected"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runProgram(t, tc.src)
			e := requireKind(t, err, tc.kind)
			assert.Contains(t, e.Msg, tc.msg)
			assert.True(t, e.HasPos, "error without position: %v", err)
		})
	}
}

func TestEval_ErrorPositions(t *testing.T) {
	_, _, err := runProgram(t, "do(\n  print(1),\n  foo)")
	e := requireKind(t, err, ReferenceError)
	assert.Equal(t, 3, e.Line)
	assert.Equal(t, 3, e.Column)
	assert.Equal(t, "ReferenceError: undefined binding: foo at line 3, column 3", err.Error())

	_, _, err = runProgram(t, "do(define(f, fun(a, a)),\nf())")
	e = requireKind(t, err, TypeError)
	assert.Equal(t, 2, e.Line)
	assert.Equal(t, 1, e.Column)
}

func TestEval_SideEffectsBeforeError(t *testing.T) {
	_, out, err := runProgram(t, "do(print(\"before\"), undefinedName, print(\"after\"))")
	requireKind(t, err, ReferenceError)
	assert.Equal(t, "before\n", out)
}

func TestEval_ArgumentOrder(t *testing.T) {
	_, out, err := runProgram(t, "+(print(1), print(2))")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestEval_StepLimit(t *testing.T) {
	ev := NewEvaluator()
	ev.MaxSteps = 1000
	_, err := ev.Run("while(true, 1)", NewEnv(NewTopScope(&bytes.Buffer{})))
	e := requireKind(t, err, RangeError)
	assert.Contains(t, e.Msg, "step budget")

	// the budget starts fresh for every run
	v, err := ev.Run("+(1, 2)", NewEnv(NewTopScope(&bytes.Buffer{})))
	require.NoError(t, err)
	assert.Equal(t, Number(3), v)
}

func TestEval_DepthLimit(t *testing.T) {
	ev := NewEvaluator()
	ev.MaxDepth = 200
	_, err := ev.Run("do(define(f, fun(n, f(n))), f(1))", NewEnv(NewTopScope(&bytes.Buffer{})))
	e := requireKind(t, err, RangeError)
	assert.Contains(t, e.Msg, "depth")
}

func TestEval_SharedScope(t *testing.T) {
	ev := NewEvaluator()
	en := NewEnv(NewTopScope(&bytes.Buffer{}))
	_, err := ev.Run("define(x, 41)", en)
	require.NoError(t, err)
	v, err := ev.Run("+(x, 1)", en)
	require.NoError(t, err)
	assert.Equal(t, Number(42), v)
}

func TestApplyValue(t *testing.T) {
	ev := NewEvaluator()
	en := NewEnv(NewTopScope(&bytes.Buffer{}))
	fn, err := ev.Run("fun(a, b, *(a, b))", en)
	require.NoError(t, err)

	v, err := ApplyValue(fn, Number(6), Number(7))
	require.NoError(t, err)
	assert.Equal(t, Number(42), v)

	maxFn, ok := en.Lookup("max")
	require.True(t, ok)
	v, err = ApplyValue(maxFn, Number(1), Number(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, Number(math.Inf(1)), v)

	_, err = ApplyValue(Number(1))
	requireKind(t, err, TypeError)
}
