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
	"math"

	"github.com/google/uuid"
)

// Value is the runtime value domain. The set of implementations is closed:
// Number, String, Bool, *Array, *Proc, *Builtin, *Class and *Instance.
type Value interface {
	isValue()
}

type Number float64
type String string
type Bool bool

// Array is shared by reference; push and pop modify it in place.
type Array struct {
	Items []Value
}

// Callable is every value that can stand in operator position.
type Callable interface {
	Value
	Call(args []Value) (Value, error)
}

// Proc is a closure created by fun: parameter names, body and the defining scope.
type Proc struct {
	Name   string // set by define for traces and printing, may be empty
	Params []string
	Body   Expr
	En     *Env
	ev     *Evaluator
}

// Builtin is a host function registered through Declare.
type Builtin struct {
	Decl *Declaration
	Fn   func(a ...Value) (Value, error)
}

// Class is the constructor value produced by the class form. Instances
// point back to it and resolve methods through its table.
type Class struct {
	Name        string
	Constructor Callable
	Methods     map[string]Callable
	MethodOrder []string
}

type Instance struct {
	ID     uuid.UUID
	Class  *Class
	Fields map[string]Value
}

func (Number) isValue()    {}
func (String) isValue()    {}
func (Bool) isValue()      {}
func (*Array) isValue()    {}
func (*Proc) isValue()     {}
func (*Builtin) isValue()  {}
func (*Class) isValue()    {}
func (*Instance) isValue() {}

func NewArray(items []Value) *Array {
	if items == nil {
		items = []Value{}
	}
	return &Array{Items: items}
}

func (p *Proc) Call(args []Value) (Value, error) {
	return p.ev.callProc(p, args)
}

func (b *Builtin) Call(args []Value) (Value, error) {
	if d := b.Decl; d != nil {
		if len(args) < d.MinParameter {
			return nil, typeError("function %s expects at least %d parameters, got %d", d.Name, d.MinParameter, len(args))
		}
		if d.MaxParameter >= 0 && len(args) > d.MaxParameter {
			return nil, typeError("function %s expects at most %d parameters, got %d", d.Name, d.MaxParameter, len(args))
		}
	}
	return b.Fn(args...)
}

func (b *Builtin) Name() string {
	if b.Decl == nil {
		return "native"
	}
	return b.Decl.Name
}

// Call creates a fresh instance, runs the constructor with the instance as
// leading receiver and returns the instance.
func (c *Class) Call(args []Value) (Value, error) {
	inst := &Instance{ID: uuid.New(), Class: c, Fields: make(map[string]Value)}
	ctorArgs := make([]Value, 0, len(args)+1)
	ctorArgs = append(ctorArgs, inst)
	ctorArgs = append(ctorArgs, args...)
	if _, err := c.Constructor.Call(ctorArgs); err != nil {
		return nil, err
	}
	return inst, nil
}

// Method resolves name in the class's method table.
func (i *Instance) Method(name string) (Callable, bool) {
	m, ok := i.Class.Methods[name]
	return m, ok
}

// Truthy: only the boolean false is falsy.
func Truthy(v Value) bool {
	b, ok := v.(Bool)
	return !ok || bool(b)
}

func TypeOf(v Value) string {
	switch v.(type) {
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "boolean"
	case *Array:
		return "array"
	case *Proc, *Builtin:
		return "function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	}
	return "unknown"
}

// Equal compares scalars by value and everything else by identity.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	}
	return a == b
}

func ToNumber(v Value, fn string) (float64, error) {
	n, ok := v.(Number)
	if !ok {
		return 0, typeError("%s expects a number, got %s", fn, TypeOf(v))
	}
	return float64(n), nil
}

func ToStr(v Value, fn string) (string, error) {
	s, ok := v.(String)
	if !ok {
		return "", typeError("%s expects a string, got %s", fn, TypeOf(v))
	}
	return string(s), nil
}

func ToArray(v Value, fn string) (*Array, error) {
	a, ok := v.(*Array)
	if !ok {
		return nil, typeError("%s expects an array, got %s", fn, TypeOf(v))
	}
	return a, nil
}

func ToCallable(v Value, fn string) (Callable, error) {
	c, ok := v.(Callable)
	if !ok {
		return nil, typeError("%s expects a function, got %s", fn, TypeOf(v))
	}
	return c, nil
}

// ToIndex converts v into an integer index; fractional or non-finite numbers are a RangeError.
func ToIndex(v Value, fn string) (int, error) {
	f, err := ToNumber(v, fn)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, rangeError("%s: index %s is not an integer", fn, ToString(v))
	}
	return int(f), nil
}
