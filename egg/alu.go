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
	"math/rand"
)

var binaryNumberParams = []DeclarationParameter{
	DeclarationParameter{"a", "number", "left operand"},
	DeclarationParameter{"b", "number", "right operand"},
}

var unaryNumberParams = []DeclarationParameter{
	DeclarationParameter{"value", "number", "value to round or convert"},
}

func numberOp(name string, op func(a, b float64) float64) func(...Value) (Value, error) {
	return func(a ...Value) (Value, error) {
		x, err := ToNumber(a[0], name)
		if err != nil {
			return nil, err
		}
		y, err := ToNumber(a[1], name)
		if err != nil {
			return nil, err
		}
		return Number(op(x, y)), nil
	}
}

func unaryOp(name string, op func(float64) float64) func(...Value) (Value, error) {
	return func(a ...Value) (Value, error) {
		x, err := ToNumber(a[0], name)
		if err != nil {
			return nil, err
		}
		return Number(op(x)), nil
	}
}

// Less orders two numbers or two strings; anything else is a TypeError.
func Less(a, b Value, name string) (bool, error) {
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			return x < y, nil
		}
	case String:
		if y, ok := b.(String); ok {
			return x < y, nil
		}
	}
	return false, typeError("%s cannot compare %s with %s", name, TypeOf(a), TypeOf(b))
}

func compareOp(name string, test func(less, greater bool) bool) func(...Value) (Value, error) {
	return func(a ...Value) (Value, error) {
		less, err := Less(a[0], a[1], name)
		if err != nil {
			return nil, err
		}
		greater, _ := Less(a[1], a[0], name)
		return Bool(test(less, greater)), nil
	}
}

func init_alu() {
	DeclareTitle("Arithmetic / Logic")

	Declare(&Declaration{
		"+", "adds two numbers; if one side is a string both are concatenated as strings",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number|string", "left operand"},
			DeclarationParameter{"b", "number|string", "right operand"},
		}, "number|string",
		func(a ...Value) (Value, error) {
			_, sa := a[0].(String)
			_, sb := a[1].(String)
			if sa || sb {
				return String(ToString(a[0]) + ToString(a[1])), nil
			}
			return numberOp("+", func(x, y float64) float64 { return x + y })(a...)
		},
	})
	Declare(&Declaration{
		"-", "subtracts b from a",
		2, 2, binaryNumberParams, "number",
		numberOp("-", func(x, y float64) float64 { return x - y }),
	})
	Declare(&Declaration{
		"*", "multiplies two numbers",
		2, 2, binaryNumberParams, "number",
		numberOp("*", func(x, y float64) float64 { return x * y }),
	})
	Declare(&Declaration{
		"/", "divides a by b (division by zero yields Infinity or NaN)",
		2, 2, binaryNumberParams, "number",
		numberOp("/", func(x, y float64) float64 { return x / y }),
	})
	Declare(&Declaration{
		"==", "true if both values are equal; arrays, functions and instances compare by identity",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "left operand"},
			DeclarationParameter{"b", "any", "right operand"},
		}, "bool",
		func(a ...Value) (Value, error) {
			return Bool(Equal(a[0], a[1])), nil
		},
	})
	Declare(&Declaration{
		"!=", "true if both values differ",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "left operand"},
			DeclarationParameter{"b", "any", "right operand"},
		}, "bool",
		func(a ...Value) (Value, error) {
			return Bool(!Equal(a[0], a[1])), nil
		},
	})
	compareParams := []DeclarationParameter{
		DeclarationParameter{"a", "number|string", "left operand"},
		DeclarationParameter{"b", "number|string", "right operand (same type as a)"},
	}
	Declare(&Declaration{
		"<", "true if a < b", 2, 2, compareParams, "bool",
		compareOp("<", func(less, greater bool) bool { return less }),
	})
	Declare(&Declaration{
		">", "true if a > b", 2, 2, compareParams, "bool",
		compareOp(">", func(less, greater bool) bool { return greater }),
	})
	Declare(&Declaration{
		"<=", "true if a <= b", 2, 2, compareParams, "bool",
		compareOp("<=", func(less, greater bool) bool { return !greater }),
	})
	Declare(&Declaration{
		">=", "true if a >= b", 2, 2, compareParams, "bool",
		compareOp(">=", func(less, greater bool) bool { return !less }),
	})

	Declare(&Declaration{
		"&&", "returns a if it is false, otherwise b (both sides are evaluated)",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "first value"},
			DeclarationParameter{"b", "any", "second value"},
		}, "any",
		func(a ...Value) (Value, error) {
			if !Truthy(a[0]) {
				return a[0], nil
			}
			return a[1], nil
		},
	})
	Declare(&Declaration{
		"||", "returns a unless it is false, otherwise b (both sides are evaluated)",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "first value"},
			DeclarationParameter{"b", "any", "second value"},
		}, "any",
		func(a ...Value) (Value, error) {
			if Truthy(a[0]) {
				return a[0], nil
			}
			return a[1], nil
		},
	})
	Declare(&Declaration{
		"!", "true if the value is false, otherwise false",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to negate"},
		}, "bool",
		func(a ...Value) (Value, error) {
			return Bool(!Truthy(a[0])), nil
		},
	})

	DeclareTitle("Numbers")
	Declare(&Declaration{
		"abs", "absolute value", 1, 1, unaryNumberParams, "number",
		unaryOp("abs", math.Abs),
	})
	Declare(&Declaration{
		"floor", "rounds down", 1, 1, unaryNumberParams, "number",
		unaryOp("floor", math.Floor),
	})
	Declare(&Declaration{
		"ceil", "rounds up", 1, 1, unaryNumberParams, "number",
		unaryOp("ceil", math.Ceil),
	})
	Declare(&Declaration{
		"round", "rounds to the nearest integer; halves round up", 1, 1, unaryNumberParams, "number",
		unaryOp("round", func(x float64) float64 { return math.Floor(x + 0.5) }),
	})
	minmaxParams := []DeclarationParameter{
		DeclarationParameter{"value...", "number", "values to compare"},
	}
	Declare(&Declaration{
		"min", "smallest of the given numbers (Infinity if there is none)",
		0, Variadic, minmaxParams, "number",
		func(a ...Value) (Value, error) {
			result := math.Inf(1)
			for _, v := range a {
				x, err := ToNumber(v, "min")
				if err != nil {
					return nil, err
				}
				if math.IsNaN(x) {
					return Number(math.NaN()), nil
				}
				result = math.Min(result, x)
			}
			return Number(result), nil
		},
	})
	Declare(&Declaration{
		"max", "largest of the given numbers (-Infinity if there is none)",
		0, Variadic, minmaxParams, "number",
		func(a ...Value) (Value, error) {
			result := math.Inf(-1)
			for _, v := range a {
				x, err := ToNumber(v, "max")
				if err != nil {
					return nil, err
				}
				if math.IsNaN(x) {
					return Number(math.NaN()), nil
				}
				result = math.Max(result, x)
			}
			return Number(result), nil
		},
	})
	Declare(&Declaration{
		"random", "pseudo random number in [0, 1)",
		0, 0, []DeclarationParameter{}, "number",
		func(a ...Value) (Value, error) {
			return Number(rand.Float64()), nil
		},
	})
	Declare(&Declaration{
		"type", "name of the value's type: number, string, boolean, array, function, class or instance",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to examine"},
		}, "string",
		func(a ...Value) (Value, error) {
			return String(TypeOf(a[0])), nil
		},
	})
}
