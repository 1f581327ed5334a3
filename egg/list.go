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
	"sort"
	"strings"
	"unicode/utf8"
)

func arrayFn(name string, fn func(arr *Array, a []Value) (Value, error)) func(...Value) (Value, error) {
	return func(a ...Value) (Value, error) {
		arr, err := ToArray(a[0], name)
		if err != nil {
			return nil, err
		}
		return fn(arr, a[1:])
	}
}

// iterate calls fn with each element; stop ends the loop early.
func iterate(arr *Array, fnv Value, name string, visit func(item, result Value) (stop bool)) error {
	fn, err := ToCallable(fnv, name)
	if err != nil {
		return err
	}
	// a snapshot, the callback may push to the array
	items := append([]Value(nil), arr.Items...)
	for _, item := range items {
		result, err := ApplyValue(fn, item)
		if err != nil {
			return err
		}
		if visit(item, result) {
			return nil
		}
	}
	return nil
}

var arrayParam = DeclarationParameter{"array", "array", "input array"}
var callbackParam = DeclarationParameter{"callback", "func", "function called with one element"}

func init_list() {
	DeclareTitle("Arrays")

	Declare(&Declaration{
		"array", "returns an array containing the parameters as elements",
		0, Variadic,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "elements"},
		}, "array",
		func(a ...Value) (Value, error) {
			return NewArray(append([]Value{}, a...)), nil
		},
	})
	Declare(&Declaration{
		"length", "number of elements of an array or characters of a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "array|string", "value to measure"},
		}, "number",
		func(a ...Value) (Value, error) {
			switch v := a[0].(type) {
			case *Array:
				return Number(len(v.Items)), nil
			case String:
				return Number(utf8.RuneCountInString(string(v))), nil
			}
			return nil, typeError("length expects an array or a string, got %s", TypeOf(a[0]))
		},
	})
	Declare(&Declaration{
		"element", "element at the given index; out of range indices are a RangeError",
		2, 2,
		[]DeclarationParameter{
			arrayParam,
			DeclarationParameter{"index", "number", "index beginning from 0"},
		}, "any",
		arrayFn("element", func(arr *Array, a []Value) (Value, error) {
			if _, ok := a[0].(Number); !ok {
				return nil, typeError("element expects a number index, got %s", TypeOf(a[0]))
			}
			i, err := ToIndex(a[0], "element")
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(arr.Items) {
				return nil, rangeError("array index %d out of bounds (length %d)", i, len(arr.Items))
			}
			return arr.Items[i], nil
		}),
	})
	Declare(&Declaration{
		"push", "appends values to the array in place and returns the new length",
		2, Variadic,
		[]DeclarationParameter{
			arrayParam,
			DeclarationParameter{"value...", "any", "values to append"},
		}, "number",
		arrayFn("push", func(arr *Array, a []Value) (Value, error) {
			arr.Items = append(arr.Items, a...)
			return Number(len(arr.Items)), nil
		}),
	})
	Declare(&Declaration{
		"pop", "removes and returns the last element; false if the array is empty",
		1, 1,
		[]DeclarationParameter{arrayParam}, "any",
		arrayFn("pop", func(arr *Array, a []Value) (Value, error) {
			if len(arr.Items) == 0 {
				return Bool(false), nil
			}
			last := arr.Items[len(arr.Items)-1]
			arr.Items = arr.Items[:len(arr.Items)-1]
			return last, nil
		}),
	})
	Declare(&Declaration{
		"slice", "copies the part from start up to (not including) end of an array or string; negative positions count from the end",
		2, 3,
		[]DeclarationParameter{
			DeclarationParameter{"value", "array|string", "input"},
			DeclarationParameter{"start", "number", "first position"},
			DeclarationParameter{"end", "number", "end position (default: length)"},
		}, "array|string",
		func(a ...Value) (Value, error) {
			var n int
			switch v := a[0].(type) {
			case *Array:
				n = len(v.Items)
			case String:
				n = utf8.RuneCountInString(string(v))
			default:
				return nil, typeError("slice expects an array or a string, got %s", TypeOf(a[0]))
			}
			f, err := ToNumber(a[1], "slice")
			if err != nil {
				return nil, err
			}
			start, end := clampIndex(f, n, true), n
			if len(a) > 2 {
				f, err := ToNumber(a[2], "slice")
				if err != nil {
					return nil, err
				}
				end = clampIndex(f, n, true)
			}
			if end < start {
				end = start
			}
			if s, ok := a[0].(String); ok {
				return String([]rune(string(s))[start:end]), nil
			}
			return NewArray(append([]Value{}, a[0].(*Array).Items[start:end]...)), nil
		},
	})
	Declare(&Declaration{
		"join", "joins the elements as strings with a separator (default \",\")",
		1, 2,
		[]DeclarationParameter{
			arrayParam,
			DeclarationParameter{"separator", "string", "separator"},
		}, "string",
		arrayFn("join", func(arr *Array, a []Value) (Value, error) {
			sep := ","
			if len(a) > 0 {
				s, err := ToStr(a[0], "join")
				if err != nil {
					return nil, err
				}
				sep = s
			}
			parts := make([]string, len(arr.Items))
			for i, item := range arr.Items {
				parts[i] = ToString(item)
			}
			return String(strings.Join(parts, sep)), nil
		}),
	})
	Declare(&Declaration{
		"map", "new array with the callback applied to every element",
		2, 2,
		[]DeclarationParameter{arrayParam, callbackParam}, "array",
		arrayFn("map", func(arr *Array, a []Value) (Value, error) {
			result := make([]Value, 0, len(arr.Items))
			err := iterate(arr, a[0], "map", func(item, r Value) bool {
				result = append(result, r)
				return false
			})
			if err != nil {
				return nil, err
			}
			return NewArray(result), nil
		}),
	})
	Declare(&Declaration{
		"filter", "new array with the elements for which the callback does not return false",
		2, 2,
		[]DeclarationParameter{arrayParam, callbackParam}, "array",
		arrayFn("filter", func(arr *Array, a []Value) (Value, error) {
			result := make([]Value, 0)
			err := iterate(arr, a[0], "filter", func(item, r Value) bool {
				if Truthy(r) {
					result = append(result, item)
				}
				return false
			})
			if err != nil {
				return nil, err
			}
			return NewArray(result), nil
		}),
	})
	Declare(&Declaration{
		"forEach", "calls the callback for every element; returns false",
		2, 2,
		[]DeclarationParameter{arrayParam, callbackParam}, "bool",
		arrayFn("forEach", func(arr *Array, a []Value) (Value, error) {
			err := iterate(arr, a[0], "forEach", func(item, r Value) bool { return false })
			if err != nil {
				return nil, err
			}
			return Bool(false), nil
		}),
	})
	Declare(&Declaration{
		"find", "first element for which the callback does not return false; false if there is none",
		2, 2,
		[]DeclarationParameter{arrayParam, callbackParam}, "any",
		arrayFn("find", func(arr *Array, a []Value) (Value, error) {
			var found Value = Bool(false)
			err := iterate(arr, a[0], "find", func(item, r Value) bool {
				if Truthy(r) {
					found = item
					return true
				}
				return false
			})
			if err != nil {
				return nil, err
			}
			return found, nil
		}),
	})
	Declare(&Declaration{
		"reduce", "folds the array from the left: acc = callback(acc, element)",
		3, 3,
		[]DeclarationParameter{
			arrayParam,
			DeclarationParameter{"callback", "func", "function (acc, element) returning the next acc"},
			DeclarationParameter{"initial", "any", "initial accumulator"},
		}, "any",
		arrayFn("reduce", func(arr *Array, a []Value) (Value, error) {
			fn, err := ToCallable(a[0], "reduce")
			if err != nil {
				return nil, err
			}
			acc := a[1]
			for _, item := range append([]Value(nil), arr.Items...) {
				if acc, err = ApplyValue(fn, acc, item); err != nil {
					return nil, err
				}
			}
			return acc, nil
		}),
	})
	Declare(&Declaration{
		"sort", "sorted copy of the array; numbers and strings sort naturally, a comparator(a, b) returns a negative number if a comes first",
		1, 2,
		[]DeclarationParameter{
			arrayParam,
			DeclarationParameter{"comparator", "func", "optional function (a, b) returning a number"},
		}, "array",
		arrayFn("sort", func(arr *Array, a []Value) (Value, error) {
			items := append([]Value{}, arr.Items...)
			var cmp Callable
			if len(a) > 0 {
				fn, err := ToCallable(a[0], "sort")
				if err != nil {
					return nil, err
				}
				cmp = fn
			}
			var sortErr error
			sort.SliceStable(items, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				if cmp == nil {
					less, err := Less(items[i], items[j], "sort")
					sortErr = err
					return less
				}
				r, err := ApplyValue(cmp, items[i], items[j])
				if err != nil {
					sortErr = err
					return false
				}
				n, err := ToNumber(r, "sort comparator")
				sortErr = err
				return n < 0
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return NewArray(items), nil
		}),
	})
	Declare(&Declaration{
		"reverse", "reversed copy of the array",
		1, 1,
		[]DeclarationParameter{arrayParam}, "array",
		arrayFn("reverse", func(arr *Array, a []Value) (Value, error) {
			n := len(arr.Items)
			items := make([]Value, n)
			for i, item := range arr.Items {
				items[n-1-i] = item
			}
			return NewArray(items), nil
		}),
	})
	Declare(&Declaration{
		"includes", "true if the array contains the value or the string contains the substring",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"haystack", "array|string", "where to search"},
			DeclarationParameter{"needle", "any", "what to search"},
		}, "bool",
		func(a ...Value) (Value, error) {
			i, err := indexOf(a[0], a[1], "includes")
			if err != nil {
				return nil, err
			}
			return Bool(i >= 0), nil
		},
	})
	Declare(&Declaration{
		"indexOf", "position of the first occurrence in an array or string, -1 if not found",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"haystack", "array|string", "where to search"},
			DeclarationParameter{"needle", "any", "what to search"},
		}, "number",
		func(a ...Value) (Value, error) {
			i, err := indexOf(a[0], a[1], "indexOf")
			if err != nil {
				return nil, err
			}
			return Number(i), nil
		},
	})
}

func indexOf(haystack, needle Value, name string) (int, error) {
	switch h := haystack.(type) {
	case *Array:
		for i, item := range h.Items {
			if Equal(item, needle) {
				return i, nil
			}
		}
		return -1, nil
	case String:
		s, err := ToStr(needle, name)
		if err != nil {
			return 0, err
		}
		pos := strings.Index(string(h), s)
		if pos < 0 {
			return -1, nil
		}
		return utf8.RuneCountInString(string(h)[:pos]), nil
	}
	return 0, typeError("%s expects an array or a string, got %s", name, TypeOf(haystack))
}
