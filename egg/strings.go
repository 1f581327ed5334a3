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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// clampIndex converts a number into a position inside [0, n]; negative
// positions count from the end when fromEnd is set.
func clampIndex(f float64, n int, fromEnd bool) int {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Trunc(f)
	if f < 0 {
		if !fromEnd {
			return 0
		}
		f += float64(n)
		if f < 0 {
			return 0
		}
	}
	if f > float64(n) {
		return n
	}
	return int(f)
}

// longest string repeat may build, in bytes
const maxStringLength = 1 << 29

func stringFn(name string, fn func(s string, a []Value) (Value, error)) func(...Value) (Value, error) {
	return func(a ...Value) (Value, error) {
		s, err := ToStr(a[0], name)
		if err != nil {
			return nil, err
		}
		return fn(s, a[1:])
	}
}

func init_strings() {
	DeclareTitle("Strings")

	Declare(&Declaration{
		"concat", "concatenates all values as strings",
		1, Variadic,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to concatenate"},
		}, "string",
		func(a ...Value) (Value, error) {
			var b strings.Builder
			for _, v := range a {
				b.WriteString(ToString(v))
			}
			return String(b.String()), nil
		},
	})
	Declare(&Declaration{
		"substring", "characters from start up to (not including) end; the bounds are clamped and swapped if start > end",
		2, 3,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"start", "number", "first character"},
			DeclarationParameter{"end", "number", "end position (default: end of string)"},
		}, "string",
		stringFn("substring", func(s string, a []Value) (Value, error) {
			r := []rune(s)
			f, err := ToNumber(a[0], "substring")
			if err != nil {
				return nil, err
			}
			start, end := clampIndex(f, len(r), false), len(r)
			if len(a) > 1 {
				f, err := ToNumber(a[1], "substring")
				if err != nil {
					return nil, err
				}
				end = clampIndex(f, len(r), false)
			}
			if start > end {
				start, end = end, start
			}
			return String(r[start:end]), nil
		}),
	})
	Declare(&Declaration{
		"charAt", "character at the given position or \"\" if out of range",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"index", "number", "position beginning from 0"},
		}, "string",
		stringFn("charAt", func(s string, a []Value) (Value, error) {
			f, err := ToNumber(a[0], "charAt")
			if err != nil {
				return nil, err
			}
			r := []rune(s)
			i := math.Trunc(f)
			if math.IsNaN(i) || i < 0 || i >= float64(len(r)) {
				return String(""), nil
			}
			return String(r[int(i)]), nil
		}),
	})
	Declare(&Declaration{
		"toLowerCase", "converts a string to lower case",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
		}, "string",
		stringFn("toLowerCase", func(s string, a []Value) (Value, error) {
			return String(cases.Lower(language.Und).String(s)), nil
		}),
	})
	Declare(&Declaration{
		"toUpperCase", "converts a string to upper case",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
		}, "string",
		stringFn("toUpperCase", func(s string, a []Value) (Value, error) {
			return String(cases.Upper(language.Und).String(s)), nil
		}),
	})
	Declare(&Declaration{
		"trim", "removes leading and trailing white space",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
		}, "string",
		stringFn("trim", func(s string, a []Value) (Value, error) {
			return String(strings.TrimSpace(s)), nil
		}),
	})
	Declare(&Declaration{
		"split", "splits a string at each separator; an empty separator splits into characters",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"separator", "string", "separator"},
		}, "array",
		stringFn("split", func(s string, a []Value) (Value, error) {
			sep, err := ToStr(a[0], "split")
			if err != nil {
				return nil, err
			}
			if s == "" && sep == "" {
				return NewArray(nil), nil
			}
			parts := strings.Split(s, sep)
			items := make([]Value, len(parts))
			for i, p := range parts {
				items[i] = String(p)
			}
			return NewArray(items), nil
		}),
	})
	Declare(&Declaration{
		"replace", "replaces the first occurrence of search",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"search", "string", "text to find"},
			DeclarationParameter{"replacement", "string", "text to insert instead"},
		}, "string",
		stringFn("replace", func(s string, a []Value) (Value, error) {
			search, err := ToStr(a[0], "replace")
			if err != nil {
				return nil, err
			}
			replacement, err := ToStr(a[1], "replace")
			if err != nil {
				return nil, err
			}
			return String(strings.Replace(s, search, replacement, 1)), nil
		}),
	})
	Declare(&Declaration{
		"startsWith", "true if the string begins with prefix",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"prefix", "string", "prefix to test"},
		}, "bool",
		stringFn("startsWith", func(s string, a []Value) (Value, error) {
			prefix, err := ToStr(a[0], "startsWith")
			if err != nil {
				return nil, err
			}
			return Bool(strings.HasPrefix(s, prefix)), nil
		}),
	})
	Declare(&Declaration{
		"endsWith", "true if the string ends with suffix",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"suffix", "string", "suffix to test"},
		}, "bool",
		stringFn("endsWith", func(s string, a []Value) (Value, error) {
			suffix, err := ToStr(a[0], "endsWith")
			if err != nil {
				return nil, err
			}
			return Bool(strings.HasSuffix(s, suffix)), nil
		}),
	})
	Declare(&Declaration{
		"repeat", "repeats a string count times",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"count", "number", "non-negative integer"},
		}, "string",
		stringFn("repeat", func(s string, a []Value) (Value, error) {
			n, err := ToIndex(a[0], "repeat")
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, rangeError("repeat: invalid count %d", n)
			}
			if n > 0 && len(s) > maxStringLength/n {
				return nil, rangeError("repeat: result longer than %d bytes", maxStringLength)
			}
			return String(strings.Repeat(s, n)), nil
		}),
	})
}
