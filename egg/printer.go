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
	"sort"
	"strconv"
	"strings"
)

// ToString is the display form used by print: strings are written raw.
func ToString(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	var b strings.Builder
	serialize(&b, v, map[Value]bool{})
	return b.String()
}

// Serialize is the form shown by the REPL: strings are quoted and
// functions are printed as their fun(...) source.
func Serialize(v Value) string {
	var b strings.Builder
	serialize(&b, v, map[Value]bool{})
	return b.String()
}

func serialize(b *strings.Builder, v Value, seen map[Value]bool) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
	case Number:
		b.WriteString(formatNumber(float64(x)))
	case String:
		// no escaping, the grammar has none
		b.WriteByte('"')
		b.WriteString(string(x))
		b.WriteByte('"')
	case Bool:
		b.WriteString(strconv.FormatBool(bool(x)))
	case *Array:
		if seen[x] {
			b.WriteString("[...]")
			return
		}
		seen[x] = true
		b.WriteByte('[')
		for i, item := range x.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			serialize(b, item, seen)
		}
		b.WriteByte(']')
		delete(seen, x)
	case *Proc:
		b.WriteString(procSource(x))
	case *Builtin:
		b.WriteString("[native func " + x.Name() + "]")
	case *Class:
		b.WriteString("[class " + x.Name + "]")
	case *Instance:
		b.WriteString(x.Class.Name)
		b.WriteByte('#')
		b.WriteString(x.ID.String()[:8])
		if seen[x] {
			return
		}
		seen[x] = true
		keys := make([]string, 0, len(x.Fields))
		for k := range x.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			serialize(b, x.Fields[k], seen)
		}
		b.WriteByte('}')
		delete(seen, x)
	default:
		b.WriteString("<unknown>")
	}
}

func procSource(p *Proc) string {
	var b strings.Builder
	b.WriteString("fun(")
	for _, param := range p.Params {
		b.WriteString(param)
		b.WriteString(", ")
	}
	b.WriteString(p.Body.String())
	b.WriteByte(')')
	return b.String()
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0" // also -0
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
