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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_Scoping(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Number(1))
	inner := NewEnv(outer)

	v, ok := inner.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, Number(1), v)
	assert.Same(t, outer, inner.FindRead("x"))
	assert.Nil(t, inner.FindRead("y"))

	// define shadows, the outer binding stays
	inner.Define("x", Number(2))
	v, _ = inner.Lookup("x")
	assert.Equal(t, Number(2), v)
	v, _ = outer.Lookup("x")
	assert.Equal(t, Number(1), v)
}

func TestEnv_Assign(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Number(1))
	inner := NewEnv(outer)

	assert.True(t, inner.Assign("x", Number(5)))
	assert.Equal(t, Number(5), outer.Vars["x"])
	_, own := inner.Vars["x"]
	assert.False(t, own)

	assert.False(t, inner.Assign("missing", Number(1)))
	_, ok := inner.Lookup("missing")
	assert.False(t, ok)
}

func TestEnv_Names(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("a", Number(1))
	outer.Define("b", Number(1))
	inner := NewEnv(outer)
	inner.Define("b", Number(2))
	inner.Define("c", Number(2))

	names := inner.Names()
	sort.Strings(names)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}
