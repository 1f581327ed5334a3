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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_Advance(t *testing.T) {
	c := NewCursor("ab\ncd")
	assert.Equal(t, "a", c.Peek())
	assert.Equal(t, Position{1, 1}, c.Position())

	c.Advance(2)
	assert.Equal(t, "\n", c.Peek())
	assert.Equal(t, Position{1, 3}, c.Position())

	c.Advance(1)
	assert.Equal(t, Position{2, 1}, c.Position())
	assert.Equal(t, "cd", c.Remaining())

	c.Advance(10)
	assert.True(t, c.AtEnd())
	assert.Equal(t, "", c.Peek())
	assert.Equal(t, Position{2, 3}, c.Position())
}

func TestCursor_MultiByte(t *testing.T) {
	c := NewCursor("äb")
	assert.Equal(t, "ä", c.Peek())
	c.Advance(len("ä"))
	assert.Equal(t, "b", c.Peek())
	assert.Equal(t, Position{1, 2}, c.Position())
}

func TestCursor_Clone(t *testing.T) {
	c := NewCursor("abc")
	snapshot := c.Clone()
	c.Advance(2)
	assert.Equal(t, "abc", snapshot.Remaining())
	assert.Equal(t, Position{1, 1}, snapshot.Position())
	assert.Equal(t, "c", c.Remaining())
	assert.Equal(t, "line 1, column 3", c.Position().String())
}
