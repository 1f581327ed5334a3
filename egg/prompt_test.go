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
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	return NewSession(NewEnv(NewTopScope(&out)), NewEvaluator(), &out), &out
}

func TestSession_Results(t *testing.T) {
	s, out := newTestSession(t)
	require.True(t, s.Feed("define(x, 1)"))
	require.True(t, s.Feed("+(x, 41)"))
	require.True(t, s.Feed("\"text\""))
	assert.Equal(t, "= 1\n= 42\n= \"text\"\n", out.String())
}

func TestSession_Continuation(t *testing.T) {
	s, out := newTestSession(t)
	assert.Equal(t, "> ", s.Prompt())

	require.True(t, s.Feed("+(1,"))
	assert.True(t, s.Continued())
	assert.Equal(t, ". ", s.Prompt())
	assert.Empty(t, out.String())

	require.True(t, s.Feed("2)"))
	assert.False(t, s.Continued())
	assert.Equal(t, "= 3\n", out.String())

	// an error in a continued program drops the pending lines
	require.True(t, s.Feed("+(1,"))
	require.True(t, s.Feed("2 3)"))
	assert.False(t, s.Continued())
	assert.Contains(t, out.String(), "SyntaxError")

	require.True(t, s.Feed("do("))
	s.Reset()
	assert.False(t, s.Continued())
}

func TestSession_ErrorsKeepSession(t *testing.T) {
	s, out := newTestSession(t)
	require.True(t, s.Feed("define(y, 2)"))
	require.True(t, s.Feed("undefinedName"))
	assert.Contains(t, out.String(), "ReferenceError: undefined binding: undefinedName at line 1, column 1")
	out.Reset()
	require.True(t, s.Feed("y"))
	assert.Equal(t, "= 2\n", out.String())
}

func TestSession_Commands(t *testing.T) {
	s, out := newTestSession(t)
	assert.True(t, s.Feed(""))
	assert.True(t, s.Feed("   "))
	assert.True(t, s.Feed("# a note"))
	assert.True(t, s.Feed("  # indented note  "))
	assert.False(t, s.Continued())
	assert.Empty(t, out.String())

	// comments inside a continued program stay part of it
	require.True(t, s.Feed("+(1,"))
	require.True(t, s.Feed("# second operand"))
	assert.True(t, s.Continued())
	require.True(t, s.Feed("2)"))
	assert.Equal(t, "= 3\n", out.String())
	out.Reset()

	assert.True(t, s.Feed(".help"))
	assert.Contains(t, out.String(), ".exit")
	assert.False(t, s.Feed(".exit"))
	assert.False(t, s.Feed("  .exit  "))
}

func TestSession_Complete(t *testing.T) {
	s, _ := newTestSession(t)
	require.True(t, s.Feed("define(printer, 1)"))

	assert.Equal(t, []string{"print", "printer"}, s.Complete("pri"))
	assert.Equal(t, []string{"while"}, s.Complete("wh"))
	assert.Equal(t, []string{".exit"}, s.Complete(".e"))
	assert.Empty(t, s.Complete("zzz"))

	suffixes, length := s.Do([]rune("do(wh"), 5)
	assert.Equal(t, 2, length)
	assert.Equal(t, [][]rune{[]rune("ile")}, suffixes)
}

func TestSession_PrintGoesToScopeOutput(t *testing.T) {
	color.NoColor = true
	var printed bytes.Buffer
	s := NewSession(NewEnv(NewTopScope(&printed)), NewEvaluator(), io.Discard)
	require.True(t, s.Feed("print(\"hi\")"))
	assert.Equal(t, "hi\n", printed.String())
}
