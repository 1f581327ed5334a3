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
package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launix-de/egg/config"
	"github.com/launix-de/egg/egg"
)

type traceBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *traceBuffer) Close() error {
	b.closed = true
	return nil
}

func newTestDriver(t *testing.T, cfg *config.Config) (*driver, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	d, err := newDriver(cfg, &out, log.New(io.Discard))
	require.NoError(t, err)
	return d, &out
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.egg")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFile(t *testing.T) {
	d, out := newTestDriver(t, config.Default())
	path := writeProgram(t, "# greet\ndo(define(x, 10),\n  if(>(x, 5), print(\"large\"), print(\"small\")))\n")
	require.NoError(t, d.runFile(path))
	assert.Equal(t, "large\n", out.String())
}

func TestRunFile_NotFound(t *testing.T) {
	d, _ := newTestDriver(t, config.Default())
	err := d.runFile(filepath.Join(t.TempDir(), "nope.egg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestRunFile_TooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSource = "10B"
	d, _ := newTestDriver(t, cfg)
	err := d.runFile(writeProgram(t, "print(\"this program is too long\")"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the limit is 10B")
}

func TestRunFile_ErrorNamesProgram(t *testing.T) {
	d, _ := newTestDriver(t, config.Default())
	path := writeProgram(t, "do(\n  foo)")
	err := d.runFile(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), path+": ReferenceError"), err.Error())
	assert.Contains(t, err.Error(), "line 2, column 3")
}

func TestRunSource_SeparateScopes(t *testing.T) {
	d, out := newTestDriver(t, config.Default())
	require.NoError(t, d.runSource("first", "define(x, 1)"))
	err := d.runSource("second", "print(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReferenceError")
	assert.Empty(t, out.String())
}

func TestRun_Status(t *testing.T) {
	d, out := newTestDriver(t, config.Default())
	assert.Equal(t, 0, run(d, nil, []string{"print(1)", "print(2)"}, false, false, config.Default()))
	assert.Equal(t, "1\n2\n", out.String())

	out.Reset()
	assert.Equal(t, 1, run(d, nil, []string{"undefinedName", "print(2)"}, false, false, config.Default()))
	assert.Empty(t, out.String())
}

func TestDriver_Limits(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSteps = 100
	d, _ := newTestDriver(t, cfg)
	err := d.runSource("loop", "while(true, 1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RangeError")
}

func TestRun_TraceClosedOnlyOnExit(t *testing.T) {
	d, _ := newTestDriver(t, config.Default())
	var file traceBuffer
	d.ev.Trace = egg.NewTrace(&file)
	assert.Equal(t, 0, run(d, nil, []string{"+(1, 2)"}, false, false, config.Default()))
	assert.False(t, file.closed, "the trace belongs to the exit handler")

	d.ev.Trace.Close()
	assert.True(t, file.closed)
	assert.True(t, strings.HasSuffix(file.String(), "]"))
}
