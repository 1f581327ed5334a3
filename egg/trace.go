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
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Tracefile writes Chrome trace events (chrome://tracing, Perfetto).
type Tracefile struct {
	isFirst bool
	file    io.WriteCloser
	m       sync.Mutex
	once    sync.Once
	start   time.Time
}

func OpenTrace(path string) (*Tracefile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create trace file %s", path)
	}
	return NewTrace(f), nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	return &Tracefile{isFirst: true, file: file, start: time.Now()}
}

// Close terminates the JSON array; later calls do nothing.
func (t *Tracefile) Close() {
	t.once.Do(func() {
		t.m.Lock()
		defer t.m.Unlock()
		t.file.Write([]byte("]"))
		t.file.Close()
	})
}

func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.Event(name, cat, "B")
	defer t.Event(name, cat, "E")
	f()
}

func (t *Tracefile) Event(name string, cat string, typ string) {
	t.EventFull(name, cat, typ, time.Since(t.start).Microseconds(), 0, 0)
}

type traceEvent struct {
	Name  string `json:"name"`
	Cat   string `json:"cat"`
	Phase string `json:"ph"`
	Ts    int64  `json:"ts"`
	Pid   int    `json:"pid"`
	Tid   int    `json:"tid"`
	Scope string `json:"s"`
}

/*
	@name function name
	@cat comma separated categories (for filtering)
	@typ B/E for begin/end, X for events
	@ts timestamp in microseconds
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, tid int, pid int) {
	b, _ := json.Marshal(traceEvent{name, cat, typ, ts, pid, tid, "g"})
	t.m.Lock()
	defer t.m.Unlock()
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write(b)
}
