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
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/google/btree"
	"github.com/pkg/errors"
)

// prompts are built on use so that color.NoColor set by the driver applies
func newprompt() string    { return color.GreenString(">") + " " }
func contprompt() string   { return color.GreenString(".") + " " }
func resultprompt() string { return color.RedString("=") + " " }

const replHelp = `.exit   leave the REPL
.help   show this text
help()  list all builtins, help("name") describes one of them
`

// Session is the line handling of the REPL without the terminal: it
// collects continuation lines and evaluates complete programs in one
// scope that persists across inputs.
type Session struct {
	en      *Env
	ev      *Evaluator
	out     io.Writer
	pending string
}

func NewSession(en *Env, ev *Evaluator, out io.Writer) *Session {
	return &Session{en: en, ev: ev, out: out}
}

// Continued reports whether earlier lines wait for the rest of an expression.
func (s *Session) Continued() bool {
	return s.pending != ""
}

func (s *Session) Prompt() string {
	if s.Continued() {
		return contprompt()
	}
	return newprompt()
}

// Reset drops pending continuation lines.
func (s *Session) Reset() {
	s.pending = ""
}

// Feed processes one input line and returns false once the user asked to leave.
func (s *Session) Feed(line string) bool {
	if !s.Continued() {
		// only white space and comments
		if spaceRe.FindString(line) == line {
			return true
		}
		switch strings.TrimSpace(line) {
		case ".exit":
			return false
		case ".help":
			fmt.Fprint(s.out, replHelp)
			return true
		}
	}
	src := s.pending + line
	result, err := s.ev.Run(src, s.en)
	if err != nil {
		if IsIncomplete(err) {
			s.pending = src + "\n"
			return true
		}
		s.pending = ""
		fmt.Fprintln(s.out, color.RedString(err.Error()))
		return true
	}
	s.pending = ""
	fmt.Fprintln(s.out, resultprompt()+Serialize(result))
	return true
}

// Complete returns all names visible in the session that start with prefix, sorted.
func (s *Session) Complete(prefix string) []string {
	index := btree.NewG[string](8, func(a, b string) bool { return a < b })
	for _, name := range s.en.Names() {
		index.ReplaceOrInsert(name)
	}
	// declarations cover the special forms, which have no binding
	for _, name := range DeclaredNames(prefix) {
		index.ReplaceOrInsert(name)
	}
	if strings.HasPrefix(prefix, ".") {
		index.ReplaceOrInsert(".exit")
		index.ReplaceOrInsert(".help")
	}
	var result []string
	index.AscendGreaterOrEqual(prefix, func(name string) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		result = append(result, name)
		return true
	})
	return result
}

// Do implements readline.AutoCompleter for the word left of the cursor.
func (s *Session) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !strings.ContainsRune(" \t\n(),", line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	var result [][]rune
	for _, name := range s.Complete(prefix) {
		result = append(result, []rune(name[len(prefix):]))
	}
	return result, pos - start
}

// Repl reads programs from the terminal until .exit, Ctrl-D or Ctrl-C on an empty line.
func Repl(en *Env, ev *Evaluator, historyFile string) error {
	s := NewSession(en, ev, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt(),
		AutoComplete:      s,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return errors.Wrap(err, "cannot start line editor")
	}
	defer l.Close()
	l.CaptureExitSignal()

	s.out = l.Stdout()
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if !s.Continued() && len(line) == 0 {
				return nil
			}
			s.Reset()
			l.SetPrompt(s.Prompt())
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrap(err, "reading input")
		}
		if !s.Feed(line) {
			return nil
		}
		l.SetPrompt(s.Prompt())
	}
}
