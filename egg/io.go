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

	"github.com/pkg/errors"
)

func init_io() {
	DeclareTitle("IO")

	// print and help are bound per scope by bindIO since they need the output stream
	Declare(&Declaration{
		"print", "writes the display form of the value followed by a newline and returns the value",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to print"},
		}, "any", nil,
	})
	Declare(&Declaration{
		"help", "lists all builtins or shows the documentation of one of them",
		0, 1,
		[]DeclarationParameter{
			DeclarationParameter{"name", "string", "name of the function"},
		}, "bool", nil,
	})
}

func bindIO(en *Env, out io.Writer) {
	en.Vars["print"] = &Builtin{Decl: DeclarationFor("print"), Fn: func(a ...Value) (Value, error) {
		if _, err := fmt.Fprintln(out, ToString(a[0])); err != nil {
			return nil, errors.Wrap(err, "print")
		}
		return a[0], nil
	}}
	en.Vars["help"] = &Builtin{Decl: DeclarationFor("help"), Fn: func(a ...Value) (Value, error) {
		name := ""
		if len(a) > 0 {
			s, err := ToStr(a[0], "help")
			if err != nil {
				return nil, err
			}
			name = s
		}
		if err := Help(out, name); err != nil {
			return nil, err
		}
		return Bool(true), nil
	}}
}
