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

/*
 Environments
*/

type Vars map[string]Value

// Env is one lexical scope: own bindings plus the enclosing scope.
type Env struct {
	Vars  Vars
	Outer *Env
}

func NewEnv(outer *Env) *Env {
	return &Env{Vars: make(Vars), Outer: outer}
}

// FindRead returns the nearest scope that owns s, or nil.
func (e *Env) FindRead(s string) *Env {
	for en := e; en != nil; en = en.Outer {
		if _, ok := en.Vars[s]; ok {
			return en
		}
	}
	return nil
}

func (e *Env) Lookup(s string) (Value, bool) {
	if en := e.FindRead(s); en != nil {
		return en.Vars[s], true
	}
	return nil, false
}

// Define creates or overwrites an own binding; outer bindings are shadowed, never touched.
func (e *Env) Define(s string, v Value) {
	e.Vars[s] = v
}

// Assign updates the nearest existing binding. It never creates one.
func (e *Env) Assign(s string, v Value) bool {
	en := e.FindRead(s)
	if en == nil {
		return false
	}
	en.Vars[s] = v
	return true
}

// Names lists every name visible from e, inner scopes first, without duplicates.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var result []string
	for en := e; en != nil; en = en.Outer {
		for k := range en.Vars {
			if !seen[k] {
				seen[k] = true
				result = append(result, k)
			}
		}
	}
	return result
}
