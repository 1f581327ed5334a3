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
	"os"
	"path/filepath"
	"strings"

	"github.com/google/btree"
	"github.com/pkg/errors"
)

// Variadic as MaxParameter allows any number of parameters.
const Variadic = -1

type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter
	Returns      string // any | string | number | bool | func | array | class | instance
	Fn           func(...Value) (Value, error)
}

type DeclarationParameter struct {
	Name string
	Type string
	Desc string
}

var declarationTitles []string
var declarations = make(map[string]*Declaration)

// ordered index over all declared names, used by REPL completion
var declarationIndex = btree.NewG[string](16, func(a, b string) bool { return a < b })

func DeclareTitle(title string) {
	declarationTitles = append(declarationTitles, "#"+title)
}

// Declare registers a builtin. Declarations without Fn only document a name
// that is implemented elsewhere (special forms, IO functions).
func Declare(def *Declaration) {
	declarationTitles = append(declarationTitles, def.Name)
	declarations[def.Name] = def
	declarationIndex.ReplaceOrInsert(def.Name)
}

func init() {
	init_forms()
	init_alu()
	init_strings()
	init_list()
	init_objects()
	init_io()
}

// NewTopScope creates a fresh root scope with every builtin bound. print and
// help write to out.
func NewTopScope(out io.Writer) *Env {
	en := NewEnv(nil)
	en.Vars["true"] = Bool(true)
	en.Vars["false"] = Bool(false)
	for name, def := range declarations {
		if def.Fn != nil {
			en.Vars[name] = &Builtin{Decl: def, Fn: def.Fn}
		}
	}
	bindIO(en, out)
	return en
}

func DeclarationFor(name string) *Declaration {
	return declarations[name]
}

// DeclaredNames returns all declared names starting with prefix in ascending order.
func DeclaredNames(prefix string) []string {
	var result []string
	declarationIndex.AscendGreaterOrEqual(prefix, func(name string) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		result = append(result, name)
		return true
	})
	return result
}

func Help(w io.Writer, name string) error {
	if name == "" {
		fmt.Fprintln(w, "Available functions:")
		for _, title := range declarationTitles {
			if title[0] == '#' {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(declarations[title].Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "type help(\"name\") to get more info")
		return nil
	}
	def := DeclarationFor(name)
	if def == nil {
		return newError(ReferenceError, "function not found: %s", name)
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Allowed number of parameters:", arityString(def))
	fmt.Fprintln(w, "")
	for _, p := range def.Params {
		fmt.Fprintln(w, " - "+p.Name+" ("+p.Type+"): "+p.Desc)
	}
	fmt.Fprintln(w, "")
	return nil
}

func arityString(def *Declaration) string {
	if def.MaxParameter == Variadic {
		return fmt.Sprintf("%d or more", def.MinParameter)
	}
	if def.MinParameter == def.MaxParameter {
		return fmt.Sprint(def.MinParameter)
	}
	return fmt.Sprintf("%d-%d", def.MinParameter, def.MaxParameter)
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "chapter"
	}
	return out
}

// WriteDocumentation generates Markdown docs:
// - index.md with links to chapters
// - one <chapter>.md file per chapter, containing all functions of that chapter
func WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create folder %q", folder)
	}

	type Chapter struct {
		Title string
		Slug  string
		Fns   []*Declaration
	}

	var chapters []*Chapter
	var current *Chapter
	for _, t := range declarationTitles {
		if t[0] == '#' {
			title := strings.TrimSpace(t[1:])
			current = &Chapter{Title: title, Slug: slugify(title)}
			chapters = append(chapters, current)
			continue
		}
		if current == nil {
			current = &Chapter{Title: "General", Slug: "general"}
			chapters = append(chapters, current)
		}
		current.Fns = append(current.Fns, declarations[t])
	}

	indexPath := filepath.Join(folder, "index.md")
	indexFile, err := os.Create(indexPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", indexPath)
	}
	defer indexFile.Close()

	fmt.Fprint(indexFile, "# Documentation\n\n")
	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fmt.Fprintf(indexFile, "- [%s](%s.md)\n", ch.Title, ch.Slug)
	}

	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		if err := writeChapter(filepath.Join(folder, ch.Slug+".md"), ch.Title, ch.Fns); err != nil {
			return err
		}
	}
	return nil
}

func writeChapter(fp, title string, fns []*Declaration) error {
	f, err := os.Create(fp)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", fp)
	}
	defer f.Close()

	fmt.Fprintf(f, "# %s\n\n", title)
	for _, def := range fns {
		fmt.Fprintf(f, "## %s\n\n", def.Name)
		if def.Desc != "" {
			fmt.Fprintf(f, "%s\n\n", def.Desc)
		}
		fmt.Fprintf(f, "**Allowed number of parameters:** %s\n\n", arityString(def))

		fmt.Fprint(f, "### Parameters\n\n")
		if len(def.Params) == 0 {
			fmt.Fprint(f, "_This function has no parameters._\n\n")
		} else {
			for _, p := range def.Params {
				fmt.Fprintf(f, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
			}
			fmt.Fprintln(f)
		}
		fmt.Fprintf(f, "### Returns\n\n`%s`\n\n", def.Returns)
	}
	return nil
}
