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

// DefaultMaxDepth bounds the nesting of Eval so that runaway recursion ends
// in a RangeError instead of exhausting the goroutine stack.
const DefaultMaxDepth = 100000

// Form is a special form handler. It receives its arguments unevaluated and
// calls back into ev for whatever it decides to evaluate.
type Form func(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error)

// Evaluator walks expression trees. It is not safe for concurrent use.
type Evaluator struct {
	forms map[string]Form

	MaxSteps int64 // 0 = unlimited
	MaxDepth int   // 0 = unlimited
	Trace    *Tracefile

	steps int64
	depth int
}

func NewEvaluator() *Evaluator {
	ev := &Evaluator{MaxDepth: DefaultMaxDepth}
	ev.forms = map[string]Form{
		"if":     formIf,
		"while":  formWhile,
		"do":     formDo,
		"define": formDefine,
		"set":    formSet,
		"fun":    formFun,
		"class":  formClass,
	}
	return ev
}

// Run parses src and evaluates it in en. The step budget starts fresh for every run.
func (ev *Evaluator) Run(src string, en *Env) (Value, error) {
	code, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ev.steps = 0
	return ev.Eval(code, en)
}

/*
 Eval / Apply
*/

func (ev *Evaluator) Eval(expression Expr, en *Env) (Value, error) {
	ev.steps++
	if ev.MaxSteps > 0 && ev.steps > ev.MaxSteps {
		return nil, errorAt(RangeError, expression.Pos(), "step budget of %d exceeded", ev.MaxSteps)
	}
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.MaxDepth > 0 && ev.depth > ev.MaxDepth {
		return nil, errorAt(RangeError, expression.Pos(), "maximum nesting depth of %d exceeded", ev.MaxDepth)
	}

	switch e := expression.(type) {
	case *Literal:
		return e.Value, nil
	case *Word:
		if v, ok := en.Lookup(e.Name); ok {
			return v, nil
		}
		return nil, errorAt(ReferenceError, e.Position, "undefined binding: %s", e.Name)
	case *Apply:
		return ev.evalApply(e, en)
	}
	return nil, errorAt(TypeError, expression.Pos(), "unknown expression type %T", expression)
}

func (ev *Evaluator) evalApply(e *Apply, en *Env) (Value, error) {
	if w, ok := e.Operator.(*Word); ok {
		if form, ok := ev.forms[w.Name]; ok {
			v, err := form(ev, e.Args, en, e)
			return v, annotate(err, e)
		}
	}
	op, err := ev.Eval(e.Operator, en)
	if err != nil {
		return nil, annotate(err, e)
	}
	fn, ok := op.(Callable)
	if !ok {
		return nil, errorAt(TypeError, e.Position, "applying a non-function")
	}
	args := make([]Value, len(e.Args))
	for i, x := range e.Args {
		if args[i], err = ev.Eval(x, en); err != nil {
			return nil, annotate(err, e)
		}
	}
	v, err := ev.call(fn, args, e)
	return v, annotate(err, e)
}

func (ev *Evaluator) call(fn Callable, args []Value, e *Apply) (result Value, err error) {
	if ev.Trace == nil {
		return fn.Call(args)
	}
	ev.Trace.Duration(callName(fn, e), "egg", func() {
		result, err = fn.Call(args)
	})
	return
}

// callProc binds the arguments in one fresh scope below the defining scope.
func (ev *Evaluator) callProc(p *Proc, args []Value) (Value, error) {
	if len(args) != len(p.Params) {
		return nil, typeError("wrong number of arguments: expected %d, got %d", len(p.Params), len(args))
	}
	en := NewEnv(p.En)
	for i, param := range p.Params {
		en.Vars[param] = args[i]
	}
	return ev.Eval(p.Body, en)
}

// ApplyValue calls any callable value with already evaluated arguments.
func ApplyValue(procedure Value, args ...Value) (Value, error) {
	fn, err := ToCallable(procedure, "apply")
	if err != nil {
		return nil, err
	}
	return fn.Call(args)
}

func callName(fn Callable, e *Apply) string {
	switch f := fn.(type) {
	case *Proc:
		if f.Name != "" {
			return f.Name
		}
	case *Builtin:
		return f.Name()
	case *Class:
		return f.Name
	}
	return e.Operator.String()
}
