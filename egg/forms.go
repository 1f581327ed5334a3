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

// if(cond, then, else): only the chosen branch is evaluated
func formIf(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error) {
	if len(args) != 3 {
		return nil, newError(SyntaxError, "wrong number of args to if")
	}
	cond, err := ev.Eval(args[0], en)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return ev.Eval(args[1], en)
	}
	return ev.Eval(args[2], en)
}

// while(cond, body) always yields false; there is no "no value" in the language.
func formWhile(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error) {
	if len(args) != 2 {
		return nil, newError(SyntaxError, "wrong number of args to while")
	}
	for {
		cond, err := ev.Eval(args[0], en)
		if err != nil {
			return nil, err
		}
		if !Truthy(cond) {
			return Bool(false), nil
		}
		if _, err := ev.Eval(args[1], en); err != nil {
			return nil, err
		}
	}
}

func formDo(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error) {
	var value Value = Bool(false)
	for _, arg := range args {
		var err error
		if value, err = ev.Eval(arg, en); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// define always binds in the current scope, shadowing outer bindings.
func formDefine(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error) {
	name, ok := bindingName(args)
	if !ok {
		return nil, newError(SyntaxError, "incorrect use of define")
	}
	value, err := ev.Eval(args[1], en)
	if err != nil {
		return nil, err
	}
	if p, ok := value.(*Proc); ok && p.Name == "" {
		p.Name = name.Name
	}
	en.Define(name.Name, value)
	return value, nil
}

// set updates the nearest existing binding and never creates one.
func formSet(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error) {
	name, ok := bindingName(args)
	if !ok {
		return nil, newError(SyntaxError, "incorrect use of set")
	}
	value, err := ev.Eval(args[1], en)
	if err != nil {
		return nil, err
	}
	if !en.Assign(name.Name, value) {
		return nil, errorAt(ReferenceError, name.Position, "undefined binding: %s", name.Name)
	}
	return value, nil
}

func bindingName(args []Expr) (*Word, bool) {
	if len(args) != 2 {
		return nil, false
	}
	w, ok := args[0].(*Word)
	return w, ok
}

// fun(param..., body) closes over the defining scope.
func formFun(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error) {
	if len(args) == 0 {
		return nil, newError(SyntaxError, "functions need a body")
	}
	params := make([]string, len(args)-1)
	for i, arg := range args[:len(args)-1] {
		w, ok := arg.(*Word)
		if !ok {
			return nil, errorAt(SyntaxError, arg.Pos(), "parameter names must be words")
		}
		params[i] = w.Name
	}
	return &Proc{Params: params, Body: args[len(args)-1], En: en, ev: ev}, nil
}

// class(Name, constructor, method("name", function)...) binds Name to a
// constructor value in the current scope and returns it.
func formClass(ev *Evaluator, args []Expr, en *Env, node *Apply) (Value, error) {
	if len(args) < 2 {
		return nil, newError(SyntaxError, "class needs a name and a constructor")
	}
	name, ok := args[0].(*Word)
	if !ok {
		return nil, errorAt(SyntaxError, args[0].Pos(), "class name must be a word")
	}
	clauses := make([]*Apply, len(args)-2)
	for i, arg := range args[2:] {
		m, ok := arg.(*Apply)
		if !ok {
			return nil, errorAt(SyntaxError, arg.Pos(), "class members must be method(name, function)")
		}
		head, ok := m.Operator.(*Word)
		if !ok || head.Name != "method" || len(m.Args) != 2 {
			return nil, errorAt(SyntaxError, arg.Pos(), "class members must be method(name, function)")
		}
		clauses[i] = m
	}

	ctor, err := ev.Eval(args[1], en)
	if err != nil {
		return nil, err
	}
	constructor, ok := ctor.(Callable)
	if !ok {
		return nil, errorAt(TypeError, args[1].Pos(), "class constructor must be a function, got %s", TypeOf(ctor))
	}
	cls := &Class{Name: name.Name, Constructor: constructor, Methods: make(map[string]Callable)}

	for _, m := range clauses {
		key, err := ev.Eval(m.Args[0], en)
		if err != nil {
			return nil, err
		}
		methodName, ok := key.(String)
		if !ok {
			return nil, errorAt(TypeError, m.Args[0].Pos(), "method name must be a string, got %s", TypeOf(key))
		}
		fnv, err := ev.Eval(m.Args[1], en)
		if err != nil {
			return nil, err
		}
		fn, ok := fnv.(Callable)
		if !ok {
			return nil, errorAt(TypeError, m.Args[1].Pos(), "method %s must be a function, got %s", methodName, TypeOf(fnv))
		}
		if p, ok := fn.(*Proc); ok && p.Name == "" {
			p.Name = name.Name + "." + string(methodName)
		}
		if _, dup := cls.Methods[string(methodName)]; !dup {
			cls.MethodOrder = append(cls.MethodOrder, string(methodName))
		}
		cls.Methods[string(methodName)] = fn
	}
	en.Define(name.Name, cls)
	return cls, nil
}

func init_forms() {
	DeclareTitle("Special forms")
	Declare(&Declaration{
		"if", "evaluates the condition and then exactly one of the branches; only false counts as false",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"condition", "any", "condition to evaluate"},
			DeclarationParameter{"then", "any", "code to evaluate if the condition is not false"},
			DeclarationParameter{"else", "any", "code to evaluate if the condition is false"},
		}, "any", nil,
	})
	Declare(&Declaration{
		"while", "evaluates body as long as the condition is not false; returns false",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"condition", "any", "condition checked before every iteration"},
			DeclarationParameter{"body", "any", "code to repeat"},
		}, "bool", nil,
	})
	Declare(&Declaration{
		"do", "evaluates all expressions in order and returns the result of the last one (false if there is none)",
		0, Variadic,
		[]DeclarationParameter{
			DeclarationParameter{"expression...", "any", "expressions to evaluate"},
		}, "any", nil,
	})
	Declare(&Declaration{
		"define", "binds a name in the current scope, shadowing outer bindings",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"name", "word", "name to bind"},
			DeclarationParameter{"value", "any", "value to bind"},
		}, "any", nil,
	})
	Declare(&Declaration{
		"set", "updates the nearest existing binding of a name",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"name", "word", "name to update; must be bound somewhere"},
			DeclarationParameter{"value", "any", "new value"},
		}, "any", nil,
	})
	Declare(&Declaration{
		"fun", "creates a function closing over the current scope; the last argument is the body",
		1, Variadic,
		[]DeclarationParameter{
			DeclarationParameter{"parameter...", "word", "parameter names"},
			DeclarationParameter{"body", "any", "code evaluated on each call"},
		}, "func", nil,
	})
	Declare(&Declaration{
		"class", "declares a class: a constructor value bound to name whose instances resolve methods through the class",
		2, Variadic,
		[]DeclarationParameter{
			DeclarationParameter{"name", "word", "name of the class"},
			DeclarationParameter{"constructor", "func", "fun(this, args...) called for every new instance"},
			DeclarationParameter{"method...", "method", "method(\"name\", fun(this, args...))"},
		}, "class", nil,
	})
}
