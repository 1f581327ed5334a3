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

func toInstance(v Value, fn string) (*Instance, error) {
	i, ok := v.(*Instance)
	if !ok {
		return nil, typeError("%s expects an instance, got %s", fn, TypeOf(v))
	}
	return i, nil
}

func instanceFn(name string, fn func(inst *Instance, key string, a []Value) (Value, error)) func(...Value) (Value, error) {
	return func(a ...Value) (Value, error) {
		inst, err := toInstance(a[0], name)
		if err != nil {
			return nil, err
		}
		key, err := ToStr(a[1], name)
		if err != nil {
			return nil, err
		}
		return fn(inst, key, a[2:])
	}
}

var instanceParam = DeclarationParameter{"instance", "instance", "object created by a class"}

func init_objects() {
	DeclareTitle("Objects")

	Declare(&Declaration{
		"get", "reads a field of an instance; missing fields are false",
		2, 2,
		[]DeclarationParameter{
			instanceParam,
			DeclarationParameter{"field", "string", "field name"},
		}, "any",
		instanceFn("get", func(inst *Instance, key string, a []Value) (Value, error) {
			if v, ok := inst.Fields[key]; ok {
				return v, nil
			}
			return Bool(false), nil
		}),
	})
	Declare(&Declaration{
		"put", "writes a field of an instance and returns the value",
		3, 3,
		[]DeclarationParameter{
			instanceParam,
			DeclarationParameter{"field", "string", "field name"},
			DeclarationParameter{"value", "any", "new value"},
		}, "any",
		instanceFn("put", func(inst *Instance, key string, a []Value) (Value, error) {
			inst.Fields[key] = a[0]
			return a[0], nil
		}),
	})
	Declare(&Declaration{
		"call", "calls a method of the instance's class with the instance as first argument",
		2, Variadic,
		[]DeclarationParameter{
			instanceParam,
			DeclarationParameter{"method", "string", "method name"},
			DeclarationParameter{"args...", "any", "further arguments"},
		}, "any",
		instanceFn("call", func(inst *Instance, key string, a []Value) (Value, error) {
			m, ok := inst.Method(key)
			if !ok {
				return nil, newError(ReferenceError, "class %s has no method %s", inst.Class.Name, key)
			}
			args := make([]Value, 0, len(a)+1)
			args = append(args, inst)
			return m.Call(append(args, a...))
		}),
	})
}
