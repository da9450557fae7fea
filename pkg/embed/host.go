package termrt

import (
	"fmt"
	"reflect"

	"github.com/funvibe/termrt/internal/config"
	"github.com/funvibe/termrt/internal/interpreter"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Native wraps a Go function as a native function. Arguments are converted
// with FromTerm using the parameter types; a trailing error result is
// returned as the call's error, other results are converted with ToTerm.
// Several non-error results become a tuple.
func (m *Marshaller) Native(fn interface{}) (interpreter.NativeFunction, int, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, 0, fmt.Errorf("expected a function, got %T", fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, 0, fmt.Errorf("variadic functions are not supported: %s", ft)
	}

	native := func(args ...interpreter.Term) (interpreter.Term, error) {
		if len(args) != ft.NumIn() {
			return nil, interpreter.RaiseBadArityError(ft.NumIn(), args)
		}

		goArgs := make([]reflect.Value, len(args))
		for i, arg := range args {
			val, err := m.FromTerm(arg, ft.In(i))
			if err != nil {
				return nil, interpreter.RaiseArgumentError(
					interpreter.BuildArgumentErrorMsg(i+1, err.Error()))
			}
			rv, err := assignable(val, ft.In(i))
			if err != nil {
				return nil, interpreter.RaiseArgumentError(
					interpreter.BuildArgumentErrorMsg(i+1, err.Error()))
			}
			goArgs[i] = rv
		}

		results := fv.Call(goArgs)

		if n := len(results); n > 0 && ft.Out(n-1) == errorType {
			if err, _ := results[n-1].Interface().(error); err != nil {
				return nil, err
			}
			results = results[:n-1]
		}

		switch len(results) {
		case 0:
			return interpreter.Nil(), nil
		case 1:
			return m.ToTerm(results[0].Interface())
		}

		elements := make([]interpreter.Term, len(results))
		for i, res := range results {
			val, err := m.ToTerm(res.Interface())
			if err != nil {
				return nil, err
			}
			elements[i] = val
		}
		return interpreter.NewTuple(elements...), nil
	}

	return native, ft.NumIn(), nil
}

// Bind registers a Go function as the public function module.name, with
// the arity taken from the function's parameters.
func Bind(in *interpreter.Interpreter, module, name string, fn interface{}) error {
	native, arity, err := NewMarshaller().Native(fn)
	if err != nil {
		return err
	}
	return in.DefineManuallyPortedFunction(module, fmt.Sprintf("%s/%d", name, arity), config.VisibilityPublic, native)
}
