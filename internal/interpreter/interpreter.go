package interpreter

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/funvibe/termrt/internal/config"
)

// Interpreter owns the module registry and the diagnostics settings used
// while dispatching named function calls.
type Interpreter struct {
	registry *Registry
	options  config.Options
	logger   *log.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOptions sets the diagnostics options.
func WithOptions(opts config.Options) Option {
	return func(in *Interpreter) { in.options = opts }
}

// WithLogger replaces the default stderr logger.
func WithLogger(logger *log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithRegistry shares an existing registry between interpreters.
func WithRegistry(registry *Registry) Option {
	return func(in *Interpreter) { in.registry = registry }
}

func New(opts ...Option) *Interpreter {
	in := &Interpreter{options: config.Default()}
	for _, opt := range opts {
		opt(in)
	}
	if in.registry == nil {
		in.registry = NewRegistry()
	}
	if in.logger == nil {
		in.logger = newLogger(in.options.LogPrefix)
	}
	return in
}

func (in *Interpreter) Registry() *Registry {
	return in.registry
}

// DefineElixirFunction registers a multi-clause function. Public functions
// are exported.
func (in *Interpreter) DefineElixirFunction(moduleName, functionName string, arity int, visibility string, clauses []Clause) error {
	module := Alias(moduleName)
	return in.registry.register(module, functionName, arity, visibility == config.VisibilityPublic,
		elixirFunctionDispatcher(module, functionName, arity, clauses))
}

// DefineManuallyPortedFunction registers a native implementation of an
// Elixir function given as "name/arity".
func (in *Interpreter) DefineManuallyPortedFunction(moduleName, functionArity, visibility string, fn NativeFunction) error {
	name, arity, err := parseFunctionArity(functionArity)
	if err != nil {
		return err
	}
	return in.registry.register(Alias(moduleName), name, arity, visibility == config.VisibilityPublic, fn)
}

// DefineErlangFunction registers a native implementation of an Erlang
// function. Erlang functions are always exported.
func (in *Interpreter) DefineErlangFunction(moduleName, functionName string, arity int, fn NativeFunction) error {
	return in.registry.register(NewAtom(moduleName), functionName, arity, true, fn)
}

// DefineNotImplementedErlangFunction registers a placeholder which reports
// the function as not yet ported when called.
func (in *Interpreter) DefineNotImplementedErlangFunction(moduleName, functionName string, arity int) error {
	fn := func(args ...Term) (Term, error) {
		return nil, newInterpreterError("Function :%s.%s/%d is not yet ported", moduleName, functionName, arity)
	}
	return in.registry.register(NewAtom(moduleName), functionName, arity, true, fn)
}

func elixirFunctionDispatcher(module *Atom, name string, arity int, clauses []Clause) NativeFunction {
	return func(args ...Term) (Term, error) {
		result, ok, err := evaluateClauses(clauses, args, NewContext(module, nil))
		if err != nil {
			return nil, err
		}
		if !ok {
			funName := fmt.Sprintf("%s.%s/%d", Inspect(module), name, arity)
			return nil, RaiseFunctionClauseError(BuildFunctionClauseErrorMsg(funName, args))
		}
		return result, nil
	}
}

func parseFunctionArity(functionArity string) (string, int, error) {
	idx := strings.LastIndex(functionArity, "/")
	if idx <= 0 {
		return "", 0, newInterpreterError("invalid function key %q, expected name/arity", functionArity)
	}
	arity, err := strconv.Atoi(functionArity[idx+1:])
	if err != nil || arity < 0 {
		return "", 0, newInterpreterError("invalid function key %q, expected name/arity", functionArity)
	}
	return functionArity[:idx], arity, nil
}

// CallNamedFunction dispatches module.name(args...) on behalf of the code
// running in ctx. Private functions are reachable only from their own module.
func (in *Interpreter) CallNamedFunction(module *Atom, name string, args []Term, ctx *Context) (Term, error) {
	arity := len(args)

	proxy, ok := in.registry.Lookup(module)
	if !ok {
		return nil, RaiseUndefinedFunctionError(BuildUndefinedFunctionErrorMsg(module, name, arity, false))
	}

	if !proxy.IsExported(name, arity) && !isCallerModule(module, ctx) {
		return nil, RaiseUndefinedFunctionError(BuildUndefinedFunctionErrorMsg(module, name, arity, true))
	}

	fn, err := proxy.Function(name, arity)
	if err != nil {
		return nil, err
	}
	return in.invoke(module, name, args, fn)
}

func isCallerModule(module *Atom, ctx *Context) bool {
	return ctx != nil && ctx.Module != nil && ctx.Module.Value == module.Value
}

// capturedModule resolves the module of a function capture: ":lists" names
// an Erlang module, anything else an Elixir alias.
func capturedModule(name string) *Atom {
	if strings.HasPrefix(name, ":") {
		return NewAtom(name[1:])
	}
	return Alias(name)
}
