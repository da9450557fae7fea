package interpreter

import (
	"fmt"
	"strings"

	"github.com/funvibe/termrt/internal/config"
	"github.com/funvibe/termrt/internal/utils"
)

// Error is a raised language-level error. It wraps the canonical exception
// struct, e.g. %{__struct__: MatchError, __exception__: true, message: "..."}.
type Error struct {
	Exception *Map
}

func (e *Error) Error() string {
	return e.Kind() + ": " + e.Message()
}

// Kind returns the exception module name without prefix, e.g. "MatchError".
func (e *Error) Kind() string {
	v, ok := e.Exception.Get(NewAtom(config.StructFieldName))
	if !ok {
		return ""
	}
	return ModuleExName(v.(*Atom))
}

func (e *Error) Message() string {
	v, ok := e.Exception.Get(NewAtom(config.MessageFieldName))
	if !ok {
		return ""
	}
	if bs, ok := v.(*Bitstring); ok {
		if text, ok := bs.Text(); ok {
			return text
		}
	}
	return Inspect(v)
}

// InterpreterError reports a feature the runtime does not implement.
// It is never a language-level error and cannot be matched by user code.
type InterpreterError struct {
	Message string
}

func (e *InterpreterError) Error() string {
	return e.Message
}

func newInterpreterError(format string, a ...interface{}) *InterpreterError {
	return &InterpreterError{Message: fmt.Sprintf(format, a...)}
}

// raiseError is the only place error values are built.
func raiseError(kind, message string) error {
	return &Error{Exception: ErrorStruct(kind, message)}
}

func RaiseArgumentError(message string) error {
	return raiseError("ArgumentError", message)
}

func RaiseArithmeticError(blame string) error {
	message := "bad argument in arithmetic expression"
	if blame != "" {
		message += ": " + blame
	}
	return raiseError("ArithmeticError", message)
}

func RaiseBadArityError(arity int, args []Term) error {
	numArgs := "no"
	if len(args) > 0 {
		numArgs = fmt.Sprint(len(args))
	}

	var inspectedArgs string
	if len(args) > 0 {
		inspectedArgs = " (" + inspectAll(args, ", ") + ")"
	}

	return raiseError("BadArityError", fmt.Sprintf(
		"anonymous function with arity %d called with %s %s%s",
		arity, numArgs, utils.NaiveNounPlural("argument", len(args)), inspectedArgs))
}

func RaiseBadMapError(arg Term) error {
	return raiseError("BadMapError", "expected a map, got: "+Inspect(arg))
}

func RaiseCaseClauseError(arg Term) error {
	return raiseError("CaseClauseError", "no case clause matching: "+Inspect(arg))
}

func RaiseCompileError(message string) error {
	return raiseError("CompileError", message)
}

func RaiseCondClauseError() error {
	return raiseError("CondClauseError", "no cond clause evaluated to a truthy value")
}

func RaiseErlangError(message string) error {
	return raiseError("ErlangError", message)
}

func RaiseFunctionClauseError(message string) error {
	return raiseError("FunctionClauseError", message)
}

func RaiseKeyError(message string) error {
	return raiseError("KeyError", message)
}

func RaiseMatchError(message string) error {
	return raiseError("MatchError", message)
}

func RaiseUndefinedFunctionError(message string) error {
	return raiseError("UndefinedFunctionError", message)
}

func BuildArgumentErrorMsg(argumentIndex int, message string) string {
	return fmt.Sprintf("errors were found at the given arguments:\n\n  * %s argument: %s\n",
		utils.Ordinal(argumentIndex), message)
}

func BuildErlangErrorMsg(message string) string {
	return "Erlang error: " + message
}

func BuildFunctionClauseErrorMsg(funName string, args []Term) string {
	var argsInfo strings.Builder
	if len(args) > 0 {
		fmt.Fprintf(&argsInfo, "\n\nThe following arguments were given to %s:\n", funName)
		for i, arg := range args {
			fmt.Fprintf(&argsInfo, "\n    # %d\n    %s\n", i+1, Inspect(arg))
		}
	}
	return "no function clause matching in " + funName + argsInfo.String()
}

func BuildKeyErrorMsg(key, m Term) string {
	return fmt.Sprintf("key %s not found in: %s", Inspect(key), InspectWith(m, InspectOptions{SortMaps: true}))
}

func BuildMatchErrorMsg(right Term) string {
	return "no match of right hand side value: " + Inspect(right)
}

func BuildUndefinedFunctionErrorMsg(module *Atom, functionName string, arity int, isModuleAvailable bool) string {
	moduleName := Inspect(module)

	if isModuleAvailable {
		return fmt.Sprintf("function %s.%s/%d is undefined or private", moduleName, functionName, arity)
	}

	return fmt.Sprintf("function %s.%s/%d is undefined (module %s is not available). "+
		"Make sure the module name is correct and has been specified in full (or that an alias has been defined)",
		moduleName, functionName, arity, moduleName)
}
