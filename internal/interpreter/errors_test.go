package interpreter

import (
	"errors"
	"testing"
)

func TestRaiseHelpersBuildCanonicalErrors(t *testing.T) {
	tests := []struct {
		err     error
		kind    string
		message string
	}{
		{RaiseArgumentError("bad"), "ArgumentError", "bad"},
		{RaiseArithmeticError(""), "ArithmeticError", "bad argument in arithmetic expression"},
		{RaiseArithmeticError(":erlang.+(1, :a)"), "ArithmeticError", "bad argument in arithmetic expression: :erlang.+(1, :a)"},
		{RaiseBadArityError(1, []Term{integer(1), atom("a")}), "BadArityError", "anonymous function with arity 1 called with 2 arguments (1, :a)"},
		{RaiseBadMapError(list()), "BadMapError", "expected a map, got: []"},
		{RaiseCaseClauseError(tuple()), "CaseClauseError", "no case clause matching: {}"},
		{RaiseCompileError("undefined variable"), "CompileError", "undefined variable"},
		{RaiseCondClauseError(), "CondClauseError", "no cond clause evaluated to a truthy value"},
		{RaiseErlangError(BuildErlangErrorMsg(":badarg")), "ErlangError", "Erlang error: :badarg"},
		{RaiseFunctionClauseError(BuildFunctionClauseErrorMsg("Foo.bar/0", nil)), "FunctionClauseError", "no function clause matching in Foo.bar/0"},
		{RaiseKeyError(BuildKeyErrorMsg(atom("k"), NewMap())), "KeyError", "key :k not found in: %{}"},
		{RaiseMatchError(BuildMatchErrorMsg(integer(1))), "MatchError", "no match of right hand side value: 1"},
		{
			RaiseUndefinedFunctionError(BuildUndefinedFunctionErrorMsg(atom("maps"), "get", 2, true)),
			"UndefinedFunctionError",
			"function :maps.get/2 is undefined or private",
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			var raised *Error
			if !errors.As(tt.err, &raised) {
				t.Fatalf("expected *Error, got %T", tt.err)
			}
			if raised.Kind() != tt.kind {
				t.Errorf("Kind() = %s, want %s", raised.Kind(), tt.kind)
			}
			if raised.Message() != tt.message {
				t.Errorf("Message() = %q, want %q", raised.Message(), tt.message)
			}
			if raised.Error() != tt.kind+": "+tt.message {
				t.Errorf("Error() = %q", raised.Error())
			}
			if !IsStrictlyEqual(raised.Exception, ErrorStruct(tt.kind, tt.message)) {
				t.Errorf("unexpected exception struct %s", Inspect(raised.Exception))
			}
		})
	}
}

func TestBuildArgumentErrorMsg(t *testing.T) {
	expected := "errors were found at the given arguments:\n\n  * 2nd argument: not a list\n"
	if got := BuildArgumentErrorMsg(2, "not a list"); got != expected {
		t.Errorf("BuildArgumentErrorMsg() = %q, want %q", got, expected)
	}
}

func TestBuildFunctionClauseErrorMsgListsArguments(t *testing.T) {
	got := BuildFunctionClauseErrorMsg("Foo.bar/2", []Term{integer(1), str("x")})
	expected := "no function clause matching in Foo.bar/2\n\n" +
		"The following arguments were given to Foo.bar/2:\n" +
		"\n    # 1\n    1\n" +
		"\n    # 2\n    \"x\"\n"
	if got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestExceptionStructRendering(t *testing.T) {
	got := Inspect(ErrorStruct("MatchError", "oops"))
	expected := `%{__struct__: MatchError, __exception__: true, message: "oops"}`
	if got != expected {
		t.Errorf("got %s, want %s", got, expected)
	}
}
