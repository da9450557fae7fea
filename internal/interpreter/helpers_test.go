package interpreter

import (
	"errors"
	"strings"
	"testing"
)

func atom(name string) *Atom   { return NewAtom(name) }
func integer(v int64) *Integer { return NewInteger(v) }
func float(v float64) *Float   { return NewFloat(v) }
func str(s string) *Bitstring  { return NewBitstring(s) }
func list(items ...Term) *List { return NewList(items...) }
func tuple(items ...Term) *Tuple {
	return NewTuple(items...)
}
func variable(name string) *VariablePattern { return NewVariablePattern(name) }

// constant returns an expression evaluating to t.
func constant(t Term) Expression {
	return func(*Context) (Term, error) { return t, nil }
}

// varExpr returns an expression reading a committed binding.
func varExpr(name string) Expression {
	return func(ctx *Context) (Term, error) {
		v, ok := ctx.Var(name)
		if !ok {
			return nil, newInterpreterError("undefined variable %s", name)
		}
		return v, nil
	}
}

func params(patterns ...Term) func(*Context) []Term {
	return func(*Context) []Term { return patterns }
}

// assertRaised checks that err is a raised error of kind whose message
// contains every fragment.
func assertRaised(t *testing.T, err error, kind string, fragments ...string) {
	t.Helper()
	var raised *Error
	if !errors.As(err, &raised) {
		t.Fatalf("expected %s, got %v", kind, err)
	}
	if raised.Kind() != kind {
		t.Fatalf("expected %s, got %s: %s", kind, raised.Kind(), raised.Message())
	}
	for _, fragment := range fragments {
		if !strings.Contains(raised.Message(), fragment) {
			t.Errorf("expected message to contain %q, got %q", fragment, raised.Message())
		}
	}
}

func assertVar(t *testing.T, ctx *Context, name string, expected Term) {
	t.Helper()
	v, ok := ctx.Var(name)
	if !ok {
		t.Fatalf("variable %s is not bound", name)
	}
	if !IsStrictlyEqual(v, expected) {
		t.Errorf("variable %s = %s, want %s", name, Inspect(v), Inspect(expected))
	}
}
