package interpreter

import (
	"math/big"
	"testing"
)

func addExpr(a, b string) Expression {
	return func(ctx *Context) (Term, error) {
		x, _ := ctx.Var(a)
		y, _ := ctx.Var(b)
		return NewBigInteger(new(big.Int).Add(x.(*Integer).Value, y.(*Integer).Value)), nil
	}
}

func notEqualExpr(a, b string) Expression {
	return func(ctx *Context) (Term, error) {
		x, _ := ctx.Var(a)
		y, _ := ctx.Var(b)
		return Bool(!IsEqual(x, y)), nil
	}
}

func TestCallAnonymousFunctionSelectsClause(t *testing.T) {
	in := New()
	fun := NewAnonymousFunction(1, []Clause{
		{
			Params: params(tuple(atom("ok"), variable("x"))),
			Body:   varExpr("x"),
		},
		{
			Params: params(variable("other")),
			Body:   constant(atom("fallback")),
		},
	}, NewContext(nil, nil))

	result, err := in.CallAnonymousFunction(fun, []Term{tuple(atom("ok"), integer(7))})
	if err != nil {
		t.Fatal(err)
	}
	if !IsStrictlyEqual(result, integer(7)) {
		t.Errorf("expected 7, got %s", Inspect(result))
	}

	result, err = in.CallAnonymousFunction(fun, []Term{atom("nope")})
	if err != nil {
		t.Fatal(err)
	}
	if !IsStrictlyEqual(result, atom("fallback")) {
		t.Errorf("expected :fallback, got %s", Inspect(result))
	}
}

func TestCallAnonymousFunctionGuards(t *testing.T) {
	in := New()
	isBig := func(ctx *Context) (Term, error) {
		x, _ := ctx.Var("x")
		order, err := CompareTerms(x, integer(10))
		if err != nil {
			return nil, err
		}
		return Bool(order > 0), nil
	}
	fun := NewAnonymousFunction(1, []Clause{
		{Params: params(variable("x")), Guards: []Expression{constant(atom("truthy_but_not_true")), isBig}, Body: constant(atom("big"))},
		{Params: params(variable("x")), Body: constant(atom("small"))},
	}, nil)

	tests := []struct {
		arg      Term
		expected Term
	}{
		{integer(100), atom("big")},
		{integer(1), atom("small")},
	}
	for _, tt := range tests {
		result, err := in.CallAnonymousFunction(fun, []Term{tt.arg})
		if err != nil {
			t.Fatal(err)
		}
		if !IsStrictlyEqual(result, tt.expected) {
			t.Errorf("fun(%s) = %s, want %s", Inspect(tt.arg), Inspect(result), Inspect(tt.expected))
		}
	}
}

func TestCallAnonymousFunctionErrors(t *testing.T) {
	in := New()
	fun := NewAnonymousFunction(2, []Clause{
		{Params: params(integer(1), variable("b")), Body: constant(atom("one"))},
		{Params: params(integer(2), variable("b")), Body: constant(atom("two"))},
	}, nil)

	_, err := in.CallAnonymousFunction(fun, []Term{integer(1)})
	assertRaised(t, err, "BadArityError", "anonymous function with arity 2 called with 1 argument (1)")

	_, err = in.CallAnonymousFunction(fun, nil)
	assertRaised(t, err, "BadArityError", "called with no arguments")

	_, err = in.CallAnonymousFunction(fun, []Term{integer(3), str("x")})
	assertRaised(t, err, "FunctionClauseError",
		"no function clause matching in anonymous fn/2", "# 1\n    3", "# 2\n    \"x\"")
}

func TestCallAnonymousFunctionDoesNotLeakBindings(t *testing.T) {
	in := New()
	closure := NewContext(nil, map[string]Term{"y": integer(1)})
	fun := NewAnonymousFunction(1, []Clause{
		{Params: params(variable("y")), Body: varExpr("y")},
	}, closure)

	result, err := in.CallAnonymousFunction(fun, []Term{integer(5)})
	if err != nil {
		t.Fatal(err)
	}
	if !IsStrictlyEqual(result, integer(5)) {
		t.Errorf("expected 5, got %s", Inspect(result))
	}
	assertVar(t, closure, "y", integer(1))
}

func TestCase(t *testing.T) {
	clauses := []CaseClause{
		{Match: tuple(atom("ok"), variable("v")), Body: varExpr("v")},
		{Match: tuple(atom("error"), variable("v")), Guards: []Expression{constant(Bool(false))}, Body: constant(atom("unreachable"))},
		{Match: tuple(atom("error"), NewMatchPlaceholder()), Body: constant(atom("failed"))},
	}

	tests := []struct {
		subject  Term
		expected Term
	}{
		{tuple(atom("ok"), integer(1)), integer(1)},
		{tuple(atom("error"), str("e")), atom("failed")},
	}
	for _, tt := range tests {
		result, err := Case(tt.subject, clauses, NewContext(nil, nil))
		if err != nil {
			t.Fatal(err)
		}
		if !IsStrictlyEqual(result, tt.expected) {
			t.Errorf("case %s = %s, want %s", Inspect(tt.subject), Inspect(result), Inspect(tt.expected))
		}
	}

	_, err := Case(atom("other"), clauses, NewContext(nil, nil))
	assertRaised(t, err, "CaseClauseError", "no case clause matching: :other")
}

func TestCond(t *testing.T) {
	clauses := []CondClause{
		{Condition: constant(Nil()), Body: constant(integer(1))},
		{Condition: constant(integer(0)), Body: constant(integer(2))},
		{Condition: constant(Bool(true)), Body: constant(integer(3))},
	}
	result, err := Cond(clauses, NewContext(nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if !IsStrictlyEqual(result, integer(2)) {
		t.Errorf("expected the first truthy clause, got %s", Inspect(result))
	}

	_, err = Cond(clauses[:1], NewContext(nil, nil))
	assertRaised(t, err, "CondClauseError", "no cond clause evaluated to a truthy value")
}

func TestComprehensionUnique(t *testing.T) {
	generators := []Generator{
		{Match: variable("x"), Body: constant(list(integer(1), integer(2)))},
		{Match: variable("y"), Body: constant(list(integer(1), integer(2)))},
	}
	filters := []Expression{notEqualExpr("x", "y")}
	mapper := addExpr("x", "y")

	all, err := Comprehension(generators, filters, list(), false, mapper, NewContext(nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := Inspect(all); got != "[3, 3]" {
		t.Errorf("expected [3, 3], got %s", got)
	}

	unique, err := Comprehension(generators, filters, list(), true, mapper, NewContext(nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := Inspect(unique); got != "[3]" {
		t.Errorf("expected [3], got %s", got)
	}

	allItems, uniqueItems := all.(*List).Data, unique.(*List).Data
	if len(uniqueItems) > len(allItems) {
		t.Error("unique output is longer than the full output")
	}
	for _, item := range uniqueItems {
		found := false
		for _, other := range allItems {
			if IsStrictlyEqual(item, other) {
				found = true
			}
		}
		if !found {
			t.Errorf("%s is missing from the full output", Inspect(item))
		}
	}
}

func TestComprehensionSkipsRejectedCombinations(t *testing.T) {
	generators := []Generator{
		{Match: tuple(atom("ok"), variable("v")), Body: constant(list(
			tuple(atom("ok"), integer(1)),
			atom("skip"),
			tuple(atom("ok"), integer(20)),
			tuple(atom("ok"), integer(3)),
		)), Guards: []Expression{func(ctx *Context) (Term, error) {
			v, _ := ctx.Var("v")
			return Bool(v.(*Integer).Value.Int64() < 10), nil
		}}},
	}

	result, err := Comprehension(generators, nil, list(), false, varExpr("v"), NewContext(nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := Inspect(result); got != "[1, 3]" {
		t.Errorf("expected [1, 3], got %s", got)
	}
}

func TestComprehensionSources(t *testing.T) {
	tests := []struct {
		name        string
		source      Term
		collectable Term
		mapper      Expression
		expected    string
	}{
		{"range", NewRange(1, 5, 2), list(), varExpr("x"), "[1, 3, 5]"},
		{"descending range", NewRange(3, 1, -1), list(), varExpr("x"), "[3, 2, 1]"},
		{"empty range", NewRange(3, 1, 1), list(), varExpr("x"), "[]"},
		{"map entries", NewMap(MapEntry{atom("a"), integer(1)}), list(), varExpr("x"), "[a: 1]"},
		{"into existing list", list(integer(2)), list(integer(1)), varExpr("x"), "[1, 2]"},
		{
			"into map",
			list(atom("a"), atom("b")),
			NewMap(),
			func(ctx *Context) (Term, error) {
				x, _ := ctx.Var("x")
				return tuple(x, Bool(true)), nil
			},
			"%{a: true, b: true}",
		},
		{"into bitstring", list(str("ab"), str("cd")), str(""), varExpr("x"), `"abcd"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generators := []Generator{{Match: variable("x"), Body: constant(tt.source)}}
			result, err := Comprehension(generators, nil, tt.collectable, false, tt.mapper, NewContext(nil, nil))
			if err != nil {
				t.Fatal(err)
			}
			if got := Inspect(result); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestComprehensionRejectsBadCollectables(t *testing.T) {
	generators := []Generator{{Match: variable("x"), Body: constant(list(integer(1)))}}

	_, err := Comprehension(generators, nil, NewMap(), false, varExpr("x"), NewContext(nil, nil))
	assertRaised(t, err, "ArgumentError", "{key, value} tuples")

	_, err = Comprehension(generators, nil, str(""), false, varExpr("x"), NewContext(nil, nil))
	assertRaised(t, err, "ArgumentError", "requires bitstrings")

	_, err = Comprehension([]Generator{{Match: variable("x"), Body: constant(atom("nope"))}},
		nil, list(), false, varExpr("x"), NewContext(nil, nil))
	assertRaised(t, err, "ArgumentError", "protocol Enumerable not implemented for :nope")
}
