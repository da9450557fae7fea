package termrt_test

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/termrt/internal/interpreter"
	termrt "github.com/funvibe/termrt/pkg/embed"
)

type User struct {
	Name  string
	Score int
	notes string
}

func TestToTerm(t *testing.T) {
	m := termrt.NewMarshaller()

	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "42"},
		{"uint64", uint64(1) << 63, "9223372036854775808"},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 70), "1180591620717411303424"},
		{"float", 2.0, "2.0"},
		{"bool", true, "true"},
		{"string", "hi", `"hi"`},
		{"bytes", []byte{0, 1}, "<<0, 1>>"},
		{"slice", []int{1, 2}, "[1, 2]"},
		{"map", map[string]int{"a": 1}, `%{"a" => 1}`},
		{"struct", User{Name: "Alice", Score: 10}, `%{Name: "Alice", Score: 10}`},
		{"pointer", &User{Name: "Bob"}, `%{Name: "Bob", Score: 0}`},
		{"nil pointer", (*User)(nil), "nil"},
		{"term", interpreter.NewAtom("ok"), ":ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := m.ToTerm(tt.value)
			if err != nil {
				t.Fatalf("ToTerm failed: %v", err)
			}
			if got := interpreter.Inspect(term); got != tt.expected {
				t.Errorf("ToTerm(%v) = %s, want %s", tt.value, got, tt.expected)
			}
		})
	}

	if _, err := m.ToTerm(make(chan int)); err == nil {
		t.Error("expected channels to be rejected")
	}
	if _, err := m.ToTerm(math.NaN()); err == nil {
		t.Error("expected NaN to be rejected")
	}
	if _, err := m.ToTerm(math.Inf(-1)); err == nil {
		t.Error("expected infinity to be rejected")
	}
}

func TestFromTerm(t *testing.T) {
	m := termrt.NewMarshaller()

	tests := []struct {
		name       string
		term       interpreter.Term
		targetType reflect.Type
		expected   interface{}
	}{
		{"integer", interpreter.NewInteger(5), nil, 5},
		{"integer as int64", interpreter.NewInteger(5), reflect.TypeOf(int64(0)), int64(5)},
		{"integer as float", interpreter.NewInteger(5), reflect.TypeOf(0.0), 5.0},
		{"float", interpreter.NewFloat(1.5), nil, 1.5},
		{"true", interpreter.Bool(true), nil, true},
		{"nil", interpreter.Nil(), nil, nil},
		{"atom", interpreter.NewAtom("ok"), nil, "ok"},
		{"text", interpreter.NewBitstring("hi"), nil, "hi"},
		{"text as bytes", interpreter.NewBitstring("hi"), reflect.TypeOf([]byte(nil)), []byte("hi")},
		{"list", interpreter.NewList(interpreter.NewInteger(1), interpreter.NewInteger(2)), reflect.TypeOf([]int(nil)), []int{1, 2}},
		{"tuple", interpreter.NewTuple(interpreter.NewAtom("ok"), interpreter.NewInteger(1)), nil, []interface{}{"ok", 1}},
		{
			"map",
			interpreter.NewMap(interpreter.MapEntry{Key: interpreter.NewBitstring("a"), Value: interpreter.NewInteger(1)}),
			reflect.TypeOf(map[string]int(nil)),
			map[string]int{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FromTerm(tt.term, tt.targetType)
			if err != nil {
				t.Fatalf("FromTerm failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("FromTerm(%s) = %#v, want %#v", interpreter.Inspect(tt.term), got, tt.expected)
			}
		})
	}

	if _, err := m.FromTerm(interpreter.NewImproperList(interpreter.NewInteger(1), interpreter.NewInteger(2)), nil); err == nil {
		t.Error("expected improper lists to be rejected")
	}
}

func TestRoundTrip(t *testing.T) {
	m := termrt.NewMarshaller()
	values := []interface{}{7, 2.5, "text", true, []interface{}{1, "a"}}

	for _, v := range values {
		term, err := m.ToTerm(v)
		if err != nil {
			t.Fatal(err)
		}
		back, err := m.FromTerm(term, reflect.TypeOf(v))
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(back, v) {
			t.Errorf("round trip of %#v gave %#v", v, back)
		}
	}
}

func TestBind(t *testing.T) {
	in := interpreter.New()

	if err := termrt.Bind(in, "Host", "greet", func(name string, times int) string {
		return strings.Repeat("hi "+name+" ", times)
	}); err != nil {
		t.Fatal(err)
	}
	if err := termrt.Bind(in, "Host", "divide", func(a, b int) (int, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := termrt.Bind(in, "Host", "split", func(a int) (int, int) {
		return a / 2, a % 2
	}); err != nil {
		t.Fatal(err)
	}
	in.Registry().Seal()

	host := interpreter.Alias("Host")
	ctx := interpreter.NewContext(nil, nil)

	result, err := in.CallNamedFunction(host, "greet", []interpreter.Term{interpreter.NewBitstring("bob"), interpreter.NewInteger(2)}, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := interpreter.Inspect(result); got != `"hi bob hi bob "` {
		t.Errorf("greet = %s", got)
	}

	_, err = in.CallNamedFunction(host, "divide", []interpreter.Term{interpreter.NewInteger(1), interpreter.NewInteger(0)}, ctx)
	if err == nil || err.Error() != "division by zero" {
		t.Errorf("expected the host error, got %v", err)
	}

	result, err = in.CallNamedFunction(host, "split", []interpreter.Term{interpreter.NewInteger(5)}, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := interpreter.Inspect(result); got != "{2, 1}" {
		t.Errorf("split = %s", got)
	}

	_, err = in.CallNamedFunction(host, "greet", []interpreter.Term{interpreter.NewInteger(1), interpreter.NewInteger(2)}, ctx)
	var raised *interpreter.Error
	if !errors.As(err, &raised) || raised.Kind() != "ArgumentError" {
		t.Errorf("expected ArgumentError for a bad argument, got %v", err)
	}
}

func TestNativeRaisesBadArity(t *testing.T) {
	native, arity, err := termrt.NewMarshaller().Native(func(a, b int) int { return a + b })
	if err != nil {
		t.Fatal(err)
	}
	if arity != 2 {
		t.Fatalf("arity = %d, want 2", arity)
	}

	_, err = native(interpreter.NewInteger(1))
	var raised *interpreter.Error
	if !errors.As(err, &raised) || raised.Kind() != "BadArityError" {
		t.Fatalf("expected BadArityError, got %v", err)
	}
	if !strings.Contains(raised.Message(), "arity 2 called with 1 argument (1)") {
		t.Errorf("unexpected message: %s", raised.Message())
	}
}

func TestBindRejectsNonFunctions(t *testing.T) {
	if err := termrt.Bind(interpreter.New(), "Host", "x", 42); err == nil {
		t.Error("expected an error for a non-function")
	}
}
