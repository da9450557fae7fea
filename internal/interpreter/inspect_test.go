package interpreter

import (
	"math"
	"strings"
	"testing"

	"github.com/funvibe/termrt/internal/config"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name     string
		term     Term
		expected string
	}{
		{"integer", integer(-12), "-12"},
		{"integral float", float(2.0), "2.0"},
		{"float", float(2.5), "2.5"},
		{"negative integral float", float(-3), "-3.0"},
		{"small float", float(1.0e-7), "1.0e-7"},
		{"large float", float(1.5e300), "1.5e300"},
		{"atom", atom("ok"), ":ok"},
		{"true", Bool(true), "true"},
		{"nil", Nil(), "nil"},
		{"alias", Alias("Foo.Bar"), "Foo.Bar"},
		{"text", str("hi"), `"hi"`},
		{"text with quote", str(`say "hi"`), `"say \"hi\""`},
		{"bytes", NewBitstringFromBytes([]byte{0, 255}), "<<0, 255>>"},
		{"leftover bits", NewBitstringFromBits([]byte{0xFF, 0xA0}, 11), "<<255, 5::size(3)>>"},
		{"only leftover bits", NewBitstringFromBits([]byte{0x80}, 1), "<<1::size(1)>>"},
		{"list", list(integer(1), integer(2)), "[1, 2]"},
		{"empty list", list(), "[]"},
		{"improper list", NewImproperList(integer(1), integer(2), integer(3)), "[1, 2 | 3]"},
		{"keyword list", NewKeywordList(MapEntry{atom("a"), integer(1)}, MapEntry{atom("b"), str("x")}), `[a: 1, b: "x"]`},
		{"tuple", tuple(atom("ok"), list()), "{:ok, []}"},
		{"atom key map", NewMap(MapEntry{atom("a"), integer(1)}), "%{a: 1}"},
		{"mixed key map", NewMap(MapEntry{integer(1), atom("x")}, MapEntry{atom("b"), integer(2)}), "%{1 => :x, :b => 2}"},
		{"range", NewRange(1, 5, 1), "1..5"},
		{"range with step", NewRange(1, 9, 2), "1..9//2"},
		{"pid", NewPid("server", [3]int64{0, 11, 222}, "node"), "#PID<0.11.222>"},
		{"closure", NewAnonymousFunction(2, nil, nil), "anonymous function fn/2"},
		{"capture", NewFunctionCapture("Enum", "map", 2, nil), "&Enum.map/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inspect(tt.term); got != tt.expected {
				t.Errorf("Inspect() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestInspectFloatAlwaysHasFraction(t *testing.T) {
	for _, v := range []float64{0, 1, 100, 123456789, -42, 0.1, 1.5e300, math.SmallestNonzeroFloat64} {
		got := Inspect(float(v))
		if !strings.Contains(got, ".") {
			t.Errorf("Inspect(%v) = %s has no fractional part", v, got)
		}
	}
}

func TestInspectSortedMaps(t *testing.T) {
	m := NewMap(
		MapEntry{atom("b"), integer(2)},
		MapEntry{integer(5), integer(0)},
		MapEntry{atom("a"), integer(1)},
	)

	if got := Inspect(m); got != "%{:b => 2, 5 => 0, :a => 1}" {
		t.Errorf("unsorted rendering changed order: %s", got)
	}
	if got := InspectWith(m, InspectOptions{SortMaps: true}); got != "%{5 => 0, :a => 1, :b => 2}" {
		t.Errorf("sorted rendering = %s", got)
	}
}

func TestInspectOptionsFrom(t *testing.T) {
	opts := NewKeywordList(MapEntry{
		atom(config.CustomOptionsKey),
		NewKeywordList(MapEntry{atom(config.SortMapsKey), Bool(true)}),
	})
	if !InspectOptionsFrom(opts).SortMaps {
		t.Error("expected sort_maps to be read from custom options")
	}
	if InspectOptionsFrom(list()).SortMaps {
		t.Error("expected empty options to keep defaults")
	}
}

func TestInspectFallsBackToSerializer(t *testing.T) {
	got := Inspect(NewPort("server", [3]int64{1, 2, 3}, "node"))
	if got != `{"n":"node","o":"server","s":[1,2,3],"t":"port"}` {
		t.Errorf("unexpected fallback rendering %s", got)
	}

	ref := NewReference("node")
	if !strings.Contains(Inspect(ref), `"t":"reference"`) {
		t.Errorf("unexpected fallback rendering %s", Inspect(ref))
	}
	if IsStrictlyEqual(ref, NewReference("node")) {
		t.Error("new references must be unique")
	}
}
