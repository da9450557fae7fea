package interpreter

import (
	"math/big"
	"strings"

	"github.com/funvibe/termrt/internal/config"
)

var bigOne = big.NewInt(1)

// Integer has arbitrary precision. Value must not be mutated.
type Integer struct {
	Value *big.Int
}

func (i *Integer) Type() TermType { return INTEGER_TERM }

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() TermType { return FLOAT_TERM }

// Atom is an interned symbolic name. Booleans and nil are atoms with
// reserved names, qualified module names carry config.ModulePrefix.
type Atom struct {
	Value string
}

func (a *Atom) Type() TermType { return ATOM_TERM }

func NewInteger(v int64) *Integer {
	return &Integer{Value: big.NewInt(v)}
}

func NewBigInteger(v *big.Int) *Integer {
	return &Integer{Value: new(big.Int).Set(v)}
}

func NewFloat(v float64) *Float {
	return &Float{Value: v}
}

func NewAtom(name string) *Atom {
	return &Atom{Value: name}
}

// Alias returns the atom naming a qualified module, e.g. "Foo.Bar" -> Elixir.Foo.Bar.
// Names already carrying the prefix are returned unchanged.
func Alias(name string) *Atom {
	if strings.HasPrefix(name, config.ModulePrefix) {
		return &Atom{Value: name}
	}
	return &Atom{Value: config.ModulePrefix + name}
}

func Bool(v bool) *Atom {
	if v {
		return &Atom{Value: config.TrueAtomName}
	}
	return &Atom{Value: config.FalseAtomName}
}

func Nil() *Atom {
	return &Atom{Value: config.NilAtomName}
}

func IsAlias(t Term) bool {
	a, ok := t.(*Atom)
	return ok && strings.HasPrefix(a.Value, config.ModulePrefix)
}

func IsBoolean(t Term) bool {
	a, ok := t.(*Atom)
	return ok && (a.Value == config.TrueAtomName || a.Value == config.FalseAtomName)
}

func IsNil(t Term) bool {
	a, ok := t.(*Atom)
	return ok && a.Value == config.NilAtomName
}

func IsTrue(t Term) bool {
	a, ok := t.(*Atom)
	return ok && a.Value == config.TrueAtomName
}

func IsFalse(t Term) bool {
	a, ok := t.(*Atom)
	return ok && a.Value == config.FalseAtomName
}

// IsTruthy reports whether t is neither false nor nil.
func IsTruthy(t Term) bool {
	return !IsFalse(t) && !IsNil(t)
}

func IsFalsy(t Term) bool {
	return !IsTruthy(t)
}

// ModuleExName strips the module prefix from an alias, e.g. Elixir.Foo.Bar -> "Foo.Bar".
func ModuleExName(alias *Atom) string {
	return strings.TrimPrefix(alias.Value, config.ModulePrefix)
}
