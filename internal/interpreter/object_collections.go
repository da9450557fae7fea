package interpreter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/termrt/internal/config"
)

// List is proper when it ends in the empty list. For an improper list the
// last element of Data is the non-list tail.
type List struct {
	Data     []Term
	IsProper bool
}

func (l *List) Type() TermType { return LIST_TERM }

// Tuple
type Tuple struct {
	Data []Term
}

func (t *Tuple) Type() TermType { return TUPLE_TERM }

// MapEntry is a key-value pair of a Map.
type MapEntry struct {
	Key   Term
	Value Term
}

// Map keeps insertion order for iteration. Keys are unique by strict
// equality. Maps are immutable: Put returns a new map.
type Map struct {
	keys []string
	data map[string]MapEntry
}

func (m *Map) Type() TermType { return MAP_TERM }

func NewList(items ...Term) *List {
	return &List{Data: items, IsProper: true}
}

// NewImproperList builds [a, b | tail] from a, b, tail.
func NewImproperList(items ...Term) *List {
	return &List{Data: items, IsProper: false}
}

func NewTuple(items ...Term) *Tuple {
	return &Tuple{Data: items}
}

func NewMap(entries ...MapEntry) *Map {
	m := &Map{data: make(map[string]MapEntry, len(entries))}
	for _, e := range entries {
		m.set(e.Key, e.Value)
	}
	return m
}

// NewKeywordList builds [{k1, v1}, {k2, v2}] from atom names and values.
func NewKeywordList(entries ...MapEntry) *List {
	items := make([]Term, len(entries))
	for i, e := range entries {
		items[i] = NewTuple(e.Key, e.Value)
	}
	return NewList(items...)
}

func (m *Map) set(key, value Term) {
	k := encodeMapKey(key)
	if _, ok := m.data[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.data[k] = MapEntry{Key: key, Value: value}
}

func (m *Map) Len() int { return len(m.keys) }

func (m *Map) Get(key Term) (Term, bool) {
	e, ok := m.data[encodeMapKey(key)]
	if !ok {
		return nil, false
	}
	return e.Value, true
}

func (m *Map) Has(key Term) bool {
	_, ok := m.data[encodeMapKey(key)]
	return ok
}

func (m *Map) Put(key, value Term) *Map {
	result := &Map{
		keys: make([]string, len(m.keys), len(m.keys)+1),
		data: make(map[string]MapEntry, len(m.data)+1),
	}
	copy(result.keys, m.keys)
	for k, v := range m.data {
		result.data[k] = v
	}
	result.set(key, value)
	return result
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []MapEntry {
	entries := make([]MapEntry, len(m.keys))
	for i, k := range m.keys {
		entries[i] = m.data[k]
	}
	return entries
}

func (m *Map) lookup(encodedKey string) (MapEntry, bool) {
	e, ok := m.data[encodedKey]
	return e, ok
}

// encodeMapKey gives every term a string that is equal for two terms
// exactly when they are strictly equal.
func encodeMapKey(t Term) string {
	switch v := t.(type) {
	case *Atom:
		return "atom(" + v.Value + ")"
	case *Integer:
		return "integer(" + v.Value.String() + ")"
	case *Float:
		if v.Value == 0 {
			// -0.0 and +0.0 are strictly equal
			return "float(0)"
		}
		if math.IsNaN(v.Value) {
			return "float(NaN)"
		}
		return "float(" + strconv.FormatFloat(v.Value, 'g', -1, 64) + ")"
	case *Bitstring:
		return fmt.Sprintf("bitstring(%d:%x)", v.BitCount(), v.Bytes())
	case *List:
		return "list(" + strconv.FormatBool(v.IsProper) + ":" + encodeMapKeys(v.Data) + ")"
	case *Tuple:
		return "tuple(" + encodeMapKeys(v.Data) + ")"
	case *Map:
		keys := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			keys = append(keys, k+"=>"+encodeMapKey(v.data[k].Value))
		}
		sort.Strings(keys)
		return "map(" + strings.Join(keys, ",") + ")"
	case *Pid:
		return "pid(" + v.identifierKey() + ")"
	case *Port:
		return "port(" + v.identifierKey() + ")"
	case *Reference:
		return "reference(" + v.identifierKey() + ")"
	case *AnonymousFunction:
		if v.CapturedModule != "" {
			return fmt.Sprintf("anonymous_function(&%s.%s/%d)", v.CapturedModule, v.CapturedFunction, v.Arity)
		}
		return fmt.Sprintf("anonymous_function(%p)", v)
	default:
		return fmt.Sprintf("%s(%p)", t.Type(), t)
	}
}

func encodeMapKeys(items []Term) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = encodeMapKey(item)
	}
	return strings.Join(parts, ",")
}

func IsProperList(t Term) bool {
	l, ok := t.(*List)
	return ok && l.IsProper
}

// IsKeywordList reports whether every element is a two-tuple whose first
// element is an atom.
func IsKeywordList(l *List) bool {
	if !l.IsProper {
		return false
	}
	for _, item := range l.Data {
		tuple, ok := item.(*Tuple)
		if !ok || len(tuple.Data) != 2 {
			return false
		}
		if _, ok := tuple.Data[0].(*Atom); !ok {
			return false
		}
	}
	return true
}

// listHead returns the first element of a non-empty list.
func listHead(l *List) Term {
	return l.Data[0]
}

// listTail returns everything after the head; for [a | b] that is b itself.
func listTail(l *List) Term {
	if l.IsProper {
		return NewList(l.Data[1:]...)
	}
	if len(l.Data) == 2 {
		return l.Data[1]
	}
	return NewImproperList(l.Data[1:]...)
}

// NewRange builds the struct map of first..last//step.
func NewRange(first, last, step int64) *Map {
	return NewMap(
		MapEntry{NewAtom(config.StructFieldName), Alias(config.RangeModuleName)},
		MapEntry{NewAtom(config.RangeFirstKey), NewInteger(first)},
		MapEntry{NewAtom(config.RangeLastKey), NewInteger(last)},
		MapEntry{NewAtom(config.RangeStepKey), NewInteger(step)},
	)
}

func IsRange(t Term) bool {
	m, ok := t.(*Map)
	if !ok || m.Len() != 4 {
		return false
	}
	structName, ok := m.Get(NewAtom(config.StructFieldName))
	if !ok || !IsStrictlyEqual(structName, Alias(config.RangeModuleName)) {
		return false
	}
	for _, key := range []string{config.RangeFirstKey, config.RangeLastKey, config.RangeStepKey} {
		v, ok := m.Get(NewAtom(key))
		if !ok {
			return false
		}
		if _, ok := v.(*Integer); !ok {
			return false
		}
	}
	return true
}

// ErrorStruct builds the canonical exception struct for an error kind.
func ErrorStruct(kind, message string) *Map {
	return NewMap(
		MapEntry{NewAtom(config.StructFieldName), Alias(kind)},
		MapEntry{NewAtom(config.ExceptionFieldName), Bool(true)},
		MapEntry{NewAtom(config.MessageFieldName), NewBitstring(message)},
	)
}
