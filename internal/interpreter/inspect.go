package interpreter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/termrt/internal/config"
)

// InspectOptions mirrors the custom options accepted by the inspect protocol.
type InspectOptions struct {
	SortMaps bool
}

// InspectOptionsFrom reads [custom_options: [sort_maps: true]] style options.
func InspectOptionsFrom(opts *List) InspectOptions {
	var result InspectOptions
	custom, ok := AccessKeywordListElement(opts, NewAtom(config.CustomOptionsKey)).(*List)
	if !ok {
		return result
	}
	result.SortMaps = IsTrue(AccessKeywordListElement(custom, NewAtom(config.SortMapsKey)))
	return result
}

// Inspect renders a term in its canonical textual form.
func Inspect(t Term) string {
	return InspectWith(t, InspectOptions{})
}

func InspectWith(t Term, opts InspectOptions) string {
	switch v := t.(type) {
	case *AnonymousFunction:
		return inspectAnonymousFunction(v)
	case *Atom:
		return inspectAtom(v)
	case *Bitstring:
		return inspectBitstring(v)
	case *Float:
		return inspectFloat(v)
	case *Integer:
		return v.Value.String()
	case *List:
		return inspectList(v, opts)
	case *Map:
		return inspectMap(v, opts)
	case *Pid:
		return fmt.Sprintf("#PID<%d.%d.%d>", v.Segments[0], v.Segments[1], v.Segments[2])
	case *Tuple:
		return "{" + inspectAllWith(v.Data, ", ", opts) + "}"
	default:
		return serialize(t)
	}
}

func inspectAll(items []Term, sep string) string {
	return inspectAllWith(items, sep, InspectOptions{})
}

func inspectAllWith(items []Term, sep string, opts InspectOptions) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = InspectWith(item, opts)
	}
	return strings.Join(parts, sep)
}

func inspectAnonymousFunction(f *AnonymousFunction) string {
	if f.isCapture() {
		return fmt.Sprintf("&%s.%s/%d", f.CapturedModule, f.CapturedFunction, f.Arity)
	}
	return fmt.Sprintf("anonymous function fn/%d", f.Arity)
}

// TODO: quote atoms that are not valid identifiers, e.g. :"1"
func inspectAtom(a *Atom) string {
	if IsBoolean(a) || IsNil(a) {
		return a.Value
	}
	if IsAlias(a) {
		return ModuleExName(a)
	}
	return ":" + a.Value
}

func inspectBitstring(b *Bitstring) string {
	if b.IsPrintableText() {
		text, _ := b.Text()
		return `"` + strings.ReplaceAll(text, `"`, `\"`) + `"`
	}

	data := b.Bytes()
	leftover := b.LeftoverBitCount()

	bytesStr := make([]string, len(data))
	for i, v := range data {
		bytesStr[i] = strconv.Itoa(int(v))
	}

	if leftover == 0 {
		return "<<" + strings.Join(bytesStr, ", ") + ">>"
	}

	leftoverValue := data[len(data)-1] >> (8 - leftover)
	leftoverStr := fmt.Sprintf("%d::size(%d)", leftoverValue, leftover)

	if len(data) > 1 {
		return "<<" + strings.Join(bytesStr[:len(bytesStr)-1], ", ") + ", " + leftoverStr + ">>"
	}
	return "<<" + leftoverStr + ">>"
}

// inspectFloat always shows a fractional part for integral values.
func inspectFloat(f *Float) string {
	v := f.Value
	abs := math.Abs(v)

	if v == math.Trunc(v) && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64) + ".0"
	}
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return inspectFloatExponent(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// inspectFloatExponent renders 1.5e+300 as 1.5e300 and 1e-07 as 1.0e-7.
func inspectFloatExponent(v float64) string {
	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}

	sign := ""
	if strings.HasPrefix(exponent, "-") {
		sign = "-"
	}
	digits := strings.TrimLeft(strings.TrimLeft(exponent, "+-"), "0")
	return mantissa + "e" + sign + digits
}

func inspectList(l *List, opts InspectOptions) string {
	if len(l.Data) != 0 && IsKeywordList(l) {
		return inspectKeywordList(l, opts)
	}

	if l.IsProper {
		return "[" + inspectAllWith(l.Data, ", ", opts) + "]"
	}

	last := len(l.Data) - 1
	return "[" + inspectAllWith(l.Data[:last], ", ", opts) + " | " + InspectWith(l.Data[last], opts) + "]"
}

func inspectKeywordList(l *List, opts InspectOptions) string {
	parts := make([]string, len(l.Data))
	for i, item := range l.Data {
		tuple := item.(*Tuple)
		parts[i] = tuple.Data[0].(*Atom).Value + ": " + InspectWith(tuple.Data[1], opts)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func inspectMap(m *Map, opts InspectOptions) string {
	if IsRange(m) {
		return inspectRange(m, opts)
	}

	entries := m.Entries()
	if opts.SortMaps {
		sortEntries(entries)
	}

	isAtomKeyMap := true
	for _, e := range entries {
		if _, ok := e.Key.(*Atom); !ok {
			isAtomKeyMap = false
			break
		}
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		if isAtomKeyMap {
			parts[i] = e.Key.(*Atom).Value + ": " + InspectWith(e.Value, opts)
		} else {
			parts[i] = InspectWith(e.Key, opts) + " => " + InspectWith(e.Value, opts)
		}
	}
	return "%{" + strings.Join(parts, ", ") + "}"
}

func inspectRange(m *Map, opts InspectOptions) string {
	first, _ := m.Get(NewAtom(config.RangeFirstKey))
	last, _ := m.Get(NewAtom(config.RangeLastKey))
	step, _ := m.Get(NewAtom(config.RangeStepKey))

	var stepStr string
	if step.(*Integer).Value.Cmp(bigOne) != 0 {
		stepStr = "//" + InspectWith(step, opts)
	}
	return InspectWith(first, opts) + ".." + InspectWith(last, opts) + stepStr
}

// sortEntries orders map entries by key using the term order. Keys of kinds
// CompareTerms does not support are ordered by kind rank, then by rendering.
func sortEntries(entries []MapEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Key, entries[j].Key
		if order, err := CompareTerms(a, b); err == nil {
			return order < 0
		}
		aOrder, bOrder := structuralComparisonTypeOrder(a), structuralComparisonTypeOrder(b)
		if aOrder != bOrder {
			return aOrder < bOrder
		}
		return Inspect(a) < Inspect(b)
	})
}
