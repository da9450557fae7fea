package interpreter

import "math/big"

// IsStrictlyEqual implements === : kinds must match exactly and compound
// terms are compared structurally.
func IsStrictlyEqual(a, b Term) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if a.Type() != b.Type() {
		return false
	}

	// Cases ordered by expected frequency
	switch aVal := a.(type) {
	case *Atom:
		return aVal.Value == b.(*Atom).Value
	case *Map:
		return mapsEqual(aVal, b.(*Map))
	case *Bitstring:
		return aVal.equals(b.(*Bitstring))
	case *List:
		bVal := b.(*List)
		return aVal.IsProper == bVal.IsProper && itemsStrictlyEqual(aVal.Data, bVal.Data)
	case *Integer:
		return aVal.Value.Cmp(b.(*Integer).Value) == 0
	case *Tuple:
		return itemsStrictlyEqual(aVal.Data, b.(*Tuple).Data)
	case *AnonymousFunction:
		return functionsEqual(aVal, b.(*AnonymousFunction))
	case *Float:
		return aVal.Value == b.(*Float).Value
	case *Pid:
		return aVal.equals(b.(*Pid).identifier)
	case *Reference:
		return aVal.equals(b.(*Reference).identifier)
	case *Port:
		return aVal.equals(b.(*Port).identifier)
	}

	return false
}

// IsEqual implements == : integers and floats compare by numeric value,
// everything else falls back to strict equality.
func IsEqual(a, b Term) bool {
	if IsNumber(a) {
		if !IsNumber(b) {
			return false
		}
		return compareNumbers(a, b) == 0
	}
	return IsStrictlyEqual(a, b)
}

func itemsStrictlyEqual(items1, items2 []Term) bool {
	if len(items1) != len(items2) {
		return false
	}
	for i := range items1 {
		if !IsStrictlyEqual(items1[i], items2[i]) {
			return false
		}
	}
	return true
}

func mapsEqual(m1, m2 *Map) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for _, k := range m1.keys {
		e2, ok := m2.lookup(k)
		if !ok || !IsStrictlyEqual(m1.data[k].Value, e2.Value) {
			return false
		}
	}
	return true
}

// functionsEqual: closures are only equal to themselves, captures are equal
// when they capture the same module, function and arity.
func functionsEqual(f1, f2 *AnonymousFunction) bool {
	if !f1.isCapture() {
		return false
	}
	return f1.CapturedModule == f2.CapturedModule &&
		f1.CapturedFunction == f2.CapturedFunction &&
		f1.Arity == f2.Arity
}

func compareNumbers(a, b Term) int {
	ai, aIsInt := a.(*Integer)
	bi, bIsInt := b.(*Integer)
	if aIsInt && bIsInt {
		return ai.Value.Cmp(bi.Value)
	}
	return numberToBigFloat(a).Cmp(numberToBigFloat(b))
}

func numberToBigFloat(t Term) *big.Float {
	switch v := t.(type) {
	case *Integer:
		return new(big.Float).SetInt(v.Value)
	case *Float:
		return big.NewFloat(v.Value)
	}
	return new(big.Float)
}
