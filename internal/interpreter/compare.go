package interpreter

import "strings"

// structuralComparisonTypeOrder ranks term kinds; lower sorts first.
func structuralComparisonTypeOrder(t Term) int {
	switch t.(type) {
	case *Integer, *Float:
		return 1
	case *Atom:
		return 2
	case *Reference:
		return 3
	case *AnonymousFunction:
		return 4
	case *Port:
		return 5
	case *Pid:
		return 6
	case *Tuple:
		return 7
	case *Map:
		return 8
	case *List:
		return 9
	case *Bitstring:
		return 10
	}
	return 0
}

// assertStructuralComparisonSupportedType rejects the kinds CompareTerms
// does not order yet.
func assertStructuralComparisonSupportedType(t Term) error {
	switch t.(type) {
	case *Atom, *Float, *Integer, *Pid, *Tuple:
		return nil
	}
	return RaiseArgumentError(
		"structural comparison currently supports only atoms, floats, integers, pids and tuples, got " +
			string(t.Type()) + ": " + Inspect(t))
}

// CompareTerms returns -1, 0 or 1 following the total term order.
func CompareTerms(a, b Term) (int, error) {
	if err := assertStructuralComparisonSupportedType(a); err != nil {
		return 0, err
	}
	if err := assertStructuralComparisonSupportedType(b); err != nil {
		return 0, err
	}

	aOrder := structuralComparisonTypeOrder(a)
	bOrder := structuralComparisonTypeOrder(b)

	if aOrder != bOrder {
		if aOrder < bOrder {
			return -1, nil
		}
		return 1, nil
	}

	switch aVal := a.(type) {
	case *Atom:
		return strings.Compare(aVal.Value, b.(*Atom).Value), nil
	case *Integer, *Float:
		return compareNumbers(a, b), nil
	case *Pid:
		return comparePids(aVal, b.(*Pid)), nil
	case *Tuple:
		return compareTuples(aVal, b.(*Tuple))
	}
	return 0, nil
}

// comparePids compares segments starting from the most significant one.
func comparePids(p1, p2 *Pid) int {
	for i := 2; i >= 0; i-- {
		if p1.Segments[i] == p2.Segments[i] {
			continue
		}
		if p1.Segments[i] < p2.Segments[i] {
			return -1
		}
		return 1
	}
	return 0
}

// compareTuples orders by size first, then element-wise.
func compareTuples(t1, t2 *Tuple) (int, error) {
	if len(t1.Data) != len(t2.Data) {
		if len(t1.Data) < len(t2.Data) {
			return -1, nil
		}
		return 1, nil
	}

	for i := range t1.Data {
		order, err := CompareTerms(t1.Data[i], t2.Data[i])
		if err != nil || order != 0 {
			return order, err
		}
	}
	return 0, nil
}
