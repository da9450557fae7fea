package interpreter

import (
	"math/big"

	"github.com/funvibe/termrt/internal/config"
)

// toList materializes an enumerable: lists, maps as {key, value} tuples in
// insertion order, and ranges.
func toList(t Term) ([]Term, error) {
	switch v := t.(type) {
	case *List:
		if !v.IsProper {
			return nil, RaiseArgumentError("expected a proper list, got: " + Inspect(v))
		}
		return v.Data, nil
	case *Map:
		if IsRange(v) {
			return rangeToList(v)
		}
		entries := v.Entries()
		items := make([]Term, len(entries))
		for i, e := range entries {
			items[i] = NewTuple(e.Key, e.Value)
		}
		return items, nil
	}
	return nil, RaiseArgumentError("protocol Enumerable not implemented for " + Inspect(t))
}

func rangeToList(r *Map) ([]Term, error) {
	first, _ := r.Get(NewAtom(config.RangeFirstKey))
	last, _ := r.Get(NewAtom(config.RangeLastKey))
	step, _ := r.Get(NewAtom(config.RangeStepKey))

	firstVal := first.(*Integer).Value
	lastVal := last.(*Integer).Value
	stepVal := step.(*Integer).Value

	if stepVal.Sign() == 0 {
		return nil, RaiseArgumentError("ranges must have a non-zero step, got: " + Inspect(r))
	}

	var items []Term
	current := new(big.Int).Set(firstVal)
	for {
		cmp := current.Cmp(lastVal)
		if (stepVal.Sign() > 0 && cmp > 0) || (stepVal.Sign() < 0 && cmp < 0) {
			break
		}
		items = append(items, NewBigInteger(new(big.Int).Set(current)))
		current.Add(current, stepVal)
	}
	return items, nil
}

// into collects items into a list, map or bitstring, keeping the
// collectable's own contents first.
func into(items []Term, collectable Term) (Term, error) {
	switch c := collectable.(type) {
	case *List:
		if !c.IsProper {
			return nil, RaiseArgumentError("collectable must be a proper list, got: " + Inspect(c))
		}
		data := make([]Term, 0, len(c.Data)+len(items))
		data = append(data, c.Data...)
		return NewList(append(data, items...)...), nil

	case *Map:
		result := c
		for _, item := range items {
			tuple, ok := item.(*Tuple)
			if !ok || len(tuple.Data) != 2 {
				return nil, RaiseArgumentError("collecting into a map requires {key, value} tuples, got: " + Inspect(item))
			}
			result = result.Put(tuple.Data[0], tuple.Data[1])
		}
		return result, nil

	case *Bitstring:
		parts := make([]*Bitstring, 0, len(items)+1)
		parts = append(parts, c)
		for _, item := range items {
			bs, ok := item.(*Bitstring)
			if !ok {
				return nil, RaiseArgumentError("collecting into a bitstring requires bitstrings, got: " + Inspect(item))
			}
			parts = append(parts, bs)
		}
		return concatBitstrings(parts)
	}

	return nil, RaiseArgumentError("protocol Collectable not implemented for " + Inspect(collectable))
}

// uniqStrict drops items strictly equal to an earlier item.
func uniqStrict(items []Term) []Term {
	seen := make(map[string]bool, len(items))
	result := make([]Term, 0, len(items))
	for _, item := range items {
		key := encodeMapKey(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, item)
	}
	return result
}
