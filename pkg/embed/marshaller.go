package termrt

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"unicode/utf8"

	"github.com/funvibe/termrt/internal/interpreter"
)

// Marshaller handles conversion between Go values and terms.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

var termType = reflect.TypeOf((*interpreter.Term)(nil)).Elem()

// ToTerm converts a Go value to a term.
func (m *Marshaller) ToTerm(val interface{}) (interpreter.Term, error) {
	if val == nil {
		return interpreter.Nil(), nil
	}

	// Already a term
	if t, ok := val.(interpreter.Term); ok {
		return t, nil
	}

	switch v := val.(type) {
	case *big.Int:
		return interpreter.NewBigInteger(new(big.Int).Set(v)), nil
	case []byte:
		return interpreter.NewBitstringFromBytes(append([]byte(nil), v...)), nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return interpreter.NewInteger(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return interpreter.NewBigInteger(new(big.Int).SetUint64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("cannot convert non-finite float %v", f)
		}
		return interpreter.NewFloat(f), nil
	case reflect.Bool:
		return interpreter.Bool(v.Bool()), nil
	case reflect.String:
		return interpreter.NewBitstring(v.String()), nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Map:
		return m.goMapToMap(v)
	case reflect.Struct:
		return m.structToMap(v)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return interpreter.Nil(), nil
		}
		return m.ToTerm(v.Elem().Interface())
	}
	return nil, fmt.Errorf("unsupported Go type for conversion: %s", v.Type())
}

// FromTerm converts a term to a Go value.
// targetType is optional; if provided, tries to convert to that type.
func (m *Marshaller) FromTerm(t interpreter.Term, targetType reflect.Type) (interface{}, error) {
	if t == nil {
		return nil, nil
	}

	if targetType != nil && targetType == termType {
		return t, nil
	}

	switch o := t.(type) {
	case *interpreter.Integer:
		return integerFromTerm(o, targetType)
	case *interpreter.Float:
		if targetType != nil && targetType.Kind() == reflect.Float32 {
			return float32(o.Value), nil
		}
		return o.Value, nil
	case *interpreter.Atom:
		switch {
		case interpreter.IsNil(o):
			return nil, nil
		case interpreter.IsBoolean(o):
			return interpreter.IsTrue(o), nil
		}
		return o.Value, nil
	case *interpreter.Bitstring:
		return bitstringFromTerm(o, targetType)
	case *interpreter.List:
		if !o.IsProper {
			return nil, fmt.Errorf("cannot convert improper list %s", interpreter.Inspect(o))
		}
		return m.itemsToSlice(o.Data, targetType)
	case *interpreter.Tuple:
		return m.itemsToSlice(o.Data, targetType)
	case *interpreter.Map:
		return m.mapToGoMap(o, targetType)
	}
	return nil, fmt.Errorf("unsupported term for conversion: %s", t.Type())
}

func integerFromTerm(i *interpreter.Integer, targetType reflect.Type) (interface{}, error) {
	if targetType != nil {
		switch targetType.Kind() {
		case reflect.Float32, reflect.Float64:
			f, _ := new(big.Float).SetInt(i.Value).Float64()
			return f, nil
		case reflect.Ptr:
			if targetType.Elem() == reflect.TypeOf(big.Int{}) {
				return new(big.Int).Set(i.Value), nil
			}
		}
	}
	if !i.Value.IsInt64() {
		return new(big.Int).Set(i.Value), nil
	}
	if targetType != nil && targetType.Kind() == reflect.Int64 {
		return i.Value.Int64(), nil
	}
	return int(i.Value.Int64()), nil // Default to int
}

func bitstringFromTerm(b *interpreter.Bitstring, targetType reflect.Type) (interface{}, error) {
	if !b.IsBinary() {
		return nil, fmt.Errorf("cannot convert bitstring of %d bits", b.BitCount())
	}
	data := append([]byte(nil), b.Bytes()...)
	if targetType != nil && targetType.Kind() == reflect.Slice && targetType.Elem().Kind() == reflect.Uint8 {
		return data, nil
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return data, nil
}

func (m *Marshaller) sliceToList(v reflect.Value) (*interpreter.List, error) {
	elements := make([]interpreter.Term, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToTerm(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return interpreter.NewList(elements...), nil
}

func (m *Marshaller) goMapToMap(v reflect.Value) (*interpreter.Map, error) {
	result := interpreter.NewMap()
	iter := v.MapRange()
	for iter.Next() {
		key, err := m.ToTerm(iter.Key().Interface())
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := m.ToTerm(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		result = result.Put(key, val)
	}
	return result, nil
}

// structToMap converts exported fields to a map with atom keys.
func (m *Marshaller) structToMap(v reflect.Value) (*interpreter.Map, error) {
	t := v.Type()
	entries := make([]interpreter.MapEntry, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		val, err := m.ToTerm(v.Field(i).Interface())
		if err != nil {
			return nil, err
		}
		entries = append(entries, interpreter.MapEntry{Key: interpreter.NewAtom(field.Name), Value: val})
	}
	return interpreter.NewMap(entries...), nil
}

func (m *Marshaller) itemsToSlice(items []interpreter.Term, targetType reflect.Type) (interface{}, error) {
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(items))
	for _, item := range items {
		val, err := m.FromTerm(item, elemType)
		if err != nil {
			return nil, err
		}
		rv, err := assignable(val, elemType)
		if err != nil {
			return nil, err
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

func (m *Marshaller) mapToGoMap(tm *interpreter.Map, targetType reflect.Type) (interface{}, error) {
	entries := tm.Entries()

	if targetType != nil && targetType.Kind() == reflect.Map {
		result := reflect.MakeMapWithSize(targetType, len(entries))
		for _, e := range entries {
			key, err := m.FromTerm(e.Key, targetType.Key())
			if err != nil {
				return nil, fmt.Errorf("map key: %w", err)
			}
			val, err := m.FromTerm(e.Value, targetType.Elem())
			if err != nil {
				return nil, fmt.Errorf("map value: %w", err)
			}
			kv, err := assignable(key, targetType.Key())
			if err != nil {
				return nil, fmt.Errorf("map key: %w", err)
			}
			vv, err := assignable(val, targetType.Elem())
			if err != nil {
				return nil, fmt.Errorf("map value: %w", err)
			}
			result.SetMapIndex(kv, vv)
		}
		return result.Interface(), nil
	}

	// Default: map[interface{}]interface{}
	result := make(map[interface{}]interface{}, len(entries))
	for _, e := range entries {
		key, err := m.FromTerm(e.Key, nil)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		if key != nil && !reflect.TypeOf(key).Comparable() {
			return nil, fmt.Errorf("map key %s has no comparable Go form", interpreter.Inspect(e.Key))
		}
		val, err := m.FromTerm(e.Value, nil)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		result[key] = val
	}
	return result, nil
}

// assignable turns val into a reflect.Value usable where typ is expected.
func assignable(val interface{}, typ reflect.Type) (reflect.Value, error) {
	if val == nil {
		return reflect.Zero(typ), nil
	}
	rv := reflect.ValueOf(val)
	if rv.Type().AssignableTo(typ) {
		return rv, nil
	}
	// Integers convert to strings as runes in Go; never do that implicitly.
	if typ.Kind() == reflect.String && rv.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", rv.Type(), typ)
	}
	if rv.Type().ConvertibleTo(typ) {
		return rv.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", rv.Type(), typ)
}
