package interpreter

import (
	"encoding/json"
	"fmt"
)

// serialize produces the wire form of a term. It is used to display kinds
// the inspector does not render natively.
func serialize(t Term) string {
	data, err := json.Marshal(encodeWire(t))
	if err != nil {
		return fmt.Sprintf("#%s<?>", t.Type())
	}
	return string(data)
}

func encodeWire(t Term) interface{} {
	switch v := t.(type) {
	case *Atom:
		return map[string]interface{}{"t": "a", "v": v.Value}
	case *Integer:
		return map[string]interface{}{"t": "i", "v": v.Value.String()}
	case *Float:
		return map[string]interface{}{"t": "f", "v": v.Value}
	case *Bitstring:
		return map[string]interface{}{"t": "b", "v": v.Bytes(), "l": v.BitCount()}
	case *List:
		return map[string]interface{}{"t": "l", "d": encodeWireAll(v.Data), "p": v.IsProper}
	case *Tuple:
		return map[string]interface{}{"t": "t", "d": encodeWireAll(v.Data)}
	case *Map:
		entries := v.Entries()
		pairs := make([][2]interface{}, len(entries))
		for i, e := range entries {
			pairs[i] = [2]interface{}{encodeWire(e.Key), encodeWire(e.Value)}
		}
		return map[string]interface{}{"t": "m", "d": pairs}
	case *Pid:
		return encodeWireIdentifier("pid", v.identifier)
	case *Port:
		return encodeWireIdentifier("port", v.identifier)
	case *Reference:
		return encodeWireIdentifier("reference", v.identifier)
	case *AnonymousFunction:
		return map[string]interface{}{"t": "fn", "a": v.Arity, "m": v.CapturedModule, "f": v.CapturedFunction}
	case *VariablePattern:
		return map[string]interface{}{"t": "vp", "n": v.Name}
	case *ConsPattern:
		return map[string]interface{}{"t": "cp", "h": encodeWire(v.Head), "tl": encodeWire(v.Tail)}
	case *MatchPattern:
		return map[string]interface{}{"t": "mp", "l": encodeWire(v.Left), "r": encodeWire(v.Right)}
	default:
		return map[string]interface{}{"t": string(t.Type())}
	}
}

func encodeWireAll(items []Term) []interface{} {
	result := make([]interface{}, len(items))
	for i, item := range items {
		result[i] = encodeWire(item)
	}
	return result
}

func encodeWireIdentifier(kind string, id identifier) interface{} {
	return map[string]interface{}{"t": kind, "o": id.Origin, "s": id.Segments[:], "n": id.Node}
}
