package interpreter

type TermType string

const (
	ANONYMOUS_FUNCTION_TERM = "anonymous_function"
	ATOM_TERM               = "atom"
	BITSTRING_TERM          = "bitstring"
	FLOAT_TERM              = "float"
	INTEGER_TERM            = "integer"
	LIST_TERM               = "list"
	MAP_TERM                = "map"
	PID_TERM                = "pid"
	PORT_TERM               = "port"
	REFERENCE_TERM          = "reference"
	TUPLE_TERM              = "tuple"

	// Pattern-only variants
	BITSTRING_PATTERN_TERM = "bitstring_pattern"
	CONS_PATTERN_TERM      = "cons_pattern"
	MATCH_PATTERN_TERM     = "match_pattern"
	MATCH_PLACEHOLDER_TERM = "match_placeholder"
	VARIABLE_PATTERN_TERM  = "variable_pattern"
)

// Term is an immutable boxed value.
type Term interface {
	Type() TermType
}

// Pattern is implemented by the variants that exist only inside pattern trees.
type Pattern interface {
	Term
	pattern()
}

func IsNumber(t Term) bool {
	switch t.(type) {
	case *Integer, *Float:
		return true
	}
	return false
}

func IsPattern(t Term) bool {
	_, ok := t.(Pattern)
	return ok
}
