package interpreter

// VariablePattern binds the matched subject to Name.
type VariablePattern struct {
	Name string
}

func (v *VariablePattern) Type() TermType { return VARIABLE_PATTERN_TERM }
func (v *VariablePattern) pattern()       {}

// MatchPlaceholder is the `_` wildcard.
type MatchPlaceholder struct{}

func (m *MatchPlaceholder) Type() TermType { return MATCH_PLACEHOLDER_TERM }
func (m *MatchPlaceholder) pattern()       {}

// ConsPattern is [Head | Tail].
type ConsPattern struct {
	Head Term
	Tail Term
}

func (c *ConsPattern) Type() TermType { return CONS_PATTERN_TERM }
func (c *ConsPattern) pattern()       {}

// MatchPattern is a chained pattern Left = Right.
type MatchPattern struct {
	Left  Term
	Right Term
}

func (m *MatchPattern) Type() TermType { return MATCH_PATTERN_TERM }
func (m *MatchPattern) pattern()       {}

// BitstringPattern is <<seg1, seg2, ...>> in a pattern.
type BitstringPattern struct {
	Segments []Segment
}

func (b *BitstringPattern) Type() TermType { return BITSTRING_PATTERN_TERM }
func (b *BitstringPattern) pattern()       {}

// Segment type modifiers
const (
	SegmentInteger   = "integer"
	SegmentFloat     = "float"
	SegmentBinary    = "binary"
	SegmentBitstring = "bitstring"
	SegmentUTF8      = "utf8"
	SegmentUTF16     = "utf16"
	SegmentUTF32     = "utf32"
)

// Segment describes one segment of a bitstring. Size counts units; nil
// means the type default. Unit 0 means the type default.
type Segment struct {
	Value      Term
	Type       string
	Size       *int
	Unit       int
	Signed     bool
	Endianness string
}

// SegmentSize is a helper for building segments with an explicit size.
func SegmentSize(n int) *int {
	return &n
}

func NewVariablePattern(name string) *VariablePattern {
	return &VariablePattern{Name: name}
}

func NewMatchPlaceholder() *MatchPlaceholder {
	return &MatchPlaceholder{}
}

func NewConsPattern(head, tail Term) *ConsPattern {
	return &ConsPattern{Head: head, Tail: tail}
}

func NewBitstringPattern(segments ...Segment) *BitstringPattern {
	return &BitstringPattern{Segments: segments}
}

// hasUnresolvedVariablePattern reports whether t still contains a variable
// pattern, i.e. it is a pattern rather than an evaluated value.
func hasUnresolvedVariablePattern(t Term) bool {
	switch v := t.(type) {
	case *VariablePattern:
		return true
	case *ConsPattern:
		return hasUnresolvedVariablePattern(v.Head) || hasUnresolvedVariablePattern(v.Tail)
	case *List:
		return anyUnresolvedVariablePattern(v.Data)
	case *Tuple:
		return anyUnresolvedVariablePattern(v.Data)
	case *Map:
		for _, e := range v.Entries() {
			if hasUnresolvedVariablePattern(e.Key) || hasUnresolvedVariablePattern(e.Value) {
				return true
			}
		}
		return false
	case *MatchPattern:
		return hasUnresolvedVariablePattern(v.Left) || hasUnresolvedVariablePattern(v.Right)
	case *BitstringPattern:
		for _, seg := range v.Segments {
			if hasUnresolvedVariablePattern(seg.Value) {
				return true
			}
		}
	}
	return false
}

func anyUnresolvedVariablePattern(items []Term) bool {
	for _, item := range items {
		if hasUnresolvedVariablePattern(item) {
			return true
		}
	}
	return false
}
