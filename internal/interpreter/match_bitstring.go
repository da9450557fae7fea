package interpreter

// matchBitstringPattern walks the segments left to right over the subject
// bits. Every bit of the subject must be consumed.
func matchBitstringPattern(subject Term, p *BitstringPattern, ctx *Context) (bool, error) {
	bs, err := bitstringSubject(subject)
	if err != nil || bs == nil {
		return false, err
	}

	offset := 0
	for _, seg := range p.Segments {
		if isUTFSegment(seg) {
			return false, newInterpreterError("bitstring segments with utf* type modifiers are not yet implemented")
		}

		width, err := segmentBitCount(seg)
		if err != nil {
			return false, err
		}

		if segmentType(seg) == SegmentFloat && width != 16 && width != 32 && width != 64 {
			return false, nil
		}
		if offset+width > bs.BitCount() {
			return false, nil
		}

		chunk := bs.Take(offset, width)

		switch target := seg.Value.(type) {
		case *VariablePattern:
			value, ok := decodeSegmentChunk(seg, chunk)
			if !ok || !matchVariablePattern(value, target, ctx) {
				return false, nil
			}
		case *MatchPlaceholder:
			if _, ok := decodeSegmentChunk(seg, chunk); !ok {
				return false, nil
			}
		default:
			literal, err := bitstringFromSegments([]Segment{seg})
			if err != nil {
				return false, err
			}
			if !IsStrictlyEqual(literal, chunk) {
				return false, nil
			}
		}

		offset += width
	}

	return offset == bs.BitCount(), nil
}

// bitstringSubject returns the bits of a bitstring subject, encoding a
// bitstring pattern whose segments are all literal. It returns nil when the
// subject cannot be matched as a bitstring.
func bitstringSubject(subject Term) (*Bitstring, error) {
	switch s := subject.(type) {
	case *Bitstring:
		return s, nil
	case *BitstringPattern:
		for _, seg := range s.Segments {
			if IsPattern(seg.Value) {
				return nil, nil
			}
		}
		return bitstringFromSegments(s.Segments)
	}
	return nil, nil
}
