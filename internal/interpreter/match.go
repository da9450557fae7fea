package interpreter

// MatchOperator implements `left = right`. The subject right must already be
// evaluated; on success the bindings are committed into ctx and right is
// returned. When right still holds variable patterns the operator is part of
// a chained pattern, e.g. `a = b = x` in a parameter list, and the chained
// MatchPattern is returned instead.
func MatchOperator(right, left Term, ctx *Context) (Term, error) {
	if hasUnresolvedVariablePattern(right) {
		return &MatchPattern{Left: left, Right: right}, nil
	}

	ok, err := match(right, left, ctx)
	if err != nil {
		ctx.matched = nil
		return nil, err
	}
	if !ok {
		ctx.matched = nil
		return nil, RaiseMatchError(BuildMatchErrorMsg(right))
	}

	ctx.UpdateVarsToMatchedValues()
	return right, nil
}

// IsMatched probes pattern left against subject right. Bindings made by a
// successful probe stay provisional until the caller commits them with
// UpdateVarsToMatchedValues. A failed probe is not an error; the returned
// error only reports unsupported patterns.
func IsMatched(left, right Term, ctx *Context) (bool, error) {
	return match(right, left, ctx)
}

func match(subject, pattern Term, ctx *Context) (bool, error) {
	switch p := pattern.(type) {
	case *MatchPlaceholder:
		return true, nil
	case *VariablePattern:
		return matchVariablePattern(subject, p, ctx), nil
	case *ConsPattern:
		return matchConsPattern(subject, p, ctx)
	case *BitstringPattern:
		return matchBitstringPattern(subject, p, ctx)
	case *MatchPattern:
		ok, err := match(subject, p.Left, ctx)
		if err != nil || !ok {
			return false, err
		}
		return match(subject, p.Right, ctx)
	case *Map:
		return matchMap(subject, p, ctx)
	case *List:
		l, ok := subject.(*List)
		if !ok || l.IsProper != p.IsProper {
			return false, nil
		}
		return matchItems(l.Data, p.Data, ctx)
	case *Tuple:
		t, ok := subject.(*Tuple)
		if !ok {
			return false, nil
		}
		return matchItems(t.Data, p.Data, ctx)
	}

	return IsStrictlyEqual(subject, pattern), nil
}

// matchVariablePattern binds the subject unless the variable already holds a
// value in the current attempt, in which case both must be strictly equal.
func matchVariablePattern(subject Term, p *VariablePattern, ctx *Context) bool {
	if prior, ok := ctx.matchedVar(p.Name); ok {
		return IsStrictlyEqual(prior, subject)
	}
	ctx.bindMatched(p.Name, subject)
	return true
}

func matchConsPattern(subject Term, p *ConsPattern, ctx *Context) (bool, error) {
	l, ok := subject.(*List)
	if !ok || len(l.Data) == 0 {
		return false, nil
	}
	if tail, ok := p.Tail.(*List); ok && tail.IsProper != l.IsProper {
		return false, nil
	}

	ok, err := match(listHead(l), p.Head, ctx)
	if err != nil || !ok {
		return false, err
	}
	return match(listTail(l), p.Tail, ctx)
}

// matchMap is a partial match: keys of the subject missing from the pattern
// are ignored.
func matchMap(subject Term, p *Map, ctx *Context) (bool, error) {
	m, ok := subject.(*Map)
	if !ok {
		return false, nil
	}

	for _, k := range p.keys {
		entry, ok := m.lookup(k)
		if !ok {
			return false, nil
		}
		ok, err := match(entry.Value, p.data[k].Value, ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchItems(subjects, patterns []Term, ctx *Context) (bool, error) {
	if len(subjects) != len(patterns) {
		return false, nil
	}
	for i := range patterns {
		ok, err := match(subjects[i], patterns[i], ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
