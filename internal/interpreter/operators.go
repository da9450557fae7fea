package interpreter

// DotOperator implements left.right: a zero-arity remote call when left is
// a module atom, a key access when left is a map.
func (in *Interpreter) DotOperator(left Term, right *Atom, ctx *Context) (Term, error) {
	switch l := left.(type) {
	case *Atom:
		return in.CallNamedFunction(l, right.Value, nil, ctx)
	case *Map:
		value, ok := l.Get(right)
		if !ok {
			return nil, RaiseKeyError(BuildKeyErrorMsg(right, l))
		}
		return value, nil
	}
	return nil, RaiseBadMapError(left)
}

// ConsOperator builds [head | tail].
func ConsOperator(head, tail Term) *List {
	l, ok := tail.(*List)
	if !ok {
		return NewImproperList(head, tail)
	}

	data := make([]Term, 0, len(l.Data)+1)
	data = append(data, head)
	data = append(data, l.Data...)
	return &List{Data: data, IsProper: l.IsProper}
}

// AccessKeywordListElement returns the value of the first {key, value}
// tuple in list, or nil when there is none.
func AccessKeywordListElement(list *List, key *Atom) Term {
	if list == nil {
		return nil
	}
	for _, item := range list.Data {
		tuple, ok := item.(*Tuple)
		if !ok || len(tuple.Data) != 2 {
			continue
		}
		if k, ok := tuple.Data[0].(*Atom); ok && k.Value == key.Value {
			return tuple.Data[1]
		}
	}
	return nil
}
