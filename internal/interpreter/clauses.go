package interpreter

import (
	"fmt"

	"github.com/funvibe/termrt/internal/utils"
)

// CallAnonymousFunction applies fun to args. The arity is checked before any
// clause is tried; captures dispatch to the captured named function.
func (in *Interpreter) CallAnonymousFunction(fun *AnonymousFunction, args []Term) (Term, error) {
	if len(args) != fun.Arity {
		return nil, RaiseBadArityError(fun.Arity, args)
	}

	ctx := fun.Context
	if ctx == nil {
		ctx = NewContext(nil, nil)
	}

	if fun.isCapture() {
		return in.CallNamedFunction(capturedModule(fun.CapturedModule), fun.CapturedFunction, args, ctx)
	}

	result, ok, err := evaluateClauses(fun.Clauses, args, ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		funName := fmt.Sprintf("anonymous fn/%d", fun.Arity)
		return nil, RaiseFunctionClauseError(BuildFunctionClauseErrorMsg(funName, args))
	}
	return result, nil
}

// evaluateClauses runs the first clause whose params match args and whose
// guards pass. It reports false when no clause was selected.
func evaluateClauses(clauses []Clause, args []Term, ctx *Context) (Term, bool, error) {
	for _, clause := range clauses {
		clauseCtx := ctx.Clone()

		var params []Term
		if clause.Params != nil {
			params = clause.Params(clauseCtx)
		}
		if len(params) != len(args) {
			continue
		}

		ok, err := matchItems(args, params, clauseCtx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		clauseCtx.UpdateVarsToMatchedValues()

		passed, err := evaluateGuards(clause.Guards, clauseCtx)
		if err != nil {
			return nil, false, err
		}
		if !passed {
			continue
		}

		result, err := clause.Body(clauseCtx)
		if err != nil {
			return nil, false, err
		}
		return result, true, nil
	}
	return nil, false, nil
}

// evaluateGuards admits a clause when any guard returns true. No guards
// admit it unconditionally.
func evaluateGuards(guards []Expression, ctx *Context) (bool, error) {
	if len(guards) == 0 {
		return true, nil
	}
	for _, guard := range guards {
		result, err := guard(ctx)
		if err != nil {
			return false, err
		}
		if IsTrue(result) {
			return true, nil
		}
	}
	return false, nil
}

func Case(subject Term, clauses []CaseClause, ctx *Context) (Term, error) {
	for _, clause := range clauses {
		clauseCtx := ctx.Clone()

		ok, err := IsMatched(clause.Match, subject, clauseCtx)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		clauseCtx.UpdateVarsToMatchedValues()

		passed, err := evaluateGuards(clause.Guards, clauseCtx)
		if err != nil {
			return nil, err
		}
		if passed {
			return clause.Body(clauseCtx)
		}
	}
	return nil, RaiseCaseClauseError(subject)
}

func Cond(clauses []CondClause, ctx *Context) (Term, error) {
	for _, clause := range clauses {
		clauseCtx := ctx.Clone()

		condition, err := clause.Condition(clauseCtx)
		if err != nil {
			return nil, err
		}
		if IsTruthy(condition) {
			return clause.Body(clauseCtx)
		}
	}
	return nil, RaiseCondClauseError()
}

// Comprehension evaluates `for` over independent generators. Each generator
// source is materialized first, then every combination of their items is
// matched, filtered and mapped. A combination rejected by a generator
// pattern, a generator guard or a filter is skipped.
func Comprehension(generators []Generator, filters []Expression, collectable Term, unique bool, mapper Expression, ctx *Context) (Term, error) {
	sources := make([][]Term, len(generators))
	for i, generator := range generators {
		enumerable, err := generator.Body(ctx.Clone())
		if err != nil {
			return nil, err
		}
		items, err := toList(enumerable)
		if err != nil {
			return nil, err
		}
		sources[i] = items
	}

	var results []Term

combinations:
	for _, combination := range utils.CartesianProduct(sources) {
		comboCtx := ctx.Clone()

		for i, generator := range generators {
			ok, err := IsMatched(generator.Match, combination[i], comboCtx)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue combinations
			}
			comboCtx.UpdateVarsToMatchedValues()

			passed, err := evaluateGuards(generator.Guards, comboCtx)
			if err != nil {
				return nil, err
			}
			if !passed {
				continue combinations
			}
		}

		for _, filter := range filters {
			result, err := filter(comboCtx)
			if err != nil {
				return nil, err
			}
			if IsFalsy(result) {
				continue combinations
			}
		}

		item, err := mapper(comboCtx)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if unique {
		results = uniqStrict(results)
	}
	return into(results, collectable)
}
