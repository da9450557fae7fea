package interpreter

// Expression is a compiled expression evaluated under a context.
type Expression func(ctx *Context) (Term, error)

// NativeFunction is a callable supplied directly by the host.
type NativeFunction func(args ...Term) (Term, error)

// Clause is one clause of a named or anonymous function. Params builds the
// parameter patterns under the clause's context; Guards are alternatives,
// any guard returning true admits the clause.
type Clause struct {
	Params func(ctx *Context) []Term
	Guards []Expression
	Body   Expression
}

// CaseClause is a branch of a case expression.
type CaseClause struct {
	Match  Term
	Guards []Expression
	Body   Expression
}

// CondClause is a branch of a cond expression.
type CondClause struct {
	Condition Expression
	Body      Expression
}

// Generator is a comprehension generator: Match <- Body when Guards.
type Generator struct {
	Match  Term
	Guards []Expression
	Body   Expression
}

// AnonymousFunction is either a closure over Clauses and Context, or a
// capture of CapturedModule.CapturedFunction/Arity.
type AnonymousFunction struct {
	Arity            int
	Clauses          []Clause
	Context          *Context
	CapturedModule   string
	CapturedFunction string
}

func (f *AnonymousFunction) Type() TermType { return ANONYMOUS_FUNCTION_TERM }

func NewAnonymousFunction(arity int, clauses []Clause, ctx *Context) *AnonymousFunction {
	return &AnonymousFunction{Arity: arity, Clauses: clauses, Context: ctx}
}

// NewFunctionCapture builds &Module.function/arity. Module is given without
// the module prefix for qualified modules, e.g. "Enum".
func NewFunctionCapture(module, function string, arity int, ctx *Context) *AnonymousFunction {
	return &AnonymousFunction{Arity: arity, Context: ctx, CapturedModule: module, CapturedFunction: function}
}

func (f *AnonymousFunction) isCapture() bool {
	return f.CapturedModule != ""
}
