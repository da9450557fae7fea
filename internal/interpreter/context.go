package interpreter

// Context is the matching and evaluation environment: the current module
// (used to authorize calls to private functions) and the variable bindings.
// Bindings made during a match attempt stay in a private scratch mapping
// until UpdateVarsToMatchedValues commits them.
type Context struct {
	Module  *Atom
	vars    *Bindings
	matched map[string]Term
}

// NewContext builds a context for module (nil for none) with vars bound.
func NewContext(module *Atom, vars map[string]Term) *Context {
	if module != nil && !IsAlias(module) {
		module = Alias(module.Value)
	}
	return &Context{Module: module, vars: BindingsFrom(vars)}
}

// Clone returns a context sharing the committed bindings. Bindings made in
// the clone are never visible through the original.
func (c *Context) Clone() *Context {
	return &Context{Module: c.Module, vars: c.vars}
}

// Var returns the committed binding for name.
func (c *Context) Var(name string) (Term, bool) {
	return c.vars.Get(name)
}

func (c *Context) Vars() *Bindings {
	return c.vars
}

// matchedVar returns the provisional binding for name in the current attempt.
func (c *Context) matchedVar(name string) (Term, bool) {
	v, ok := c.matched[name]
	return v, ok
}

func (c *Context) bindMatched(name string, value Term) {
	if c.matched == nil {
		c.matched = make(map[string]Term)
	}
	c.matched[name] = value
}

// UpdateVarsToMatchedValues commits the provisional bindings of the current
// match attempt and starts a fresh attempt.
func (c *Context) UpdateVarsToMatchedValues() *Context {
	for name, value := range c.matched {
		c.vars = c.vars.Put(name, value)
	}
	c.matched = nil
	return c
}
