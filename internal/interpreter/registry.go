package interpreter

import (
	"fmt"
	"sort"
	"sync"
)

// ModuleProxy is the dispatch table of one module: functions keyed by
// "name/arity" and the set of exported keys.
type ModuleProxy struct {
	module  *Atom
	table   map[string]NativeFunction
	exports map[string]bool
}

func functionKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

func (p *ModuleProxy) Module() *Atom {
	return p.module
}

// Function returns the dispatcher registered for name/arity. Unknown keys
// raise UndefinedFunctionError.
func (p *ModuleProxy) Function(name string, arity int) (NativeFunction, error) {
	fn, ok := p.table[functionKey(name, arity)]
	if !ok {
		return nil, RaiseUndefinedFunctionError(BuildUndefinedFunctionErrorMsg(p.module, name, arity, true))
	}
	return fn, nil
}

func (p *ModuleProxy) IsExported(name string, arity int) bool {
	return p.exports[functionKey(name, arity)]
}

// Keys returns the registered "name/arity" keys in sorted order.
func (p *ModuleProxy) Keys() []string {
	keys := make([]string, 0, len(p.table))
	for k := range p.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Registry maps module atoms to their proxies.
//
// Registration happens once at load time; Seal ends the registration phase.
// After sealing the registry is read-only and safe for concurrent callers.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*ModuleProxy
	sealed  bool
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*ModuleProxy)}
}

// Lookup returns the proxy of module, if any function was registered for it.
func (r *Registry) Lookup(module *Atom) (*ModuleProxy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.modules[module.Value]
	return p, ok
}

// Seal ends the registration phase.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

func (r *Registry) IsSealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Modules returns the names of all registered modules.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// register installs fn under module and name/arity, creating the module
// proxy on first use.
func (r *Registry) register(module *Atom, name string, arity int, exported bool, fn NativeFunction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return newInterpreterError("cannot define %s.%s/%d: the module registry is sealed", Inspect(module), name, arity)
	}

	p, ok := r.modules[module.Value]
	if !ok {
		p = &ModuleProxy{
			module:  module,
			table:   make(map[string]NativeFunction),
			exports: make(map[string]bool),
		}
		r.modules[module.Value] = p
	}

	key := functionKey(name, arity)
	p.table[key] = fn
	if exported {
		p.exports[key] = true
	}
	return nil
}
