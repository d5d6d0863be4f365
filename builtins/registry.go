package builtins

import (
	"corral/mem"
	"corral/types"
	"io"
	"math/rand"
	"sort"
	"time"
)

// Context is what a builtin gets to touch: the run's memory state and
// the host-provided effect surfaces. Builtins execute synchronously
// and atomically with respect to the interpreter loop; none of them
// can suspend the run.
type Context struct {
	Mem  *mem.State
	Out  io.Writer
	Rand *rand.Rand
	Now  func() time.Time
}

// Func is a native builtin. Its value result lands in r0 by
// convention; a fault result stops the run.
type Func func(ctx *Context) types.Result

// Registry holds all registered builtin functions
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates a registry with the standard builtin set
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}

	// IO builtins
	r.Register("__println", builtinPrintln)
	r.Register("__print", builtinPrint)
	r.Register("__concat", builtinConcat)

	// Math builtins
	r.Register("__random", builtinRandom)
	r.Register("__floor", builtinFloor)

	// Time builtins
	r.Register("__date_now_unix", builtinDateNowUnix)
	r.Register("__date_now", builtinDateNow)

	// Debug builtins
	r.Register("__dbg_print", builtinDbgPrint)
	r.Register("__dbg_heap", builtinDbgHeap)

	return r
}

// Register adds a builtin function to the registry
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup finds a builtin by name
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Call invokes a builtin by name. ok is false for unknown names; the
// caller turns that into an UndefinedBuiltin fault.
func (r *Registry) Call(name string, ctx *Context) (types.Result, bool) {
	fn, ok := r.funcs[name]
	if !ok {
		return types.Err(types.F_UNDEFINED_BUILTIN), false
	}
	return fn(ctx), true
}

// Names returns all registered builtin names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
